package rdash

import (
	"bytes"
	"encoding/json"
	"strings"
	"whoisresolver/pkg/domain"
	"whoisresolver/pkg/serrors"
	"whoisresolver/pkg/whois"
)

// ID is a registry-partner domain identifier. The API returns it either as a
// number or as a string.
type ID string

// UnmarshalJSON accepts both numeric and string identifiers.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""

		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err //nolint: wrapcheck
		}
		*id = ID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err //nolint: wrapcheck
	}
	*id = ID(n.String())

	return nil
}

type searchResponse struct {
	Success bool `json:"success"`
	Data    []struct {
		ID   ID     `json:"id"`
		Name string `json:"name"`
	} `json:"data"`
}

type contact struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

type detail struct {
	ID          ID       `json:"id"`
	Name        string   `json:"name"`
	Registrar   string   `json:"registrar"`
	CreatedAt   string   `json:"created_at"`
	ExpiredAt   string   `json:"expired_at"`
	Nameservers []string `json:"nameservers"`
	Status      string   `json:"status"`
	Registrant  *contact `json:"registrant"`
	Admin       *contact `json:"admin"`
	Tech        *contact `json:"tech"`
}

type detailResponse struct {
	Success bool    `json:"success"`
	Data    *detail `json:"data"`
}

func (d *detail) empty() bool {
	return strings.TrimSpace(d.Name) == "" && strings.TrimSpace(d.Registrar) == "" &&
		d.CreatedAt == "" && d.ExpiredAt == "" && len(d.Nameservers) == 0 && d.Status == ""
}

// firstID extracts the identifier of the first search match. ok is false
// when the result set is empty.
func firstID(body []byte) (ID, bool, error) {
	var r searchResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return "", false, serrors.Wrap(serrors.ErrParse, err, "could not decode rdash search response")
	}
	if len(r.Data) == 0 {
		return "", false, nil
	}
	if r.Data[0].ID == "" {
		return "", false, serrors.With(serrors.ErrParse, "rdash search match without id")
	}

	return r.Data[0].ID, true, nil
}

// Normalize converts a registry-partner detail response into a canonical
// record. Contacts, when present, populate ExtendedContacts. A failure
// envelope, or one whose data carries none of the detail fields, is
// serrors.ErrParse.
func Normalize(body []byte) (domain.CanonicalRecord, error) {
	var r detailResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return domain.CanonicalRecord{}, serrors.Wrap(serrors.ErrParse, err, "could not decode rdash detail response")
	}
	if !r.Success {
		return domain.CanonicalRecord{}, serrors.With(serrors.ErrParse, "rdash detail response reports failure: %s",
			whois.Snippet(body))
	}
	if r.Data == nil || r.Data.empty() {
		return domain.CanonicalRecord{}, serrors.With(serrors.ErrParse, "rdash detail response carries no domain data")
	}
	d := r.Data

	registeredAt, err := whois.ParseTime(d.CreatedAt)
	if err != nil {
		return domain.CanonicalRecord{}, serrors.Wrap(serrors.ErrParse, err, "created_at")
	}
	expiresAt, err := whois.ParseTime(d.ExpiredAt)
	if err != nil {
		return domain.CanonicalRecord{}, serrors.Wrap(serrors.ErrParse, err, "expired_at")
	}

	rec := domain.CanonicalRecord{
		Registrar:    strings.TrimSpace(d.Registrar),
		Status:       whois.ClassifyStatus(d.Status),
		RegisteredAt: registeredAt,
		ExpiresAt:    expiresAt,
		Nameservers:  make([]string, 0, len(d.Nameservers)),
		RawPayload:   json.RawMessage(bytes.TrimSpace(body)),
	}
	for _, ns := range d.Nameservers {
		if ns = strings.TrimSpace(ns); ns != "" {
			rec.Nameservers = append(rec.Nameservers, ns)
		}
	}

	if d.Registrant != nil || d.Admin != nil || d.Tech != nil {
		rec.ExtendedContacts = &domain.Contacts{
			Registrant: d.Registrant.toDomain(),
			Admin:      d.Admin.toDomain(),
			Tech:       d.Tech.toDomain(),
		}
	}

	return rec, nil
}

func (c *contact) toDomain() *domain.Contact {
	if c == nil {
		return nil
	}

	return &domain.Contact{
		Name:         c.Name,
		Organization: c.Organization,
		Email:        c.Email,
		Phone:        c.Phone,
		Street:       c.Street,
		City:         c.City,
		State:        c.State,
		PostalCode:   c.PostalCode,
		Country:      c.Country,
	}
}
