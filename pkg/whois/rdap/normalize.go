package rdap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"whoisresolver/pkg/domain"
	"whoisresolver/pkg/serrors"
	"whoisresolver/pkg/whois"
)

// response is the subset of an RDAP domain object (RFC 9083) that is
// normalized. An RDAP error object shares the document root and sets ErrorCode.
type response struct {
	ErrorCode   int      `json:"errorCode"`
	LDHName     string   `json:"ldhName"`
	Status      []string `json:"status"`
	Events      []event  `json:"events"`
	Entities    []entity `json:"entities"`
	Nameservers []struct {
		LDHName string `json:"ldhName"`
	} `json:"nameservers"`
	SecureDNS *struct {
		DelegationSigned bool `json:"delegationSigned"`
	} `json:"secureDNS"`
}

type event struct {
	Action string `json:"eventAction"`
	Date   string `json:"eventDate"`
}

type entity struct {
	Handle    string   `json:"handle"`
	Roles     []string `json:"roles"`
	PublicIDs []struct {
		Type       string `json:"type"`
		Identifier string `json:"identifier"`
	} `json:"publicIds"`
	VCardArray json.RawMessage `json:"vcardArray"`
	Entities   []entity        `json:"entities"`
}

// rawPayload wraps the upstream document together with the fields that are
// kept only for display (DNSSEC state, last change).
type rawPayload struct {
	Response    json.RawMessage `json:"response"`
	DNSSEC      string          `json:"dnssec"`
	LastChanged string          `json:"lastChanged,omitempty"`
}

// Normalize converts an RDAP domain response into a canonical record. An RDAP
// error object (errorCode set) yields an serrors.ErrNotFound error; an empty or
// malformed body, or an unparsable event date, yields serrors.ErrParse.
func Normalize(body []byte) (domain.CanonicalRecord, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return domain.CanonicalRecord{}, serrors.With(serrors.ErrParse, "empty rdap response")
	}

	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return domain.CanonicalRecord{}, serrors.Wrap(serrors.ErrParse, err, "could not decode rdap response")
	}
	if r.ErrorCode != 0 {
		return domain.CanonicalRecord{}, serrors.With(serrors.ErrNotFound, "rdap error object with code %d", r.ErrorCode)
	}

	rec := domain.CanonicalRecord{
		Status:      whois.ClassifyStatus(r.Status...),
		Nameservers: make([]string, 0, len(r.Nameservers)),
	}

	var lastChanged string
	for _, ev := range r.Events {
		switch strings.ToLower(ev.Action) {
		case "registration":
			t, err := whois.ParseTime(ev.Date)
			if err != nil {
				return domain.CanonicalRecord{}, serrors.Wrap(serrors.ErrParse, err, "registration event")
			}
			rec.RegisteredAt = t
		case "expiration":
			t, err := whois.ParseTime(ev.Date)
			if err != nil {
				return domain.CanonicalRecord{}, serrors.Wrap(serrors.ErrParse, err, "expiration event")
			}
			rec.ExpiresAt = t
		case "last changed":
			lastChanged = ev.Date
		}
	}

	for _, ns := range r.Nameservers {
		if ns.LDHName != "" {
			rec.Nameservers = append(rec.Nameservers, ns.LDHName)
		}
	}

	if registrar := findRegistrar(r.Entities); registrar != nil {
		name, err := registrarName(*registrar)
		if err != nil {
			return domain.CanonicalRecord{}, serrors.Wrap(serrors.ErrParse, err, "registrar entity")
		}
		rec.Registrar = name
	}

	dnssec := "unsigned"
	if r.SecureDNS != nil && r.SecureDNS.DelegationSigned {
		dnssec = "signed"
	}
	raw, err := json.Marshal(rawPayload{Response: body, DNSSEC: dnssec, LastChanged: lastChanged})
	if err != nil {
		return domain.CanonicalRecord{}, fmt.Errorf("could not encode raw payload: %w", err)
	}
	rec.RawPayload = raw

	return rec, nil
}

// findRegistrar returns the first entity holding the registrar role,
// searching nested entities depth-first.
func findRegistrar(entities []entity) *entity {
	for i := range entities {
		for _, role := range entities[i].Roles {
			if strings.EqualFold(role, "registrar") {
				return &entities[i]
			}
		}
		if e := findRegistrar(entities[i].Entities); e != nil {
			return e
		}
	}

	return nil
}

// registrarName prefers the vCard formatted name, then the organization,
// and finally falls back to the IANA Registrar ID.
func registrarName(e entity) (string, error) {
	for _, prop := range []string{"fn", "org"} {
		name, err := vcardProperty(e.VCardArray, prop)
		if err != nil {
			return "", err
		}
		if name != "" {
			return name, nil
		}
	}

	if id := ianaID(e); id != "" {
		return whois.RegistrarName(id), nil
	}

	return "", nil
}

func ianaID(e entity) string {
	for _, p := range e.PublicIDs {
		if strings.EqualFold(strings.TrimSpace(p.Type), "IANA Registrar ID") && p.Identifier != "" {
			return strings.TrimSpace(p.Identifier)
		}
	}
	if e.Handle != "" && strings.IndexFunc(e.Handle, func(r rune) bool { return !unicode.IsDigit(r) }) == -1 {
		return e.Handle
	}

	return ""
}
