// Package whoisapi provides a whois.Provider backed by a generic HTTP WHOIS
// API that answers with flat, human-labelled key/value fields.
package whoisapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"whoisresolver/pkg/domain"
	"whoisresolver/pkg/logger"
	"whoisresolver/pkg/serrors"
	"whoisresolver/pkg/whois"

	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds every request.
	DefaultTimeout = 10 * time.Second
	// MaxNameservers is the number of numbered nameserver slots read.
	MaxNameservers = 10
)

// Field labels read from the data object.
const (
	fieldRegistrar  = "Registrar Name"
	fieldCreatedOn  = "Created On"
	fieldExpiration = "Expiration Date"
	fieldStatus     = "Status"
	fieldNameserver = "Nameserver "
)

// Options configure the WHOIS-API client.
type Options struct {
	BaseURL string
	// Timeout bounds each request; zero means DefaultTimeout.
	Timeout time.Duration
}

// Client queries the WHOIS API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	opts       Options
}

var _ whois.Provider = (*Client)(nil)

// New constructs a Client using httpClient for all requests.
func New(httpClient *http.Client, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	return &Client{httpClient: httpClient, opts: opts}
}

// Name implements whois.Provider.
func (c *Client) Name() domain.Source { return domain.SourceWhoisAPI }

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// Lookup implements whois.Provider. A 404, or a body flagging failure or
// carrying no data, reports the domain as available.
func (c *Client) Lookup(ctx context.Context, name string) (domain.WhoisResult, error) {
	if c.opts.BaseURL == "" {
		return domain.WhoisResult{}, serrors.With(serrors.ErrConfiguration, "whois api base url is not configured")
	}

	endpoint, err := url.Parse(c.opts.BaseURL)
	if err != nil {
		return domain.WhoisResult{}, serrors.Wrap(serrors.ErrConfiguration, err, "invalid whois api base url")
	}
	q := endpoint.Query()
	q.Set("domain", name)
	endpoint.RawQuery = q.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return domain.WhoisResult{}, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := whois.Do(c.httpClient, req)
	if err != nil {
		return domain.WhoisResult{}, fmt.Errorf("whois api query failed: %w", err)
	}
	logger.Debug(ctx, "whois api response", zap.Int("status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusNotFound {
		return domain.Available(name, domain.SourceWhoisAPI), nil
	}
	if !whois.IsSuccess(resp.StatusCode) {
		return domain.WhoisResult{}, whois.UpstreamError("whois api", resp)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return domain.WhoisResult{}, serrors.Wrap(serrors.ErrParse, err, "could not decode whois api response")
	}
	fields, err := decodeFields(env.Data)
	if err != nil {
		return domain.WhoisResult{}, err
	}
	if !env.Success || !hasRecordFields(fields) {
		return domain.Available(name, domain.SourceWhoisAPI), nil
	}

	rec, err := Normalize(fields)
	if err != nil {
		return domain.WhoisResult{}, err
	}
	rec.RawPayload = json.RawMessage(resp.Body)

	return domain.Registered(name, domain.SourceWhoisAPI, rec), nil
}

// decodeFields turns the data object into string fields. Non-string values
// are kept in their JSON form; null, empty and non-object data yield no fields.
func decodeFields(data json.RawMessage) (map[string]string, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" || !strings.HasPrefix(trimmed, "{") {
		return nil, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, serrors.Wrap(serrors.ErrParse, err, "could not decode whois api data")
	}

	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			fields[k] = s

			continue
		}
		if string(v) != "null" {
			fields[k] = string(v)
		}
	}

	return fields, nil
}

// hasRecordFields reports whether fields carries at least one non-empty
// registration label. Data holding only a message is the "no match" answer.
func hasRecordFields(fields map[string]string) bool {
	for _, label := range []string{fieldRegistrar, fieldCreatedOn, fieldExpiration, fieldStatus} {
		if strings.TrimSpace(fields[label]) != "" {
			return true
		}
	}
	for i := 1; i <= MaxNameservers; i++ {
		if strings.TrimSpace(fields[fieldNameserver+strconv.Itoa(i)]) != "" {
			return true
		}
	}

	return false
}

// Normalize maps the flat WHOIS-API fields into a canonical record. Absent
// fields are omitted; nameservers are read from "Nameserver 1" through
// "Nameserver 10" in slot order.
func Normalize(fields map[string]string) (domain.CanonicalRecord, error) {
	registeredAt, err := whois.ParseTime(fields[fieldCreatedOn])
	if err != nil {
		return domain.CanonicalRecord{}, serrors.Wrap(serrors.ErrParse, err, fieldCreatedOn)
	}
	expiresAt, err := whois.ParseTime(fields[fieldExpiration])
	if err != nil {
		return domain.CanonicalRecord{}, serrors.Wrap(serrors.ErrParse, err, fieldExpiration)
	}

	rec := domain.CanonicalRecord{
		Registrar:    strings.TrimSpace(fields[fieldRegistrar]),
		Status:       whois.ClassifyStatus(fields[fieldStatus]),
		RegisteredAt: registeredAt,
		ExpiresAt:    expiresAt,
		Nameservers:  []string{},
	}
	for i := 1; i <= MaxNameservers; i++ {
		if ns := strings.TrimSpace(fields[fieldNameserver+strconv.Itoa(i)]); ns != "" {
			rec.Nameservers = append(rec.Nameservers, ns)
		}
	}

	return rec, nil
}
