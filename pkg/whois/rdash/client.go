// Package rdash provides a whois.Provider backed by the registry partner's
// reseller API. Lookups run in two sequential phases: a search that maps the
// domain name to the partner's internal ID, then a detail request for that ID.
//
// The partner only knows domains managed through it, so absence from its
// index is not evidence that a domain is unregistered. Whenever the partner
// cannot answer (no match, or the caller IP is not whitelisted) the lookup is
// delegated to a fallback provider whose answer is returned as final.
package rdash

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"whoisresolver/pkg/domain"
	"whoisresolver/pkg/logger"
	"whoisresolver/pkg/serrors"
	"whoisresolver/pkg/whois"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the partner's production API root.
	DefaultBaseURL = "https://api.rdash.id/api"
	// DefaultTimeout bounds every partner request.
	DefaultTimeout = 15 * time.Second
)

var notWhitelisted = []byte("not whitelisted") //nolint: gochecknoglobals

// Options configure the registry-partner client.
type Options struct {
	BaseURL    string
	ResellerID string
	APIKey     string
	// Timeout bounds each request; zero means DefaultTimeout.
	Timeout time.Duration
}

// Client queries the registry partner. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	fallback   whois.Provider
	opts       Options
}

var _ whois.Provider = (*Client)(nil)

// New constructs a Client. fallback answers lookups the partner cannot.
func New(httpClient *http.Client, fallback whois.Provider, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	opts.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	return &Client{
		httpClient: httpClient,
		fallback:   fallback,
		opts:       opts,
	}
}

// Name implements whois.Provider.
func (c *Client) Name() domain.Source { return domain.SourceRDASH }

// Lookup implements whois.Provider. It never reports a domain as available
// on its own; that verdict can only come from the fallback provider.
func (c *Client) Lookup(ctx context.Context, name string) (domain.WhoisResult, error) {
	if c.opts.ResellerID == "" || c.opts.APIKey == "" {
		return domain.WhoisResult{}, serrors.With(serrors.ErrConfiguration, "rdash reseller id or api key is not configured")
	}

	// phase 1: search
	resp, err := c.get(ctx, "/domains?"+url.Values{"domain": {name}}.Encode())
	if err != nil {
		return domain.WhoisResult{}, fmt.Errorf("rdash search failed: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return c.delegate(ctx, name, "domain not found in partner index")
	case isWhitelistRejection(resp):
		return c.delegate(ctx, name, "caller ip not whitelisted")
	case !whois.IsSuccess(resp.StatusCode):
		return domain.WhoisResult{}, whois.UpstreamError("rdash search", resp)
	}

	id, found, err := firstID(resp.Body)
	if err != nil {
		return domain.WhoisResult{}, err
	}
	if !found {
		return c.delegate(ctx, name, "empty search result")
	}

	// phase 2: detail
	resp, err = c.get(ctx, "/domains/"+url.PathEscape(string(id)))
	if err != nil {
		return domain.WhoisResult{}, fmt.Errorf("rdash detail failed: %w", err)
	}
	if isWhitelistRejection(resp) {
		return c.delegate(ctx, name, "caller ip not whitelisted")
	}
	if !whois.IsSuccess(resp.StatusCode) {
		return domain.WhoisResult{}, whois.UpstreamError("rdash detail", resp)
	}

	rec, err := Normalize(resp.Body)
	if err != nil {
		return domain.WhoisResult{}, err
	}

	return domain.Registered(name, domain.SourceRDASH, rec), nil
}

func (c *Client) get(ctx context.Context, path string) (whois.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+path, nil)
	if err != nil {
		return whois.Response{}, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.opts.ResellerID, c.opts.APIKey)

	resp, err := whois.Do(c.httpClient, req)
	if err != nil {
		return whois.Response{}, err //nolint: wrapcheck
	}
	logger.Debug(ctx, "rdash response", zap.String("path", path), zap.Int("status_code", resp.StatusCode))

	return resp, nil
}

// delegate hands the lookup to the fallback provider; its outcome is final.
func (c *Client) delegate(ctx context.Context, name, reason string) (domain.WhoisResult, error) {
	if c.fallback == nil {
		return domain.WhoisResult{}, serrors.With(serrors.ErrConfiguration, "rdash cannot answer (%s) and no fallback is configured", reason)
	}

	logger.Info(ctx, "rdash delegating lookup to fallback provider",
		zap.String("reason", reason),
		zap.String("fallback", string(c.fallback.Name())))

	return c.fallback.Lookup(ctx, name) //nolint: wrapcheck
}

func isWhitelistRejection(resp whois.Response) bool {
	return resp.StatusCode == http.StatusUnprocessableEntity &&
		bytes.Contains(bytes.ToLower(resp.Body), notWhitelisted)
}
