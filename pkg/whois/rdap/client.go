// Package rdap provides a whois.Provider backed by registry RDAP services
// (RFC 9082/9083). The RDAP server is chosen from a static TLD table.
package rdap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"whoisresolver/pkg/domain"
	"whoisresolver/pkg/logger"
	"whoisresolver/pkg/serrors"
	"whoisresolver/pkg/whois"

	"go.uber.org/zap"
)

const (
	// DefaultServer serves TLDs missing from the server table and the
	// secondary attempt for .id names.
	DefaultServer = "https://rdap.verisign.com/com/v1"
	// DefaultTimeout bounds every RDAP request.
	DefaultTimeout = 10 * time.Second

	pandiServer = "https://rdap.pandi.id/rdap"
)

// servers maps a TLD (or second-level public suffix) to its RDAP base URL.
var servers = map[string]string{ //nolint: gochecknoglobals
	"com":   "https://rdap.verisign.com/com/v1",
	"net":   "https://rdap.verisign.com/net/v1",
	"cc":    "https://rdap.verisign.com/cc/v1",
	"org":   "https://rdap.publicinterestregistry.org/rdap",
	"info":  "https://rdap.afilias.net/rdap/info",
	"biz":   "https://rdap.nic.biz",
	"id":    pandiServer,
	"co.id": pandiServer,
}

// retryOnDefault lists the suffixes whose registry RDAP is retried once
// against the default server after a non-2xx answer.
var retryOnDefault = map[string]bool{"id": true, "co.id": true} //nolint: gochecknoglobals

// Options configure the RDAP client.
type Options struct {
	// Timeout bounds each request; zero means DefaultTimeout.
	Timeout time.Duration
	// DefaultServer overrides DefaultServer (used by tests and private deployments).
	DefaultServer string
}

// Client queries RDAP servers. It is safe for concurrent use.
type Client struct {
	httpClient    *http.Client
	timeout       time.Duration
	defaultServer string
}

var _ whois.Provider = (*Client)(nil)

// New constructs a Client using httpClient for all requests.
func New(httpClient *http.Client, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.DefaultServer == "" {
		opts.DefaultServer = DefaultServer
	}

	return &Client{
		httpClient:    httpClient,
		timeout:       opts.Timeout,
		defaultServer: strings.TrimSuffix(opts.DefaultServer, "/"),
	}
}

// Name implements whois.Provider.
func (c *Client) Name() domain.Source { return domain.SourceRDAP }

// Suffix returns the table key used for name: "co.id" for *.co.id names,
// otherwise the last label.
func Suffix(name string) string {
	if strings.HasSuffix(name, ".co.id") {
		return "co.id"
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}

	return name
}

// ServerFor returns the RDAP base URL responsible for name.
func (c *Client) ServerFor(name string) string {
	if srv, ok := servers[Suffix(name)]; ok {
		return srv
	}

	return c.defaultServer
}

// Lookup implements whois.Provider. A 404 reports the domain as available
// and other non-2xx statuses are serrors.ErrUpstream. For .id names any
// non-2xx answer from the registry server, 404 included, gets one more
// attempt against the default server, whose answer is final.
func (c *Client) Lookup(ctx context.Context, name string) (domain.WhoisResult, error) {
	server := c.ServerFor(name)
	resp, err := c.fetch(ctx, server, name)
	if err != nil {
		return domain.WhoisResult{}, err
	}

	if !whois.IsSuccess(resp.StatusCode) && retryOnDefault[Suffix(name)] && server != c.defaultServer {
		logger.Debug(ctx, "rdap registry server failed, trying default server",
			zap.String("server", server), zap.Int("status_code", resp.StatusCode))

		if resp, err = c.fetch(ctx, c.defaultServer, name); err != nil {
			return domain.WhoisResult{}, err
		}
	}

	return interpret(name, resp)
}

func (c *Client) fetch(ctx context.Context, server, name string) (whois.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := server + "/domain/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return whois.Response{}, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/rdap+json")

	resp, err := whois.Do(c.httpClient, req)
	if err != nil {
		return whois.Response{}, fmt.Errorf("rdap query to %s failed: %w", server, err)
	}
	logger.Debug(ctx, "rdap response", zap.String("url", url), zap.Int("status_code", resp.StatusCode))

	return resp, nil
}

func interpret(name string, resp whois.Response) (domain.WhoisResult, error) {
	if resp.StatusCode == http.StatusNotFound {
		return domain.Available(name, domain.SourceRDAP), nil
	}
	if !whois.IsSuccess(resp.StatusCode) {
		return domain.WhoisResult{}, whois.UpstreamError("rdap", resp)
	}

	rec, err := Normalize(resp.Body)
	if err != nil {
		if errors.Is(err, serrors.ErrNotFound) {
			return domain.Available(name, domain.SourceRDAP), nil
		}

		return domain.WhoisResult{}, err
	}

	return domain.Registered(name, domain.SourceRDAP, rec), nil
}
