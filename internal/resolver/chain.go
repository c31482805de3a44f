package resolver

import (
	"net/http"
	"whoisresolver/internal/config"
	"whoisresolver/pkg/whois"
	"whoisresolver/pkg/whois/rdap"
	"whoisresolver/pkg/whois/rdash"
	"whoisresolver/pkg/whois/whoisapi"
)

// Options select and configure the providers of the chain. They are
// typically derived from application configuration.
type Options struct {
	// RDAPEnabled puts the RDAP client first in the chain.
	RDAPEnabled bool
	RDAP        rdap.Options
	// RDASHEnabled makes the registry partner the secondary provider. The
	// WHOIS API then only runs as the partner's fallback.
	RDASHEnabled bool
	RDASH        rdash.Options
	WhoisAPI     whoisapi.Options
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		RDAPEnabled: !cfg.RDAP.Disabled,
		RDAP: rdap.Options{
			Timeout:       cfg.RDAP.Timeout,
			DefaultServer: cfg.RDAP.DefaultServer,
		},
		RDASHEnabled: cfg.RDASH.Enabled,
		RDASH: rdash.Options{
			BaseURL:    cfg.RDASH.BaseURL,
			ResellerID: cfg.RDASH.ResellerID,
			APIKey:     cfg.RDASH.APIKey,
			Timeout:    cfg.RDASH.Timeout,
		},
		WhoisAPI: whoisapi.Options{
			BaseURL: cfg.WhoisAPI.BaseURL,
			Timeout: cfg.WhoisAPI.Timeout,
		},
	}
}

// Chain builds the ordered provider list:
//
//	[rdap] -> rdash (falling back to whoisapi)
//	[rdap] -> whoisapi
//
// The secondary provider is always present; RDAP is optional.
func Chain(httpClient *http.Client, opts Options) []whois.Provider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var providers []whois.Provider
	if opts.RDAPEnabled {
		providers = append(providers, rdap.New(httpClient, opts.RDAP))
	}

	fallback := whoisapi.New(httpClient, opts.WhoisAPI)
	if opts.RDASHEnabled {
		providers = append(providers, rdash.New(httpClient, fallback, opts.RDASH))
	} else {
		providers = append(providers, fallback)
	}

	return providers
}
