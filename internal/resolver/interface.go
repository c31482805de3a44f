// Package resolver resolves a domain name to a single WHOIS verdict by
// consulting an ordered chain of providers, one at a time.
package resolver

import (
	"context"
	"whoisresolver/pkg/domain"
)

// Resolver is the entrypoint used by the CLI and the HTTP API.
//
//go:generate mockgen -package mockresolver -source=interface.go -destination=mock/mockresolver.go *
type Resolver interface {
	// Resolve returns the verdict for name. The returned error is non-nil only
	// when name is not a valid ASCII domain name (serrors.ErrBadRequest) or no
	// provider is configured; provider failures are reported in the result.
	Resolve(ctx context.Context, name string) (domain.WhoisResult, error)
}
