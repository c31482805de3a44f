// Package whois defines the provider abstraction used to resolve domain
// registration data, plus the pure helpers every provider shares: lifecycle
// status and expiration classification, registrar-ID naming and timestamp
// parsing.
package whois

import (
	"context"
	"whoisresolver/pkg/domain"
)

// Provider resolves registration data for a domain from one upstream
// service.
//
// Lookup returns an available result when the upstream affirmatively reports
// the domain as unregistered, a registered result carrying the normalized
// record on success, and an error (classified with serrors kinds) when no
// verdict could be reached. Implementations never return a partially filled
// record.
//
//go:generate mockgen -package mockwhois -source=interface.go -destination=mock/mockwhois.go *
type Provider interface {
	// Name identifies the provider in results, logs and metrics.
	Name() domain.Source
	// Lookup queries the upstream for the given ASCII domain name.
	Lookup(ctx context.Context, name string) (domain.WhoisResult, error)
}
