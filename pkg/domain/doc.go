// Package domain contains the provider-agnostic types produced by a WHOIS
// resolution: the canonical registration record, the tagged lookup result and
// the lifecycle and expiration classifications. The types carry no transport
// or persistence concerns so callers can store or render them as they see fit.
package domain
