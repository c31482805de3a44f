package domain

import (
	"encoding/json"
	"time"
)

// LifecycleStatus is the canonical lifecycle state of a registered domain.
type LifecycleStatus string

const (
	// LifecycleActive is the default state; pending operations also map here.
	LifecycleActive LifecycleStatus = "ACTIVE"
	// LifecycleExpired indicates the registration period has lapsed.
	LifecycleExpired LifecycleStatus = "EXPIRED"
	// LifecycleSuspended indicates the registry or registrar put the domain on hold.
	LifecycleSuspended LifecycleStatus = "SUSPENDED"
	// LifecycleTransferred indicates the domain moved to another registrar.
	LifecycleTransferred LifecycleStatus = "TRANSFERRED"
	// LifecycleDeleted indicates the domain is being, or has been, deleted.
	LifecycleDeleted LifecycleStatus = "DELETED"
)

// Source names the provider that produced a result.
type Source string

const (
	SourceRDAP     Source = "rdap"
	SourceRDASH    Source = "rdash"
	SourceWhoisAPI Source = "whoisapi"
)

// Contact is a single registrant, admin or tech contact.
type Contact struct {
	Name         string `json:"name,omitempty"`
	Organization string `json:"organization,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Street       string `json:"street,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
	Country      string `json:"country,omitempty"`
}

// Contacts groups the contacts only the registry-partner provider exposes.
type Contacts struct {
	Registrant *Contact `json:"registrant,omitempty"`
	Admin      *Contact `json:"admin,omitempty"`
	Tech       *Contact `json:"tech,omitempty"`
}

// CanonicalRecord is the normalized registration data of a registered domain.
type CanonicalRecord struct {
	Registrar    string          `json:"registrar,omitempty"`
	Status       LifecycleStatus `json:"status"`
	RegisteredAt *time.Time      `json:"registeredAt,omitempty"`
	ExpiresAt    *time.Time      `json:"expiresAt,omitempty"`
	// Nameservers keeps the provider's order; duplicates are not removed.
	Nameservers []string `json:"nameservers"`
	// RawPayload is the provider's response, passed through for audit and display.
	RawPayload       json.RawMessage `json:"rawProviderPayload,omitempty"`
	ExtendedContacts *Contacts       `json:"extendedContacts,omitempty"`
}

// WhoisResult is the outcome of resolving one domain. Exactly one of three
// shapes holds: available (no record, no error), registered (record, no
// error) or unresolvable (no record, error). Use the constructors below to
// build results.
type WhoisResult struct {
	Domain    string           `json:"domain"`
	Available bool             `json:"available"`
	Record    *CanonicalRecord `json:"record,omitempty"`
	Error     string           `json:"error,omitempty"`
	Source    Source           `json:"source,omitempty"`
}

// Available returns the result for a domain a provider reports as unregistered.
func Available(name string, source Source) WhoisResult {
	return WhoisResult{Domain: name, Available: true, Source: source}
}

// Registered returns the result for a registered domain.
func Registered(name string, source Source, record CanonicalRecord) WhoisResult {
	return WhoisResult{Domain: name, Record: &record, Source: source}
}

// Unresolvable returns the result for a lookup that produced no verdict.
func Unresolvable(name string, source Source, err error) WhoisResult {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}

	return WhoisResult{Domain: name, Error: msg, Source: source}
}

// IsRegistered reports whether the result carries a record.
func (r WhoisResult) IsRegistered() bool {
	return !r.Available && r.Record != nil
}

// IsUnresolvable reports whether the lookup failed without a verdict.
func (r WhoisResult) IsUnresolvable() bool {
	return !r.Available && r.Record == nil
}
