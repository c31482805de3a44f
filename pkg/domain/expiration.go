package domain

// ExpirationStatus classifies how close a domain is to its expiry date.
type ExpirationStatus string

const (
	ExpirationActive       ExpirationStatus = "active"
	ExpirationExpiringSoon ExpirationStatus = "expiring_soon"
	ExpirationExpired      ExpirationStatus = "expired"
)

// Expiration is the expiry classification of a record.
type Expiration struct {
	Status ExpirationStatus `json:"status"`
	// DaysUntilExpiry is signed; it is negative once the domain has expired.
	DaysUntilExpiry int `json:"daysUntilExpiry"`
}

// Report is a WhoisResult enriched for presentation by the CLI and the HTTP
// API. Expiration is set only for registered records that carry an expiry.
type Report struct {
	WhoisResult
	Expiration *Expiration `json:"expiration,omitempty"`
}
