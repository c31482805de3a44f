package whois

import (
	"math"
	"time"
	"whoisresolver/pkg/domain"
)

// ExpiringSoonDays is the inclusive upper bound of the expiring-soon window.
const ExpiringSoonDays = 30

// ClassifyExpiration classifies expiry relative to now. Days are rounded up,
// so an expiry a few hours away still counts as one day left, and are signed
// (an expiry one day in the past yields -1).
func ClassifyExpiration(expiry, now time.Time) domain.Expiration {
	days := int(math.Ceil(expiry.Sub(now).Hours() / 24))

	switch {
	case days < 0:
		return domain.Expiration{Status: domain.ExpirationExpired, DaysUntilExpiry: days}
	case days <= ExpiringSoonDays:
		return domain.Expiration{Status: domain.ExpirationExpiringSoon, DaysUntilExpiry: days}
	default:
		return domain.Expiration{Status: domain.ExpirationActive, DaysUntilExpiry: days}
	}
}

// NewReport attaches the expiration classification of res relative to now.
func NewReport(res domain.WhoisResult, now time.Time) domain.Report {
	report := domain.Report{WhoisResult: res}
	if res.Record != nil && res.Record.ExpiresAt != nil {
		exp := ClassifyExpiration(*res.Record.ExpiresAt, now)
		report.Expiration = &exp
	}

	return report
}
