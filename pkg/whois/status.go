package whois

import (
	"strings"
	"whoisresolver/pkg/domain"
)

// statusKeywords lists lifecycle keywords by descending priority.
var statusKeywords = []struct { //nolint: gochecknoglobals
	keyword string
	status  domain.LifecycleStatus
}{
	{"expired", domain.LifecycleExpired},
	{"suspended", domain.LifecycleSuspended},
	{"transferred", domain.LifecycleTransferred},
	{"deleted", domain.LifecycleDeleted},
	{"pending", domain.LifecycleActive},
}

// ClassifyStatus maps provider status values (EPP codes, RDAP status strings,
// free text) to a canonical lifecycle status. Matching is a case-insensitive
// substring search with fixed keyword priority, so the position of a value in
// statuses does not matter. Empty input, or input with no known keyword, is
// ACTIVE.
func ClassifyStatus(statuses ...string) domain.LifecycleStatus {
	joined := strings.ToLower(strings.Join(statuses, " "))
	for _, k := range statusKeywords {
		if strings.Contains(joined, k.keyword) {
			return k.status
		}
	}

	return domain.LifecycleActive
}
