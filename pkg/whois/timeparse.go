package whois

import (
	"fmt"
	"strings"
	"time"
)

// timeLayouts are the timestamp layouts seen across registry responses.
var timeLayouts = []string{ //nolint: gochecknoglobals
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006.01.02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02-Jan-2006",
}

// ParseTime parses a registry timestamp. Empty input yields (nil, nil) so
// callers can omit absent fields; non-empty input in an unknown layout is an
// error. Timestamps without a zone are taken as UTC.
func ParseTime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil //nolint: nilnil
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()

			return &t, nil
		}
	}

	return nil, fmt.Errorf("unrecognized timestamp %q", raw)
}
