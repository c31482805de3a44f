package resolver

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLength  = 253
	maxLabelLength = 63
)

// NormalizeDomain validates and canonicalizes a domain name before it is
// sent to any provider:
//   - Trim surrounding whitespace and one trailing dot
//   - Lower-case the name
//   - Require ASCII; IDNs must already be in punycode (xn--) form
//   - Require at least two labels of letters, digits and inner hyphens
//   - Enforce the 253 octet name and 63 octet label limits
func NormalizeDomain(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.TrimSuffix(name, ".")

	if name == "" {
		return "", fmt.Errorf("domain name is empty")
	}
	if len(name) > maxNameLength {
		return "", fmt.Errorf("domain name exceeds %d characters", maxNameLength)
	}
	for i := 0; i < len(name); i++ {
		if name[i] >= utf8.RuneSelf {
			return "", fmt.Errorf("domain name %q is not ASCII; supply the punycode form", raw)
		}
	}

	labels := strings.Split(name, ".")
	if len(labels) < 2 {
		return "", fmt.Errorf("domain name %q has no top-level domain", name)
	}
	for _, label := range labels {
		if err := validateLabel(label); err != nil {
			return "", fmt.Errorf("invalid domain name %q: %w", name, err)
		}
	}

	return name, nil
}

func validateLabel(label string) error {
	if label == "" {
		return fmt.Errorf("empty label")
	}
	if len(label) > maxLabelLength {
		return fmt.Errorf("label %q exceeds %d characters", label, maxLabelLength)
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return fmt.Errorf("label %q starts or ends with a hyphen", label)
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return fmt.Errorf("label %q contains %q", label, c)
		}
	}

	return nil
}
