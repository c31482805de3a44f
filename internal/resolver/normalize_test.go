package resolver_test

import (
	"strings"
	"testing"
	"whoisresolver/internal/resolver"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDomain(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
		ok   bool
	}{
		{name: "already canonical", in: "example.com", out: "example.com", ok: true},
		{name: "lowercase and trim", in: "  Example.COM \n", out: "example.com", ok: true},
		{name: "trailing dot", in: "example.co.id.", out: "example.co.id", ok: true},
		{name: "punycode", in: "xn--mnchen-3ya.de", out: "xn--mnchen-3ya.de", ok: true},
		{name: "hyphen and digits", in: "my-shop24.id", out: "my-shop24.id", ok: true},
		{name: "empty", in: "   ", ok: false},
		{name: "single label", in: "localhost", ok: false},
		{name: "unicode", in: "münchen.de", ok: false},
		{name: "empty label", in: "example..com", ok: false},
		{name: "leading hyphen", in: "-example.com", ok: false},
		{name: "path injection", in: "example.com/../admin", ok: false},
		{name: "query injection", in: "example.com?x=1", ok: false},
		{name: "long label", in: strings.Repeat("a", 64) + ".com", ok: false},
		{name: "long name", in: strings.Repeat("abcdefghi.", 26) + "com", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolver.NormalizeDomain(tc.in)
			if !tc.ok {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.out, got)
		})
	}
}
