package rdash_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
	"whoisresolver/pkg/domain"
	"whoisresolver/pkg/serrors"
	mockwhois "whoisresolver/pkg/whois/mock"
	"whoisresolver/pkg/whois/rdash"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func respond(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

var testOpts = rdash.Options{ //nolint: gochecknoglobals
	BaseURL:    "https://partner.example.test/api/",
	ResellerID: "reseller-1",
	APIKey:     "secret",
}

const detailBody = `{"success":true,"data":{
	"id":42,"name":"contoh.id","registrar":"PT Partner",
	"created_at":"2020-01-02 03:04:05","expired_at":"2026-01-02 03:04:05",
	"nameservers":["ns1.partner.id","ns2.partner.id"],"status":"active",
	"registrant":{"name":"Budi","organization":"PT Contoh","email":"budi@contoh.id","country":"ID"},
	"tech":{"name":"Tech Team","email":"tech@contoh.id"}}}`

func TestClient_Lookup_TwoPhase(t *testing.T) {
	ctrl := gomock.NewController(t)
	fallback := mockwhois.NewMockProvider(ctrl)

	var paths []string
	c := rdash.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		paths = append(paths, r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "reseller-1", user)
		require.Equal(t, "secret", pass)
		require.Equal(t, "partner.example.test", r.URL.Host)

		switch r.URL.Path {
		case "/api/domains":
			require.Equal(t, "contoh.id", r.URL.Query().Get("domain"))

			return respond(http.StatusOK, `{"success":true,"data":[{"id":42,"name":"contoh.id"}]}`), nil
		case "/api/domains/42":
			return respond(http.StatusOK, detailBody), nil
		}

		return respond(http.StatusTeapot, ""), nil
	})}, fallback, testOpts)

	res, err := c.Lookup(context.Background(), "contoh.id")
	require.NoError(t, err)
	require.Equal(t, []string{"/api/domains", "/api/domains/42"}, paths)
	require.True(t, res.IsRegistered())
	require.Equal(t, domain.SourceRDASH, res.Source)
	require.Equal(t, "PT Partner", res.Record.Registrar)
	require.Equal(t, domain.LifecycleActive, res.Record.Status)
	require.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), *res.Record.ExpiresAt)
	require.Equal(t, []string{"ns1.partner.id", "ns2.partner.id"}, res.Record.Nameservers)
	require.NotNil(t, res.Record.ExtendedContacts)
	require.Equal(t, "PT Contoh", res.Record.ExtendedContacts.Registrant.Organization)
	require.Nil(t, res.Record.ExtendedContacts.Admin)
	require.Equal(t, "tech@contoh.id", res.Record.ExtendedContacts.Tech.Email)
}

func TestClient_Lookup_MissingCredentialsShortCircuits(t *testing.T) {
	ctrl := gomock.NewController(t)
	fallback := mockwhois.NewMockProvider(ctrl)

	c := rdash.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		t.Fatal("no request expected")

		return nil, nil
	})}, fallback, rdash.Options{ResellerID: "reseller-1"})

	_, err := c.Lookup(context.Background(), "contoh.id")
	require.ErrorIs(t, err, serrors.ErrConfiguration)
}

func TestClient_Lookup_FallsBack(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "search 404", status: http.StatusNotFound, body: `{"success":false}`},
		{name: "empty result set", status: http.StatusOK, body: `{"success":true,"data":[]}`},
		{name: "null result set", status: http.StatusOK, body: `{"success":true,"data":null}`},
		{name: "not whitelisted", status: http.StatusUnprocessableEntity, body: `{"success":false,"message":"Your IP is Not Whitelisted"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			fallback := mockwhois.NewMockProvider(ctrl)
			want := domain.Available("contoh.id", domain.SourceWhoisAPI)
			fallback.EXPECT().Name().Return(domain.SourceWhoisAPI).AnyTimes()
			fallback.EXPECT().Lookup(gomock.Any(), "contoh.id").Return(want, nil)

			calls := 0
			c := rdash.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
				calls++

				return respond(tc.status, tc.body), nil
			})}, fallback, testOpts)

			res, err := c.Lookup(context.Background(), "contoh.id")
			require.NoError(t, err)
			require.Equal(t, want, res)
			require.Equal(t, 1, calls, "detail must not be requested")
		})
	}
}

func TestClient_Lookup_FallbackErrorIsFinal(t *testing.T) {
	ctrl := gomock.NewController(t)
	fallback := mockwhois.NewMockProvider(ctrl)
	fallback.EXPECT().Name().Return(domain.SourceWhoisAPI).AnyTimes()
	fallback.EXPECT().Lookup(gomock.Any(), "contoh.id").
		Return(domain.WhoisResult{}, serrors.With(serrors.ErrUpstream, "whois api down"))

	c := rdash.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		return respond(http.StatusNotFound, ""), nil
	})}, fallback, testOpts)

	_, err := c.Lookup(context.Background(), "contoh.id")
	require.ErrorIs(t, err, serrors.ErrUpstream)
}

func TestClient_Lookup_DetailWhitelistFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	fallback := mockwhois.NewMockProvider(ctrl)
	want := domain.Registered("contoh.id", domain.SourceWhoisAPI, domain.CanonicalRecord{Status: domain.LifecycleActive})
	fallback.EXPECT().Name().Return(domain.SourceWhoisAPI).AnyTimes()
	fallback.EXPECT().Lookup(gomock.Any(), "contoh.id").Return(want, nil)

	c := rdash.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		if r.URL.Path == "/api/domains" {
			return respond(http.StatusOK, `{"success":true,"data":[{"id":"abc","name":"contoh.id"}]}`), nil
		}
		require.Equal(t, "/api/domains/abc", r.URL.Path)

		return respond(http.StatusUnprocessableEntity, `IP not whitelisted`), nil
	})}, fallback, testOpts)

	res, err := c.Lookup(context.Background(), "contoh.id")
	require.NoError(t, err)
	require.Equal(t, want, res)
}

func TestClient_Lookup_ErrorsWithoutFallback(t *testing.T) {
	cases := []struct {
		name    string
		handler rtFunc
		kind    serrors.Kind
	}{
		{
			name: "search 500",
			handler: func(r *http.Request) (*http.Response, error) {
				return respond(http.StatusInternalServerError, "boom"), nil
			},
			kind: serrors.ErrUpstream,
		},
		{
			name: "search 422 validation",
			handler: func(r *http.Request) (*http.Response, error) {
				return respond(http.StatusUnprocessableEntity, `{"message":"domain is invalid"}`), nil
			},
			kind: serrors.ErrUpstream,
		},
		{
			name: "detail 404",
			handler: func(r *http.Request) (*http.Response, error) {
				if r.URL.Path == "/api/domains" {
					return respond(http.StatusOK, `{"data":[{"id":7}]}`), nil
				}

				return respond(http.StatusNotFound, ""), nil
			},
			kind: serrors.ErrUpstream,
		},
		{
			name: "malformed search",
			handler: func(r *http.Request) (*http.Response, error) {
				return respond(http.StatusOK, `[`), nil
			},
			kind: serrors.ErrParse,
		},
		{
			name: "malformed detail date",
			handler: func(r *http.Request) (*http.Response, error) {
				if r.URL.Path == "/api/domains" {
					return respond(http.StatusOK, `{"data":[{"id":7}]}`), nil
				}

				return respond(http.StatusOK, `{"success":true,"data":{"expired_at":"someday"}}`), nil
			},
			kind: serrors.ErrParse,
		},
		{
			name: "detail failure envelope",
			handler: func(r *http.Request) (*http.Response, error) {
				if r.URL.Path == "/api/domains" {
					return respond(http.StatusOK, `{"success":true,"data":[{"id":42}]}`), nil
				}

				return respond(http.StatusOK, `{"success":false,"message":"domain not found"}`), nil
			},
			kind: serrors.ErrParse,
		},
		{
			name: "detail without data",
			handler: func(r *http.Request) (*http.Response, error) {
				if r.URL.Path == "/api/domains" {
					return respond(http.StatusOK, `{"success":true,"data":[{"id":42}]}`), nil
				}

				return respond(http.StatusOK, `{"success":true,"data":null}`), nil
			},
			kind: serrors.ErrParse,
		},
		{
			name: "detail with empty data",
			handler: func(r *http.Request) (*http.Response, error) {
				if r.URL.Path == "/api/domains" {
					return respond(http.StatusOK, `{"success":true,"data":[{"id":42}]}`), nil
				}

				return respond(http.StatusOK, `{"success":true,"data":{"id":42}}`), nil
			},
			kind: serrors.ErrParse,
		},
		{
			name: "transport failure",
			handler: func(r *http.Request) (*http.Response, error) {
				return nil, errors.New("connection reset")
			},
			kind: serrors.ErrUnavailable,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			fallback := mockwhois.NewMockProvider(ctrl) // no calls expected

			c := rdash.New(&http.Client{Transport: tc.handler}, fallback, testOpts)
			_, err := c.Lookup(context.Background(), "contoh.id")
			require.ErrorIs(t, err, tc.kind)
		})
	}
}

func TestNormalize_DefaultsAndOmissions(t *testing.T) {
	rec, err := rdash.Normalize([]byte(`{"success":true,"data":{"name":"contoh.id"}}`))
	require.NoError(t, err)
	require.Equal(t, domain.LifecycleActive, rec.Status)
	require.Nil(t, rec.ExtendedContacts)
	require.Nil(t, rec.RegisteredAt)
	require.NotNil(t, rec.Nameservers)

	body := `{"success":true,"data":{"status":"Suspended by registry"}}`
	rec, err = rdash.Normalize([]byte(body))
	require.NoError(t, err)
	require.Equal(t, domain.LifecycleSuspended, rec.Status)
	require.JSONEq(t, body, string(rec.RawPayload))
}

func TestNormalize_RejectsRecordsWithoutData(t *testing.T) {
	for _, body := range []string{
		`{"success":false,"message":"not found"}`,
		`{"success":false,"data":{"name":"contoh.id"}}`,
		`{"success":true}`,
		`{"success":true,"data":{}}`,
	} {
		_, err := rdash.Normalize([]byte(body))
		require.ErrorIs(t, err, serrors.ErrParse, body)
	}
}
