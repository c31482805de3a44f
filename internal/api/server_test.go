package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"whoisresolver/internal/api"
	"whoisresolver/internal/api/handler/v1handler"
	"whoisresolver/internal/config"
	mockresolver "whoisresolver/internal/resolver/mock"
	"whoisresolver/pkg/domain"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestServer(t *testing.T) (*mockresolver.MockResolver, *httptest.Server) {
	t.Helper()

	cfg, err := config.Load("")
	require.NoError(t, err)

	res := mockresolver.NewMockResolver(gomock.NewController(t))
	srv := httptest.NewServer(api.NewHandler(api.Deps{Deps: v1handler.Deps{Resolver: res}}, api.NewOptions(cfg)))
	t.Cleanup(srv.Close)

	return res, srv
}

func TestServer_Routes(t *testing.T) {
	res, srv := newTestServer(t)
	res.EXPECT().Resolve(gomock.Any(), "example.com").Return(domain.Available("example.com", domain.SourceRDAP), nil)

	cases := []struct {
		path        string
		status      int
		contentType string
	}{
		{path: "/v1/whois/example.com", status: http.StatusOK, contentType: "application/json"},
		{path: "/specs/v1.yaml", status: http.StatusOK, contentType: "application/yaml"},
		{path: "/metrics", status: http.StatusOK},
		{path: "/v1/docs/", status: http.StatusOK},
		{path: "/debug/pprof/", status: http.StatusOK},
		{path: "/v2/whois/example.com", status: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tc.path) //nolint: noctx
			require.NoError(t, err)
			t.Cleanup(func() { _ = resp.Body.Close() })

			require.Equal(t, tc.status, resp.StatusCode)
			require.NotEmpty(t, resp.Header.Get("X-Request-Id"))
			require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
			if tc.contentType != "" {
				require.Equal(t, tc.contentType, resp.Header.Get("Content-Type"))
			}
		})
	}
}

func TestServer_Preflight(t *testing.T) {
	_, srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/v1/whois/example.com", nil) //nolint: noctx
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}
