package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"whoisresolver/internal/config"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Environment)
	require.False(t, cfg.RDAP.Disabled)
	require.Equal(t, 10*time.Second, cfg.RDAP.Timeout)
	require.False(t, cfg.RDASH.Enabled)
	require.Equal(t, "https://api.rdash.id/api", cfg.RDASH.BaseURL)
	require.Equal(t, 15*time.Second, cfg.RDASH.Timeout)
	require.Equal(t, 10*time.Second, cfg.WhoisAPI.Timeout)
	require.Equal(t, 4, cfg.Lookup.Concurrency)
	require.Equal(t, "/metrics", cfg.HTTP.MetricsPath)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("RDAP_DISABLED", "true")
	t.Setenv("RDASH_ENABLED", "true")
	t.Setenv("RDASH_RESELLER_ID", "reseller-1")
	t.Setenv("RDASH_API_KEY", "secret")
	t.Setenv("WHOIS_API_URL", "https://whois.example.test/lookup")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.True(t, cfg.RDAP.Disabled)
	require.True(t, cfg.RDASH.Enabled)
	require.Equal(t, "reseller-1", cfg.RDASH.ResellerID)
	require.Equal(t, "secret", cfg.RDASH.APIKey)
	require.Equal(t, "https://whois.example.test/lookup", cfg.WhoisAPI.BaseURL)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment: production
rdap:
  disabled: true
rdash:
  enabled: true
  resellerId: file-reseller
whoisApi:
  baseUrl: https://whois.example.test/file
lookup:
  concurrency: 9
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "production", cfg.Environment)
	require.True(t, cfg.RDAP.Disabled)
	require.True(t, cfg.RDASH.Enabled)
	require.Equal(t, "file-reseller", cfg.RDASH.ResellerID)
	require.Equal(t, "https://whois.example.test/file", cfg.WhoisAPI.BaseURL)
	require.Equal(t, 9, cfg.Lookup.Concurrency)
	require.Equal(t, 15*time.Second, cfg.RDASH.Timeout, "defaults still apply")
}

func TestLoad_FileKeepsRDAPEnabledByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("rdap:\n  disabled: false\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.False(t, cfg.RDAP.Disabled)
	require.Equal(t, 10*time.Second, cfg.RDAP.Timeout)
}
