package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration. It is read once at
// startup and handed to constructors by value.
type Config struct {
	// Environment specifies the current running environment (development, production)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel is the minimum level logged in production
	LogLevel string `env:"LOG_LEVEL" env-default:"info" yaml:"logLevel"`

	// HTTP contains the settings of the lookup API server
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for a single lookup request.
		// It must leave room for the whole provider chain.
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"45s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// RDAP configures the primary provider
	RDAP struct {
		// Disabled removes RDAP from the front of the chain
		Disabled bool `env:"RDAP_DISABLED" yaml:"disabled"`
		// Timeout bounds each RDAP request
		Timeout time.Duration `env:"RDAP_TIMEOUT" env-default:"10s" yaml:"timeout"`
		// DefaultServer is used for TLDs without a dedicated RDAP server
		DefaultServer string `env:"RDAP_DEFAULT_SERVER" env-default:"https://rdap.verisign.com/com/v1" yaml:"defaultServer"`
	} `yaml:"rdap"`

	// RDASH configures the registry-partner provider
	RDASH struct {
		// Enabled selects the registry partner as secondary provider instead of the WHOIS API
		Enabled bool `env:"RDASH_ENABLED" env-default:"false" yaml:"enabled"`
		// BaseURL is the partner API root
		BaseURL string `env:"RDASH_BASE_URL" env-default:"https://api.rdash.id/api" yaml:"baseUrl"`
		// ResellerID is the Basic-auth user
		ResellerID string `env:"RDASH_RESELLER_ID" yaml:"resellerId"`
		// APIKey is the Basic-auth password
		APIKey string `env:"RDASH_API_KEY" yaml:"apiKey"`
		// Timeout bounds each partner request
		Timeout time.Duration `env:"RDASH_TIMEOUT" env-default:"15s" yaml:"timeout"`
	} `yaml:"rdash"`

	// WhoisAPI configures the generic WHOIS-API provider
	WhoisAPI struct {
		// BaseURL is queried with ?domain=<name>
		BaseURL string `env:"WHOIS_API_URL" yaml:"baseUrl"`
		// Timeout bounds each request
		Timeout time.Duration `env:"WHOIS_API_TIMEOUT" env-default:"10s" yaml:"timeout"`
	} `yaml:"whoisApi"`

	// Lookup configures the lookup CLI
	Lookup struct {
		// Concurrency limits how many domains the CLI resolves at the same time
		Concurrency int `env:"LOOKUP_CONCURRENCY" env-default:"4" yaml:"concurrency"`
	} `yaml:"lookup"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load reads the yaml config file at configPath and applies environment
// overrides. When configPath is empty or the file does not exist, only the
// environment (and defaults) are used.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if configPath != "" {
		_, err := os.Stat(configPath)
		switch {
		case err == nil:
			if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
				return nil, fmt.Errorf("could not read config: %w", err)
			}

			return &cfg, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("could not stat config file: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("could not read config from environment: %w", err)
	}

	return &cfg, nil
}
