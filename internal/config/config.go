package config

import (
	"os"
	"path/filepath"
	"time"
)

// ClientConfig is the top-level configuration for the client. It is
// populated by merging values from environment variables, command-line flags
// and an optional JSON file, with defaults filling whatever remains unset.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type ClientConfig struct {
	// App holds application-level settings.
	App ClientApp `envPrefix:"APP_"`

	// Adapter holds the backend address and timeout used by the HTTP
	// transport.
	Adapter ClientAdapter `envPrefix:"ADAPTER_"`

	// Session holds the on-disk session cache settings.
	Session ClientSession `envPrefix:"SESSION_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged below env and flags.
	// Populated via the CONFIG environment variable or the -c/-config flag.
	JSONFilePath string `env:"CONFIG"`
}

// ClientApp holds application-level client settings.
type ClientApp struct {
	// Version is the semantic version string of the running client.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// PageSize is the limit sent to list endpoints. The views fetch one
	// large page and filter client-side.
	// Env: APP_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`
}

// ClientAdapter holds network settings for the outbound transport.
type ClientAdapter struct {
	// HTTPAddress is the backend base URL or host:port.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the default timeout for outbound requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientSession holds the persisted-session settings.
type ClientSession struct {
	// CachePath is the JSON file holding the bearer token, user record and
	// derived role between runs.
	// Env: SESSION_CACHE_PATH
	CachePath string `env:"CACHE_PATH"`
}

// GetClientConfig loads, merges and validates the client configuration from
// all sources in priority order (first non-zero value wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetClientConfig() (*ClientConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

func defaultConfig() *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			PageSize: 1000,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    "http://localhost:8000/api/v1",
			RequestTimeout: 15 * time.Second,
		},
		Session: ClientSession{
			CachePath: defaultSessionCachePath(),
		},
	}
}

// defaultSessionCachePath resolves to the user config directory, falling
// back to a dotfile in the working directory when it cannot be determined.
func defaultSessionCachePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".biblioteca-session.json"
	}
	return filepath.Join(dir, "biblioteca", "session.json")
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Session.CachePath == "" {
		return ErrInvalidSessionConfigs
	}

	if cfg.App.PageSize <= 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}
