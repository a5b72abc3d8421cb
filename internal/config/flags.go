package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a backend base URL or host:port
//	-request-timeout outbound request timeout (e.g., "30s", "1m")
//	-session-cache path of the persisted session file
//	-page-size list request page size
//	-c/-config json file path with configs
func ParseFlags() *ClientConfig {
	var backendAddress string
	var requestTimeout time.Duration
	var sessionCachePath string
	var pageSize int
	var jsonConfigPath string

	flag.StringVar(&backendAddress, "a", "", "Backend base URL or host:port")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&sessionCachePath, "session-cache", "", "Session cache file path")
	flag.IntVar(&pageSize, "page-size", 0, "List request page size")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &ClientConfig{
		App: ClientApp{
			PageSize: pageSize,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    backendAddress,
			RequestTimeout: requestTimeout,
		},
		Session: ClientSession{
			CachePath: sessionCachePath,
		},
		JSONFilePath: jsonConfigPath,
	}
}
