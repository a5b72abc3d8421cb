package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func parseFlagsFromArgs(t *testing.T, args ...string) *ClientConfig {
	t.Helper()

	// Reset flag.CommandLine so each test parses a fresh flag set.
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

	oldArgs := os.Args
	os.Args = append([]string{"cmd"}, args...)
	t.Cleanup(func() { os.Args = oldArgs })

	return ParseFlags()
}

func TestParseFlags_AllFlags(t *testing.T) {
	cfg := parseFlagsFromArgs(t,
		"-a", "http://localhost:8000/api/v1",
		"-request-timeout", "45s",
		"-session-cache", "/tmp/session.json",
		"-page-size", "500",
		"-c", "/etc/biblioteca/config.json",
	)

	assert.Equal(t, "http://localhost:8000/api/v1", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "/tmp/session.json", cfg.Session.CachePath)
	assert.Equal(t, 500, cfg.App.PageSize)
	assert.Equal(t, "/etc/biblioteca/config.json", cfg.JSONFilePath)
}

func TestParseFlags_NoFlags(t *testing.T) {
	cfg := parseFlagsFromArgs(t)

	assert.Empty(t, cfg.Adapter.HTTPAddress)
	assert.Zero(t, cfg.Adapter.RequestTimeout)
	assert.Empty(t, cfg.Session.CachePath)
	assert.Zero(t, cfg.App.PageSize)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseFlags_ConfigAlias(t *testing.T) {
	cfg := parseFlagsFromArgs(t, "-config", "/etc/biblioteca/config.json")

	assert.Equal(t, "/etc/biblioteca/config.json", cfg.JSONFilePath)
}
