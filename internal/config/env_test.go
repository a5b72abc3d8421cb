package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_VERSION":   "1.2.3",
		"APP_PAGE_SIZE": "250",

		"ADAPTER_ADDRESS":         "http://localhost:8000/api/v1",
		"ADAPTER_REQUEST_TIMEOUT": "30s",

		"SESSION_CACHE_PATH": "/tmp/session.json",
	}
	for name, value := range envVars {
		t.Setenv(name, value)
	}

	// Act
	cfg := &ClientConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, 250, cfg.App.PageSize)

	assert.Equal(t, "http://localhost:8000/api/v1", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)

	assert.Equal(t, "/tmp/session.json", cfg.Session.CachePath)
}

func TestParseEnv_PartialFields(t *testing.T) {
	t.Setenv("ADAPTER_ADDRESS", "backend:9000")

	cfg := &ClientConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Equal(t, "backend:9000", cfg.Adapter.HTTPAddress)
	assert.Zero(t, cfg.App.PageSize)
	assert.Empty(t, cfg.Session.CachePath)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("ADAPTER_REQUEST_TIMEOUT", "not-a-duration")

	cfg := &ClientConfig{}
	err := parseEnv(cfg)

	assert.Error(t, err)
}
