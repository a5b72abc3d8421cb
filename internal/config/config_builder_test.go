package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// Earlier sources win: a value set by env must survive the merge with the
// defaults appended last.
func TestBuild_FirstNonZeroValueWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &ClientConfig{
		Adapter: ClientAdapter{HTTPAddress: "http://override:9000"},
	})
	b.configs = append(b.configs, defaultConfig())

	cfg, err := b.build()

	require.NoError(t, err)
	assert.Equal(t, "http://override:9000", cfg.Adapter.HTTPAddress)
	// Unset fields fall through to the defaults.
	assert.Equal(t, 15*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 1000, cfg.App.PageSize)
}

func TestBuild_DefaultsAloneValidate(t *testing.T) {
	b := newConfigBuilder().withDefaults()

	cfg, err := b.build()

	require.NoError(t, err)
	assert.NoError(t, cfg.validate())
}

func TestBuild_EmptyConfigFailsValidation(t *testing.T) {
	_, err := newConfigBuilder().build()

	assert.ErrorIs(t, err, ErrInvalidAdapterConfigs)
}

func TestValidate(t *testing.T) {
	valid := func() *ClientConfig {
		cfg := defaultConfig()
		return cfg
	}

	t.Run("missing adapter address", func(t *testing.T) {
		cfg := valid()
		cfg.Adapter.HTTPAddress = ""
		assert.ErrorIs(t, cfg.validate(), ErrInvalidAdapterConfigs)
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		cfg := valid()
		cfg.Adapter.RequestTimeout = 0
		assert.ErrorIs(t, cfg.validate(), ErrInvalidAdapterConfigs)
	})

	t.Run("missing session cache path", func(t *testing.T) {
		cfg := valid()
		cfg.Session.CachePath = ""
		assert.ErrorIs(t, cfg.validate(), ErrInvalidSessionConfigs)
	})

	t.Run("non-positive page size", func(t *testing.T) {
		cfg := valid()
		cfg.App.PageSize = 0
		assert.ErrorIs(t, cfg.validate(), ErrInvalidAppConfigs)
	})
}
