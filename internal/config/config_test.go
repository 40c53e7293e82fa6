// File: internal/config/config_test.go
package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 90, cfg.Publish.ProcessingMaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Publish.ProcessingPollInterval)
	assert.Equal(t, 30*time.Second, cfg.Publish.ConfirmTimeout)
	assert.Equal(t, 3*time.Minute, cfg.Publish.LoginTimeout)
	assert.Equal(t, 3*time.Second, cfg.Browser.CloseGrace)

	require.NoError(t, cfg.Validate())
}

func TestCookiesDirWithExplicitBase(t *testing.T) {
	cfg := StorageConfig{BaseDir: "/srv/spreado"}
	dir, err := cfg.CookiesDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/spreado", "cookies"), dir)
}

func TestCookiesDirDefaultsToHome(t *testing.T) {
	dir, err := StorageConfig{}.CookiesDir()
	require.NoError(t, err)
	assert.Contains(t, dir, ".spreado")
	assert.Equal(t, "cookies", filepath.Base(dir))
}

func TestNewConfigFromViperOverrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("browser.headless", false)
	v.Set("publish.processing_max_attempts", 7)

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 7, cfg.Publish.ProcessingMaxAttempts)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero processing attempts", func(c *Config) { c.Publish.ProcessingMaxAttempts = 0 }},
		{"negative poll interval", func(c *Config) { c.Publish.ProcessingPollInterval = -time.Second }},
		{"zero confirm poll interval", func(c *Config) { c.Publish.ConfirmPollInterval = 0 }},
		{"zero confirm timeout", func(c *Config) { c.Publish.ConfirmTimeout = 0 }},
		{"zero navigation timeout", func(c *Config) { c.Publish.NavigationTimeout = 0 }},
		{"zero verify timeout", func(c *Config) { c.Publish.VerifyTimeout = 0 }},
		{"negative login timeout", func(c *Config) { c.Publish.LoginTimeout = -time.Minute }},
		{"zero close grace", func(c *Config) { c.Browser.CloseGrace = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
