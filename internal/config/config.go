// File: internal/config/config.go
package config

import (
	"fmt"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Publish PublishConfig `mapstructure:"publish" yaml:"publish"`
}

// LoggerConfig controls the zap logger and its lumberjack file sink.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// StorageConfig locates durable state (persisted sessions, logs).
type StorageConfig struct {
	// BaseDir is the root for cookies and logs. Empty means ~/.spreado.
	BaseDir string `mapstructure:"base_dir" yaml:"base_dir"`
}

// CookiesDir returns the directory holding per-platform session files.
func (s StorageConfig) CookiesDir() (string, error) {
	base := s.BaseDir
	if base == "" {
		home, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		base = filepath.Join(home, ".spreado")
	}
	return filepath.Join(base, "cookies"), nil
}

// BrowserConfig controls the shared browser process.
type BrowserConfig struct {
	Headless       bool          `mapstructure:"headless" yaml:"headless"`
	ExecutablePath string        `mapstructure:"executable_path" yaml:"executable_path"`
	Args           []string      `mapstructure:"args" yaml:"args"`
	LaunchTimeout  time.Duration `mapstructure:"launch_timeout" yaml:"launch_timeout"`
	InstallTimeout time.Duration `mapstructure:"install_timeout" yaml:"install_timeout"`
	// CloseGrace bounds how long a zero-refcount close may take before the
	// pool abandons the wait.
	CloseGrace time.Duration `mapstructure:"close_grace" yaml:"close_grace"`
}

// PublishConfig carries the retry/poll policy knobs of the publish pipeline.
type PublishConfig struct {
	NavigationTimeout      time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
	ProcessingPollInterval time.Duration `mapstructure:"processing_poll_interval" yaml:"processing_poll_interval"`
	ProcessingMaxAttempts  int           `mapstructure:"processing_max_attempts" yaml:"processing_max_attempts"`
	ConfirmPollInterval    time.Duration `mapstructure:"confirm_poll_interval" yaml:"confirm_poll_interval"`
	ConfirmTimeout         time.Duration `mapstructure:"confirm_timeout" yaml:"confirm_timeout"`
	VerifyTimeout          time.Duration `mapstructure:"verify_timeout" yaml:"verify_timeout"`
	LoginTimeout           time.Duration `mapstructure:"login_timeout" yaml:"login_timeout"`
}

// NewDefaultConfig creates a configuration populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Cannot happen with defaults only.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "spreado")
	v.SetDefault("logger.log_file", "spreado.log")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Storage --
	v.SetDefault("storage.base_dir", "")

	// -- Browser --
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.executable_path", "")
	v.SetDefault("browser.launch_timeout", "60s")
	v.SetDefault("browser.install_timeout", "5m")
	v.SetDefault("browser.close_grace", "3s")

	// -- Publish --
	v.SetDefault("publish.navigation_timeout", "30s")
	v.SetDefault("publish.processing_poll_interval", "2s")
	v.SetDefault("publish.processing_max_attempts", 90)
	v.SetDefault("publish.confirm_poll_interval", "2s")
	v.SetDefault("publish.confirm_timeout", "30s")
	v.SetDefault("publish.verify_timeout", "30s")
	v.SetDefault("publish.login_timeout", "3m")
}

// NewConfigFromViper creates a configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Publish.ProcessingMaxAttempts <= 0 {
		return fmt.Errorf("publish.processing_max_attempts must be a positive integer")
	}
	if c.Publish.ProcessingPollInterval <= 0 {
		return fmt.Errorf("publish.processing_poll_interval must be a positive duration")
	}
	if c.Publish.ConfirmPollInterval <= 0 {
		return fmt.Errorf("publish.confirm_poll_interval must be a positive duration")
	}
	if c.Publish.ConfirmTimeout <= 0 {
		return fmt.Errorf("publish.confirm_timeout must be a positive duration")
	}
	if c.Publish.NavigationTimeout <= 0 {
		return fmt.Errorf("publish.navigation_timeout must be a positive duration")
	}
	if c.Publish.VerifyTimeout <= 0 {
		return fmt.Errorf("publish.verify_timeout must be a positive duration")
	}
	if c.Publish.LoginTimeout <= 0 {
		return fmt.Errorf("publish.login_timeout must be a positive duration")
	}
	if c.Browser.CloseGrace <= 0 {
		return fmt.Errorf("browser.close_grace must be a positive duration")
	}
	return nil
}
