package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the dashboard.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig controls the HTTP listener and the cookies it sets.
type ServerConfig struct {
	Address string `mapstructure:"address"`
	// SecureCookies marks the session cookies and the CSRF cookie Secure. Enable behind TLS.
	SecureCookies bool `mapstructure:"secure_cookies"`
	// CSRFKey is a hex encoded 32 byte key. Empty means a random key per process start.
	CSRFKey        string        `mapstructure:"csrf_key"`
	TrustedOrigins []string      `mapstructure:"trusted_origins"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
}

// APIConfig points at the remote REST API that owns all data.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// DatabaseConfig is only used for the activity log. An empty URI disables it.
type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads config.yaml from path, then lets environment variables
// override it (server.address -> SERVER_ADDRESS).
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":3000")
	v.SetDefault("server.secure_cookies", false)
	v.SetDefault("server.csrf_key", "")
	v.SetDefault("server.trusted_origins", []string{"localhost:3000"})
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("api.base_url", "http://localhost:5000")
	v.SetDefault("database.uri", "")
	v.SetDefault("database.name", "fitness_dashboard")
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// A missing file is fine; defaults and env vars still apply.
	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	config.API.BaseURL = strings.TrimRight(config.API.BaseURL, "/")
	return config, nil
}
