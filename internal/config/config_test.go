package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != ":3000" {
		t.Errorf("address = %q", cfg.Server.Address)
	}
	if cfg.API.BaseURL != "http://localhost:5000" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.Database.URI != "" || cfg.Database.Name != "fitness_dashboard" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("read timeout = %v", cfg.Server.ReadTimeout)
	}
	if len(cfg.Server.TrustedOrigins) != 1 || cfg.Server.TrustedOrigins[0] != "localhost:3000" {
		t.Errorf("trusted origins = %v", cfg.Server.TrustedOrigins)
	}
	if cfg.Log.Format != "json" || cfg.Sentry.Environment != "development" {
		t.Errorf("log/sentry = %+v %+v", cfg.Log, cfg.Sentry)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":8081"
  secure_cookies: true
api:
  base_url: "https://api.example.com/"
log:
  level: debug
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("DATABASE_URI", "mongodb://db:27017")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != ":8081" || !cfg.Server.SecureCookies {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.API.BaseURL != "https://api.example.com" {
		t.Errorf("base url = %q, want trailing slash trimmed", cfg.API.BaseURL)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %q, env should win over file", cfg.Log.Level)
	}
	if cfg.Database.URI != "mongodb://db:27017" {
		t.Errorf("database uri = %q", cfg.Database.URI)
	}
}

func TestLoadConfig_BadFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(dir); err == nil {
		t.Fatal("expected an error for malformed yaml")
	}
}
