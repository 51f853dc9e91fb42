package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 8080
database:
  host: localhost
  port: 5432
  user: globetrotter
  password: secret
  dbname: globetrotter
  sslmode: disable
jwt:
  secret: testsecret
log:
  level: debug
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Server.Port != 8080 {
			t.Errorf("Expected port 8080, got %d", cfg.Server.Port)
		}
		if cfg.JWT.Secret != "testsecret" {
			t.Errorf("Expected jwt secret 'testsecret', got %q", cfg.JWT.Secret)
		}
		wantDSN := "host=localhost port=5432 user=globetrotter password=secret dbname=globetrotter sslmode=disable"
		if got := cfg.Database.DSN(); got != wantDSN {
			t.Errorf("Expected DSN %q, got %q", wantDSN, got)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		path := writeConfig(t, "server:\n  port: 1\n")
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.JWT.AccessTTLMinutes != 15 {
			t.Errorf("Expected default access TTL 15, got %d", cfg.JWT.AccessTTLMinutes)
		}
		if cfg.JWT.RefreshTTLDays != 7 {
			t.Errorf("Expected default refresh TTL 7, got %d", cfg.JWT.RefreshTTLDays)
		}
		if cfg.RateLimit.RequestsPerSecond != 5 || cfg.RateLimit.Burst != 10 {
			t.Errorf("Expected default rate limit 5/10, got %v/%d",
				cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("Expected an error for a missing config file")
		}
	})

	t.Run("MalformedYAML", func(t *testing.T) {
		path := writeConfig(t, "server: [not: valid")
		if _, err := Load(path); err == nil {
			t.Error("Expected an error for malformed yaml")
		}
	})
}
