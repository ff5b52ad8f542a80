package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "DB_PATH", "JWT_SECRET", "JWT_TTL", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load("")
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Path != "./data/moneyshare.db" {
		t.Errorf("DB path = %q", cfg.Database.Path)
	}
	if cfg.JWT.Secret != "" {
		t.Errorf("JWT secret = %q, want empty", cfg.JWT.Secret)
	}
	if cfg.JWT.TTL != 24*time.Hour {
		t.Errorf("JWT TTL = %v, want 24h", cfg.JWT.TTL)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_TTL", "1h30m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load("")
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("DB path = %q", cfg.Database.Path)
	}
	if cfg.JWT.Secret != "test-secret" {
		t.Errorf("JWT secret = %q", cfg.JWT.Secret)
	}
	if cfg.JWT.TTL != 90*time.Minute {
		t.Errorf("JWT TTL = %v, want 1h30m", cfg.JWT.TTL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("JWT_TTL", "soon")

	cfg := Load("")
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want the 8080 fallback", cfg.Server.Port)
	}
	if cfg.JWT.TTL != 24*time.Hour {
		t.Errorf("JWT TTL = %v, want the 24h fallback", cfg.JWT.TTL)
	}
}
