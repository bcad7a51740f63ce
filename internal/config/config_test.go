package config

import (
	"testing"
	"time"
)

func TestParsePort(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"default", "8080", 8080, false},
		{"low port", "1", 1, false},
		{"high port", "65535", 65535, false},
		{"zero", "0", 0, true},
		{"out of range", "70000", 0, true},
		{"not a number", "eighty", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePort(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePort(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parsePort(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("requires JWT_SECRET", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		if _, err := Load(); err == nil {
			t.Error("Load() without JWT_SECRET expected an error")
		}
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("PORT", "")
		t.Setenv("DB_PATH", "")
		t.Setenv("TOKEN_TTL_HOURS", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.Port != 8080 {
			t.Errorf("Port = %d, want 8080", cfg.Port)
		}
		if cfg.DBPath != "./data/alleytab.db" {
			t.Errorf("DBPath = %q", cfg.DBPath)
		}
		if cfg.TokenTTL != 24*time.Hour {
			t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("PORT", "9000")
		t.Setenv("DB_PATH", "/tmp/league.db")
		t.Setenv("TOKEN_TTL_HOURS", "72")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.Port != 9000 || cfg.DBPath != "/tmp/league.db" || cfg.TokenTTL != 72*time.Hour {
			t.Errorf("Load() = %+v", cfg)
		}
	})

	t.Run("rejects bad TTL", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("TOKEN_TTL_HOURS", "-1")
		if _, err := Load(); err == nil {
			t.Error("Load() with negative TTL expected an error")
		}
	})
}
