// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("ADMIN_KEY_SALT", "test-salt")
	t.Setenv("RESULTS_SLUG_SALT", "test-slug")
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "Postgres")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" || cfg.DriverName() != "postgres" {
		t.Errorf("expected postgres driver, got %s/%s", cfg.DatabaseType, cfg.DriverName())
	}
	if cfg.MaxUploadBytes != 1024 {
		t.Errorf("expected max upload 1024, got %d", cfg.MaxUploadBytes)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("expected default port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.DriverName() != "sqlite" {
		t.Errorf("expected sqlite driver by default, got %s", cfg.DriverName())
	}
	if cfg.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Errorf("expected default max upload, got %d", cfg.MaxUploadBytes)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("MAX_UPLOAD_BYTES", "")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-t", "sqlite", "-admin-salt", "s1", "-slug-salt", "s2"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("CLI should override env: expected sqlite, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing database url", map[string]string{"DATABASE_URL": ""}, nil},
		{"missing admin salt", map[string]string{"ADMIN_KEY_SALT": ""}, nil},
		{"missing slug salt", map[string]string{"RESULTS_SLUG_SALT": ""}, nil},
		{"invalid port", map[string]string{"PORT": "abc"}, nil},
		{"unknown database type", map[string]string{"DATABASE_TYPE": "mysql"}, nil},
		{"invalid max upload", map[string]string{"MAX_UPLOAD_BYTES": "-5"}, nil},
		{"unknown flag", nil, []string{"-x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("PORT", "")
			t.Setenv("DATABASE_TYPE", "")
			t.Setenv("MAX_UPLOAD_BYTES", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
