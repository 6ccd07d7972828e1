// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultPort           = 3318
	DefaultMaxUploadBytes = 32 << 20
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	AdminKeySalt    string
	ResultsSlugSalt string
	MaxUploadBytes  int64
}

// DriverName returns the database/sql driver registered for DatabaseType
func (c Config) DriverName() string {
	if c.DatabaseType == "postgres" {
		return "postgres"
	}
	return "sqlite"
}

// ParseFlags validates flags and fills the rest from the environment.
// A .env file in the working directory is loaded first; variables that
// are already set take precedence over it.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// Missing .env is fine
	_ = godotenv.Load()

	fs := flag.NewFlagSet("escrutinio", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.Int64Var(&cfg.MaxUploadBytes, "max-upload", 0, "Maximum upload size in bytes")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.StringVar(&cfg.ResultsSlugSalt, "slug-salt", "", "Results slug salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
	}
	cfg.DatabaseType = strings.ToLower(strings.TrimSpace(cfg.DatabaseType))
	switch cfg.DatabaseType {
	case "":
		cfg.DatabaseType = "sqlite"
	case "sqlite", "postgres":
	case "postgresql":
		cfg.DatabaseType = "postgres"
	default:
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.MaxUploadBytes == 0 {
		if raw := os.Getenv("MAX_UPLOAD_BYTES"); raw != "" {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || n <= 0 {
				return Config{}, errors.New("invalid MAX_UPLOAD_BYTES env variable")
			}
			cfg.MaxUploadBytes = n
		} else {
			cfg.MaxUploadBytes = DefaultMaxUploadBytes
		}
	}
	if cfg.MaxUploadBytes < 0 {
		return Config{}, errors.New("max upload size must be positive")
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	if cfg.ResultsSlugSalt == "" {
		cfg.ResultsSlugSalt = os.Getenv("RESULTS_SLUG_SALT")
	}
	if cfg.ResultsSlugSalt == "" {
		return Config{}, errors.New("RESULTS_SLUG_SALT required")
	}

	return cfg, nil
}
