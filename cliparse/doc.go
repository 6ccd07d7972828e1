// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Connection string or sqlite file (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKeySalt: Secret for admin key HMAC (required)
  - ResultsSlugSalt: Secret for share slug generation (required)
  - MaxUploadBytes: Upper bound for CSV and catalog uploads (default: 32 MiB)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-max-upload   Upload size limit in bytes
	-admin-salt   Admin key salt
	-slug-salt    Results slug salt

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	MAX_UPLOAD_BYTES  → -max-upload
	ADMIN_KEY_SALT    → -admin-salt
	RESULTS_SLUG_SALT → -slug-salt

CLI flags take precedence over environment variables. A .env file in the
working directory is loaded with github.com/joho/godotenv before parsing;
it never overrides variables that are already set.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - ADMIN_KEY_SALT or RESULTS_SLUG_SALT is missing
  - DATABASE_TYPE is neither sqlite nor postgres
  - PORT or MAX_UPLOAD_BYTES is not a valid number

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open(cfg.DriverName(), cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(db, cfg)
*/
package cliparse
