// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the escrutinio API server.

Escrutinio tallies ballot-line records of an electoral contest and turns
the positive votes into seat allocations (D'Hondt, Hare, lista incompleta,
mayoría simple, balotaje).

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=escrutinio.db ADMIN_KEY_SALT=... RESULTS_SLUG_SALT=... go run .

Or against postgres:

	go run . -t postgres -d "postgres://..." -admin-salt ... -slug-salt ...

A .env file in the working directory is read too.

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file or PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC
  - RESULTS_SLUG_SALT (-slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - MAX_UPLOAD_BYTES (-max-upload): Upload limit (default: 32 MiB)

# Architecture

  - calc: Aggregation, seat resolution and allocation methods (no I/O)
  - textnorm: Name normalization shared by lookups
  - ingest: Vote CSV and seat catalog parsing
  - handlers: HTTP request handlers (contests, catalogs, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Admin keys and share slugs
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
