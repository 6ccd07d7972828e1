// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the escrutinio API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - ContestHandler: Contest registration, vote uploads, seat diagnostics, calculation
  - CatalogHandler: Seat catalog uploads
  - ResultsHandler: Public results retrieval

Handlers are created via constructor functions that accept *sql.DB and Config:

	contestHandler := handlers.NewContestHandler(db, cfg)

# Contest Flow

	POST /contests                  → CreateContest (returns admin_key, share_slug)
	PUT  /catalogs/{year}/{category} → UploadCatalog
	POST /contests/{id}/votes       → UploadVotes (CSV)
	GET  /contests/{id}/seats       → GetSeats
	POST /contests/{id}/calc        → Calculate (stores a snapshot)
	GET  /results/{slug}            → GetResults
	GET  /methods                   → ListMethods

Admin operations require the X-Admin-Key header.

# Calculation

Calculate loads the stored rows, catalog and group names, then hands them
to calc.Run:

	outcome, err := calc.Run(calc.Input{...})

Each run is stored as a result_snapshot with a sha256 fingerprint of the
vote rows, and becomes the contest's final_snapshot_id. The public results
page always shows the latest run.

# Uploads

Upload bodies are capped at Config.MaxUploadBytes; larger bodies get 413.
Category and office names are normalized with textnorm before they are
stored, so lookups are accent and case insensitive.
*/
package handlers
