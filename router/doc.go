// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the escrutinio API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Contest management (admin, requires X-Admin-Key except creation):

	POST /contests              - Register contest
	GET  /contests/{id}         - Contest details and upload counts
	POST /contests/{id}/votes   - Replace vote rows (CSV body)
	GET  /contests/{id}/seats   - Seat resolution diagnostics
	POST /contests/{id}/calc    - Calculate and store a snapshot (?method= optional)

Seat catalogs:

	PUT /catalogs/{year}/{category} - Replace catalog (JSON lines body)

Results (public, uses share slug):

	GET /results/{slug} - Latest snapshot with group names
	GET /methods - Supported allocation methods

# Handler Initialization

The router creates handler instances with dependency injection:

	contestHandler := handlers.NewContestHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
