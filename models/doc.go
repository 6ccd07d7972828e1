// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateContestRequest: year, category, phase, office, office_name, method, seats

Vote rows and seat catalogs are uploaded as raw CSV and JSON lines, see
package ingest.

# Response Types

Types for JSON responses:

  - CreateContestResponse: contest_id, admin_key, share_slug
  - UploadVotesResponse: rows, groups, skipped
  - UploadCatalogResponse: year, category, loaded, skipped
  - SeatsResponse: contest_id, resolution
  - PublicResultsResponse: contest identity plus the latest snapshot
  - ErrorResponse: error, message

# Domain Types

  - Contest: one electoral contest and its calculation state
  - ContestWithStats: contest plus uploaded row and catalog counts
  - ResultSnapshot: stored calculation with group names

# Constants

Phases:

	PhasePASO     = "PASO"
	PhaseGeneral  = "GENERAL"
	PhaseBalotaje = "BALOTAJE"
*/
package models
