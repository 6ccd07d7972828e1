// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/escrutinio/calc"
	"github.com/danielhkuo/escrutinio/cliparse"
	"github.com/danielhkuo/escrutinio/middleware"
	"github.com/danielhkuo/escrutinio/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /results/{slug}
// Returns the latest stored calculation of the contest behind the slug
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	var resp models.PublicResultsResponse
	var snapshotID sql.NullString
	err := h.db.QueryRow(`
		SELECT year, category, phase, office, final_snapshot_id
		FROM contest
		WHERE share_slug = $1
	`, shareSlug).Scan(&resp.Year, &resp.Category, &resp.Phase, &resp.Office, &snapshotID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contest not found")
		return
	}
	if err != nil {
		slog.Error("failed to query contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !snapshotID.Valid {
		middleware.ErrorResponse(w, http.StatusNotFound, "Results not calculated yet")
		return
	}

	var payloadJSON []byte
	err = h.db.QueryRow(`
		SELECT payload
		FROM result_snapshot
		WHERE id = $1
	`, snapshotID.String).Scan(&payloadJSON)
	if err != nil {
		slog.Error("failed to query snapshot", "snapshot_id", snapshotID.String, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := json.Unmarshal(payloadJSON, &resp.Snapshot); err != nil {
		slog.Error("failed to parse snapshot payload", "snapshot_id", snapshotID.String, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ListMethods handles GET /methods
func ListMethods(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, calc.Methods())
}
