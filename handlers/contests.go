// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/escrutinio/auth"
	"github.com/danielhkuo/escrutinio/calc"
	"github.com/danielhkuo/escrutinio/cliparse"
	"github.com/danielhkuo/escrutinio/ingest"
	"github.com/danielhkuo/escrutinio/middleware"
	"github.com/danielhkuo/escrutinio/models"
	"github.com/danielhkuo/escrutinio/textnorm"
)

type ContestHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewContestHandler(db *sql.DB, cfg cliparse.Config) *ContestHandler {
	return &ContestHandler{db: db, cfg: cfg}
}

// CreateContest handles POST /contests
func (h *ContestHandler) CreateContest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContestRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	category := textnorm.Normalize(req.Category)
	office := textnorm.Normalize(req.Office)
	phase := strings.ToUpper(strings.TrimSpace(req.Phase))

	// Validate input
	if req.Year <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "year is required")
		return
	}
	if category == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category is required")
		return
	}
	if office == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "office is required")
		return
	}
	if !models.ValidPhase(phase) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "phase must be PASO, GENERAL or BALOTAJE")
		return
	}
	if req.Seats != nil && *req.Seats <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "seats must be positive")
		return
	}

	var method string
	if strings.TrimSpace(req.Method) != "" {
		m, err := calc.ParseMethod(req.Method)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		method = string(m)
	}

	// One contest per year, category, phase and office
	var existing string
	err := h.db.QueryRow(`
		SELECT id FROM contest
		WHERE year = $1 AND category = $2 AND phase = $3 AND office = $4
	`, req.Year, category, phase, office).Scan(&existing)
	if err == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Contest already registered")
		return
	}
	if err != sql.ErrNoRows {
		slog.Error("failed to query contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	contestID := uuid.NewString()
	adminKey := auth.GenerateAdminKey(contestID, h.cfg.AdminKeySalt)
	shareSlug := auth.GenerateShareSlug(contestID, h.cfg.ResultsSlugSalt)

	_, err = h.db.Exec(`
		INSERT INTO contest (id, year, category, phase, office, office_name, method, seats, share_slug, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, contestID, req.Year, category, phase, office, strings.TrimSpace(req.OfficeName), method, req.Seats, shareSlug, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create contest")
		return
	}

	slog.Info("contest created",
		"contest_id", contestID,
		"year", req.Year,
		"category", category,
		"phase", phase,
		"office", office,
		"method", method,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateContestResponse{
		ContestID: contestID,
		AdminKey:  adminKey,
		ShareSlug: shareSlug,
	})
}

// GetContest handles GET /contests/{id}
// Returns contest details with upload counts for admin access
func (h *ContestHandler) GetContest(w http.ResponseWriter, r *http.Request) {
	contest, ok := h.authorizedContest(w, r)
	if !ok {
		return
	}

	resp := models.ContestWithStats{Contest: contest}
	err := h.db.QueryRow("SELECT COUNT(*) FROM vote_row WHERE contest_id = $1", contest.ID).Scan(&resp.VoteRows)
	if err == nil {
		err = h.db.QueryRow(`
			SELECT COUNT(*) FROM seat_catalog WHERE year = $1 AND category = $2
		`, contest.Year, contest.Category).Scan(&resp.CatalogItems)
	}
	if err != nil {
		slog.Error("failed to count contest inputs", "contest_id", contest.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// UploadVotes handles POST /contests/{id}/votes
// The CSV body replaces every stored row of the contest
func (h *ContestHandler) UploadVotes(w http.ResponseWriter, r *http.Request) {
	contest, ok := h.authorizedContest(w, r)
	if !ok {
		return
	}

	body := http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	defer body.Close()

	sheet, err := ingest.ParseVoteCSV(body)
	if err != nil {
		writeUploadError(w, err, "vote CSV")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if err := replaceVoteRows(tx, contest.ID, sheet.Rows); err != nil {
		slog.Error("failed to store vote rows", "contest_id", contest.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store votes")
		return
	}
	if err := upsertGroupNames(tx, contest.Year, contest.Category, sheet.Groups); err != nil {
		slog.Error("failed to store group names", "contest_id", contest.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store votes")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store votes")
		return
	}

	slog.Info("votes uploaded",
		"contest_id", contest.ID,
		"rows", humanize.Comma(int64(len(sheet.Rows))),
		"groups", len(sheet.Groups),
		"skipped", sheet.Skipped,
	)

	middleware.JSONResponse(w, http.StatusOK, models.UploadVotesResponse{
		Rows:    len(sheet.Rows),
		Groups:  len(sheet.Groups),
		Skipped: sheet.Skipped,
	})
}

// GetSeats handles GET /contests/{id}/seats
// Reports how the seat count would be resolved with the current inputs
func (h *ContestHandler) GetSeats(w http.ResponseWriter, r *http.Request) {
	contest, ok := h.authorizedContest(w, r)
	if !ok {
		return
	}

	rows, err := getVoteRows(h.db, contest.ID)
	if err != nil {
		slog.Error("failed to load vote rows", "contest_id", contest.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	catalog, err := getSeatCatalog(h.db, contest.Year, contest.Category)
	if err != nil {
		slog.Error("failed to load seat catalog", "contest_id", contest.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SeatsResponse{
		ContestID:  contest.ID,
		Resolution: calc.ExplainSeats(contest.Meta(), catalog, contest.Category, contest.Office, rows),
	})
}

// Calculate handles POST /contests/{id}/calc
// An optional ?method= overrides the configured method for this run
func (h *ContestHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	contest, ok := h.authorizedContest(w, r)
	if !ok {
		return
	}

	method := contest.Method
	if m := strings.TrimSpace(r.URL.Query().Get("method")); m != "" {
		method = m
	}
	if method != "" {
		parsed, err := calc.ParseMethod(method)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		method = string(parsed)
	}

	rows, err := getVoteRows(h.db, contest.ID)
	if err != nil {
		slog.Error("failed to load vote rows", "contest_id", contest.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	catalog, err := getSeatCatalog(h.db, contest.Year, contest.Category)
	if err != nil {
		slog.Error("failed to load seat catalog", "contest_id", contest.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	names, err := getGroupNames(h.db, contest.Year, contest.Category)
	if err != nil {
		slog.Error("failed to load group names", "contest_id", contest.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	outcome, err := calc.Run(calc.Input{
		Category: contest.Category,
		Office:   contest.Office,
		Method:   method,
		Meta:     contest.Meta(),
		Rows:     rows,
		Catalog:  catalog,
	})
	if errors.Is(err, calc.ErrUnsupportedMethod) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("calculation failed", "contest_id", contest.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Calculation failed")
		return
	}

	snapshot := models.ResultSnapshot{
		ID:         uuid.NewString(),
		ContestID:  contest.ID,
		Method:     method,
		ComputedAt: time.Now().UTC(),
		Outcome:    outcome,
		Groups:     groupNamesFor(outcome, names),
		InputsHash: computeInputsHash(rows),
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		slog.Error("failed to encode snapshot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save results")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO result_snapshot (id, contest_id, method, computed_at, payload)
		VALUES ($1, $2, $3, $4, $5)
	`, snapshot.ID, contest.ID, method, snapshot.ComputedAt, string(payload))
	if err != nil {
		slog.Error("failed to insert snapshot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save results")
		return
	}

	_, err = tx.Exec(`
		UPDATE contest
		SET last_calc = $1, final_snapshot_id = $2
		WHERE id = $3
	`, snapshot.ComputedAt, snapshot.ID, contest.ID)
	if err != nil {
		slog.Error("failed to stamp contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save results")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save results")
		return
	}

	slog.Info("contest calculated",
		"contest_id", contest.ID,
		"year", contest.Year,
		"category", contest.Category,
		"phase", contest.Phase,
		"office", contest.Office,
		"method", method,
		"seats", outcome.Seats,
		"seat_source", outcome.Resolution.Source,
		"positive", humanize.Comma(int64(outcome.PositiveTotal)),
		"total", humanize.Comma(int64(outcome.Total)),
		"snapshot_id", snapshot.ID,
	)

	middleware.JSONResponse(w, http.StatusOK, snapshot)
}

// authorizedContest validates the admin key and loads the contest.
// On failure it has already written the error response.
func (h *ContestHandler) authorizedContest(w http.ResponseWriter, r *http.Request) (models.Contest, bool) {
	contestID := r.PathValue("id")
	if contestID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "contest_id is required")
		return models.Contest{}, false
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(contestID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return models.Contest{}, false
	}

	contest, err := getContest(h.db, contestID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contest not found")
		return models.Contest{}, false
	}
	if err != nil {
		slog.Error("failed to query contest", "contest_id", contestID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Contest{}, false
	}

	return contest, true
}

// groupNamesFor keeps the names of groups that appear in the outcome
func groupNamesFor(outcome calc.Outcome, names map[string]string) map[string]string {
	groups := make(map[string]string)
	for gid := range outcome.Positive {
		if name, ok := names[gid]; ok {
			groups[gid] = name
		}
	}
	return groups
}

// writeUploadError maps ingest and body size errors to responses
func writeUploadError(w http.ResponseWriter, err error, what string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, what+" exceeds the upload limit")
	case errors.Is(err, ingest.ErrMissingColumns), errors.Is(err, ingest.ErrNoRows):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Warn("failed to read upload", "what", what, "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid "+what)
	}
}
