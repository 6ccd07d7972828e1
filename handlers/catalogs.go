// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/escrutinio/cliparse"
	"github.com/danielhkuo/escrutinio/ingest"
	"github.com/danielhkuo/escrutinio/middleware"
	"github.com/danielhkuo/escrutinio/models"
	"github.com/danielhkuo/escrutinio/textnorm"
)

type CatalogHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCatalogHandler(db *sql.DB, cfg cliparse.Config) *CatalogHandler {
	return &CatalogHandler{db: db, cfg: cfg}
}

// UploadCatalog handles PUT /catalogs/{year}/{category}
// The JSON lines body replaces the seat catalog of that year and category
func (h *CatalogHandler) UploadCatalog(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil || year <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "year must be a positive number")
		return
	}
	category := textnorm.Normalize(r.PathValue("category"))
	if category == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category is required")
		return
	}

	body := http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	defer body.Close()

	catalog, err := ingest.ParseSeatCatalog(body)
	if err != nil {
		writeUploadError(w, err, "seat catalog")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if err := replaceSeatCatalog(tx, year, category, catalog.Items); err != nil {
		slog.Error("failed to store seat catalog", "year", year, "category", category, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store catalog")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store catalog")
		return
	}

	slog.Info("seat catalog uploaded",
		"year", year,
		"category", category,
		"loaded", humanize.Comma(int64(len(catalog.Items))),
		"skipped", catalog.Skipped,
	)

	middleware.JSONResponse(w, http.StatusOK, models.UploadCatalogResponse{
		Year:     year,
		Category: category,
		Loaded:   len(catalog.Items),
		Skipped:  catalog.Skipped,
	})
}
