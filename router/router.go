// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/escrutinio/cliparse"
	"github.com/danielhkuo/escrutinio/handlers"
	"github.com/danielhkuo/escrutinio/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	contestHandler := handlers.NewContestHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Contest management (admin operations)
	mux.HandleFunc("POST /contests", middleware.WithLogging(contestHandler.CreateContest))
	mux.HandleFunc("GET /contests/{id}", middleware.WithLogging(contestHandler.GetContest))
	mux.HandleFunc("POST /contests/{id}/votes", middleware.WithLogging(contestHandler.UploadVotes))
	mux.HandleFunc("GET /contests/{id}/seats", middleware.WithLogging(contestHandler.GetSeats))
	mux.HandleFunc("POST /contests/{id}/calc", middleware.WithLogging(contestHandler.Calculate))

	// Seat catalogs
	mux.HandleFunc("PUT /catalogs/{year}/{category}", middleware.WithLogging(catalogHandler.UploadCatalog))

	// Results retrieval (public)
	mux.HandleFunc("GET /results/{slug}", middleware.WithLogging(resultsHandler.GetResults))

	mux.HandleFunc("GET /methods", middleware.WithLogging(handlers.ListMethods))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("escrutinio API v1"))
	})

	return mux
}
