// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/escrutinio/auth"
	"github.com/danielhkuo/escrutinio/calc"
	"github.com/danielhkuo/escrutinio/cliparse"
	"github.com/danielhkuo/escrutinio/db"
	"github.com/danielhkuo/escrutinio/models"
	"github.com/danielhkuo/escrutinio/textnorm"
)

// TestDBURL is the connection string for the test database
const TestDBURL = "file::memory:?_pragma=foreign_keys(1)"

// SetupTestDB creates a fresh in-memory sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every pooled connection would get its own empty memory database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseURL:     TestDBURL,
		DatabaseType:    "sqlite",
		AdminKeySalt:    "test-admin-salt",
		ResultsSlugSalt: "test-slug-salt",
		MaxUploadBytes:  1 << 20,
	}
}

// CreateTestContest inserts a contest and returns its ID, admin key and share slug
func CreateTestContest(t *testing.T, conn *sql.DB, cfg cliparse.Config, req models.CreateContestRequest) (contestID, adminKey, shareSlug string) {
	t.Helper()

	contestID = uuid.NewString()
	adminKey = auth.GenerateAdminKey(contestID, cfg.AdminKeySalt)
	shareSlug = auth.GenerateShareSlug(contestID, cfg.ResultsSlugSalt)

	if req.Phase == "" {
		req.Phase = models.PhaseGeneral
	}

	_, err := conn.Exec(`
		INSERT INTO contest (id, year, category, phase, office, office_name, method, seats, share_slug, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, contestID, req.Year, textnorm.Normalize(req.Category), req.Phase, textnorm.Normalize(req.Office),
		req.OfficeName, req.Method, req.Seats, shareSlug, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test contest: %v", err)
	}

	return contestID, adminKey, shareSlug
}

// AddTestVoteRows stores vote rows for a contest
func AddTestVoteRows(t *testing.T, conn *sql.DB, contestID string, rows []calc.VoteRow) {
	t.Helper()

	for i, row := range rows {
		var voteType *int
		if row.Type != nil {
			v := int(*row.Type)
			voteType = &v
		}
		_, err := conn.Exec(`
			INSERT INTO vote_row (contest_id, line, vote_type, vote_count, group_id, scale_type, scale_name)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, contestID, i, voteType, row.Count, row.GroupID, row.ScaleType, row.ScaleName)
		if err != nil {
			t.Fatalf("Failed to create test vote row: %v", err)
		}
	}
}

// AddTestCatalogItem stores one seat catalog line for year and category
func AddTestCatalogItem(t *testing.T, conn *sql.DB, year int, category string, line int, item calc.SeatCatalogItem) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO seat_catalog (year, category, line, office_name, item_category, scale_type, scale_name, seat_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, year, textnorm.Normalize(category), line, item.OfficeName, item.Category, item.ScaleType, item.ScaleName, item.SeatCount)
	if err != nil {
		t.Fatalf("Failed to create test catalog item: %v", err)
	}
}

// MakeRequest creates an HTTP test request.
// A string body is sent as is, anything else is encoded as JSON.
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, strings.NewReader(b))
	case io.Reader:
		req = httptest.NewRequest(method, path, b)
	default:
		jsonBody, _ := json.Marshal(b)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AdminHeaders returns the header map for an admin request
func AdminHeaders(adminKey string) map[string]string {
	return map[string]string{"X-Admin-Key": adminKey}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
