package models

import (
	"time"

	"github.com/danielhkuo/escrutinio/calc"
)

// Contest phase constants
const (
	PhasePASO     = "PASO"
	PhaseGeneral  = "GENERAL"
	PhaseBalotaje = "BALOTAJE"
)

// ValidPhase reports whether phase is one of the known phases
func ValidPhase(phase string) bool {
	switch phase {
	case PhasePASO, PhaseGeneral, PhaseBalotaje:
		return true
	}
	return false
}

// Request types

type CreateContestRequest struct {
	Year       int    `json:"year"`
	Category   string `json:"category"`
	Phase      string `json:"phase"`
	Office     string `json:"office"`
	OfficeName string `json:"office_name"`
	Method     string `json:"method"`
	// Overrides the seat catalog when positive
	Seats *int `json:"seats,omitempty"`
}

// Response types

type CreateContestResponse struct {
	ContestID string `json:"contest_id"`
	AdminKey  string `json:"admin_key"`
	ShareSlug string `json:"share_slug"`
}

type UploadVotesResponse struct {
	Rows    int `json:"rows"`
	Groups  int `json:"groups"`
	Skipped int `json:"skipped"`
}

type UploadCatalogResponse struct {
	Year     int    `json:"year"`
	Category string `json:"category"`
	Loaded   int    `json:"loaded"`
	Skipped  int    `json:"skipped"`
}

type SeatsResponse struct {
	ContestID  string              `json:"contest_id"`
	Resolution calc.SeatResolution `json:"resolution"`
}

type PublicResultsResponse struct {
	Year     int            `json:"year"`
	Category string         `json:"category"`
	Phase    string         `json:"phase"`
	Office   string         `json:"office"`
	Snapshot ResultSnapshot `json:"snapshot"`
}

// Domain types

type Contest struct {
	ID              string     `json:"id"`
	Year            int        `json:"year"`
	Category        string     `json:"category"`
	Phase           string     `json:"phase"`
	Office          string     `json:"office"`
	OfficeName      string     `json:"office_name,omitempty"`
	Method          string     `json:"method,omitempty"`
	Seats           *int       `json:"seats,omitempty"`
	ShareSlug       string     `json:"share_slug"`
	LastCalc        *time.Time `json:"last_calc,omitempty"`
	FinalSnapshotID *string    `json:"final_snapshot_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Meta returns the engine view of the contest configuration
func (c Contest) Meta() calc.ContestMeta {
	meta := calc.ContestMeta{ConfiguredSeats: c.Seats}
	if c.OfficeName != "" {
		meta.OfficeNameAliases = []string{c.OfficeName}
	}
	return meta
}

type ContestWithStats struct {
	Contest      Contest `json:"contest"`
	VoteRows     int     `json:"vote_rows"`
	CatalogItems int     `json:"catalog_items"`
}

type ResultSnapshot struct {
	ID         string       `json:"id"`
	ContestID  string       `json:"contest_id"`
	Method     string       `json:"method,omitempty"`
	ComputedAt time.Time    `json:"computed_at"`
	Outcome    calc.Outcome `json:"outcome"`
	// group_id -> name for every group in the outcome that has one
	Groups     map[string]string `json:"groups"`
	InputsHash string            `json:"inputs_hash"` // Hash of the vote rows for verification
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
