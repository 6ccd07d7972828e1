// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calc

// VoteType classifies a ballot line
type VoteType int

// Vote type codes as published by the electoral authority. 4 is unused.
const (
	VotePositive         VoteType = 0
	VoteImpugned         VoteType = 1
	VoteAppealed         VoteType = 2
	VoteElectoralCommand VoteType = 3
	VoteBlank            VoteType = 5
	VoteNull             VoteType = 6
)

// Known reports whether t is one of the recognized codes
func (t VoteType) Known() bool {
	switch t {
	case VotePositive, VoteImpugned, VoteAppealed, VoteElectoralCommand, VoteBlank, VoteNull:
		return true
	}
	return false
}

// VoteRow is one ballot line. Type is nil when the source left it blank.
type VoteRow struct {
	Type      *VoteType `json:"vote_type"`
	Count     int       `json:"vote_count"`
	GroupID   string    `json:"group_id"`
	ScaleType string    `json:"territorial_scale_type,omitempty"`
	ScaleName string    `json:"territorial_scale_name,omitempty"`
}

// OtherTotals holds the global non-positive totals
type OtherTotals struct {
	Impugned         int `json:"impugnado"`
	Appealed         int `json:"recurrido"`
	ElectoralCommand int `json:"comando"`
	Blank            int `json:"en_blanco"`
	Null             int `json:"nulo"`
}

// Sum returns the total of all non-positive categories
func (o OtherTotals) Sum() int {
	return o.Impugned + o.Appealed + o.ElectoralCommand + o.Blank + o.Null
}

type AggregationResult struct {
	PositiveByGroup map[string]int `json:"positive_by_group"`
	Others          OtherTotals    `json:"others_totals"`
}

// SeatCatalogItem is one line of the seat catalog. A nil SeatCount counts as one seat.
type SeatCatalogItem struct {
	OfficeName string `json:"nombre_cargo"`
	Category   string `json:"category,omitempty"`
	ScaleType  string `json:"tipo_escala_territorial,omitempty"`
	ScaleName  string `json:"nombre_escala_territorial,omitempty"`
	SeatCount  *int   `json:"seats,omitempty"`
}

// ContestMeta carries the caller's contest configuration
type ContestMeta struct {
	ConfiguredSeats   *int     `json:"seats,omitempty"`
	OfficeNameAliases []string `json:"office_name_aliases,omitempty"`
}

// AllocationResult is the seat distribution produced by one method
type AllocationResult struct {
	Method  Method         `json:"method"`
	ByGroup map[string]int `json:"by_group"`
	Meta    AllocationMeta `json:"meta"`
}

// TotalSeats returns the number of seats awarded
func (r AllocationResult) TotalSeats() int {
	total := 0
	for _, s := range r.ByGroup {
		total += s
	}
	return total
}

// AllocationMeta is the diagnostic record attached to every allocation.
// Each method fills the fields it owns.
type AllocationMeta struct {
	Seats int    `json:"seats"`
	Note  string `json:"note,omitempty"`
	Rule  string `json:"rule,omitempty"`

	TotalVotes int            `json:"total_votes,omitempty"`
	Picks      []QuotientPick `json:"picks_preview,omitempty"`

	Quota               float64 `json:"quota_hare,omitempty"`
	AssignedFloor       int     `json:"assigned_floor,omitempty"`
	RemainingAfterFloor int     `json:"remaining_after_floor,omitempty"`
	OverAllocated       bool    `json:"over_allocated,omitempty"`

	Ranking []string `json:"ranking,omitempty"`
	Winner  string   `json:"winner,omitempty"`

	TotalPositive  int        `json:"total_positive,omitempty"`
	First          *Contender `json:"first,omitempty"`
	Second         *Contender `json:"second,omitempty"`
	LeadPoints     *float64   `json:"lead_points,omitempty"`
	WinFirstRound  *bool      `json:"win_first_round,omitempty"`
	RequiresRunoff bool       `json:"requires_runoff,omitempty"`
}

// QuotientPick is one winning D'Hondt quotient
type QuotientPick struct {
	GroupID  string  `json:"gid"`
	Quotient float64 `json:"q"`
	Divisor  int     `json:"d"`
}

// Contender is a runoff candidate with its share of positive votes
type Contender struct {
	GroupID string  `json:"gid"`
	Votes   int     `json:"votes"`
	Pct     float64 `json:"pct"`
}
