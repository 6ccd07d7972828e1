// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calc

// Input is everything needed to calculate one contest
type Input struct {
	Category string
	Office   string
	// Method may be empty, in which case no seats are allocated
	Method  string
	Meta    ContestMeta
	Rows    []VoteRow
	Catalog []SeatCatalogItem
}

// Outcome is the full calculation of a contest
type Outcome struct {
	Positive      map[string]int    `json:"positive"`
	PositiveTotal int               `json:"positive_total"`
	Others        OtherTotals       `json:"others"`
	Total         int               `json:"total"`
	Seats         int               `json:"seats"`
	Resolution    SeatResolution    `json:"seat_resolution"`
	Assignment    *AllocationResult `json:"assignment,omitempty"`
}

// Run aggregates the rows, resolves the seat count and, when a method is
// given, allocates the seats. The only error is an unsupported method.
func Run(in Input) (Outcome, error) {
	agg := Aggregate(in.Rows)
	positiveTotal := sumVotes(agg.PositiveByGroup)

	resolution := ExplainSeats(in.Meta, in.Catalog, in.Category, in.Office, in.Rows)

	out := Outcome{
		Positive:      agg.PositiveByGroup,
		PositiveTotal: positiveTotal,
		Others:        agg.Others,
		Total:         positiveTotal + agg.Others.Sum(),
		Seats:         resolution.Seats,
		Resolution:    resolution,
	}

	if in.Method == "" {
		return out, nil
	}

	assignment, err := Allocate(in.Method, agg.PositiveByGroup, resolution.Seats)
	if err != nil {
		return Outcome{}, err
	}
	out.Assignment = &assignment

	return out, nil
}
