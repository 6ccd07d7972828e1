// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calc

import (
	"sort"

	"github.com/danielhkuo/escrutinio/textnorm"
)

// SeatSource names the step of the resolution that produced the seat count
type SeatSource string

const (
	SourceOverride SeatSource = "override"
	SourceLayerA   SeatSource = "layer-a"
	SourceLayerB   SeatSource = "layer-b"
	SourceLayerC   SeatSource = "layer-c"
	SourceLayerD   SeatSource = "layer-d"
	SourceFallback SeatSource = "fallback"
)

// Territory is the dominant territorial context of a vote sheet, normalized.
// Empty fields mean the context could not be inferred.
type Territory struct {
	ScaleType string `json:"scale_type,omitempty"`
	ScaleName string `json:"scale_name,omitempty"`
}

// IsZero reports whether no territorial context was inferred
func (t Territory) IsZero() bool {
	return t.ScaleType == "" && t.ScaleName == ""
}

// SeatResolution explains how a seat count was obtained
type SeatResolution struct {
	Seats      int        `json:"seats"`
	Source     SeatSource `json:"source"`
	Territory  Territory  `json:"territory"`
	Candidates []string   `json:"candidates"`
	Matched    int        `json:"matched_items"`
}

// layer is one strictness level of the catalog search
type layer struct {
	source    SeatSource
	category  bool
	territory bool
}

// Strictest first. Specificity levels are never mixed within one sum.
var layers = [...]layer{
	{source: SourceLayerA, category: true, territory: true},
	{source: SourceLayerB, category: true, territory: false},
	{source: SourceLayerC, category: false, territory: true},
	{source: SourceLayerD, category: false, territory: false},
}

// ResolveSeats returns the number of seats to distribute for a contest
func ResolveSeats(meta ContestMeta, catalog []SeatCatalogItem, category, office string, rows []VoteRow) int {
	return ExplainSeats(meta, catalog, category, office, rows).Seats
}

// ExplainSeats resolves the seat count and reports which source won.
//
// An explicit positive override always wins. Otherwise the catalog is
// searched in four layers of decreasing strictness and the first layer
// with a positive total is used.
func ExplainSeats(meta ContestMeta, catalog []SeatCatalogItem, category, office string, rows []VoteRow) SeatResolution {
	if seats := configuredSeats(meta); seats > 0 {
		return SeatResolution{Seats: seats, Source: SourceOverride, Candidates: []string{}}
	}

	res := SeatResolution{
		Source:     SourceFallback,
		Territory:  DominantTerritory(rows),
		Candidates: officeCandidates(meta.OfficeNameAliases, office),
	}
	if len(res.Candidates) == 0 {
		return res
	}

	wanted := make(map[string]bool, len(res.Candidates))
	for _, c := range res.Candidates {
		wanted[c] = true
	}
	categoryNorm := textnorm.Normalize(category)

	for _, l := range layers {
		total, matched := 0, 0
		for _, item := range catalog {
			if !l.matches(item, wanted, categoryNorm, res.Territory) {
				continue
			}
			matched++
			total += itemSeats(item)
		}

		if total > 0 {
			res.Seats = total
			res.Source = l.source
			res.Matched = matched
			return res
		}
	}

	res.Seats = configuredSeats(meta)
	return res
}

// matches reports whether item satisfies the layer's requirements.
// The office name must match in every layer.
func (l layer) matches(item SeatCatalogItem, wanted map[string]bool, category string, territory Territory) bool {
	office := textnorm.Normalize(item.OfficeName)
	if office == "" || !wanted[office] {
		return false
	}

	if l.category && item.Category != "" {
		if textnorm.Normalize(item.Category) != category {
			return false
		}
	}

	if l.territory {
		if territory.ScaleType != "" && textnorm.Normalize(item.ScaleType) != territory.ScaleType {
			return false
		}
		if territory.ScaleName != "" && textnorm.Normalize(item.ScaleName) != territory.ScaleName {
			return false
		}
	}

	return true
}

// DominantTerritory returns the most frequent normalized scale type and,
// independently, the most frequent scale name across rows.
func DominantTerritory(rows []VoteRow) Territory {
	types := make([]string, 0, len(rows))
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		types = append(types, row.ScaleType)
		names = append(names, row.ScaleName)
	}

	return Territory{
		ScaleType: mode(types),
		ScaleName: mode(names),
	}
}

// mode returns the most frequent non-empty normalized value.
// Ties go to the value seen first.
func mode(values []string) string {
	counts := make(map[string]int)
	var order []string

	for _, v := range values {
		n := textnorm.Normalize(v)
		if n == "" {
			continue
		}
		if counts[n] == 0 {
			order = append(order, n)
		}
		counts[n]++
	}

	best, bestCount := "", 0
	for _, v := range order {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

// officeCandidates returns the distinct normalized office names to match, sorted
func officeCandidates(aliases []string, office string) []string {
	seen := make(map[string]bool)
	candidates := []string{}

	for _, name := range append(append([]string{}, aliases...), office) {
		n := textnorm.Normalize(name)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		candidates = append(candidates, n)
	}

	sort.Strings(candidates)
	return candidates
}

// itemSeats returns the seats a matching catalog line contributes.
// Lines without a count stand for one seat; negative counts contribute nothing.
func itemSeats(item SeatCatalogItem) int {
	if item.SeatCount == nil {
		return 1
	}
	return max(0, *item.SeatCount)
}

// configuredSeats returns the explicit override, or 0 when absent or invalid
func configuredSeats(meta ContestMeta) int {
	if meta.ConfiguredSeats == nil {
		return 0
	}
	return max(0, *meta.ConfiguredSeats)
}
