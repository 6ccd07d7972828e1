// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calc

import "math"

// ListaIncompleta gives the majority share to the most voted group and the
// rest to the runner-up. Three seats split 2/1, two seats go entirely to
// the winner, other sizes split roughly 2/3 and 1/3.
func ListaIncompleta(votes map[string]int, seats int) AllocationResult {
	result := AllocationResult{
		Method:  MethodListaIncompleta,
		ByGroup: zeroAllocation(votes),
		Meta:    AllocationMeta{Seats: seats},
	}
	if seats <= 0 || len(votes) == 0 {
		result.Meta.Note = "no allocation (seats <= 0 or no votes)"
		return result
	}

	ranked := rankGroups(votes)
	first := ranked[0].id
	second := ""
	if len(ranked) > 1 {
		second = ranked[1].id
	}

	firstShare, secondShare := listaShares(seats)
	result.ByGroup[first] = firstShare
	if second != "" && secondShare > 0 {
		result.ByGroup[second] = secondShare
	}

	for _, g := range ranked[:min(2, len(ranked))] {
		result.Meta.Ranking = append(result.Meta.Ranking, g.id)
	}
	result.Meta.Rule = "2/1 or 2/3-1/3"
	return result
}

// listaShares returns the seats for the winner and the runner-up
func listaShares(seats int) (first, second int) {
	switch seats {
	case 1:
		return 1, 0
	case 2:
		return 2, 0
	case 3:
		return 2, 1
	}

	first = int(math.Round(float64(seats) * 2.0 / 3.0))
	first = max(1, min(seats, first))
	return first, seats - first
}
