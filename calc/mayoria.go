// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calc

// MayoriaSimple is winner-take-all: the most voted group gets every seat
func MayoriaSimple(votes map[string]int, seats int) AllocationResult {
	result := AllocationResult{
		Method:  MethodMayoriaSimple,
		ByGroup: zeroAllocation(votes),
		Meta:    AllocationMeta{Seats: seats},
	}
	if seats <= 0 || len(votes) == 0 {
		result.Meta.Note = "no allocation (seats <= 0 or no votes)"
		return result
	}

	winner := rankGroups(votes)[0].id
	result.ByGroup[winner] = seats
	result.Meta.Winner = winner
	return result
}
