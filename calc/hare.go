// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calc

import (
	"math"
	"sort"
)

// Hare allocates seats by the Hare quota (total/seats) and then hands the
// leftover seats to the largest remainders.
func Hare(votes map[string]int, seats int) AllocationResult {
	total := sumVotes(votes)
	result := AllocationResult{
		Method:  MethodHare,
		ByGroup: zeroAllocation(votes),
		Meta:    AllocationMeta{Seats: seats, TotalVotes: total},
	}
	if seats <= 0 || total <= 0 || len(votes) == 0 {
		result.Meta.Note = "no allocation (seats <= 0 or no votes)"
		return result
	}

	type remainder struct {
		group string
		votes int
		rest  float64
	}

	quota := float64(total) / float64(seats)
	assigned := 0
	remainders := make([]remainder, 0, len(votes))
	for gid, v := range votes {
		floor := int(math.Floor(float64(v) / quota))

		result.ByGroup[gid] = floor
		assigned += floor
		remainders = append(remainders, remainder{
			group: gid,
			votes: v,
			rest:  float64(v) - float64(floor)*quota,
		})
	}

	sort.Slice(remainders, func(i, j int) bool {
		a, b := remainders[i], remainders[j]
		if a.rest != b.rest {
			return a.rest > b.rest
		}
		if a.votes != b.votes {
			return a.votes > b.votes
		}
		return a.group > b.group
	})

	remaining := seats - assigned
	if remaining < 0 {
		// Only quota rounding can push the floors past the seat count.
		// Quota seats are never taken back.
		result.Meta.OverAllocated = true
		remaining = 0
	}
	for _, r := range remainders[:min(remaining, len(remainders))] {
		result.ByGroup[r.group]++
	}

	result.Meta.Quota = quota
	result.Meta.AssignedFloor = assigned
	result.Meta.RemainingAfterFloor = remaining
	return result
}
