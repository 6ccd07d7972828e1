// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calc

import (
	"math"
	"math/bits"
	"sort"
)

// quotient is votes/divisor kept as a fraction so ties compare exactly
type quotient struct {
	group   string
	votes   int
	divisor int
}

// ahead reports whether q ranks before o
func (q quotient) ahead(o quotient) bool {
	// q.votes/q.divisor vs o.votes/o.divisor without floating point,
	// cross-multiplied in 128 bits. Votes and divisors are non-negative.
	lhsHi, lhsLo := bits.Mul64(uint64(q.votes), uint64(o.divisor))
	rhsHi, rhsLo := bits.Mul64(uint64(o.votes), uint64(q.divisor))
	if lhsHi != rhsHi {
		return lhsHi > rhsHi
	}
	if lhsLo != rhsLo {
		return lhsLo > rhsLo
	}
	if q.votes != o.votes {
		return q.votes > o.votes
	}
	if q.group != o.group {
		return q.group > o.group
	}
	return q.divisor < o.divisor
}

// DHondt allocates seats by highest averages. Ties between equal quotients
// go to the group with more votes, then to the greater group id.
func DHondt(votes map[string]int, seats int) AllocationResult {
	result := AllocationResult{
		Method:  MethodDHondt,
		ByGroup: zeroAllocation(votes),
		Meta:    AllocationMeta{Seats: seats},
	}
	if seats <= 0 || len(votes) == 0 {
		result.Meta.Note = "no allocation (seats <= 0 or no votes)"
		return result
	}

	quotients := make([]quotient, 0, len(votes)*seats)
	for gid, v := range votes {
		for d := 1; d <= seats; d++ {
			quotients = append(quotients, quotient{group: gid, votes: v, divisor: d})
		}
	}

	sort.Slice(quotients, func(i, j int) bool {
		return quotients[i].ahead(quotients[j])
	})

	picks := make([]QuotientPick, 0, seats)
	for _, q := range quotients[:seats] {
		result.ByGroup[q.group]++
		picks = append(picks, QuotientPick{
			GroupID:  q.group,
			Quotient: round6(float64(q.votes) / float64(q.divisor)),
			Divisor:  q.divisor,
		})
	}

	result.Meta.TotalVotes = sumVotes(votes)
	result.Meta.Picks = picks
	return result
}

func round6(f float64) float64 {
	return math.Round(f*1e6) / 1e6
}
