// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calc

import "math/bits"

// Balotaje evaluates the first round of a two-round contest. The leader
// wins outright with 45% of positive votes, or with 40% and a lead of
// 10 points over the runner-up. Otherwise nobody gets a seat and the
// metadata flags that a runoff is required.
func Balotaje(votes map[string]int, seats int) AllocationResult {
	total := sumVotes(votes)
	result := AllocationResult{
		Method:  MethodBalotaje,
		ByGroup: zeroAllocation(votes),
		Meta:    AllocationMeta{Seats: seats},
	}
	if total <= 0 || len(votes) == 0 {
		result.Meta.Note = "no allocation (no votes)"
		return result
	}

	ranked := rankGroups(votes)
	first := contender(ranked[0], total)

	var second *Contender
	secondPct, secondVotes := 0.0, 0
	if len(ranked) > 1 {
		c := contender(ranked[1], total)
		second = &c
		secondPct, secondVotes = c.Pct, c.Votes
	}

	lead := first.Pct - secondPct
	win := firstRoundWin(first.Votes, secondVotes, total)

	result.Meta.TotalPositive = total
	result.Meta.First = &first
	result.Meta.Second = second
	result.Meta.LeadPoints = &lead
	result.Meta.WinFirstRound = &win
	result.Meta.RequiresRunoff = !win
	result.Meta.Rule = "45% or 40%+10"

	if win {
		// Runoff offices are single executive seats unless told otherwise
		target := seats
		if target <= 0 {
			target = 1
		}
		result.ByGroup[first.GroupID] = target
	}

	return result
}

// firstRoundWin applies the thresholds on integer vote counts so a share
// of exactly 45%, 40% or a 10 point lead is never lost to rounding.
//
//	pct >= 45  <=>  20*first >= 9*total
//	pct >= 40  <=>  5*first >= 2*total
//	lead >= 10 <=>  10*(first-second) >= total
func firstRoundWin(first, second, total int) bool {
	f, s, t := uint64(first), uint64(second), uint64(total)
	if atLeast(20, f, 9, t) {
		return true
	}
	return atLeast(5, f, 2, t) && atLeast(10, f-s, 1, t)
}

// atLeast reports a*x >= b*y, multiplied in 128 bits
func atLeast(a, x, b, y uint64) bool {
	lhsHi, lhsLo := bits.Mul64(a, x)
	rhsHi, rhsLo := bits.Mul64(b, y)
	if lhsHi != rhsHi {
		return lhsHi > rhsHi
	}
	return lhsLo >= rhsLo
}

// contender computes a group's share of the positive votes
func contender(g groupTally, total int) Contender {
	return Contender{
		GroupID: g.id,
		Votes:   g.votes,
		Pct:     float64(g.votes) / float64(total) * 100.0,
	}
}
