// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calc

// UnassignedGroup receives positive votes whose row carries no group id
const UnassignedGroup = "0"

// Aggregate sums positive votes per group and the other vote types globally.
// Negative counts are clamped to zero and unknown types are ignored.
func Aggregate(rows []VoteRow) AggregationResult {
	result := AggregationResult{
		PositiveByGroup: make(map[string]int),
	}

	for _, row := range rows {
		if row.Type == nil {
			continue
		}

		count := max(0, row.Count)

		switch *row.Type {
		case VotePositive:
			gid := row.GroupID
			if gid == "" {
				gid = UnassignedGroup
			}
			result.PositiveByGroup[gid] += count
		case VoteImpugned:
			result.Others.Impugned += count
		case VoteAppealed:
			result.Others.Appealed += count
		case VoteElectoralCommand:
			result.Others.ElectoralCommand += count
		case VoteBlank:
			result.Others.Blank += count
		case VoteNull:
			result.Others.Null += count
		}
	}

	return result
}

// sumVotes returns the total over all groups
func sumVotes(votes map[string]int) int {
	total := 0
	for _, v := range votes {
		total += v
	}
	return total
}
