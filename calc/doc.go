// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package calc is the tally and seat-allocation engine.

The package is pure: every function works on its arguments only, holds no
package-level mutable state and performs no I/O, so contests can be
calculated concurrently without locking.

# Aggregation

Aggregate reduces vote rows to positive votes per group and global totals
for the other vote types:

	agg := calc.Aggregate(rows)
	agg.PositiveByGroup // group_id -> votes
	agg.Others.Blank    // en_blanco total

# Seats

ResolveSeats picks the number of seats for a contest. An explicit
override wins; otherwise the seat catalog is searched in four layers:

	A: office + category + territory
	B: office + category
	C: office + territory
	D: office only

The territory is the most frequent scale type and scale name in the vote
rows. The first layer with a positive sum wins. ExplainSeats returns the
same number along with the layer that produced it.

# Allocation

Allocate dispatches on a method name (case and accent insensitive):

	res, err := calc.Allocate("D'Hont", agg.PositiveByGroup, seats)
	if errors.Is(err, calc.ErrUnsupportedMethod) {
		// reject the request
	}

Methods:

  - DHondt: highest averages
  - Hare: Hare quota and largest remainder
  - ListaIncompleta: 2/3 to the winner, 1/3 to the runner-up
  - MayoriaSimple: winner takes all
  - Balotaje: first-round evaluation of a two-round contest

Ties are broken by vote total and then by group id, both descending, so
identical input always yields identical output. Degenerate input (no
seats, no votes) is not an error: every group gets zero and Meta.Note
says why.

# Contest Calculation

Run chains the steps above for one contest:

	out, err := calc.Run(calc.Input{Category: "nacional", Office: "diputados", Method: "d-hont", Rows: rows, Catalog: catalog})
*/
package calc
