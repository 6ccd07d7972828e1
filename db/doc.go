// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on postgres (lib/pq) and sqlite (modernc.org/sqlite):
timestamps default to CURRENT_TIMESTAMP and snapshot payloads are TEXT.

# Tables

The schema includes:

  - contest: One electoral contest (year, category, phase, office)
  - vote_row: Ballot-line records uploaded for a contest
  - group_name: Party or alliance names per year and category
  - seat_catalog: Seat catalog lines per year and category
  - result_snapshot: Stored calculations

# Relationships

	contest 1──* vote_row
	contest 1──* result_snapshot
	group_name, seat_catalog keyed by (year, category)

Foreign keys use ON DELETE CASCADE.
*/
package db
