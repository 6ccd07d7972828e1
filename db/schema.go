// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL sticks to types and defaults that both postgres and sqlite accept.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Contests
CREATE TABLE IF NOT EXISTS contest (
    id TEXT PRIMARY KEY,
    year INTEGER NOT NULL,
    category TEXT NOT NULL,
    phase TEXT NOT NULL CHECK (phase IN ('PASO', 'GENERAL', 'BALOTAJE')),
    office TEXT NOT NULL,
    office_name TEXT NOT NULL DEFAULT '',
    method TEXT NOT NULL DEFAULT '',
    seats INTEGER,
    share_slug TEXT NOT NULL UNIQUE,
    last_calc TIMESTAMP,
    final_snapshot_id TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (year, category, phase, office)
);

CREATE INDEX IF NOT EXISTS idx_contest_share_slug ON contest(share_slug);

-- Vote rows, replaced wholesale on every upload
CREATE TABLE IF NOT EXISTS vote_row (
    contest_id TEXT NOT NULL REFERENCES contest(id) ON DELETE CASCADE,
    line INTEGER NOT NULL,
    vote_type INTEGER,
    vote_count BIGINT NOT NULL DEFAULT 0,
    group_id TEXT NOT NULL,
    scale_type TEXT NOT NULL DEFAULT '',
    scale_name TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (contest_id, line)
);

-- Group names per year and category
CREATE TABLE IF NOT EXISTS group_name (
    year INTEGER NOT NULL,
    category TEXT NOT NULL,
    group_id TEXT NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (year, category, group_id)
);

-- Seat catalog per year and category
CREATE TABLE IF NOT EXISTS seat_catalog (
    year INTEGER NOT NULL,
    category TEXT NOT NULL,
    line INTEGER NOT NULL,
    office_name TEXT NOT NULL,
    item_category TEXT NOT NULL DEFAULT '',
    scale_type TEXT NOT NULL DEFAULT '',
    scale_name TEXT NOT NULL DEFAULT '',
    seat_count INTEGER,
    PRIMARY KEY (year, category, line)
);

-- Result Snapshots
CREATE TABLE IF NOT EXISTS result_snapshot (
    id TEXT PRIMARY KEY,
    contest_id TEXT NOT NULL REFERENCES contest(id) ON DELETE CASCADE,
    method TEXT NOT NULL DEFAULT '',
    computed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_result_snapshot_contest_id ON result_snapshot(contest_id);
`
