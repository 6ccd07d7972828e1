// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/danielhkuo/escrutinio/calc"
	"github.com/danielhkuo/escrutinio/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// getContest loads a contest by ID. A missing contest is sql.ErrNoRows.
func getContest(q querier, contestID string) (models.Contest, error) {
	var c models.Contest
	err := q.QueryRow(`
		SELECT id, year, category, phase, office, office_name, method,
		       seats, share_slug, last_calc, final_snapshot_id, created_at
		FROM contest
		WHERE id = $1
	`, contestID).Scan(
		&c.ID, &c.Year, &c.Category, &c.Phase, &c.Office, &c.OfficeName, &c.Method,
		&c.Seats, &c.ShareSlug, &c.LastCalc, &c.FinalSnapshotID, &c.CreatedAt,
	)
	return c, err
}

// getVoteRows retrieves the uploaded vote rows of a contest in upload order
func getVoteRows(q querier, contestID string) ([]calc.VoteRow, error) {
	rows, err := q.Query(`
		SELECT vote_type, vote_count, group_id, scale_type, scale_name
		FROM vote_row
		WHERE contest_id = $1
		ORDER BY line
	`, contestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []calc.VoteRow
	for rows.Next() {
		var row calc.VoteRow
		var voteType sql.NullInt64
		if err := rows.Scan(&voteType, &row.Count, &row.GroupID, &row.ScaleType, &row.ScaleName); err != nil {
			return nil, err
		}
		if voteType.Valid {
			vt := calc.VoteType(voteType.Int64)
			row.Type = &vt
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

// getSeatCatalog retrieves the seat catalog for a year and category
func getSeatCatalog(q querier, year int, category string) ([]calc.SeatCatalogItem, error) {
	rows, err := q.Query(`
		SELECT office_name, item_category, scale_type, scale_name, seat_count
		FROM seat_catalog
		WHERE year = $1 AND category = $2
		ORDER BY line
	`, year, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []calc.SeatCatalogItem
	for rows.Next() {
		var item calc.SeatCatalogItem
		if err := rows.Scan(&item.OfficeName, &item.Category, &item.ScaleType, &item.ScaleName, &item.SeatCount); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// getGroupNames retrieves group names for a year and category
func getGroupNames(q querier, year int, category string) (map[string]string, error) {
	rows, err := q.Query(`
		SELECT group_id, name FROM group_name WHERE year = $1 AND category = $2
	`, year, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}

	return names, rows.Err()
}

// replaceVoteRows swaps the stored vote rows of a contest for rows
func replaceVoteRows(tx *sql.Tx, contestID string, rows []calc.VoteRow) error {
	if _, err := tx.Exec("DELETE FROM vote_row WHERE contest_id = $1", contestID); err != nil {
		return fmt.Errorf("failed to clear vote rows: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO vote_row (contest_id, line, vote_type, vote_count, group_id, scale_type, scale_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare vote row insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		var voteType *int
		if row.Type != nil {
			v := int(*row.Type)
			voteType = &v
		}
		if _, err := stmt.Exec(contestID, i, voteType, row.Count, row.GroupID, row.ScaleType, row.ScaleName); err != nil {
			return fmt.Errorf("failed to insert vote row %d: %w", i, err)
		}
	}

	return nil
}

// upsertGroupNames registers group names, newer uploads rename existing groups
func upsertGroupNames(tx *sql.Tx, year int, category string, groups map[string]string) error {
	for id, name := range groups {
		_, err := tx.Exec(`
			INSERT INTO group_name (year, category, group_id, name)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (year, category, group_id) DO UPDATE SET name = excluded.name
		`, year, category, id, name)
		if err != nil {
			return fmt.Errorf("failed to register group %s: %w", id, err)
		}
	}
	return nil
}

// replaceSeatCatalog swaps the stored catalog of a year and category for items
func replaceSeatCatalog(tx *sql.Tx, year int, category string, items []calc.SeatCatalogItem) error {
	if _, err := tx.Exec("DELETE FROM seat_catalog WHERE year = $1 AND category = $2", year, category); err != nil {
		return fmt.Errorf("failed to clear seat catalog: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO seat_catalog (year, category, line, office_name, item_category, scale_type, scale_name, seat_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare catalog insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		if _, err := stmt.Exec(year, category, i, item.OfficeName, item.Category, item.ScaleType, item.ScaleName, item.SeatCount); err != nil {
			return fmt.Errorf("failed to insert catalog line %d: %w", i, err)
		}
	}

	return nil
}

// computeInputsHash fingerprints the vote rows a calculation ran on
func computeInputsHash(rows []calc.VoteRow) string {
	if len(rows) == 0 {
		return "no-rows"
	}

	h := sha256.New()
	for _, row := range rows {
		voteType := "-"
		if row.Type != nil {
			voteType = fmt.Sprint(int(*row.Type))
		}
		fmt.Fprintf(h, "%s\x1f%d\x1f%s\x1f%s\x1f%s\n", voteType, row.Count, row.GroupID, row.ScaleType, row.ScaleName)
	}
	return hex.EncodeToString(h.Sum(nil))
}
