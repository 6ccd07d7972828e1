// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/danielhkuo/escrutinio/calc"
)

var (
	ErrMissingColumns = errors.New("missing required columns")
	ErrNoRows         = errors.New("no valid rows")
)

// Vote CSV column names
const (
	ColVoteType  = "votos_tipo"
	ColVoteCount = "votos_cantidad"
	ColGroupID   = "agrupacion_id"
	ColGroupName = "agrupacion_nombre"
	ColScaleType = "tipo_escala_territorial"
	ColScaleName = "nombre_escala_territorial"
)

var requiredVoteColumns = []string{ColVoteType, ColVoteCount, ColGroupID, ColGroupName}

var voteTypeCodes = map[string]calc.VoteType{
	"POSITIVO":  calc.VotePositive,
	"IMPUGNADO": calc.VoteImpugned,
	"RECURRIDO": calc.VoteAppealed,
	"COMANDO":   calc.VoteElectoralCommand,
	"EN BLANCO": calc.VoteBlank,
	"NULO":      calc.VoteNull,
}

// VoteSheet is a parsed vote CSV
type VoteSheet struct {
	Rows []calc.VoteRow
	// group_id -> group name, first name seen wins
	Groups  map[string]string
	Skipped int
}

// ParseVoteCSV reads a results CSV into vote rows.
// Unknown vote types are kept with a nil type so they count as rows but
// contribute to no total.
func ParseVoteCSV(r io.Reader) (VoteSheet, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return VoteSheet{}, ErrNoRows
	}
	if err != nil {
		return VoteSheet{}, fmt.Errorf("failed to read header: %w", err)
	}

	headerMap := make(map[string]int, len(headers))
	for i, h := range headers {
		headerMap[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	var missing []string
	for _, col := range requiredVoteColumns {
		if _, ok := headerMap[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return VoteSheet{}, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	sheet := VoteSheet{Groups: make(map[string]string)}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// Corrupt line, keep going
				sheet.Skipped++
				continue
			}
			return VoteSheet{}, fmt.Errorf("failed to read row: %w", err)
		}

		field := func(name string) string {
			i, ok := headerMap[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		gid := normalizeGroupID(field(ColGroupID))
		row := calc.VoteRow{
			Type:      ParseVoteType(field(ColVoteType)),
			Count:     parseCount(field(ColVoteCount)),
			GroupID:   gid,
			ScaleType: field(ColScaleType),
			ScaleName: field(ColScaleName),
		}
		sheet.Rows = append(sheet.Rows, row)

		if name := field(ColGroupName); name != "" {
			if _, seen := sheet.Groups[gid]; !seen {
				sheet.Groups[gid] = name
			}
		}
	}

	if len(sheet.Rows) == 0 {
		return VoteSheet{}, ErrNoRows
	}

	return sheet, nil
}

// ParseVoteType maps a published vote type label to its code.
// Blank or unknown labels yield nil.
func ParseVoteType(raw string) *calc.VoteType {
	code, ok := voteTypeCodes[strings.Join(strings.Fields(strings.ToUpper(raw)), " ")]
	if !ok {
		return nil
	}
	return &code
}

// parseCount accepts "123", "123.0" or " 12 " and clamps negatives to zero.
// Counts beyond the int32 range are treated as unparsable.
func parseCount(raw string) int {
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || !(f >= 0) || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}

// normalizeGroupID maps empty and placeholder ids to the unassigned group
func normalizeGroupID(raw string) string {
	switch strings.ToLower(raw) {
	case "", "undefined", "null", "none":
		return calc.UnassignedGroup
	}
	return raw
}
