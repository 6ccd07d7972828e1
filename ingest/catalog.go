// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ingest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/danielhkuo/escrutinio/calc"
)

const maxCatalogLine = 1 << 20

// Catalog is a parsed seat catalog
type Catalog struct {
	Items   []calc.SeatCatalogItem
	Skipped int
}

// ParseSeatCatalog reads a line-delimited JSON seat catalog.
// Lines that are not objects, lack an office name or carry an unparsable
// seat count are skipped and counted. Only read failures are errors.
func ParseSeatCatalog(r io.Reader) (Catalog, error) {
	var catalog Catalog

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxCatalogLine)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		item, ok := parseCatalogLine(line)
		if !ok {
			catalog.Skipped++
			continue
		}
		catalog.Items = append(catalog.Items, item)
	}
	if err := scanner.Err(); err != nil {
		return Catalog{}, fmt.Errorf("failed to read seat catalog: %w", err)
	}

	return catalog, nil
}

func parseCatalogLine(line []byte) (calc.SeatCatalogItem, bool) {
	var record map[string]any
	if err := json.Unmarshal(line, &record); err != nil || record == nil {
		return calc.SeatCatalogItem{}, false
	}

	item := calc.SeatCatalogItem{
		OfficeName: firstString(record, "nombre_cargo", "office_name"),
		Category:   firstString(record, "category", "categoria"),
		ScaleType:  firstString(record, "tipo_escala_territorial"),
		ScaleName:  firstString(record, "nombre_escala_territorial"),
	}
	if item.OfficeName == "" {
		return calc.SeatCatalogItem{}, false
	}

	for _, key := range []string{"seats", "cantidad_cargos"} {
		raw, present := record[key]
		if !present || raw == nil {
			continue
		}
		n, ok := toInt(raw)
		if !ok {
			return calc.SeatCatalogItem{}, false
		}
		item.SeatCount = &n
		break
	}

	return item, true
}

// firstString returns the first non-empty value among keys, as text
func firstString(record map[string]any, keys ...string) string {
	for _, key := range keys {
		var s string
		switch v := record[key].(type) {
		case string:
			s = v
		case float64:
			s = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			s = strconv.FormatBool(v)
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// toInt accepts JSON numbers and numeric strings such as "3" or "3.0"
func toInt(v any) (int, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
