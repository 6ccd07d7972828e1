// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ingest

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/danielhkuo/escrutinio/calc"
)

const sampleCSV = `agrupacion_id,agrupacion_nombre,votos_tipo,votos_cantidad,tipo_escala_territorial,nombre_escala_territorial
501,FRENTE A,POSITIVO,120,Provincia,Buenos Aires
502,ALIANZA B,POSITIVO,80.0,Provincia,Buenos Aires
501,FRENTE A,POSITIVO,-3,Provincia,Buenos Aires
undefined,,EN BLANCO,7,Provincia,Buenos Aires
,,NULO,2,Provincia,Buenos Aires
,,impugnado,1,Provincia,Buenos Aires
,,OTRO,5,Provincia,Buenos Aires
503,LISTA C,POSITIVO,abc,Provincia,Buenos Aires
`

func TestParseVoteCSV(t *testing.T) {
	sheet, err := ParseVoteCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseVoteCSV failed: %v", err)
	}

	if len(sheet.Rows) != 8 {
		t.Fatalf("Expected 8 rows, got %d", len(sheet.Rows))
	}

	first := sheet.Rows[0]
	if first.Type == nil || *first.Type != calc.VotePositive {
		t.Errorf("Expected positive type, got %v", first.Type)
	}
	if first.Count != 120 || first.GroupID != "501" {
		t.Errorf("Unexpected first row: %+v", first)
	}
	if first.ScaleType != "Provincia" || first.ScaleName != "Buenos Aires" {
		t.Errorf("Expected territorial fields copied, got %+v", first)
	}

	if sheet.Rows[1].Count != 80 {
		t.Errorf("Expected decimal count truncated to 80, got %d", sheet.Rows[1].Count)
	}
	if sheet.Rows[2].Count != 0 {
		t.Errorf("Expected negative count clamped to 0, got %d", sheet.Rows[2].Count)
	}
	if sheet.Rows[3].GroupID != calc.UnassignedGroup {
		t.Errorf("Expected placeholder group id mapped to %q, got %q", calc.UnassignedGroup, sheet.Rows[3].GroupID)
	}
	if sheet.Rows[5].Type == nil || *sheet.Rows[5].Type != calc.VoteImpugned {
		t.Errorf("Expected lower-case label to map to impugnado, got %v", sheet.Rows[5].Type)
	}
	if sheet.Rows[6].Type != nil {
		t.Errorf("Expected unknown label to yield nil type, got %v", *sheet.Rows[6].Type)
	}
	if sheet.Rows[7].Count != 0 {
		t.Errorf("Expected unparsable count to become 0, got %d", sheet.Rows[7].Count)
	}

	expectedGroups := map[string]string{"501": "FRENTE A", "502": "ALIANZA B", "503": "LISTA C"}
	if len(sheet.Groups) != len(expectedGroups) {
		t.Errorf("Expected groups %v, got %v", expectedGroups, sheet.Groups)
	}
	for gid, name := range expectedGroups {
		if sheet.Groups[gid] != name {
			t.Errorf("Expected group %s named %q, got %q", gid, name, sheet.Groups[gid])
		}
	}

	agg := calc.Aggregate(sheet.Rows)
	if agg.PositiveByGroup["501"] != 120 || agg.PositiveByGroup["502"] != 80 {
		t.Errorf("Unexpected aggregation: %v", agg.PositiveByGroup)
	}
	if agg.Others.Blank != 7 || agg.Others.Null != 2 || agg.Others.Impugned != 1 {
		t.Errorf("Unexpected other totals: %+v", agg.Others)
	}
}

func TestParseVoteCSV_MissingColumns(t *testing.T) {
	_, err := ParseVoteCSV(strings.NewReader("agrupacion_id,votos_tipo\n1,POSITIVO\n"))
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("Expected ErrMissingColumns, got %v", err)
	}
	if !strings.Contains(err.Error(), "agrupacion_nombre, votos_cantidad") {
		t.Errorf("Expected missing columns listed, got %v", err)
	}
}

func TestParseVoteCSV_NoRows(t *testing.T) {
	inputs := []string{
		"",
		"agrupacion_id,agrupacion_nombre,votos_tipo,votos_cantidad\n",
	}
	for _, in := range inputs {
		_, err := ParseVoteCSV(strings.NewReader(in))
		if !errors.Is(err, ErrNoRows) {
			t.Errorf("Expected ErrNoRows for %q, got %v", in, err)
		}
	}
}

func TestParseVoteCSV_ByteOrderMark(t *testing.T) {
	in := "\ufeffagrupacion_id,agrupacion_nombre,votos_tipo,votos_cantidad\n7,X,POSITIVO,3\n"
	sheet, err := ParseVoteCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseVoteCSV failed: %v", err)
	}
	if sheet.Rows[0].GroupID != "7" {
		t.Errorf("Expected group 7, got %q", sheet.Rows[0].GroupID)
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{"123", 123},
		{"123.0", 123},
		{"12.9", 12},
		{"-3", 0},
		{"", 0},
		{"abc", 0},
		{"NaN", 0},
		{"+Inf", 0},
		{"2147483647", math.MaxInt32},
		{"2147483648", 0},
		{"9.3e18", 0},
		{"1e30", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := parseCount(tt.raw); got != tt.expected {
				t.Errorf("parseCount(%q): expected %d, got %d", tt.raw, tt.expected, got)
			}
		})
	}
}

func TestParseVoteType(t *testing.T) {
	tests := []struct {
		raw      string
		expected *calc.VoteType
	}{
		{"POSITIVO", ptr(calc.VotePositive)},
		{"IMPUGNADO", ptr(calc.VoteImpugned)},
		{"RECURRIDO", ptr(calc.VoteAppealed)},
		{"COMANDO", ptr(calc.VoteElectoralCommand)},
		{"EN BLANCO", ptr(calc.VoteBlank)},
		{"en  blanco", ptr(calc.VoteBlank)},
		{"NULO", ptr(calc.VoteNull)},
		{"", nil},
		{"UNDEFINED", nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseVoteType(tt.raw)
			if (got == nil) != (tt.expected == nil) {
				t.Fatalf("Expected %v, got %v", tt.expected, got)
			}
			if got != nil && *got != *tt.expected {
				t.Errorf("Expected %d, got %d", *tt.expected, *got)
			}
		})
	}
}

func TestParseSeatCatalog(t *testing.T) {
	in := strings.Join([]string{
		`{"nombre_cargo": "DIPUTADOS NACIONALES", "category": "nacional", "tipo_escala_territorial": "provincia", "nombre_escala_territorial": "Buenos Aires", "seats": 35}`,
		`{"nombre_cargo": "CONCEJALES", "nombre_escala_territorial": "La Plata"}`,
		`{"office_name": "SENADORES", "categoria": "provincial", "cantidad_cargos": "8"}`,
		`{"nombre_cargo": "INTENDENTE", "seats": null, "cantidad_cargos": 1.0}`,
		``,
		`not json`,
		`[1, 2, 3]`,
		`null`,
		`{"category": "nacional", "seats": 4}`,
		`{"nombre_cargo": "GOBERNADOR", "seats": "muchos"}`,
		`{"nombre_cargo": "DIPUTADOS", "nombre_escala_territorial": 12, "seats": 3}`,
	}, "\n")

	catalog, err := ParseSeatCatalog(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseSeatCatalog failed: %v", err)
	}

	if len(catalog.Items) != 5 {
		t.Fatalf("Expected 5 items, got %d: %+v", len(catalog.Items), catalog.Items)
	}
	if catalog.Skipped != 5 {
		t.Errorf("Expected 5 skipped lines, got %d", catalog.Skipped)
	}

	first := catalog.Items[0]
	if first.OfficeName != "DIPUTADOS NACIONALES" || first.Category != "nacional" || first.ScaleName != "Buenos Aires" {
		t.Errorf("Unexpected first item: %+v", first)
	}
	if first.SeatCount == nil || *first.SeatCount != 35 {
		t.Errorf("Expected 35 seats, got %v", first.SeatCount)
	}

	if catalog.Items[1].SeatCount != nil {
		t.Errorf("Expected absent seat count, got %v", *catalog.Items[1].SeatCount)
	}

	senadores := catalog.Items[2]
	if senadores.OfficeName != "SENADORES" || senadores.Category != "provincial" {
		t.Errorf("Expected alternate keys to be read, got %+v", senadores)
	}
	if senadores.SeatCount == nil || *senadores.SeatCount != 8 {
		t.Errorf("Expected numeric string seat count 8, got %v", senadores.SeatCount)
	}

	if c := catalog.Items[3].SeatCount; c == nil || *c != 1 {
		t.Errorf("Expected null seats to fall through to cantidad_cargos, got %v", c)
	}

	if name := catalog.Items[4].ScaleName; name != "12" {
		t.Errorf("Expected numeric scale name as text, got %q", name)
	}
}

func TestParseSeatCatalog_Empty(t *testing.T) {
	catalog, err := ParseSeatCatalog(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseSeatCatalog failed: %v", err)
	}
	if len(catalog.Items) != 0 || catalog.Skipped != 0 {
		t.Errorf("Expected empty catalog, got %+v", catalog)
	}
}

func ptr(v calc.VoteType) *calc.VoteType {
	return &v
}
