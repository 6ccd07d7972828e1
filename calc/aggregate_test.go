// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calc

import (
	"reflect"
	"testing"
)

func vt(t VoteType) *VoteType {
	return &t
}

func TestAggregate(t *testing.T) {
	rows := []VoteRow{
		{Type: vt(VotePositive), Count: 10, GroupID: "1"},
		{Type: vt(VotePositive), Count: -5, GroupID: "1"},
		{Type: vt(VoteNull), Count: 3},
	}

	agg := Aggregate(rows)

	expected := map[string]int{"1": 10}
	if !reflect.DeepEqual(agg.PositiveByGroup, expected) {
		t.Errorf("Expected positive %v, got %v", expected, agg.PositiveByGroup)
	}
	if agg.Others != (OtherTotals{Null: 3}) {
		t.Errorf("Expected only null=3, got %+v", agg.Others)
	}
}

func TestAggregate_AllTypes(t *testing.T) {
	rows := []VoteRow{
		{Type: vt(VotePositive), Count: 100, GroupID: "501"},
		{Type: vt(VotePositive), Count: 50, GroupID: "502"},
		{Type: vt(VotePositive), Count: 25, GroupID: "501"},
		{Type: vt(VoteImpugned), Count: 1},
		{Type: vt(VoteAppealed), Count: 2},
		{Type: vt(VoteElectoralCommand), Count: 3},
		{Type: vt(VoteBlank), Count: 4},
		{Type: vt(VoteNull), Count: 5},
		{Type: vt(VoteType(4)), Count: 99},
		{Type: nil, Count: 77, GroupID: "501"},
	}

	agg := Aggregate(rows)

	expected := map[string]int{"501": 125, "502": 50}
	if !reflect.DeepEqual(agg.PositiveByGroup, expected) {
		t.Errorf("Expected positive %v, got %v", expected, agg.PositiveByGroup)
	}

	expectedOthers := OtherTotals{Impugned: 1, Appealed: 2, ElectoralCommand: 3, Blank: 4, Null: 5}
	if agg.Others != expectedOthers {
		t.Errorf("Expected others %+v, got %+v", expectedOthers, agg.Others)
	}
	if agg.Others.Sum() != 15 {
		t.Errorf("Expected others sum 15, got %d", agg.Others.Sum())
	}
}

func TestAggregate_MissingGroupID(t *testing.T) {
	agg := Aggregate([]VoteRow{
		{Type: vt(VotePositive), Count: 7},
		{Type: vt(VotePositive), Count: 3, GroupID: "0"},
	})

	if agg.PositiveByGroup[UnassignedGroup] != 10 {
		t.Errorf("Expected 10 votes under group %q, got %v", UnassignedGroup, agg.PositiveByGroup)
	}
}

func TestAggregate_Empty(t *testing.T) {
	agg := Aggregate(nil)

	if agg.PositiveByGroup == nil {
		t.Error("Expected a non-nil positive map")
	}
	if len(agg.PositiveByGroup) != 0 {
		t.Errorf("Expected no groups, got %v", agg.PositiveByGroup)
	}
	if agg.Others != (OtherTotals{}) {
		t.Errorf("Expected zero totals, got %+v", agg.Others)
	}
}

func TestVoteType_Known(t *testing.T) {
	for _, code := range []VoteType{0, 1, 2, 3, 5, 6} {
		if !code.Known() {
			t.Errorf("Expected %d to be known", code)
		}
	}
	for _, code := range []VoteType{-1, 4, 7} {
		if code.Known() {
			t.Errorf("Expected %d to be unknown", code)
		}
	}
}
