package matrix

import (
	"strings"
	"testing"

	"github.com/kbforge/kbforge/pkg/errors"
	"github.com/kbforge/kbforge/pkg/kle"
	"github.com/kbforge/kbforge/pkg/units"
)

// gridLayout builds a plain layout with the given number of 1u keys per row.
func gridLayout(rowSizes ...int) *kle.Layout {
	l := &kle.Layout{}
	for r, n := range rowSizes {
		for c := 0; c < n; c++ {
			l.Keys = append(l.Keys, kle.Key{
				X: units.Unit(c * 1000), Y: units.Unit(r * 1000),
				W: 1000, H: 1000,
			})
		}
	}
	return l
}

func TestAssignDenseAddresses(t *testing.T) {
	placed, err := Assign(gridLayout(2, 3), GroupingSeq)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}

	want := []Address{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {1, 2}}
	if len(placed) != len(want) {
		t.Fatalf("got %d placed keys, want %d", len(placed), len(want))
	}
	for i, p := range placed {
		if p.Addr != want[i] {
			t.Errorf("key %d address = %+v, want %+v", i, p.Addr, want[i])
		}
		if p.Ordinal != i {
			t.Errorf("key %d ordinal = %d, want %d", i, p.Ordinal, i)
		}
	}
}

func TestAssignUniqueAddresses(t *testing.T) {
	placed, err := Assign(gridLayout(18, 18, 18, 18, 18, 18, 18), GroupingSeq)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	seen := map[Address]bool{}
	for _, p := range placed {
		if seen[p.Addr] {
			t.Fatalf("duplicate address %+v", p.Addr)
		}
		seen[p.Addr] = true
	}
}

func TestAssignFractionalRows(t *testing.T) {
	// Rows living at fractional coordinates still map to dense indices in
	// order of first appearance.
	l := &kle.Layout{Keys: []kle.Key{
		{X: 0, Y: 250, W: 1000, H: 1000},   // center y 0.75u -> row 0
		{X: 0, Y: 1500, W: 1000, H: 1000},  // center y 2.0u  -> row 1
		{X: 1000, Y: 250, W: 1000, H: 1000}, // back to row 0
	}}
	placed, err := Assign(l, GroupingSeq)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	want := []Address{{0, 0}, {0, 1}, {1, 0}}
	for i, p := range placed {
		if p.Addr != want[i] {
			t.Errorf("key %d address = %+v, want %+v", i, p.Addr, want[i])
		}
	}
}

func TestAssignGroupingPos(t *testing.T) {
	// Keys listed right to left: seq numbers them by arrival, pos by
	// physical position.
	l := &kle.Layout{Keys: []kle.Key{
		{X: 200, Y: 0, W: 1000, H: 1000, Legend: "right"},
		{X: 0, Y: 0, W: 1000, H: 1000, Legend: "left"},
	}}

	seq, err := Assign(l, GroupingSeq)
	if err != nil {
		t.Fatalf("Assign(seq): %v", err)
	}
	if seq[0].Key.Legend != "right" || seq[0].Addr.Col != 0 {
		t.Errorf("seq: col 0 = %q (%+v), want right", seq[0].Key.Legend, seq[0].Addr)
	}

	pos, err := Assign(l, GroupingPos)
	if err != nil {
		t.Fatalf("Assign(pos): %v", err)
	}
	if pos[0].Key.Legend != "left" || pos[0].Addr.Col != 0 {
		t.Errorf("pos: col 0 = %q (%+v), want left", pos[0].Key.Legend, pos[0].Addr)
	}
}

func TestAssignOverflow(t *testing.T) {
	tests := []struct {
		name   string
		layout *kle.Layout
	}{
		{name: "too many rows", layout: gridLayout(1, 1, 1, 1, 1, 1, 1, 1)},
		{name: "too many columns", layout: gridLayout(19)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			placed, err := Assign(tt.layout, GroupingSeq)
			if err == nil {
				t.Fatalf("Assign succeeded with %d keys, want overflow", len(placed))
			}
			if !errors.Is(err, errors.ErrCodeGridOverflow) {
				t.Errorf("err = %v, want GRID_OVERFLOW", err)
			}
			if placed != nil {
				t.Errorf("overflow returned %d placed keys, want none", len(placed))
			}
		})
	}
}

func TestAssignBoundsExactlyFit(t *testing.T) {
	// 7 rows by 18 columns is the documented maximum and must succeed.
	if _, err := Assign(gridLayout(18, 18, 18, 18, 18, 18, 18), GroupingSeq); err != nil {
		t.Fatalf("Assign at exact bounds: %v", err)
	}
}

func TestParseGrouping(t *testing.T) {
	if _, err := ParseGrouping("seq"); err != nil {
		t.Errorf("ParseGrouping(seq): %v", err)
	}
	if _, err := ParseGrouping("pos"); err != nil {
		t.Errorf("ParseGrouping(pos): %v", err)
	}
	if _, err := ParseGrouping("alpha"); !errors.Is(err, errors.ErrCodeInvalidColumns) {
		t.Errorf("ParseGrouping(alpha) err = %v, want INVALID_COLUMNS", err)
	}
}

func TestRowColCount(t *testing.T) {
	placed, err := Assign(gridLayout(2, 3), GroupingSeq)
	if err != nil {
		t.Fatal(err)
	}
	if got := RowCount(placed); got != 2 {
		t.Errorf("RowCount = %d, want 2", got)
	}
	if got := ColCount(placed); got != 3 {
		t.Errorf("ColCount = %d, want 3", got)
	}
}

func TestToDOT(t *testing.T) {
	placed, err := Assign(gridLayout(2, 1), GroupingSeq)
	if err != nil {
		t.Fatal(err)
	}
	dot := ToDOT(placed)

	for _, want := range []string{"graph matrix", `"Row_0"`, `"Row_1"`, `"Col_0"`, `"Col_1"`, `"K1" -- "Row_0"`, `"K3" -- "Col_0"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}
