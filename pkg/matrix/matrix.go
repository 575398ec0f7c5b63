// Package matrix assigns each key an electrical address in the switch
// matrix and maintains the net model shared by the schematic and the board.
//
// The scanning matrix is bounded at 7 rows by 18 columns, the size the
// controller circuit is wired for. Addresses are dense: the row index is
// the order of first appearance of a distinct row coordinate, and the
// column index counts keys within the row. Fractional or irregular source
// coordinates therefore still map onto a compact grid; the literal
// positions survive only in the coordinate projector.
package matrix

import (
	"slices"
	"sort"

	"github.com/kbforge/kbforge/pkg/errors"
	"github.com/kbforge/kbforge/pkg/kle"
	"github.com/kbforge/kbforge/pkg/profile"
)

// Grouping selects the column assignment strategy.
type Grouping string

const (
	// GroupingSeq numbers columns by key arrival order within the row.
	GroupingSeq Grouping = "seq"
	// GroupingPos numbers columns left to right by key position. The two
	// strategies agree for ordinary row-major layouts and differ only when
	// a row's keys are listed out of visual order.
	GroupingPos Grouping = "pos"
)

// ParseGrouping validates a grouping name from the command line.
func ParseGrouping(s string) (Grouping, error) {
	switch Grouping(s) {
	case GroupingSeq, GroupingPos:
		return Grouping(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidColumns,
		"invalid column grouping %q (must be %q or %q)", s, GroupingSeq, GroupingPos)
}

// Address is a key's position in the electrical scanning matrix, distinct
// from its physical grid position.
type Address struct {
	Row, Col int
}

// PlacedKey is a key with its assigned matrix address.
type PlacedKey struct {
	Key  kle.Key
	Addr Address
	// Ordinal is the key's zero-based sequence number in row-major order.
	// Reference designators and diode nets are numbered Ordinal+1.
	Ordinal int
}

// Assign maps each key to a unique (row, col) address and returns the keys in
// row-major order.
//
// It fails with GRID_OVERFLOW when the layout needs more than
// profile.MaxRows rows or more than profile.MaxCols columns in any row. A
// duplicate address is reported as an internal invariant violation; the
// assignment is dense by construction, so one occurring means a defect in
// this package, not bad input.
func Assign(layout *kle.Layout, grouping Grouping) ([]PlacedKey, error) {
	type indexed struct {
		key kle.Key
		pos int // input order
	}

	// Row index by order of first appearance of distinct center rows.
	rowIndex := map[int64]int{}
	rows := [][]indexed{}
	for i, k := range layout.Keys {
		cy := int64(k.CenterY())
		r, ok := rowIndex[cy]
		if !ok {
			r = len(rows)
			rowIndex[cy] = r
			rows = append(rows, nil)
		}
		rows[r] = append(rows[r], indexed{key: k, pos: i})
	}
	if len(rows) > profile.MaxRows {
		return nil, errors.New(errors.ErrCodeGridOverflow,
			"layout maps to %d matrix rows; the controller supports at most %d", len(rows), profile.MaxRows)
	}

	placed := make([]PlacedKey, 0, len(layout.Keys))
	seen := map[Address]bool{}
	for r, row := range rows {
		if len(row) > profile.MaxCols {
			return nil, errors.New(errors.ErrCodeGridOverflow,
				"matrix row %d has %d columns; the controller supports at most %d", r, len(row), profile.MaxCols)
		}
		if grouping == GroupingPos {
			sort.SliceStable(row, func(i, j int) bool {
				return row[i].key.CenterX() < row[j].key.CenterX()
			})
		}
		for c, entry := range row {
			addr := Address{Row: r, Col: c}
			if seen[addr] {
				return nil, errors.New(errors.ErrCodeDuplicateAddress,
					"two keys assigned matrix address (%d, %d)", addr.Row, addr.Col)
			}
			seen[addr] = true
			placed = append(placed, PlacedKey{Key: entry.key, Addr: addr})
		}
	}

	// Row-major output order is the rendering contract: it keeps output
	// byte-stable across runs and gives designators a predictable reading
	// order.
	slices.SortFunc(placed, func(a, b PlacedKey) int {
		if a.Addr.Row != b.Addr.Row {
			return a.Addr.Row - b.Addr.Row
		}
		return a.Addr.Col - b.Addr.Col
	})
	for i := range placed {
		placed[i].Ordinal = i
	}
	return placed, nil
}

// RowCount returns the number of distinct matrix rows in use.
func RowCount(placed []PlacedKey) int {
	max := -1
	for _, p := range placed {
		if p.Addr.Row > max {
			max = p.Addr.Row
		}
	}
	return max + 1
}

// ColCount returns the widest row's column count.
func ColCount(placed []PlacedKey) int {
	max := -1
	for _, p := range placed {
		if p.Addr.Col > max {
			max = p.Addr.Col
		}
	}
	return max + 1
}
