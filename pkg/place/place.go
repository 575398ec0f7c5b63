// Package place projects matrix-assigned keys into absolute coordinates.
//
// Each key gets two positions: a schematic-sheet position in mils and a
// board position in nanometers. The schematic is paginated, with every
// RowsPerSheet matrix rows starting a new sheet because schematic capture
// tools work in fixed-size pages. The board is a single continuous plane.
//
// Projection is pure integer arithmetic from the key's original rational
// grid position, so it preserves fractional offsets that matrix addressing
// deliberately discards. Two keys with distinct matrix addresses must
// never land on the same point in either system; this is checked, and a
// violation aborts the run as a compiler defect.
package place

import (
	"github.com/kbforge/kbforge/pkg/errors"
	"github.com/kbforge/kbforge/pkg/footprint"
	"github.com/kbforge/kbforge/pkg/matrix"
	"github.com/kbforge/kbforge/pkg/profile"
	"github.com/kbforge/kbforge/pkg/units"
)

// SchematicPoint is a position on a schematic sheet.
type SchematicPoint struct {
	X, Y  units.Mil
	Sheet int // zero-based sheet index
}

// BoardPoint is a position on the board plane.
type BoardPoint struct {
	X, Y units.Nano
}

// Rect is an axis-aligned region of the board plane.
type Rect struct {
	MinX, MinY, MaxX, MaxY units.Nano
}

// Contains reports whether the point lies inside the rectangle, borders
// included.
func (r Rect) Contains(p BoardPoint) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Element is a key with everything later stages need: matrix address,
// resolved footprint, and both absolute positions. Elements are immutable
// once produced; the router and the renderer consume them read-only.
type Element struct {
	matrix.PlacedKey
	Footprint footprint.Spec
	Schematic SchematicPoint
	Board     BoardPoint
}

// BoardRect returns the key's footprint bounding box on the board, centered
// on the switch position and sized by the key cap.
func (e Element) BoardRect(p *profile.Profile) Rect {
	halfW := scaleNano(e.Key.W, p.Board.Pitch) / 2
	halfH := scaleNano(e.Key.H, p.Board.Pitch) / 2
	return Rect{
		MinX: e.Board.X - halfW,
		MinY: e.Board.Y - halfH,
		MaxX: e.Board.X + halfW,
		MaxY: e.Board.Y + halfH,
	}
}

// Project computes the two absolute positions for one placed key.
func Project(pk matrix.PlacedKey, spec footprint.Spec, p *profile.Profile) Element {
	cx, cy := pk.Key.CenterX(), pk.Key.CenterY()

	sheet := pk.Addr.Row / p.Schematic.RowsPerSheet
	sy := p.Schematic.OriginY + scaleMil(cy, p.Schematic.PitchY) -
		units.Mil(sheet*p.Schematic.RowsPerSheet)*p.Schematic.PitchY

	return Element{
		PlacedKey: pk,
		Footprint: spec,
		Schematic: SchematicPoint{
			X:     p.Schematic.OriginX + scaleMil(cx, p.Schematic.PitchX),
			Y:     sy,
			Sheet: sheet,
		},
		Board: BoardPoint{
			X: p.Board.OriginX + scaleNano(cx, p.Board.Pitch),
			Y: p.Board.OriginY + scaleNano(cy, p.Board.Pitch),
		},
	}
}

// ProjectAll projects every placed key and enforces the coincidence
// invariant. The specs slice is parallel to placed.
func ProjectAll(placed []matrix.PlacedKey, specs []footprint.Spec, p *profile.Profile) ([]Element, error) {
	if len(placed) != len(specs) {
		return nil, errors.New(errors.ErrCodeInternal,
			"placed keys (%d) and footprint specs (%d) out of step", len(placed), len(specs))
	}

	elements := make([]Element, 0, len(placed))
	seenBoard := map[BoardPoint]matrix.Address{}
	seenSch := map[SchematicPoint]matrix.Address{}
	for i, pk := range placed {
		el := Project(pk, specs[i], p)
		if prev, ok := seenBoard[el.Board]; ok {
			return nil, errors.New(errors.ErrCodeCoincident,
				"keys (%d,%d) and (%d,%d) project to the same board position %s, %s",
				prev.Row, prev.Col, pk.Addr.Row, pk.Addr.Col, el.Board.X.MM(), el.Board.Y.MM())
		}
		if prev, ok := seenSch[el.Schematic]; ok {
			return nil, errors.New(errors.ErrCodeCoincident,
				"keys (%d,%d) and (%d,%d) project to the same schematic position (%s, %s) on sheet %d",
				prev.Row, prev.Col, pk.Addr.Row, pk.Addr.Col, el.Schematic.X, el.Schematic.Y, el.Schematic.Sheet)
		}
		seenBoard[el.Board] = pk.Addr
		seenSch[el.Schematic] = pk.Addr
		elements = append(elements, el)
	}
	return elements, nil
}

// SheetCount returns the number of schematic sheets the elements span.
func SheetCount(elements []Element) int {
	max := -1
	for _, e := range elements {
		if e.Schematic.Sheet > max {
			max = e.Schematic.Sheet
		}
	}
	return max + 1
}

// scaleMil multiplies a key-unit distance by a per-unit pitch in mils.
func scaleMil(u units.Unit, pitch units.Mil) units.Mil {
	return units.Mil(int64(u) * int64(pitch) / 1000)
}

// scaleNano multiplies a key-unit distance by a per-unit pitch in
// nanometers. The profile guarantees the pitch is divisible by the
// milliunit grid, so this is exact.
func scaleNano(u units.Unit, pitch units.Nano) units.Nano {
	return units.Nano(int64(u) * (int64(pitch) / 1000))
}
