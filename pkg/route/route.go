// Package route derives the local connective traces for each key.
//
// For every key the heuristic emits three trace segments and four vias,
// all relative to the switch center: a column stub on the front copper
// layer between the two column via positions, a row stub on the back
// copper layer between the two row via positions, and the short link from
// the diode to the switch pad. Columns run toward the top and bottom edges
// of the footprint, rows toward the sides, matching the conventional rail
// directions of the matrix.
//
// Every produced point is clipped to the key's footprint bounding box, so
// a segment terminates at the box edge nearest its destination rail and
// never reaches into a neighboring key's footprint on standard grid
// layouts. Chaining keys of the same row or column together is
// deliberately left to the designer; a heuristic good enough to finish
// that job would have to be a real autorouter.
package route

import (
	"github.com/kbforge/kbforge/pkg/matrix"
	"github.com/kbforge/kbforge/pkg/place"
	"github.com/kbforge/kbforge/pkg/profile"
	"github.com/kbforge/kbforge/pkg/units"
)

// Layer names the copper layer a segment lives on.
type Layer string

const (
	// LayerFront carries column stubs.
	LayerFront Layer = "F.Cu"
	// LayerBack carries row stubs and diode links.
	LayerBack Layer = "B.Cu"
)

// Segment is one straight trace inside a key's footprint bounding box.
type Segment struct {
	Start, End place.BoardPoint
	Layer      Layer
	Net        string // net name; the renderer resolves the number
}

// Via is a plated through-hole connecting the two copper layers.
type Via struct {
	At  place.BoardPoint
	Net string
}

// Plan is the routed geometry for one key.
type Plan struct {
	Segments []Segment
	Vias     []Via
}

// Route produces the trace plan for one placed element. The plan is local:
// every point lies inside the element's footprint bounding box.
func Route(el place.Element, p *profile.Profile) Plan {
	box := el.BoardRect(p)
	at := func(off profile.Offset) place.BoardPoint {
		return clip(place.BoardPoint{X: el.Board.X + off.X, Y: el.Board.Y + off.Y}, box)
	}

	rowNet := matrix.RowNet(el.Addr.Row)
	colNet := matrix.ColNet(el.Addr.Col)
	diodeNet := matrix.DiodeNet(el.Ordinal)

	colA, colB := at(p.Board.ColVias[0]), at(p.Board.ColVias[1])
	rowA, rowB := at(p.Board.RowVias[0]), at(p.Board.RowVias[1])

	return Plan{
		Segments: []Segment{
			{Start: colA, End: colB, Layer: LayerFront, Net: colNet},
			{Start: rowA, End: rowB, Layer: LayerBack, Net: rowNet},
			{Start: at(p.Board.DiodeTrace[0]), End: at(p.Board.DiodeTrace[1]), Layer: LayerBack, Net: diodeNet},
		},
		Vias: []Via{
			{At: colA, Net: colNet},
			{At: colB, Net: colNet},
			{At: rowA, Net: rowNet},
			{At: rowB, Net: rowNet},
		},
	}
}

// RouteAll routes every element in order. With routing disabled the board
// still gets switches and diodes but no stub traces; the empty slice keeps
// renderer handling uniform.
func RouteAll(elements []place.Element, p *profile.Profile) []Plan {
	plans := make([]Plan, len(elements))
	for i, el := range elements {
		plans[i] = Route(el, p)
	}
	return plans
}

// clip clamps a point into a rectangle.
func clip(pt place.BoardPoint, r place.Rect) place.BoardPoint {
	pt.X = clamp(pt.X, r.MinX, r.MaxX)
	pt.Y = clamp(pt.Y, r.MinY, r.MaxY)
	return pt
}

func clamp(v, lo, hi units.Nano) units.Nano {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
