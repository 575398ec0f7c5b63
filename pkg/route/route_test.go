package route

import (
	"testing"

	"github.com/kbforge/kbforge/pkg/footprint"
	"github.com/kbforge/kbforge/pkg/kle"
	"github.com/kbforge/kbforge/pkg/matrix"
	"github.com/kbforge/kbforge/pkg/place"
	"github.com/kbforge/kbforge/pkg/profile"
	"github.com/kbforge/kbforge/pkg/units"
)

func element(t *testing.T, x, y, w int, addr matrix.Address, ordinal int) place.Element {
	t.Helper()
	spec, _ := footprint.Resolve(units.Unit(w))
	return place.Project(matrix.PlacedKey{
		Key: kle.Key{
			X: units.Unit(x), Y: units.Unit(y),
			W: units.Unit(w), H: 1000,
		},
		Addr:    addr,
		Ordinal: ordinal,
	}, spec, profile.Default())
}

func TestRoutePlanShape(t *testing.T) {
	plan := Route(element(t, 0, 0, 1000, matrix.Address{Row: 2, Col: 5}, 7), profile.Default())

	if len(plan.Segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(plan.Segments))
	}
	if len(plan.Vias) != 4 {
		t.Fatalf("got %d vias, want 4", len(plan.Vias))
	}

	col, row, diode := plan.Segments[0], plan.Segments[1], plan.Segments[2]
	if col.Net != "Col_5" || col.Layer != LayerFront {
		t.Errorf("column stub = net %q layer %q, want Col_5 on F.Cu", col.Net, col.Layer)
	}
	if row.Net != "Row_2" || row.Layer != LayerBack {
		t.Errorf("row stub = net %q layer %q, want Row_2 on B.Cu", row.Net, row.Layer)
	}
	if diode.Net != "Net-(D8-Pad2)" || diode.Layer != LayerBack {
		t.Errorf("diode link = net %q layer %q, want Net-(D8-Pad2) on B.Cu", diode.Net, diode.Layer)
	}
}

func TestRouteStaysInsideFootprint(t *testing.T) {
	p := profile.Default()
	widths := []int{1000, 1250, 2000, 2750, 6250}

	for _, w := range widths {
		el := element(t, 0, 0, w, matrix.Address{}, 0)
		box := el.BoardRect(p)
		plan := Route(el, p)

		for i, s := range plan.Segments {
			if !box.Contains(s.Start) || !box.Contains(s.End) {
				t.Errorf("width %d: segment %d (%+v) leaves footprint box %+v", w, i, s, box)
			}
		}
		for i, v := range plan.Vias {
			if !box.Contains(v.At) {
				t.Errorf("width %d: via %d (%+v) leaves footprint box %+v", w, i, v, box)
			}
		}
	}
}

func TestRouteNeverCrossesNeighbor(t *testing.T) {
	// Two adjacent 1u keys: neither plan may touch the other's box
	// interior. Boxes share an edge, so points exactly on the shared edge
	// are fine.
	p := profile.Default()
	left := element(t, 0, 0, 1000, matrix.Address{Row: 0, Col: 0}, 0)
	right := element(t, 1000, 0, 1000, matrix.Address{Row: 0, Col: 1}, 1)

	leftBox := left.BoardRect(p)
	for _, s := range Route(right, p).Segments {
		for _, pt := range []place.BoardPoint{s.Start, s.End} {
			if pt.X < leftBox.MaxX && pt.X > leftBox.MinX && pt.Y < leftBox.MaxY && pt.Y > leftBox.MinY {
				t.Errorf("right key's segment point %+v is inside the left key's footprint", pt)
			}
		}
	}
}

func TestRouteColumnStubVertical(t *testing.T) {
	// The column stub runs straight toward the top and bottom footprint
	// edges: both endpoints share an x coordinate.
	plan := Route(element(t, 0, 0, 1000, matrix.Address{}, 0), profile.Default())
	col := plan.Segments[0]
	if col.Start.X != col.End.X {
		t.Errorf("column stub is not vertical: %+v", col)
	}
}

func TestRouteViasMatchStubEndpoints(t *testing.T) {
	plan := Route(element(t, 0, 0, 1000, matrix.Address{}, 0), profile.Default())
	col := plan.Segments[0]
	if plan.Vias[0].At != col.Start || plan.Vias[1].At != col.End {
		t.Errorf("column vias %+v, %+v do not sit on stub endpoints %+v, %+v",
			plan.Vias[0].At, plan.Vias[1].At, col.Start, col.End)
	}
}

func TestRouteAll(t *testing.T) {
	p := profile.Default()
	elements := []place.Element{
		element(t, 0, 0, 1000, matrix.Address{Row: 0, Col: 0}, 0),
		element(t, 1000, 0, 1000, matrix.Address{Row: 0, Col: 1}, 1),
	}
	plans := RouteAll(elements, p)
	if len(plans) != 2 {
		t.Fatalf("got %d plans, want 2", len(plans))
	}
	if plans[0].Segments[0].Net != "Col_0" || plans[1].Segments[0].Net != "Col_1" {
		t.Errorf("plans routed to wrong columns: %q, %q",
			plans[0].Segments[0].Net, plans[1].Segments[0].Net)
	}
}
