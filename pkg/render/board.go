package render

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/kbforge/kbforge/pkg/footprint"
	"github.com/kbforge/kbforge/pkg/matrix"
	"github.com/kbforge/kbforge/pkg/place"
	"github.com/kbforge/kbforge/pkg/profile"
	"github.com/kbforge/kbforge/pkg/units"
)

// boardHeaderTpl opens the board file: format version, stackup, design
// rules from the profile, and the full net table.
var boardHeaderTpl = template.Must(template.New("boardheader").Parse(`(kicad_pcb (version 20171130) (host pcbnew "(5.1.6)")

  (general
    (thickness 1.6)
  )

  (page A3)
  (layers
    (0 F.Cu signal)
    (31 B.Cu signal)
    (34 B.Paste)
    (35 F.Paste)
    (36 B.SilkS)
    (37 F.SilkS)
    (38 B.Mask)
    (39 F.Mask)
    (40 Dwgs.User)
    (44 Edge.Cuts)
    (46 B.CrtYd)
    (47 F.CrtYd)
    (48 B.Fab)
    (49 F.Fab)
  )

  (setup
    (last_trace_width {{.TraceWidth}})
    (trace_clearance 0.2)
    (zone_clearance 0.508)
    (via_size {{.ViaSize}})
    (via_drill {{.ViaDrill}})
    (grid_origin 0 0)
  )

  (net 0 "")
{{.NetDeclarations}}
  (net_class Default "This is the default net class."
    (clearance 0.2)
    (trace_width {{.TraceWidth}})
    (via_dia {{.ViaSize}})
    (via_drill {{.ViaDrill}})
{{.AddNets}}  )

`))

// switchModuleTpl is one keyswitch footprint. Pad 1 carries the diode net,
// pad 2 the column net. The no-connect holes are the switch mount.
var switchModuleTpl = template.Must(template.New("switchmodule").Parse(`  (module {{.Footprint}} (layer F.Cu) (tedit 0) (tstamp {{.ID}})
    (at {{.X}} {{.Y}})
    (fp_text reference K{{.Ordinal}} (at 0 -7.9) (layer F.SilkS)
      (effects (font (size 1 1) (thickness 0.15)))
    )
    (fp_text value SW_Push (at 0 8.9) (layer F.Fab)
      (effects (font (size 1 1) (thickness 0.15)))
    )
    (pad 1 thru_hole circle (at 2.54 -5.08) (size 2.2 2.2) (drill 1.5) (layers *.Cu *.Mask) (net {{.DiodeNetNum}} {{.DiodeNetName}}))
    (pad 2 thru_hole circle (at -3.81 -2.54) (size 2.2 2.2) (drill 1.5) (layers *.Cu *.Mask) (net {{.ColNetNum}} {{.ColNetName}}))
    (pad "" np_thru_hole circle (at 0 0) (size 4 4) (drill 4) (layers *.Cu *.Mask))
    (pad "" np_thru_hole circle (at -5.08 0) (size 1.75 1.75) (drill 1.75) (layers *.Cu *.Mask))
    (pad "" np_thru_hole circle (at 5.08 0) (size 1.75 1.75) (drill 1.75) (layers *.Cu *.Mask))
{{- range .StabHoles}}
    (pad "" np_thru_hole circle (at {{.X}} {{.Y}}) (size {{.Size}} {{.Size}}) (drill {{.Size}}) (layers *.Cu *.Mask))
{{- end}}
  )
`))

// diodeModuleTpl is one matrix diode, rotated upright on the back side of
// its switch. Pad 1 joins the row net, pad 2 the per-key diode net.
var diodeModuleTpl = template.Must(template.New("diodemodule").Parse(`  (module Diode_THT:D_DO-35_SOD27_P7.62mm_Horizontal (layer F.Cu) (tedit 0) (tstamp {{.ID}})
    (at {{.X}} {{.Y}} 90)
    (fp_text reference D{{.Ref}} (at 3.81 -2.1 90) (layer F.SilkS)
      (effects (font (size 1 1) (thickness 0.15)))
    )
    (fp_text value D (at 3.81 2.1 90) (layer F.Fab)
      (effects (font (size 1 1) (thickness 0.15)))
    )
    (pad 1 thru_hole rect (at 0 0 90) (size 1.6 1.6) (drill 0.8) (layers *.Cu *.Mask) (net {{.RowNetNum}} {{.RowNetName}}))
    (pad 2 thru_hole oval (at 7.62 0 90) (size 1.6 1.6) (drill 0.8) (layers *.Cu *.Mask) (net {{.DiodeNetNum}} {{.DiodeNetName}}))
  )
`))

type boardHeaderContext struct {
	TraceWidth      string
	ViaSize         string
	ViaDrill        string
	NetDeclarations string
	AddNets         string
}

type stabHole struct {
	X, Y, Size string
}

type switchModuleContext struct {
	Footprint    string
	ID           string
	Ordinal      int
	X, Y         string
	DiodeNetNum  int
	DiodeNetName string
	ColNetNum    int
	ColNetName   string
	StabHoles    []stabHole
}

type diodeModuleContext struct {
	ID           string
	Ref          int
	X, Y         string
	RowNetNum    int
	RowNetName   string
	DiodeNetNum  int
	DiodeNetName string
}

// netName quotes a net name the way the board format requires: names with
// characters outside the bare identifier set are wrapped in double quotes.
func netName(name string) string {
	if strings.ContainsAny(name, "()- ") {
		return `"` + name + `"`
	}
	return name
}

// stabHoles returns the extra mounting holes for a stabilized key, spaced
// symmetrically around the switch center.
func stabHoles(s footprint.Stabilizer) []stabHole {
	var span units.Nano
	switch s {
	case footprint.Stabilizer2u:
		span = units.NanoFromMM(11.938)
	case footprint.Stabilizer6u:
		span = units.NanoFromMM(47.625)
	case footprint.Stabilizer625u:
		span = units.NanoFromMM(50)
	default:
		return nil
	}
	top, bottom := units.NanoFromMM(-6.985), units.NanoFromMM(8.255)
	return []stabHole{
		{X: (-span).MM(), Y: top.MM(), Size: "3.05"},
		{X: span.MM(), Y: top.MM(), Size: "3.05"},
		{X: (-span).MM(), Y: bottom.MM(), Size: "4"},
		{X: span.MM(), Y: bottom.MM(), Size: "4"},
	}
}

// boardFile renders the complete board layout.
func boardFile(d Design) string {
	p := d.Profile
	var b strings.Builder

	var decls, adds strings.Builder
	for i, name := range d.Nets.Names() {
		fmt.Fprintf(&decls, "  (net %d %s)\n", i+1, netName(name))
		fmt.Fprintf(&adds, "    (add_net %s)\n", netName(name))
	}
	err := boardHeaderTpl.Execute(&b, boardHeaderContext{
		TraceWidth:      p.Board.TraceWidth.MM(),
		ViaSize:         p.Board.ViaSize.MM(),
		ViaDrill:        p.Board.ViaDrill.MM(),
		NetDeclarations: decls.String(),
		AddNets:         adds.String(),
	})
	if err != nil {
		panic(fmt.Sprintf("board header template: %v", err))
	}

	for _, el := range d.Elements {
		diodeNet := matrix.DiodeNet(el.Ordinal)
		colNet := matrix.ColNet(el.Addr.Col)
		rowNet := matrix.RowNet(el.Addr.Row)

		err := switchModuleTpl.Execute(&b, switchModuleContext{
			Footprint:    el.Footprint.Identifier(),
			ID:           componentID(0x10000 + 2*el.Ordinal),
			Ordinal:      el.Ordinal,
			X:            el.Board.X.MM(),
			Y:            el.Board.Y.MM(),
			DiodeNetNum:  d.Nets.Num(diodeNet),
			DiodeNetName: netName(diodeNet),
			ColNetNum:    d.Nets.Num(colNet),
			ColNetName:   netName(colNet),
			StabHoles:    stabHoles(el.Footprint.Stabilizer),
		})
		if err != nil {
			panic(fmt.Sprintf("switch module template: %v", err))
		}

		err = diodeModuleTpl.Execute(&b, diodeModuleContext{
			ID:           componentID(0x10000 + 2*el.Ordinal + 1),
			Ref:          el.Ordinal + 1,
			X:            (el.Board.X + p.Board.DiodeOff.X).MM(),
			Y:            (el.Board.Y + p.Board.DiodeOff.Y).MM(),
			RowNetNum:    d.Nets.Num(rowNet),
			RowNetName:   netName(rowNet),
			DiodeNetNum:  d.Nets.Num(diodeNet),
			DiodeNetName: netName(diodeNet),
		})
		if err != nil {
			panic(fmt.Sprintf("diode module template: %v", err))
		}
	}

	b.WriteString(controlCircuitBoard(d.Nets))

	for _, plan := range d.Plans {
		for _, v := range plan.Vias {
			fmt.Fprintf(&b, "  (via (at %s %s) (size %s) (drill %s) (layers F.Cu B.Cu) (net %d))\n",
				v.At.X.MM(), v.At.Y.MM(), p.Board.ViaSize.MM(), p.Board.ViaDrill.MM(), d.Nets.Num(v.Net))
		}
		for _, s := range plan.Segments {
			fmt.Fprintf(&b, "  (segment (start %s %s) (end %s %s) (width %s) (layer %s) (net %d))\n",
				s.Start.X.MM(), s.Start.Y.MM(), s.End.X.MM(), s.End.Y.MM(),
				p.Board.TraceWidth.MM(), s.Layer, d.Nets.Num(s.Net))
		}
	}

	b.WriteString(boardOutline(d.Elements, p))
	b.WriteString(")\n")
	return b.String()
}

// boardOutline draws the edge-cut rectangle around all key footprints with
// a small margin.
func boardOutline(elements []place.Element, p *profile.Profile) string {
	if len(elements) == 0 {
		return ""
	}
	box := elements[0].BoardRect(p)
	for _, el := range elements[1:] {
		r := el.BoardRect(p)
		if r.MinX < box.MinX {
			box.MinX = r.MinX
		}
		if r.MinY < box.MinY {
			box.MinY = r.MinY
		}
		if r.MaxX > box.MaxX {
			box.MaxX = r.MaxX
		}
		if r.MaxY > box.MaxY {
			box.MaxY = r.MaxY
		}
	}
	margin := units.NanoFromMM(0.5)
	x0, y0 := (box.MinX - margin).MM(), (box.MinY - margin).MM()
	x1, y1 := (box.MaxX + margin).MM(), (box.MaxY + margin).MM()

	var b strings.Builder
	edge := func(sx, sy, ex, ey string) {
		fmt.Fprintf(&b, "  (gr_line (start %s %s) (end %s %s) (layer Edge.Cuts) (width 0.05))\n", sx, sy, ex, ey)
	}
	edge(x0, y0, x1, y0)
	edge(x1, y0, x1, y1)
	edge(x1, y1, x0, y1)
	edge(x0, y1, x0, y0)
	return b.String()
}
