package render

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/kbforge/kbforge/pkg/place"
	"github.com/kbforge/kbforge/pkg/profile"
	"github.com/kbforge/kbforge/pkg/units"
)

// sheetTpl is the frame of one schematic sheet. The legacy format wants a
// sheet index and total, a title block, and the flat component list.
var sheetTpl = template.Must(template.New("sheet").Parse(`EESchema Schematic File Version 4
EELAYER 30 0
EELAYER END
$Descr A4 {{.Width}} {{.Height}}
encoding utf-8
Sheet {{.Number}} {{.Total}}
Title "{{.Title}}"
Date ""
Rev ""
Comp "{{.Author}}"
Comment1 "{{.Comment}}"
Comment2 ""
Comment3 ""
Comment4 ""
$EndDescr
{{.Body}}$EndSCHEMATC
`))

// keyUnitTpl is one switch with its diode: the switch symbol, the diode
// symbol below its pin 1, connecting wires, and the row and column global
// labels that tie the unit into the matrix.
var keyUnitTpl = template.Must(template.New("keyunit").Parse(`$Comp
L Switch:SW_Push K{{.Ordinal}}
U 1 1 {{.SwitchID}}
P {{.X}} {{.Y}}
F 0 "K{{.Ordinal}}" H {{.X}} {{.RefY}} 50  0000 C CNN
F 1 "SW_Push" H {{.X}} {{.ValY}} 50  0001 C CNN
F 2 "{{.Footprint}}" H {{.X}} {{.FabY}} 50  0001 C CNN
F 3 "" H {{.X}} {{.FabY}} 50  0001 C CNN
	1    {{.X}} {{.Y}}
	1    0    0    -1
$EndComp
$Comp
L Device:D D{{.DiodeRef}}
U 1 1 {{.DiodeID}}
P {{.DiodeX}} {{.DiodeY}}
F 0 "D{{.DiodeRef}}" V {{.DiodeRefX}} {{.DiodeLabelY}} 50  0000 L CNN
F 1 "D" V {{.DiodeValX}} {{.DiodeLabelY}} 50  0001 L CNN
F 2 "Diode_THT:D_DO-35_SOD27_P7.62mm_Horizontal" H {{.DiodeX}} {{.DiodeY}} 50  0001 C CNN
F 3 "" H {{.DiodeX}} {{.DiodeY}} 50  0001 C CNN
	1    {{.DiodeX}} {{.DiodeY}}
	0    1    1    0
$EndComp
Wire Wire Line
	{{.DiodeX}} {{.Y}} {{.PinLX}} {{.Y}}
Wire Wire Line
	{{.PinRX}} {{.Y}} {{.ColX}} {{.Y}}
Wire Wire Line
	{{.DiodeX}} {{.DiodeBotY}} {{.DiodeX}} {{.RowY}}
Text GLabel {{.ColX}} {{.Y}} 2    50   Input ~ 0
Col_{{.Col}}
Text GLabel {{.DiodeX}} {{.RowY}} 3    50   Input ~ 0
Row_{{.Row}}
`))

// subSheetTpl is the hierarchical reference placed on the root sheet for
// each additional key sheet.
var subSheetTpl = template.Must(template.New("subsheet").Parse(`$Sheet
S {{.X}} {{.Y}} 1200 600
U {{.ID}}
F0 "{{.Label}}" 50
F1 "{{.File}}" 50
$EndSheet
`))

type sheetContext struct {
	Width   units.Mil
	Height  units.Mil
	Number  int
	Total   int
	Title   string
	Author  string
	Comment string
	Body    string
}

type keyUnitContext struct {
	Ordinal   int
	DiodeRef  int
	SwitchID  string
	DiodeID   string
	Footprint string
	Row, Col  int

	X, Y       units.Mil
	RefY, ValY units.Mil
	FabY       units.Mil
	PinLX      units.Mil
	PinRX      units.Mil
	ColX       units.Mil

	DiodeX, DiodeY units.Mil
	DiodeRefX      units.Mil
	DiodeValX      units.Mil
	DiodeLabelY    units.Mil
	DiodeBotY      units.Mil
	RowY           units.Mil
}

// keyUnit lays out one switch-plus-diode unit around the projected
// schematic position. The switch pins sit 200 mils either side of the
// body; the diode hangs off pin 1 and ends in the row label.
func keyUnit(el place.Element) keyUnitContext {
	x, y := el.Schematic.X, el.Schematic.Y
	dx, dy := x-300, y+150
	return keyUnitContext{
		Ordinal:   el.Ordinal,
		DiodeRef:  el.Ordinal + 1,
		SwitchID:  componentID(2 * el.Ordinal),
		DiodeID:   componentID(2*el.Ordinal + 1),
		Footprint: el.Footprint.Identifier(),
		Row:       el.Addr.Row,
		Col:       el.Addr.Col,

		X: x, Y: y,
		RefY:  y - 200,
		ValY:  y - 159,
		FabY:  y + 200,
		PinLX: x - 200,
		PinRX: x + 200,
		ColX:  x + 300,

		DiodeX: dx, DiodeY: dy,
		DiodeRefX:   dx - 45,
		DiodeValX:   dx + 45,
		DiodeLabelY: dy - 80,
		DiodeBotY:   dy + 150,
		RowY:        dy + 200,
	}
}

// schematicFiles renders the paginated schematic. The root sheet carries
// the first band of key rows plus the controller circuit; each further
// band becomes its own sheet file, referenced from the root.
func schematicFiles(base string, d Design) []File {
	p := d.Profile
	sheets := place.SheetCount(d.Elements)
	if sheets < 1 {
		sheets = 1
	}

	bodies := make([]strings.Builder, sheets)
	for _, el := range d.Elements {
		if err := keyUnitTpl.Execute(&bodies[el.Schematic.Sheet], keyUnit(el)); err != nil {
			panic(fmt.Sprintf("key unit template: %v", err))
		}
	}

	// Hierarchical references on the root sheet, one per extra sheet,
	// tucked under the sheet frame's top edge.
	for s := 1; s < sheets; s++ {
		ctx := struct {
			X, Y  units.Mil
			ID    string
			Label string
			File  string
		}{
			X:     p.Schematic.SheetW - 1700,
			Y:     500 + units.Mil(s-1)*800,
			ID:    componentID(0xA000 + s),
			Label: fmt.Sprintf("keys%d", s+1),
			File:  subSheetName(base, s),
		}
		if err := subSheetTpl.Execute(&bodies[0], ctx); err != nil {
			panic(fmt.Sprintf("sheet reference template: %v", err))
		}
	}

	bodies[0].WriteString(controlCircuitSchematic(p))

	files := make([]File, 0, sheets)
	for s := 0; s < sheets; s++ {
		name := base + ".sch"
		if s > 0 {
			name = subSheetName(base, s)
		}
		var out strings.Builder
		err := sheetTpl.Execute(&out, sheetContext{
			Width:   p.Schematic.SheetW,
			Height:  p.Schematic.SheetH,
			Number:  s + 1,
			Total:   sheets,
			Title:   d.Name,
			Author:  d.Author,
			Comment: generatedComment,
			Body:    bodies[s].String(),
		})
		if err != nil {
			panic(fmt.Sprintf("sheet template: %v", err))
		}
		files = append(files, File{Name: name, Content: out.String()})
	}
	return files
}

func subSheetName(base string, sheet int) string {
	return fmt.Sprintf("%s-keys%d.sch", base, sheet+1)
}

// generatedComment is placed in every title block. It carries no
// timestamp so rerenders stay byte-identical.
const generatedComment = "Generated by kbforge"

// controlCircuitSchematic emits the controller section of the root sheet:
// the controller symbol, its support parts, and a global label for every
// row and column net so the matrix always has a counterpart, whether or
// not the layout uses all of them.
func controlCircuitSchematic(p *profile.Profile) string {
	var b strings.Builder

	// Fixed support circuitry in the lower-left corner of the frame.
	baseY := p.Schematic.SheetH - 2600
	fmt.Fprintf(&b, `$Comp
L MCU_Microchip_ATmega:ATmega32U4-AU U1
U 1 1 %s
P 1700 %d
F 0 "U1" H 1700 %d 50  0000 C CNN
F 1 "ATmega32U4-AU" H 1700 %d 50  0001 C CNN
F 2 "Package_QFP:TQFP-44_10x10mm_P0.8mm" H 1700 %d 50  0001 C CIN
F 3 "" H 1700 %d 50  0001 C CNN
	1    1700 %d
	1    0    0    -1
$EndComp
`, componentID(0xC000), baseY, baseY-1300, baseY-1241, baseY, baseY, baseY)

	fixed := []struct {
		lib, ref, value string
		dx, dy          units.Mil
	}{
		{"Connector:USB_B_Micro", "J1", "USB_B_Micro", 3300, 400},
		{"Device:C", "C6", "1u", 3300, 1100},
		{"Device:C", "C7", "100n", 3700, 1100},
		{"Device:C", "C8", "100n", 4100, 1100},
		{"Device:R", "R1", "22", 4500, 400},
		{"Device:R", "R2", "22", 4900, 400},
		{"Device:R", "R3", "10k", 4500, 1100},
		{"Device:R", "R4", "10k", 4900, 1100},
		{"Switch:SW_Push", "SW1", "Reset", 5300, 1100},
	}
	for i, f := range fixed {
		x := f.dx
		y := baseY - 1800 + f.dy
		fmt.Fprintf(&b, `$Comp
L %s %s
U 1 1 %s
P %d %d
F 0 "%s" H %d %d 50  0000 C CNN
F 1 "%s" H %d %d 50  0001 C CNN
F 2 "" H %d %d 50  0001 C CNN
F 3 "" H %d %d 50  0001 C CNN
	1    %d %d
	1    0    0    -1
$EndComp
`, f.lib, f.ref, componentID(0xC100+i), x, y,
			f.ref, x, y-150,
			f.value, x, y+150,
			x, y, x, y,
			x, y)
	}

	// One label per controller matrix pin, stacked beside the symbol.
	for r := 0; r < profile.MaxRows; r++ {
		y := baseY - 1100 + units.Mil(r)*100
		fmt.Fprintf(&b, "Text GLabel 2300 %d 2    50   Output ~ 0\nRow_%d\n", y, r)
	}
	for c := 0; c < profile.MaxCols; c++ {
		y := baseY - 300 + units.Mil(c)*100
		fmt.Fprintf(&b, "Text GLabel 2300 %d 2    50   Input ~ 0\nCol_%d\n", y, c)
	}
	return b.String()
}
