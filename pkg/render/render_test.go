package render

import (
	"strings"
	"testing"

	"github.com/kbforge/kbforge/pkg/footprint"
	"github.com/kbforge/kbforge/pkg/kle"
	"github.com/kbforge/kbforge/pkg/matrix"
	"github.com/kbforge/kbforge/pkg/place"
	"github.com/kbforge/kbforge/pkg/profile"
	"github.com/kbforge/kbforge/pkg/route"
	"github.com/kbforge/kbforge/pkg/units"
)

// buildDesign runs the back half of the pipeline over a hand-built key
// list: resolve footprints, project, route, and collect nets.
func buildDesign(t *testing.T, keys []kle.Key, routed bool) Design {
	t.Helper()
	p := profile.Default()

	rows := map[units.Unit]int{}
	var placed []matrix.PlacedKey
	colInRow := map[int]int{}
	for i, k := range keys {
		row, ok := rows[k.Y]
		if !ok {
			row = len(rows)
			rows[k.Y] = row
		}
		placed = append(placed, matrix.PlacedKey{
			Key:     k,
			Addr:    matrix.Address{Row: row, Col: colInRow[row]},
			Ordinal: i,
		})
		colInRow[row]++
	}

	specs := make([]footprint.Spec, len(placed))
	for i, pk := range placed {
		specs[i], _ = footprint.Resolve(pk.Key.W)
	}
	elements, err := place.ProjectAll(placed, specs, p)
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	var plans []route.Plan
	if routed {
		plans = route.RouteAll(elements, p)
	}
	return Design{
		Name:     "Test Board",
		Author:   "tester",
		Elements: elements,
		Plans:    plans,
		Nets:     matrix.BuildNets(placed),
		Profile:  p,
	}
}

func unitKey(x, y, w int) kle.Key {
	return kle.Key{X: units.Unit(x), Y: units.Unit(y), W: units.Unit(w), H: units.OneU}
}

func TestFilesNames(t *testing.T) {
	d := buildDesign(t, []kle.Key{unitKey(0, 0, 1000), unitKey(1000, 0, 1000)}, true)
	files := Files("testboard", d)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	want := []string{"testboard.pro", "testboard.sch", "testboard.kicad_pcb"}
	if len(names) != len(want) {
		t.Fatalf("got files %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("file %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFilesPaginatesSheets(t *testing.T) {
	// Rows 0..3 with three rows per sheet span two sheets.
	var keys []kle.Key
	for r := 0; r < 4; r++ {
		keys = append(keys, unitKey(0, r*1000, 1000))
	}
	d := buildDesign(t, keys, false)
	files := Files("kb", d)

	var root, extra *File
	for i := range files {
		switch files[i].Name {
		case "kb.sch":
			root = &files[i]
		case "kb-keys2.sch":
			extra = &files[i]
		}
	}
	if root == nil || extra == nil {
		t.Fatalf("missing sheet files, got %v", fileNames(files))
	}
	if !strings.Contains(root.Content, "$Sheet") || !strings.Contains(root.Content, "kb-keys2.sch") {
		t.Error("root sheet does not reference the second sheet")
	}
	if !strings.Contains(root.Content, "Sheet 1 2") {
		t.Error("root sheet frame does not declare sheet 1 of 2")
	}
	if !strings.Contains(extra.Content, "Sheet 2 2") {
		t.Error("second sheet frame does not declare sheet 2 of 2")
	}
	if !strings.Contains(extra.Content, "K3") {
		t.Error("fourth row's switch is missing from the second sheet")
	}
}

func TestSchematicContent(t *testing.T) {
	d := buildDesign(t, []kle.Key{unitKey(0, 0, 1000), unitKey(1000, 0, 2000)}, false)
	sch := findFile(t, Files("kb", d), "kb.sch")

	for _, want := range []string{
		`Title "Test Board"`,
		`Comp "tester"`,
		"L Switch:SW_Push K0",
		"L Switch:SW_Push K1",
		"L Device:D D1",
		"L Device:D D2",
		"Row_0",
		"Col_1",
		"Keyboard_Parts:SW_Cherry_MX_2.00u_PCB",
		"L MCU_Microchip_ATmega:ATmega32U4-AU U1",
	} {
		if !strings.Contains(sch, want) {
			t.Errorf("schematic missing %q", want)
		}
	}
}

func TestBoardNetTable(t *testing.T) {
	d := buildDesign(t, []kle.Key{unitKey(0, 0, 1000)}, false)
	pcb := findFile(t, Files("kb", d), "kb.kicad_pcb")

	for _, want := range []string{
		"(net 0 \"\")",
		"(net 1 GND)",
		"(net 2 VCC)",
		"(net 3 \"Net-(C6-Pad1)\")",
		"(net 14 /Reset)",
		"(net 15 Row_0)",
		"(net 22 Col_0)",
		"(net 40 \"Net-(D1-Pad2)\")",
		"(add_net Row_0)",
		"(add_net \"Net-(D1-Pad2)\")",
	} {
		if !strings.Contains(pcb, want) {
			t.Errorf("board net table missing %q", want)
		}
	}
}

func TestBoardModules(t *testing.T) {
	d := buildDesign(t, []kle.Key{unitKey(0, 0, 1000), unitKey(1000, 0, 2000)}, false)
	pcb := findFile(t, Files("kb", d), "kb.kicad_pcb")

	if !strings.Contains(pcb, "(module Keyboard_Parts:SW_Cherry_MX_1.00u_PCB") {
		t.Error("1u switch module missing")
	}
	if !strings.Contains(pcb, "(module Keyboard_Parts:SW_Cherry_MX_2.00u_PCB") {
		t.Error("2u switch module missing")
	}
	if !strings.Contains(pcb, "(module Diode_THT:D_DO-35_SOD27_P7.62mm_Horizontal") {
		t.Error("diode module missing")
	}
	// First key center 0.5u: -100 + 0.5*19.05 = -90.475.
	if !strings.Contains(pcb, "(at -90.475 27.305)") {
		t.Error("first switch is not at its projected position")
	}
	// 2u key gets stabilizer holes, spaced 11.938 mm off center.
	if !strings.Contains(pcb, "(at -11.938 -6.985)") {
		t.Error("2u stabilizer holes missing")
	}
	if !strings.Contains(pcb, "(module Package_QFP:TQFP-44_10x10mm_P0.8mm") {
		t.Error("controller module missing")
	}
	if !strings.Contains(pcb, "(gr_line") {
		t.Error("board outline missing")
	}
}

func TestBoardRouting(t *testing.T) {
	keys := []kle.Key{unitKey(0, 0, 1000)}

	routed := findFile(t, Files("kb", buildDesign(t, keys, true)), "kb.kicad_pcb")
	if !strings.Contains(routed, "(segment (start ") {
		t.Error("routed board has no trace segments")
	}
	if !strings.Contains(routed, "(via (at ") {
		t.Error("routed board has no vias")
	}
	if !strings.Contains(routed, "(layer B.Cu)") {
		t.Error("routed board has no back-copper segment")
	}

	bare := findFile(t, Files("kb", buildDesign(t, keys, false)), "kb.kicad_pcb")
	if strings.Contains(bare, "(segment (start ") || strings.Contains(bare, "(via (at ") {
		t.Error("unrouted board still contains traces or vias")
	}
}

func TestRenderDeterministic(t *testing.T) {
	keys := []kle.Key{unitKey(0, 0, 1000), unitKey(1000, 0, 1000), unitKey(0, 1000, 6250)}
	first := Files("kb", buildDesign(t, keys, true))
	second := Files("kb", buildDesign(t, keys, true))

	if len(first) != len(second) {
		t.Fatalf("file counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name || first[i].Content != second[i].Content {
			t.Errorf("rerun produced different output for %s", first[i].Name)
		}
	}
}

func TestNetNameQuoting(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"GND", "GND"},
		{"Row_0", "Row_0"},
		{"/Reset", "/Reset"},
		{"Net-(D1-Pad2)", `"Net-(D1-Pad2)"`},
	}
	for _, tc := range tests {
		if got := netName(tc.in); got != tc.want {
			t.Errorf("netName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func findFile(t *testing.T, files []File, name string) string {
	t.Helper()
	for _, f := range files {
		if f.Name == name {
			return f.Content
		}
	}
	t.Fatalf("file %q not rendered, got %v", name, fileNames(files))
	return ""
}

func fileNames(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}
