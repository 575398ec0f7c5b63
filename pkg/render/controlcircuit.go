package render

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/kbforge/kbforge/pkg/matrix"
	"github.com/kbforge/kbforge/pkg/profile"
	"github.com/kbforge/kbforge/pkg/units"
)

// The controller block sits above the key field at fixed board positions.
// Only the pad-to-net wiring varies with the design; geometry is constant.

var qfpModuleTpl = template.Must(template.New("qfpmodule").Parse(`  (module Package_QFP:TQFP-44_10x10mm_P0.8mm (layer F.Cu) (tedit 0) (tstamp {{.ID}})
    (at {{.X}} {{.Y}})
    (fp_text reference U1 (at 0 -6.5) (layer F.SilkS)
      (effects (font (size 1 1) (thickness 0.15)))
    )
    (fp_text value ATmega32U4-AU (at 0 6.5) (layer F.Fab)
      (effects (font (size 1 1) (thickness 0.15)))
    )
{{- range .Pads}}
    (pad {{.Number}} smd rect (at {{.X}} {{.Y}} {{.Rot}}) (size 1.5 0.55) (layers F.Cu F.Paste F.Mask){{if .NetNum}} (net {{.NetNum}} {{.NetName}}){{end}})
{{- end}}
  )
`))

var twoPadModuleTpl = template.Must(template.New("twopadmodule").Parse(`  (module {{.Footprint}} (layer F.Cu) (tedit 0) (tstamp {{.ID}})
    (at {{.X}} {{.Y}})
    (fp_text reference {{.Ref}} (at 0 -1.8) (layer F.SilkS)
      (effects (font (size 1 1) (thickness 0.15)))
    )
    (fp_text value {{.Value}} (at 0 1.8) (layer F.Fab)
      (effects (font (size 1 1) (thickness 0.15)))
    )
{{- range .Pads}}
    (pad {{.Number}} smd rect (at {{.X}} {{.Y}}) (size 1 1.2) (layers F.Cu F.Paste F.Mask) (net {{.NetNum}} {{.NetName}}))
{{- end}}
  )
`))

type boardPad struct {
	Number  string
	X, Y    string
	Rot     int
	NetNum  int
	NetName string
}

type qfpContext struct {
	ID   string
	X, Y string
	Pads []boardPad
}

type twoPadContext struct {
	Footprint string
	ID        string
	Ref       string
	Value     string
	X, Y      string
	Pads      []boardPad
}

// qfpPadPosition places pad n (one-based, 1..44) around a 44-pin quad
// package: 11 pads per side, counter-clockwise from the top of the left
// edge, 0.8 mm pitch centered on each side.
func qfpPadPosition(n int) (x, y string, rot int) {
	side := (n - 1) / 11
	slot := (n - 1) % 11
	along := units.NanoFromMM(-4.0) + units.Nano(slot)*units.NanoFromMM(0.8)
	edge := units.NanoFromMM(5.7)
	switch side {
	case 0:
		return (-edge).MM(), along.MM(), 0
	case 1:
		return along.MM(), edge.MM(), 90
	case 2:
		return edge.MM(), (-along).MM(), 180
	default:
		return (-along).MM(), (-edge).MM(), 270
	}
}

// controllerPinNets maps controller pad numbers to net names. Rows sit on
// the first pins, columns follow, then power and the support nets. Pads
// without an entry are left unconnected.
func controllerPinNets() map[int]string {
	nets := map[int]string{}
	pin := 1
	for r := 0; r < profile.MaxRows; r++ {
		nets[pin] = matrix.RowNet(r)
		pin++
	}
	for c := 0; c < profile.MaxCols; c++ {
		nets[pin] = matrix.ColNet(c)
		pin++
	}
	nets[26] = "VCC"
	nets[27] = "GND"
	nets[28] = "/Reset"
	nets[29] = "Net-(C7-Pad1)"
	nets[30] = "Net-(C8-Pad1)"
	nets[31] = "Net-(R1-Pad1)"
	nets[32] = "Net-(R2-Pad1)"
	nets[42] = "Net-(U1-Pad42)"
	return nets
}

// controlCircuitBoard renders the controller footprint and its support
// parts, wired into the fixed preamble nets.
func controlCircuitBoard(nets *matrix.Nets) string {
	var b strings.Builder

	pinNets := controllerPinNets()
	pads := make([]boardPad, 0, 44)
	for n := 1; n <= 44; n++ {
		x, y, rot := qfpPadPosition(n)
		pad := boardPad{Number: fmt.Sprint(n), X: x, Y: y, Rot: rot}
		if name, ok := pinNets[n]; ok {
			pad.NetNum = nets.Num(name)
			pad.NetName = netName(name)
		}
		pads = append(pads, pad)
	}
	err := qfpModuleTpl.Execute(&b, qfpContext{
		ID:   componentID(0x20000),
		X:    units.NanoFromMM(30).MM(),
		Y:    units.NanoFromMM(-30).MM(),
		Pads: pads,
	})
	if err != nil {
		panic(fmt.Sprintf("controller module template: %v", err))
	}

	passives := []struct {
		footprint, ref, value string
		x, y                  float64
		net1, net2            string
	}{
		{"Connector_USB:USB_Micro-B_Molex-105017-0001", "J1", "USB_B_Micro", 50, -42, "VCC", "GND"},
		{"Capacitor_SMD:C_0805_2012Metric", "C6", "1u", 40, -22, "Net-(C6-Pad1)", "GND"},
		{"Capacitor_SMD:C_0805_2012Metric", "C7", "100n", 44, -22, "Net-(C7-Pad1)", "GND"},
		{"Capacitor_SMD:C_0805_2012Metric", "C8", "100n", 48, -22, "Net-(C8-Pad1)", "GND"},
		{"Resistor_SMD:R_0805_2012Metric", "R1", "22", 52, -22, "Net-(R1-Pad1)", "Net-(J1-Pad3)"},
		{"Resistor_SMD:R_0805_2012Metric", "R2", "22", 56, -22, "Net-(R2-Pad1)", "Net-(J1-Pad2)"},
		{"Resistor_SMD:R_0805_2012Metric", "R3", "10k", 60, -22, "Net-(R3-Pad1)", "VCC"},
		{"Resistor_SMD:R_0805_2012Metric", "R4", "10k", 64, -22, "/Reset", "Net-(R4-Pad2)"},
		{"Button_Switch_SMD:SW_SPST_TL3342", "SW1", "Reset", 68, -22, "/Reset", "GND"},
	}
	for i, part := range passives {
		ctx := twoPadContext{
			Footprint: part.footprint,
			ID:        componentID(0x20001 + i),
			Ref:       part.ref,
			Value:     part.value,
			X:         units.NanoFromMM(part.x).MM(),
			Y:         units.NanoFromMM(part.y).MM(),
			Pads: []boardPad{
				{Number: "1", X: units.NanoFromMM(-0.95).MM(), Y: "0",
					NetNum: nets.Num(part.net1), NetName: netName(part.net1)},
				{Number: "2", X: units.NanoFromMM(0.95).MM(), Y: "0",
					NetNum: nets.Num(part.net2), NetName: netName(part.net2)},
			},
		}
		if err := twoPadModuleTpl.Execute(&b, ctx); err != nil {
			panic(fmt.Sprintf("support part template: %v", err))
		}
	}
	return b.String()
}
