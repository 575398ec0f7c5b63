package matrix

import (
	"fmt"

	"github.com/kbforge/kbforge/pkg/profile"
)

// controlNets is the fixed net preamble wired by the controller circuit
// templates: power, decoupling capacitors, the USB connector, and reset.
// These are registered before any matrix net so their numbers are stable
// regardless of the layout.
var controlNets = []string{
	"GND",
	"VCC",
	"Net-(C6-Pad1)",
	"Net-(C7-Pad1)",
	"Net-(C8-Pad1)",
	"Net-(J1-Pad4)",
	"Net-(J1-Pad3)",
	"Net-(J1-Pad2)",
	"Net-(R1-Pad1)",
	"Net-(R2-Pad1)",
	"Net-(R3-Pad1)",
	"Net-(R4-Pad2)",
	"Net-(U1-Pad42)",
	"/Reset",
}

// RowNet returns the net name for a matrix row, zero-based.
func RowNet(row int) string { return fmt.Sprintf("Row_%d", row) }

// ColNet returns the net name for a matrix column, zero-based.
func ColNet(col int) string { return fmt.Sprintf("Col_%d", col) }

// DiodeNet returns the per-key net between the switch and its diode. The
// number follows the diode's reference designator, which is one-based.
func DiodeNet(ordinal int) string { return fmt.Sprintf("Net-(D%d-Pad2)", ordinal+1) }

// Nets is the ordered collection of electrical nets in a design. Net
// numbers are one-based positions in registration order; nets are never
// renamed or merged after creation.
type Nets struct {
	names []string
	index map[string]int
}

// NewNets creates an empty net collection.
func NewNets() *Nets {
	return &Nets{index: map[string]int{}}
}

// BuildNets creates the full net collection for a placed layout: the fixed
// control preamble, every row and column net the controller is wired for
// (all of them, even if the layout uses fewer), and one diode net per key.
func BuildNets(placed []PlacedKey) *Nets {
	n := NewNets()
	for _, name := range controlNets {
		n.Register(name)
	}
	// The control circuit template references every row and column pin of
	// the controller, so the full bound is always declared.
	for r := 0; r < profile.MaxRows; r++ {
		n.Register(RowNet(r))
	}
	for c := 0; c < profile.MaxCols; c++ {
		n.Register(ColNet(c))
	}
	for _, p := range placed {
		n.Register(DiodeNet(p.Ordinal))
	}
	return n
}

// Register adds a net and returns its one-based number. Registering an
// existing name is a no-op that returns the original number.
func (n *Nets) Register(name string) int {
	if num, ok := n.index[name]; ok {
		return num
	}
	n.names = append(n.names, name)
	num := len(n.names)
	n.index[name] = num
	return num
}

// Num returns the one-based number of a net, or zero if it is not
// registered.
func (n *Nets) Num(name string) int {
	return n.index[name]
}

// Name returns the net name for a one-based number, or the empty string if
// out of range.
func (n *Nets) Name(num int) string {
	if num < 1 || num > len(n.names) {
		return ""
	}
	return n.names[num-1]
}

// Count returns the number of registered nets.
func (n *Nets) Count() int { return len(n.names) }

// Names returns the net names in registration order.
func (n *Nets) Names() []string {
	out := make([]string, len(n.names))
	copy(out, n.names)
	return out
}
