package matrix

import (
	"testing"

	"github.com/kbforge/kbforge/pkg/profile"
)

func TestNetNames(t *testing.T) {
	if got := RowNet(0); got != "Row_0" {
		t.Errorf("RowNet(0) = %q, want Row_0", got)
	}
	if got := ColNet(17); got != "Col_17" {
		t.Errorf("ColNet(17) = %q, want Col_17", got)
	}
	if got := DiodeNet(0); got != "Net-(D1-Pad2)" {
		t.Errorf("DiodeNet(0) = %q, want Net-(D1-Pad2)", got)
	}
}

func TestRegisterIdempotent(t *testing.T) {
	n := NewNets()
	first := n.Register("GND")
	second := n.Register("GND")
	if first != second {
		t.Errorf("Register twice: %d then %d, want identical", first, second)
	}
	if n.Count() != 1 {
		t.Errorf("Count = %d, want 1", n.Count())
	}
}

func TestNetNumbersAreOneBased(t *testing.T) {
	n := NewNets()
	if got := n.Register("GND"); got != 1 {
		t.Errorf("first Register = %d, want 1", got)
	}
	if got := n.Register("VCC"); got != 2 {
		t.Errorf("second Register = %d, want 2", got)
	}
	if got := n.Num("VCC"); got != 2 {
		t.Errorf("Num(VCC) = %d, want 2", got)
	}
	if got := n.Num("missing"); got != 0 {
		t.Errorf("Num(missing) = %d, want 0", got)
	}
	if got := n.Name(1); got != "GND" {
		t.Errorf("Name(1) = %q, want GND", got)
	}
	if got := n.Name(0); got != "" {
		t.Errorf("Name(0) = %q, want empty", got)
	}
}

func TestBuildNets(t *testing.T) {
	placed, err := Assign(gridLayout(2, 1), GroupingSeq)
	if err != nil {
		t.Fatal(err)
	}
	n := BuildNets(placed)

	// The full row and column bound is always declared: the controller
	// circuit references every one of its matrix pins.
	for r := 0; r < profile.MaxRows; r++ {
		if n.Num(RowNet(r)) == 0 {
			t.Errorf("row net %s not registered", RowNet(r))
		}
	}
	for c := 0; c < profile.MaxCols; c++ {
		if n.Num(ColNet(c)) == 0 {
			t.Errorf("column net %s not registered", ColNet(c))
		}
	}
	for i := range placed {
		if n.Num(DiodeNet(i)) == 0 {
			t.Errorf("diode net %s not registered", DiodeNet(i))
		}
	}
	if n.Num("GND") != 1 {
		t.Errorf("GND net number = %d, want 1", n.Num("GND"))
	}
	wantCount := len(controlNets) + profile.MaxRows + profile.MaxCols + len(placed)
	if n.Count() != wantCount {
		t.Errorf("Count = %d, want %d", n.Count(), wantCount)
	}
}
