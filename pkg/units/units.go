// Package units provides the fixed-point measurement types used throughout
// the layout compiler.
//
// All geometry is integer arithmetic. Key positions and sizes are stored in
// milliunits (1/1000 of a key unit), board coordinates in nanometers, and
// schematic coordinates in mils. These grids are chosen so that every
// conversion in the pipeline is exact: the standard 19.05 mm key pitch is
// 19050 nm per milliunit, and key centers (half-unit offsets of half-unit
// sizes) stay on the grid for every keycap size. Identical input therefore always produces identical
// coordinates, with no floating-point drift across the key range.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is a key-unit measurement in milliunits. One standard key pitch is
// 1000 milliunits, so a 6.25u spacebar has width 6250.
type Unit int64

// Common key-unit values.
const (
	ZeroU Unit = 0
	OneU  Unit = 1000
	TwoU  Unit = 2000
)

// unitEpsilon is the tolerance when snapping a JSON number to the milliunit
// grid. KLE layouts use steps of 0.05 or coarser, well inside this.
const unitEpsilon = 1e-6

// UnitFromFloat converts a raw JSON number in key units to a Unit.
// It returns an error if the value does not land on the milliunit grid,
// which indicates a malformed layout rather than a precision problem.
func UnitFromFloat(v float64) (Unit, error) {
	scaled := v * 1000
	rounded := math.Round(scaled)
	if math.Abs(scaled-rounded) > unitEpsilon*1000 {
		return 0, fmt.Errorf("value %v is not on the 0.001 key-unit grid", v)
	}
	return Unit(rounded), nil
}

// Float returns the key-unit value as a float64, for display only.
func (u Unit) Float() float64 { return float64(u) / 1000 }

// String formats the unit as a key-unit value, e.g. "6.25" or "1".
func (u Unit) String() string {
	s := strconv.FormatFloat(u.Float(), 'f', -1, 64)
	return s
}

// Nano is a board-plane coordinate or distance in nanometers.
type Nano int64

// NanoPerMM is the number of nanometers in a millimeter.
const NanoPerMM Nano = 1_000_000

// NanoFromMM converts a millimeter value to nanometers, snapping to the
// nanometer grid. Profile files specify distances in mm.
func NanoFromMM(mm float64) Nano {
	return Nano(math.Round(mm * float64(NanoPerMM)))
}

// MM formats the value in millimeters with trailing zeros trimmed, matching
// the way board files express coordinates (e.g. "-52.375", "17.78", "19").
func (n Nano) MM() string {
	neg := n < 0
	if neg {
		n = -n
	}
	whole := n / NanoPerMM
	frac := n % NanoPerMM
	s := strconv.FormatInt(int64(whole), 10)
	if frac != 0 {
		f := fmt.Sprintf("%06d", frac)
		f = strings.TrimRight(f, "0")
		s += "." + f
	}
	if neg {
		s = "-" + s
	}
	return s
}

// Mil is a schematic-sheet coordinate in mils (thousandths of an inch),
// the native grid of the legacy schematic format.
type Mil int64

// String formats the mil value as the schematic format expects: a plain
// integer.
func (m Mil) String() string { return strconv.FormatInt(int64(m), 10) }
