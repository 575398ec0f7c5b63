// Package footprint resolves the mechanical footprint for each key.
//
// A key's width decides two things: which switch footprint width class is
// placed (keycap sizes come in a fixed set, and the library only carries
// footprints for that set) and whether the key needs a stabilizer, the
// extra mounting hardware that keeps wide keycaps from wobbling.
//
// Both decisions are driven by ordered threshold tables evaluated most
// specific first, so a 6.25u spacebar matches the 6.25u stabilizer before
// the generic wide-key entries get a chance. Resolution never fails: a
// width with no exact stabilizer entry degrades to "no stabilizer" and is
// surfaced as a warning for the caller to display.
package footprint

import (
	"fmt"

	"github.com/kbforge/kbforge/pkg/units"
)

// Stabilizer identifies one of the fixed stabilizer mounting patterns.
type Stabilizer int

const (
	// StabilizerNone means the switch mount alone is sufficient.
	StabilizerNone Stabilizer = iota
	// Stabilizer2u fits 2u through 2.75u keys.
	Stabilizer2u
	// Stabilizer6u fits 6u spacebars.
	Stabilizer6u
	// Stabilizer625u fits 6.25u spacebars.
	Stabilizer625u
)

// String returns the variant name used in footprint identifiers.
func (s Stabilizer) String() string {
	switch s {
	case StabilizerNone:
		return "none"
	case Stabilizer2u:
		return "2u"
	case Stabilizer6u:
		return "6u"
	case Stabilizer625u:
		return "6.25u"
	}
	return fmt.Sprintf("Stabilizer(%d)", int(s))
}

// Spec is the resolved mechanical identity of a key.
type Spec struct {
	// WidthClass is the footprint width family, e.g. "1.00" or "6.25".
	// It names the switch footprint placed on the board.
	WidthClass string
	// Stabilizer is the extra mounting pattern, if any.
	Stabilizer Stabilizer
}

// Identifier returns the footprint name placed in the board file.
func (s Spec) Identifier() string {
	return "Keyboard_Parts:SW_Cherry_MX_" + s.WidthClass + "u_PCB"
}

// Warning reports a degraded-but-usable footprint choice.
type Warning struct {
	Width  units.Unit
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("key width %su: %s", w.Width, w.Reason)
}

// widthClasses maps key widths to the available footprint width families,
// in ascending order of the exclusive upper bound. Widths beyond the table
// use the widest footprint available.
var widthClasses = []struct {
	below units.Unit // exclusive upper bound in milliunits
	class string
}{
	{below: 1250, class: "1.00"},
	{below: 1500, class: "1.25"},
	{below: 1750, class: "1.50"},
	{below: 2000, class: "1.75"},
	{below: 2250, class: "2.00"},
	{below: 2750, class: "2.25"},
	{below: 6250, class: "2.75"},
}

// widestClass is used for everything the table does not cover.
const widestClass = "6.25"

// stabilizers maps key widths to stabilizer variants, most specific first.
// Order matters: 6.25u must match before 6u, and both before the generic
// 2u range.
var stabilizers = []struct {
	min, max units.Unit // inclusive range in milliunits
	variant  Stabilizer
}{
	{min: 6250, max: 6250, variant: Stabilizer625u},
	{min: 6000, max: 6000, variant: Stabilizer6u},
	{min: 2000, max: 2750, variant: Stabilizer2u},
}

// Resolve determines the footprint for a key of the given width. It never
// fails; a wide key with no exact stabilizer variant degrades to no
// stabilizer and returns a non-nil warning.
func Resolve(width units.Unit) (Spec, *Warning) {
	spec := Spec{WidthClass: widestClass}
	for _, wc := range widthClasses {
		if width < wc.below {
			spec.WidthClass = wc.class
			break
		}
	}

	for _, st := range stabilizers {
		if width >= st.min && width <= st.max {
			spec.Stabilizer = st.variant
			return spec, nil
		}
	}

	if width >= units.TwoU {
		return spec, &Warning{
			Width:  width,
			Reason: "no stabilizer variant for this width; the key is placed without one",
		}
	}
	return spec, nil
}
