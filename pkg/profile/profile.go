// Package profile holds the geometric constants of the generator.
//
// Every distance the compiler places on the board or the schematic comes
// from a Profile: key pitch, placement origins, diode and via offsets,
// trace widths, and schematic sheet pagination. The built-in defaults
// reproduce the reference switch and diode footprints; a TOML file can
// overlay any subset of them for boards built around different parts.
//
// Board distances are given in millimeters in the file and converted to
// the nanometer grid once at load time. Schematic distances are in mils.
package profile

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/kbforge/kbforge/pkg/errors"
	"github.com/kbforge/kbforge/pkg/units"
)

// Matrix bounds. These are part of the output contract with the controller
// circuit (which wires exactly this many row and column nets) and are not
// profile-tunable.
const (
	MaxRows = 7
	MaxCols = 18
)

// Offset is a fixed displacement on the board plane.
type Offset struct {
	X, Y units.Nano
}

// Board holds the board-plane constants, all on the nanometer grid.
type Board struct {
	Pitch      units.Nano // key pitch, center to center
	OriginX    units.Nano // board position of key-unit origin
	OriginY    units.Nano
	DiodeOff   Offset    // diode placement relative to the switch center
	ColVias    [2]Offset // column stub via positions relative to the switch center
	RowVias    [2]Offset // row stub via positions
	DiodeTrace [2]Offset // diode-to-switch trace endpoints
	TraceWidth units.Nano
	ViaSize    units.Nano
	ViaDrill   units.Nano
}

// Schematic holds the schematic-sheet constants in mils.
type Schematic struct {
	PitchX       units.Mil // horizontal spacing per key unit
	PitchY       units.Mil // vertical spacing per key unit
	OriginX      units.Mil
	OriginY      units.Mil
	RowsPerSheet int       // matrix rows per schematic sheet
	SheetW       units.Mil // sheet frame size (A4 landscape)
	SheetH       units.Mil
}

// Profile is a fully resolved set of generation constants.
type Profile struct {
	Board     Board
	Schematic Schematic
}

// rawProfile mirrors the TOML file layout. Distances are floats in mm for
// the board section and integers in mils for the schematic section.
type rawProfile struct {
	Board struct {
		Pitch        float64      `toml:"pitch"`
		Origin       [2]float64   `toml:"origin"`
		DiodeOffset  [2]float64   `toml:"diode_offset"`
		ColumnVias   [2][2]float64 `toml:"column_via_offsets"`
		RowVias      [2][2]float64 `toml:"row_via_offsets"`
		DiodeTrace   [2][2]float64 `toml:"diode_trace"`
		TraceWidth   float64      `toml:"trace_width"`
		ViaSize      float64      `toml:"via_size"`
		ViaDrill     float64      `toml:"via_drill"`
	} `toml:"board"`
	Schematic struct {
		Pitch        [2]int64 `toml:"pitch"`
		Origin       [2]int64 `toml:"origin"`
		RowsPerSheet int      `toml:"rows_per_sheet"`
		SheetSize    [2]int64 `toml:"sheet_size"`
	} `toml:"schematic"`
}

// defaultRaw returns the built-in constants.
func defaultRaw() rawProfile {
	var r rawProfile
	r.Board.Pitch = 19.05
	r.Board.Origin = [2]float64{-100, 17.78}
	r.Board.DiodeOffset = [2]float64{-6.35, 8.89}
	r.Board.ColumnVias = [2][2]float64{{0, -2.03}, {0, 12.24}}
	r.Board.RowVias = [2][2]float64{{-9.68, 9.83}, {4.6, 9.83}}
	r.Board.DiodeTrace = [2][2]float64{{-6.38, 2.54}, {-6.38, 7.77}}
	r.Board.TraceWidth = 0.25
	r.Board.ViaSize = 0.8
	r.Board.ViaDrill = 0.4
	r.Schematic.Pitch = [2]int64{800, 500}
	r.Schematic.Origin = [2]int64{600, 800}
	r.Schematic.RowsPerSheet = 3
	r.Schematic.SheetSize = [2]int64{11693, 8268}
	return r
}

// Default returns the built-in profile.
func Default() *Profile {
	p, err := defaultRaw().resolve()
	if err != nil {
		// The built-in constants always validate.
		panic(err)
	}
	return p
}

// Load reads a TOML profile file and overlays it on the defaults. Fields
// absent from the file keep their built-in values.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "profile %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err, "profile %s", path)
	}

	raw := defaultRaw()
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err, "profile %s", path)
	}
	p, err := raw.resolve()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err, "profile %s", path)
	}
	return p, nil
}

// resolve converts the raw file values to fixed-point and validates them.
func (r rawProfile) resolve() (*Profile, error) {
	if r.Board.Pitch <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidProfile, "board pitch must be positive, got %v", r.Board.Pitch)
	}
	if r.Board.TraceWidth <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidProfile, "trace width must be positive, got %v", r.Board.TraceWidth)
	}
	if r.Board.ViaDrill >= r.Board.ViaSize {
		return nil, errors.New(errors.ErrCodeInvalidProfile,
			"via drill %v must be smaller than via size %v", r.Board.ViaDrill, r.Board.ViaSize)
	}
	if r.Schematic.Pitch[0] <= 0 || r.Schematic.Pitch[1] <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidProfile, "schematic pitch must be positive")
	}
	if r.Schematic.RowsPerSheet < 1 {
		return nil, errors.New(errors.ErrCodeInvalidProfile,
			"rows_per_sheet must be at least 1, got %d", r.Schematic.RowsPerSheet)
	}

	off := func(v [2]float64) Offset {
		return Offset{X: units.NanoFromMM(v[0]), Y: units.NanoFromMM(v[1])}
	}

	p := &Profile{
		Board: Board{
			Pitch:      units.NanoFromMM(r.Board.Pitch),
			OriginX:    units.NanoFromMM(r.Board.Origin[0]),
			OriginY:    units.NanoFromMM(r.Board.Origin[1]),
			DiodeOff:   off(r.Board.DiodeOffset),
			ColVias:    [2]Offset{off(r.Board.ColumnVias[0]), off(r.Board.ColumnVias[1])},
			RowVias:    [2]Offset{off(r.Board.RowVias[0]), off(r.Board.RowVias[1])},
			DiodeTrace: [2]Offset{off(r.Board.DiodeTrace[0]), off(r.Board.DiodeTrace[1])},
			TraceWidth: units.NanoFromMM(r.Board.TraceWidth),
			ViaSize:    units.NanoFromMM(r.Board.ViaSize),
			ViaDrill:   units.NanoFromMM(r.Board.ViaDrill),
		},
		Schematic: Schematic{
			PitchX:       units.Mil(r.Schematic.Pitch[0]),
			PitchY:       units.Mil(r.Schematic.Pitch[1]),
			OriginX:      units.Mil(r.Schematic.Origin[0]),
			OriginY:      units.Mil(r.Schematic.Origin[1]),
			RowsPerSheet: r.Schematic.RowsPerSheet,
			SheetW:       units.Mil(r.Schematic.SheetSize[0]),
			SheetH:       units.Mil(r.Schematic.SheetSize[1]),
		},
	}
	if p.Board.Pitch%1000 != 0 {
		return nil, errors.New(errors.ErrCodeInvalidProfile,
			"board pitch %v nm is not divisible by the milliunit grid", int64(p.Board.Pitch))
	}
	return p, nil
}
