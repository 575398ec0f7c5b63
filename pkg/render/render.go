// Package render turns projected elements and routing plans into the text
// artifacts of a board design project: the schematic sheets, the board
// layout, and the project file.
//
// Every artifact is produced from fixed parameterized templates, parsed
// once at package init. All template data is precomputed into plain context
// structs, so the templates themselves only substitute; selection of the
// switch template variant is driven by the resolved footprint. Output
// order follows element order, which is row-major, and nothing in the
// output depends on the clock or the environment, so a rerun over the same
// input produces byte-identical files.
package render

import (
	"fmt"

	"github.com/kbforge/kbforge/pkg/matrix"
	"github.com/kbforge/kbforge/pkg/place"
	"github.com/kbforge/kbforge/pkg/profile"
	"github.com/kbforge/kbforge/pkg/route"
)

// File is one rendered artifact, named relative to the output directory.
type File struct {
	Name    string
	Content string
}

// Design is everything the renderer needs: the placed elements in
// row-major order, the routing plans parallel to them (empty when routing
// is disabled), the net table, and the geometry profile.
type Design struct {
	Name     string
	Author   string
	Elements []place.Element
	Plans    []route.Plan
	Nets     *matrix.Nets
	Profile  *profile.Profile
}

// Files renders the complete project: one or more schematic sheets, the
// board layout, and the project file. base is the project name, which is
// also the basename of every file.
func Files(base string, d Design) []File {
	files := []File{
		{Name: base + ".pro", Content: projectFile()},
	}
	files = append(files, schematicFiles(base, d)...)
	files = append(files, File{Name: base + ".kicad_pcb", Content: boardFile(d)})
	return files
}

// componentID builds the deterministic unique identifier the schematic
// format requires for every component instance. The legacy format filled
// this with a creation timestamp; deriving it from the component slot
// keeps output stable across runs.
func componentID(slot int) string {
	return fmt.Sprintf("%08X", 0x5E000000+slot)
}
