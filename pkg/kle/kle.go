// Package kle decodes Keyboard Layout Editor (KLE) JSON into normalized key
// geometry.
//
// # Input Format
//
// A KLE document is a JSON array. Each element is either an object carrying
// layout metadata (name, author) or an array describing one visual row of
// keys. Within a row, a string places a key and an object is a modifier
// that adjusts the next key only:
//
//	[
//	  {"name": "Numpad", "author": "someone"},
//	  ["7", "8", "9"],
//	  ["4", "5", "6"],
//	  [{"w": 2}, "0"]
//	]
//
// Recognized modifier fields are x and y (cursor offsets in key units) and
// w and h (size of the next key). Unknown fields such as KLE's color and
// legend styling fields are ignored. Rotation fields (r, rx, ry) and
// secondary dimensions for ISO-style keys (x2, y2, w2, h2) are rejected:
// the compiler cannot place such keys correctly, and refusing the input is
// better than silently producing a broken board.
//
// # Cursor Semantics
//
// Decoding folds a cursor over the rows. Each row resets the cursor x to
// zero and advances y by one unit; a modifier's x and y fields offset the
// cursor before the next key; placing a key consumes the pending width and
// height and advances x by the key's width.
package kle

import (
	"github.com/kbforge/kbforge/pkg/units"
)

// Key is one physical switch position in key units. X and Y are the top
// left corner of the key cap; the switch itself sits at the center.
type Key struct {
	X, Y   units.Unit // top-left corner, in milliunits
	W, H   units.Unit // size, default 1x1
	Legend string     // informational only, not used downstream
}

// CenterX returns the horizontal center of the key, where the switch is
// mounted.
func (k Key) CenterX() units.Unit { return k.X + k.W/2 }

// CenterY returns the vertical center of the key.
func (k Key) CenterY() units.Unit { return k.Y + k.H/2 }

// Layout is the full ordered grid of key definitions for one keyboard,
// plus the metadata block if the document carried one.
type Layout struct {
	Keys   []Key
	Name   string
	Author string
}
