package kle

import (
	"encoding/json"

	"github.com/kbforge/kbforge/pkg/errors"
	"github.com/kbforge/kbforge/pkg/units"
)

// rotationFields are KLE modifier fields describing key rotation. Rotated
// keys cannot be assigned a matrix position or a rectangular footprint, so
// their presence is a hard decode error.
var rotationFields = []string{"r", "rx", "ry"}

// secondaryFields describe the second rectangle of ISO-style keys. These
// are likewise unsupported.
var secondaryFields = []string{"x2", "y2", "w2", "h2"}

// cursor is the decoding state threaded through the fold over rows. It is
// a value, copied at each step; decode never shares mutable state.
type cursor struct {
	x, y units.Unit // current position
	w, h units.Unit // pending size for the next key only
}

// Decode parses a KLE JSON document into a Layout.
//
// Errors carry pkg/errors codes: INVALID_MODIFIER for non-numeric modifier
// values, UNSUPPORTED_KEY for rotation, secondary dimensions, or a key
// height other than one unit, and INVALID_LAYOUT for structurally malformed
// documents. All decode errors are fatal; no partial layout is returned.
func Decode(data []byte) (*Layout, error) {
	var doc []json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "layout is not a JSON array")
	}

	layout := &Layout{}
	cur := cursor{w: units.OneU, h: units.OneU}
	first := true

	for _, raw := range doc {
		switch kind(raw) {
		case '[':
			var row []json.RawMessage
			if err := json.Unmarshal(raw, &row); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "malformed row")
			}
			if !first {
				cur.y += units.OneU
			}
			first = false
			cur.x = 0
			// Pending size never survives a row boundary.
			cur.w, cur.h = units.OneU, units.OneU

			var err error
			cur, err = decodeRow(layout, row, cur)
			if err != nil {
				return nil, err
			}
		case '{':
			if err := decodeMeta(layout, raw); err != nil {
				return nil, err
			}
		default:
			return nil, errors.New(errors.ErrCodeInvalidLayout, "unexpected element %s", compact(raw))
		}
	}

	return layout, nil
}

// decodeRow folds one row of entries over the cursor, appending keys to the
// layout. The returned cursor carries the y position into the next row.
func decodeRow(layout *Layout, row []json.RawMessage, cur cursor) (cursor, error) {
	for _, item := range row {
		switch kind(item) {
		case '"':
			var legend string
			if err := json.Unmarshal(item, &legend); err != nil {
				return cur, errors.Wrap(errors.ErrCodeInvalidLayout, err, "malformed key label")
			}
			if cur.h != units.OneU {
				return cur, errors.New(errors.ErrCodeUnsupportedKey,
					"key %q has height %s; only one-unit-tall keys are supported", legend, cur.h)
			}
			layout.Keys = append(layout.Keys, Key{
				X: cur.x, Y: cur.y,
				W: cur.w, H: cur.h,
				Legend: legend,
			})
			cur.x += cur.w
			cur.w, cur.h = units.OneU, units.OneU
		case '{':
			next, err := applyModifier(item, cur)
			if err != nil {
				return cur, err
			}
			cur = next
		default:
			return cur, errors.New(errors.ErrCodeInvalidLayout, "unexpected row entry %s", compact(item))
		}
	}
	return cur, nil
}

// applyModifier merges one modifier object into the cursor. Each field is
// consumed by the next key placement; unknown fields are ignored.
func applyModifier(raw json.RawMessage, cur cursor) (cursor, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return cur, errors.Wrap(errors.ErrCodeInvalidLayout, err, "malformed modifier")
	}

	for _, f := range rotationFields {
		if _, ok := fields[f]; ok {
			return cur, errors.New(errors.ErrCodeUnsupportedKey,
				"rotated keys are not supported (modifier field %q)", f)
		}
	}
	for _, f := range secondaryFields {
		if _, ok := fields[f]; ok {
			return cur, errors.New(errors.ErrCodeUnsupportedKey,
				"ISO-style secondary key dimensions are not supported (modifier field %q)", f)
		}
	}

	if v, ok := fields["x"]; ok {
		dx, err := modifierUnit("x", v)
		if err != nil {
			return cur, err
		}
		cur.x += dx
	}
	if v, ok := fields["y"]; ok {
		dy, err := modifierUnit("y", v)
		if err != nil {
			return cur, err
		}
		cur.y += dy
	}
	if v, ok := fields["w"]; ok {
		w, err := modifierUnit("w", v)
		if err != nil {
			return cur, err
		}
		if w <= 0 {
			return cur, errors.New(errors.ErrCodeBadModifier, "key width %s must be positive", w)
		}
		cur.w = w
	}
	if v, ok := fields["h"]; ok {
		h, err := modifierUnit("h", v)
		if err != nil {
			return cur, err
		}
		if h <= 0 {
			return cur, errors.New(errors.ErrCodeBadModifier, "key height %s must be positive", h)
		}
		cur.h = h
	}

	return cur, nil
}

// modifierUnit parses one numeric modifier field into key units.
func modifierUnit(name string, raw json.RawMessage) (units.Unit, error) {
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, errors.New(errors.ErrCodeBadModifier, "modifier field %q is not a number: %s", name, compact(raw))
	}
	u, err := units.UnitFromFloat(v)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeBadModifier, err, "modifier field %q", name)
	}
	return u, nil
}

// decodeMeta reads the metadata block. Unknown fields are ignored.
func decodeMeta(layout *Layout, raw json.RawMessage) error {
	var meta struct {
		Name   string `json:"name"`
		Author string `json:"author"`
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidLayout, err, "malformed metadata block")
	}
	if meta.Name != "" {
		layout.Name = meta.Name
	}
	if meta.Author != "" {
		layout.Author = meta.Author
	}
	return nil
}

// kind returns the first non-space byte of a raw JSON value, which is
// enough to distinguish arrays, objects, and strings.
func kind(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}

// compact trims a raw value for error messages.
func compact(raw json.RawMessage) string {
	const max = 40
	s := string(raw)
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}
