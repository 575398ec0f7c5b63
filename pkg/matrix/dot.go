package matrix

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/kbforge/kbforge/pkg/errors"
)

// ToDOT renders the switch matrix as a Graphviz DOT graph: one box per key
// connected to its row and column net. It is a debugging aid for checking
// matrix assignment before opening the generated files in CAD tooling.
func ToDOT(placed []PlacedKey) string {
	var buf bytes.Buffer
	buf.WriteString("graph matrix {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	rows := RowCount(placed)
	cols := ColCount(placed)
	for r := 0; r < rows; r++ {
		fmt.Fprintf(&buf, "  %q [shape=ellipse, fillcolor=lightblue];\n", RowNet(r))
	}
	for c := 0; c < cols; c++ {
		fmt.Fprintf(&buf, "  %q [shape=ellipse, fillcolor=lightyellow];\n", ColNet(c))
	}

	buf.WriteString("\n")
	for _, p := range placed {
		id := keyNodeID(p)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, keyLabel(p))
		fmt.Fprintf(&buf, "  %q -- %q;\n", id, RowNet(p.Addr.Row))
		fmt.Fprintf(&buf, "  %q -- %q;\n", id, ColNet(p.Addr.Col))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func keyNodeID(p PlacedKey) string {
	return fmt.Sprintf("K%d", p.Ordinal+1)
}

func keyLabel(p PlacedKey) string {
	if p.Key.Legend == "" || p.Key.Legend == " " {
		return keyNodeID(p)
	}
	return fmt.Sprintf("%s\n%s", keyNodeID(p), p.Key.Legend)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT graph")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render SVG")
	}
	return buf.Bytes(), nil
}
