package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbforge/kbforge/pkg/errors"
	"github.com/kbforge/kbforge/pkg/kle"
	"github.com/kbforge/kbforge/pkg/matrix"
)

// matrixOpts holds the command-line flags for the matrix command.
type matrixOpts struct {
	output  string // output file; default writes DOT to stdout
	format  string // "dot" or "svg"
	columns string // column assignment strategy
}

// matrixCommand creates the matrix command, which renders the switch
// matrix connectivity as a graph. Useful for checking row and column
// assignment before opening the generated files in CAD tooling.
func (c *CLI) matrixCommand() *cobra.Command {
	var opts matrixOpts

	cmd := &cobra.Command{
		Use:   "matrix [layout.json]",
		Short: "Render the switch matrix connectivity as DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "read layout %s", args[0])
			}

			layout, err := kle.Decode(data)
			if err != nil {
				printError("%v", errors.UserMessage(err))
				return err
			}
			grouping, err := matrix.ParseGrouping(opts.columns)
			if err != nil {
				return err
			}
			placed, err := matrix.Assign(layout, grouping)
			if err != nil {
				printError("%v", errors.UserMessage(err))
				return err
			}

			dot := matrix.ToDOT(placed)

			format := opts.format
			if format == "" {
				format = formatFromPath(opts.output)
			}

			var out []byte
			switch format {
			case "dot":
				out = []byte(dot)
			case "svg":
				out, err = matrix.RenderSVG(cmd.Context(), dot)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("invalid format: %q (must be dot or svg)", format)
			}

			if opts.output == "" {
				_, err = os.Stdout.Write(out)
				return err
			}
			if err := os.WriteFile(opts.output, out, 0o644); err != nil {
				return err
			}
			printSuccess("wrote %s", opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: DOT on stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot (default) or svg")
	cmd.Flags().StringVar(&opts.columns, "columns", string(matrix.GroupingSeq), "column assignment: seq (arrival order) or pos (left to right)")

	return cmd
}

// formatFromPath infers the output format from the file extension,
// defaulting to DOT.
func formatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return "svg"
	}
	return "dot"
}
