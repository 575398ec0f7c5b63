package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbforge/kbforge/pkg/errors"
	"github.com/kbforge/kbforge/pkg/footprint"
	"github.com/kbforge/kbforge/pkg/kle"
	"github.com/kbforge/kbforge/pkg/matrix"
)

// infoCommand creates the info command, which decodes a layout and prints
// its matrix summary without generating anything.
func (c *CLI) infoCommand() *cobra.Command {
	var columns string

	cmd := &cobra.Command{
		Use:   "info [layout.json]",
		Short: "Decode a layout and print its matrix summary",
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
			grouping, err := matrix.ParseGrouping(columns)
			if err != nil {
				return err
			}
			placed, err := matrix.Assign(layout, grouping)
			if err != nil {
				printError("%v", errors.UserMessage(err))
				return err
			}

			fmt.Println(StyleTitle.Render(args[0]))
			if layout.Name != "" {
				printKeyValue("name", layout.Name)
			}
			if layout.Author != "" {
				printKeyValue("author", layout.Author)
			}
			printKeyValue("keys", fmt.Sprint(len(layout.Keys)))
			printKeyValue("matrix", fmt.Sprintf("%d rows × %d cols",
				matrix.RowCount(placed), matrix.ColCount(placed)))
			printKeyValue("nets", fmt.Sprint(matrix.BuildNets(placed).Count()))

			stabilized := 0
			for _, pk := range placed {
				spec, warn := footprint.Resolve(pk.Key.W)
				if spec.Stabilizer != footprint.StabilizerNone {
					stabilized++
				}
				if warn != nil {
					printWarning("%s", warn)
				}
			}
			printKeyValue("stabilizers", fmt.Sprint(stabilized))
			return nil
		},
	}

	cmd.Flags().StringVar(&columns, "columns", string(matrix.GroupingSeq), "column assignment: seq (arrival order) or pos (left to right)")
	return cmd
}
