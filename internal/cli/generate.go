package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbforge/kbforge/pkg/emit"
	"github.com/kbforge/kbforge/pkg/errors"
	"github.com/kbforge/kbforge/pkg/matrix"
	"github.com/kbforge/kbforge/pkg/pipeline"
	"github.com/kbforge/kbforge/pkg/profile"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output    string // output directory; its basename names the project files
	columns   string // column assignment strategy: "seq" or "pos"
	noRouting bool   // leave the board unrouted
	profile   string // geometry profile TOML file
}

// generateCommand creates the generate command, the main entry point of
// the tool. It runs the full pipeline over a layout file and writes the
// project files into the output directory.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [layout.json]",
		Short: "Compile a layout into schematic, board, and project files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory; its basename names the project (default: layout file name)")
	cmd.Flags().StringVar(&opts.columns, "columns", string(pipeline.DefaultGrouping), "column assignment: seq (arrival order) or pos (left to right)")
	cmd.Flags().BoolVar(&opts.noRouting, "no-routing", false, "skip per-key trace routing")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "geometry profile TOML file")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, layoutPath string, opts *generateOpts) error {
	logger := loggerFromContext(ctx)

	data, err := os.ReadFile(layoutPath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read layout %s", layoutPath)
	}

	outDir := opts.output
	if outDir == "" {
		outDir = strings.TrimSuffix(filepath.Base(layoutPath), filepath.Ext(layoutPath))
	}
	project := filepath.Base(filepath.Clean(outDir))

	var prof *profile.Profile
	if opts.profile != "" {
		prof, err = profile.Load(opts.profile)
		if err != nil {
			return err
		}
		logger.Debug("loaded profile", "path", opts.profile)
	}

	prog := newProgress(logger)
	result, err := c.newRunner().Execute(ctx, pipeline.Options{
		Layout:      data,
		Source:      layoutPath,
		Project:     project,
		Columns:     matrix.Grouping(opts.columns),
		SkipRouting: opts.noRouting,
		Profile:     prof,
		Logger:      logger,
	})
	if err != nil {
		printError("%v", errors.UserMessage(err))
		return err
	}

	if err := emit.WriteFiles(outDir, result.Files); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d files", len(result.Files)))

	for _, w := range result.Warnings {
		printWarning("%s", w)
	}

	printSuccess("%s compiled", project)
	printSummary(result)
	for _, f := range result.Files {
		printFile(filepath.Join(outDir, f.Name))
	}
	return nil
}

// printSummary prints the keyboard summary after generation.
func printSummary(result *pipeline.Result) {
	if result.Layout.Name != "" {
		printKeyValue("name", result.Layout.Name)
	}
	if result.Layout.Author != "" {
		printKeyValue("author", result.Layout.Author)
	}
	printKeyValue("keys", fmt.Sprint(result.Stats.KeyCount))
	printKeyValue("matrix", fmt.Sprintf("%d rows × %d cols", result.Stats.RowCount, result.Stats.ColCount))
	printKeyValue("nets", fmt.Sprint(result.Nets.Count()))
	printKeyValue("sheets", fmt.Sprint(result.Stats.SheetCount))
}
