package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kbforge/kbforge/pkg/footprint"
	"github.com/kbforge/kbforge/pkg/kle"
	"github.com/kbforge/kbforge/pkg/matrix"
	"github.com/kbforge/kbforge/pkg/observability"
	"github.com/kbforge/kbforge/pkg/place"
	"github.com/kbforge/kbforge/pkg/render"
	"github.com/kbforge/kbforge/pkg/route"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, the default logger is
// used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete decode → place → render pipeline. Input
// errors abort before anything is produced; the returned Result carries
// the rendered files and any non-fatal warnings.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	result := &Result{}

	// Stage 1: Decode
	decodeStart := time.Now()
	observability.Pipeline().OnDecodeStart(ctx, opts.Source)
	layout, err := kle.Decode(opts.Layout)
	result.Stats.DecodeTime = time.Since(decodeStart)
	observability.Pipeline().OnDecodeComplete(ctx, opts.Source, keyCount(layout), result.Stats.DecodeTime, err)
	if err != nil {
		return nil, err
	}
	result.Layout = layout
	result.Stats.KeyCount = len(layout.Keys)

	logger.Info("decoded layout",
		"keys", len(layout.Keys),
		"name", layout.Name,
		"duration", result.Stats.DecodeTime)

	// Stage 2: Place
	placeStart := time.Now()
	observability.Pipeline().OnPlaceStart(ctx, len(layout.Keys))
	err = r.placeStage(result, opts)
	result.Stats.PlaceTime = time.Since(placeStart)
	observability.Pipeline().OnPlaceComplete(ctx, result.Stats.PlaceTime, err)
	if err != nil {
		return nil, err
	}

	logger.Info("placed keys",
		"rows", result.Stats.RowCount,
		"cols", result.Stats.ColCount,
		"nets", result.Nets.Count(),
		"duration", result.Stats.PlaceTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Project)
	result.Files = render.Files(opts.Project, render.Design{
		Name:     layout.Name,
		Author:   layout.Author,
		Elements: result.Elements,
		Plans:    result.Plans,
		Nets:     result.Nets,
		Profile:  opts.Profile,
	})
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Project, len(result.Files), result.Stats.RenderTime, nil)

	logger.Info("rendered project",
		"files", len(result.Files),
		"sheets", result.Stats.SheetCount,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// placeStage maps the matrix, resolves footprints, projects coordinates,
// and routes. It fills Placed, Nets, Elements, Plans, Warnings, and the
// size fields of Stats.
func (r *Runner) placeStage(result *Result, opts Options) error {
	placed, err := matrix.Assign(result.Layout, opts.Columns)
	if err != nil {
		return err
	}
	result.Placed = placed
	result.Nets = matrix.BuildNets(placed)
	result.Stats.RowCount = matrix.RowCount(placed)
	result.Stats.ColCount = matrix.ColCount(placed)

	specs := make([]footprint.Spec, len(placed))
	for i, pk := range placed {
		spec, warn := footprint.Resolve(pk.Key.W)
		specs[i] = spec
		if warn != nil {
			result.Warnings = append(result.Warnings, *warn)
		}
	}

	elements, err := place.ProjectAll(placed, specs, opts.Profile)
	if err != nil {
		return err
	}
	result.Elements = elements
	result.Stats.SheetCount = place.SheetCount(elements)

	if !opts.SkipRouting {
		result.Plans = route.RouteAll(elements, opts.Profile)
	}
	return nil
}

func keyCount(layout *kle.Layout) int {
	if layout == nil {
		return 0
	}
	return len(layout.Keys)
}
