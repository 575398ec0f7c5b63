// Package pipeline provides the core generation pipeline.
//
// This package implements the complete decode → place → render flow that
// turns a keyboard layout description into board design files. By
// centralizing this logic, the CLI stays a thin shell and every entry
// point behaves identically.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: Parse the layout JSON into normalized keys
//  2. Place: Assign matrix addresses, resolve footprints, project
//     coordinates, and route per-key traces
//  3. Render: Produce the schematic, board, and project files
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Layout:  data,
//	    Project: "myboard",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = emit.WriteFiles(outDir, result.Files)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kbforge/kbforge/pkg/errors"
	"github.com/kbforge/kbforge/pkg/footprint"
	"github.com/kbforge/kbforge/pkg/kle"
	"github.com/kbforge/kbforge/pkg/matrix"
	"github.com/kbforge/kbforge/pkg/place"
	"github.com/kbforge/kbforge/pkg/profile"
	"github.com/kbforge/kbforge/pkg/render"
	"github.com/kbforge/kbforge/pkg/route"
)

// DefaultGrouping is the column assignment strategy used when none is
// requested.
const DefaultGrouping = matrix.GroupingSeq

// Options contains all configuration for one pipeline run.
type Options struct {
	// Layout is the raw layout JSON.
	Layout []byte

	// Source names where the layout came from, for logs and events.
	Source string

	// Project is the base name of every generated file.
	Project string

	// Columns selects the column assignment strategy.
	Columns matrix.Grouping

	// SkipRouting leaves the board unrouted.
	SkipRouting bool

	// Profile overrides the built-in geometry constants.
	Profile *profile.Profile

	// Logger receives stage progress. Discarded if nil.
	Logger *log.Logger
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Layout) == 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "layout input is empty")
	}
	if o.Project == "" {
		return errors.New(errors.ErrCodeInternal, "project name is required")
	}
	if o.Columns == "" {
		o.Columns = DefaultGrouping
	}
	if _, err := matrix.ParseGrouping(string(o.Columns)); err != nil {
		return err
	}
	if o.Profile == nil {
		o.Profile = profile.Default()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the decoded input.
	Layout *kle.Layout

	// Placed holds the keys with their matrix addresses, row-major.
	Placed []matrix.PlacedKey

	// Nets is the full net table of the design.
	Nets *matrix.Nets

	// Elements are the projected keys with resolved footprints.
	Elements []place.Element

	// Plans are the per-key routing plans, parallel to Elements.
	// Empty when routing was skipped.
	Plans []route.Plan

	// Files are the rendered project files, ready for the emitter.
	Files []render.File

	// Warnings are non-fatal degradations encountered along the way.
	Warnings []footprint.Warning

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	KeyCount   int
	RowCount   int
	ColCount   int
	SheetCount int
	DecodeTime time.Duration
	PlaceTime  time.Duration
	RenderTime time.Duration
}
