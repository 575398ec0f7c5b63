// Package pkg provides the core libraries of the kbforge layout compiler.
//
// # Overview
//
// kbforge turns a keyboard layout description into a complete board design
// project. The pkg directory is organized along the pipeline:
//
//  1. [kle] - Layout decoding (cursor semantics, normalized keys)
//  2. [matrix] - Row/column assignment and the electrical net model
//  3. [footprint] - Width class and stabilizer resolution
//  4. [place] - Fixed-point projection onto schematic and board planes
//  5. [route] - Per-key trace and via planning
//  6. [render] - Schematic, board, and project file generation
//  7. [emit] - File output
//
// Supporting packages: [units] (fixed-point measurement types), [profile]
// (geometry constants with TOML overlay), [errors] (coded errors),
// [pipeline] (stage orchestration), [observability] (instrumentation
// hooks), and [buildinfo] (version stamping).
package pkg
