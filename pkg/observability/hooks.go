// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about pipeline stages and file
// output.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach avoids import cycles (hooks are registered by main, not
// by libraries) and keeps the core library free of observability
// framework dependencies.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnDecodeStart(ctx, source)
//	// ... decode ...
//	observability.Pipeline().OnDecodeComplete(ctx, source, keys, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the generation pipeline.
type PipelineHooks interface {
	// Decode events
	OnDecodeStart(ctx context.Context, source string)
	OnDecodeComplete(ctx context.Context, source string, keyCount int, duration time.Duration, err error)

	// Placement events (matrix mapping, footprint resolution, projection,
	// routing)
	OnPlaceStart(ctx context.Context, keyCount int)
	OnPlaceComplete(ctx context.Context, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, project string)
	OnRenderComplete(ctx context.Context, project string, fileCount int, duration time.Duration, err error)
}

// EmitHooks receives events from file output.
type EmitHooks interface {
	// OnFileWritten records one written output file.
	OnFileWritten(ctx context.Context, path string, size int)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnDecodeStart(context.Context, string) {}
func (NoopPipelineHooks) OnDecodeComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnPlaceStart(context.Context, int)                              {}
func (NoopPipelineHooks) OnPlaceComplete(context.Context, time.Duration, error)          {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {
}

// NoopEmitHooks is a no-op implementation of EmitHooks.
type NoopEmitHooks struct{}

func (NoopEmitHooks) OnFileWritten(context.Context, string, int) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	emitHooks     EmitHooks     = NoopEmitHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline
// operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetEmitHooks registers custom emit hooks.
// This should be called once at application startup before any files are
// written.
func SetEmitHooks(h EmitHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		emitHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Emit returns the registered emit hooks.
func Emit() EmitHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return emitHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	emitHooks = NoopEmitHooks{}
}
