package engine

import (
	"github.com/Carmen-Shannon/fever/engine/clock"
	"github.com/Carmen-Shannon/fever/engine/profiler"
	"github.com/Carmen-Shannon/fever/engine/state"
	"github.com/Carmen-Shannon/fever/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables per-frame statistics logging.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler sets the profiler ticked once per drawn frame.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window that drives the engine.
//
// Parameters:
//   - w: a created Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithUpdater sets the simulation step run once per redraw.
//
// Parameters:
//   - u: the updater, e.g. a *state.StateSystem
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithUpdater(u state.Updater) EngineBuilderOption {
	return func(e *engine) {
		e.updater = u
	}
}

// WithClock replaces the engine's clock.
//
// Parameters:
//   - c: the clock
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(c *clock.Clock) EngineBuilderOption {
	return func(e *engine) {
		e.clock = c
	}
}
