// Package reactive implements the fine-grained reactivity engine: signals,
// effects, memos, batched scheduling, resources, suspense, context, and
// error boundaries. Every piece of mutable state lives on a *Runtime value
// rather than behind a package-level or thread-local global — the Design
// Notes in SPEC_FULL.md prefer an explicit handle for testability and
// multi-instance embedding. A Runtime is single-writer: exactly one
// goroutine may touch it at a time (see package doc in doc.go).
package reactive

import "log/slog"

// Runtime owns one Scheduler, one context stack, one error-boundary stack,
// and the bookkeeping needed for dependency tracking. Create one with
// NewRuntime, or obtain a per-goroutine default with Default().
type Runtime struct {
	scheduler *Scheduler
	ctxStack  contextStack
	errStack  errorBoundaryStack

	// currentListener is the effect currently executing its callback, if
	// any. Signal.Get subscribes this effect when non-nil.
	currentListener *Effect

	// currentAllowsWrites mirrors currentListener's AllowWrites() option,
	// cached here so Signal.Set doesn't need to reach into the effect.
	currentAllowsWrites bool

	strictEffectWrites bool
	logger             *slog.Logger

	nextID uint64
}

// RuntimeOption configures a Runtime at construction time.
type RuntimeOption func(*Runtime)

// WithLogger overrides the runtime's logger. The default is slog.Default().
func WithLogger(l *slog.Logger) RuntimeOption {
	return func(rt *Runtime) { rt.logger = l }
}

// WithStrictEffectWrites turns on a warning (never a panic — the core must
// never unwind across a host-callback boundary) logged whenever a signal is
// written from inside a running effect body that did not opt in via
// AllowWrites(). Off by default, matching the teacher's opt-in DevMode
// strictness.
func WithStrictEffectWrites(enabled bool) RuntimeOption {
	return func(rt *Runtime) { rt.strictEffectWrites = enabled }
}

// NewRuntime constructs an independent Runtime. Runtimes never share state;
// a process may hold as many as it needs as long as each is confined to one
// goroutine at a time.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	rt := &Runtime{
		scheduler: newScheduler(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

func (rt *Runtime) allocID() uint64 {
	rt.nextID++
	return rt.nextID
}

// Scheduler returns the runtime's scheduler, exposing Batch/Flush/etc. for
// callers that want to manage batching explicitly.
func (rt *Runtime) Scheduler() *Scheduler { return rt.scheduler }

// Batch defers effect re-runs triggered by signal writes inside fn until fn
// returns, coalescing any number of writes to the same signal into at most
// one re-run per observing effect. Grounded on
// vango-go-vango/pkg/vango/batch.go's Batch, generalized onto an explicit
// Runtime instead of goroutine-local globals.
func (rt *Runtime) Batch(fn func() error) error {
	rt.scheduler.beginBatch()
	fnErr := fn()
	flushErr := rt.scheduler.endBatch()
	if fnErr != nil {
		return fnErr
	}
	return flushErr
}

// Untracked runs fn without the current effect (if any) tracking reads
// performed inside it. Grounded on pkg/vango/batch.go's Untracked.
func (rt *Runtime) Untracked(fn func()) {
	prev := rt.currentListener
	rt.currentListener = nil
	defer func() { rt.currentListener = prev }()
	fn()
}

// PushErrorBoundary installs h as the topmost error-boundary handler.
// Release restores the previous handler (or none).
func (rt *Runtime) PushErrorBoundary(h ErrorHandler) (release func()) {
	tok := rt.errStack.push(h)
	return func() { rt.errStack.pop(tok) }
}
