package reactive

import "fmt"

// Effect is a reactive computation that re-runs whenever a signal it read
// during its last run is written. Grounded on
// vango-go-vango/pkg/vango/effect.go's CreateEffect/run/dispose shape, with
// the atomic.Bool/sync.Mutex fields replaced by plain fields (single-writer
// Runtime) and an explicit needsRerun loop added per spec §4.C's re-entrancy
// rule: a write to a signal the *currently running* effect is subscribed to
// must cause exactly one additional run after the current one returns,
// which a bare CAS-based MarkDirty (the teacher's approach) does not by
// itself guarantee.
type Effect struct {
	id  uint64
	rt  *Runtime
	fn  func() (Cleanup, error)

	cleanup Cleanup
	sources []*signalBase

	allowWrites bool

	running    bool
	needsRerun bool
	queued     bool
	disposed   bool
}

// EffectOption configures an Effect at creation.
type EffectOption func(*Effect)

// AllowWrites marks an effect as intentionally writing signals from inside
// its own body. Without it, WithStrictEffectWrites(true) logs a warning for
// writes performed while this effect is running.
func AllowWrites() EffectOption {
	return func(e *Effect) { e.allowWrites = true }
}

// CreateEffect creates and immediately runs a new effect under rt. fn may
// return a Cleanup to run before the next re-run (and on Dispose) and/or an
// error; an error with no active error boundary propagates back from
// CreateEffect (for the first run) or from the write that triggered the
// re-run (for subsequent runs, via Signal.Set/Runtime.Batch).
func CreateEffect(rt *Runtime, fn func() (Cleanup, error), opts ...EffectOption) (*Effect, error) {
	e := &Effect{
		id: rt.allocID(),
		rt: rt,
		fn: fn,
	}
	for _, opt := range opts {
		opt(e)
	}
	err := e.trigger()
	return e, err
}

// OnMount runs fn exactly once, with no tracked dependencies. Equivalent to
// CreateEffect with a callback that reads nothing.
func OnMount(rt *Runtime, fn func()) (*Effect, error) {
	return CreateEffect(rt, func() (Cleanup, error) {
		fn()
		return nil, nil
	})
}

// addSource records a dependency read during the current run; deduplicated.
func (e *Effect) addSource(b *signalBase) {
	for _, s := range e.sources {
		if s == b {
			return
		}
	}
	e.sources = append(e.sources, b)
}

// trigger implements spec §4.C: a no-op if disposed; sets needsRerun and
// returns if already running (the re-entrancy case); otherwise loops
// run_once until a run completes with needsRerun still false.
func (e *Effect) trigger() error {
	if e.disposed {
		return nil
	}
	if e.running {
		// A write from inside this effect's own run loop. This only
		// covers the out-of-flush case: trigger called directly, not via
		// the Scheduler (e.g. the initial run, or a manual rerun). A
		// write during a flush instead goes through notify ->
		// scheduler.enqueue, which re-adds this effect to the
		// already-iterating flush queue (a no-op if it's queued twice)
		// and reruns it within the same flush. Either path gives the
		// same "exactly one additional run" guarantee.
		e.needsRerun = true
		return nil
	}
	e.needsRerun = false
	for {
		if err := e.runOnce(); err != nil {
			return err
		}
		if e.disposed || !e.needsRerun {
			return nil
		}
		e.needsRerun = false
	}
}

func (e *Effect) runOnce() (err error) {
	if e.cleanup != nil {
		prevCleanup := e.cleanup
		e.cleanup = nil
		prevCleanup()
	}

	for _, src := range e.sources {
		src.unsubscribe(e)
	}
	e.sources = e.sources[:0]

	prevListener := e.rt.currentListener
	prevAllowWrites := e.rt.currentAllowsWrites
	e.rt.currentListener = e
	e.rt.currentAllowsWrites = e.allowWrites
	e.running = true

	var cleanup Cleanup
	var callErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				callErr = fmt.Errorf("ripple: effect panicked: %v", r)
			}
		}()
		cleanup, callErr = e.fn()
	}()

	e.running = false
	e.rt.currentListener = prevListener
	e.rt.currentAllowsWrites = prevAllowWrites

	if callErr != nil {
		if e.rt.errStack.dispatch(callErr) {
			return nil
		}
		return callErr
	}
	e.cleanup = cleanup
	return nil
}

// Dispose cancels the effect: runs its last cleanup, unsubscribes from all
// sources, marks it disposed so any remaining queued trigger is skipped,
// and clears its queued mark in the scheduler.
func (e *Effect) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	if e.cleanup != nil {
		cleanup := e.cleanup
		e.cleanup = nil
		cleanup()
	}
	for _, src := range e.sources {
		src.unsubscribe(e)
	}
	e.sources = nil
	e.rt.scheduler.remove(e)
}

// Disposed reports whether Dispose has been called.
func (e *Effect) Disposed() bool { return e.disposed }

// ID returns the effect's unique identifier.
func (e *Effect) ID() uint64 { return e.id }
