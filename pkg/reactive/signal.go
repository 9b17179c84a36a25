package reactive

import "log/slog"

// signalBase is the subscriber-list bookkeeping shared by every Signal[T]
// and by a Memo's inner signal. Grounded on
// vango-go-vango/pkg/vango/signal.go's signalBase, with the sync.RWMutex
// dropped (single-writer Runtime, see package doc) and the subscriber type
// narrowed from the teacher's generic Listener interface to *Effect — in
// this core, only effects ever read a signal inside a tracked context.
type signalBase struct {
	id   uint64
	subs []*Effect
}

func (b *signalBase) subscribe(e *Effect) {
	if e == nil {
		return
	}
	for _, existing := range b.subs {
		if existing == e {
			return
		}
	}
	b.subs = append(b.subs, e)
}

func (b *signalBase) unsubscribe(e *Effect) {
	for i, existing := range b.subs {
		if existing == e {
			b.subs[i] = b.subs[len(b.subs)-1]
			b.subs = b.subs[:len(b.subs)-1]
			return
		}
	}
}

// notify enqueues every subscriber and asks the scheduler to flush if idle.
// Per spec §4.B this always enqueues regardless of batch depth; depth only
// governs whether flushIfIdle actually runs the queue now or defers to the
// enclosing batch.
func (b *signalBase) notify(rt *Runtime) error {
	for _, e := range b.subs {
		rt.scheduler.enqueue(e)
	}
	return rt.scheduler.flushIfIdle()
}

// Signal is a mutable value cell that tracks read dependencies and
// notifies subscribers on write. Reading a Signal inside a running effect
// subscribes that effect; writing a Signal enqueues its subscribers onto
// the owning Runtime's Scheduler.
type Signal[T any] struct {
	base  signalBase
	rt    *Runtime
	value T
}

// NewSignal creates a signal owned by rt, holding initial.
func NewSignal[T any](rt *Runtime, initial T) *Signal[T] {
	return &Signal[T]{
		base:  signalBase{id: rt.allocID()},
		rt:    rt,
		value: initial,
	}
}

// Get returns the current value, subscribing the currently-running effect
// (if any) to future changes.
func (s *Signal[T]) Get() T {
	if s.rt.currentListener != nil {
		s.base.subscribe(s.rt.currentListener)
		s.rt.currentListener.addSource(&s.base)
	}
	return s.value
}

// Peek returns the current value without subscribing.
func (s *Signal[T]) Peek() T {
	return s.value
}

// Set assigns v unconditionally — per spec §4.B there is no equality
// short-circuit — and notifies subscribers. Outside any batch this runs
// their effects before Set returns; inside a batch it defers to the
// enclosing end_batch. The returned error is non-nil only if an effect
// triggered by this write failed and no error boundary caught it.
func (s *Signal[T]) Set(v T) error {
	if s.rt.currentListener != nil && !s.rt.currentAllowsWrites && s.rt.strictEffectWrites {
		s.rt.logger.Warn("ripple: signal written from inside a running effect without AllowWrites()",
			slog.Uint64("signal_id", s.base.id))
	}
	s.value = v
	return s.base.notify(s.rt)
}

// ID returns the signal's unique identifier.
func (s *Signal[T]) ID() uint64 { return s.base.id }
