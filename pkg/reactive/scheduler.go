package reactive

import (
	"time"

	"github.com/GhostKellz/ripple/pkg/rerr"
)

// Scheduler holds a deduplicated FIFO queue of pending effects, a
// non-negative batch nesting depth, and a flushing guard. Grounded on
// vango-go-vango/pkg/vango/batch.go's Batch/processPendingUpdates, with
// dedup done by a per-effect queued flag and the mutex/atomic-backed global state replaced
// by plain fields (a Scheduler belongs to exactly one Runtime, touched by
// exactly one goroutine at a time).
type Scheduler struct {
	queue    []*Effect
	depth    int
	flushing bool

	metrics *schedulerMetrics
}

func newScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) beginBatch() { s.depth++ }

// endBatch decrements the batch depth and, if it reached zero, flushes.
func (s *Scheduler) endBatch() error {
	if s.depth == 0 {
		return rerr.New(rerr.Reentrant, "end_batch called without a matching begin_batch")
	}
	s.depth--
	if s.depth == 0 {
		return s.Flush()
	}
	return nil
}

// enqueue appends e to the queue unless it is disposed or already present.
func (s *Scheduler) enqueue(e *Effect) {
	if e == nil || e.disposed || e.queued {
		return
	}
	e.queued = true
	s.queue = append(s.queue, e)
	if s.metrics != nil {
		s.metrics.setQueueDepth(len(s.queue))
	}
}

// flushIfIdle flushes immediately when not inside a batch and not already
// flushing; otherwise it is a no-op (the pending queue will be drained by
// the enclosing batch's end_batch or the enclosing flush's own loop).
func (s *Scheduler) flushIfIdle() error {
	if s.depth == 0 && !s.flushing {
		return s.Flush()
	}
	return nil
}

// Flush triggers every non-disposed, queued effect in FIFO order. Effects
// enqueued while flushing (by signals written from inside running effects)
// extend the same flush rather than starting a nested one. Returns the
// first uncaught error from an effect callback, or Reentrant if called
// while already flushing.
func (s *Scheduler) Flush() error {
	if s.flushing {
		return rerr.New(rerr.Reentrant, "flush called while already flushing")
	}
	s.flushing = true
	start := time.Now()
	var flushErr error
	for i := 0; i < len(s.queue); i++ {
		e := s.queue[i]
		e.queued = false
		if e.disposed {
			continue
		}
		if err := e.trigger(); err != nil {
			flushErr = err
			for _, rest := range s.queue[i+1:] {
				rest.queued = false
			}
			break
		}
	}
	s.queue = s.queue[:0]
	s.flushing = false
	if s.metrics != nil {
		s.metrics.recordFlush(time.Since(start))
		s.metrics.setQueueDepth(0)
	}
	return flushErr
}

// remove clears e's queued mark, used by Effect.Dispose. The entry stays in
// the queue slice until the next flush, which skips it because e is
// disposed, so a disposed effect queued for a future run never executes.
func (s *Scheduler) remove(e *Effect) {
	e.queued = false
}

// Depth reports the current batch nesting depth.
func (s *Scheduler) Depth() int { return s.depth }

// QueueLen reports the number of effects currently queued for the next flush.
func (s *Scheduler) QueueLen() int { return len(s.queue) }
