package reactive

// Memo is a pair of (owned signal, owned effect) where the effect computes
// T and writes it to the signal; reading the memo reads the signal. Per
// spec §4.D this is eager and push-based: the inner effect runs
// synchronously inside NewMemo, so by the time NewMemo returns the inner
// signal already holds a computed value and Get/Peek never observe T's
// zero value. This is a deliberate divergence from
// vango-go-vango/pkg/vango/memo.go, whose Memo[T] is lazy-pull (a `valid`
// bit flipped false by MarkDirty, recomputed on the next Get); the optional
// equal field is grounded on that file, the scheduling discipline is not. See DESIGN.md Open Question #2.
type Memo[T any] struct {
	signal *Signal[T]
	effect *Effect
	equal  func(T, T) bool
}

// MemoOption configures a Memo at creation.
type MemoOption[T any] func(*Memo[T])

// WithEquals supplies a custom equality function used only to decide
// whether to suppress the notification to the memo's *own* subscribers
// when a recompute produces an unchanged value — it never suppresses the
// underlying signal write itself, since spec §4.B disallows an equality
// short-circuit at the signal layer.
func WithEquals[T any](eq func(T, T) bool) MemoOption[T] {
	return func(m *Memo[T]) { m.equal = eq }
}

// NewMemo creates a memo that eagerly computes its initial value and
// recomputes whenever a signal compute reads changes.
func NewMemo[T any](rt *Runtime, compute func() (T, error), opts ...MemoOption[T]) (*Memo[T], error) {
	var zero T
	m := &Memo[T]{signal: NewSignal(rt, zero)}
	for _, opt := range opts {
		opt(m)
	}

	first := true
	var prev T
	eff, err := CreateEffect(rt, func() (Cleanup, error) {
		v, cerr := compute()
		if cerr != nil {
			return nil, cerr
		}
		if !first && m.equals(prev, v) {
			// Unchanged per WithEquals: store v without notifying.
			m.signal.value = v
			prev = v
			return nil, nil
		}
		first = false
		prev = v
		if serr := m.signal.Set(v); serr != nil {
			return nil, serr
		}
		return nil, nil
	})
	m.effect = eff
	return m, err
}

func (m *Memo[T]) equals(a, b T) bool {
	if m.equal != nil {
		return m.equal(a, b)
	}
	return false
}

// Get returns the memo's current value, subscribing the currently-running
// effect to future recomputes.
func (m *Memo[T]) Get() T { return m.signal.Get() }

// Peek returns the memo's current value without subscribing.
func (m *Memo[T]) Peek() T { return m.signal.Peek() }

// Dispose tears down the memo's inner effect.
func (m *Memo[T]) Dispose() { m.effect.Dispose() }
