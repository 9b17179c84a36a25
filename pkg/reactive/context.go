package reactive

import (
	"hash/fnv"
	"reflect"
)

// contextEntry is {type_key, ptr} per spec §3/§4.F.
type contextEntry struct {
	key uint64
	val any
}

// contextStack is a strictly LIFO sequence of typed values, one per
// Runtime. The public surface (PushContext/UseContext) follows the naming
// idiom of vango-go-vango/pkg/vango/context_api.go, but the internals are new:
// the teacher walks an Owner parent-chain map, which is a different
// structure than the explicit push/release-guard stack spec §4.F
// describes. Written directly from the spec text.
type contextStack struct {
	entries []contextEntry
}

// typeKey hashes T's reflected name into a deterministic, process-stable
// key with no shared mutable cache — this stays correct even if multiple
// Runtimes on different goroutines ask for the same T concurrently, since
// it reads no state at all beyond reflect.Type, which is immutable.
func typeKey[T any]() uint64 {
	var zero T
	name := reflect.TypeOf(&zero).Elem().String()
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}

// ContextGuard releases a pushed context value. It must be released in
// strict LIFO order with any other guard pushed after it.
type ContextGuard struct {
	stack *contextStack
	index int
}

// Release pops the associated context value. Releasing out of LIFO order
// panics — that is a caller bug, not a runtime condition to recover from.
func (g *ContextGuard) Release() {
	if g.index != len(g.stack.entries)-1 {
		panic("reactive: context guard released out of LIFO order")
	}
	g.stack.entries = g.stack.entries[:g.index]
}

// PushContext pushes value onto rt's context stack under T's type key and
// returns a guard that pops it on Release.
func PushContext[T any](rt *Runtime, value T) *ContextGuard {
	idx := len(rt.ctxStack.entries)
	rt.ctxStack.entries = append(rt.ctxStack.entries, contextEntry{key: typeKey[T](), val: value})
	return &ContextGuard{stack: &rt.ctxStack, index: idx}
}

// UseContext scans rt's context stack top-to-bottom for the nearest value
// of type T, returning ok=false if none is present.
func UseContext[T any](rt *Runtime) (T, bool) {
	key := typeKey[T]()
	for i := len(rt.ctxStack.entries) - 1; i >= 0; i-- {
		if rt.ctxStack.entries[i].key == key {
			v, ok := rt.ctxStack.entries[i].val.(T)
			return v, ok
		}
	}
	var zero T
	return zero, false
}
