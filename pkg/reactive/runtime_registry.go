package reactive

import (
	"sync"

	"github.com/GhostKellz/ripple/internal/rtid"
)

// defaultRuntimes backs Default(): one Runtime per calling identity
// (goroutine, off-wasm; the single wasm thread, on wasm). This is a
// convenience layered on top of the explicit-handle design in runtime.go —
// core types never consult it themselves. sync.Map guards the registry
// itself (many goroutines may call Default() concurrently, each minting
// its own entry); it does not protect any individual Runtime's internals,
// which remain single-writer. Mirrors the "runtimes sync.Map" in
// AnatoleLucet-sig/internal/runtime_default.go.
var defaultRuntimes sync.Map // int64 -> *Runtime

// Default returns (creating if necessary) the Runtime associated with the
// calling goroutine's identity, per internal/rtid. Prefer NewRuntime and
// explicit threading for anything beyond quick scripts or tests; Default
// exists for call sites that want the teacher's package-level ergonomics
// (vango.NewSignal-style) without plumbing a *Runtime through every call.
func Default() *Runtime {
	id := rtid.Current()
	if rt, ok := defaultRuntimes.Load(id); ok {
		return rt.(*Runtime)
	}
	rt := NewRuntime()
	actual, _ := defaultRuntimes.LoadOrStore(id, rt)
	return actual.(*Runtime)
}
