//go:build !wasm

package rtid

import "github.com/petermattis/goid"

// current uses the runtime goroutine id as the identity key. This mirrors
// AnatoleLucet-sig/internal/runtime_default.go's getGID(), which backs a
// sync.Map of *Runtime keyed the same way; reactive.Default() does the
// sync.Map part, this just supplies the key.
func current() int64 {
	return goid.Get()
}
