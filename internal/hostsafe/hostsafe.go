// Package hostsafe guards the one boundary where a panic must never be
// allowed to unwind: a call out to an embedder-supplied host.MountHost or
// host.HydrateHost implementation. Per SPEC_FULL.md's Design Notes, "no
// panics cross the Host-callback boundary... WASM imports must see no
// exceptions." Mount and Hydrate each wrap their whole op loop in one Call,
// so a panic from any host method surfaces as an ordinary
// *rerr.Error (AllocationFailed) instead of crashing the whole module
// instance.
package hostsafe

import (
	"fmt"

	"github.com/GhostKellz/ripple/pkg/rerr"
)

// Call invokes fn and converts any panic into an AllocationFailed error.
// A non-panicking fn's own return value passes through unchanged.
func Call(what string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = rerr.Newf(rerr.AllocationFailed, "recovered panic in host callback", fmt.Sprintf("%s: %v", what, r))
		}
	}()
	return fn()
}
