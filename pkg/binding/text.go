// Package binding implements the single-purpose effects (§4.N) that
// connect a reactive value to the host interface. It depends on
// pkg/reactive for the effect primitive and pkg/host for the callback it
// drives, but neither of those packages knows this one exists.
package binding

import (
	"github.com/GhostKellz/ripple/pkg/host"
	"github.com/GhostKellz/ripple/pkg/reactive"
)

// TextBinding is a disposable effect that keeps a host text node's content
// in sync with a Signal[string].
type TextBinding struct {
	effect *reactive.Effect
}

// BindText creates an effect that reads signal and calls host.SetText(node,
// value) on every run — the initial run and every subsequent re-run caused
// by a write to signal. Per spec §4.N, scheduler dedup guarantees the host
// is told the latest value at most once per flush for this binding.
func BindText(rt *reactive.Runtime, h host.MountHost, node host.NodeID, signal *reactive.Signal[string]) (*TextBinding, error) {
	eff, err := reactive.CreateEffect(rt, func() (reactive.Cleanup, error) {
		h.SetText(node, signal.Get())
		return nil, nil
	})
	return &TextBinding{effect: eff}, err
}

// Dispose tears down the binding's underlying effect; no further SetText
// calls are made.
func (b *TextBinding) Dispose() { b.effect.Dispose() }
