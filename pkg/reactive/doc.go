// Package reactive's Runtime is single-writer: create one per goroutine (or
// call Default() to get one automatically keyed by goroutine identity) and
// never touch it from a second goroutine concurrently. Apart from the
// sync.Map registry behind Default(), nothing in this package takes a lock
// or uses sync/atomic — see SPEC_FULL.md §5/§9 and
// DESIGN.md for why that is a deliberate property rather than an oversight.
package reactive
