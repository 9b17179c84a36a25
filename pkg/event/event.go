// Package event implements the per-event-name listener registry and
// capture/bubble dispatch described in spec §4.I. It has no dependency on
// pkg/render or pkg/host beyond host.NodeID and host.MountHost, and
// pkg/render does not call into it: handlers are wired through a Delegator
// by the caller after Mount or Hydrate returns.
package event

import "github.com/GhostKellz/ripple/pkg/host"

// Handler receives a SyntheticEvent by pointer so it can mutate
// DefaultPrevented/PropagationStopped per spec §3.
type Handler func(*SyntheticEvent)

// SyntheticEvent is passed by reference into every handler invoked during
// a Dispatch. CurrentTarget is updated as dispatch walks the path.
type SyntheticEvent struct {
	EventType          string
	Target             host.NodeID
	CurrentTarget      host.NodeID
	Bubbles            bool
	DefaultPrevented   bool
	PropagationStopped bool
	DetailPayload      string
	DetailData         any
}

// PreventDefault marks the event as having had its default action
// suppressed. Dispatch returns this flag to the caller.
func (e *SyntheticEvent) PreventDefault() { e.DefaultPrevented = true }

// StopPropagation halts the walk along Dispatch's path after the listener
// that called it finishes running.
func (e *SyntheticEvent) StopPropagation() { e.PropagationStopped = true }

// listener is the registry's internal record. Two listeners are considered
// the same entry when node, callback identity, and context all match —
// callback identity is approximated by a caller-supplied opaque key
// (funcs are not comparable in Go), matching spec §3's
// "(node_id, callback, context)" tuple.
type listener struct {
	node     host.NodeID
	callback Handler
	key      any
	context  any
	once     bool
}

// eventBucket is one event name's registry: its listeners in registration
// order and whether RegisterEvent has already been told the host about it.
type eventBucket struct {
	listeners      []listener
	hostRegistered bool
}

// Delegator is a per-Runtime (or per-mount-call) registry of event
// listeners keyed by event name, matching spec §4.I. It holds no reference
// to a Runtime or Scheduler — handlers are plain callbacks invoked
// synchronously by Dispatch, which is how an embedder's host event loop
// would call in after observing a real DOM event.
type Delegator struct {
	host    host.MountHost
	buckets map[string]*eventBucket
}

// NewDelegator creates a Delegator that registers event names with host
// exactly once each, the first time a listener for that name is added.
func NewDelegator(h host.MountHost) *Delegator {
	return &Delegator{host: h, buckets: make(map[string]*eventBucket)}
}

// AddListener inserts a listener for (node, key, context) unless that exact
// tuple is already registered, in which case it updates the existing
// entry's once flag. key identifies the callback for dedup purposes since
// Go funcs are not comparable — callers typically pass a stable token
// (the handler's originating signal id, a component instance pointer).
func (d *Delegator) AddListener(node host.NodeID, eventName string, handler Handler, key, context any, once bool) {
	b, ok := d.buckets[eventName]
	if !ok {
		b = &eventBucket{}
		d.buckets[eventName] = b
	}
	for i := range b.listeners {
		l := &b.listeners[i]
		if l.node == node && l.key == key && l.context == context {
			l.once = once
			l.callback = handler
			return
		}
	}
	b.listeners = append(b.listeners, listener{
		node: node, callback: handler, key: key, context: context, once: once,
	})
	if !b.hostRegistered {
		d.host.RegisterEvent(eventName)
		b.hostRegistered = true
	}
}

// RemoveListener removes the (node, key, context) entry for eventName, if
// present.
func (d *Delegator) RemoveListener(node host.NodeID, eventName string, key, context any) {
	b, ok := d.buckets[eventName]
	if !ok {
		return
	}
	for i := range b.listeners {
		l := &b.listeners[i]
		if l.node == node && l.key == key && l.context == context {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// DispatchOptions configures a single Dispatch call.
type DispatchOptions struct {
	// Path is the sequence of ancestor nodes starting from the target; the
	// caller is responsible for capture/bubble ordering (spec §4.I).
	Path []host.NodeID
	// Bubbles, if false, restricts the walk to Path[0] only.
	Bubbles bool
	DetailPayload string
	DetailData    any
}

// Dispatch constructs a SyntheticEvent for eventName/target and walks
// opts.Path (or just its first element if !opts.Bubbles). At each node it
// sets CurrentTarget, then invokes every listener registered on that node
// for eventName in registration order; a once listener is removed after it
// fires; StopPropagation halts the walk right after the listener that called
// it, so later listeners on the same node and all later nodes are skipped.
// Returns the event's final DefaultPrevented flag.
func (d *Delegator) Dispatch(eventName string, target host.NodeID, opts DispatchOptions) bool {
	evt := &SyntheticEvent{
		EventType:     eventName,
		Target:        target,
		Bubbles:       opts.Bubbles,
		DetailPayload: opts.DetailPayload,
		DetailData:    opts.DetailData,
	}

	b, ok := d.buckets[eventName]
	if !ok || len(opts.Path) == 0 {
		return evt.DefaultPrevented
	}

	path := opts.Path
	if !opts.Bubbles {
		path = path[:1]
	}

	for _, node := range path {
		evt.CurrentTarget = node
		// Snapshot indices to fire so a once-removal mid-loop doesn't skip
		// or double-invoke a still-live neighbor.
		toFire := make([]int, 0, len(b.listeners))
		for i, l := range b.listeners {
			if l.node == node {
				toFire = append(toFire, i)
			}
		}
		stopped := false
		var onceKeys []listener
		for _, idx := range toFire {
			if idx >= len(b.listeners) {
				continue
			}
			l := b.listeners[idx]
			if l.node != node {
				continue
			}
			l.callback(evt)
			if l.once {
				onceKeys = append(onceKeys, l)
			}
			if evt.PropagationStopped {
				stopped = true
				break
			}
		}
		for _, l := range onceKeys {
			d.RemoveListener(l.node, eventName, l.key, l.context)
		}
		if stopped {
			break
		}
	}

	return evt.DefaultPrevented
}

// Reset tears down every bucket, forgetting all listeners and host
// registration state.
func (d *Delegator) Reset() {
	d.buckets = make(map[string]*eventBucket)
}
