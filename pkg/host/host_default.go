//go:build !wasm

package host

import (
	"fmt"
	"os"
)

// StderrMountHost is the off-WASM default MountHost: it prints every call
// to stderr and hands out monotonically increasing fake node ids, so a
// host-driving test or CLI demo doesn't need a real DOM to exercise the
// mount interpreter end to end.
type StderrMountHost struct {
	next NodeID
}

// NewStderrMountHost constructs a StderrMountHost starting node ids at 1.
func NewStderrMountHost() *StderrMountHost {
	return &StderrMountHost{next: 1}
}

func (h *StderrMountHost) allocID() NodeID {
	id := h.next
	h.next++
	return id
}

func (h *StderrMountHost) CreateElement(tag string) NodeID {
	id := h.allocID()
	fmt.Fprintf(os.Stderr, "ripple: create_element(%q) -> %d\n", tag, id)
	return id
}

func (h *StderrMountHost) CreateText(value string) NodeID {
	id := h.allocID()
	fmt.Fprintf(os.Stderr, "ripple: create_text(%q) -> %d\n", value, id)
	return id
}

func (h *StderrMountHost) AppendChild(parent, child NodeID) {
	fmt.Fprintf(os.Stderr, "ripple: append_child(%d, %d)\n", parent, child)
}

func (h *StderrMountHost) SetAttribute(node NodeID, name, value string) {
	fmt.Fprintf(os.Stderr, "ripple: set_attribute(%d, %q, %q)\n", node, name, value)
}

func (h *StderrMountHost) SetText(node NodeID, value string) {
	fmt.Fprintf(os.Stderr, "ripple: set_text(%d, %q)\n", node, value)
}

func (h *StderrMountHost) RegisterEvent(name string) {
	fmt.Fprintf(os.Stderr, "ripple: register_event(%q)\n", name)
}

func (h *StderrMountHost) ResolvePortal(target string) NodeID {
	fmt.Fprintf(os.Stderr, "ripple: resolve_portal(%q) -> 0 (no host attached)\n", target)
	return 0
}

// PanicHydrateHost is the off-WASM default HydrateHost: there is no SSR
// tree to walk without a real host attached, so every call panics. This
// mirrors spec §4.H ("off-WASM... panic (hydration side)") — hydration
// makes no sense against a host that cannot enumerate existing nodes.
type PanicHydrateHost struct{}

func (PanicHydrateHost) FirstChild(NodeID) (NodeID, bool) {
	panic("ripple: PanicHydrateHost.FirstChild: no host attached")
}

func (PanicHydrateHost) NextSibling(NodeID) (NodeID, bool) {
	panic("ripple: PanicHydrateHost.NextSibling: no host attached")
}

func (PanicHydrateHost) NodeType(NodeID) NodeType {
	panic("ripple: PanicHydrateHost.NodeType: no host attached")
}

func (PanicHydrateHost) TagName(NodeID) string {
	panic("ripple: PanicHydrateHost.TagName: no host attached")
}

func (PanicHydrateHost) TextContent(NodeID) string {
	panic("ripple: PanicHydrateHost.TextContent: no host attached")
}

func (PanicHydrateHost) GetAttribute(NodeID, string) (string, bool) {
	panic("ripple: PanicHydrateHost.GetAttribute: no host attached")
}

func (PanicHydrateHost) CommentText(NodeID) string {
	panic("ripple: PanicHydrateHost.CommentText: no host attached")
}

func (PanicHydrateHost) ResolvePortal(string) NodeID {
	panic("ripple: PanicHydrateHost.ResolvePortal: no host attached")
}
