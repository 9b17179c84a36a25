//go:build wasm

package host

import "unsafe"

// WasmMountHost is the WASM-target default MountHost: each method marshals
// its string arguments to a (pointer, length) pair — per spec §6, "the
// runtime does not assume null-termination" — and calls the corresponding
// ripple_dom_* host import. The embedder re-exports these six names (plus
// register_event, an obvious seventh in the same family) from its own
// WASM host environment.
type WasmMountHost struct{}

// NewWasmMountHost returns the WASM-target MountHost. There is exactly one
// host environment per module instance, so this carries no state.
func NewWasmMountHost() *WasmMountHost { return &WasmMountHost{} }

func strPtr(s string) (uint32, uint32) {
	if len(s) == 0 {
		return 0, 0
	}
	return uint32(uintptr(unsafe.Pointer(unsafe.StringData(s)))), uint32(len(s))
}

//go:wasmimport env ripple_dom_create_element
func wasmCreateElement(tagPtr, tagLen uint32) uint32

//go:wasmimport env ripple_dom_create_text
func wasmCreateText(valPtr, valLen uint32) uint32

//go:wasmimport env ripple_dom_append_child
func wasmAppendChild(parent, child uint32)

//go:wasmimport env ripple_dom_set_attribute
func wasmSetAttribute(node uint32, namePtr, nameLen, valPtr, valLen uint32)

//go:wasmimport env ripple_dom_set_text
func wasmSetText(node uint32, valPtr, valLen uint32)

//go:wasmimport env ripple_dom_register_event
func wasmRegisterEvent(namePtr, nameLen uint32)

//go:wasmimport env ripple_dom_resolve_portal
func wasmResolvePortal(targetPtr, targetLen uint32) uint32

func (WasmMountHost) CreateElement(tag string) NodeID {
	p, l := strPtr(tag)
	return NodeID(wasmCreateElement(p, l))
}

func (WasmMountHost) CreateText(value string) NodeID {
	p, l := strPtr(value)
	return NodeID(wasmCreateText(p, l))
}

func (WasmMountHost) AppendChild(parent, child NodeID) {
	wasmAppendChild(uint32(parent), uint32(child))
}

func (WasmMountHost) SetAttribute(node NodeID, name, value string) {
	np, nl := strPtr(name)
	vp, vl := strPtr(value)
	wasmSetAttribute(uint32(node), np, nl, vp, vl)
}

func (WasmMountHost) SetText(node NodeID, value string) {
	p, l := strPtr(value)
	wasmSetText(uint32(node), p, l)
}

func (WasmMountHost) RegisterEvent(name string) {
	p, l := strPtr(name)
	wasmRegisterEvent(p, l)
}

func (WasmMountHost) ResolvePortal(target string) NodeID {
	p, l := strPtr(target)
	return NodeID(wasmResolvePortal(p, l))
}
