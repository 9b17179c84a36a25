//go:build wasm

package host

import "unsafe"

// WasmHydrateHost reads the host tree the server emitted, through the
// hydration half of the same ripple_dom_* import family. go:wasmimport
// has no valid lowering for a string *result* — a host function cannot
// return a Go string the way host_wasm.go's mount side passes one out via
// (ptr,len) — so every read here uses the same out-param convention in
// reverse: Go owns a fixed scratch buffer in its own linear memory, passes
// the host its (ptr,cap), the host writes the value into it and returns
// the written length, and Go copies that many bytes back out as a string.
type WasmHydrateHost struct{}

// NewWasmHydrateHost returns the WASM-target HydrateHost.
func NewWasmHydrateHost() *WasmHydrateHost { return &WasmHydrateHost{} }

// wasmStringBufCap bounds a single tag name / text run / attribute value /
// comment body read back from the host in one call. A Runtime is
// single-writer (see pkg/reactive doc.go) and a WASM module instance has
// exactly one real thread, so one shared buffer is safe to reuse across
// calls.
const wasmStringBufCap = 4096

var wasmStringBuf [wasmStringBufCap]byte

func wasmStringBufPtr() uint32 {
	return uint32(uintptr(unsafe.Pointer(&wasmStringBuf[0])))
}

// readWasmString copies n bytes (capped to the scratch buffer's capacity)
// out of wasmStringBuf into a fresh Go string, after a host import has
// just written into it.
func readWasmString(n uint32) string {
	if n == 0 {
		return ""
	}
	if int(n) > wasmStringBufCap {
		n = wasmStringBufCap
	}
	return string(wasmStringBuf[:n])
}

//go:wasmimport env ripple_dom_first_child
func wasmFirstChild(node uint32) (child uint32, ok uint32)

//go:wasmimport env ripple_dom_next_sibling
func wasmNextSibling(node uint32) (sibling uint32, ok uint32)

//go:wasmimport env ripple_dom_node_type
func wasmNodeType(node uint32) uint32

//go:wasmimport env ripple_dom_tag_name
func wasmTagName(node uint32, bufPtr, bufCap uint32) (n uint32)

//go:wasmimport env ripple_dom_text_content
func wasmTextContent(node uint32, bufPtr, bufCap uint32) (n uint32)

//go:wasmimport env ripple_dom_get_attribute
func wasmGetAttribute(node uint32, namePtr, nameLen, bufPtr, bufCap uint32) (n uint32, ok uint32)

//go:wasmimport env ripple_dom_comment_text
func wasmCommentText(node uint32, bufPtr, bufCap uint32) (n uint32)

func (WasmHydrateHost) FirstChild(node NodeID) (NodeID, bool) {
	child, ok := wasmFirstChild(uint32(node))
	return NodeID(child), ok != 0
}

func (WasmHydrateHost) NextSibling(node NodeID) (NodeID, bool) {
	sibling, ok := wasmNextSibling(uint32(node))
	return NodeID(sibling), ok != 0
}

func (WasmHydrateHost) NodeType(node NodeID) NodeType {
	switch wasmNodeType(uint32(node)) {
	case 0:
		return NodeElement
	case 1:
		return NodeText
	case 2:
		return NodeComment
	default:
		return NodeOther
	}
}

func (WasmHydrateHost) TagName(node NodeID) string {
	n := wasmTagName(uint32(node), wasmStringBufPtr(), wasmStringBufCap)
	return readWasmString(n)
}

func (WasmHydrateHost) TextContent(node NodeID) string {
	n := wasmTextContent(uint32(node), wasmStringBufPtr(), wasmStringBufCap)
	return readWasmString(n)
}

func (WasmHydrateHost) GetAttribute(node NodeID, name string) (string, bool) {
	p, l := strPtr(name)
	n, ok := wasmGetAttribute(uint32(node), p, l, wasmStringBufPtr(), wasmStringBufCap)
	if ok == 0 {
		return "", false
	}
	return readWasmString(n), true
}

func (WasmHydrateHost) CommentText(node NodeID) string {
	n := wasmCommentText(uint32(node), wasmStringBufPtr(), wasmStringBufCap)
	return readWasmString(n)
}

func (WasmHydrateHost) ResolvePortal(target string) NodeID {
	p, l := strPtr(target)
	return NodeID(wasmResolvePortal(p, l))
}
