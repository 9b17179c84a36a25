// Package host defines the narrow callback tables (§4.H) through which the
// render engine manipulates or reads a host tree. The core never owns the
// host: mounting calls MountHost, hydration calls HydrateHost, and neither
// interface assumes anything about what sits on the other side (a real
// DOM, a WASM host import shim, or a test double).
package host

// NodeID is an opaque host node handle. Zero is reserved: resolvePortal
// uses it to mean "not found", and a zero-valued hydration_nodes/
// dynamic_nodes slot means "unused" per spec §3.
type NodeID uint32

// NodeType classifies a node for the hydration reader side.
type NodeType int

const (
	NodeElement NodeType = iota
	NodeText
	NodeComment
	NodeOther
)

func (t NodeType) String() string {
	switch t {
	case NodeElement:
		return "element"
	case NodeText:
		return "text"
	case NodeComment:
		return "comment"
	default:
		return "other"
	}
}

// MountHost is the callback table the mount interpreter drives to build a
// fresh host tree. Implementations must not block — per spec §5 the core
// is single-threaded cooperative and no host call may suspend the caller.
type MountHost interface {
	CreateElement(tag string) NodeID
	CreateText(value string) NodeID
	AppendChild(parent, child NodeID)
	SetAttribute(node NodeID, name, value string)
	SetText(node NodeID, value string)
	// RegisterEvent is called at most once per distinct event name the
	// runtime wants delegated to the host (see pkg/event).
	RegisterEvent(name string)
	// ResolvePortal returns the node a portal target resolves to, or the
	// zero NodeID if the target does not exist.
	ResolvePortal(target string) NodeID
}

// HydrateHost is the callback table the hydrate interpreter drives to walk
// and verify an existing host tree emitted by a prior server render. It is
// a separate table from MountHost because hydration never creates nodes —
// it only reads structure.
type HydrateHost interface {
	FirstChild(node NodeID) (NodeID, bool)
	NextSibling(node NodeID) (NodeID, bool)
	NodeType(node NodeID) NodeType
	// TagName is only valid when NodeType(node) == NodeElement.
	TagName(node NodeID) string
	// TextContent is only valid when NodeType(node) == NodeText.
	TextContent(node NodeID) string
	// GetAttribute is only valid when NodeType(node) == NodeElement.
	GetAttribute(node NodeID, name string) (string, bool)
	// CommentText is only valid when NodeType(node) == NodeComment.
	CommentText(node NodeID) string
	ResolvePortal(target string) NodeID
}
