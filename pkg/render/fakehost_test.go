package render_test

import "github.com/GhostKellz/ripple/pkg/host"

// fakeNode is one node in fakeHost's in-memory tree.
type fakeNode struct {
	kind     host.NodeType
	tag      string
	text     string
	comment  string
	attrs    map[string]string
	children []host.NodeID
	parent   host.NodeID
}

// fakeHost implements both host.MountHost and host.HydrateHost over a
// plain in-memory tree, so one fixture type serves both Mount and Hydrate
// tests without any real DOM. The Property 5 (Mount→Hydrate equivalence)
// test mounts into one fakeHost and hydrates a second one built by
// buildSSRTree, since Mount creates no marker comment nodes.
type fakeHost struct {
	nodes   map[host.NodeID]*fakeNode
	next    host.NodeID
	portals map[string]host.NodeID

	registeredEvents []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		nodes:   make(map[host.NodeID]*fakeNode),
		next:    1,
		portals: make(map[string]host.NodeID),
	}
}

func (f *fakeHost) alloc() host.NodeID {
	id := f.next
	f.next++
	return id
}

// NewRoot allocates a bare element node with no parent, suitable as a
// Mount/Hydrate entry point or a portal target.
func (f *fakeHost) NewRoot(tag string) host.NodeID {
	id := f.alloc()
	f.nodes[id] = &fakeNode{kind: host.NodeElement, tag: tag, attrs: map[string]string{}}
	return id
}

// RegisterPortalTarget creates a fresh root node and registers it as
// ResolvePortal(name)'s answer.
func (f *fakeHost) RegisterPortalTarget(name string) host.NodeID {
	id := f.NewRoot("portal-target")
	f.portals[name] = id
	return id
}

// CreateComment manually inserts a comment node, for hand-built hydration
// fixtures that don't go through Mount first.
func (f *fakeHost) CreateComment(text string) host.NodeID {
	id := f.alloc()
	f.nodes[id] = &fakeNode{kind: host.NodeComment, comment: text}
	return id
}

// --- host.MountHost ---

func (f *fakeHost) CreateElement(tag string) host.NodeID {
	id := f.alloc()
	f.nodes[id] = &fakeNode{kind: host.NodeElement, tag: tag, attrs: map[string]string{}}
	return id
}

func (f *fakeHost) CreateText(value string) host.NodeID {
	id := f.alloc()
	f.nodes[id] = &fakeNode{kind: host.NodeText, text: value}
	return id
}

func (f *fakeHost) AppendChild(parent, child host.NodeID) {
	f.nodes[parent].children = append(f.nodes[parent].children, child)
	f.nodes[child].parent = parent
}

func (f *fakeHost) SetAttribute(node host.NodeID, name, value string) {
	f.nodes[node].attrs[name] = value
}

func (f *fakeHost) SetText(node host.NodeID, value string) {
	f.nodes[node].text = value
}

func (f *fakeHost) RegisterEvent(name string) {
	f.registeredEvents = append(f.registeredEvents, name)
}

func (f *fakeHost) ResolvePortal(target string) host.NodeID {
	return f.portals[target]
}

// --- host.HydrateHost ---

func (f *fakeHost) FirstChild(node host.NodeID) (host.NodeID, bool) {
	n := f.nodes[node]
	if len(n.children) == 0 {
		return 0, false
	}
	return n.children[0], true
}

func (f *fakeHost) NextSibling(node host.NodeID) (host.NodeID, bool) {
	n := f.nodes[node]
	p, ok := f.nodes[n.parent]
	if !ok {
		return 0, false
	}
	for i, c := range p.children {
		if c == node {
			if i+1 < len(p.children) {
				return p.children[i+1], true
			}
			return 0, false
		}
	}
	return 0, false
}

func (f *fakeHost) NodeType(node host.NodeID) host.NodeType { return f.nodes[node].kind }

func (f *fakeHost) TagName(node host.NodeID) string { return f.nodes[node].tag }

func (f *fakeHost) TextContent(node host.NodeID) string { return f.nodes[node].text }

func (f *fakeHost) GetAttribute(node host.NodeID, name string) (string, bool) {
	v, ok := f.nodes[node].attrs[name]
	return v, ok
}

func (f *fakeHost) CommentText(node host.NodeID) string { return f.nodes[node].comment }
