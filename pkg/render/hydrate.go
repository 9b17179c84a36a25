package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GhostKellz/ripple/internal/hostsafe"
	"github.com/GhostKellz/ripple/pkg/host"
	"github.com/GhostKellz/ripple/pkg/rerr"
)

// hydrateFrame remembers one parent node's child cursor. started is false
// until the first FirstChild call; hasNext tracks whether next holds a
// valid sibling to resume from.
type hydrateFrame struct {
	node    host.NodeID
	next    host.NodeID
	hasNext bool
	started bool
}

// hydrator walks h's existing tree one structural child at a time,
// transparently skipping bookkeeping comment nodes except where a marker
// is explicitly expected (island/portal/suspense ops), per spec §4.M.
type hydrator struct {
	h      host.HydrateHost
	frames []*hydrateFrame
}

func (hy *hydrator) push(node host.NodeID) { hy.frames = append(hy.frames, &hydrateFrame{node: node}) }

func (hy *hydrator) pop() *hydrateFrame {
	f := hy.frames[len(hy.frames)-1]
	hy.frames = hy.frames[:len(hy.frames)-1]
	return f
}

func (hy *hydrator) top() *hydrateFrame { return hy.frames[len(hy.frames)-1] }

// advance moves the current frame's cursor to the next sibling (or the
// parent's first child, the first time it's called) without regard to
// node type.
func (hy *hydrator) advance() (host.NodeID, bool) {
	f := hy.top()
	var child host.NodeID
	var ok bool
	if !f.started {
		child, ok = hy.h.FirstChild(f.node)
		f.started = true
	} else if f.hasNext {
		child, ok = hy.h.NextSibling(f.next)
	}
	if !ok {
		f.hasNext = false
		return 0, false
	}
	f.next = child
	f.hasNext = true
	return child, true
}

// nextStructural advances past any comment nodes and returns the next
// element or text child, used by open/self/text/dynamic_text ops.
func (hy *hydrator) nextStructural() (host.NodeID, error) {
	for {
		child, ok := hy.advance()
		if !ok {
			return 0, rerr.New(rerr.MissingNode, "hydration ran out of children")
		}
		if hy.h.NodeType(child) == host.NodeComment {
			continue
		}
		return child, nil
	}
}

// nextMarker advances exactly one child and requires it to be a comment,
// used by island/portal/suspense ops, which expect the marker comment at
// the current cursor rather than skipping past it.
func (hy *hydrator) nextMarker() (host.NodeID, error) {
	child, ok := hy.advance()
	if !ok {
		return 0, rerr.New(rerr.MissingNode, "hydration ran out of children expecting a marker comment")
	}
	if hy.h.NodeType(child) != host.NodeComment {
		return 0, rerr.New(rerr.UnexpectedNode, "expected a marker comment node")
	}
	return child, nil
}

// Hydrate walks h's existing tree under parent (emitted by a prior mount
// or server render), matching program's ops against it and producing a
// MountResult with the real, already-existing node ids — unlike Mount, no
// nodes are created. Per spec §4.M, any structural mismatch is reported as
// HydrationMismatch/UnexpectedNode/MissingNode as appropriate.
func Hydrate(program *Program, h host.HydrateHost, parent host.NodeID) (*MountResult, error) {
	res := &MountResult{HydrationNodes: make([]host.NodeID, program.MaxHydrationID+1)}
	if err := hostsafe.Call("hydrate", func() error {
		return runHydrateOps(program, h, parent, res)
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func runHydrateOps(program *Program, h host.HydrateHost, parent host.NodeID, res *MountResult) error {
	hy := &hydrator{h: h}
	hy.push(parent)

	var islandStack []islandFrame
	var portalStack []portalFrame
	var suspenseStack []suspenseFrame

	for _, op := range program.Ops {
		switch op.Kind {
		case OpOpenElement, OpSelfElement:
			n, err := hy.nextStructural()
			if err != nil {
				return err
			}
			if h.NodeType(n) != host.NodeElement {
				return rerr.Newf(rerr.UnexpectedNode, "expected an element node", op.Tag)
			}
			if got := h.TagName(n); got != op.Tag {
				return rerr.Newf(rerr.HydrationMismatch, "tag mismatch", fmt.Sprintf("want %s got %s", op.Tag, got))
			}
			wantHid := strconv.FormatUint(uint64(op.HydrationID), 10)
			gotHid, ok := h.GetAttribute(n, hydrationIDAttr)
			if !ok {
				return rerr.Newf(rerr.HydrationMismatch, "missing data-hid attribute", op.Tag)
			}
			if gotHid != wantHid {
				return rerr.Newf(rerr.HydrationMismatch, "data-hid mismatch", fmt.Sprintf("want %s got %s", wantHid, gotHid))
			}
			res.HydrationNodes[op.HydrationID] = n
			if op.Kind == OpOpenElement {
				hy.push(n)
			}

		case OpCloseElement:
			if len(hy.frames) <= 1 {
				return rerr.New(rerr.StackUnderflow, "close_element with no matching open_element")
			}
			f := hy.pop()
			if h.NodeType(f.node) == host.NodeElement && h.TagName(f.node) != op.Tag {
				return rerr.Newf(rerr.HydrationMismatch, "close tag mismatch", op.Tag)
			}

		case OpText:
			if op.Literal == "" {
				continue
			}
			n, err := hy.nextStructural()
			if err != nil {
				return err
			}
			if h.NodeType(n) != host.NodeText {
				return rerr.Newf(rerr.UnexpectedNode, "expected a text node", op.Literal)
			}
			if got := h.TextContent(n); got != op.Literal {
				return rerr.Newf(rerr.HydrationMismatch, "text content mismatch", fmt.Sprintf("want %q got %q", op.Literal, got))
			}

		case OpDynamicText:
			n, err := hy.nextStructural()
			if err != nil {
				return err
			}
			if h.NodeType(n) != host.NodeText {
				return rerr.New(rerr.UnexpectedNode, "expected a dynamic text node")
			}
			res.DynamicNodes = append(res.DynamicNodes, n)

		case OpIslandStart:
			c, err := hy.nextMarker()
			if err != nil {
				return err
			}
			m := parseMarker(strings.TrimSpace(h.CommentText(c)))
			if m.kind != markerIslandStart || m.payload != op.Name {
				return rerr.Newf(rerr.HydrationMismatch, "island marker mismatch", op.Name)
			}
			islandStack = append(islandStack, islandFrame{name: op.Name, parent: hy.top().node, start: len(res.DynamicNodes)})

		case OpIslandEnd:
			c, err := hy.nextMarker()
			if err != nil {
				return err
			}
			m := parseMarker(strings.TrimSpace(h.CommentText(c)))
			if m.kind != markerIslandEnd {
				return rerr.New(rerr.HydrationMismatch, "expected /island marker")
			}
			if len(islandStack) == 0 {
				return rerr.New(rerr.InvalidMarkup, "island_end with no matching island_start")
			}
			f := islandStack[len(islandStack)-1]
			islandStack = islandStack[:len(islandStack)-1]
			res.Islands = append(res.Islands, IslandRecord{Name: f.name, Parent: f.parent, StartSlot: f.start, EndSlot: len(res.DynamicNodes)})

		case OpPortalStart:
			c, err := hy.nextMarker()
			if err != nil {
				return err
			}
			m := parseMarker(strings.TrimSpace(h.CommentText(c)))
			if m.kind != markerPortalStart || m.payload != op.Target {
				return rerr.Newf(rerr.HydrationMismatch, "portal marker mismatch", op.Target)
			}
			p := h.ResolvePortal(op.Target)
			if p == 0 {
				return rerr.Newf(rerr.MissingNode, "portal target not found", op.Target)
			}
			portalStack = append(portalStack, portalFrame{target: op.Target, node: p, start: len(res.DynamicNodes)})
			hy.push(p)

		case OpPortalEnd:
			if len(hy.frames) <= 1 {
				return rerr.New(rerr.StackUnderflow, "portal_end with no matching portal_start")
			}
			hy.pop()
			c, err := hy.nextMarker()
			if err != nil {
				return err
			}
			m := parseMarker(strings.TrimSpace(h.CommentText(c)))
			if m.kind != markerPortalEnd {
				return rerr.New(rerr.HydrationMismatch, "expected /portal marker")
			}
			if len(portalStack) == 0 {
				return rerr.New(rerr.InvalidMarkup, "portal_end with no matching portal_start")
			}
			f := portalStack[len(portalStack)-1]
			portalStack = portalStack[:len(portalStack)-1]
			res.Portals = append(res.Portals, PortalRecord{Target: f.target, Node: f.node, StartSlot: f.start, EndSlot: len(res.DynamicNodes)})

		case OpSuspenseStart:
			c, err := hy.nextMarker()
			if err != nil {
				return err
			}
			m := parseMarker(strings.TrimSpace(h.CommentText(c)))
			if m.kind != markerSuspenseStart || m.payload != op.Name {
				return rerr.Newf(rerr.HydrationMismatch, "suspense marker mismatch", op.Name)
			}
			suspenseStack = append(suspenseStack, suspenseFrame{name: op.Name, mainStart: len(res.DynamicNodes)})

		case OpSuspenseFallback:
			c, err := hy.nextMarker()
			if err != nil {
				return err
			}
			m := parseMarker(strings.TrimSpace(h.CommentText(c)))
			if m.kind != markerSuspenseFallback {
				return rerr.New(rerr.HydrationMismatch, "expected suspense:fallback marker")
			}
			if len(suspenseStack) == 0 {
				return rerr.New(rerr.InvalidMarkup, "suspense_fallback with no matching suspense_start")
			}
			f := &suspenseStack[len(suspenseStack)-1]
			f.mainEnd = len(res.DynamicNodes)
			f.fallbackStart = len(res.DynamicNodes)
			f.hasFallback = true

		case OpSuspenseEnd:
			c, err := hy.nextMarker()
			if err != nil {
				return err
			}
			m := parseMarker(strings.TrimSpace(h.CommentText(c)))
			if m.kind != markerSuspenseEnd {
				return rerr.New(rerr.HydrationMismatch, "expected /suspense marker")
			}
			if len(suspenseStack) == 0 {
				return rerr.New(rerr.InvalidMarkup, "suspense_end with no matching suspense_start")
			}
			f := suspenseStack[len(suspenseStack)-1]
			suspenseStack = suspenseStack[:len(suspenseStack)-1]
			mainEnd, fallbackStart, fallbackEnd := f.mainEnd, f.fallbackStart, len(res.DynamicNodes)
			if !f.hasFallback {
				mainEnd = len(res.DynamicNodes)
				fallbackStart = mainEnd
				fallbackEnd = mainEnd
			}
			res.Suspense = append(res.Suspense, SuspenseRecord{
				Name: f.name, MainStartSlot: f.mainStart, MainEndSlot: mainEnd,
				FallbackStartSlot: fallbackStart, FallbackEndSlot: fallbackEnd,
			})
		}
	}

	if len(hy.frames) != 1 {
		return rerr.New(rerr.InvalidMarkup, "unbalanced parent frame stack at end of hydration")
	}
	if len(islandStack) != 0 || len(portalStack) != 0 || len(suspenseStack) != 0 {
		return rerr.New(rerr.InvalidMarkup, "unbalanced island/portal/suspense stack at end of hydration")
	}

	return nil
}
