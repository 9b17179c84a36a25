package render

import (
	"fmt"
	"strconv"

	"github.com/GhostKellz/ripple/internal/hostsafe"
	"github.com/GhostKellz/ripple/pkg/host"
	"github.com/GhostKellz/ripple/pkg/rerr"
)

const hydrationIDAttr = "data-hid"

type islandFrame struct {
	name   string
	parent host.NodeID
	start  int
}

type portalFrame struct {
	target     string
	node       host.NodeID
	prevParent host.NodeID
	start      int
}

type suspenseFrame struct {
	name          string
	mainStart     int
	mainEnd       int
	fallbackStart int
	hasFallback   bool
}

func dynamicTextCount(program *Program) int {
	n := 0
	for _, op := range program.Ops {
		if op.Kind == OpDynamicText {
			n++
		}
	}
	return n
}

// Mount executes program against h, creating a fresh host tree rooted at
// parent's children, per spec §4.L. len(values) must equal the number of
// dynamic_text ops in program. Every call into h is guarded by hostsafe so
// a panicking host implementation surfaces as AllocationFailed instead of
// unwinding across the callback boundary (SPEC_FULL.md Design Notes).
func Mount(program *Program, h host.MountHost, parent host.NodeID, values []string) (*MountResult, error) {
	if want := dynamicTextCount(program); want != len(values) {
		return nil, rerr.Newf(rerr.MismatchedValues, "mismatched dynamic value count", fmt.Sprintf("want %d got %d", want, len(values)))
	}

	res := &MountResult{HydrationNodes: make([]host.NodeID, program.MaxHydrationID+1)}
	if err := hostsafe.Call("mount", func() error {
		return runMountOps(program, h, parent, values, res)
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func runMountOps(program *Program, h host.MountHost, parent host.NodeID, values []string, res *MountResult) error {
	currentParent := parent

	var parentStack []host.NodeID
	var islandStack []islandFrame
	var portalStack []portalFrame
	var suspenseStack []suspenseFrame

	for _, op := range program.Ops {
		switch op.Kind {
		case OpOpenElement:
			n := h.CreateElement(op.Tag)
			h.AppendChild(currentParent, n)
			h.SetAttribute(n, hydrationIDAttr, strconv.FormatUint(uint64(op.HydrationID), 10))
			res.HydrationNodes[op.HydrationID] = n
			parentStack = append(parentStack, currentParent)
			currentParent = n

		case OpCloseElement:
			if len(parentStack) == 0 {
				return rerr.New(rerr.StackUnderflow, "close_element with no matching open_element")
			}
			currentParent = parentStack[len(parentStack)-1]
			parentStack = parentStack[:len(parentStack)-1]

		case OpSelfElement:
			n := h.CreateElement(op.Tag)
			h.AppendChild(currentParent, n)
			h.SetAttribute(n, hydrationIDAttr, strconv.FormatUint(uint64(op.HydrationID), 10))
			res.HydrationNodes[op.HydrationID] = n

		case OpText:
			if op.Literal != "" {
				n := h.CreateText(op.Literal)
				h.AppendChild(currentParent, n)
			}

		case OpDynamicText:
			n := h.CreateText(values[op.SlotIndex])
			h.AppendChild(currentParent, n)
			res.DynamicNodes = append(res.DynamicNodes, n)

		case OpIslandStart:
			islandStack = append(islandStack, islandFrame{name: op.Name, parent: currentParent, start: len(res.DynamicNodes)})

		case OpIslandEnd:
			if len(islandStack) == 0 {
				return rerr.New(rerr.InvalidMarkup, "island_end with no matching island_start")
			}
			f := islandStack[len(islandStack)-1]
			islandStack = islandStack[:len(islandStack)-1]
			res.Islands = append(res.Islands, IslandRecord{Name: f.name, Parent: f.parent, StartSlot: f.start, EndSlot: len(res.DynamicNodes)})

		case OpPortalStart:
			p := h.ResolvePortal(op.Target)
			if p == 0 {
				return rerr.Newf(rerr.MissingNode, "portal target not found", op.Target)
			}
			portalStack = append(portalStack, portalFrame{target: op.Target, node: p, prevParent: currentParent, start: len(res.DynamicNodes)})
			currentParent = p

		case OpPortalEnd:
			if len(portalStack) == 0 {
				return rerr.New(rerr.InvalidMarkup, "portal_end with no matching portal_start")
			}
			f := portalStack[len(portalStack)-1]
			portalStack = portalStack[:len(portalStack)-1]
			currentParent = f.prevParent
			res.Portals = append(res.Portals, PortalRecord{Target: f.target, Node: f.node, StartSlot: f.start, EndSlot: len(res.DynamicNodes)})

		case OpSuspenseStart:
			suspenseStack = append(suspenseStack, suspenseFrame{name: op.Name, mainStart: len(res.DynamicNodes)})

		case OpSuspenseFallback:
			if len(suspenseStack) == 0 {
				return rerr.New(rerr.InvalidMarkup, "suspense_fallback with no matching suspense_start")
			}
			f := &suspenseStack[len(suspenseStack)-1]
			f.mainEnd = len(res.DynamicNodes)
			f.fallbackStart = len(res.DynamicNodes)
			f.hasFallback = true

		case OpSuspenseEnd:
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

	if len(parentStack) != 0 || len(islandStack) != 0 || len(portalStack) != 0 || len(suspenseStack) != 0 {
		return rerr.New(rerr.InvalidMarkup, "unbalanced frame stack(s) at end of mount")
	}

	return nil
}
