package render

import "github.com/GhostKellz/ripple/pkg/host"

// IslandRecord describes one island boundary's slot range within a
// MountResult's DynamicNodes, per spec §3.
type IslandRecord struct {
	Name      string
	Parent    host.NodeID
	StartSlot int
	EndSlot   int
}

// PortalRecord describes one portal's resolved target node and slot range.
type PortalRecord struct {
	Target    string
	Node      host.NodeID
	StartSlot int
	EndSlot   int
}

// SuspenseRecord describes one suspense boundary's main/fallback slot
// ranges. When the program had no suspense_fallback op inside the
// boundary, MainEndSlot == FallbackStartSlot == FallbackEndSlot (spec §4.L).
type SuspenseRecord struct {
	Name              string
	MainStartSlot     int
	MainEndSlot       int
	FallbackStartSlot int
	FallbackEndSlot   int
}

// MountResult is the shared output shape of both Mount and Hydrate, per
// spec §3. DynamicNodes is indexed by dynamic_text slot order;
// HydrationNodes is indexed by hydration id (index 0 is always unused).
type MountResult struct {
	DynamicNodes   []host.NodeID
	HydrationNodes []host.NodeID
	Islands        []IslandRecord
	Portals        []PortalRecord
	Suspense       []SuspenseRecord
}

// NodeForHydrationID returns the node mounted (or matched, during
// hydration) for hid, or ok=false if hid is zero or out of range.
func (r *MountResult) NodeForHydrationID(hid uint32) (node host.NodeID, ok bool) {
	if hid == 0 || int(hid) >= len(r.HydrationNodes) {
		return 0, false
	}
	n := r.HydrationNodes[hid]
	if n == 0 {
		return 0, false
	}
	return n, true
}
