// Package protect's RLFA layer turns PQ-space computation into ordered
// PQCandidate values (an RLFAResult), for when no direct (non-remote) LFA
// covers a destination.
package protect

import "github.com/ngrouting/isisspf/topology"

// ProtectedLink bundles the interface being protected with the data its
// LFA/RLFA computations repeatedly need: the root router S, its protected
// neighbor E, and the pseudonode on the wire if this is a broadcast
// segment (nil for point-to-point).
type ProtectedLink struct {
	Root              *topology.Node
	Edge              *topology.Edge // S's own Edge anchored toward the protected neighbor
	ProtectedNeighbor *topology.Node
	Pseudonode        *topology.Node // non-nil for a broadcast interface
}

// IsEligible reports whether this link may be protected at all: an
// interface configured with NoEligibleBackup opts out entirely.
func (pl ProtectedLink) IsEligible() bool {
	return pl.Edge.From.Flags&topology.NoEligibleBackup == 0
}

// FindLFA evaluates every other physical neighbor of the root as a direct
// LFA candidate for dest and returns the first one that qualifies (any
// LFAType other than NoLFA), preferring candidates in PhysicalNeighbors
// insertion order — deterministic for a given build sequence. Returns
// false if none qualify, signaling the caller to fall back to RLFA.
func FindLFA(dc *DistanceCache, topo *topology.Topology, level topology.Level, pl ProtectedLink, dest *topology.Node, strictDownstream bool) (LFACandidate, bool) {
	if pl.Pseudonode != nil {
		return findBroadcastLFA(dc, topo, level, pl, dest, strictDownstream)
	}

	for _, ne := range topo.PhysicalNeighbors(pl.Root, level) {
		if !ne.Reachable || ne.Neighbor == pl.ProtectedNeighbor {
			continue
		}
		if ne.Edge.To.Flags&topology.NoEligibleBackup != 0 {
			// spec.md §4.7: "An interface flagged NO_ELIGIBLE_BACKUP is
			// skipped as a candidate N." Edge.To is the candidate's own
			// EdgeEnd (owned by ne.Neighbor, per topology.CreateEdge),
			// matching SetNoEligibleBackup's per-node-owned-interface
			// semantics — not Edge.From, which is owned by the node we
			// are iterating neighbors of (S or the pseudonode).
			continue
		}
		lfaType := ComputeP2PLFA(dc, pl.Root, pl.ProtectedNeighbor, ne.Neighbor, dest, strictDownstream)
		if lfaType != NoLFA {
			return LFACandidate{Neighbor: ne.Neighbor, OIF: ne.Edge.From.Name, Destination: dest, Type: lfaType}, true
		}
	}

	return LFACandidate{}, false
}

// findBroadcastLFA evaluates every OTHER router attached to the protected
// segment's pseudonode as a candidate backup next-hop for dest, all
// reached over the same local interface pl.Edge.From (S's single physical
// link onto the LAN) — S itself has no other physical neighbor to pick
// from; the candidates are S's LAN-mates.
func findBroadcastLFA(dc *DistanceCache, topo *topology.Topology, level topology.Level, pl ProtectedLink, dest *topology.Node, strictDownstream bool) (LFACandidate, bool) {
	members := segmentMembers(topo, level, pl.Pseudonode)

	for _, ne := range topo.PhysicalNeighbors(pl.Pseudonode, level) {
		if !ne.Reachable || ne.Neighbor == pl.Root {
			continue
		}
		if ne.Edge.To.Flags&topology.NoEligibleBackup != 0 {
			// Same exclusion as FindLFA's p2p loop, against the LAN-mate's
			// own interface.
			continue
		}
		onSegment := members[ne.Neighbor.Name]
		lfaType := ComputeBroadcastLFA(dc, pl.Root, pl.Pseudonode, ne.Neighbor, dest, strictDownstream, onSegment)
		if lfaType != NoLFA {
			return LFACandidate{Neighbor: ne.Neighbor, OIF: pl.Edge.From.Name, Destination: dest, Type: lfaType}, true
		}
	}

	return LFACandidate{}, false
}

// segmentMembers returns, by name, every real node with a physical
// interface directly onto pn — this stack's reading of
// is_broadcast_member_node, whose body was not recoverable from the
// retrieved reference source (see DESIGN.md).
func segmentMembers(topo *topology.Topology, level topology.Level, pn *topology.Node) map[string]bool {
	out := make(map[string]bool)
	for _, ne := range topo.PhysicalNeighbors(pn, level) {
		if ne.Reachable {
			out[ne.Neighbor.Name] = true
		}
	}

	return out
}

// ComputeRLFA finds, for dest, every PQ node: present in root's extended
// P-space and in dest's Q-space, with the protected link/segment pruned
// from both. Called only once a direct LFA search (FindLFA) has failed for
// dest.
func ComputeRLFA(dc *DistanceCache, topo *topology.Topology, level topology.Level, pl ProtectedLink, dest *topology.Node) RLFAResult {
	pSpace := ExtendedPSpace(dc, topo, pl.Root, level, pl.Edge)

	return IntersectExtendedPAndQSpace(dc, topo, pl.Root, dest, pSpace, pl.Edge)
}
