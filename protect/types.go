package protect

import "github.com/ngrouting/isisspf/topology"

// LFAType classifies the protection a backup next-hop provides, restored
// from rlfa.c's lfa_type enumeration.
type LFAType uint8

const (
	NoLFA LFAType = iota

	// LinkProtectionLFA satisfies Inequality 1 only: the backup avoids the
	// protected link but may loop back through the failed neighbor.
	LinkProtectionLFA
	// LinkProtectionLFADownstream additionally satisfies Inequality 2: the
	// neighbor is strictly closer to the destination than S is, ruling out
	// transient micro-loops during independent convergence.
	LinkProtectionLFADownstream
	// LinkAndNodeProtectionLFA additionally satisfies Inequality 3: the
	// backup avoids the protected neighbor entirely, so it survives a node
	// failure, not just a link failure.
	LinkAndNodeProtectionLFA

	// BroadcastLinkProtectionLFA is link-protection LFA found on a
	// broadcast interface (Inequality 4 against the pseudonode).
	BroadcastLinkProtectionLFA
	// BroadcastLinkProtectionLFADownstream additionally satisfies
	// Inequality 2 evaluated against the pseudonode, the broadcast
	// analogue of LinkProtectionLFADownstream.
	BroadcastLinkProtectionLFADownstream
	// BroadcastOnlyNodeProtectionLFA covers the case where Inequality 4
	// fails (no safety against the PN as a whole) but the candidate is not
	// itself attached to the protected segment, so it still survives a
	// single node failure elsewhere on the LAN.
	BroadcastOnlyNodeProtectionLFA
	// BroadcastLinkAndNodeProtectionLFA is the broadcast analogue of
	// LinkAndNodeProtectionLFA: Inequality 4 holds and the candidate is
	// not a member of the protected segment.
	BroadcastLinkAndNodeProtectionLFA
	// BroadcastLinkAndNodeProtectionLFADownstream is
	// BroadcastLinkAndNodeProtectionLFA additionally satisfying Inequality
	// 2 against the pseudonode.
	BroadcastLinkAndNodeProtectionLFADownstream
)

func (t LFAType) String() string {
	switch t {
	case LinkProtectionLFA:
		return "LINK_PROTECTION_LFA"
	case LinkProtectionLFADownstream:
		return "LINK_PROTECTION_LFA_DOWNSTREAM"
	case LinkAndNodeProtectionLFA:
		return "LINK_AND_NODE_PROTECTION_LFA"
	case BroadcastLinkProtectionLFA:
		return "BROADCAST_LINK_PROTECTION_LFA"
	case BroadcastLinkProtectionLFADownstream:
		return "BROADCAST_LINK_PROTECTION_LFA_DOWNSTREAM"
	case BroadcastOnlyNodeProtectionLFA:
		return "BROADCAST_ONLY_NODE_PROTECTION_LFA"
	case BroadcastLinkAndNodeProtectionLFA:
		return "BROADCAST_LINK_AND_NODE_PROTECTION_LFA"
	case BroadcastLinkAndNodeProtectionLFADownstream:
		return "BROADCAST_LINK_AND_NODE_PROTECTION_LFA_DOWNSTREAM"
	default:
		return "NO_LFA"
	}
}

// LFACandidate is one backup next-hop found for a (protected interface,
// destination) pair.
type LFACandidate struct {
	Neighbor    *topology.Node // the backup next-hop (S's other neighbor, or a PQ node for RLFA)
	OIF         string         // S's interface toward Neighbor
	Destination *topology.Node
	Type        LFAType

	// Tunnel, for an RLFA candidate, is the repair-point PQ node the
	// backup path tunnels through. Nil for a direct (non-remote) LFA.
	Tunnel *topology.Node
}

// PQCandidate is one node found in both the extended P-space of the
// protected interface's root and the Q-space of a destination — a
// candidate RLFA repair-tunnel endpoint.
type PQCandidate struct {
	Node       *topology.Node
	DistToDest int64 // d(Q, D) — ascending order is this package's selection rule
}

// RLFAResult is the outcome of an RLFA computation for one destination:
// every PQ node found, ordered nearest-to-destination first, per this
// stack's own tie-break convention (no single "best" numeric score was
// recovered from the reference source — see DESIGN.md).
type RLFAResult struct {
	Destination *topology.Node
	Candidates  []PQCandidate
}
