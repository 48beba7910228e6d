package protect

import "github.com/ngrouting/isisspf/topology"

// ComputeP2PLFA evaluates candidate as a loop-free alternate for S's
// traffic to dest, were the point-to-point link from S to protectedNeighbor
// to fail. strictDownstream enables Inequality 2 (LINK_PROTECTION_LFA_DOWNSTREAM);
// it is independent of Inequality 3, which is always evaluated. Returns
// NoLFA if Inequality 1 fails — a candidate that isn't even loop-free
// against S itself cannot qualify under any of the stronger categories.
//
// Grounded on rlfa.c's p2p_compute_lfa, including its literal quirk:
// passing Inequality 3 always promotes the result to
// LinkAndNodeProtectionLFA, even overwriting a LinkProtectionLFADownstream
// classification already assigned by Inequality 2.
func ComputeP2PLFA(dc *DistanceCache, s, protectedNeighbor, candidate, dest *topology.Node, strictDownstream bool) LFAType {
	distNS, ok1 := dc.dist(s, candidate)
	distSD, ok2 := dc.dist(s, dest)
	distND, ok3 := dc.dist(candidate, dest)
	if !ok1 || !ok2 || !ok3 {
		return NoLFA
	}

	// Inequality 1: candidate does not loop back through S to reach dest.
	if distND >= distNS+distSD {
		return NoLFA
	}
	lfaType := LinkProtectionLFA

	if strictDownstream {
		if distND < distSD {
			lfaType = LinkProtectionLFADownstream
		}
	}

	distNE, ok4 := dc.dist(candidate, protectedNeighbor)
	distED, ok5 := dc.dist(protectedNeighbor, dest)
	if ok4 && ok5 && distND < distNE+distED {
		// Inequality 3: candidate's path to dest does not transit the
		// protected neighbor either, so it survives a node failure too.
		lfaType = LinkAndNodeProtectionLFA
	}

	return lfaType
}

// ComputeBroadcastLFA evaluates candidate (a router on the same LAN segment
// as S, reached via the pseudonode pn) as a backup for S's traffic to dest
// were the whole broadcast segment to fail. Inequality 1 must hold, or the
// result is NoLFA. Inequality 4 substitutes pn for the protected neighbor
// in Inequality 3. When it holds, the result is BROADCAST_LINK (onSegment)
// or BROADCAST_LINK_AND_NODE (not onSegment), each promoted to its
// Downstream variant when strictDownstream is set and Inequality 2 holds.
// When it fails, the result is NoLFA (onSegment) or BROADCAST_ONLY_NODE
// (not onSegment); Inequalities 2 and 3 are not evaluated on that branch.
// onSegment says whether candidate is itself attached to the protected
// segment — rlfa.c's
// is_broadcast_member_node check. That predicate's body was not present in
// the retrieved reference source; onSegment here is supplied by the
// caller, computed as "candidate has a physical interface directly onto
// pn" (see DESIGN.md).
func ComputeBroadcastLFA(dc *DistanceCache, s, pn, candidate, dest *topology.Node, strictDownstream, onSegment bool) LFAType {
	distNS, ok1 := dc.dist(s, candidate)
	distSD, ok2 := dc.dist(s, dest)
	distND, ok3 := dc.dist(candidate, dest)
	if !ok1 || !ok2 || !ok3 {
		return NoLFA
	}
	if distND >= distNS+distSD {
		return NoLFA
	}

	distNP, ok4 := dc.dist(candidate, pn)
	distPD, ok5 := dc.dist(pn, dest)
	ineq4 := ok4 && ok5 && distND < distNP+distPD

	if ineq4 {
		// Inequality 2, re-derived per RFC 5286 §3 (spec.md §9 Open
		// Questions): evaluated once, against this post-Inequality-4
		// candidate, exactly as in the point-to-point branch.
		downstream := strictDownstream && distND < distSD
		if onSegment {
			if downstream {
				return BroadcastLinkProtectionLFADownstream
			}

			return BroadcastLinkProtectionLFA
		}
		if downstream {
			return BroadcastLinkAndNodeProtectionLFADownstream
		}

		return BroadcastLinkAndNodeProtectionLFA
	}

	// Inequality 4 failed: candidate is not safe against the whole segment
	// failing, but may still be safe against a single member node failing,
	// provided candidate is not itself that member.
	if onSegment {
		return NoLFA
	}

	return BroadcastOnlyNodeProtectionLFA
}
