package protect

import "github.com/ngrouting/isisspf/topology"

// PSpace returns the set of nodes (by name) whose shortest path from root,
// in the unmodified physical topology, does not require protectedEdge: the
// distance computed with protectedEdge pruned equals the original
// distance. Grounded on rlfa.c's compute_p_space, restored here as a
// distance-comparison test rather than a literal SPF-tree walk, since
// package spf's predecessor DAG is keyed to logical (PN-transparent)
// neighbors and P-space must reason about the physical link being pruned.
func PSpace(dc *DistanceCache, root *topology.Node, protectedEdge *topology.Edge) map[string]bool {
	original := dc.forward(root, nil)
	pruned := dc.forward(root, protectedEdge)

	out := make(map[string]bool, len(pruned))
	for name, d := range pruned {
		if orig, ok := original[name]; ok && d == orig {
			out[name] = true
		}
	}

	return out
}

// ExtendedPSpace returns PSpace(root) unioned with PSpace(N) for every
// other physical neighbor N of root (excluding the protected neighbor
// itself), each computed with the same protected edge pruned — rlfa.c's
// compute_extended_p_space. A node reachable only via one of S's other
// neighbors, without crossing the protected link, still makes a safe
// repair-tunnel endpoint.
func ExtendedPSpace(dc *DistanceCache, topo *topology.Topology, root *topology.Node, level topology.Level, protectedEdge *topology.Edge) map[string]bool {
	out := PSpace(dc, root, protectedEdge)

	protectedNeighborName := protectedEdge.To.Owner.Name
	for _, ne := range topo.PhysicalNeighbors(root, level) {
		if !ne.Reachable || ne.Neighbor.Name == protectedNeighborName {
			continue
		}
		for name := range PSpace(dc, ne.Neighbor, protectedEdge) {
			out[name] = true
		}
	}

	return out
}

// QSpace returns the set of nodes (by name) that can reach dest, in the
// unmodified physical topology, without protectedEdge: the reverse-SPF
// distance to dest with protectedEdge pruned equals the unpruned reverse
// distance. Grounded on rlfa.c's compute_q_space, which runs its SPF on a
// metric-reversed copy of the topology; this does the equivalent by
// computing distances on the transposed graph instead of mutating metrics.
func QSpace(dc *DistanceCache, dest *topology.Node, protectedEdge *topology.Edge) map[string]bool {
	original := dc.backward(dest, nil)
	pruned := dc.backward(dest, protectedEdge)

	out := make(map[string]bool, len(pruned))
	for name, d := range pruned {
		if orig, ok := original[name]; ok && d == orig {
			out[name] = true
		}
	}

	return out
}

// IntersectExtendedPAndQSpace returns, for destination dest, every node
// present in both pSpace and QSpace(dest), excluding root and dest
// themselves, ordered by ascending distance-to-dest — rlfa.c's
// Intersect_Extended_P_and_Q_Space plus this stack's own ordering choice
// (see DESIGN.md) for ranking otherwise-equal candidates.
//
// A PQ node additionally must be downstream of root with respect to dest:
// d(Q, dest) < d(root, dest). A repair point no closer to the destination
// than root itself could bounce traffic back through root before root has
// reconverged.
func IntersectExtendedPAndQSpace(dc *DistanceCache, topo *topology.Topology, root, dest *topology.Node, pSpace map[string]bool, protectedEdge *topology.Edge) RLFAResult {
	qSpace := QSpace(dc, dest, protectedEdge)
	toDest := dc.backward(dest, nil)
	rootToDest, rootReaches := dc.dist(root, dest)

	var candidates []PQCandidate
	for name := range pSpace {
		if name == root.Name || name == dest.Name {
			continue
		}
		if !qSpace[name] {
			continue
		}
		d, ok := toDest[name]
		if !ok {
			continue
		}
		if rootReaches && d >= rootToDest {
			continue
		}
		candidates = append(candidates, PQCandidate{Node: topo.Nodes[name], DistToDest: d})
	}

	sortCandidates(candidates)

	return RLFAResult{Destination: dest, Candidates: candidates}
}

func sortCandidates(c []PQCandidate) {
	for i := 1; i < len(c); i++ {
		for j := i; j > 0 && less(c[j], c[j-1]); j-- {
			c[j], c[j-1] = c[j-1], c[j]
		}
	}
}

func less(a, b PQCandidate) bool {
	if a.DistToDest != b.DistToDest {
		return a.DistToDest < b.DistToDest
	}

	return a.Node.Name < b.Node.Name
}
