package protect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngrouting/isisspf/protect"
	"github.com/ngrouting/isisspf/topology"
)

func mustEdge(t *testing.T, topo *topology.Topology, a, b *topology.Node, ifaceA, ifaceB string, metric int64) *topology.Edge {
	t.Helper()
	e, err := topo.CreateEdge(a, b, ifaceA, ifaceB, metric, metric, topology.L12, true, nil, nil)
	require.NoError(t, err)

	return e
}

func mustNode(t *testing.T, topo *topology.Topology, name string) *topology.Node {
	t.Helper()
	n, err := topo.CreateNode(name, "AREA1")
	require.NoError(t, err)

	return n
}

// buildSquare builds S-E(protected)-D with an alternate neighbor N whose
// path to D never transits E, qualifying for full node protection.
func buildSquare(t *testing.T) (*topology.Topology, map[string]*topology.Node, *topology.Edge) {
	t.Helper()
	topo := topology.NewTopology()
	nodes := map[string]*topology.Node{}
	for _, name := range []string{"S", "E", "D", "N"} {
		nodes[name] = mustNode(t, topo, name)
	}
	se := mustEdge(t, topo, nodes["S"], nodes["E"], "s-e", "e-s", 10)
	mustEdge(t, topo, nodes["E"], nodes["D"], "e-d", "d-e", 10)
	mustEdge(t, topo, nodes["S"], nodes["N"], "s-n", "n-s", 10)
	mustEdge(t, topo, nodes["N"], nodes["D"], "n-d", "d-n", 15)

	return topo, nodes, se
}

func TestFindLFALinkAndNodeProtection(t *testing.T) {
	topo, nodes, se := buildSquare(t)
	dc := protect.NewDistanceCache(topo, topology.L1)
	pl := protect.ProtectedLink{Root: nodes["S"], Edge: se, ProtectedNeighbor: nodes["E"]}

	cand, ok := protect.FindLFA(dc, topo, topology.L1, pl, nodes["D"], true)
	require.True(t, ok)
	assert.Equal(t, nodes["N"], cand.Neighbor)
	assert.Equal(t, protect.LinkAndNodeProtectionLFA, cand.Type)
}

// buildTransitThroughE builds a square where N's best path to D runs
// through E, so node protection (Inequality 3) is unavailable but
// Inequality 1/2 (plain + downstream link protection) still hold.
func buildTransitThroughE(t *testing.T) (*topology.Topology, map[string]*topology.Node) {
	t.Helper()
	topo := topology.NewTopology()
	nodes := map[string]*topology.Node{}
	for _, name := range []string{"S", "E", "D", "N"} {
		nodes[name] = mustNode(t, topo, name)
	}
	mustEdge(t, topo, nodes["S"], nodes["E"], "s-e", "e-s", 10)
	mustEdge(t, topo, nodes["E"], nodes["D"], "e-d", "d-e", 10)
	mustEdge(t, topo, nodes["S"], nodes["N"], "s-n", "n-s", 10)
	mustEdge(t, topo, nodes["N"], nodes["E"], "n-e", "e-n", 1)

	return topo, nodes
}

func TestComputeP2PLFADownstreamWithoutNodeProtection(t *testing.T) {
	topo, nodes := buildTransitThroughE(t)
	dc := protect.NewDistanceCache(topo, topology.L1)

	lfaType := protect.ComputeP2PLFA(dc, nodes["S"], nodes["E"], nodes["N"], nodes["D"], true)
	assert.Equal(t, protect.LinkProtectionLFADownstream, lfaType)
}

func TestFindLFANoneWhenOnlyOtherNeighborIsAPendant(t *testing.T) {
	topo := topology.NewTopology()
	nodes := map[string]*topology.Node{}
	for _, name := range []string{"S", "E", "D", "Stub"} {
		nodes[name] = mustNode(t, topo, name)
	}
	se := mustEdge(t, topo, nodes["S"], nodes["E"], "s-e", "e-s", 10)
	mustEdge(t, topo, nodes["E"], nodes["D"], "e-d", "d-e", 10)
	mustEdge(t, topo, nodes["S"], nodes["Stub"], "s-x", "x-s", 10)

	dc := protect.NewDistanceCache(topo, topology.L1)
	pl := protect.ProtectedLink{Root: nodes["S"], Edge: se, ProtectedNeighbor: nodes["E"]}

	_, ok := protect.FindLFA(dc, topo, topology.L1, pl, nodes["D"], true)
	assert.False(t, ok)
}

// buildPQTopology builds S-E(protected)-D as the primary path, with S-N1
// off the protected link, N1-PQ, and PQ-D providing a path that costs more
// than the primary (25 vs 20), so S's own best path still uses E,
// while N1 and PQ remain valid Q-space/P-space members for RLFA discovery.
func buildPQTopology(t *testing.T) (*topology.Topology, map[string]*topology.Node, *topology.Edge) {
	t.Helper()
	topo := topology.NewTopology()
	nodes := map[string]*topology.Node{}
	for _, name := range []string{"S", "E", "D", "N1", "PQ"} {
		nodes[name] = mustNode(t, topo, name)
	}
	se := mustEdge(t, topo, nodes["S"], nodes["E"], "s-e", "e-s", 10)
	mustEdge(t, topo, nodes["E"], nodes["D"], "e-d", "d-e", 10)
	mustEdge(t, topo, nodes["S"], nodes["N1"], "s-n1", "n1-s", 10)
	mustEdge(t, topo, nodes["N1"], nodes["PQ"], "n1-pq", "pq-n1", 10)
	mustEdge(t, topo, nodes["PQ"], nodes["D"], "pq-d", "d-pq", 5)

	return topo, nodes, se
}

func TestPSpaceExcludesDestinationWhenPrimaryPathUsesProtectedLink(t *testing.T) {
	topo, nodes, se := buildPQTopology(t)
	dc := protect.NewDistanceCache(topo, topology.L1)

	p := protect.PSpace(dc, nodes["S"], se)
	assert.True(t, p["N1"])
	assert.True(t, p["PQ"])
	assert.False(t, p["D"])
}

func TestComputeRLFAFindsAndOrdersPQCandidates(t *testing.T) {
	topo, nodes, se := buildPQTopology(t)
	dc := protect.NewDistanceCache(topo, topology.L1)
	pl := protect.ProtectedLink{Root: nodes["S"], Edge: se, ProtectedNeighbor: nodes["E"]}

	result := protect.ComputeRLFA(dc, topo, topology.L1, pl, nodes["D"])
	require.Len(t, result.Candidates, 2)
	assert.Equal(t, nodes["PQ"], result.Candidates[0].Node)
	assert.Equal(t, int64(5), result.Candidates[0].DistToDest)
	assert.Equal(t, nodes["N1"], result.Candidates[1].Node)
	assert.Equal(t, int64(15), result.Candidates[1].DistToDest)
}

// TestComputeRLFAExcludesNonDownstreamPQNode raises PQ's cost to D above
// d(S,D): PQ still sits in extended-P-space ∩ Q-space, but a repair point
// no closer to D than S itself is rejected by the downstream condition
// d(Q,D) < d(S,D), leaving no RLFA at all.
func TestComputeRLFAExcludesNonDownstreamPQNode(t *testing.T) {
	topo := topology.NewTopology()
	nodes := map[string]*topology.Node{}
	for _, name := range []string{"S", "E", "D", "N1", "PQ"} {
		nodes[name] = mustNode(t, topo, name)
	}
	se := mustEdge(t, topo, nodes["S"], nodes["E"], "s-e", "e-s", 10)
	mustEdge(t, topo, nodes["E"], nodes["D"], "e-d", "d-e", 10)
	mustEdge(t, topo, nodes["S"], nodes["N1"], "s-n1", "n1-s", 10)
	mustEdge(t, topo, nodes["N1"], nodes["PQ"], "n1-pq", "pq-n1", 10)
	mustEdge(t, topo, nodes["PQ"], nodes["D"], "pq-d", "d-pq", 25)

	dc := protect.NewDistanceCache(topo, topology.L1)
	pl := protect.ProtectedLink{Root: nodes["S"], Edge: se, ProtectedNeighbor: nodes["E"]}

	result := protect.ComputeRLFA(dc, topo, topology.L1, pl, nodes["D"])
	assert.Empty(t, result.Candidates)
}

// buildBroadcast builds S attached to a LAN pseudonode PN, with A and B as
// S's LAN-mates and D reachable via A (cost 5) or, far more expensively,
// via B (cost 100).
func buildBroadcast(t *testing.T) (*topology.Topology, map[string]*topology.Node, *topology.Edge) {
	t.Helper()
	topo := topology.NewTopology()
	nodes := map[string]*topology.Node{}
	for _, name := range []string{"S", "PN", "A", "B", "D"} {
		nodes[name] = mustNode(t, topo, name)
	}
	topo.MarkPseudonode(nodes["PN"], topology.L1)
	sToPN := mustEdge(t, topo, nodes["S"], nodes["PN"], "s-lan", "pn-s", 10)
	mustEdge(t, topo, nodes["A"], nodes["PN"], "a-lan", "pn-a", 10)
	mustEdge(t, topo, nodes["B"], nodes["PN"], "b-lan", "pn-b", 10)
	mustEdge(t, topo, nodes["A"], nodes["D"], "a-d", "d-a", 5)
	mustEdge(t, topo, nodes["B"], nodes["D"], "b-d", "d-b", 100)

	return topo, nodes, sToPN
}

func TestFindLFABroadcastPicksLANMateThatClearsInequality4(t *testing.T) {
	topo, nodes, sToPN := buildBroadcast(t)
	dc := protect.NewDistanceCache(topo, topology.L1)
	pl := protect.ProtectedLink{Root: nodes["S"], Edge: sToPN, ProtectedNeighbor: nodes["PN"], Pseudonode: nodes["PN"]}

	cand, ok := protect.FindLFA(dc, topo, topology.L1, pl, nodes["D"], true)
	require.True(t, ok)
	assert.Equal(t, nodes["A"], cand.Neighbor)
	assert.Contains(t, []protect.LFAType{
		protect.BroadcastLinkProtectionLFA,
		protect.BroadcastLinkProtectionLFADownstream,
		protect.BroadcastLinkAndNodeProtectionLFA,
		protect.BroadcastLinkAndNodeProtectionLFADownstream,
	}, cand.Type)
}

// TestComputeBroadcastLFAOnlyNodeProtectionWhenCandidateOffSegment: B clears
// Inequality 1 (d(B,D)=25 < d(B,S)+d(S,D)=20+25=45) but fails Inequality 4
// (25 is not < d(B,PN)+d(PN,D)=10+15=25); treated as off-segment, it is
// classified as only node-protecting.
func TestComputeBroadcastLFAOnlyNodeProtectionWhenCandidateOffSegment(t *testing.T) {
	topo, nodes, _ := buildBroadcast(t)
	dc := protect.NewDistanceCache(topo, topology.L1)

	lfaType := protect.ComputeBroadcastLFA(dc, nodes["S"], nodes["PN"], nodes["B"], nodes["D"], true, false)
	assert.Equal(t, protect.BroadcastOnlyNodeProtectionLFA, lfaType)
}

// TestComputeBroadcastLFADownstreamReachable reproduces SPEC_FULL.md §4.7's
// commitment: Inequality 2 is evaluated once, against the post-Inequality-4
// candidate, only when Inequality 4 holds. A (onSegment) satisfies
// Inequality 4 (d(A,D)=5 < d(A,PN)+d(PN,D)=10+15=25) and is strictly closer
// to D than S is (d(A,D)=5 < d(S,D)=25), so the downstream classification
// must be reachable, not merely defined.
func TestComputeBroadcastLFADownstreamReachable(t *testing.T) {
	topo, nodes, _ := buildBroadcast(t)
	dc := protect.NewDistanceCache(topo, topology.L1)

	lfaType := protect.ComputeBroadcastLFA(dc, nodes["S"], nodes["PN"], nodes["A"], nodes["D"], true, true)
	assert.Equal(t, protect.BroadcastLinkProtectionLFADownstream, lfaType)
}

// TestComputeBroadcastLFANoDownstreamWithoutFlag confirms strictDownstream=
// false suppresses the downstream classification even though Inequality 2
// would otherwise hold, mirroring the point-to-point ComputeP2PLFA contract.
func TestComputeBroadcastLFANoDownstreamWithoutFlag(t *testing.T) {
	topo, nodes, _ := buildBroadcast(t)
	dc := protect.NewDistanceCache(topo, topology.L1)

	lfaType := protect.ComputeBroadcastLFA(dc, nodes["S"], nodes["PN"], nodes["A"], nodes["D"], false, true)
	assert.Equal(t, protect.BroadcastLinkProtectionLFA, lfaType)
}

// TestFindLFASkipsNoEligibleBackupCandidate reproduces spec.md §4.7: "An
// interface flagged NO_ELIGIBLE_BACKUP is skipped as a candidate N." N
// would otherwise be the (only) qualifying LFA for D; flagging its own
// interface toward S must remove it from consideration entirely, leaving
// no LFA at all.
func TestFindLFASkipsNoEligibleBackupCandidate(t *testing.T) {
	topo, nodes, se := buildSquare(t)
	require.NoError(t, topo.SetNoEligibleBackup(nodes["N"], "n-s", true))

	dc := protect.NewDistanceCache(topo, topology.L1)
	pl := protect.ProtectedLink{Root: nodes["S"], Edge: se, ProtectedNeighbor: nodes["E"]}

	_, ok := protect.FindLFA(dc, topo, topology.L1, pl, nodes["D"], true)
	assert.False(t, ok)
}

// TestFindLFABroadcastSkipsNoEligibleBackupCandidate is the broadcast
// analogue: flagging A's own LAN interface excludes it as a candidate,
// leaving B — which clears Inequality 1 but, being on the segment, fails
// Inequality 4 (d(B,D)=25 is not < 10+15) — so no LFA is found.
func TestFindLFABroadcastSkipsNoEligibleBackupCandidate(t *testing.T) {
	topo, nodes, sToPN := buildBroadcast(t)
	require.NoError(t, topo.SetNoEligibleBackup(nodes["A"], "a-lan", true))

	dc := protect.NewDistanceCache(topo, topology.L1)
	pl := protect.ProtectedLink{Root: nodes["S"], Edge: sToPN, ProtectedNeighbor: nodes["PN"], Pseudonode: nodes["PN"]}

	_, ok := protect.FindLFA(dc, topo, topology.L1, pl, nodes["D"], true)
	assert.False(t, ok)
}
