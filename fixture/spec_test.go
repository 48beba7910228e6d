package fixture_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngrouting/isisspf/fixture"
	"github.com/ngrouting/isisspf/protect"
	"github.com/ngrouting/isisspf/topology"
)

func TestLinearSPFMatchesSpec(t *testing.T) {
	inst, nodes := fixture.Linear()

	table := inst.SPF(nodes["R0"], topology.L1)
	m1, ok := table.Metric(nodes["R1"])
	require.True(t, ok)
	assert.Equal(t, int64(10), m1)

	m2, ok := table.Metric(nodes["R2"])
	require.True(t, ok)
	assert.Equal(t, int64(20), m2)

	r1 := table.Result(nodes["R1"])
	require.Len(t, r1.Predecessors[topology.IPNH], 1)
	assert.Equal(t, "R0", r1.Predecessors[topology.IPNH][0].Node.Name)
	assert.Equal(t, "eth0/0", r1.Predecessors[topology.IPNH][0].OIF)
	assert.Equal(t, "10.1.1.2", r1.Predecessors[topology.IPNH][0].GwPrefix)

	r2 := table.Result(nodes["R2"])
	require.Len(t, r2.Predecessors[topology.IPNH], 1)
	assert.Equal(t, "R1", r2.Predecessors[topology.IPNH][0].Node.Name)
	assert.Equal(t, "eth0/2", r2.Predecessors[topology.IPNH][0].OIF)
	assert.Equal(t, "20.1.1.2", r2.Predecessors[topology.IPNH][0].GwPrefix)
}

func TestLinearDisabledLinkIsolatesDownstream(t *testing.T) {
	inst, nodes := fixture.Linear()

	require.NoError(t, inst.SetStatus(nodes["R0"], "eth0/0", topology.Down))

	table := inst.SPF(nodes["R0"], topology.L1)
	_, ok := table.Metric(nodes["R1"])
	assert.False(t, ok)
	_, ok = table.Metric(nodes["R2"])
	assert.False(t, ok)
}

func TestRingLoads(t *testing.T) {
	_, nodes := fixture.Ring()
	assert.Len(t, nodes, 6)
	for _, name := range []string{"S", "A", "B", "C", "D", "E"} {
		assert.Contains(t, nodes, name)
	}
}

// TestRingLFAScenario works through the uniform-metric six-node ring with
// S's link toward E protected. For destination E itself, A fails
// Inequality 1 (d(A,E)=40 is not < d(A,S)+d(S,E)=20), so no LFA exists.
// For destination D, A passes Inequality 1 (30 < 40) but ties on the
// downstream check (d(A,D)=30 = d(S,D)=30), making it a plain
// link-protection LFA, never a downstream one.
func TestRingLFAScenario(t *testing.T) {
	inst, nodes := fixture.Ring()

	var protectedEdge *topology.Edge
	for _, e := range nodes["S"].OutEdges() {
		if e.To.Owner == nodes["E"] {
			protectedEdge = e
		}
	}
	require.NotNil(t, protectedEdge)

	dc := protect.NewDistanceCache(inst.Topo, topology.L1)
	pl := protect.ProtectedLink{Root: nodes["S"], Edge: protectedEdge, ProtectedNeighbor: nodes["E"]}

	_, ok := protect.FindLFA(dc, inst.Topo, topology.L1, pl, nodes["E"], true)
	assert.False(t, ok, "no neighbor of S is loop-free for E in a uniform ring")

	cand, ok := protect.FindLFA(dc, inst.Topo, topology.L1, pl, nodes["D"], true)
	require.True(t, ok)
	assert.Equal(t, nodes["A"], cand.Neighbor)
	assert.Equal(t, protect.LinkProtectionLFA, cand.Type)
}

func TestMultiAreaRootReachesAllAreas(t *testing.T) {
	inst, nodes := fixture.MultiArea()

	l1 := inst.SPF(nodes["R0"], topology.L1)
	assert.True(t, l1.Reachable(nodes["R1"]))
	assert.True(t, l1.Reachable(nodes["R2"]))

	l2 := inst.SPF(nodes["R0"], topology.L2)
	assert.True(t, l2.Reachable(nodes["R3"]))
	assert.True(t, l2.Reachable(nodes["R5"]))
	// R6's only link (R5-R6) is L1-only, so R6 is outside the L2 topology.
	assert.False(t, l2.Reachable(nodes["R6"]))
}

// TestCiscoExampleR5IsPseudonodeTransparent reproduces spec.md §8's Cisco
// scenario: SPF from R1 must never name R5 (the pseudonode) as a
// predecessor — the real upstream router takes its place.
func TestCiscoExampleR5IsPseudonodeTransparent(t *testing.T) {
	inst, nodes := fixture.CiscoExample()

	table := inst.SPF(nodes["R1"], topology.L1)
	r6 := table.Result(nodes["R6"])
	require.NotNil(t, r6)
	for _, kind := range []topology.NextHopKind{topology.IPNH, topology.LSPNH} {
		for _, pred := range r6.Predecessors[kind] {
			assert.NotEqual(t, "R5", pred.Node.Name, "pseudonode must never appear as a predecessor")
		}
	}

	// R4 is reached across the LAN: its predecessor is the real router R1,
	// and the gateway carries the address configured on the segment's edge
	// toward R4, not anything belonging to the pseudonode.
	r4 := table.Result(nodes["R4"])
	require.NotNil(t, r4)
	require.Len(t, r4.Predecessors[topology.IPNH], 1)
	assert.Equal(t, "R1", r4.Predecessors[topology.IPNH][0].Node.Name)
	assert.Equal(t, "50.1.1.3", r4.Predecessors[topology.IPNH][0].GwPrefix)
}

func TestLoadRejectsUnknownNode(t *testing.T) {
	_, _, err := fixture.Load([]byte(`
nodes:
  - name: X
    area: AREA1
edges:
  - a: X
    b: Y
    iface_a: eth0/0
    iface_b: eth0/1
    metric_l1: 10
    level: L1
    bidirectional: true
`))
	assert.Error(t, err)
}
