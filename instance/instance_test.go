package instance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngrouting/isisspf/instance"
	"github.com/ngrouting/isisspf/topology"
)

func buildLinear(t *testing.T) (*instance.Instance, *topology.Node, *topology.Node, *topology.Node) {
	t.Helper()
	inst := instance.CreateInstance()
	r0, err := inst.CreateNode("R0", "AREA1")
	require.NoError(t, err)
	r1, err := inst.CreateNode("R1", "AREA1")
	require.NoError(t, err)
	r2, err := inst.CreateNode("R2", "AREA1")
	require.NoError(t, err)
	_, err = inst.CreateEdge(r0, r1, "eth0/0", "eth0/1", 10, 10, topology.L12, true)
	require.NoError(t, err)
	_, err = inst.CreateEdge(r1, r2, "eth0/2", "eth0/3", 10, 10, topology.L12, true)
	require.NoError(t, err)

	return inst, r0, r1, r2
}

func TestRunSPFAllNoRoot(t *testing.T) {
	inst := instance.CreateInstance()
	_, err := inst.RunSPFAll()
	assert.ErrorIs(t, err, instance.ErrNoRoot)
}

func TestRunSPFAllLinear(t *testing.T) {
	inst, r0, _, r2 := buildLinear(t)
	inst.SetRoot(r0)

	tables, err := inst.RunSPFAll()
	require.NoError(t, err)
	m, ok := tables[topology.L1].Metric(r2)
	require.True(t, ok)
	assert.Equal(t, int64(20), m)
}

func TestSPFCacheHitAcrossCalls(t *testing.T) {
	inst, r0, _, _ := buildLinear(t)

	first := inst.SPF(r0, topology.L1)
	second := inst.SPF(r0, topology.L1)
	assert.Same(t, first, second, "no mutation occurred, so the cached Table must be reused")
}

func TestMutationInvalidatesCache(t *testing.T) {
	inst, r0, _, r2 := buildLinear(t)

	first := inst.SPF(r0, topology.L1)
	beforeVersion := inst.Version()

	err := inst.SetStatus(r0, "eth0/0", topology.Down)
	require.NoError(t, err)
	assert.Greater(t, inst.Version(), beforeVersion)

	second := inst.SPF(r0, topology.L1)
	assert.NotSame(t, first, second)
	_, reachable := second.Metric(r2)
	assert.False(t, reachable, "R2 should be unreachable with R0's only link down")
}

func TestEnableDisableRoundTripRestoresSPF(t *testing.T) {
	inst, r0, _, r2 := buildLinear(t)

	before := inst.SPF(r0, topology.L1)
	beforeMetric, _ := before.Metric(r2)

	require.NoError(t, inst.EnableEdge(r0, "eth0/0", false))
	require.NoError(t, inst.EnableEdge(r0, "eth0/0", true))

	after := inst.SPF(r0, topology.L1)
	afterMetric, ok := after.Metric(r2)
	require.True(t, ok)
	assert.Equal(t, beforeMetric, afterMetric)
}

func TestUpdatePrefixSIDTriggersConflictResolution(t *testing.T) {
	inst := instance.CreateInstance()
	r3, err := inst.CreateNode("R3", "AREA1")
	require.NoError(t, err)
	r4, err := inst.CreateNode("R4", "AREA1")
	require.NoError(t, err)
	inst.EnableSpring(r3)
	inst.EnableSpring(r4)

	p3, err := inst.AttachPrefix(r3, "10.0.0.3", 32, topology.L1, 0)
	require.NoError(t, err)
	p4, err := inst.AttachPrefix(r4, "10.0.0.4", 32, topology.L1, 0)
	require.NoError(t, err)

	_, err = inst.UpdatePrefixSID(p3, 100, topology.AlgoSPF, 0)
	require.NoError(t, err)
	conflicts, err := inst.UpdatePrefixSID(p4, 100, topology.AlgoSPF, 0)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)

	assert.NotEqual(t, p3.SID.Active, p4.SID.Active, "exactly one side must be deactivated")
}

func TestRoutesBuildsFromCachedSPF(t *testing.T) {
	inst, _, r1, _ := buildLinear(t)
	_, err := inst.AttachPrefix(r1, "192.168.1.0", 24, topology.L1, 0)
	require.NoError(t, err)

	r0, err := inst.Topo.GetNode("R0")
	require.NoError(t, err)
	inst.SetRoot(r0)

	routes := inst.Routes(r0, topology.L1)
	require.Len(t, routes, 1)
	assert.Equal(t, "192.168.1.0", routes[0].Network)
}

func TestRouteTableLooksUpHostAddress(t *testing.T) {
	inst, _, r1, _ := buildLinear(t)
	_, err := inst.AttachPrefix(r1, "192.168.1.0", 24, topology.L1, 0)
	require.NoError(t, err)

	r0, err := inst.Topo.GetNode("R0")
	require.NoError(t, err)

	lpm := inst.RouteTable(r0, topology.L1)
	r, ok := lpm.Lookup("192.168.1.42")
	require.True(t, ok)
	assert.Equal(t, r1, r.Winner.HostNode)

	_, ok = lpm.Lookup("10.9.9.9")
	assert.False(t, ok)
}
