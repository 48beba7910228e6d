package prefixstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngrouting/isisspf/prefixstore"
	"github.com/ngrouting/isisspf/srgb"
	"github.com/ngrouting/isisspf/topology"
)

func springNode(t *testing.T) *topology.Node {
	t.Helper()
	topo := topology.NewTopology()
	n, err := topo.CreateNode("R1", "AREA1")
	require.NoError(t, err)
	n.SpringEnabled = true
	n.SRGB = srgb.NewDefault()

	return n
}

func TestAttachDetachRoundTrip(t *testing.T) {
	topo := topology.NewTopology()
	n, _ := topo.CreateNode("R1", "AREA1")

	p, err := prefixstore.AttachPrefix(n, "192.168.1.1", 32, topology.L1, 0)
	require.NoError(t, err)
	require.Len(t, n.Prefixes[topology.L1.Index()], 1)

	require.NoError(t, prefixstore.DetachPrefix(n, p))
	assert.Len(t, n.Prefixes[topology.L1.Index()], 0)
}

func TestAttachDuplicateRejected(t *testing.T) {
	topo := topology.NewTopology()
	n, _ := topo.CreateNode("R1", "AREA1")
	_, err := prefixstore.AttachPrefix(n, "10.0.0.0", 24, topology.L1, 10)
	require.NoError(t, err)
	_, err = prefixstore.AttachPrefix(n, "10.0.0.0", 24, topology.L1, 10)
	assert.ErrorIs(t, err, prefixstore.ErrAlreadyAttached)
}

func TestUpdatePrefixSIDCreatesBidirectionalBinding(t *testing.T) {
	n := springNode(t)
	p, err := prefixstore.AttachPrefix(n, "1.1.1.1", 32, topology.L1, 0)
	require.NoError(t, err)

	changed, err := prefixstore.UpdatePrefixSID(p, 100, topology.AlgoSPF, topology.FlagN)
	require.NoError(t, err)
	assert.True(t, changed)
	require.NotNil(t, p.SID)
	assert.Equal(t, p, p.SID.Owner)
	assert.True(t, n.SRGB.IsUsed(100))
}

func TestUpdatePrefixSIDMoveReleasesOldIndex(t *testing.T) {
	n := springNode(t)
	p, _ := prefixstore.AttachPrefix(n, "1.1.1.1", 32, topology.L1, 0)
	_, err := prefixstore.UpdatePrefixSID(p, 100, topology.AlgoSPF, 0)
	require.NoError(t, err)

	changed, err := prefixstore.UpdatePrefixSID(p, 200, topology.AlgoSPF, 0)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, n.SRGB.IsUsed(100))
	assert.True(t, n.SRGB.IsUsed(200))
}

func TestUpdatePrefixSIDNoopWhenUnchanged(t *testing.T) {
	n := springNode(t)
	p, _ := prefixstore.AttachPrefix(n, "1.1.1.1", 32, topology.L1, 0)
	_, err := prefixstore.UpdatePrefixSID(p, 100, topology.AlgoSPF, 0)
	require.NoError(t, err)

	changed, err := prefixstore.UpdatePrefixSID(p, 100, topology.AlgoSPF, 0)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestUpdatePrefixSIDOnNonSpringNode(t *testing.T) {
	topo := topology.NewTopology()
	n, _ := topo.CreateNode("R1", "AREA1")
	p, _ := prefixstore.AttachPrefix(n, "1.1.1.1", 32, topology.L1, 0)

	_, err := prefixstore.UpdatePrefixSID(p, 100, topology.AlgoSPF, 0)
	assert.ErrorIs(t, err, prefixstore.ErrSIDOnNonSpringNode)
}

func TestFreePrefixSIDReleasesSRGBBit(t *testing.T) {
	n := springNode(t)
	p, _ := prefixstore.AttachPrefix(n, "1.1.1.1", 32, topology.L1, 0)
	_, err := prefixstore.UpdatePrefixSID(p, 100, topology.AlgoSPF, 0)
	require.NoError(t, err)

	require.NoError(t, prefixstore.FreePrefixSID(p))
	assert.Nil(t, p.SID)
	assert.False(t, n.SRGB.IsUsed(100))
}

func TestDetachPrefixWithSIDFreesSID(t *testing.T) {
	n := springNode(t)
	p, _ := prefixstore.AttachPrefix(n, "1.1.1.1", 32, topology.L1, 0)
	_, err := prefixstore.UpdatePrefixSID(p, 100, topology.AlgoSPF, 0)
	require.NoError(t, err)

	require.NoError(t, prefixstore.DetachPrefix(n, p))
	assert.False(t, n.SRGB.IsUsed(100))
}
