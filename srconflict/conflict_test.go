package srconflict_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngrouting/isisspf/prefixstore"
	"github.com/ngrouting/isisspf/srconflict"
	"github.com/ngrouting/isisspf/srgb"
	"github.com/ngrouting/isisspf/topology"
)

func springNode(t *testing.T, topo *topology.Topology, name string) *topology.Node {
	t.Helper()
	n, err := topo.CreateNode(name, "AREA1")
	require.NoError(t, err)
	n.SpringEnabled = true
	n.SRGB = srgb.NewDefault()

	return n
}

// TestSIDConflictLoopbackTieBreak reproduces spec.md §8's worked example:
// R3's loopback and R4's loopback are both assigned prefix-SID 100. The
// resolver must deactivate exactly one side (by the documented tuple
// ordering) and leave the other's SRGB bit set.
func TestSIDConflictLoopbackTieBreak(t *testing.T) {
	topo := topology.NewTopology()
	r3 := springNode(t, topo, "R3")
	r4 := springNode(t, topo, "R4")

	p3, err := prefixstore.AttachPrefix(r3, "10.0.0.3", 32, topology.L1, 0)
	require.NoError(t, err)
	p4, err := prefixstore.AttachPrefix(r4, "10.0.0.4", 32, topology.L1, 0)
	require.NoError(t, err)

	_, err = prefixstore.UpdatePrefixSID(p3, 100, topology.AlgoSPF, 0)
	require.NoError(t, err)
	_, err = prefixstore.UpdatePrefixSID(p4, 100, topology.AlgoSPF, 0)
	require.NoError(t, err)

	conflicts := srconflict.Resolve([]*topology.Node{r3, r4})
	require.Len(t, conflicts, 1)

	winner, loser := conflicts[0].Winner, conflicts[0].Loser
	assert.NotEqual(t, winner, loser)
	assert.True(t, winner.SID.Active)
	assert.False(t, loser.SID.Active)

	// The winner's SRGB bit remains set; the loser's host released its bit.
	assert.True(t, winner.HostNode.SRGB.IsUsed(100))
	assert.False(t, loser.HostNode.SRGB.IsUsed(100))

	// 10.0.0.4 > 10.0.0.3 numerically and both entries tie on preference
	// and prefix-length, so R4's binding should win per the documented
	// "larger prefix value wins" tiebreak.
	assert.Equal(t, "10.0.0.4", winner.Network)
}

func TestNoConflictDistinctPrefixesDistinctSIDs(t *testing.T) {
	topo := topology.NewTopology()
	r1 := springNode(t, topo, "R1")
	r2 := springNode(t, topo, "R2")

	p1, err := prefixstore.AttachPrefix(r1, "10.0.0.1", 32, topology.L1, 0)
	require.NoError(t, err)
	p2, err := prefixstore.AttachPrefix(r2, "10.0.0.2", 32, topology.L1, 0)
	require.NoError(t, err)

	_, err = prefixstore.UpdatePrefixSID(p1, 10, topology.AlgoSPF, 0)
	require.NoError(t, err)
	_, err = prefixstore.UpdatePrefixSID(p2, 20, topology.AlgoSPF, 0)
	require.NoError(t, err)

	conflicts := srconflict.Resolve([]*topology.Node{r1, r2})
	assert.Empty(t, conflicts)
	assert.True(t, p1.SID.Active)
	assert.True(t, p2.SID.Active)
}

// TestIdempotence runs Resolve twice with no intervening mutation and
// asserts the Active assignment is identical both times (spec.md §8
// "Conflict idempotence").
func TestIdempotence(t *testing.T) {
	topo := topology.NewTopology()
	r3 := springNode(t, topo, "R3")
	r4 := springNode(t, topo, "R4")

	p3, err := prefixstore.AttachPrefix(r3, "10.0.0.3", 32, topology.L1, 0)
	require.NoError(t, err)
	p4, err := prefixstore.AttachPrefix(r4, "10.0.0.4", 32, topology.L1, 0)
	require.NoError(t, err)
	_, err = prefixstore.UpdatePrefixSID(p3, 100, topology.AlgoSPF, 0)
	require.NoError(t, err)
	_, err = prefixstore.UpdatePrefixSID(p4, 100, topology.AlgoSPF, 0)
	require.NoError(t, err)

	nodes := []*topology.Node{r3, r4}
	srconflict.Resolve(nodes)
	first3, first4 := p3.SID.Active, p4.SID.Active

	srconflict.Resolve(nodes)
	assert.Equal(t, first3, p3.SID.Active)
	assert.Equal(t, first4, p4.SID.Active)
}

// TestLoserReclaimsSRGBBitAfterWinnerWithdrawn: once the winning binding
// is withdrawn, a re-run of Resolve reactivates the former loser — which
// released its SRGB bit when it lost — and must take the bit back, or an
// active SID would reference a clear index.
func TestLoserReclaimsSRGBBitAfterWinnerWithdrawn(t *testing.T) {
	topo := topology.NewTopology()
	r3 := springNode(t, topo, "R3")
	r4 := springNode(t, topo, "R4")

	p3, err := prefixstore.AttachPrefix(r3, "10.0.0.3", 32, topology.L1, 0)
	require.NoError(t, err)
	p4, err := prefixstore.AttachPrefix(r4, "10.0.0.4", 32, topology.L1, 0)
	require.NoError(t, err)
	_, err = prefixstore.UpdatePrefixSID(p3, 100, topology.AlgoSPF, 0)
	require.NoError(t, err)
	_, err = prefixstore.UpdatePrefixSID(p4, 100, topology.AlgoSPF, 0)
	require.NoError(t, err)

	nodes := []*topology.Node{r3, r4}
	srconflict.Resolve(nodes)
	require.False(t, p3.SID.Active, "10.0.0.3 loses the numeric tiebreak")
	require.False(t, r3.SRGB.IsUsed(100))

	require.NoError(t, prefixstore.FreePrefixSID(p4))

	conflicts := srconflict.Resolve(nodes)
	assert.Empty(t, conflicts)
	assert.True(t, p3.SID.Active)
	assert.True(t, r3.SRGB.IsUsed(100))
}

// TestDetectSRGBOverlapsFindsOverlappingBlocks reproduces SPEC_FULL.md
// §4.2's is_srgb_ranges_overlap commitment: two nodes whose SRGB blocks
// overlap in absolute label space are reported, independent of whether
// either has assigned any prefix-SID yet.
func TestDetectSRGBOverlapsFindsOverlappingBlocks(t *testing.T) {
	topo := topology.NewTopology()
	r1, err := topo.CreateNode("R1", "AREA1")
	require.NoError(t, err)
	r2, err := topo.CreateNode("R2", "AREA1")
	require.NoError(t, err)
	r1.SpringEnabled = true
	r1.SRGB = srgb.New(16000, 8000)
	r2.SpringEnabled = true
	r2.SRGB = srgb.New(20000, 8000) // [20000, 28000) overlaps [16000, 24000)

	overlaps := srconflict.DetectSRGBOverlaps([]*topology.Node{r1, r2})
	require.Len(t, overlaps, 1)
	assert.Contains(t, []*topology.Node{overlaps[0].NodeA, overlaps[0].NodeB}, r1)
	assert.Contains(t, []*topology.Node{overlaps[0].NodeA, overlaps[0].NodeB}, r2)
}

// TestDetectSRGBOverlapsNoneForDisjointBlocks confirms disjoint SRGB
// blocks produce no overlap report.
func TestDetectSRGBOverlapsNoneForDisjointBlocks(t *testing.T) {
	topo := topology.NewTopology()
	r1, err := topo.CreateNode("R1", "AREA1")
	require.NoError(t, err)
	r2, err := topo.CreateNode("R2", "AREA1")
	require.NoError(t, err)
	r1.SpringEnabled = true
	r1.SRGB = srgb.New(16000, 8000)
	r2.SpringEnabled = true
	r2.SRGB = srgb.New(30000, 8000)

	assert.Empty(t, srconflict.DetectSRGBOverlaps([]*topology.Node{r1, r2}))
}

// TestResolveDetectsSRGBOverlapWithoutAffectingPrefixResolution confirms
// Resolve runs the SRGB-overlap check (it must not panic or otherwise
// disrupt prefix-SID conflict resolution) even when no prefix-SID conflict
// exists at all.
func TestResolveDetectsSRGBOverlapWithoutAffectingPrefixResolution(t *testing.T) {
	topo := topology.NewTopology()
	r1 := springNode(t, topo, "R1")
	r2 := springNode(t, topo, "R2")
	r2.SRGB = srgb.New(20000, 8000) // overlaps r1's default [16000, 24000)

	p1, err := prefixstore.AttachPrefix(r1, "10.0.0.1", 32, topology.L1, 0)
	require.NoError(t, err)
	p2, err := prefixstore.AttachPrefix(r2, "10.0.0.2", 32, topology.L1, 0)
	require.NoError(t, err)
	_, err = prefixstore.UpdatePrefixSID(p1, 10, topology.AlgoSPF, 0)
	require.NoError(t, err)
	_, err = prefixstore.UpdatePrefixSID(p2, 20, topology.AlgoSPF, 0)
	require.NoError(t, err)

	require.NotEmpty(t, srconflict.DetectSRGBOverlaps([]*topology.Node{r1, r2}))

	conflicts := srconflict.Resolve([]*topology.Node{r1, r2})
	assert.Empty(t, conflicts)
	assert.True(t, p1.SID.Active)
	assert.True(t, p2.SID.Active)
}

func TestPreferenceOutranksPrefixValue(t *testing.T) {
	topo := topology.NewTopology()
	r1 := springNode(t, topo, "R1")
	r2 := springNode(t, topo, "R2")

	// R1 advertises a numerically larger prefix (which alone would win) but
	// with the P flag (SRMS preference class), which loses to R2's plain IGP
	// preference regardless of prefix value.
	p1, err := prefixstore.AttachPrefix(r1, "10.0.0.9", 32, topology.L1, 0)
	require.NoError(t, err)
	p2, err := prefixstore.AttachPrefix(r2, "10.0.0.1", 32, topology.L1, 0)
	require.NoError(t, err)

	_, err = prefixstore.UpdatePrefixSID(p1, 100, topology.AlgoSPF, topology.FlagP)
	require.NoError(t, err)
	_, err = prefixstore.UpdatePrefixSID(p2, 100, topology.AlgoSPF, 0)
	require.NoError(t, err)

	conflicts := srconflict.Resolve([]*topology.Node{r1, r2})
	require.Len(t, conflicts, 1)
	assert.Equal(t, "10.0.0.1", conflicts[0].Winner.Network)
	assert.Equal(t, "10.0.0.9", conflicts[0].Loser.Network)
}
