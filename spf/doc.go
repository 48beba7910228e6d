// Package spf computes per-root, per-level shortest-path trees over a
// topology.Topology using a Dijkstra variant that keeps every equal-cost
// predecessor, not just one (component C4).
//
// Compute populates a Table holding, for every node reachable from root at
// the given level: its metric, a predecessor set split by next-hop kind
// (IPNH vs LSPNH) suitable for exhaustive path enumeration, and a next-hop
// set identifying which of root's own interfaces the shortest paths
// actually leave through.
//
// Pseudonode transparency is handled one layer down, in
// topology.Topology.LogicalNeighbors: a PN's real neighbors are exposed
// directly, with a synthesized composite edge whose gateway is the prefix
// on the real neighbor's end of the PN's outgoing edge. Compute therefore
// never sees a
// pseudonode on its candidate queue — see DESIGN.md, decision D-PN, for
// why this is equivalent to the two-pass "install through PN, then clear
// PN's scratch list" scheme of the routing stack this package continues.
//
// Determinism: for a fixed topology and a fixed sequence of CreateNode/
// CreateEdge calls, Compute visits neighbors in interface-insertion order
// and produces predecessor/next-hop sets in a fixed (though not
// semantically meaningful) order. Treat both as unordered multisets in
// tests, per the equal-cost tie-breaking rule.
//
// Concurrency: a Table returned by Compute is a fresh, unshared value —
// safe to read from multiple goroutines. Compute itself must not run
// concurrently with a topology mutation (edge status/metric change, node
// overload toggle) on the same Topology; the core has no locking of its
// own, by design (spec.md §5).
package spf

import (
	"errors"
	"math"
)

// Infinite is the saturating "unreachable" metric. It is half of
// math.MaxInt64 rather than the full range so that Infinite+Infinite (an
// overloaded root relaxing toward an already-unreachable neighbor) cannot
// wrap around to a negative value.
const Infinite int64 = math.MaxInt64 / 2

// Sentinel errors, unexported. Neither is ever returned to a caller.
var (
	// errDuplicatePredecessor's message is the text of the panic raised when
	// relaxation would insert a (node, oif, gw-prefix) predecessor entry
	// already present; the panic value is a string, not this error.
	errDuplicatePredecessor = errors.New("spf: duplicate predecessor entry")

	// errUnknownDestination is not raised anywhere: asking the Table for a
	// node absent from the result does not panic — Result returns nil and
	// Metric returns (Infinite, false).
	errUnknownDestination = errors.New("spf: destination not present in this result set")
)

func saturatingAdd(a, b int64) int64 {
	sum := a + b
	if sum > Infinite || sum < 0 {
		return Infinite
	}

	return sum
}
