package spf

import "github.com/ngrouting/isisspf/topology"

// PredecessorEntry is one upstream hop on an equal-cost shortest path.
// Identity is (Node, OIF, GwPrefix): Compute refuses to insert two entries
// that compare equal under this triple.
type PredecessorEntry struct {
	Node     *topology.Node // the predecessor itself
	OIF      string         // the predecessor's own outgoing interface name
	GwPrefix string         // the far-end gateway prefix of the relaxed edge, "" if none configured
}

func (e PredecessorEntry) equal(other PredecessorEntry) bool {
	return e.Node == other.Node && e.OIF == other.OIF && e.GwPrefix == other.GwPrefix
}

// NextHop identifies one of root's own egress interfaces through which a
// shortest path leaves. Unlike PredecessorEntry, which records a hop
// anywhere along the path, NextHop is always expressed in terms of root's
// direct neighbor — it is what a forwarding plane installs.
type NextHop struct {
	Neighbor *topology.Node // root's direct neighbor the path departs through
	OIF      string         // root's own interface name toward Neighbor
}

func (h NextHop) equal(other NextHop) bool {
	return h.Neighbor == other.Neighbor && h.OIF == other.OIF
}

// NodeResult is the per-destination slice of a Table: its metric from
// root, and its predecessor/next-hop sets split by topology.NextHopKind
// (index with topology.IPNH / topology.LSPNH).
//
// Predecessors[k] holds every equal-cost predecessor entry reached via an
// edge of kind k (an LSP adjacency contributes only to LSPNH, a regular
// link only to IPNH). NextHops[k] holds the distinct root-interfaces whose
// first hop committed to kind k; it is inherited unchanged from a node's
// own predecessor down through the rest of the tree, since the forwarding
// decision is made once, at root, not re-made at every hop.
type NodeResult struct {
	Node         *topology.Node
	Metric       int64
	Predecessors [2][]PredecessorEntry
	NextHops     [2][]NextHop
}

// Table is the result of one Compute call: every node reachable from Root
// at Level, including Root itself (metric 0, no predecessors).
type Table struct {
	Root    *topology.Node
	Level   topology.Level
	results map[string]*NodeResult
}

// Metric returns the destination's metric, or (Infinite, false) if this
// computation never reached it with a finite cost. A node the reachability
// scan visited but relaxation only ever saw behind an overloaded transit
// keeps metric Infinite and is just as unreachable as one outside the scan
// entirely.
func (t *Table) Metric(destination *topology.Node) (int64, bool) {
	r, ok := t.results[destination.Name]
	if !ok || r.Metric == Infinite {
		return Infinite, false
	}

	return r.Metric, true
}

// Result returns the full per-destination result, or nil if destination
// was not reached.
func (t *Table) Result(destination *topology.Node) *NodeResult {
	return t.results[destination.Name]
}

// Reachable reports whether destination has a finite metric in this Table.
func (t *Table) Reachable(destination *topology.Node) bool {
	r, ok := t.results[destination.Name]

	return ok && r.Metric < Infinite
}

// Destinations returns every node this Table reached, including Root,
// in no particular order.
func (t *Table) Destinations() []*NodeResult {
	out := make([]*NodeResult, 0, len(t.results))
	for _, r := range t.results {
		out = append(out, r)
	}

	return out
}
