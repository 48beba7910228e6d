package spf

import (
	"container/heap"
	"fmt"

	"github.com/ngrouting/isisspf/topology"
)

// Compute runs SPF from root at level and returns the resulting Table.
//
// Steps (numbered to match the algorithm this continues):
//
//  1. BFS from root over reachable, two-way logical neighbors to find the
//     exact set of nodes this computation will touch. Nodes outside this
//     set are left completely alone — no allocation, no predecessor reset.
//  2. Every BFS-reachable node starts at metric Infinite with empty
//     predecessor/next-hop sets; root starts at metric 0.
//  3. Push root onto the candidate queue and run the main relaxation loop
//     until the queue drains.
//
// Compute never mutates topo; it is safe to call repeatedly, or from
// multiple roots in sequence, over the same Topology (but see the package
// doc comment's concurrency note — not concurrently with a mutation).
func Compute(topo *topology.Topology, root *topology.Node, level topology.Level) *Table {
	table := &Table{Root: root, Level: level, results: make(map[string]*NodeResult)}

	for _, name := range bfsReachable(topo, root, level) {
		n := topo.Nodes[name]
		table.results[name] = &NodeResult{Node: n, Metric: Infinite}
	}
	rootResult := table.results[root.Name]
	rootResult.Metric = 0

	pq := make(candidateQueue, 0, len(table.results))
	heap.Init(&pq)
	heap.Push(&pq, &candidate{node: root, metric: 0})

	settled := make(map[string]bool, len(table.results))

	for pq.Len() > 0 {
		cand := heap.Pop(&pq).(*candidate)
		c := table.results[cand.node.Name]
		if settled[c.Node.Name] {
			continue // stale lazy-decrease-key entry
		}
		if cand.metric != c.Metric {
			continue // superseded by a better relaxation since this was pushed
		}
		settled[c.Node.Name] = true

		// Pseudonodes never reach this point: topology.LogicalNeighbors
		// makes them transparent, so every candidate popped here is Real
		// by construction (see DESIGN.md decision D-PN).
		overloaded := c.Node.Overloaded(level)

		for _, ne := range topo.LogicalNeighbors(c.Node, level) {
			if !ne.Reachable {
				continue
			}
			n, ok := table.results[ne.Neighbor.Name]
			if !ok {
				// BFS and relaxation must see the same reachable set.
				panic(fmt.Sprintf("spf: neighbor %s of %s not in BFS-reachable set", ne.Neighbor.Name, c.Node.Name))
			}

			w := ne.Edge.Metric[level.Index()]
			if overloaded {
				w = Infinite
			}
			cost := saturatingAdd(c.Metric, w)

			kind := topology.IPNH
			if ne.Edge.IsLSPAdjacency {
				kind = topology.LSPNH
			}
			entry := PredecessorEntry{
				Node:     c.Node,
				OIF:      ne.Edge.From.Name,
				GwPrefix: gatewayPrefix(ne.Edge, level),
			}
			hop := firstHop(root, c, ne)

			switch {
			case cost < n.Metric:
				n.Metric = cost
				n.Predecessors = [2][]PredecessorEntry{}
				n.NextHops = [2][]NextHop{}
				addPredecessor(&n.Predecessors[kind], entry)
				mergeNextHops(n, c, hop, kind)
				heap.Push(&pq, &candidate{node: n.Node, metric: cost})
			case cost == n.Metric && cost < Infinite:
				addPredecessor(&n.Predecessors[kind], entry)
				mergeNextHops(n, c, hop, kind)
			}
		}
	}

	return table
}

// bfsReachable returns the names of every node reachable from root at
// level via a chain of two-way, Up logical adjacencies, including root
// itself. This is a pure reachability scan (unit edge weights are
// irrelevant to it) run ahead of relaxation so that Compute never has to
// special-case an unvisited node mid-loop.
func bfsReachable(topo *topology.Topology, root *topology.Node, level topology.Level) []string {
	visited := map[string]bool{root.Name: true}
	queue := []*topology.Node{root}
	order := []string{root.Name}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, ne := range topo.LogicalNeighbors(n, level) {
			if !ne.Reachable || visited[ne.Neighbor.Name] {
				continue
			}
			visited[ne.Neighbor.Name] = true
			order = append(order, ne.Neighbor.Name)
			queue = append(queue, ne.Neighbor)
		}
	}

	return order
}

// gatewayPrefix returns the far-end gateway address of e at level, or ""
// if none is configured there — most links carry no attached prefix at
// all. The address is NOT canonicalized: masking it would collapse both
// ends of the link onto the same network string and lose the gateway.
func gatewayPrefix(e *topology.Edge, level topology.Level) string {
	p := e.To.PrefixByLevel[level.Index()]
	if p == nil {
		return ""
	}

	return p.Network
}

// addPredecessor appends entry to *list, panicking if an equal entry is
// already present. Per spec.md §7 this is an assertion on a broken
// relaxation invariant, not a condition a caller can recover from.
func addPredecessor(list *[]PredecessorEntry, entry PredecessorEntry) {
	for _, existing := range *list {
		if existing.equal(entry) {
			panic(errDuplicatePredecessor.Error() + ": " + entry.Node.Name + "/" + entry.OIF)
		}
	}
	*list = append(*list, entry)
}

// firstHop reports the NextHop this edge itself contributes, if c is root
// (the path's first hop is this very edge); for any other c it returns
// nil, signaling mergeNextHops to inherit c's already-established next-hop
// sets unchanged instead.
func firstHop(root *topology.Node, c *NodeResult, ne topology.NeighborEdge) []NextHop {
	if c.Node != root {
		return nil
	}

	return []NextHop{{Neighbor: ne.Neighbor, OIF: ne.Edge.From.Name}}
}

// mergeNextHops folds the next-hop contribution of relaxing c->n through an
// edge of the given kind into n. If hop is non-nil (c is root), it is
// merged directly into n.NextHops[kind]; otherwise both of c's own
// next-hop kind-lists are merged into n's, since the forwarding decision
// was already made upstream and does not change at this hop.
func mergeNextHops(n, c *NodeResult, hop []NextHop, kind topology.NextHopKind) {
	if hop != nil {
		for _, h := range hop {
			appendUniqueNextHop(&n.NextHops[kind], h)
		}

		return
	}
	for _, k := range []topology.NextHopKind{topology.IPNH, topology.LSPNH} {
		for _, h := range c.NextHops[k] {
			appendUniqueNextHop(&n.NextHops[k], h)
		}
	}
}

func appendUniqueNextHop(list *[]NextHop, h NextHop) {
	for _, existing := range *list {
		if existing.equal(h) {
			return
		}
	}
	*list = append(*list, h)
}
