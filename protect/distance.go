package protect

import (
	"container/heap"

	"github.com/ngrouting/isisspf/topology"
)

// DistanceCache memoizes physical-topology shortest-path distances so a
// single LFA/RLFA computation — which queries distances from S, from each
// of S's neighbors, and to the protected destination from many candidate
// repair points — never runs the same Dijkstra twice.
//
// Unlike package spf, every distance here is computed over
// topology.PhysicalNeighbors: a pseudonode is a real hop, not transparent,
// because LFA reasons about actual interfaces and actual backup next-hops.
type DistanceCache struct {
	topo  *topology.Topology
	level topology.Level

	fwd map[pruneKey]map[string]int64 // root, pruned-edge -> dest -> dist
	rev map[pruneKey]map[string]int64 // dest, pruned-edge -> src -> dist (reverse SPF)
}

// pruneKey identifies one Dijkstra run: a root/dest node, optionally with
// one edge ID excluded from the graph (P-space and Q-space membership is
// tested by comparing a pruned-topology distance against the unpruned one).
type pruneKey struct {
	node   string
	pruned string // "" means no edge pruned
}

func NewDistanceCache(topo *topology.Topology, level topology.Level) *DistanceCache {
	return &DistanceCache{
		topo:  topo,
		level: level,
		fwd:   make(map[pruneKey]map[string]int64),
		rev:   make(map[pruneKey]map[string]int64),
	}
}

// forward returns, for every node reachable from root, its shortest
// distance from root — pruning prunedEdge (and its reverse) if non-nil.
func (dc *DistanceCache) forward(root *topology.Node, prunedEdge *topology.Edge) map[string]int64 {
	key := pruneKey{node: root.Name, pruned: edgeKey(prunedEdge)}
	if d, ok := dc.fwd[key]; ok {
		return d
	}
	d := dijkstraPhysical(dc.topo, root, dc.level, false, prunedEdge)
	dc.fwd[key] = d

	return d
}

// backward returns, for every node that can reach dest, its shortest
// distance to dest — pruning prunedEdge (and its reverse) if non-nil. This
// is Q-space's reverse SPF: distances are computed on the transposed
// physical graph rooted at dest.
func (dc *DistanceCache) backward(dest *topology.Node, prunedEdge *topology.Edge) map[string]int64 {
	key := pruneKey{node: dest.Name, pruned: edgeKey(prunedEdge)}
	if d, ok := dc.rev[key]; ok {
		return d
	}
	d := dijkstraPhysical(dc.topo, dest, dc.level, true, prunedEdge)
	dc.rev[key] = d

	return d
}

// dist returns the shortest unpruned physical distance from a to b, over
// the level dc was constructed with.
func (dc *DistanceCache) dist(a, b *topology.Node) (int64, bool) {
	d := dc.forward(a, nil)
	v, ok := d[b.Name]

	return v, ok
}

func edgeKey(e *topology.Edge) string {
	if e == nil {
		return ""
	}

	return e.ID
}

type pqItem struct {
	name   string
	metric int64
}

type pqHeap []*pqItem

func (h pqHeap) Len() int            { return len(h) }
func (h pqHeap) Less(i, j int) bool  { return h[i].metric < h[j].metric }
func (h pqHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *pqHeap) Push(x interface{}) { *h = append(*h, x.(*pqItem)) }
func (h *pqHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

// dijkstraPhysical computes single-source shortest distances over the
// physical topology. reverse=false walks topo.PhysicalNeighbors(n, level)
// directly (distance FROM root). reverse=true walks the transpose graph —
// for node n, its transpose neighbors are the far ends of n's own physical
// edges, reached via each edge's Reverse — producing distance TO root
// (used for Q-space, which asks "can X reach D").
//
// prunedEdge, if non-nil, is excluded in both directions (its own ID and
// its Reverse's ID), modeling the protected link/node as failed.
func dijkstraPhysical(topo *topology.Topology, root *topology.Node, level topology.Level, reverse bool, prunedEdge *topology.Edge) map[string]int64 {
	var prunedReverseID string
	if prunedEdge != nil && prunedEdge.Reverse != nil {
		prunedReverseID = prunedEdge.Reverse.ID
	}

	dist := make(map[string]int64, len(topo.Nodes))
	dist[root.Name] = 0
	settled := make(map[string]bool, len(topo.Nodes))

	pq := &pqHeap{{name: root.Name, metric: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*pqItem)
		if settled[cur.name] {
			continue
		}
		settled[cur.name] = true
		n := topo.Nodes[cur.name]

		for _, ne := range topo.PhysicalNeighbors(n, level) {
			if ne.Edge.ID == edgeKey(prunedEdge) || ne.Edge.ID == prunedReverseID {
				continue
			}

			var (
				farName string
				weight  int64
				ok      bool
			)
			if !reverse {
				if !ne.Reachable {
					continue
				}
				farName, weight, ok = ne.Neighbor.Name, ne.Edge.Metric[level.Index()], true
			} else {
				// Transpose edge: n's own outgoing edge e (n->m) has
				// Reverse m->n; that Reverse IS the edge we relax here,
				// weighted by metric(m->n), landing on m.
				re := ne.Edge.Reverse
				if re == nil || re.ID == edgeKey(prunedEdge) || re.ID == prunedReverseID {
					continue
				}
				if !ne.Reachable {
					continue
				}
				farName, weight, ok = re.From.Owner.Name, re.Metric[level.Index()], true
			}
			if !ok {
				continue
			}

			cost := cur.metric + weight
			if existing, seen := dist[farName]; !seen || cost < existing {
				dist[farName] = cost
				heap.Push(pq, &pqItem{name: farName, metric: cost})
			}
		}
	}

	return dist
}
