package topology

import (
	"fmt"
	"sort"
)

// Topology is the process-wide catalog of nodes and edges. It carries no
// locking of its own: per spec.md §5, the core is single-threaded and
// cooperative, and callers (package instance) are responsible for not
// overlapping a topology mutation with an in-flight SPF/route/protection
// computation on the same Topology.
type Topology struct {
	Nodes       map[string]*Node
	nextEdgeNum uint64
}

// NewTopology constructs an empty Topology.
func NewTopology() *Topology {
	return &Topology{Nodes: make(map[string]*Node)}
}

// CreateNode adds a new node to the topology. Returns ErrDuplicateNode if
// name is already present — construction errors are user configuration
// errors, not programmer errors, since a duplicate name is a caller
// mistake rather than a broken invariant.
func (t *Topology) CreateNode(name, area string) (*Node, error) {
	if _, exists := t.Nodes[name]; exists {
		return nil, ErrDuplicateNode
	}
	n := &Node{
		Name: name,
		Area: area,
		SRGB: nil, // assigned explicitly when SPRING is enabled
	}
	t.Nodes[name] = n

	return n, nil
}

// GetNode looks up a node by name.
func (t *Topology) GetNode(name string) (*Node, error) {
	n, ok := t.Nodes[name]
	if !ok {
		return nil, ErrUnknownNode
	}

	return n, nil
}

// MarkPseudonode sets the node's type to Pseudonode at level l.
func (t *Topology) MarkPseudonode(node *Node, l Level) {
	node.SetNodeType(l, Pseudonode)
}

func (t *Topology) nextEdgeID() string {
	t.nextEdgeNum++

	return fmt.Sprintf("edge%d", t.nextEdgeNum)
}

// addInterface appends end to owner.Interfaces, enforcing MaxInterfaces.
func (t *Topology) addInterface(owner *Node, end *EdgeEnd) error {
	if len(owner.Interfaces) >= MaxInterfaces {
		return ErrTooManyInterfaces
	}
	owner.Interfaces = append(owner.Interfaces, end)

	return nil
}

// NewEdgeEnd constructs an EdgeEnd owned by owner, not yet attached to any
// edge or interface list.
func NewEdgeEnd(name string, owner *Node, dir Direction) *EdgeEnd {
	return &EdgeEnd{Name: name, Owner: owner, Direction: dir}
}

// CreateEdge builds one or two Edge objects linking A and B, attaching the
// owning interfaces to each node. This is the topology-level counterpart
// of the construction API's create_edge + insert_edge pair (spec.md §6);
// package instance wraps it as a single CreateEdge call.
//
// bidirectional=true creates symmetric Edge objects on both A and B,
// joined by Reverse (a real link). bidirectional=false creates a single
// Edge anchored at A only (a unidirectional LSP adjacency) — To still
// refers to B's EdgeEnd (registered on B's Interfaces), but B gets no
// Edge of its own pointing back.
//
// metricL1/metricL2 populate Edge.Metric for both directions identically;
// callers needing asymmetric metrics should call SetMetric afterward.
func (t *Topology) CreateEdge(
	a, b *Node,
	ifaceA, ifaceB string,
	metricL1, metricL2 int64,
	levelMask Level,
	bidirectional bool,
	prefixA, prefixB *Prefix,
) (*Edge, error) {
	return t.createEdge(a, b, ifaceA, ifaceB, metricL1, metricL2, levelMask, bidirectional, prefixA, prefixB, !bidirectional)
}

// CreateLSPAdjacency builds a unidirectional LSP (MPLS tunnel) adjacency
// from a to b — the kind of edge whose predecessor entries route into
// NextHopKind LSPNH instead of IPNH during SPF relaxation.
func (t *Topology) CreateLSPAdjacency(a, b *Node, ifaceA, ifaceB string, metric int64, levelMask Level) (*Edge, error) {
	return t.createEdge(a, b, ifaceA, ifaceB, metric, metric, levelMask, false, nil, nil, true)
}

func (t *Topology) createEdge(
	a, b *Node,
	ifaceA, ifaceB string,
	metricL1, metricL2 int64,
	levelMask Level,
	bidirectional bool,
	prefixA, prefixB *Prefix,
	isLSP bool,
) (*Edge, error) {
	endA := NewEdgeEnd(ifaceA, a, Outgoing)
	endB := NewEdgeEnd(ifaceB, b, Incoming)
	if err := t.addInterface(a, endA); err != nil {
		return nil, err
	}
	if err := t.addInterface(b, endB); err != nil {
		return nil, err
	}
	if prefixA != nil {
		endA.PrefixByLevel[prefixA.Level.Index()] = prefixA
		attachPrefix(a, prefixA)
	}
	if prefixB != nil {
		endB.PrefixByLevel[prefixB.Level.Index()] = prefixB
		attachPrefix(b, prefixB)
	}

	edgeAB := &Edge{
		ID:             t.nextEdgeID(),
		From:           endA,
		To:             endB,
		Metric:         [2]int64{metricL1, metricL2},
		LevelMask:      levelMask,
		Status:         Up,
		IsLSPAdjacency: isLSP,
	}
	endA.edge = edgeAB
	a.outEdges = append(a.outEdges, edgeAB)

	if bidirectional {
		edgeBA := &Edge{
			ID:        t.nextEdgeID(),
			From:      endB,
			To:        endA,
			Metric:    [2]int64{metricL1, metricL2},
			LevelMask: levelMask,
			Status:    Up,
		}
		endB.edge = edgeBA
		b.outEdges = append(b.outEdges, edgeBA)
		edgeAB.Reverse = edgeBA
		edgeBA.Reverse = edgeAB
	}

	return edgeAB, nil
}

// attachPrefix appends p to node's per-level prefix list and sets its
// HostNode. Idempotent against duplicate attach of the same pointer.
func attachPrefix(node *Node, p *Prefix) {
	idx := p.Level.Index()
	for _, existing := range node.Prefixes[idx] {
		if existing == p {
			return
		}
	}
	p.HostNode = node
	node.Prefixes[idx] = append(node.Prefixes[idx], p)
}

// detachPrefix removes p from node's per-level prefix list, if present.
func detachPrefix(node *Node, p *Prefix) {
	idx := p.Level.Index()
	list := node.Prefixes[idx]
	for i, existing := range list {
		if existing == p {
			node.Prefixes[idx] = append(list[:i], list[i+1:]...)

			return
		}
	}
}

// EnableEdge toggles the visibility of the given interface's attached
// prefixes; it does not change SPF reachability. Disabling detaches
// the interface's per-level prefixes from the owning node's prefix list
// (spec.md §4.1); enabling reattaches them. The Edge's own Status is left
// untouched — Status models administrative up/down of the link itself and
// is changed via SetStatus.
func (t *Topology) EnableEdge(node *Node, ifaceName string, enable bool) error {
	end, err := findInterface(node, ifaceName)
	if err != nil {
		return err
	}
	for _, l := range []Level{L1, L2} {
		p := end.PrefixByLevel[l.Index()]
		if p == nil {
			continue
		}
		if enable {
			attachPrefix(node, p)
		} else {
			detachPrefix(node, p)
		}
	}

	return nil
}

// SetStatus sets the administrative status of the edge owned by the given
// interface. Disabling a link it is the mechanism SPF honors directly
// (edge.Status == Down is skipped during relaxation); it is distinct from
// EnableEdge, which only toggles prefix visibility.
func (t *Topology) SetStatus(node *Node, ifaceName string, status EdgeStatus) error {
	end, err := findInterface(node, ifaceName)
	if err != nil {
		return err
	}
	if end.edge == nil {
		return ErrUnknownInterface
	}
	end.edge.Status = status

	return nil
}

// SetMetric sets the per-level metric of the edge owned by the given
// interface.
func (t *Topology) SetMetric(node *Node, ifaceName string, l Level, metric int64) error {
	end, err := findInterface(node, ifaceName)
	if err != nil {
		return err
	}
	if end.edge == nil {
		return ErrUnknownInterface
	}
	end.edge.Metric[l.Index()] = metric

	return nil
}

// SetProtection sets the configured protection mode of the edge owned by
// the given interface (link, link-node, or none). The CLI's backup-spf
// debug command reads it to choose which interfaces to report;
// protect.FindLFA and protect.ComputeRLFA do not read it.
func (t *Topology) SetProtection(node *Node, ifaceName string, p ProtectionType) error {
	end, err := findInterface(node, ifaceName)
	if err != nil {
		return err
	}
	if end.edge == nil {
		return ErrUnknownInterface
	}
	end.edge.Protection = p

	return nil
}

// SetNoEligibleBackup sets or clears the NoEligibleBackup flag on the
// given interface, excluding (or re-admitting) its owning node as an LFA
// candidate neighbor for any other interface's protection computation.
func (t *Topology) SetNoEligibleBackup(node *Node, ifaceName string, exclude bool) error {
	end, err := findInterface(node, ifaceName)
	if err != nil {
		return err
	}
	if exclude {
		end.Flags |= NoEligibleBackup
	} else {
		end.Flags &^= NoEligibleBackup
	}

	return nil
}

func findInterface(node *Node, name string) (*EdgeEnd, error) {
	for _, e := range node.Interfaces {
		if e.Name == name {
			return e, nil
		}
	}

	return nil, ErrUnknownInterface
}

// NeighborEdge pairs a neighbor with the edge used to reach it.
// For LogicalNeighbors, Edge may be a synthesized composite edge through a
// pseudonode; for PhysicalNeighbors, Edge is always a real topology edge
// and Incoming carries its Reverse (nil if none).
//
// Reachable reports whether this hop satisfies spec.md §3's two-way
// adjacency invariant (and is administratively Up); SPF relaxation and LFA
// both skip NeighborEdges with Reachable == false rather than re-deriving
// the check themselves.
type NeighborEdge struct {
	Neighbor  *Node
	Edge      *Edge // outgoing edge used to reach Neighbor
	Incoming  *Edge // the reverse-direction edge, for two-way checks; may be nil
	Reachable bool
}

// edgeReachable reports whether e alone (ignoring any PN composition) is
// usable: Up, and — unless it is a one-way LSP adjacency, which by design
// has no reverse — backed by an Up Reverse edge.
func edgeReachable(e *Edge) bool {
	if e.Status != Up {
		return false
	}
	if e.IsLSPAdjacency {
		return true
	}

	return e.Reverse != nil && e.Reverse.Status == Up
}

// LogicalNeighbors yields the logical neighbors of n at level l, making
// pseudonodes transparent: iterating through a PN P yields the real nodes
// attached to P, with a composite edge whose per-level metric is
// metric(n->P) (by IS-IS broadcast convention, metric(P->real) is zero).
//
// Order is Interfaces insertion order, then (for neighbors reached via a
// PN) the PN's own interface order — deterministic for a given build
// sequence, which is what SPF and its tests rely on for predecessor
// ordering.
func (t *Topology) LogicalNeighbors(n *Node, l Level) []NeighborEdge {
	var out []NeighborEdge
	for _, e := range n.outEdges {
		if !e.LevelMask.Has(l) {
			continue
		}
		far := e.To.Owner
		if far.NodeType(l) == Pseudonode {
			// Transparent traversal: expand PN's own outgoing edges.
			for _, pe := range far.outEdges {
				if !pe.LevelMask.Has(l) {
					continue
				}
				real := pe.To.Owner
				if real == n {
					continue // do not loop back to self through the PN
				}
				composite := &Edge{
					ID:             e.ID + ">" + pe.ID,
					From:           e.From,
					To:             pe.To,
					Metric:         e.Metric, // metric(n->P); metric(P->real)==0 by convention
					LevelMask:      l,
					Status:         Up,
					Reverse:        pe.Reverse, // for two-way check against the PN's link to real
					IsLSPAdjacency: e.IsLSPAdjacency,
				}
				out = append(out, NeighborEdge{
					Neighbor:  real,
					Edge:      composite,
					Incoming:  pe.Reverse,
					Reachable: edgeReachable(e) && edgeReachable(pe),
				})
			}
			continue
		}
		out = append(out, NeighborEdge{Neighbor: far, Edge: e, Incoming: e.Reverse, Reachable: edgeReachable(e)})
	}

	return out
}

// PhysicalNeighbors yields the physical neighbors of n at level l without
// pseudonode transparency — LFA must see the PN itself as a neighbor, not
// the real nodes behind it.
func (t *Topology) PhysicalNeighbors(n *Node, l Level) []NeighborEdge {
	var out []NeighborEdge
	for _, e := range n.outEdges {
		if !e.LevelMask.Has(l) {
			continue
		}
		out = append(out, NeighborEdge{
			Neighbor:  e.To.Owner,
			Edge:      e,
			Incoming:  e.Reverse,
			Reachable: edgeReachable(e),
		})
	}

	return out
}

// SortedNodeNames returns all node names in the topology, sorted
// lexicographically — used wherever deterministic iteration order matters
// (route builder winner ties, instance-wide conflict resolution).
func (t *Topology) SortedNodeNames() []string {
	out := make([]string, 0, len(t.Nodes))
	for name := range t.Nodes {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}
