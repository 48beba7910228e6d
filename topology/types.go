package topology

import "github.com/ngrouting/isisspf/srgb"

// Level is the IS-IS routing hierarchy level. It doubles as a bitmask when
// used to describe which levels a link or node participates in: L12 is
// literally L1|L2.
type Level uint8

// Level values. L12 means "member of both L1 and L2"; iteration over a
// level mask visits {L1, L2}, never L12 itself.
const (
	L1  Level = 1
	L2  Level = 2
	L12 Level = L1 | L2
)

// String renders a Level for logs and test failure messages.
func (l Level) String() string {
	switch l {
	case L1:
		return "L1"
	case L2:
		return "L2"
	case L12:
		return "L12"
	default:
		return "L?"
	}
}

// Has reports whether mask includes level l (l must be L1 or L2).
func (mask Level) Has(l Level) bool { return mask&l == l }

// Levels expands a level mask into the concrete levels it contains, in
// {L1, L2} order. A bare L1 or L2 expands to itself.
func Levels(mask Level) []Level {
	out := make([]Level, 0, 2)
	if mask.Has(L1) {
		out = append(out, L1)
	}
	if mask.Has(L2) {
		out = append(out, L2)
	}

	return out
}

// Index returns the [0,1] slot used to address per-level arrays ([2]T).
// Panics on anything but L1/L2 — indexing with L12 or 0 is a programmer
// error, since per-level storage has exactly two slots.
func (l Level) Index() int {
	switch l {
	case L1:
		return 0
	case L2:
		return 1
	default:
		panic("topology: Level.Index called on non-concrete level " + l.String())
	}
}

// NodeType classifies a node's role at a given level.
type NodeType uint8

const (
	// Real is an ordinary router.
	Real NodeType = iota
	// Pseudonode represents a broadcast LAN segment, transparent to SPF's
	// logical-neighbor view but visible to LFA's physical-neighbor view.
	Pseudonode
)

// Direction classifies an EdgeEnd relative to data flow.
type Direction uint8

const (
	Outgoing Direction = iota
	Incoming
)

// EdgeStatus is the administrative/operational state of an Edge.
type EdgeStatus uint8

const (
	Up EdgeStatus = iota
	Down
)

// ProtectionType is the configured protection mode of a link.
type ProtectionType uint8

const (
	ProtectionNone ProtectionType = iota
	ProtectionLink
	ProtectionLinkNode
)

// NextHopKind distinguishes ordinary IP next-hops from LSP (MPLS tunnel)
// next-hops; every SPF relaxation and route entry tracks both in parallel.
type NextHopKind uint8

const (
	IPNH NextHopKind = iota
	LSPNH
)

// EdgeEndFlags is a configuration-flags bitfield on an EdgeEnd.
type EdgeEndFlags uint8

const (
	// NoEligibleBackup excludes this interface's owning node from being
	// considered as an LFA candidate neighbor.
	NoEligibleBackup EdgeEndFlags = 1 << 0
)

// ExternalMetricType distinguishes internal (IS-IS native) prefix metrics
// from redistributed external ones (RFC 1195), restored from prefix.c.
type ExternalMetricType uint8

const (
	MetricInternal ExternalMetricType = iota
	MetricExternal
)

// PrefixFlags is a per-prefix flags bitmask.
type PrefixFlags uint8

const (
	PrefixDown     PrefixFlags = 1 << 0
	PrefixExternal PrefixFlags = 1 << 1
)

// Algorithm identifies the SPF algorithm a prefix-SID is bound to.
type Algorithm uint8

const (
	AlgoSPF       Algorithm = 0
	AlgoStrictSPF Algorithm = 1
)

// PrefixSIDFlags mirrors the IS-IS SR prefix-SID sub-TLV flag bits. Bit
// positions are LSB-to-MSB bit index, per spec.md §6.
type PrefixSIDFlags uint8

const (
	FlagL PrefixSIDFlags = 1 << 2
	FlagV PrefixSIDFlags = 1 << 3
	FlagE PrefixSIDFlags = 1 << 4
	FlagP PrefixSIDFlags = 1 << 5
	FlagN PrefixSIDFlags = 1 << 6
	FlagR PrefixSIDFlags = 1 << 7
)

// PrefixSID is a segment identifier bound to a Prefix.
//
// Invariant (spec.md §3): the prefix<->SID association is bidirectional —
// either both Prefix.SID and PrefixSID.Owner point at each other, or the
// prefix has no SID at all. Active reflects the outcome of conflict
// resolution (package srconflict); a losing binding is deactivated, not
// destroyed: the SID stays attached to its prefix while Active is false,
// but its SRGB bit is released until it wins again.
type PrefixSID struct {
	Value     int // SRGB index, or an absolute 20-bit MPLS label
	Algorithm Algorithm
	Flags     PrefixSIDFlags
	Active    bool
	Owner     *Prefix // non-owning back-reference; nil once detached
}

// Prefix is an IPv4 prefix instance attached to a node at one level.
//
// Two prefixes are equal iff their canonical (network, MaskLen) match
// (spec.md §6); Level is not compared (see Prefix.Equal).
type Prefix struct {
	Network            string // dotted-quad network address, pre-canonicalization
	MaskLen            int    // [0,32]
	Level              Level  // L1 or L2 (never L12 — attachment is per-level)
	Metric             int64
	Flags              PrefixFlags
	ExternalMetricType ExternalMetricType
	HostNode           *Node
	SID                *PrefixSID // nil if unassigned
}

// EdgeEnd is a directed interface anchored at a Node.
type EdgeEnd struct {
	Name          string
	Direction     Direction
	Owner         *Node
	PrefixByLevel [2]*Prefix // attached prefix per level, nil if none; kept while the interface is disabled
	Flags         EdgeEndFlags
	edge          *Edge // the Edge this end is the From side of; nil until inserted
}

// Edge is the owning node's directed view of a link. A real bidirectional
// link is represented as two Edge objects — one per owning node — joined
// by Reverse; a unidirectional LSP adjacency has exactly one, with
// Reverse == nil.
type Edge struct {
	ID         string
	From       *EdgeEnd // owned by the node this Edge belongs to
	To         *EdgeEnd // the far end's EdgeEnd, owned by the neighboring node
	Metric     [2]int64 // per-level metric
	LevelMask  Level
	Protection ProtectionType
	Status     EdgeStatus
	Reverse    *Edge // the symmetric Edge anchored at To.Owner; nil for one-way links

	// IsLSPAdjacency marks this edge as an LSP (MPLS tunnel) adjacency
	// rather than a regular IGP link. SPF relaxation routes such edges'
	// predecessor entries into the LSPNH kind instead of IPNH.
	IsLSPAdjacency bool
}

// TwoWayUp reports whether this edge has a reverse counterpart that is
// itself UP — the precondition spec.md §3 requires for SPF to traverse it.
func (e *Edge) TwoWayUp() bool {
	return e.Reverse != nil && e.Status == Up && e.Reverse.Status == Up
}

// Node is a router (or pseudonode) in the topology.
type Node struct {
	Name          string
	Area          string
	RouterID      uint32
	SpringEnabled bool
	SRGB          *srgb.SRGB

	Interfaces []*EdgeEnd // this node's owned interfaces, insertion order
	Prefixes   [2][]*Prefix

	nodeType   [2]NodeType
	overloaded [2]bool
	outEdges   []*Edge // edges whose From.Owner == this node, insertion order
}

// NodeType returns the node's role at level l (L1 or L2).
func (n *Node) NodeType(l Level) NodeType { return n.nodeType[l.Index()] }

// SetNodeType sets the node's role at level l.
func (n *Node) SetNodeType(l Level, t NodeType) { n.nodeType[l.Index()] = t }

// Overloaded reports the overload flag at level l.
func (n *Node) Overloaded(l Level) bool { return n.overloaded[l.Index()] }

// SetOverloaded sets the overload flag at level l.
func (n *Node) SetOverloaded(l Level, v bool) { n.overloaded[l.Index()] = v }

// OutEdges returns the edges anchored at (owned by) this node, in
// insertion order. Used by SPF's relaxation loop and by LFA's physical
// neighbor iterator.
func (n *Node) OutEdges() []*Edge { return n.outEdges }
