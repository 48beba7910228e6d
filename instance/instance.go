package instance

import (
	"errors"

	"github.com/ngrouting/isisspf/netlog"
	"github.com/ngrouting/isisspf/prefixstore"
	"github.com/ngrouting/isisspf/route"
	"github.com/ngrouting/isisspf/spf"
	"github.com/ngrouting/isisspf/srconflict"
	"github.com/ngrouting/isisspf/srgb"
	"github.com/ngrouting/isisspf/topology"
)

// ErrNoRoot is returned by RunSPFAll when no root has been configured yet.
var ErrNoRoot = errors.New("instance: no root node set")

// cacheKey addresses one root/level SPF result slot.
type cacheKey struct {
	root  string
	level topology.Level
}

// cacheEntry pairs a computed Table with the Instance version it was
// computed at.
type cacheEntry struct {
	table   *spf.Table
	version uint64
}

// Instance is the process-wide singleton the construction API operates on
// (spec.md §6). Tests and callers may construct as many independent
// Instances as they like; nothing here is package-global.
type Instance struct {
	Topo    *topology.Topology
	root    *topology.Node
	version uint64
	cache   map[cacheKey]cacheEntry
}

// CreateInstance constructs a fresh, empty Instance.
func CreateInstance() *Instance {
	return &Instance{
		Topo:  topology.NewTopology(),
		cache: make(map[cacheKey]cacheEntry),
	}
}

func (inst *Instance) bump() {
	inst.version++
}

// CreateNode adds a node named name in area to the instance's topology.
func (inst *Instance) CreateNode(name, area string) (*topology.Node, error) {
	n, err := inst.Topo.CreateNode(name, area)
	if err != nil {
		netlog.ConfigError("create_node", err, map[string]interface{}{"node": name})

		return nil, err
	}

	return n, nil
}

// EnableSpring turns on SPRING for node, assigning it a default SRGB.
// A no-op (returns the existing SRGB) if already enabled.
func (inst *Instance) EnableSpring(node *topology.Node) *srgb.SRGB {
	if node.SRGB == nil {
		node.SRGB = srgb.NewDefault()
	}
	node.SpringEnabled = true
	inst.bump()

	return node.SRGB
}

// CreateEdge is the two-call create_edge + insert_edge construction API
// collapsed into one (spec.md §6): it builds the Edge(s) and bumps the
// instance version so any cached SPF covering either endpoint is
// invalidated.
func (inst *Instance) CreateEdge(
	a, b *topology.Node,
	ifaceA, ifaceB string,
	metricL1, metricL2 int64,
	levelMask topology.Level,
	bidirectional bool,
) (*topology.Edge, error) {
	e, err := inst.Topo.CreateEdge(a, b, ifaceA, ifaceB, metricL1, metricL2, levelMask, bidirectional, nil, nil)
	if err != nil {
		netlog.ConfigError("create_edge", err, map[string]interface{}{"a": a.Name, "b": b.Name})

		return nil, err
	}
	inst.bump()

	return e, nil
}

// CreateEdgeWithPrefixes is CreateEdge plus the gateway-prefix attachment
// topology.CreateEdge accepts directly — used by package fixture, whose
// built-in topologies attach a /24 or /30 prefix to most interfaces the
// way original_source/topo.c's build_*_topo functions do.
func (inst *Instance) CreateEdgeWithPrefixes(
	a, b *topology.Node,
	ifaceA, ifaceB string,
	metricL1, metricL2 int64,
	levelMask topology.Level,
	bidirectional bool,
	prefixA, prefixB *topology.Prefix,
) (*topology.Edge, error) {
	e, err := inst.Topo.CreateEdge(a, b, ifaceA, ifaceB, metricL1, metricL2, levelMask, bidirectional, prefixA, prefixB)
	if err != nil {
		netlog.ConfigError("create_edge", err, map[string]interface{}{"a": a.Name, "b": b.Name})

		return nil, err
	}
	inst.bump()

	return e, nil
}

// MarkPseudonode marks node as a Pseudonode at level l and invalidates
// cached SPF results.
func (inst *Instance) MarkPseudonode(node *topology.Node, l topology.Level) {
	inst.Topo.MarkPseudonode(node, l)
	inst.bump()
}

// EnableEdge toggles prefix visibility on ifaceName per
// topology.EnableEdge, invalidating cached SPF results.
func (inst *Instance) EnableEdge(node *topology.Node, ifaceName string, enable bool) error {
	if err := inst.Topo.EnableEdge(node, ifaceName, enable); err != nil {
		netlog.ConfigError("enable_edge", err, map[string]interface{}{"node": node.Name, "iface": ifaceName})

		return err
	}
	inst.bump()

	return nil
}

// SetStatus sets the administrative status of ifaceName's edge,
// invalidating cached SPF results.
func (inst *Instance) SetStatus(node *topology.Node, ifaceName string, status topology.EdgeStatus) error {
	if err := inst.Topo.SetStatus(node, ifaceName, status); err != nil {
		netlog.ConfigError("set_status", err, map[string]interface{}{"node": node.Name, "iface": ifaceName})

		return err
	}
	inst.bump()

	return nil
}

// SetMetric sets ifaceName's per-level metric, invalidating cached SPF
// results.
func (inst *Instance) SetMetric(node *topology.Node, ifaceName string, l topology.Level, metric int64) error {
	if err := inst.Topo.SetMetric(node, ifaceName, l, metric); err != nil {
		netlog.ConfigError("set_metric", err, map[string]interface{}{"node": node.Name, "iface": ifaceName})

		return err
	}
	inst.bump()

	return nil
}

// AttachPrefix attaches a new prefix to node at level, invalidating cached
// SPF/route results.
func (inst *Instance) AttachPrefix(node *topology.Node, network string, maskLen int, level topology.Level, metric int64) (*topology.Prefix, error) {
	p, err := prefixstore.AttachPrefix(node, network, maskLen, level, metric)
	if err != nil {
		netlog.ConfigError("attach_prefix", err, map[string]interface{}{"node": node.Name, "prefix": network})

		return nil, err
	}
	inst.bump()

	return p, nil
}

// DetachPrefix detaches prefix from node, invalidating cached results.
func (inst *Instance) DetachPrefix(node *topology.Node, prefix *topology.Prefix) error {
	if err := prefixstore.DetachPrefix(node, prefix); err != nil {
		netlog.ConfigError("detach_prefix", err, map[string]interface{}{"node": node.Name})

		return err
	}
	inst.bump()

	return nil
}

// UpdatePrefixSID binds prefix to SRGB index idx, bumping the version and
// re-running SR conflict resolution over the whole instance whenever the
// prefixstore reports the binding materially changed (spec.md §4.3).
func (inst *Instance) UpdatePrefixSID(prefix *topology.Prefix, idx int, algo topology.Algorithm, flags topology.PrefixSIDFlags) ([]srconflict.Conflict, error) {
	triggers, err := prefixstore.UpdatePrefixSID(prefix, idx, algo, flags)
	if err != nil {
		netlog.ConfigError("update_prefix_sid", err, map[string]interface{}{"prefix": prefix.Network})

		return nil, err
	}
	inst.bump()
	if !triggers {
		return nil, nil
	}

	return inst.ResolveConflicts(), nil
}

// ResolveConflicts runs the SR conflict resolver over every node in the
// instance's topology (spec.md §4.8's "global prefix/SID cross-product").
func (inst *Instance) ResolveConflicts() []srconflict.Conflict {
	nodes := make([]*topology.Node, 0, len(inst.Topo.Nodes))
	for _, name := range inst.Topo.SortedNodeNames() {
		nodes = append(nodes, inst.Topo.Nodes[name])
	}

	conflicts := srconflict.Resolve(nodes)
	netlog.Computed("resolve_conflicts", map[string]interface{}{"conflicts": len(conflicts)})

	return conflicts
}

// SetRoot designates node as the default SPF root for RunSPFAll.
func (inst *Instance) SetRoot(node *topology.Node) {
	inst.root = node
}

// Root returns the currently configured root, or nil if SetRoot has never
// been called.
func (inst *Instance) Root() *topology.Node {
	return inst.root
}

// Version returns the instance's current cache-invalidation version
// counter, for tests asserting a mutation did or did not bump it.
func (inst *Instance) Version() uint64 {
	return inst.version
}

// SPF returns the cached SPF Table for (root, level), recomputing it if no
// cached entry exists or the cached one predates the instance's current
// version (spec.md §5's "cached SPF validity").
func (inst *Instance) SPF(root *topology.Node, level topology.Level) *spf.Table {
	key := cacheKey{root: root.Name, level: level}
	if entry, ok := inst.cache[key]; ok && entry.version == inst.version {
		return entry.table
	}

	table := spf.Compute(inst.Topo, root, level)
	inst.cache[key] = cacheEntry{table: table, version: inst.version}
	netlog.Computed("compute_spf", map[string]interface{}{"root": root.Name, "level": level.String()})

	return table
}

// RunSPFAll computes (or returns the cached) SPF Table from the configured
// root at every level in {L1, L2}, mirroring the CLI's `run spf all`.
// Returns ErrNoRoot if SetRoot was never called.
func (inst *Instance) RunSPFAll() (map[topology.Level]*spf.Table, error) {
	if inst.root == nil {
		return nil, ErrNoRoot
	}
	out := make(map[topology.Level]*spf.Table, 2)
	for _, l := range []topology.Level{topology.L1, topology.L2} {
		out[l] = inst.SPF(inst.root, l)
	}

	return out, nil
}

// Routes computes the route table rooted at root for level, driving SPF
// first (via the cache) and then the route builder (component C5) over
// its result.
func (inst *Instance) Routes(root *topology.Node, level topology.Level) []*route.Route {
	table := inst.SPF(root, level)

	return route.Build(inst.Topo, table, level)
}

// RouteTable computes the route table rooted at root for level and indexes
// it for longest-prefix-match lookup — the view the CLI's address-lookup
// debugging and any forwarding-plane consumer reads.
func (inst *Instance) RouteTable(root *topology.Node, level topology.Level) *route.Table {
	return route.NewTable(inst.Routes(root, level))
}

// InvalidateAll forces every cached SPF Table to be recomputed on next
// access, without otherwise mutating the topology. Exposed for tests and
// for the CLI's `debug` commands that want a guaranteed-fresh view.
func (inst *Instance) InvalidateAll() {
	inst.bump()
}
