// Package route builds, for a single SPF root, the winning route per
// distinct prefix in the topology (component C5): the best-preference,
// least-cost hosting node, its next-hop set copied from the SPF result,
// and — for SR-capable routes — the MPLS label to push.
package route

import (
	"fmt"
	"sort"

	"github.com/ngrouting/isisspf/spf"
	"github.com/ngrouting/isisspf/srgb"
	"github.com/ngrouting/isisspf/topology"
)

// InstallState classifies how a Route changed relative to a prior build,
// restored from this stack's own `INSTALL` vs `NOT-INSTALLED` bookkeeping
// so the CLI can show routing churn between two runs.
type InstallState int

const (
	// Unchanged means this exact prefix had an identical next-hop set in
	// the prior build (or there was no prior build to compare against).
	Unchanged InstallState = iota
	// Installed means this prefix is new, or its next-hop set changed.
	Installed
	// Withdrawn means this prefix existed in the prior build but is absent
	// from the current one (no longer reachable, or no longer hosted).
	Withdrawn
)

func (s InstallState) String() string {
	switch s {
	case Installed:
		return "INSTALL"
	case Withdrawn:
		return "WITHDRAWN"
	default:
		return "UNCHANGED"
	}
}

// Route is the winning outcome for one canonical prefix string at one
// level, as seen from a single SPF root.
type Route struct {
	Network  string
	MaskLen  int
	Level    topology.Level
	Winner   *topology.Prefix
	Metric   int64 // spf_metric(winner.HostNode) + winner.Metric
	NextHops [2][]spf.NextHop

	// LikePrefixList holds every hosting prefix that shares the winner's
	// preference class, winner first, in ascending-cost order — what
	// `show sr tunnels` and `debug node routes` walk to find alternates.
	LikePrefixList []*topology.Prefix

	// MPLSLabels is the label stack to push for this route, derived from
	// the winner's active prefix-SID translated through its owning node's
	// SRGB. Empty for a non-SR or SR-inactive winner. This models a
	// single-label stack (the prefix-SID itself); multi-hop SR-TE label
	// stacking is out of scope — see DESIGN.md.
	MPLSLabels []int

	InstallState InstallState
}

// candidate is a prefix instance paired with its cost tuple, used only
// while ranking a group of same-network prefixes.
type candidate struct {
	prefix *topology.Prefix
	pref   int
	cost   int64
}

// Build computes one Route per distinct (network, maskLen) attached
// anywhere in topo at level, from root's perspective (table must be
// table := spf.Compute(topo, root, level)). Prefixes hosted on a node
// root's SPF did not reach are excluded from consideration entirely; a
// prefix whose only hosts are all unreachable produces no Route.
func Build(topo *topology.Topology, table *spf.Table, level topology.Level) []*Route {
	groups := map[string][]candidate{}
	for _, name := range topo.SortedNodeNames() {
		n := topo.Nodes[name]
		for _, p := range n.Prefixes[level.Index()] {
			metric, ok := table.Metric(n)
			if !ok {
				continue
			}
			key := p.Canonical()
			groups[key] = append(groups[key], candidate{
				prefix: p,
				pref:   Preference(p.Flags, level),
				cost:   saturatingSum(metric, p.Metric),
			})
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	routes := make([]*Route, 0, len(keys))
	for _, key := range keys {
		routes = append(routes, buildOne(table, groups[key]))
	}

	return routes
}

func buildOne(table *spf.Table, candidates []candidate) *Route {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].pref != candidates[j].pref {
			return candidates[i].pref < candidates[j].pref
		}

		return candidates[i].cost < candidates[j].cost
	})
	winner := candidates[0]

	var like []*topology.Prefix
	for _, c := range candidates {
		if c.pref == winner.pref {
			like = append(like, c.prefix)
		}
	}

	r := &Route{
		Network:        winner.prefix.Network,
		MaskLen:        winner.prefix.MaskLen,
		Level:          winner.prefix.Level,
		Winner:         winner.prefix,
		Metric:         winner.cost,
		LikePrefixList: like,
	}

	if result := table.Result(winner.prefix.HostNode); result != nil {
		r.NextHops = result.NextHops
	}
	r.MPLSLabels = mplsLabels(winner.prefix)

	return r
}

func mplsLabels(p *topology.Prefix) []int {
	if p.SID == nil || !p.SID.Active {
		return nil
	}
	node := p.HostNode
	if node == nil || node.SRGB == nil {
		return nil
	}
	label := node.SRGB.LabelFromIndex(p.SID.Value)
	if label == srgb.NoLabel {
		return nil
	}

	return []int{label}
}

func saturatingSum(a, b int64) int64 {
	sum := a + b
	if sum > spf.Infinite || sum < 0 {
		return spf.Infinite
	}

	return sum
}

// Diff compares two Route slices covering the same level from the same
// root and returns a copy of next with InstallState set per route: a
// prefix absent from prev, or present with a different NextHops set, is
// Installed; a prefix in prev absent from next is represented as a
// Withdrawn stub carrying prev's own winner and metric. Everything else is
// Unchanged.
func Diff(prev, next []*Route) []*Route {
	prevByKey := make(map[string]*Route, len(prev))
	for _, r := range prev {
		prevByKey[key(r)] = r
	}
	seen := make(map[string]bool, len(next))

	out := make([]*Route, 0, len(next))
	for _, r := range next {
		k := key(r)
		seen[k] = true
		cp := *r
		if old, ok := prevByKey[k]; !ok || !sameNextHops(old.NextHops, r.NextHops) {
			cp.InstallState = Installed
		} else {
			cp.InstallState = Unchanged
		}
		out = append(out, &cp)
	}
	for _, r := range prev {
		if seen[key(r)] {
			continue
		}
		cp := *r
		cp.InstallState = Withdrawn
		out = append(out, &cp)
	}

	return out
}

func key(r *Route) string {
	return fmt.Sprintf("%s/%d@%s", r.Network, r.MaskLen, r.Level)
}

func sameNextHops(a, b [2][]spf.NextHop) bool {
	for kind := range a {
		if len(a[kind]) != len(b[kind]) {
			return false
		}
		seen := map[spf.NextHop]bool{}
		for _, h := range a[kind] {
			seen[h] = true
		}
		for _, h := range b[kind] {
			if !seen[h] {
				return false
			}
		}
	}

	return true
}
