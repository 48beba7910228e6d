package route

import "github.com/ngrouting/isisspf/topology"

// Preference computes the route-preference class used to rank candidate
// hosting nodes for the same prefix: lower is better, matching
// administrative-distance convention.
//
// Classes (L1-internal best, L2-external-down worst) follow the ordering
// this stack's CLI prints natively-sourced prefixes ahead of redistributed
// ones, and L1 ahead of L2 for an L12 node's own view — the exact numeric
// route_preference() table wasn't part of the retrieved reference source,
// so the four-class ranking below is this package's own decision,
// recorded in DESIGN.md.
func Preference(flags topology.PrefixFlags, level topology.Level) int {
	pref := 0
	if level == topology.L2 {
		pref += 2
	}
	if flags&topology.PrefixExternal != 0 {
		pref++
	}
	if flags&topology.PrefixDown != 0 {
		pref += 4
	}

	return pref
}
