// Package protect computes Loop-Free Alternates, Remote LFAs, and their
// P-space/Q-space building blocks for a protected edge (component C7).
//
// Every computation here is expressed in terms of repeated shortest-path
// runs from different roots — S, S's neighbors, the protected edge's far
// end — using this package's own Dijkstra over physical neighbors (not
// package spf); Q-space distances come from the same Dijkstra walking the
// transposed graph (each edge's Reverse), not from a metric-reversed copy
// of the topology. DistanceCache memoizes those per-root tables within one
// protect call so a topology with many candidate neighbors and
// destinations does not recompute distances from the same root twice.
package protect

import "errors"

// ErrNoEligibleBackup describes the case where the protected edge's own
// interface is flagged NoEligibleBackup (the operator opted this link out
// of LFA coverage). No function in this package returns it; callers test
// the flag with ProtectedLink.IsEligible, which returns a bool.
var ErrNoEligibleBackup = errors.New("protect: protected interface has eligible-backup disabled")
