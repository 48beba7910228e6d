// Package pathenum walks the predecessor DAG a spf.Table builds and emits
// every equal-cost shortest path from a destination back to root as a
// sequence of spf.PredecessorEntry values (component C6).
package pathenum

import (
	"github.com/ngrouting/isisspf/spf"
	"github.com/ngrouting/isisspf/topology"
)

// Visitor observes one complete path, ordered from the hop nearest
// destination back to the hop nearest root (i.e. DAG-walk order, not
// root-to-destination order). Returning false stops enumeration early —
// the walk retains ownership of its own scratch storage between calls, so
// the slice passed to visit is only valid for the duration of the call.
type Visitor func(path []spf.PredecessorEntry) (cont bool)

// Enumerate walks every path from destination back to table.Root along
// predecessor entries of the given kind, invoking visit once per complete
// path. The predecessor DAG is acyclic by construction — relaxation only
// ever links a node to a strictly lower-metric predecessor — so the walk
// always terminates without needing a visited-set.
//
// If destination is root itself, visit is called once with an empty path.
// If destination was not reached by the computation that produced table,
// Enumerate calls visit zero times.
func Enumerate(table *spf.Table, destination *topology.Node, kind topology.NextHopKind, visit Visitor) {
	if destination == table.Root {
		visit(nil)

		return
	}
	result := table.Result(destination)
	if result == nil {
		return
	}
	walk(table, result.Predecessors[kind], kind, nil, visit)
}

// walk extends the in-progress path (frontier) by one predecessor at a
// time. frontier accumulates hops in destination-to-root order; push,
// recurse, pop mirrors the reference depth-first walk this continues.
func walk(table *spf.Table, predecessors []spf.PredecessorEntry, kind topology.NextHopKind, frontier []spf.PredecessorEntry, visit Visitor) bool {
	for _, entry := range predecessors {
		frontier = append(frontier, entry)

		var cont bool
		if entry.Node == table.Root {
			cont = visit(frontier)
		} else {
			next := table.Result(entry.Node)
			cont = walk(table, next.Predecessors[kind], kind, frontier, visit)
		}
		frontier = frontier[:len(frontier)-1]

		if !cont {
			return false
		}
	}

	return true
}
