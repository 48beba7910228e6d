// Package topology implements the link-state network model: nodes,
// directed edge ends, bidirectional edges, and the per-node, per-level
// prefix lists attached to them (component C1 of the routing simulator).
//
// A Topology owns a flat catalog of Nodes keyed by name. Each Node owns a
// bounded slice of EdgeEnds (its local interfaces); a real (two-way)
// adjacency is modeled as two directed Edge objects — one anchored on each
// side — linked together via Edge.Reverse, mirroring the way the original
// C implementation keeps one edge_t per owning node rather than a single
// shared struct. This lets SPF detect a one-sided failure (interface
// disabled on one end only) without special-casing: it simply finds no
// Reverse edge at UP status and skips the link.
//
// Disabling an edge end detaches its prefixes from the owning node's
// per-level prefix list; enabling reattaches them. Topology itself keeps no
// version counter: package instance's wrappers of both bump the Instance's
// version so cached SPF results are invalidated.
package topology

import "errors"

// Sentinel errors for topology operations. Callers branch on these with
// errors.Is, never by string comparison.
var (
	// ErrUnknownNode indicates an operation referenced a node name that
	// does not exist in the Topology. A user configuration error.
	ErrUnknownNode = errors.New("topology: unknown node")

	// ErrDuplicateNode indicates CreateNode was called with a name already
	// present in the Topology.
	ErrDuplicateNode = errors.New("topology: duplicate node")

	// ErrUnknownInterface indicates an operation referenced an interface
	// name absent from the node's Interfaces.
	ErrUnknownInterface = errors.New("topology: unknown interface")

	// ErrTooManyInterfaces indicates a node's Interfaces slice is already
	// at MaxInterfaces capacity.
	ErrTooManyInterfaces = errors.New("topology: interface slot exhausted")

	// ErrInvalidLevel indicates a Level value other than L1 or L2 was used
	// where a single level (not a mask) is required.
	ErrInvalidLevel = errors.New("topology: level must be L1 or L2")
)

// MaxInterfaces bounds the number of EdgeEnds a single Node may own. The
// original C topology sized its interface array to 16 slots; this
// implementation keeps the bound as a checked append rather than a fixed
// array, since Go has no reason to preallocate dead slots, but the ceiling
// itself is a historical and still-tested invariant.
const MaxInterfaces = 16
