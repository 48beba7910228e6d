// Package prefixstore implements the per-node, per-level prefix catalog
// and the bidirectional prefix<->prefix-SID association (component C3).
//
// A prefix's SID binding is always bidirectional: Prefix.SID and
// PrefixSID.Owner point at each other, or the prefix carries no SID at
// all. UpdatePrefixSID and FreePrefixSID are the only two entry points
// that may break this invariant mid-call; both restore it before
// returning, maintaining the SRGB-consistency invariant from spec.md §8
// (an SRGB index is marked used iff exactly one active prefix-SID on that
// node references it).
package prefixstore

import "errors"

// Sentinel errors. All are user configuration errors except where noted;
// per spec.md §7 they are returned, not panicked, and the operation is a
// no-op.
var (
	// ErrAlreadyAttached indicates AttachPrefix was called for a prefix
	// already present on the node at that level (a "leaked" prefix).
	ErrAlreadyAttached = errors.New("prefixstore: prefix already attached")

	// ErrUnknownPrefix indicates an operation referenced a prefix absent
	// from the node's per-level list.
	ErrUnknownPrefix = errors.New("prefixstore: unknown prefix")

	// ErrSIDOnNonSpringNode indicates a prefix-SID was requested on a node
	// that does not have SPRING enabled.
	ErrSIDOnNonSpringNode = errors.New("prefixstore: node is not SPRING-enabled")

	// ErrNoSRGB indicates a SPRING-enabled node has no SRGB assigned — a
	// broken construction-time invariant (programmer error).
	ErrNoSRGB = errors.New("prefixstore: node has no SRGB assigned")

	// ErrSRGBExhausted indicates the requested SRGB index is already used
	// by a different prefix-SID on the same node.
	ErrSRGBExhausted = errors.New("prefixstore: SRGB index already in use")
)
