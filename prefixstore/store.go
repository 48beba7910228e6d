package prefixstore

import "github.com/ngrouting/isisspf/topology"

// AttachPrefix creates a new Prefix on node at level and appends it to the
// node's per-level list. Returns ErrAlreadyAttached if an equal prefix
// (spec.md §6 canonical equality) is already present at that level.
func AttachPrefix(node *topology.Node, network string, maskLen int, level topology.Level, metric int64) (*topology.Prefix, error) {
	candidate := &topology.Prefix{Network: network, MaskLen: maskLen, Level: level}
	idx := level.Index()
	for _, existing := range node.Prefixes[idx] {
		if existing.Equal(candidate) {
			return nil, ErrAlreadyAttached
		}
	}
	candidate.Metric = metric
	candidate.HostNode = node
	node.Prefixes[idx] = append(node.Prefixes[idx], candidate)

	return candidate, nil
}

// DetachPrefix removes prefix from node's per-level list, freeing its
// prefix-SID binding first if one exists (so the SRGB bit is released and
// the round-trip law in spec.md §8 — "attach then detach restores the
// initial prefix list" — holds even for SR-active prefixes).
func DetachPrefix(node *topology.Node, prefix *topology.Prefix) error {
	idx := prefix.Level.Index()
	list := node.Prefixes[idx]
	pos := -1
	for i, existing := range list {
		if existing == prefix {
			pos = i

			break
		}
	}
	if pos == -1 {
		return ErrUnknownPrefix
	}
	if prefix.SID != nil {
		if err := FreePrefixSID(prefix); err != nil {
			return err
		}
	}
	node.Prefixes[idx] = append(list[:pos], list[pos+1:]...)

	return nil
}

// Lookup finds the attached prefix matching (network, maskLen) at level on
// node, returning ErrUnknownPrefix if absent.
func Lookup(node *topology.Node, network string, maskLen int, level topology.Level) (*topology.Prefix, error) {
	candidate := &topology.Prefix{Network: network, MaskLen: maskLen, Level: level}
	for _, existing := range node.Prefixes[level.Index()] {
		if existing.Equal(candidate) {
			return existing, nil
		}
	}

	return nil, ErrUnknownPrefix
}

// UpdatePrefixSID binds prefix to SRGB index idx on its owning node,
// creating the binding if none exists or moving it if one does. Returns
// (triggersConflictResolution, err): the bool is true whenever the
// binding materially changed (new binding, or an existing binding's value
// changed) — callers (package instance) re-run SR conflict resolution
// only when this is true, per spec.md §4.3.
//
// Preconditions: prefix.HostNode.SpringEnabled must be true and
// prefix.HostNode.SRGB must be non-nil (ErrSIDOnNonSpringNode / ErrNoSRGB,
// both user/construction errors — a no-op on failure).
func UpdatePrefixSID(prefix *topology.Prefix, idx int, algo topology.Algorithm, flags topology.PrefixSIDFlags) (bool, error) {
	node := prefix.HostNode
	if node == nil {
		return false, ErrUnknownPrefix
	}
	if !node.SpringEnabled {
		return false, ErrSIDOnNonSpringNode
	}
	if node.SRGB == nil {
		return false, ErrNoSRGB
	}

	if prefix.SID == nil {
		if node.SRGB.IsUsed(idx) {
			return false, ErrSRGBExhausted
		}
		if err := node.SRGB.MarkUsed(idx); err != nil {
			return false, err
		}
		sid := &topology.PrefixSID{Value: idx, Algorithm: algo, Flags: flags, Active: true, Owner: prefix}
		prefix.SID = sid

		return true, nil
	}

	// Existing binding: no-op if the value and algorithm are unchanged.
	if prefix.SID.Value == idx && prefix.SID.Algorithm == algo {
		prefix.SID.Flags = flags

		return false, nil
	}

	if idx != prefix.SID.Value {
		if node.SRGB.IsUsed(idx) {
			return false, ErrSRGBExhausted
		}
		_ = node.SRGB.MarkUnused(prefix.SID.Value)
		if err := node.SRGB.MarkUsed(idx); err != nil {
			return false, err
		}
		prefix.SID.Value = idx
	}
	prefix.SID.Algorithm = algo
	prefix.SID.Flags = flags

	return true, nil
}

// FreePrefixSID breaks the prefix<->SID association, releases the SRGB
// bit, and clears the prefix's SID pointer. The prefix itself survives as
// a plain IP prefix (spec.md §4.8: a conflict loser "remains a regular IP
// prefix").
func FreePrefixSID(prefix *topology.Prefix) error {
	if prefix.SID == nil {
		return nil
	}
	node := prefix.HostNode
	if node != nil && node.SRGB != nil {
		_ = node.SRGB.MarkUnused(prefix.SID.Value)
	}
	prefix.SID.Owner = nil
	prefix.SID = nil

	return nil
}
