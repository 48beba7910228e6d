package srconflict

import (
	"encoding/binary"
	"errors"
	"net"

	"github.com/ngrouting/isisspf/netlog"
	"github.com/ngrouting/isisspf/srgb"
	"github.com/ngrouting/isisspf/topology"
)

// ErrSRGBOverlap is logged (never returned — this is a detected-but-not-
// fatal configuration problem, spec.md §7's "expected negative outcome"/
// "user configuration error" boundary) when two nodes advertise SRGB
// blocks that overlap in absolute label space.
var ErrSRGBOverlap = errors.New("srconflict: SRGB ranges overlap across nodes")

// AddressFamily type-tags a MappingEntry. Only IPv4 prefixes carry real
// semantics in this implementation (spec.md's Non-goals exclude IPv6
// semantics beyond type tagging); AFv6 exists so a mixed-family topology
// does not spuriously conflict-match an IPv4 and an IPv6 entry that
// happen to share every other field.
type AddressFamily uint8

const (
	AFv4 AddressFamily = iota
	AFv6
)

// DefaultPreference is the preference value assigned to a prefix-SID
// advertised with no explicit preference, per
// original_source/igp_sr_ext.h's IGP_DEFAULT_SID_PFX_PREFERENCE_VALUE.
const DefaultPreference = 192

// MappingEntry is the per-prefix-SID tuple conflict resolution compares,
// restored from sr_mapping_entry_t. Range is always 1 here: this
// implementation derives one MappingEntry per prefix-SID, never a
// mapping-server range.
type MappingEntry struct {
	Preference    int
	PrefixNumeric uint32 // pi/pe: the prefix's masked network, as a uint32
	PrefixLen     int
	MaxPrefixLen  int
	SIDStart      int
	SIDEnd        int
	Range         int
	Topology      AddressFamily
	Algorithm     topology.Algorithm

	Prefix *topology.Prefix
}

// ConstructMappingEntry builds the MappingEntry for p's active-or-not
// prefix-SID, per construct_prefix_mapping_entry. Returns false if p
// carries no prefix-SID at all — such a prefix never participates in
// conflict resolution.
func ConstructMappingEntry(p *topology.Prefix) (MappingEntry, bool) {
	if p.SID == nil {
		return MappingEntry{}, false
	}
	pref := DefaultPreference
	if p.SID.Flags&topology.FlagP != 0 {
		// A Mapping-Server-sourced SID advertises the lower SRMS
		// preference class; there is no separate explicit-preference
		// field in this model, so the P flag is this stack's own stand-in
		// (see DESIGN.md).
		pref = igpDefaultSIDSRMSPreference
	}

	return MappingEntry{
		Preference:    pref,
		PrefixNumeric: prefixToUint32(p),
		PrefixLen:     p.MaskLen,
		MaxPrefixLen:  32,
		SIDStart:      p.SID.Value,
		SIDEnd:        p.SID.Value,
		Range:         1,
		Topology:      AFv4,
		Algorithm:     p.SID.Algorithm,
		Prefix:        p,
	}, true
}

const igpDefaultSIDSRMSPreference = 128

func prefixToUint32(p *topology.Prefix) uint32 {
	ip := net.ParseIP(p.Network)
	if ip == nil {
		return 0
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return 0
	}
	masked := ip4.Mask(net.CIDRMask(p.MaskLen, 32))

	return binary.BigEndian.Uint32(masked)
}

// PrefixesConflict reports whether a and b are a "prefix conflict" per
// spec.md §4.8 / is_prefixes_conflicting: they share (topology, algorithm,
// address-family, prefix-length) — meaning they describe competing
// originations of the SAME prefix — but carry different SID values.
func PrefixesConflict(a, b MappingEntry) bool {
	if a.Topology != b.Topology || a.Algorithm != b.Algorithm || a.PrefixLen != b.PrefixLen {
		return false
	}
	if a.PrefixNumeric != b.PrefixNumeric {
		return false
	}

	return a.SIDStart != b.SIDStart
}

// SIDConflict reports whether a and b are a "SID conflict" per
// is_prefixes_sid_conflicting: they share (topology, algorithm,
// address-family), their SID index ranges overlap, yet they describe
// different prefixes. This is the more common real-world case — two
// distinct prefixes mistakenly handed the same SRGB index by different
// originators.
func SIDConflict(a, b MappingEntry) bool {
	if a.Topology != b.Topology || a.Algorithm != b.Algorithm {
		return false
	}
	if a.PrefixNumeric == b.PrefixNumeric && a.PrefixLen == b.PrefixLen {
		return false
	}

	return rangesOverlap(a.SIDStart, a.SIDEnd, b.SIDStart, b.SIDEnd)
}

func rangesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart <= bEnd && bStart <= aEnd
}

// wins reports whether a outranks b under the resolution tuple documented
// in spec.md §4.8: higher preference first; then smaller prefix-length
// (the "most specific loses" / "smaller prefix-length wins" rule a
// mapping-server deployment relies on, per RFC 8660 §4 — a shorter,
// coarser mapping-range entry is preferred over a more specific one
// advertised in error); then larger prefix value; then larger SID-start.
func wins(a, b MappingEntry) bool {
	if a.Preference != b.Preference {
		return a.Preference > b.Preference
	}
	if a.PrefixLen != b.PrefixLen {
		return a.PrefixLen < b.PrefixLen
	}
	if a.PrefixNumeric != b.PrefixNumeric {
		return a.PrefixNumeric > b.PrefixNumeric
	}

	return a.SIDStart > b.SIDStart
}

// Resolve runs conflict resolution over every prefix-SID reachable from
// the given nodes (the instance's global prefix/SID cross-product,
// spec.md §4.8): for every conflicting pair, the losing MappingEntry's
// prefix is marked SR-INACTIVE (prefix.SID.Active = false) and its SRGB
// bit released; every prefix-SID that loses no pair is (re)marked Active
// and its SRGB bit set again if it was clear.
//
// Idempotence (spec.md §8): calling Resolve twice with no intervening
// mutation produces the same Active assignment both times, since losing
// is purely a function of the (deterministic) mapping-entry tuple
// comparison, not of call order — a loser that has already been
// deactivated is simply deactivated again (no-op) rather than having its
// SID freed outright, so its entry remains comparable on the next call.
func Resolve(nodes []*topology.Node) []Conflict {
	for _, overlap := range DetectSRGBOverlaps(nodes) {
		netlog.ConfigError("resolve_conflicts", ErrSRGBOverlap, map[string]interface{}{
			"node_a": overlap.NodeA.Name,
			"node_b": overlap.NodeB.Name,
		})
	}

	var entries []MappingEntry
	for _, n := range nodes {
		for _, level := range []topology.Level{topology.L1, topology.L2} {
			for _, p := range n.Prefixes[level.Index()] {
				if me, ok := ConstructMappingEntry(p); ok {
					entries = append(entries, me)
				}
			}
		}
	}

	losers := make(map[*topology.Prefix]bool)
	var conflicts []Conflict

	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			if !PrefixesConflict(a, b) && !SIDConflict(a, b) {
				continue
			}
			winner, loser := a, b
			if wins(b, a) {
				winner, loser = b, a
			}
			losers[loser.Prefix] = true
			conflicts = append(conflicts, Conflict{Winner: winner.Prefix, Loser: loser.Prefix})
		}
	}

	for p := range losers {
		deactivate(p)
	}
	for _, n := range nodes {
		for _, level := range []topology.Level{topology.L1, topology.L2} {
			for _, p := range n.Prefixes[level.Index()] {
				if p.SID != nil && !losers[p] {
					// A binding that lost a previous Resolve had its SRGB bit
					// released; winning now must take the bit back, or an
					// active SID would reference a clear index and
					// GetAvailableLabel could hand it out again.
					p.SID.Active = true
					if n.SRGB != nil && !n.SRGB.IsUsed(p.SID.Value) {
						_ = n.SRGB.MarkUsed(p.SID.Value)
					}
				}
			}
		}
	}

	return conflicts
}

// Conflict records one resolved conflicting pair, for the CLI's
// `debug node ... conflicts`-style reporting.
type Conflict struct {
	Winner *topology.Prefix
	Loser  *topology.Prefix
}

// SRGBOverlap records two nodes whose advertised SRGB blocks overlap in
// absolute label space — a network-wide misconfiguration distinct from a
// per-prefix-SID conflict (that one is about two prefixes competing for
// the same index; this one is about two nodes' index ranges colliding
// before any prefix-SID is even considered). Detected, never auto-resolved
// the way a prefix-SID conflict is: there is no tuple ordering in spec.md
// §4.8 that picks a "winner" SRGB block.
type SRGBOverlap struct {
	NodeA *topology.Node
	NodeB *topology.Node
}

// DetectSRGBOverlaps reports every pair of nodes in nodes whose non-nil
// SRGBs overlap, via srgb.RangesOverlap — restored per SPEC_FULL.md §4.2's
// is_srgb_ranges_overlap commitment.
func DetectSRGBOverlaps(nodes []*topology.Node) []SRGBOverlap {
	var out []SRGBOverlap
	for i, a := range nodes {
		if a.SRGB == nil {
			continue
		}
		for _, b := range nodes[i+1:] {
			if b.SRGB == nil {
				continue
			}
			if srgb.RangesOverlap(a.SRGB, b.SRGB) {
				out = append(out, SRGBOverlap{NodeA: a, NodeB: b})
			}
		}
	}

	return out
}

// deactivate marks p's prefix-SID inactive in place and releases its SRGB
// bit, without detaching the SID from its prefix, so a later re-run of
// Resolve still sees the same mapping entry (spec.md §4.8: "the winning
// side's SRGB bit remains set; the loser releases its bit").
func deactivate(p *topology.Prefix) {
	if p.SID == nil || !p.SID.Active {
		return
	}
	p.SID.Active = false
	if node := p.HostNode; node != nil && node.SRGB != nil {
		_ = node.SRGB.MarkUnused(p.SID.Value)
	}
}

// Note: prefixstore.FreePrefixSID is not called here. A deactivated-but-
// still-bound SID must survive across repeated Resolve calls for the
// idempotence law to hold; FreePrefixSID is reserved for an operator
// explicitly removing the binding (config intf ... no sid), not for
// conflict resolution's own bookkeeping.
