// Package srgb implements the per-node Segment Routing Global Block: a
// contiguous label-index range together with a used/free bitmap.
//
// An SRGB reserves [LowerBound, LowerBound+Range) as MPLS label space for
// prefix-SID indices local to one node. The bitmap tracks which indices are
// currently bound to an active prefix-SID; MarkUsed/MarkUnused are the only
// mutators, and conflict resolution (package srconflict) is the only
// caller expected to flip bits outside of the prefix store itself.
//
// Complexity: all operations are O(Range/64) at worst (a bitset word scan);
// GetAvailableLabel is the only one that scans, via bitset.NextClear.
package srgb

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Defaults restored from the original implementation's igp_sr_ext.h.
const (
	// DefaultLowerBound is the first label value of the default SRGB range.
	DefaultLowerBound = 16000

	// DefaultUpperBound is the last label value of the default SRGB range.
	DefaultUpperBound = 23999

	// DefaultRange is the number of indices in the default SRGB range.
	DefaultRange = DefaultUpperBound - DefaultLowerBound + 1 // 8000

	// MaxSize is the largest SRGB range this implementation will allocate a
	// bitmap for.
	MaxSize = 65536
)

// Sentinel errors for SRGB operations.
var (
	// ErrRangeTooLarge indicates a requested Range exceeds MaxSize.
	ErrRangeTooLarge = errors.New("srgb: range exceeds MaxSize")

	// ErrIndexOutOfRange indicates an index outside [0, Range) was addressed.
	ErrIndexOutOfRange = errors.New("srgb: index out of range")
)

// NoLabel is the sentinel index returned by GetAvailableLabel when the SRGB
// is exhausted. It is not a valid index (indices are < MaxSize).
const NoLabel = -1

// Flags carries the per-node SRGB advertisement flags (reserved for future
// TLV encode/decode, which is out of THE CORE's scope; kept as an opaque
// bitmask so conflict resolution can compare flags without interpreting
// them).
type Flags uint8

// SRGB is a per-node label range with a used-index bitmap.
//
// LowerBound + idx yields the MPLS label for bitmap position idx. The
// bitmap's capacity is always >= Range (spec.md §3).
type SRGB struct {
	LowerBound int
	Range      int
	Flags      Flags
	used       *bitset.BitSet
}

// New constructs an SRGB with the given lower bound and range, with every
// index initially free. Panics if the range is non-positive or exceeds
// MaxSize — this is a construction-time programmer error, not a runtime
// user error.
func New(lowerBound, rng int) *SRGB {
	if rng <= 0 || rng > MaxSize {
		panic(fmt.Sprintf("srgb: invalid range %d", rng))
	}

	return &SRGB{
		LowerBound: lowerBound,
		Range:      rng,
		used:       bitset.New(uint(rng)),
	}
}

// NewDefault constructs an SRGB using the default lower bound and range.
func NewDefault() *SRGB {
	return New(DefaultLowerBound, DefaultRange)
}

// LabelFromIndex returns the MPLS label corresponding to bitmap index idx.
// Does not validate idx against Range; callers that obtained idx from
// GetAvailableLabel or IsUsed already know it is in range.
func (s *SRGB) LabelFromIndex(idx int) int {
	return s.LowerBound + idx
}

// IsUsed reports whether bitmap index idx is currently marked used. An
// out-of-range idx reports false rather than erroring — querying outside
// the block is a meaningless-but-harmless question, not a broken
// invariant.
func (s *SRGB) IsUsed(idx int) bool {
	if idx < 0 || idx >= s.Range {
		return false
	}

	return s.used.Test(uint(idx))
}

// MarkUsed sets bitmap index idx as used. Returns ErrIndexOutOfRange if idx
// is outside [0, Range).
func (s *SRGB) MarkUsed(idx int) error {
	if idx < 0 || idx >= s.Range {
		return ErrIndexOutOfRange
	}
	s.used.Set(uint(idx))

	return nil
}

// MarkUnused clears bitmap index idx. Returns ErrIndexOutOfRange if idx is
// outside [0, Range). Clearing an already-free index is a harmless no-op,
// matching the original's mark_srgb_index_not_in_use semantics.
func (s *SRGB) MarkUnused(idx int) error {
	if idx < 0 || idx >= s.Range {
		return ErrIndexOutOfRange
	}
	s.used.Clear(uint(idx))

	return nil
}

// GetAvailableLabel scans the bitmap for the first free index and returns
// the corresponding label (LowerBound + index). It does NOT mark the index
// used — callers that intend to bind it must call MarkUsed themselves
// (prefixstore.UpdatePrefixSID does this atomically from the caller's
// perspective).
//
// Returns NoLabel if the SRGB is exhausted.
func (s *SRGB) GetAvailableLabel() int {
	idx, ok := s.used.NextClear(0)
	if !ok || int(idx) >= s.Range {
		return NoLabel
	}

	return s.LabelFromIndex(int(idx))
}

// UsedCount returns the number of indices currently marked used. Useful for
// diagnostics (e.g. the CLI's `debug node` family) and tests asserting SRGB
// exhaustion without enumerating the bitmap by hand.
func (s *SRGB) UsedCount() int {
	return int(s.used.Count())
}

// RangesOverlap reports whether two SRGB blocks' [LowerBound, LowerBound+Range)
// intervals intersect. Restored from igp_sr_ext.h's documented (but never
// wired, in the original) is_srgb_ranges_overlap — used by srconflict when
// two nodes advertise colliding SRGB blocks network-wide.
func RangesOverlap(a, b *SRGB) bool {
	aEnd := a.LowerBound + a.Range
	bEnd := b.LowerBound + b.Range

	return a.LowerBound < bEnd && b.LowerBound < aEnd
}
