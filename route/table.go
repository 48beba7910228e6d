package route

import (
	"net/netip"

	"github.com/gaissmai/bart"
)

// Table is the longest-prefix-match view over one Build result: the
// routes a forwarding plane would actually consult, keyed so that a
// destination address matches the most specific covering prefix. Backed
// by a bart routing table rather than a hand-rolled trie.
type Table struct {
	lpm bart.Table[*Route]
}

// NewTable indexes routes for longest-prefix-match lookup. Routes whose
// network string does not parse as an IPv4 address are skipped — they can
// never match an address lookup anyway, and rejecting malformed prefixes
// is the prefix store's job, not the lookup structure's.
//
// When the same (network, mask) appears more than once — the same prefix
// attached at both levels — the later route wins the slot, matching
// Build's sorted, deterministic output order.
func NewTable(routes []*Route) *Table {
	t := &Table{}
	for _, r := range routes {
		pfx, ok := r.netipPrefix()
		if !ok {
			continue
		}
		t.lpm.Insert(pfx, r)
	}

	return t
}

// Lookup returns the route whose prefix is the longest match covering
// addr, or (nil, false) if no route covers it — an expected negative
// outcome, not an error.
func (t *Table) Lookup(addr string) (*Route, bool) {
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return nil, false
	}

	return t.LookupAddr(ip)
}

// LookupAddr is Lookup for an already-parsed address.
func (t *Table) LookupAddr(ip netip.Addr) (*Route, bool) {
	r, ok := t.lpm.Lookup(ip)
	if !ok {
		return nil, false
	}

	return r, true
}

// Get returns the route stored exactly at (network, maskLen), without
// longest-prefix-match widening.
func (t *Table) Get(network string, maskLen int) (*Route, bool) {
	ip, err := netip.ParseAddr(network)
	if err != nil {
		return nil, false
	}
	pfx, err := ip.Prefix(maskLen)
	if err != nil {
		return nil, false
	}
	r, ok := t.lpm.Get(pfx)
	if !ok {
		return nil, false
	}

	return r, true
}

// Size returns the number of distinct prefixes indexed.
func (t *Table) Size() int {
	return t.lpm.Size()
}

func (r *Route) netipPrefix() (netip.Prefix, bool) {
	ip, err := netip.ParseAddr(r.Network)
	if err != nil || !ip.Is4() {
		return netip.Prefix{}, false
	}
	pfx, err := ip.Prefix(r.MaskLen)
	if err != nil {
		return netip.Prefix{}, false
	}

	return pfx, true
}
