package topology

import (
	"fmt"
	"net"
)

// Canonical returns the prefix's canonical (network, mask-length) string,
// applying the mask to the address before formatting — spec.md §6:
// "prefix is canonicalized by applying the mask before comparison".
func (p *Prefix) Canonical() string {
	return Canonicalize(p.Network, p.MaskLen)
}

// Canonicalize applies an IPv4 mask of length maskLen to network and
// returns "a.b.c.d/len". Unparseable input is returned unmodified with the
// mask length appended, so the function never panics on malformed
// configuration — rejecting bad prefixes is a user configuration error
// handled by callers (prefixstore.AttachPrefix), not this pure helper.
func Canonicalize(network string, maskLen int) string {
	ip := net.ParseIP(network)
	if ip == nil {
		return fmt.Sprintf("%s/%d", network, maskLen)
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return fmt.Sprintf("%s/%d", network, maskLen)
	}
	mask := net.CIDRMask(maskLen, 32)
	masked := ip4.Mask(mask)

	return fmt.Sprintf("%s/%d", masked.String(), maskLen)
}

// Equal reports whether two prefixes are equal per spec.md §6: canonical
// strings and mask length match (Level is not part of prefix identity —
// the same network can be attached at both L1 and L2).
func (p *Prefix) Equal(other *Prefix) bool {
	return p.MaskLen == other.MaskLen && p.Canonical() == other.Canonical()
}
