// Package srconflict implements the SR prefix/prefix-SID conflict
// resolution procedure (component C8): detecting prefix conflicts and
// prefix-SID conflicts across the global prefix set, and deactivating
// the losing side of each conflict per a documented preference ordering.
//
// A MappingEntry is the per-prefix-SID tuple IS-IS SR conflict resolution
// reasons about — grounded on original_source/igp_sr_ext.h's
// sr_mapping_entry_t: (prf, pi, pe, pfx_len, max_pfx_len, si, se,
// range_value, topology, algorithm). This implementation only ever
// constructs single-prefix entries (range_value == 1); mapping-server
// range advertisements are out of scope (spec.md's Non-goals exclude
// LSP/TLV distribution, which is how a range would be learned).
//
// Resolve walks every pair of mapping entries sharing (topology,
// algorithm) and, for each conflicting pair, deactivates the losing
// prefix's SID binding via the same release path prefixstore.FreePrefixSID
// would use internally — except the losing prefix itself is not detached,
// only marked SR-INACTIVE (spec.md §4.8: "it remains a regular IP
// prefix").
package srconflict
