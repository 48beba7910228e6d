// Package instance is the process-wide construction and cache-invalidation
// API (spec.md §6, §5): create_instance / create_node / create_edge /
// attach_prefix / mark_pseudonode / set_root, plus the version-counter
// scheme that makes cached SPF results self-invalidating.
//
// An Instance wraps exactly one topology.Topology and carries a
// monotonically increasing version counter. Every topology-mutating
// operation exposed here — CreateEdge, EnableEdge, SetStatus, SetMetric,
// MarkPseudonode, AttachPrefix, DetachPrefix, UpdatePrefixSID — bumps that
// counter. SPF bumps nothing itself (it only reads); SPF's own cache
// compares a cached Table's recorded version against the Instance's
// current one and recomputes on mismatch, per spec.md §5's "cached SPF
// validity" rule.
//
// Per spec.md §5, an Instance is NOT safe for concurrent mutation: the
// core is single-threaded and cooperative, and no locking is added here.
// Multiple independent Instances (e.g. one per test) are fully isolated
// from one another — nothing here is a package-level singleton.
package instance
