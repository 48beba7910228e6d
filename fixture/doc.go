// Package fixture loads YAML-described network topologies into an
// instance.Instance, and ships the four built-in topologies this routing
// stack's reference source used as its own worked examples — restored
// from original_source/topo.c's build_linear_topo, build_ring_topo,
// build_multi_area_topo, and build_cisco_example_topo.
//
// The real topology builder, CLI command parsing, and TLV encode/decode
// are out of THE CORE's scope (spec.md §1); fixture exists only as the
// minimal external collaborator that gets a Spec from YAML bytes into a
// live Instance, so tests (and a CLI, if one is layered on top) have a
// concrete construction path to call rather than hand-building every node
// and edge.
package fixture
