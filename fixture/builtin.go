package fixture

import (
	"github.com/ngrouting/isisspf/instance"
	"github.com/ngrouting/isisspf/topology"
)

// Linear restores the reference build_linear_topo: a 3-router chain
// R0-R1-R2, all metrics 10, L12, root R0. All three are real routers —
// R1 must show up in SPF results with its own metric and serve as R2's
// predecessor, so it cannot be a pseudonode here.
const linearYAML = `
nodes:
  - name: R0
    area: AREA1
  - name: R1
    area: AREA1
  - name: R2
    area: AREA1
edges:
  - a: R0
    b: R1
    iface_a: eth0/0
    iface_b: eth0/1
    metric_l1: 10
    metric_l2: 10
    level: L12
    bidirectional: true
    prefix_a: {network: "10.1.1.1", mask_len: 24, level: L1}
    prefix_b: {network: "10.1.1.2", mask_len: 24, level: L1}
  - a: R1
    b: R2
    iface_a: eth0/2
    iface_b: eth0/3
    metric_l1: 10
    metric_l2: 10
    level: L12
    bidirectional: true
    prefix_a: {network: "20.1.1.1", mask_len: 24, level: L1}
    prefix_b: {network: "20.1.1.2", mask_len: 24, level: L1}
root: R0
`

// Ring restores build_ring_topo: a 6-node ring S-A-B-C-D-E-S, all metrics
// 10, L1 only. Root is S.
const ringYAML = `
nodes:
  - name: S
    area: AREA1
  - name: A
    area: AREA1
  - name: B
    area: AREA1
  - name: C
    area: AREA1
  - name: D
    area: AREA1
  - name: E
    area: AREA1
edges:
  - {a: S, b: E, iface_a: eth0/0, iface_b: eth0/1, metric_l1: 10, level: L1, bidirectional: true}
  - {a: E, b: D, iface_a: eth0/2, iface_b: eth0/3, metric_l1: 10, level: L1, bidirectional: true}
  - {a: D, b: C, iface_a: eth0/4, iface_b: eth0/5, metric_l1: 10, level: L1, bidirectional: true}
  - {a: C, b: B, iface_a: eth0/6, iface_b: eth0/7, metric_l1: 10, level: L1, bidirectional: true}
  - {a: B, b: A, iface_a: eth0/8, iface_b: eth0/9, metric_l1: 10, level: L1, bidirectional: true}
  - {a: A, b: S, iface_a: eth0/10, iface_b: eth0/11, metric_l1: 10, level: L1, bidirectional: true}
root: S
`

// MultiArea restores build_multi_area_topo: a 3-area (AREA1/AREA2/AREA3),
// 7-router (R0-R6) topology mixing L1-only, L2-only, and L12 links, plus
// three extra locally-attached prefixes (R1's 100.1.1.1/24 at L1, R3's
// 101.1.1.1/24 and 102.1.1.1/24 at L2). Root is R0.
const multiAreaYAML = `
nodes:
  - name: R0
    area: AREA1
  - name: R1
    area: AREA1
    prefixes:
      - {network: "100.1.1.1", mask_len: 24, level: L1}
  - name: R2
    area: AREA1
  - name: R3
    area: AREA2
    prefixes:
      - {network: "101.1.1.1", mask_len: 24, level: L2}
      - {network: "102.1.1.1", mask_len: 24, level: L2, metric: 10}
  - name: R4
    area: AREA2
  - name: R5
    area: AREA3
  - name: R6
    area: AREA3
edges:
  - a: R0
    b: R1
    iface_a: eth0/0
    iface_b: eth0/0
    metric_l1: 10
    level: L1
    bidirectional: true
    prefix_a: {network: "10.1.1.1", mask_len: 24, level: L1}
    prefix_b: {network: "10.1.1.2", mask_len: 24, level: L1}
  - a: R0
    b: R2
    iface_a: eth0/1
    iface_b: eth0/0
    metric_l1: 10
    level: L1
    bidirectional: true
    prefix_a: {network: "11.1.1.1", mask_len: 24, level: L1}
    prefix_b: {network: "11.1.1.2", mask_len: 24, level: L1}
  - a: R1
    b: R2
    iface_a: eth0/1
    iface_b: eth0/1
    metric_l1: 10
    level: L1
    bidirectional: true
    prefix_a: {network: "12.1.1.1", mask_len: 24, level: L1}
    prefix_b: {network: "12.1.1.2", mask_len: 24, level: L1}
  - a: R0
    b: R3
    iface_a: eth0/2
    iface_b: eth0/2
    metric_l1: 10
    metric_l2: 10
    level: L2
    bidirectional: true
    prefix_a: {network: "14.1.1.1", mask_len: 24, level: L2}
    prefix_b: {network: "14.1.1.2", mask_len: 24, level: L2}
  - a: R3
    b: R4
    iface_a: eth0/1
    iface_b: eth0/1
    metric_l1: 10
    metric_l2: 10
    level: L12
    bidirectional: true
    prefix_a: {network: "15.1.1.1", mask_len: 24, level: L1}
    prefix_b: {network: "15.1.1.2", mask_len: 24, level: L1}
  - a: R4
    b: R5
    iface_a: eth0/2
    iface_b: eth0/1
    metric_l1: 10
    metric_l2: 10
    level: L2
    bidirectional: true
    prefix_a: {network: "16.1.1.1", mask_len: 24, level: L2}
    prefix_b: {network: "16.1.1.2", mask_len: 24, level: L2}
  - a: R5
    b: R6
    iface_a: eth0/0
    iface_b: eth0/0
    metric_l1: 10
    level: L1
    bidirectional: true
    prefix_a: {network: "17.1.1.1", mask_len: 24, level: L1}
    prefix_b: {network: "17.1.1.2", mask_len: 24, level: L1}
  - a: R2
    b: R5
    iface_a: eth0/2
    iface_b: eth0/2
    metric_l1: 10
    metric_l2: 10
    level: L2
    bidirectional: true
    prefix_a: {network: "20.1.1.1", mask_len: 24, level: L2}
    prefix_b: {network: "20.1.1.2", mask_len: 24, level: L2}
root: R0
`

// CiscoExample restores build_cisco_example_topo, the worked RLFA example
// from Cisco's "Remote Loop-Free Alternate Path with OSPF" tech note: a
// 6-router topology where R5 is a broadcast Pseudonode at L1 connecting
// R1, R4, and R6. Root is R1.
const ciscoExampleYAML = `
nodes:
  - name: R1
    area: AREA1
  - name: R2
    area: AREA1
  - name: R3
    area: AREA1
  - name: R4
    area: AREA1
  - name: R5
    area: AREA1
    pseudonode_levels: [L1]
  - name: R6
    area: AREA1
edges:
  - a: R1
    b: R2
    iface_a: eth0/0
    iface_b: eth0/1
    metric_l1: 10
    level: L1
    bidirectional: true
    prefix_a: {network: "10.1.1.1", mask_len: 30, level: L1}
    prefix_b: {network: "10.1.1.2", mask_len: 30, level: L1}
  - a: R2
    b: R3
    iface_a: eth0/2
    iface_b: eth0/3
    metric_l1: 10
    level: L1
    bidirectional: true
    prefix_a: {network: "20.1.1.1", mask_len: 30, level: L1}
    prefix_b: {network: "20.1.1.2", mask_len: 30, level: L1}
  - a: R3
    b: R4
    iface_a: eth0/4
    iface_b: eth0/5
    metric_l1: 10
    level: L1
    bidirectional: true
    prefix_a: {network: "30.1.1.1", mask_len: 30, level: L1}
    prefix_b: {network: "30.1.1.2", mask_len: 30, level: L1}
  - a: R4
    b: R5
    iface_a: eth0/6
    iface_b: eth0/7
    metric_l1: 10
    level: L1
    bidirectional: true
    prefix_a: {network: "50.1.1.3", mask_len: 24, level: L1}
  - a: R5
    b: R1
    iface_a: eth0/8
    iface_b: eth0/9
    metric_l1: 10
    level: L1
    bidirectional: true
    prefix_b: {network: "50.1.1.1", mask_len: 24, level: L1}
  - a: R5
    b: R6
    iface_a: eth0/10
    iface_b: eth0/11
    metric_l1: 10
    level: L1
    bidirectional: true
    prefix_b: {network: "50.1.1.2", mask_len: 24, level: L1}
root: R1
`

func mustLoad(yamlText string) func() (*instance.Instance, map[string]*topology.Node) {
	return func() (*instance.Instance, map[string]*topology.Node) {
		inst, nodes, err := Load([]byte(yamlText))
		if err != nil {
			// The built-in fixtures are compiled-in constants: a failure here
			// is a broken constant, not a user input error, so it is a
			// programmer error per spec.md §7.
			panic("fixture: built-in topology failed to load: " + err.Error())
		}

		return inst, nodes
	}
}

// Linear builds the built-in 3-router linear topology.
var Linear = mustLoad(linearYAML)

// Ring builds the built-in 6-node ring topology.
var Ring = mustLoad(ringYAML)

// MultiArea builds the built-in 7-router, 3-area topology.
var MultiArea = mustLoad(multiAreaYAML)

// CiscoExample builds the built-in Cisco RLFA worked example topology,
// with R5 as a Pseudonode at L1.
var CiscoExample = mustLoad(ciscoExampleYAML)
