package fixture

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ngrouting/isisspf/instance"
	"github.com/ngrouting/isisspf/srgb"
	"github.com/ngrouting/isisspf/topology"
)

// Spec is the YAML-serializable description of a whole topology: every
// node, every edge, and which node is the default SPF root.
type Spec struct {
	Nodes []NodeSpec `yaml:"nodes"`
	Edges []EdgeSpec `yaml:"edges"`
	Root  string     `yaml:"root"`
}

// NodeSpec describes one router (or pseudonode).
type NodeSpec struct {
	Name             string       `yaml:"name"`
	Area             string       `yaml:"area"`
	PseudonodeLevels []string     `yaml:"pseudonode_levels,omitempty"`
	SpringEnabled    bool         `yaml:"spring_enabled,omitempty"`
	Prefixes         []PrefixSpec `yaml:"prefixes,omitempty"`
}

// PrefixSpec describes one attached prefix.
type PrefixSpec struct {
	Network string `yaml:"network"`
	MaskLen int    `yaml:"mask_len"`
	Level   string `yaml:"level"`
	Metric  int64  `yaml:"metric,omitempty"`
}

// EdgeSpec describes one link between two already-declared nodes.
//
// PrefixA/PrefixB, if set, become the gateway prefixes attached to each
// side's interface (topology.EdgeEnd.PrefixByLevel) — what SPF's
// gatewayPrefix helper reads when populating a PredecessorEntry's
// GwPrefix field.
type EdgeSpec struct {
	A             string      `yaml:"a"`
	B             string      `yaml:"b"`
	IfaceA        string      `yaml:"iface_a"`
	IfaceB        string      `yaml:"iface_b"`
	MetricL1      int64       `yaml:"metric_l1"`
	MetricL2      int64       `yaml:"metric_l2"`
	Level         string      `yaml:"level"`
	Bidirectional bool        `yaml:"bidirectional"`
	PrefixA       *PrefixSpec `yaml:"prefix_a,omitempty"`
	PrefixB       *PrefixSpec `yaml:"prefix_b,omitempty"`
}

func parseLevel(s string) (topology.Level, error) {
	switch s {
	case "L1":
		return topology.L1, nil
	case "L2":
		return topology.L2, nil
	case "L12", "":
		return topology.L12, nil
	default:
		return 0, fmt.Errorf("fixture: unknown level %q", s)
	}
}

func buildPrefix(ps *PrefixSpec) (*topology.Prefix, error) {
	if ps == nil {
		return nil, nil
	}
	level, err := parseLevel(ps.Level)
	if err != nil {
		return nil, err
	}
	if level == topology.L12 {
		return nil, fmt.Errorf("fixture: prefix %s/%d must specify a concrete level, not L12", ps.Network, ps.MaskLen)
	}

	return &topology.Prefix{Network: ps.Network, MaskLen: ps.MaskLen, Level: level, Metric: ps.Metric}, nil
}

// Load parses YAML-encoded spec bytes and constructs a fresh
// instance.Instance from it, returning the instance and a name-indexed
// map of its nodes for test/CLI convenience.
func Load(data []byte) (*instance.Instance, map[string]*topology.Node, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, nil, fmt.Errorf("fixture: parse: %w", err)
	}

	return Build(spec)
}

// Build constructs an instance.Instance from an already-parsed Spec.
func Build(spec Spec) (*instance.Instance, map[string]*topology.Node, error) {
	inst := instance.CreateInstance()
	nodes := make(map[string]*topology.Node, len(spec.Nodes))

	for _, ns := range spec.Nodes {
		n, err := inst.CreateNode(ns.Name, ns.Area)
		if err != nil {
			return nil, nil, fmt.Errorf("fixture: node %s: %w", ns.Name, err)
		}
		if ns.SpringEnabled {
			n.SRGB = srgb.NewDefault()
			n.SpringEnabled = true
		}
		for _, lvlStr := range ns.PseudonodeLevels {
			l, err := parseLevel(lvlStr)
			if err != nil {
				return nil, nil, err
			}
			inst.MarkPseudonode(n, l)
		}
		nodes[ns.Name] = n
	}

	for _, es := range spec.Edges {
		a, ok := nodes[es.A]
		if !ok {
			return nil, nil, fmt.Errorf("fixture: edge references unknown node %s", es.A)
		}
		b, ok := nodes[es.B]
		if !ok {
			return nil, nil, fmt.Errorf("fixture: edge references unknown node %s", es.B)
		}
		levelMask, err := parseLevel(es.Level)
		if err != nil {
			return nil, nil, err
		}
		prefixA, err := buildPrefix(es.PrefixA)
		if err != nil {
			return nil, nil, err
		}
		prefixB, err := buildPrefix(es.PrefixB)
		if err != nil {
			return nil, nil, err
		}
		metricL2 := es.MetricL2
		if metricL2 == 0 {
			metricL2 = es.MetricL1
		}
		if _, err := inst.CreateEdgeWithPrefixes(a, b, es.IfaceA, es.IfaceB, es.MetricL1, metricL2, levelMask, es.Bidirectional, prefixA, prefixB); err != nil {
			return nil, nil, fmt.Errorf("fixture: edge %s-%s: %w", es.A, es.B, err)
		}
	}

	for _, ns := range spec.Nodes {
		for _, ps := range ns.Prefixes {
			level, err := parseLevel(ps.Level)
			if err != nil {
				return nil, nil, err
			}
			if _, err := inst.AttachPrefix(nodes[ns.Name], ps.Network, ps.MaskLen, level, ps.Metric); err != nil {
				return nil, nil, fmt.Errorf("fixture: prefix %s/%d on %s: %w", ps.Network, ps.MaskLen, ns.Name, err)
			}
		}
	}

	if spec.Root != "" {
		root, ok := nodes[spec.Root]
		if !ok {
			return nil, nil, fmt.Errorf("fixture: root references unknown node %s", spec.Root)
		}
		inst.SetRoot(root)
	}

	return inst, nodes, nil
}
