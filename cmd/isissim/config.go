package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngrouting/isisspf/protect"
	"github.com/ngrouting/isisspf/topology"
)

// newConfigCmd mirrors spfclihandler.c's lfa_rlfa_config_handler: per-
// interface protection knobs, plus an action command (`rlfa`) that runs
// RLFA right away rather than toggling a stored flag.
func newConfigCmd(a *app) *cobra.Command {
	config := &cobra.Command{Use: "config", Short: "Configure per-interface protection"}

	intf := &cobra.Command{Use: "intf", Short: "Per-interface protection settings"}
	intf.AddCommand(
		newLinkProtectionCmd(a),
		newNodeLinkProtectionCmd(a),
		newRLFACmd(a),
		newNoEligibleBackupCmd(a),
	)
	config.AddCommand(intf)

	return config
}

func resolveIntf(a *app, nodeName, ifaceName string) (*instanceHandle, *topology.Node, error) {
	h, err := a.load()
	if err != nil {
		return nil, nil, err
	}
	node, err := h.node(nodeName)
	if err != nil {
		return nil, nil, err
	}

	return h, node, nil
}

func newLinkProtectionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "link-protection <node> <iface> <enable|disable>",
		Short: "Enable or disable link protection on an interface",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, node, err := resolveIntf(a, args[0], args[1])
			if err != nil {
				return err
			}
			switch args[2] {
			case "enable":
				err = h.inst.Topo.SetProtection(node, args[1], topology.ProtectionLink)
			case "disable":
				err = h.inst.Topo.SetProtection(node, args[1], topology.ProtectionNone)
			default:
				return fmt.Errorf("isissim: expected enable or disable, got %q", args[2])
			}

			return err
		},
	}
}

func newNodeLinkProtectionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "node-link-protection <node> <iface> <enable|disable>",
		Short: "Enable or disable combined link-and-node protection on an interface",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, node, err := resolveIntf(a, args[0], args[1])
			if err != nil {
				return err
			}
			switch args[2] {
			case "enable":
				err = h.inst.Topo.SetProtection(node, args[1], topology.ProtectionLinkNode)
			case "disable":
				// Disabling node protection alone falls back to plain link
				// protection, mirroring UNSET_LINK_PROTECTION_TYPE(edge,
				// LINK_NODE_PROTECTION) leaving LINK_PROTECTION set.
				err = h.inst.Topo.SetProtection(node, args[1], topology.ProtectionLink)
			default:
				return fmt.Errorf("isissim: expected enable or disable, got %q", args[2])
			}

			return err
		},
	}
}

func newRLFACmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rlfa <node> <iface>",
		Short: "Compute and print RLFA repair tunnels for an interface at every configured level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, node, err := resolveIntf(a, args[0], args[1])
			if err != nil {
				return err
			}
			_, edge, err := findOwnedEdge(node, args[1])
			if err != nil {
				return err
			}

			for _, level := range topology.Levels(edge.LevelMask) {
				dc := protect.NewDistanceCache(h.inst.Topo, level)
				pl := protectedLinkFor(node, edge)
				printRLFAForLevel(h, dc, pl, level)
			}

			return nil
		},
	}
}

// protectedLinkFor builds a protect.ProtectedLink for edge, resolving its
// pseudonode side if edge.To.Owner is a broadcast segment.
func protectedLinkFor(node *topology.Node, edge *topology.Edge) protect.ProtectedLink {
	pl := protect.ProtectedLink{Root: node, Edge: edge, ProtectedNeighbor: edge.To.Owner}
	if edge.To.Owner.NodeType(topology.L1) == topology.Pseudonode || edge.To.Owner.NodeType(topology.L2) == topology.Pseudonode {
		pl.Pseudonode = edge.To.Owner
	}

	return pl
}

func printRLFAForLevel(h *instanceHandle, dc *protect.DistanceCache, pl protect.ProtectedLink, level topology.Level) {
	if !pl.IsEligible() {
		fmt.Printf("level=%s: interface has no-eligible-backup set, skipping\n", level)

		return
	}
	for _, dest := range h.inst.Topo.Nodes {
		if dest == pl.Root {
			continue
		}
		if cand, ok := protect.FindLFA(dc, h.inst.Topo, level, pl, dest, false); ok {
			fmt.Printf("level=%s dest=%-8s direct-lfa via=%s type=%s\n", level, dest.Name, cand.Neighbor.Name, cand.Type)

			continue
		}
		result := protect.ComputeRLFA(dc, h.inst.Topo, level, pl, dest)
		if len(result.Candidates) == 0 {
			continue
		}
		fmt.Printf("level=%s dest=%-8s rlfa tunnel-endpoint=%s\n", level, dest.Name, result.Candidates[0].Node.Name)
	}
}

func newNoEligibleBackupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "no-eligible-backup <node> <iface> <enable|disable>",
		Short: "Exclude (or re-admit) an interface's owning node as an LFA candidate neighbor",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, node, err := resolveIntf(a, args[0], args[1])
			if err != nil {
				return err
			}
			switch args[2] {
			case "enable":
				err = h.inst.Topo.SetNoEligibleBackup(node, args[1], true)
			case "disable":
				err = h.inst.Topo.SetNoEligibleBackup(node, args[1], false)
			default:
				return fmt.Errorf("isissim: expected enable or disable, got %q", args[2])
			}

			return err
		},
	}
}

// findOwnedEdge resolves ifaceName on node to its EdgeEnd and owning Edge,
// the way findInterface does internally in package topology — duplicated
// here at the unexported-field boundary since protect's ProtectedLink
// needs the *topology.Edge itself, not just confirmation it exists.
func findOwnedEdge(node *topology.Node, ifaceName string) (*topology.EdgeEnd, *topology.Edge, error) {
	for _, end := range node.Interfaces {
		if end.Name != ifaceName {
			continue
		}
		for _, e := range node.OutEdges() {
			if e.From == end {
				return end, e, nil
			}
		}

		return end, nil, fmt.Errorf("isissim: interface %q has no outgoing edge", ifaceName)
	}

	return nil, nil, fmt.Errorf("isissim: unknown interface %q on node %q", ifaceName, node.Name)
}
