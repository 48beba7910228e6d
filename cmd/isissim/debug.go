package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngrouting/isisspf/protect"
	"github.com/ngrouting/isisspf/spf"
	"github.com/ngrouting/isisspf/topology"
)

// newDebugCmd mirrors spfclihandler.c's debug_show_node_* family: ad-hoc
// introspection commands that recompute or re-derive a view rather than
// mutating anything.
func newDebugCmd(a *app) *cobra.Command {
	debug := &cobra.Command{Use: "debug", Short: "Inspect computed state for one node"}

	node := &cobra.Command{Use: "node", Short: "Per-node introspection"}
	node.AddCommand(newDebugRoutesCmd(a), newDebugBackupSPFCmd(a), newDebugImpactedDestinationsCmd(a))
	debug.AddCommand(node)

	return debug
}

func newDebugRoutesCmd(a *app) *cobra.Command {
	var lookup string
	cmd := &cobra.Command{
		Use:   "routes <node>",
		Short: "Show the route table computed with <node> as SPF root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.load()
			if err != nil {
				return err
			}
			root, err := h.node(args[0])
			if err != nil {
				return err
			}
			level, err := a.parsedLevel()
			if err != nil {
				return err
			}

			if lookup != "" {
				r, ok := h.inst.RouteTable(root, level).Lookup(lookup)
				if !ok {
					fmt.Printf("no route covers %s from %s at %s\n", lookup, root.Name, level)

					return nil
				}
				fmt.Printf("%s matches %s/%d metric=%d via %s\n", lookup, r.Network, r.MaskLen, r.Metric, r.Winner.HostNode.Name)

				return nil
			}

			routes := h.inst.Routes(root, level)
			fmt.Printf("routes for %s at %s:\n", root.Name, level)
			for _, r := range routes {
				fmt.Printf("  %s/%d metric=%d install=%s\n", r.Network, r.MaskLen, r.Metric, r.InstallState)
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&lookup, "lookup", "", "longest-prefix-match a destination address instead of dumping the table")

	return cmd
}

// newDebugBackupSPFCmd reports, for every protected interface of <node>,
// the direct LFA or remote-LFA tunnel endpoint guarding each destination,
// narrowed to a single destination when dst is given.
func newDebugBackupSPFCmd(a *app) *cobra.Command {
	var dstFilter string
	cmd := &cobra.Command{
		Use:   "backup-spf <node>",
		Short: "Show the backup next-hop computed for every destination behind each protected interface",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.load()
			if err != nil {
				return err
			}
			root, err := h.node(args[0])
			if err != nil {
				return err
			}
			level, err := a.parsedLevel()
			if err != nil {
				return err
			}
			var dst *topology.Node
			if dstFilter != "" {
				dst, err = h.node(dstFilter)
				if err != nil {
					return err
				}
			}

			dc := protect.NewDistanceCache(h.inst.Topo, level)
			for _, edge := range root.OutEdges() {
				if edge.Protection == topology.ProtectionNone || !edge.LevelMask.Has(level) {
					continue
				}
				pl := protectedLinkFor(root, edge)
				fmt.Printf("protected interface %s (toward %s):\n", edge.From.Name, edge.To.Owner.Name)
				for _, d := range h.inst.Topo.Nodes {
					if d == root || (dst != nil && d != dst) {
						continue
					}
					printBackupForDest(dc, h, pl, d, level)
				}
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&dstFilter, "dst", "", "restrict output to a single destination")

	return cmd
}

func printBackupForDest(dc *protect.DistanceCache, h *instanceHandle, pl protect.ProtectedLink, dest *topology.Node, level topology.Level) {
	if !pl.IsEligible() {
		fmt.Printf("  %-8s no-eligible-backup set, skipping\n", dest.Name)

		return
	}
	if cand, ok := protect.FindLFA(dc, h.inst.Topo, level, pl, dest, false); ok {
		fmt.Printf("  %-8s backup=%s type=%s\n", dest.Name, cand.Neighbor.Name, cand.Type)

		return
	}
	result := protect.ComputeRLFA(dc, h.inst.Topo, level, pl, dest)
	if len(result.Candidates) == 0 {
		fmt.Printf("  %-8s no backup found\n", dest.Name)

		return
	}
	fmt.Printf("  %-8s backup=rlfa tunnel=%s\n", dest.Name, result.Candidates[0].Node.Name)
}

// newDebugImpactedDestinationsCmd reports, for every destination reached
// from <node>, whether its primary path egresses through iface — i.e.
// whether iface failing would impact it — mirroring
// debug_show_node_impacted_destinations.
func newDebugImpactedDestinationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "impacted-destinations <node> <iface>",
		Short: "Show which destinations' primary path egresses through iface",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.load()
			if err != nil {
				return err
			}
			root, err := h.node(args[0])
			if err != nil {
				return err
			}
			level, err := a.parsedLevel()
			if err != nil {
				return err
			}

			table := h.inst.SPF(root, level)
			fmt.Printf("Destination impact for %s, protected interface = %s\n", root.Name, args[1])
			for _, r := range table.Destinations() {
				if r.Node == root {
					continue
				}
				impacted := usesInterface(r.NextHops[topology.IPNH], args[1]) || usesInterface(r.NextHops[topology.LSPNH], args[1])
				status := "NOT IMPACTED"
				if impacted {
					status = "IMPACTED"
				}
				fmt.Printf("  %-20s %s\n", r.Node.Name, status)
			}

			return nil
		},
	}
}

func usesInterface(nextHops []spf.NextHop, oif string) bool {
	for _, nh := range nextHops {
		if nh.OIF == oif {
			return true
		}
	}

	return false
}
