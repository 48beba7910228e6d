package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngrouting/isisspf/pathenum"
	"github.com/ngrouting/isisspf/route"
	"github.com/ngrouting/isisspf/spf"
	"github.com/ngrouting/isisspf/topology"
)

// newShowCmd implements `show spf-path <root> <dst>` and
// `show sr-tunnels <root> <prefix>`.
func newShowCmd(a *app) *cobra.Command {
	show := &cobra.Command{Use: "show", Short: "Show computed SPF/SR results"}
	show.AddCommand(newShowSPFPathCmd(a), newShowSRTunnelsCmd(a))

	return show
}

func newShowSPFPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "spf-path <root> <dst>",
		Short: "Show every equal-cost shortest path from root to dst",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.load()
			if err != nil {
				return err
			}
			rootNode, err := h.node(args[0])
			if err != nil {
				return err
			}
			dst, err := h.node(args[1])
			if err != nil {
				return err
			}
			level, err := a.parsedLevel()
			if err != nil {
				return err
			}

			table := h.inst.SPF(rootNode, level)
			count := 0
			pathenum.Enumerate(table, dst, topology.IPNH, func(path []spf.PredecessorEntry) bool {
				count++
				fmt.Printf("path %d:", count)
				for i := len(path) - 1; i >= 0; i-- {
					fmt.Printf(" %s(%s)", path[i].Node.Name, path[i].OIF)
				}
				fmt.Printf(" -> %s\n", dst.Name)

				return true
			})
			if count == 0 {
				fmt.Printf("no path from %s to %s at %s\n", rootNode.Name, dst.Name, level)
			}

			return nil
		},
	}
}

func newShowSRTunnelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sr-tunnels <root> <prefix>",
		Short: "Show the SR label stack for the winning route to prefix",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.load()
			if err != nil {
				return err
			}
			rootNode, err := h.node(args[0])
			if err != nil {
				return err
			}
			level, err := a.parsedLevel()
			if err != nil {
				return err
			}

			routes := h.inst.Routes(rootNode, level)
			for _, r := range routes {
				if fmt.Sprintf("%s/%d", r.Network, r.MaskLen) == args[1] {
					printRoute(r)

					return nil
				}
			}
			fmt.Printf("no SR tunnel for %s from %s at %s\n", args[1], rootNode.Name, level)

			return nil
		},
	}
}

func printRoute(r *route.Route) {
	fmt.Printf("%s/%d metric=%d labels=%v\n", r.Network, r.MaskLen, r.Metric, r.MPLSLabels)
}
