package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ngrouting/isisspf/topology"
)

// newRunCmd implements `run spf all` — compute SPF from the configured
// root (or an explicit --root) at every level and print a one-line
// summary per destination.
func newRunCmd(a *app) *cobra.Command {
	run := &cobra.Command{Use: "run", Short: "Run a computation over the loaded topology"}

	var rootName string
	spfCmd := &cobra.Command{
		Use:   "spf all",
		Short: "Compute SPF from a root at every level",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.load()
			if err != nil {
				return err
			}
			root := h.inst.Root()
			if rootName != "" {
				root, err = h.node(rootName)
				if err != nil {
					return err
				}
			}
			if root == nil {
				return fmt.Errorf("isissim: no root configured; pass --root or set one in the topology spec")
			}

			for _, l := range []topology.Level{topology.L1, topology.L2} {
				table := h.inst.SPF(root, l)
				fmt.Printf("SPF root=%s level=%s:\n", root.Name, l)

				results := table.Destinations()
				sort.Slice(results, func(i, j int) bool { return results[i].Node.Name < results[j].Node.Name })
				for _, r := range results {
					fmt.Printf("  %-8s metric=%d\n", r.Node.Name, r.Metric)
				}
			}

			return nil
		},
	}
	spfCmd.Flags().StringVar(&rootName, "root", "", "SPF root node (defaults to the topology's configured root)")
	run.AddCommand(spfCmd)

	return run
}
