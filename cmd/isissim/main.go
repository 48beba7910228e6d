// Command isissim is the informational CLI surface described in
// spec.md §6 — "not part of the core contract": a thin cobra front end
// over packages instance/fixture/spf/route/pathenum/protect that loads a
// built-in or YAML topology and runs the handful of `run`/`show`/
// `config`/`debug` commands the reference source's spfclihandler.c
// exposes. Any error a command returns exits with status 1 — a parse or
// usage failure, and equally an unknown node or interface or an unreadable
// topology file; success exits 0.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// app holds the process-wide simulator state every subcommand shares —
// one Instance, loaded once by a `--topo` flag or defaulted to the
// built-in linear fixture.
type app struct {
	inst  *instanceHandle
	topo  string
	level string
}

var root = &app{}

func main() {
	cmd := newRootCmd(root)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "isissim",
		Short: "IS-IS-style link-state routing simulator",
		Long: `isissim builds an in-memory multi-area IS-IS-style topology and computes
SPF shortest paths, segment-routing label stacks, and LFA/RLFA backup
paths over it.

This command is a thin demonstration shell over the simulator core
(packages instance, spf, route, pathenum, protect, srconflict); it is not
itself part of the routing computation it drives.`,
	}
	cmd.PersistentFlags().StringVar(&a.topo, "topo", "linear", "built-in topology: linear, ring, multi-area, cisco")
	cmd.PersistentFlags().StringVar(&a.level, "level", "L1", "IS-IS level: L1 or L2")

	cmd.AddCommand(newRunCmd(a), newShowCmd(a), newConfigCmd(a), newDebugCmd(a))

	return cmd
}
