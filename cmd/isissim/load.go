package main

import (
	"fmt"
	"os"

	"github.com/ngrouting/isisspf/fixture"
	"github.com/ngrouting/isisspf/instance"
	"github.com/ngrouting/isisspf/topology"
)

// instanceHandle bundles a loaded instance.Instance with the name-indexed
// node map fixture.Load/Build hands back, so subcommands can resolve CLI
// node-name arguments without walking inst.Topo.Nodes themselves.
type instanceHandle struct {
	inst  *instance.Instance
	nodes map[string]*topology.Node
}

// load resolves a.topo (either a built-in name or a path to a YAML spec
// file) into an instanceHandle, caching it on a for the lifetime of one
// command invocation.
func (a *app) load() (*instanceHandle, error) {
	if a.inst != nil {
		return a.inst, nil
	}

	var inst *instance.Instance
	var nodes map[string]*topology.Node

	switch a.topo {
	case "linear":
		inst, nodes = fixture.Linear()
	case "ring":
		inst, nodes = fixture.Ring()
	case "multi-area":
		inst, nodes = fixture.MultiArea()
	case "cisco":
		inst, nodes = fixture.CiscoExample()
	default:
		data, err := os.ReadFile(a.topo)
		if err != nil {
			return nil, fmt.Errorf("isissim: unknown built-in topology %q and could not read it as a file: %w", a.topo, err)
		}
		inst, nodes, err = fixture.Load(data)
		if err != nil {
			return nil, err
		}
	}

	a.inst = &instanceHandle{inst: inst, nodes: nodes}

	return a.inst, nil
}

func (a *app) parsedLevel() (topology.Level, error) {
	switch a.level {
	case "L1":
		return topology.L1, nil
	case "L2":
		return topology.L2, nil
	default:
		return 0, fmt.Errorf("isissim: --level must be L1 or L2, got %q", a.level)
	}
}

func (h *instanceHandle) node(name string) (*topology.Node, error) {
	n, ok := h.nodes[name]
	if !ok {
		return nil, fmt.Errorf("isissim: unknown node %q", name)
	}

	return n, nil
}
