// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wobblchip

import (
	"strconv"

	"github.com/ThomasPluck/wobblchip/netlist"
	"github.com/ThomasPluck/wobblchip/tap"
	"github.com/pkg/errors"
)

// Assignment is the tap assignment consumed by Build. *tap.Assignment
// implements it.
//
type Assignment interface {
	// Nodes returns the number of nodes the assignment was computed for.
	Nodes() int
	// Entries returns the couplings in row-major pair order.
	Entries() []tap.Entry
}

// A Gate is a built oscillator gate. The embedded module is the gate's
// boundary: ports VDD, VSS, REF, one port per non-reference node named after
// the node, and EN if built WithEnable. All taps not carrying a port are
// bundled into internal padding signals.
//
type Gate struct {
	*netlist.Module

	// Type is the gate name as given to Build. The module is named after it
	// with a "_gate" suffix.
	Type string
	// Kernel holds the oscillator array and the couplings. Its links port
	// exposes every tap of every node.
	Kernel *netlist.Module
	Stages int
	Nodes  []Node
	// Taps holds the public tap of each node.
	Taps    []int
	Entries []tap.Entry
}

// NodePort returns the port of the named node, or the REF port for the
// reference node. It returns nil for unknown nodes.
//
func (g *Gate) NodePort(node string) *netlist.Signal {
	for _, n := range g.Nodes {
		if n.Name != node {
			continue
		}
		if n.Ref {
			return g.Lookup(REF)
		}
		return g.Lookup(node)
	}
	return nil
}

// Ref returns the reference node.
//
func (g *Gate) Ref() Node {
	for _, n := range g.Nodes {
		if n.Ref {
			return n
		}
	}
	return Node{}
}

// publicTap returns the highest unclaimed tap, or -1.
//
func publicTap(claimed []bool) int {
	for t := len(claimed) - 1; t >= 0; t-- {
		if !claimed[t] {
			return t
		}
	}
	return -1
}

// Build builds the gate described by nodes and the tap assignment a.
//
// For every node, the highest unclaimed tap carries the node's public port;
// taps claimed by couplings and the remaining free taps stay internal.
//
// Malformed input yields a *ConfigError. An assignment that does not fit the
// given stage count yields a *ConsistencyError.
//
func Build(name string, stages int, nodes []Node, a Assignment, opts ...Option) (*Gate, error) {
	cfg := newConfig(opts)

	if !netlist.IsIdent(name) {
		return nil, configErrorf("invalid gate name %q", name)
	}
	if stages < 1 {
		return nil, configErrorf("stage count must be positive, got %d", stages)
	}
	ref, err := checkNodes(nodes)
	if err != nil {
		return nil, err
	}
	n := len(nodes)
	if a.Nodes() != n {
		return nil, configErrorf("%d node names for a %d node assignment", n, a.Nodes())
	}

	entries := a.Entries()
	claimed := make([]bool, n*stages)
	for _, e := range entries {
		if e.I < 0 || e.J >= n || e.I >= e.J {
			return nil, consistencyErrorf("invalid node pair %d-%d for %d nodes", e.I, e.J, n)
		}
		if e.Strength < 1 {
			return nil, consistencyErrorf("coupling %s-%s has strength %d", nodes[e.I].Name, nodes[e.J].Name, e.Strength)
		}
		for _, s := range [...]struct{ node, tap int }{{e.I, e.TapI}, {e.J, e.TapJ}} {
			if s.tap < 0 || s.tap >= stages {
				return nil, consistencyErrorf("tap %d of node %s out of range for %d stages", s.tap, nodes[s.node].Name, stages)
			}
			k := s.node*stages + s.tap
			if claimed[k] {
				return nil, consistencyErrorf("tap %d of node %s used by more than one coupling", s.tap, nodes[s.node].Name)
			}
			claimed[k] = true
		}
	}
	taps := make([]int, n)
	for i := range nodes {
		if taps[i] = publicTap(claimed[i*stages : (i+1)*stages]); taps[i] < 0 {
			return nil, consistencyErrorf("no free tap left on node %s for its port", nodes[i].Name)
		}
		cfg.log.Infof("%s: node %s public tap %d", name, nodes[i].Name, taps[i])
	}

	kernel, err := buildKernel(cfg, name, stages, nodes, entries)
	if err != nil {
		return nil, err
	}

	// boundary
	top := netlist.New(name + "_gate")
	vdd := top.Port(VDD, 1, netlist.InOut)
	vss := top.Port(VSS, 1, netlist.InOut)
	refPort := top.Port(REF, 1, netlist.InOut)
	en := vdd
	if cfg.enable {
		en = top.Port(EN, 1, netlist.Input)
	}
	var links netlist.Bits
	for i, nd := range nodes {
		pub := refPort
		if i != ref {
			pub = top.Port(nd.Name, 1, netlist.InOut)
		}
		t := taps[i]
		if stages == 1 {
			links = netlist.Concat(links, pub.Bits())
			continue
		}
		pad := top.Signal(pPadding+strconv.Itoa(i), stages-1)
		links = netlist.Concat(links, pad.Slice(0, t), pub.Bits(), pad.Slice(t, stages-1))
	}
	_, err = top.Add(kernel.Name, kernel, netlist.Conns{
		pLinks: links,
		VDD:    vdd.Bits(),
		VSS:    vss.Bits(),
		EN:     en.Bits(),
	}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to wrap gate kernel")
	}

	return &Gate{
		Module:  top,
		Type:    name,
		Kernel:  kernel,
		Stages:  stages,
		Nodes:   append([]Node(nil), nodes...),
		Taps:    taps,
		Entries: entries,
	}, nil
}

func buildKernel(cfg *config, name string, stages int, nodes []Node, entries []tap.Entry) (*netlist.Module, error) {
	n := len(nodes)
	arr, err := cfg.oscillators(stages, n)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate oscillators")
	}

	k := netlist.New(name + "_ogate")
	vdd := k.Port(VDD, 1, netlist.Input)
	vss := k.Port(VSS, 1, netlist.Input)
	en := k.Port(EN, 1, netlist.Input)
	links := k.Port(pLinks, stages*n, netlist.InOut)

	_, err = k.Add("arr", arr, netlist.Conns{
		pLinks: links.Bits(),
		VDD:    vdd.Bits(),
		VSS:    vss.Bits(),
		EN:     en.Bits(),
	}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "oscillator array "+arr.Name)
	}

	for _, e := range entries {
		c, err := cfg.coupling(e.Strength)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to generate coupling of strength %d", e.Strength)
		}
		conns := netlist.Conns{
			"A": {links.Bit(e.I*stages + e.TapI)},
			"B": {links.Bit(e.J*stages + e.TapJ)},
		}
		if p := c.Lookup(VSS); p != nil && p.IsPort() {
			conns[VSS] = vss.Bits()
		}
		if p := c.Lookup(VDD); p != nil && p.IsPort() {
			conns[VDD] = vdd.Bits()
		}
		iname := nodes[e.I].Name + "_" + nodes[e.J].Name + "_coupling"
		if _, err := k.Add(iname, c, conns, nil); err != nil {
			return nil, errors.Wrap(err, "coupling "+c.Name)
		}
		cfg.log.Infof("%s: %s tap %d - %s tap %d, strength %d", name, nodes[e.I].Name, e.TapI, nodes[e.J].Name, e.TapJ, e.Strength)
	}
	return k, nil
}
