package gatelib

import (
	wc "github.com/ThomasPluck/wobblchip"
	"github.com/ThomasPluck/wobblchip/cells"
	"github.com/ThomasPluck/wobblchip/netlist"
	"github.com/pkg/errors"
)

// Readout wraps g together with a phase detector that samples every
// non-reference node against REF. OUT[i] is the digital value of the i-th
// non-reference node, in node order.
//
//	Ports: VDD, VSS, CLK, OUT[n], EN (if g has one)
//
func Readout(g *wc.Gate) (*netlist.Module, error) {
	var names []string
	for _, n := range g.Nodes {
		if n.Ref {
			continue
		}
		if n.Name == "CLK" || n.Name == "OUT" {
			return nil, errors.Errorf("gate %s: node name %s clashes with readout port", g.Type, n.Name)
		}
		names = append(names, n.Name)
	}
	det, err := cells.PhaseDetector(len(names))
	if err != nil {
		return nil, errors.Wrap(err, "gate "+g.Type)
	}

	m := netlist.New(g.Name + "_readout")
	vdd := m.Port(wc.VDD, 1, netlist.InOut)
	vss := m.Port(wc.VSS, 1, netlist.InOut)
	clk := m.Port("CLK", 1, netlist.Input)
	out := m.Port("OUT", len(names), netlist.Output)
	ref := m.Signal(wc.REF, 1)

	conns := netlist.Conns{
		wc.VDD: vdd.Bits(),
		wc.VSS: vss.Bits(),
		wc.REF: ref.Bits(),
	}
	if g.Lookup(wc.EN) != nil {
		conns[wc.EN] = m.Port(wc.EN, 1, netlist.Input).Bits()
	}
	var in netlist.Bits
	for _, n := range names {
		s := m.Signal(n, 1)
		conns[n] = s.Bits()
		in = append(in, s.Bit(0))
	}
	if _, err := m.Add("gate", g.Module, conns, nil); err != nil {
		return nil, err
	}
	_, err = m.Add("detector", det, netlist.Conns{
		"IN":  in,
		"REF": ref.Bits(),
		"OUT": out.Bits(),
		"VSS": vss.Bits(),
		"VDD": vdd.Bits(),
		"CLK": clk.Bits(),
	}, nil)
	if err != nil {
		return nil, err
	}
	return m, nil
}
