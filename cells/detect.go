package cells

import (
	"strconv"

	"github.com/ThomasPluck/wobblchip/netlist"
	"github.com/pkg/errors"
)

// PhaseDetector returns a clocked XOR phase detector array. Each input is
// buffered, compared to REF and sampled on the rising edge of CLK: OUT[i] is
// low while IN[i] is in phase with REF and high while it is in anti-phase.
//
//	Ports: IN[bits], REF, OUT[bits], VSS, VDD, CLK
//
func PhaseDetector(bits int) (*netlist.Module, error) {
	if bits < 1 {
		return nil, errors.Errorf("phase detector needs at least one input, got %d", bits)
	}
	return memo("phase_detector"+strconv.Itoa(bits), func(name string) (*netlist.Module, error) {
		m := netlist.New(name)
		in := m.Port("IN", bits, netlist.Input)
		ref := m.Port("REF", 1, netlist.Input).Bit(0)
		out := m.Port("OUT", bits, netlist.Output)
		vss := m.Port(pVSS, 1, netlist.Input).Bit(0)
		vdd := m.Port(pVDD, 1, netlist.Input).Bit(0)
		clk := m.Port("CLK", 1, netlist.Input).Bit(0)
		xors := m.Signal("XORS", bits)
		ff := m.Signal("FF", bits)

		for i := 0; i < bits; i++ {
			n := strconv.Itoa(i)
			if _, err := m.Add("buf"+n, buf, Supply(netlist.Conns{
				"A": {in.Bit(i)},
				"X": {xors.Bit(i)},
			}, vss, vdd), nil); err != nil {
				return nil, err
			}
			if _, err := m.Add("xor"+n, xor2, Supply(netlist.Conns{
				"A": {xors.Bit(i)},
				"B": {ref},
				"X": {ff.Bit(i)},
			}, vss, vdd), nil); err != nil {
				return nil, err
			}
			if _, err := m.Add("ff"+n, dff, Supply(netlist.Conns{
				"CLK": {clk},
				"D":   {ff.Bit(i)},
				"Q":   {out.Bit(i)},
			}, vss, vdd), nil); err != nil {
				return nil, err
			}
		}
		return m, nil
	})
}
