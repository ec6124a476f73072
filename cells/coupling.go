package cells

import (
	"strconv"

	"github.com/ThomasPluck/wobblchip/netlist"
	"github.com/pkg/errors"
)

// Coupling element geometry, in µm.
const (
	UnitLength    = 1.0  // resistor length of a unit strength resistive coupling
	ResistorWidth = 0.35 // precision resistor width
	UnitWidth     = 0.42 // nmos width of a unit strength inverter loop; pmos is twice as wide
	GateLength    = 0.15
)

func checkStrength(strength int) error {
	if strength < 1 {
		return errors.Errorf("coupling strength must be positive, got %d", strength)
	}
	return nil
}

// Resistive returns a coupling made of a single precision resistor between
// A and B. The resistor length is UnitLength/strength so that stronger
// couplings have a lower resistance.
//
//	Ports: A, B, VSS
//
func Resistive(strength int) (*netlist.Module, error) {
	if err := checkStrength(strength); err != nil {
		return nil, err
	}
	return memo("coupling_r"+strconv.Itoa(strength), func(name string) (*netlist.Module, error) {
		c := netlist.New(name)
		a := c.Port(pA, 1, netlist.InOut)
		b := c.Port(pB, 1, netlist.InOut)
		vss := c.Port(pVSS, 1, netlist.Input)
		_, err := c.Add("resistor", resistor, netlist.Conns{
			"p": a.Bits(),
			"n": b.Bits(),
			"b": vss.Bits(),
		}, netlist.Params{
			"w": ResistorWidth,
			"l": UnitLength / float64(strength),
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	})
}

// InverterLoop returns a coupling made of two cross-coupled CMOS inverters
// (A drives B and B drives A). Transistor widths scale with strength.
//
//	Ports: A, B, VSS, VDD
//
func InverterLoop(strength int) (*netlist.Module, error) {
	if err := checkStrength(strength); err != nil {
		return nil, err
	}
	return memo("coupling_i"+strconv.Itoa(strength), func(name string) (*netlist.Module, error) {
		c := netlist.New(name)
		a := c.Port(pA, 1, netlist.InOut).Bit(0)
		b := c.Port(pB, 1, netlist.InOut).Bit(0)
		vss := c.Port(pVSS, 1, netlist.Input).Bit(0)
		vdd := c.Port(pVDD, 1, netlist.Input).Bit(0)
		wn := UnitWidth * float64(strength)
		for _, d := range []struct {
			name    string
			in, out netlist.Wire
		}{{"ab", a, b}, {"ba", b, a}} {
			_, err := c.Add("p"+d.name, pmos, netlist.Conns{
				"d": {d.out}, "g": {d.in}, "s": {vdd}, "b": {vdd},
			}, netlist.Params{"w": 2 * wn, "l": GateLength})
			if err != nil {
				return nil, err
			}
			_, err = c.Add("n"+d.name, nmos, netlist.Conns{
				"d": {d.out}, "g": {d.in}, "s": {vss}, "b": {vss},
			}, netlist.Params{"w": wn, "l": GateLength})
			if err != nil {
				return nil, err
			}
		}
		return c, nil
	})
}
