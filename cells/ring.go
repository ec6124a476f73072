package cells

import (
	"strconv"
	"sync"

	"github.com/ThomasPluck/wobblchip/netlist"
	"github.com/pkg/errors"
)

// common pin names
const (
	pLinks = "links"
	pVDD   = "VDD"
	pVSS   = "VSS"
	pEN    = "EN"
	pA     = "A"
	pB     = "B"
)

// generated modules are shared between gates, keyed by module name.
var cache = struct {
	sync.Mutex
	m map[string]*netlist.Module
}{m: make(map[string]*netlist.Module)}

func memo(name string, gen func(name string) (*netlist.Module, error)) (*netlist.Module, error) {
	cache.Lock()
	defer cache.Unlock()
	if m, ok := cache.m[name]; ok {
		return m, nil
	}
	m, err := gen(name)
	if err != nil {
		return nil, err
	}
	cache.m[name] = m
	return m, nil
}

// RingOscillator returns a ring oscillator with the given number of stages.
// The first stages-1 stages are inverters; the last one is a NAND gated by EN.
// Tap k is the input of stage k.
//
//	Ports: links[stages], VSS, VDD, EN
//
func RingOscillator(stages int) (*netlist.Module, error) {
	if stages < 1 {
		return nil, errors.Errorf("ring oscillator needs at least one stage, got %d", stages)
	}
	return memo("ro"+strconv.Itoa(stages), func(name string) (*netlist.Module, error) {
		ro := netlist.New(name)
		links := ro.Port(pLinks, stages, netlist.InOut)
		vss := ro.Port(pVSS, 1, netlist.Input).Bit(0)
		vdd := ro.Port(pVDD, 1, netlist.Input).Bit(0)
		en := ro.Port(pEN, 1, netlist.Input).Bit(0)

		for s := 0; s < stages-1; s++ {
			_, err := ro.Add("stage"+strconv.Itoa(s), inv, Supply(netlist.Conns{
				"A": {links.Bit(s)},
				"Y": {links.Bit(s + 1)},
			}, vss, vdd), nil)
			if err != nil {
				return nil, err
			}
		}
		// final stage
		_, err := ro.Add("stage"+strconv.Itoa(stages-1), nand2, Supply(netlist.Conns{
			"A": {links.Bit(stages - 1)},
			"B": {en},
			"Y": {links.Bit(0)},
		}, vss, vdd), nil)
		if err != nil {
			return nil, err
		}
		return ro, nil
	})
}

// RingArray returns rows ring oscillators of the given stage count sharing
// power and enable. Tap k of row r is links[r*stages+k].
//
//	Ports: links[stages*rows], VDD, VSS, EN
//
func RingArray(stages, rows int) (*netlist.Module, error) {
	if rows < 1 {
		return nil, errors.Errorf("ring oscillator array needs at least one row, got %d", rows)
	}
	ro, err := RingOscillator(stages)
	if err != nil {
		return nil, err
	}
	return memo("ro"+strconv.Itoa(stages)+"x"+strconv.Itoa(rows), func(name string) (*netlist.Module, error) {
		arr := netlist.New(name)
		links := arr.Port(pLinks, stages*rows, netlist.InOut)
		vdd := arr.Port(pVDD, 1, netlist.Input)
		vss := arr.Port(pVSS, 1, netlist.Input)
		en := arr.Port(pEN, 1, netlist.Input)
		for r := 0; r < rows; r++ {
			_, err := arr.Add("rosc"+strconv.Itoa(r), ro, netlist.Conns{
				pLinks: links.Slice(r*stages, (r+1)*stages),
				pVDD:   vdd.Bits(),
				pVSS:   vss.Bits(),
				pEN:    en.Bits(),
			}, nil)
			if err != nil {
				return nil, err
			}
		}
		return arr, nil
	})
}
