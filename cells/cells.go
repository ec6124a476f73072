// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cells provides the primitive cells, ring oscillators and coupling
// elements that oscillator gates are built from.
//
// Cells are descriptions only: standard cells use the sky130 high density
// library names and pins and are resolved by the simulator's cell library.
//
package cells

import (
	"github.com/ThomasPluck/wobblchip/netlist"
)

// standard cell power pins
const (
	pVGND = "VGND"
	pVNB  = "VNB"
	pVPWR = "VPWR"
	pVPB  = "VPB"
)

func stdCell(name, pins string) *netlist.Module {
	return netlist.NewPrimitive("sky130_fd_sc_hd__"+name, pins+", "+pVGND+", "+pVNB+", "+pVPWR+", "+pVPB)
}

var (
	inv   = stdCell("inv_1", "A, Y")
	buf   = stdCell("buf_1", "A, X")
	xor2  = stdCell("xor2_1", "A, B, X")
	nand2 = stdCell("nand2_1", "A, B, Y")
	dff   = stdCell("dfxtp_1", "CLK, D, Q")

	resistor = netlist.NewPrimitive("sky130_fd_pr__res_xhigh_po_0p35", "p, n, b")
	nmos     = netlist.NewPrimitive("sky130_fd_pr__nfet_01v8", "d, g, s, b")
	pmos     = netlist.NewPrimitive("sky130_fd_pr__pfet_01v8", "d, g, s, b")
)

// Inv returns an inverter.
//
//	Pins: A, Y
//	Function: Y = !A
//
func Inv() *netlist.Module { return inv }

// Buf returns a buffer.
//
//	Pins: A, X
//	Function: X = A
//
func Buf() *netlist.Module { return buf }

// Xor2 returns a 2 input XOR gate.
//
//	Pins: A, B, X
//
func Xor2() *netlist.Module { return xor2 }

// Nand2 returns a 2 input NAND gate.
//
//	Pins: A, B, Y
//
func Nand2() *netlist.Module { return nand2 }

// Dff returns a rising edge D flip-flop.
//
//	Pins: CLK, D, Q
//
func Dff() *netlist.Module { return dff }

// Resistor returns a precision poly resistor. Instances take "w" and "l"
// parameters in µm.
//
//	Pins: p, n, b
//
func Resistor() *netlist.Module { return resistor }

// NMOS returns an n-channel transistor. Instances take "w" and "l" parameters.
//
//	Pins: d, g, s, b
//
func NMOS() *netlist.Module { return nmos }

// PMOS returns a p-channel transistor. Instances take "w" and "l" parameters.
//
//	Pins: d, g, s, b
//
func PMOS() *netlist.Module { return pmos }

// Supply adds the power pin connections of a standard cell to c and returns
// it.
//
func Supply(c netlist.Conns, vss, vdd netlist.Wire) netlist.Conns {
	c[pVGND] = netlist.Bits{vss}
	c[pVNB] = netlist.Bits{vss}
	c[pVPWR] = netlist.Bits{vdd}
	c[pVPB] = netlist.Bits{vdd}
	return c
}
