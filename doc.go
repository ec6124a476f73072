/*
Package wobblchip synthesizes oscillator based logic gates: arrays of ring
oscillators coupled so that their relative phases settle into the truth table
of a logic function.

A gate is described by a Spec: named nodes (one oscillator each, exactly one
of them being the phase reference), a signed symmetric weight matrix and the
number of stages of every ring. Synthesize first assigns a pair of taps to
every coupling (see package tap), then builds the gate as a netlist module:

	g, err := wobblchip.Synthesize(wobblchip.Spec{
		Name:   "AND",
		Stages: 9,
		Nodes:  []wobblchip.Node{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "AUX", Ref: true}},
		Weights: tap.Weights{
			{0, -2, 4, 1},
			{-2, 0, 4, 1},
			{4, 4, 0, -2},
			{1, 1, -2, 0},
		},
	})

The resulting Gate exposes VDD, VSS, REF and one port per non-reference
node. Ring oscillators and coupling elements come from package cells unless
replaced with WithOscillators and WithCoupling.

Gates can also be read from a small description language, see ParseSpecs,
and package gatelib provides a catalog of ready made gates.
*/
package wobblchip
