// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package gatelib provides a catalog of oscillator gates for wobblchip.
//
// A gate is nothing but data: a weight matrix over named nodes, the last node
// being an auxiliary bias oscillator used as the phase reference. All
// functions return fresh copies that callers may modify.
//
package gatelib

import (
	"sort"

	wc "github.com/ThomasPluck/wobblchip"
	"github.com/ThomasPluck/wobblchip/tap"
)

// Stages is the ring length of catalog gates.
//
const Stages = 9

// aux is the name of the bias node shared by all catalog gates.
const aux = "AUX"

func nodes(names ...string) []wc.Node {
	ns := wc.Nodes(names...)
	return append(ns, wc.Node{Name: aux, Ref: true})
}

// And returns an AND gate.
//
//	Nodes: A, B, C = A & B, AUX
//
func And() wc.Spec {
	return wc.Spec{
		Name:   "AND",
		Stages: Stages,
		Nodes:  nodes("A", "B", "C"),
		Weights: tap.Weights{
			{0, -2, 4, 1},
			{-2, 0, 4, 1},
			{4, 4, 0, -2},
			{1, 1, -2, 0},
		},
	}
}

// HalfAdder returns a half adder.
//
//	Nodes: A, B, S = A ^ B, C = A & B, AUX
//
func HalfAdder() wc.Spec {
	return wc.Spec{
		Name:   "HA",
		Stages: Stages,
		Nodes:  nodes("A", "B", "S", "C"),
		Weights: tap.Weights{
			{0, -2, 2, 4, -1},
			{-2, 0, 2, 4, -1},
			{2, 2, 0, -4, 1},
			{4, 4, -4, 0, 2},
			{-1, -1, 1, 2, 0},
		},
	}
}

// FullAdder returns a full adder.
//
//	Nodes: A, B, Cin, S = (A+B+Cin) % 2, Cout = (A+B+Cin) / 2, AUX
//
func FullAdder() wc.Spec {
	return wc.Spec{
		Name:   "FA",
		Stages: Stages,
		Nodes:  nodes("A", "B", "Cin", "S", "Cout"),
		Weights: tap.Weights{
			{0, -2, -2, 2, 4, -1},
			{-2, 0, -2, 2, 4, -1},
			{-2, -2, 0, 2, 4, -1},
			{2, 2, 2, 0, -4, 1},
			{4, 4, 4, -4, 0, 2},
			{-1, -1, -1, 1, 2, 0},
		},
	}
}

var catalog = map[string]func() wc.Spec{
	"AND": And,
	"HA":  HalfAdder,
	"FA":  FullAdder,
}

// Catalog returns all catalog gates sorted by name.
//
func Catalog() []wc.Spec {
	specs := make([]wc.Spec, 0, len(catalog))
	for _, fn := range catalog {
		specs = append(specs, fn())
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

// Lookup returns the named catalog gate.
//
func Lookup(name string) (wc.Spec, bool) {
	fn, ok := catalog[name]
	if !ok {
		return wc.Spec{}, false
	}
	return fn(), true
}
