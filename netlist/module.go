// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package netlist provides a minimal structural circuit description: modules
// with ports and internal signals, and instances of other modules wired to
// those signals.
//
// A Module is a blueprint. Primitive modules (transistors, resistors,
// standard cells) have ports but no content; other modules are composed of
// instances. Modules are immutable once built and may be shared by any number
// of instances and goroutines.
//
package netlist

import (
	"strconv"

	"github.com/pkg/errors"
)

// Dir is the direction of a port.
//
type Dir int

// Signal directions. Internal signals are not ports.
//
const (
	Internal Dir = iota
	Input
	Output
	InOut
)

var dirNames = [...]string{"internal", "input", "output", "inout"}

func (d Dir) String() string {
	if d < 0 || int(d) >= len(dirNames) {
		return "Dir(" + strconv.Itoa(int(d)) + ")"
	}
	return dirNames[d]
}

// A Signal is a named bundle of Width wires in a module.
//
type Signal struct {
	Name  string
	Width int
	Dir   Dir
}

// IsPort returns true if s is part of its module's public interface.
//
func (s *Signal) IsPort() bool { return s.Dir != Internal }

// Bit returns the i-th wire of s.
//
func (s *Signal) Bit(i int) Wire {
	if i < 0 || i >= s.Width {
		panic("bit " + strconv.Itoa(i) + " out of range for signal " + s.Name)
	}
	return Wire{s, i}
}

// Slice returns wires lo to hi-1 of s.
//
func (s *Signal) Slice(lo, hi int) Bits {
	if lo < 0 || hi > s.Width || lo > hi {
		panic("invalid slice [" + strconv.Itoa(lo) + ":" + strconv.Itoa(hi) + "] of signal " + s.Name)
	}
	b := make(Bits, 0, hi-lo)
	for i := lo; i < hi; i++ {
		b = append(b, Wire{s, i})
	}
	return b
}

// Bits returns all wires of s.
//
func (s *Signal) Bits() Bits { return s.Slice(0, s.Width) }

// An Instance is a module placed in another module.
//
type Instance struct {
	Name   string
	Of     *Module
	Conns  Conns
	Params Params
}

// A Module is a circuit blueprint.
//
type Module struct {
	Name      string
	Primitive bool

	signals []*Signal
	sigs    map[string]*Signal
	insts   []*Instance
	names   map[string]*Instance
}

// New returns a new, empty module.
//
func New(name string) *Module {
	return &Module{
		Name:  name,
		sigs:  make(map[string]*Signal),
		names: make(map[string]*Instance),
	}
}

// NewPrimitive returns a primitive module with the given ports. See
// ParsePorts for the syntax of the port specification. It panics if ports
// cannot be parsed.
//
func NewPrimitive(name string, ports string) *Module {
	ds, err := ParsePorts(ports)
	if err != nil {
		panic(err)
	}
	m := New(name)
	m.Primitive = true
	for _, d := range ds {
		m.Port(d.Name, d.Width, InOut)
	}
	return m
}

// Port adds a port to m. It panics if a signal with the same name already
// exists or if width is not positive.
//
func (m *Module) Port(name string, width int, dir Dir) *Signal {
	if dir == Internal {
		panic("port " + name + " of " + m.Name + " has no direction")
	}
	return m.add(name, width, dir)
}

// Signal adds an internal signal to m. It panics if a signal with the same
// name already exists or if width is not positive.
//
func (m *Module) Signal(name string, width int) *Signal {
	return m.add(name, width, Internal)
}

func (m *Module) add(name string, width int, dir Dir) *Signal {
	if _, ok := m.sigs[name]; ok {
		panic("signal " + name + " already exists in " + m.Name)
	}
	if width < 1 {
		panic("signal " + name + " in " + m.Name + " must be at least one wire wide")
	}
	s := &Signal{Name: name, Width: width, Dir: dir}
	m.signals = append(m.signals, s)
	m.sigs[name] = s
	return s
}

// Lookup returns the named signal or nil.
//
func (m *Module) Lookup(name string) *Signal {
	return m.sigs[name]
}

// Ports returns the ports of m in declaration order.
//
func (m *Module) Ports() []*Signal {
	var ps []*Signal
	for _, s := range m.signals {
		if s.IsPort() {
			ps = append(ps, s)
		}
	}
	return ps
}

// Signals returns all signals of m, ports included, in declaration order.
//
func (m *Module) Signals() []*Signal {
	return append([]*Signal(nil), m.signals...)
}

// Instances returns the instances in m in the order they were added.
//
func (m *Module) Instances() []*Instance {
	return append([]*Instance(nil), m.insts...)
}

// Instance returns the named instance or nil.
//
func (m *Module) Instance(name string) *Instance {
	return m.names[name]
}

// Add instantiates module of in m. Every port of of must be connected to
// wires of m with matching widths.
//
func (m *Module) Add(name string, of *Module, conns Conns, params Params) (*Instance, error) {
	if m.Primitive {
		return nil, errors.New("cannot add instance " + name + " to primitive " + m.Name)
	}
	if of == nil {
		return nil, errors.New("instance " + name + " of nil module in " + m.Name)
	}
	if !IsIdent(name) {
		return nil, errors.Errorf("invalid instance name %q in %s", name, m.Name)
	}
	if _, ok := m.names[name]; ok {
		return nil, errors.New("instance " + name + " already exists in " + m.Name)
	}
	for k, bits := range conns {
		p := of.Lookup(k)
		if p == nil || !p.IsPort() {
			return nil, errors.New("invalid port name " + k + " for part " + of.Name)
		}
		if len(bits) != p.Width {
			return nil, errors.Errorf("%s.%s: port is %d wires wide, connected to %d", name, k, p.Width, len(bits))
		}
		for _, w := range bits {
			if w.Sig == nil {
				return nil, errors.Errorf("%s.%s: unconnected wire", name, k)
			}
			if m.sigs[w.Sig.Name] != w.Sig {
				return nil, errors.Errorf("%s.%s: wire %v is not a signal of %s", name, k, w, m.Name)
			}
			if w.Index < 0 || w.Index >= w.Sig.Width {
				return nil, errors.Errorf("%s.%s: wire index %d out of range for %s", name, k, w.Index, w.Sig.Name)
			}
		}
	}
	for _, p := range of.Ports() {
		if _, ok := conns[p.Name]; !ok {
			return nil, errors.New("pin " + of.Name + "." + p.Name + " of " + name + " not connected")
		}
	}
	inst := &Instance{Name: name, Of: of, Conns: conns, Params: params}
	m.insts = append(m.insts, inst)
	m.names[name] = inst
	return inst, nil
}
