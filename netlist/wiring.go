// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlist

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// BusPinName returns the pin name for the n-th bit of the named bus.
//
func BusPinName(bus string, n int) string {
	return bus + "[" + strconv.Itoa(n) + "]"
}

// A PortDecl is a port name and width, as parsed by ParsePorts.
//
type PortDecl struct {
	Name  string
	Width int
}

type portList struct {
	Ports []*portDecl `parser:"( @@ ( \",\" @@ )* )?"`
}

type portDecl struct {
	Name string `parser:"@Ident"`
	Bus  *int   `parser:"( \"[\" @Int \"]\" )?"`
}

var portLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[\[\],]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var portParser = participle.MustBuild[portList](
	participle.Lexer(portLexer),
	participle.Elide("Whitespace"),
)

// ParsePorts parses a port list like "A, links[9], VDD" into individual
// declarations. Bus widths are given in brackets.
//
func ParsePorts(spec string) ([]PortDecl, error) {
	l, err := portParser.ParseString("", spec)
	if err != nil {
		return nil, errors.Wrapf(err, "in %q", spec)
	}
	if len(l.Ports) == 0 {
		return nil, nil
	}
	out := make([]PortDecl, len(l.Ports))
	for i, p := range l.Ports {
		out[i] = PortDecl{Name: p.Name, Width: 1}
		if p.Bus == nil {
			continue
		}
		if *p.Bus < 1 {
			return nil, errors.Errorf("in %q: bus %s must have at least one wire", spec, p.Name)
		}
		out[i].Width = *p.Bus
	}
	return out, nil
}

// IsIdent returns true if name is usable as a signal or instance name: a
// letter or underscore followed by letters, digits or underscores.
//
func IsIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case '0' <= r && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// A Wire is a single bit of a Signal.
//
type Wire struct {
	Sig   *Signal
	Index int
}

func (w Wire) String() string {
	if w.Sig.Width == 1 {
		return w.Sig.Name
	}
	return BusPinName(w.Sig.Name, w.Index)
}

// Bits is an ordered list of wires, the equivalent of a concatenation of
// signal slices.
//
type Bits []Wire

// Concat concatenates bit lists in order.
//
func Concat(bs ...Bits) Bits {
	n := 0
	for _, b := range bs {
		n += len(b)
	}
	out := make(Bits, 0, n)
	for _, b := range bs {
		out = append(out, b...)
	}
	return out
}

// Conns connects the ports of an instance (the map key) to wires in the
// enclosing module.
//
type Conns map[string]Bits

// Params holds the electrical parameters of an instance (width, length,
// resistance...).
//
type Params map[string]float64
