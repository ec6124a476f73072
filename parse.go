// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wobblchip

import (
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// Gate description language:
//
//	# AND gate
//	gate AND stages 9 {
//		nodes A, B, C, ref AUX;
//		weights {
//			 0 -2  4  1;
//			-2  0  4  1;
//			 4  4  0 -2;
//			 1  1 -2  0;
//		}
//	}
//
// gate, stages, nodes, ref and weights are keywords. Only ref may precede a
// node name, so it is also a reserved node name.

type hdlFile struct {
	Gates []*hdlGate `parser:"@@*"`
}

type hdlGate struct {
	Pos    lexer.Position
	Name   string     `parser:"\"gate\" @Ident"`
	Stages int        `parser:"\"stages\" @Int \"{\""`
	Nodes  []*hdlNode `parser:"\"nodes\" @@ ( \",\" @@ )* \";\""`
	Rows   []*hdlRow  `parser:"\"weights\" \"{\" @@* \"}\" \"}\""`
}

type hdlNode struct {
	Ref  bool   `parser:"@\"ref\"?"`
	Name string `parser:"@Ident"`
}

type hdlRow struct {
	Cells []*hdlInt `parser:"@@+ \";\""`
}

type hdlInt struct {
	Neg bool `parser:"@\"-\"?"`
	Abs int  `parser:"@Int"`
}

func (i *hdlInt) value() int {
	if i.Neg {
		return -i.Abs
	}
	return i.Abs
}

var hdlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[-{};,]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var hdlParser = participle.MustBuild[hdlFile](
	participle.Lexer(hdlLexer),
	participle.Elide("Comment", "Whitespace"),
)

func (g *hdlGate) spec() Spec {
	s := Spec{Name: g.Name, Stages: g.Stages}
	for _, n := range g.Nodes {
		s.Nodes = append(s.Nodes, Node{Name: n.Name, Ref: n.Ref})
	}
	for _, r := range g.Rows {
		row := make([]int, len(r.Cells))
		for i, c := range r.Cells {
			row[i] = c.value()
		}
		s.Weights = append(s.Weights, row)
	}
	return s
}

// ParseSpecs reads gate descriptions from r. The returned specs are
// validated; configuration errors are reported with the position of the
// offending gate and can be retrieved with errors.As.
//
func ParseSpecs(filename string, r io.Reader) ([]Spec, error) {
	f, err := hdlParser.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	specs := make([]Spec, 0, len(f.Gates))
	seen := make(map[string]bool, len(f.Gates))
	for _, g := range f.Gates {
		s := g.spec()
		if err := s.Validate(); err != nil {
			return nil, errors.Wrapf(err, "%s: gate %s", g.Pos, g.Name)
		}
		if seen[s.Name] {
			return nil, errors.Wrapf(configErrorf("duplicate gate name %s", s.Name), "%s", g.Pos)
		}
		seen[s.Name] = true
		specs = append(specs, s)
	}
	return specs, nil
}

// ParseSpec parses a single gate description.
//
func ParseSpec(s string) (Spec, error) {
	f, err := hdlParser.ParseString("", s)
	if err != nil {
		return Spec{}, err
	}
	if len(f.Gates) != 1 {
		return Spec{}, errors.Errorf("expected exactly one gate, got %d", len(f.Gates))
	}
	g := f.Gates[0]
	sp := g.spec()
	if err := sp.Validate(); err != nil {
		return Spec{}, errors.Wrapf(err, "%s: gate %s", g.Pos, g.Name)
	}
	return sp, nil
}
