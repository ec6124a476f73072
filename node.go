package wobblchip

import (
	"strings"

	"github.com/ThomasPluck/wobblchip/netlist"
	"github.com/ThomasPluck/wobblchip/tap"
	"gopkg.in/yaml.v3"
)

// Boundary port names of a built gate.
//
const (
	VDD = "VDD"
	VSS = "VSS"
	REF = "REF"
	EN  = "EN"
)

const (
	pLinks   = "links"
	pPadding = "padding"
)

// kwRef marks the reference node in the gate description language.
const kwRef = "ref"

// A Node names an oscillator of a gate. Exactly one node of a gate is the
// reference node: its phase is the 0/1 decision boundary for all others and
// it is exposed as the REF port instead of a port of its own.
//
// In YAML, a node is either a plain name or a mapping:
//
//	nodes: [A, B, C, {name: AUX, ref: true}]
//
type Node struct {
	Name string `yaml:"name"`
	Ref  bool   `yaml:"ref,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
//
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*n = Node{Name: value.Value}
		return nil
	}
	type plain Node
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*n = Node(p)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
//
func (n Node) MarshalYAML() (interface{}, error) {
	if !n.Ref {
		return n.Name, nil
	}
	type plain Node
	return plain(n), nil
}

// Nodes returns non-reference nodes with the given names.
//
func Nodes(names ...string) []Node {
	ns := make([]Node, len(names))
	for i, n := range names {
		ns[i].Name = n
	}
	return ns
}

// checkNodes validates node names and returns the index of the reference
// node.
//
func checkNodes(nodes []Node) (int, error) {
	ref := -1
	seen := make(map[string]bool, len(nodes))
	for i, n := range nodes {
		switch {
		case !netlist.IsIdent(n.Name):
			return -1, configErrorf("invalid node name %q", n.Name)
		case n.Name == VDD, n.Name == VSS, n.Name == REF, n.Name == EN, n.Name == kwRef,
			strings.HasPrefix(n.Name, pPadding):
			return -1, configErrorf("node name %s is reserved", n.Name)
		case seen[n.Name]:
			return -1, configErrorf("duplicate node name %s", n.Name)
		}
		seen[n.Name] = true
		if n.Ref {
			if ref >= 0 {
				return -1, configErrorf("nodes %s and %s are both marked as reference", nodes[ref].Name, n.Name)
			}
			ref = i
		}
	}
	if ref < 0 {
		return -1, configErrorf("no reference node")
	}
	return ref, nil
}

// A Spec describes an oscillator gate: its nodes, the coupling weights
// between them and the number of stages of each ring oscillator.
//
type Spec struct {
	Name    string      `yaml:"name"`
	Stages  int         `yaml:"stages"`
	Nodes   []Node      `yaml:"nodes"`
	Weights tap.Weights `yaml:"weights,flow"`
}

// Validate checks s for configuration errors. The returned error, if any, is
// a *ConfigError.
//
func (s *Spec) Validate() error {
	if !netlist.IsIdent(s.Name) {
		return configErrorf("invalid gate name %q", s.Name)
	}
	if s.Stages < 1 {
		return configErrorf("stage count must be positive, got %d", s.Stages)
	}
	if _, err := checkNodes(s.Nodes); err != nil {
		return err
	}
	if len(s.Nodes) != len(s.Weights) {
		return configErrorf("%d node names for a %d node weight matrix", len(s.Nodes), len(s.Weights))
	}
	return s.Weights.Validate()
}

// Ref returns the reference node.
//
func (s *Spec) Ref() Node {
	for _, n := range s.Nodes {
		if n.Ref {
			return n
		}
	}
	return Node{}
}
