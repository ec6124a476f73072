package tap

import (
	"strconv"
	"strings"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// A Pair identifies a coupling between nodes I and J, with I < J.
//
type Pair struct {
	I, J int
}

// MakePair returns the Pair for nodes i and j in canonical order.
//
func MakePair(i, j int) Pair {
	if j < i {
		i, j = j, i
	}
	return Pair{i, j}
}

// comparePairs orders pairs row-major, which is the allocation scan order.
func comparePairs(a, b interface{}) int {
	p, q := a.(Pair), b.(Pair)
	switch {
	case p.I < q.I:
		return -1
	case p.I > q.I:
		return 1
	case p.J < q.J:
		return -1
	case p.J > q.J:
		return 1
	}
	return 0
}

// A Coupling is the pair of taps chosen for a Pair, together with the
// coupling strength (the absolute value of the weight).
//
type Coupling struct {
	TapI, TapJ int
	Strength   int
}

// An Entry is an assigned coupling.
//
type Entry struct {
	Pair
	Coupling
}

func (e Entry) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(e.I))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(e.TapI))
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(e.J))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(e.TapJ))
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(e.Strength))
	return b.String()
}

// Assignment maps node pairs to the taps selected for their coupling.
// An Assignment is built by Allocate and is read-only afterwards.
//
type Assignment struct {
	stages int
	nodes  int
	slots  []bool // claimed slots, indexed by node*stages+tap
	m      *redblacktree.Tree
}

func newAssignment(stages, nodes int) *Assignment {
	return &Assignment{
		stages: stages,
		nodes:  nodes,
		slots:  make([]bool, stages*nodes),
		m:      redblacktree.NewWith(comparePairs),
	}
}

// Stages returns the number of taps per node.
//
func (a *Assignment) Stages() int { return a.stages }

// Nodes returns the number of nodes.
//
func (a *Assignment) Nodes() int { return a.nodes }

// Len returns the number of couplings.
//
func (a *Assignment) Len() int { return a.m.Size() }

// Get returns the coupling between nodes i and j, if any. The taps of the
// returned coupling are always ordered as for MakePair(i, j).
//
func (a *Assignment) Get(i, j int) (Coupling, bool) {
	v, ok := a.m.Get(MakePair(i, j))
	if !ok {
		return Coupling{}, false
	}
	return v.(Coupling), true
}

// Entries returns all couplings in row-major pair order.
//
func (a *Assignment) Entries() []Entry {
	es := make([]Entry, 0, a.m.Size())
	it := a.m.Iterator()
	for it.Next() {
		es = append(es, Entry{it.Key().(Pair), it.Value().(Coupling)})
	}
	return es
}

// Claimed returns true if the given tap of node is used by a coupling. It
// returns false for a node or tap out of range.
//
func (a *Assignment) Claimed(node, tap int) bool {
	if node < 0 || node >= a.nodes || tap < 0 || tap >= a.stages {
		return false
	}
	return a.slots[node*a.stages+tap]
}

// Used returns the number of claimed taps on node, or 0 if node is out of
// range.
//
func (a *Assignment) Used(node int) int {
	if node < 0 || node >= a.nodes {
		return 0
	}
	n := 0
	for _, c := range a.slots[node*a.stages : (node+1)*a.stages] {
		if c {
			n++
		}
	}
	return n
}

// String returns a compact, deterministic representation of a: one
// "i.tapI-j.tapJ/strength" item per coupling, separated by spaces.
//
func (a *Assignment) String() string {
	var b strings.Builder
	for i, e := range a.Entries() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(e.String())
	}
	return b.String()
}

func (a *Assignment) claim(node, tap int) {
	a.slots[node*a.stages+tap] = true
}

// firstFree returns the first free tap of node, scanning from start with the
// given stride, or -1.
//
func (a *Assignment) firstFree(node, start, step int) int {
	s := a.slots[node*a.stages : (node+1)*a.stages]
	for t := start; t < len(s); t += step {
		if !s[t] {
			return t
		}
	}
	return -1
}
