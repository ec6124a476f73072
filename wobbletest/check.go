// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package wobbletest provides utility functions for testing tap assignments
// and built gates.
//
package wobbletest

import (
	"math/rand"
	"strings"
	"testing"

	wc "github.com/ThomasPluck/wobblchip"
	"github.com/ThomasPluck/wobblchip/tap"
)

// CheckAssignment checks that a is a valid allocation of w on rings of the
// given length:
//
//	- every nonzero upper triangle weight has exactly one entry, zeros have none
//	- strengths are the absolute weights
//	- no tap is used twice on a node and no tap is out of range
//	- the second tap of every entry has the parity given by tap.Parity
//	- Claimed and Used agree with the entries
//
func CheckAssignment(t testing.TB, stages int, w tap.Weights, a *tap.Assignment) {
	t.Helper()

	if a.Stages() != stages || a.Nodes() != len(w) {
		t.Fatalf("assignment is %d nodes x %d stages, expected %d x %d", a.Nodes(), a.Stages(), len(w), stages)
	}
	if a.Len() != w.Couplings() {
		t.Errorf("got %d couplings, expected %d", a.Len(), w.Couplings())
	}
	for i := range w {
		for j := i + 1; j < len(w); j++ {
			c, ok := a.Get(i, j)
			switch {
			case w[i][j] == 0 && ok:
				t.Errorf("coupling %d-%d assigned for a zero weight", i, j)
			case w[i][j] != 0 && !ok:
				t.Errorf("coupling %d-%d (weight %d) not assigned", i, j, w[i][j])
			case ok:
				if s := abs(w[i][j]); c.Strength != s {
					t.Errorf("coupling %d-%d: strength %d, expected %d", i, j, c.Strength, s)
				}
				if p := tap.Parity(w[i][j], c.TapI); c.TapJ%2 != p {
					t.Errorf("coupling %d-%d (weight %d): taps %d-%d, second tap parity must be %d", i, j, w[i][j], c.TapI, c.TapJ, p)
				}
			}
		}
	}

	used := make([][]int, len(w)) // used[node][tap] = use count
	for i := range used {
		used[i] = make([]int, stages)
	}
	for _, e := range a.Entries() {
		for _, s := range [...]struct{ node, tap int }{{e.I, e.TapI}, {e.J, e.TapJ}} {
			if s.tap < 0 || s.tap >= stages {
				t.Errorf("%v: tap %d of node %d out of range", e, s.tap, s.node)
				continue
			}
			used[s.node][s.tap]++
		}
	}
	for n := range used {
		cnt := 0
		for k, u := range used[n] {
			if u > 1 {
				t.Errorf("tap %d of node %d used by %d couplings", k, n, u)
			}
			if a.Claimed(n, k) != (u > 0) {
				t.Errorf("tap %d of node %d: claimed = %v, used by %d couplings", k, n, a.Claimed(n, k), u)
			}
			if u > 0 {
				cnt++
			}
		}
		if a.Used(n) != cnt || cnt > stages {
			t.Errorf("node %d: %d taps used, %d in entries, %d stages", n, a.Used(n), cnt, stages)
		}
	}
}

// CheckGate checks the boundary of a built gate:
//
//	- VDD, VSS, REF and one port per non-reference node, named after the node
//	- the public tap of every node is not used by any coupling
//	- the kernel's links are wired to the node ports at the public taps and
//	  to internal padding signals everywhere else
//
func CheckGate(t testing.TB, g *wc.Gate) {
	t.Helper()

	for _, p := range []string{wc.VDD, wc.VSS, wc.REF} {
		if s := g.Lookup(p); s == nil || !s.IsPort() {
			t.Errorf("gate %s: missing port %s", g.Name, p)
		}
	}
	ports := 3
	if g.Lookup(wc.EN) != nil {
		ports++
	}
	refs := 0
	for _, n := range g.Nodes {
		if n.Ref {
			refs++
			continue
		}
		ports++
		if s := g.Lookup(n.Name); s == nil || !s.IsPort() || s.Width != 1 {
			t.Errorf("gate %s: missing port for node %s", g.Name, n.Name)
		}
	}
	if refs != 1 {
		t.Errorf("gate %s: %d reference nodes", g.Name, refs)
	}
	if len(g.Ports()) != ports {
		t.Errorf("gate %s: %d ports, expected %d", g.Name, len(g.Ports()), ports)
	}

	for _, e := range g.Entries {
		if e.TapI == g.Taps[e.I] {
			t.Errorf("gate %s: public tap %d of node %s used by coupling %v", g.Name, e.TapI, g.Nodes[e.I].Name, e)
		}
		if e.TapJ == g.Taps[e.J] {
			t.Errorf("gate %s: public tap %d of node %s used by coupling %v", g.Name, e.TapJ, g.Nodes[e.J].Name, e)
		}
	}

	inst := g.Instance(g.Kernel.Name)
	if inst == nil {
		t.Fatalf("gate %s: kernel instance %s not found", g.Name, g.Kernel.Name)
	}
	links := inst.Conns["links"]
	if len(links) != g.Stages*len(g.Nodes) {
		t.Fatalf("gate %s: kernel links are %d wires wide, expected %d", g.Name, len(links), g.Stages*len(g.Nodes))
	}
	for i, n := range g.Nodes {
		port := g.NodePort(n.Name)
		for k := 0; k < g.Stages; k++ {
			w := links[i*g.Stages+k]
			if k == g.Taps[i] {
				if w.Sig != port {
					t.Errorf("gate %s: public tap %d of node %s wired to %v", g.Name, k, n.Name, w)
				}
				continue
			}
			if w.Sig.IsPort() || !strings.HasPrefix(w.Sig.Name, "padding") {
				t.Errorf("gate %s: tap %d of node %s wired to %v, expected padding", g.Name, k, n.Name, w)
			}
		}
	}
}

// RandomWeights returns a random symmetric weight matrix over n nodes with
// weights in [-max, max]. Each pair is coupled with probability density.
//
func RandomWeights(r *rand.Rand, n, max int, density float64) tap.Weights {
	w := make(tap.Weights, n)
	for i := range w {
		w[i] = make([]int, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if r.Float64() >= density {
				continue
			}
			v := r.Intn(max) + 1
			if r.Intn(2) == 0 {
				v = -v
			}
			w[i][j], w[j][i] = v, v
		}
	}
	return w
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
