// Package tap selects coupling sites on arrays of ring oscillators.
//
// Each node of a weight matrix is a ring oscillator with a fixed number of
// taps (inverter stage outputs). For every nonzero weight, Allocate claims one
// tap on each node such that no tap drives more than one coupling, and such
// that the parity of the tap pair matches the sign of the weight: connecting
// couplers across in-phase stages pushes the pair towards a bistable state
// (negative weights) while anti-phase stages push it towards synchrony
// (positive weights).
//
package tap

// Parity returns the parity of the first tap to try on the second node of a
// coupling with weight w, given the tap chosen on the first node.
//
func Parity(w, tapI int) int {
	neg := 0
	if w < 0 {
		neg = 1
	}
	return (neg + tapI%2) % 2
}

// Allocate assigns taps to every coupling in w, given the number of taps per
// node.
//
// Pairs are processed in row-major order (i < j). The tap on node i is the
// first free one; the tap on node j is the first free one starting at
// Parity(w[i][j], tapI) with a stride of 2. If either search fails, Allocate
// returns a *CapacityError and no assignment. Invalid input yields a
// *ConfigError.
//
// Allocate is deterministic and never backtracks.
//
func Allocate(stages int, w Weights) (*Assignment, error) {
	if stages < 1 {
		return nil, configErrorf("stage count must be positive, got %d", stages)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	n := len(w)
	a := newAssignment(stages, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if w[i][j] == 0 {
				continue
			}
			if err := a.update(i, j, w[i][j]); err != nil {
				return nil, err
			}
		}
	}
	return a, nil
}

func (a *Assignment) update(i, j, w int) error {
	ti := a.firstFree(i, 0, 1)
	if ti < 0 {
		return &CapacityError{I: i, J: j, Node: i, Stages: a.stages}
	}
	tj := a.firstFree(j, Parity(w, ti), 2)
	if tj < 0 {
		return &CapacityError{I: i, J: j, Node: j, Stages: a.stages}
	}
	a.claim(i, ti)
	a.claim(j, tj)
	if w < 0 {
		w = -w
	}
	a.m.Put(Pair{i, j}, Coupling{TapI: ti, TapJ: tj, Strength: w})
	return nil
}
