package tap

// Weights is a signed coupling weight matrix. w[i][j] == 0 means that nodes i
// and j are not coupled. A negative weight asks for a bistable (same-parity)
// tap pairing, a positive one for a synchronizing (opposite-parity) pairing.
// The magnitude is the coupling strength.
//
type Weights [][]int

// Validate checks that w is square, symmetric and has a zero diagonal.
//
func (w Weights) Validate() error {
	n := len(w)
	for i, row := range w {
		if len(row) != n {
			return configErrorf("weight matrix is not square: row %d has %d columns, expected %d", i, len(row), n)
		}
	}
	for i := 0; i < n; i++ {
		if w[i][i] != 0 {
			return configErrorf("weight matrix has non-zero diagonal entry w[%d][%d] = %d", i, i, w[i][i])
		}
		for j := i + 1; j < n; j++ {
			if w[i][j] != w[j][i] {
				return configErrorf("weight matrix is not symmetric: w[%d][%d] = %d, w[%d][%d] = %d", i, j, w[i][j], j, i, w[j][i])
			}
		}
	}
	return nil
}

// Transpose returns a transposed copy of w. Only rectangular matrices are
// supported.
//
func (w Weights) Transpose() Weights {
	if len(w) == 0 {
		return Weights{}
	}
	t := make(Weights, len(w[0]))
	for j := range t {
		t[j] = make([]int, len(w))
		for i := range w {
			t[j][i] = w[i][j]
		}
	}
	return t
}

// Degree returns the number of couplings node i takes part in.
//
func (w Weights) Degree(i int) int {
	d := 0
	for j, v := range w[i] {
		if j != i && v != 0 {
			d++
		}
	}
	return d
}

// Couplings returns the number of nonzero entries in the upper triangle of w,
// that is the number of entries a successful allocation produces.
//
func (w Weights) Couplings() int {
	c := 0
	for i := range w {
		for j := i + 1; j < len(w[i]); j++ {
			if w[i][j] != 0 {
				c++
			}
		}
	}
	return c
}
