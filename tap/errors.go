package tap

import "fmt"

// A ConfigError reports malformed synthesis input: a non-square or asymmetric
// weight matrix, a non-zero diagonal, a non-positive stage count, or a node
// list that does not match the matrix.
//
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Msg
}

func configErrorf(format string, args ...interface{}) error {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// A CapacityError is returned by Allocate when no free tap satisfying the
// parity rule is left on one side of a coupling. The weight matrix is
// infeasible for the given stage count: use longer rings or change the
// matrix.
//
type CapacityError struct {
	I, J   int // coupling being placed
	Node   int // node that ran out of taps (I or J)
	Stages int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("no free tap on node %d for coupling %d-%d with %d stages, use a longer ring", e.Node, e.I, e.J, e.Stages)
}
