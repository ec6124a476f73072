package wobblchip

import (
	"fmt"

	"github.com/ThomasPluck/wobblchip/tap"
)

// A ConfigError reports malformed synthesis input.
//
type ConfigError = tap.ConfigError

// A CapacityError reports a weight matrix that does not fit in the requested
// number of ring stages.
//
type CapacityError = tap.CapacityError

// A ConsistencyError reports a tap assignment that cannot be realised by the
// builder: a tap beyond the ring length, a tap used twice, or a node left
// without a free tap for its public port. It means that the allocator and
// the builder disagree and is never expected from Synthesize.
//
type ConsistencyError struct {
	Msg string
}

func (e *ConsistencyError) Error() string {
	return "inconsistent tap assignment: " + e.Msg
}

func configErrorf(format string, args ...interface{}) error {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

func consistencyErrorf(format string, args ...interface{}) error {
	return &ConsistencyError{Msg: fmt.Sprintf(format, args...)}
}
