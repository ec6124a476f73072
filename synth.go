package wobblchip

import (
	"github.com/ThomasPluck/wobblchip/tap"
	"github.com/pkg/errors"
)

// Synthesize allocates taps for the couplings of s and builds the gate.
//
// Errors are wrapped with the gate name; use errors.As to get the
// *ConfigError, *CapacityError or *ConsistencyError.
//
func Synthesize(s Spec, opts ...Option) (*Gate, error) {
	if err := s.Validate(); err != nil {
		return nil, errors.Wrapf(err, "gate %s", s.Name)
	}
	cfg := newConfig(opts)
	a, err := tap.Allocate(s.Stages, s.Weights)
	if err != nil {
		return nil, errors.Wrapf(err, "gate %s", s.Name)
	}
	cfg.log.Infof("%s: %d couplings on %d nodes of %d stages: %v", s.Name, a.Len(), a.Nodes(), s.Stages, a)
	g, err := Build(s.Name, s.Stages, s.Nodes, a, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "gate %s", s.Name)
	}
	return g, nil
}
