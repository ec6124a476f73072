package wobblchip

import (
	"github.com/ThomasPluck/wobblchip/cells"
	"github.com/ThomasPluck/wobblchip/netlist"
)

// An OscillatorFn returns an array of rows ring oscillators with the given
// number of stages. The returned module must have the ports VDD, VSS, EN and
// links[stages*rows], tap k of row r being links[r*stages+k].
//
type OscillatorFn func(stages, rows int) (*netlist.Module, error)

// A CouplingFn returns a coupling element of the given strength, with ports
// A and B and optional VSS and VDD supply ports. Higher strengths must have a
// lower impedance.
//
type CouplingFn func(strength int) (*netlist.Module, error)

// Logger is the logging interface used to trace synthesis steps. klog.V(n)
// satisfies it.
//
type Logger interface {
	Infof(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{}) {}

type config struct {
	oscillators OscillatorFn
	coupling    CouplingFn
	enable      bool
	log         Logger
}

// An Option configures Build and Synthesize.
//
type Option func(*config)

// WithOscillators sets the ring oscillator array generator. The default is
// cells.RingArray.
//
func WithOscillators(fn OscillatorFn) Option {
	return func(c *config) { c.oscillators = fn }
}

// WithCoupling sets the coupling element generator. The default is
// cells.Resistive.
//
func WithCoupling(fn CouplingFn) Option {
	return func(c *config) { c.coupling = fn }
}

// WithEnable exposes the oscillators' shared enable line as an EN port of the
// gate. Without it, the oscillators are always enabled.
//
func WithEnable() Option {
	return func(c *config) { c.enable = true }
}

// WithLogger traces allocation and build steps to l.
//
func WithLogger(l Logger) Option {
	return func(c *config) { c.log = l }
}

func newConfig(opts []Option) *config {
	c := &config{
		oscillators: cells.RingArray,
		coupling:    cells.Resistive,
		log:         nopLogger{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}
