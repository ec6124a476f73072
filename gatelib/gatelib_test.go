package gatelib_test

import (
	"strings"
	"testing"

	wc "github.com/ThomasPluck/wobblchip"
	"github.com/ThomasPluck/wobblchip/gatelib"
	"github.com/ThomasPluck/wobblchip/netlist"
	"github.com/ThomasPluck/wobblchip/tap"
	"github.com/ThomasPluck/wobblchip/wobbletest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	cat := gatelib.Catalog()
	var names []string
	for _, s := range cat {
		names = append(names, s.Name)
		assert.NoError(t, s.Validate(), s.Name)
		assert.Equal(t, "AUX", s.Ref().Name)
	}
	assert.Equal(t, []string{"AND", "FA", "HA"}, names)

	s, ok := gatelib.Lookup("HA")
	require.True(t, ok)
	s.Weights[0][1] = 42
	s2, _ := gatelib.Lookup("HA")
	assert.Equal(t, -2, s2.Weights[0][1], "Lookup must return a fresh copy")

	_, ok = gatelib.Lookup("XOR")
	assert.False(t, ok)
}

func TestCatalog_synthesize(t *testing.T) {
	td := []struct {
		name    string
		entries int
		ports   []string
	}{
		{"AND", 6, []string{"A", "B", "C"}},
		{"HA", 10, []string{"A", "B", "S", "C"}},
		{"FA", 15, []string{"A", "B", "Cin", "S", "Cout"}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			s, ok := gatelib.Lookup(d.name)
			require.True(t, ok)
			g, err := wc.Synthesize(s)
			require.NoError(t, err)
			wobbletest.CheckGate(t, g)
			assert.Len(t, g.Entries, d.entries)
			for i, p := range d.ports {
				assert.Equal(t, p, g.Ports()[3+i].Name)
			}
			for _, tp := range g.Taps {
				assert.Equal(t, gatelib.Stages-1, tp)
			}

			a, err := tap.Allocate(s.Stages, s.Weights)
			require.NoError(t, err)
			wobbletest.CheckAssignment(t, s.Stages, s.Weights, a)
		})
	}
}

func TestCatalog_capacity(t *testing.T) {
	td := []struct {
		name    string
		stages  int
		wantErr bool
	}{
		{"HA", 3, true},
		{"HA", 4, false}, // allocation fits but leaves no tap for the ports
		{"HA", 5, false},
		{"FA", 5, true},
		{"FA", 9, false},
	}
	for _, d := range td {
		s, _ := gatelib.Lookup(d.name)
		_, err := tap.Allocate(d.stages, s.Weights)
		var ce *tap.CapacityError
		assert.Equal(t, d.wantErr, errors.As(err, &ce), "%s with %d stages: %v", d.name, d.stages, err)
	}

	s, _ := gatelib.Lookup("HA")
	s.Stages = 4
	_, err := wc.Synthesize(s)
	var ce *wc.ConsistencyError
	assert.True(t, errors.As(err, &ce), "got %v", err)
}

func TestLoadCatalog(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, gatelib.WriteCatalog(&sb, gatelib.Catalog()))
	specs, err := gatelib.LoadCatalog(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.Equal(t, gatelib.Catalog(), specs)

	specs, err = gatelib.LoadCatalog(strings.NewReader(`
gates:
  - name: BUF
    nodes: [IN, OUT, {name: R, ref: true}]
    weights:
      - [0, 1, 0]
      - [1, 0, -1]
      - [0, -1, 0]
`))
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, gatelib.Stages, specs[0].Stages)
	assert.True(t, specs[0].Nodes[2].Ref)

	specs, err = gatelib.LoadCatalog(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, specs)
}

func TestLoadCatalog_errors(t *testing.T) {
	td := []struct {
		name   string
		src    string
		config bool
	}{
		{"unknown_field", "gates:\n  - name: X\n    colour: red\n", false},
		{"asymmetric", "gates:\n  - name: X\n    nodes: [A, {name: R, ref: true}]\n    weights: [[0, 1], [2, 0]]\n", true},
		{"duplicate", "gates:\n  - name: X\n    nodes: [{name: R, ref: true}]\n    weights: [[0]]\n  - name: X\n    nodes: [{name: R, ref: true}]\n    weights: [[0]]\n", false},
		{"not_yaml", "gates: [", false},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := gatelib.LoadCatalog(strings.NewReader(d.src))
			require.Error(t, err)
			var ce *wc.ConfigError
			assert.Equal(t, d.config, errors.As(err, &ce), "got %v", err)
		})
	}
}

func TestSynthesizeAll(t *testing.T) {
	specs := append(gatelib.Catalog(), gatelib.Catalog()...)
	for _, workers := range []int{0, 1, 2, 100} {
		gates, err := gatelib.SynthesizeAll(workers, specs)
		require.NoError(t, err)
		require.Len(t, gates, len(specs))
		for i, g := range gates {
			assert.Equal(t, specs[i].Name+"_gate", g.Name, "workers: %d", workers)
		}
	}

	bad := gatelib.Catalog()
	bad[1].Stages = 2 // FA
	bad[2].Stages = 2 // HA
	_, err := gatelib.SynthesizeAll(2, bad)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "gate FA: "), err.Error())

	gates, err := gatelib.SynthesizeAll(4, nil)
	assert.NoError(t, err)
	assert.Nil(t, gates)
}

func TestReadout(t *testing.T) {
	g, err := wc.Synthesize(gatelib.And(), wc.WithEnable())
	require.NoError(t, err)
	r, err := gatelib.Readout(g)
	require.NoError(t, err)

	assert.Equal(t, "AND_gate_readout", r.Name)
	var ports []string
	for _, p := range r.Ports() {
		ports = append(ports, p.Name)
	}
	assert.Equal(t, []string{"VDD", "VSS", "CLK", "OUT", "EN"}, ports)
	assert.Equal(t, 3, r.Lookup("OUT").Width)
	det := r.Instance("detector")
	require.NotNil(t, det)
	assert.Equal(t, netlist.Bits{r.Lookup("A").Bit(0), r.Lookup("B").Bit(0), r.Lookup("C").Bit(0)}, det.Conns["IN"])
	assert.Equal(t, r.Lookup(wc.REF).Bits(), r.Instance("gate").Conns[wc.REF])

	var sb strings.Builder
	require.NoError(t, netlist.Write(&sb, r))
	assert.Contains(t, sb.String(), ".subckt phase_detector3 ")

	clash := wc.Spec{
		Name:    "CLASH",
		Stages:  3,
		Nodes:   []wc.Node{{Name: "CLK"}, {Name: "R", Ref: true}},
		Weights: tap.Weights{{0, 0}, {0, 0}},
	}
	g, err = wc.Synthesize(clash)
	require.NoError(t, err)
	_, err = gatelib.Readout(g)
	assert.EqualError(t, err, "gate CLASH: node name CLK clashes with readout port")
}
