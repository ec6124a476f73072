package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "AND      stages 9   couplings 6   nodes A, B, C, ref AUX", lines[0])
}

func TestSynth_assign(t *testing.T) {
	out, err := run(t, "synth", "AND")
	require.NoError(t, err)
	assert.Equal(t, "AND stages 9 taps A=8 B=8 C=8 AUX=8\n"+
		"\t0.0-1.1/2 0.1-2.1/4 0.2-3.0/1 1.0-2.0/4 1.2-3.2/1 2.2-3.1/2\n", out)

	out, err = run(t, "synth", "AND", "--stages", "4")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "AND stages 4 taps A=3 B=3 C=3 AUX=3\n"), out)

	_, err = run(t, "synth", "AND", "--stages", "2")
	assert.EqualError(t, err, "gate AND: no free tap on node 0 for coupling 0-3 with 2 stages, use a longer ring")
}

func TestSynth_netlist(t *testing.T) {
	out, err := run(t, "synth", "AND", "HA", "--format", "netlist", "--coupling", "inverter", "--enable", "--readout")
	require.NoError(t, err)
	// shared subcircuits are written once
	assert.Equal(t, 1, strings.Count(out, ".subckt ro9 "))
	assert.Equal(t, 1, strings.Count(out, ".subckt coupling_i4 "))
	assert.Contains(t, out, ".subckt AND_gate VDD VSS REF EN A B C\n")
	assert.Contains(t, out, ".subckt HA_gate_readout VDD VSS CLK OUT[0] OUT[1] OUT[2] OUT[3] EN\n")
}

func TestSynth_repeated(t *testing.T) {
	out, err := run(t, "synth", "AND", "AND", "--format", "netlist")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, ".subckt AND_gate "))

	out, err = run(t, "synth", "AND", "HA", "AND")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "AND stages 9 "), lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "HA stages "), lines[2])
}

func TestSynth_yaml(t *testing.T) {
	out, err := run(t, "synth", "FA", "--format", "yaml")
	require.NoError(t, err)
	var gates []struct {
		Name      string         `yaml:"name"`
		Taps      map[string]int `yaml:"taps"`
		Couplings []struct {
			Nodes    []string `yaml:"nodes"`
			Taps     []int    `yaml:"taps"`
			Strength int      `yaml:"strength"`
		} `yaml:"couplings"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &gates))
	require.Len(t, gates, 1)
	assert.Equal(t, "FA", gates[0].Name)
	assert.Equal(t, 8, gates[0].Taps["Cout"])
	require.Len(t, gates[0].Couplings, 15)
	c := gates[0].Couplings[13]
	assert.Equal(t, []string{"S", "AUX"}, c.Nodes)
	assert.Equal(t, []int{3, 7}, c.Taps)
	assert.Equal(t, 1, c.Strength)
}

func TestSynth_sources(t *testing.T) {
	dir := t.TempDir()
	hdl := filepath.Join(dir, "buf.gate")
	require.NoError(t, os.WriteFile(hdl, []byte(`
gate BUF stages 3 {
	nodes IN, OUT, ref R;
	weights { 0 1 0; 1 0 -1; 0 -1 0; }
}
`), 0o644))
	cat := filepath.Join(dir, "and.yaml")
	require.NoError(t, os.WriteFile(cat, []byte(`
gates:
  - name: AND
    stages: 5
    nodes: [A, B, C, {name: AUX, ref: true}]
    weights: [[0, -2, 4, 1], [-2, 0, 4, 1], [4, 4, 0, -2], [1, 1, -2, 0]]
`), 0o644))

	out, err := run(t, "list", "--hdl", hdl, "--catalog", cat)
	require.NoError(t, err)
	assert.Contains(t, out, "AND      stages 5 ")
	assert.Contains(t, out, "BUF      stages 3   couplings 2   nodes IN, OUT, ref R\n")

	out, err = run(t, "synth", "BUF", "--hdl", hdl)
	require.NoError(t, err)
	assert.Equal(t, "BUF stages 3 taps IN=2 OUT=2 R=2\n\t0.0-1.0/1 1.1-2.0/1\n", out)
}

func TestSynth_errors(t *testing.T) {
	td := []struct {
		args []string
		msg  string
	}{
		{[]string{"synth", "XOR"}, "unknown gate XOR"},
		{[]string{"synth", "--coupling", "magnetic"}, `unknown coupling "magnetic"`},
		{[]string{"synth", "--format", "gds"}, `unknown output format "gds"`},
		{[]string{"list", "--hdl", "/nonexistent/file.gate"}, "open /nonexistent/file.gate: no such file or directory"},
	}
	for _, d := range td {
		_, err := run(t, d.args...)
		assert.EqualError(t, err, d.msg, "%v", d.args)
	}
}
