package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	wc "github.com/ThomasPluck/wobblchip"
	"github.com/ThomasPluck/wobblchip/cells"
	"github.com/ThomasPluck/wobblchip/gatelib"
	"github.com/ThomasPluck/wobblchip/netlist"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// sources holds the flags shared by list and synth.
type sources struct {
	catalogs []string
	hdls     []string
}

func (s *sources) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&s.catalogs, "catalog", nil, "load gates from a YAML catalog `file`")
	cmd.Flags().StringSliceVar(&s.hdls, "hdl", nil, "load gates from a gate description `file`")
}

// load returns the built-in gates followed by the gates of all catalog and
// description files. Later gates replace earlier ones with the same name.
func (s *sources) load() ([]wc.Spec, error) {
	specs := gatelib.Catalog()
	add := func(ss []wc.Spec) {
		for _, sp := range ss {
			replaced := false
			for i := range specs {
				if specs[i].Name == sp.Name {
					specs[i], replaced = sp, true
					break
				}
			}
			if !replaced {
				specs = append(specs, sp)
			}
		}
	}
	for _, name := range s.catalogs {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		ss, err := gatelib.LoadCatalog(f)
		f.Close()
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		add(ss)
	}
	for _, name := range s.hdls {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		ss, err := wc.ParseSpecs(name, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		add(ss)
	}
	return specs, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "wobblchip",
		Short: "Synthesize coupled ring oscillator gates",
		Long: `wobblchip turns oscillator gate descriptions (nodes and a signed coupling
weight matrix) into netlists of ring oscillators and coupling elements.

Gates come from the built-in catalog, from YAML catalogs (--catalog) or from
gate description files (--hdl).`,
		SilenceUsage: true,
	}
	root.AddCommand(newListCmd(), newSynthCmd())
	return root
}

func newListCmd() *cobra.Command {
	var src sources
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available gates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := src.load()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, s := range specs {
				var ns []string
				for _, n := range s.Nodes {
					if n.Ref {
						ns = append(ns, "ref "+n.Name)
						continue
					}
					ns = append(ns, n.Name)
				}
				fmt.Fprintf(w, "%-8s stages %-3d couplings %-3d nodes %s\n", s.Name, s.Stages, s.Weights.Couplings(), strings.Join(ns, ", "))
			}
			return nil
		},
	}
	src.register(cmd)
	return cmd
}

type synthFlags struct {
	sources
	stages   int
	enable   bool
	coupling string
	format   string
	readout  bool
	workers  int
}

var couplings = map[string]wc.CouplingFn{
	"resistive": cells.Resistive,
	"inverter":  cells.InverterLoop,
}

func newSynthCmd() *cobra.Command {
	var fl synthFlags
	cmd := &cobra.Command{
		Use:   "synth [GATE...]",
		Short: "Synthesize gates",
		Long: `Synthesize the named gates, or all available gates if none is given.

Output formats:
  assign   - public taps and tap assignment of every gate
  netlist  - SPICE subcircuits of the gates and everything they use
  yaml     - tap assignments as YAML`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSynth(cmd.OutOrStdout(), &fl, args)
		},
	}
	fl.register(cmd)
	f := cmd.Flags()
	f.IntVar(&fl.stages, "stages", 0, "override the ring length of all gates")
	f.BoolVar(&fl.enable, "enable", false, "expose the oscillator enable line as an EN port")
	f.StringVar(&fl.coupling, "coupling", "resistive", "coupling element: resistive or inverter")
	f.StringVar(&fl.format, "format", "assign", "output format: assign, netlist or yaml")
	f.BoolVar(&fl.readout, "readout", false, "wrap netlist output with phase detectors")
	f.IntVar(&fl.workers, "workers", 0, "number of gates synthesized in parallel (0 for GOMAXPROCS)")
	return cmd
}

func runSynth(w io.Writer, fl *synthFlags, names []string) error {
	cfn, ok := couplings[fl.coupling]
	if !ok {
		return errors.Errorf("unknown coupling %q", fl.coupling)
	}
	switch fl.format {
	case "assign", "netlist", "yaml":
	default:
		return errors.Errorf("unknown output format %q", fl.format)
	}

	all, err := fl.load()
	if err != nil {
		return err
	}
	specs := all
	if len(names) > 0 {
		specs = specs[:0:0]
		seen := make(map[string]bool, len(names))
	next:
		for _, n := range names {
			if seen[n] {
				continue
			}
			seen[n] = true
			for _, s := range all {
				if s.Name == n {
					specs = append(specs, s)
					continue next
				}
			}
			return errors.Errorf("unknown gate %s", n)
		}
	}
	if fl.stages > 0 {
		for i := range specs {
			specs[i].Stages = fl.stages
		}
	}

	opts := []wc.Option{wc.WithCoupling(cfn), wc.WithLogger(klog.V(2))}
	if fl.enable {
		opts = append(opts, wc.WithEnable())
	}
	gates, err := gatelib.SynthesizeAll(fl.workers, specs, opts...)
	if err != nil {
		return err
	}
	klog.V(1).Infof("synthesized %d gates", len(gates))

	switch fl.format {
	case "netlist":
		tops := make([]*netlist.Module, len(gates))
		for i, g := range gates {
			tops[i] = g.Module
			if fl.readout {
				if tops[i], err = gatelib.Readout(g); err != nil {
					return err
				}
			}
		}
		return netlist.Write(w, tops...)
	case "yaml":
		return writeYAML(w, gates)
	}
	for _, g := range gates {
		writeAssign(w, g)
	}
	return nil
}

func writeAssign(w io.Writer, g *wc.Gate) {
	taps := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		taps[i] = n.Name + "=" + strconv.Itoa(g.Taps[i])
	}
	es := make([]string, len(g.Entries))
	for i, e := range g.Entries {
		es[i] = e.String()
	}
	fmt.Fprintf(w, "%s stages %d taps %s\n", g.Type, g.Stages, strings.Join(taps, " "))
	if len(es) > 0 {
		fmt.Fprintf(w, "\t%s\n", strings.Join(es, " "))
	}
}

type yamlCoupling struct {
	Nodes    [2]string `yaml:"nodes,flow"`
	Taps     [2]int    `yaml:"taps,flow"`
	Strength int       `yaml:"strength"`
}

type yamlGate struct {
	Name      string         `yaml:"name"`
	Stages    int            `yaml:"stages"`
	Taps      map[string]int `yaml:"taps"`
	Couplings []yamlCoupling `yaml:"couplings"`
}

func writeYAML(w io.Writer, gates []*wc.Gate) error {
	out := make([]yamlGate, len(gates))
	for i, g := range gates {
		yg := yamlGate{Name: g.Type, Stages: g.Stages, Taps: make(map[string]int, len(g.Nodes))}
		for k, n := range g.Nodes {
			yg.Taps[n.Name] = g.Taps[k]
		}
		for _, e := range g.Entries {
			yg.Couplings = append(yg.Couplings, yamlCoupling{
				Nodes:    [2]string{g.Nodes[e.I].Name, g.Nodes[e.J].Name},
				Taps:     [2]int{e.TapI, e.TapJ},
				Strength: e.Strength,
			})
		}
		out[i] = yg
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}
