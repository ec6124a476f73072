package netlist

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Walk returns all non-primitive modules reachable from tops, dependencies
// first. Each module is returned once, even if shared by several tops. Two
// distinct modules with the same name are an error.
//
func Walk(tops ...*Module) ([]*Module, error) {
	var (
		out  []*Module
		seen = make(map[string]*Module)
	)
	var visit func(m *Module) error
	visit = func(m *Module) error {
		if m.Primitive {
			return nil
		}
		if prev, ok := seen[m.Name]; ok {
			if prev != m {
				return errors.New("duplicate module name " + m.Name)
			}
			return nil
		}
		seen[m.Name] = m
		for _, inst := range m.insts {
			if err := visit(inst.Of); err != nil {
				return err
			}
		}
		out = append(out, m)
		return nil
	}
	for _, top := range tops {
		if err := visit(top); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Write writes tops and every non-primitive module they depend on as SPICE
// style subcircuits. Primitive modules are referenced by name only and must
// be provided by a cell library at simulation time.
//
func Write(w io.Writer, tops ...*Module) error {
	ms, err := Walk(tops...)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for i, m := range ms {
		if i > 0 {
			bw.WriteByte('\n')
		}
		writeModule(bw, m)
	}
	return bw.Flush()
}

func writeModule(w *bufio.Writer, m *Module) {
	w.WriteString(".subckt ")
	w.WriteString(m.Name)
	for _, p := range m.Ports() {
		for _, b := range p.Bits() {
			w.WriteByte(' ')
			w.WriteString(b.String())
		}
	}
	w.WriteByte('\n')
	for _, inst := range m.insts {
		w.WriteString("X")
		w.WriteString(inst.Name)
		for _, p := range inst.Of.Ports() {
			for _, b := range inst.Conns[p.Name] {
				w.WriteByte(' ')
				w.WriteString(b.String())
			}
		}
		w.WriteByte(' ')
		w.WriteString(inst.Of.Name)
		w.WriteString(formatParams(inst.Params))
		w.WriteByte('\n')
	}
	w.WriteString(".ends ")
	w.WriteString(m.Name)
	w.WriteByte('\n')
}

func formatParams(ps Params) string {
	if len(ps) == 0 {
		return ""
	}
	keys := make([]string, 0, len(ps))
	for k := range ps {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(ps[k], 'g', -1, 64))
	}
	return b.String()
}
