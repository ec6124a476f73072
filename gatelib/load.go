package gatelib

import (
	"io"

	wc "github.com/ThomasPluck/wobblchip"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML layout read by LoadCatalog:
//
//	gates:
//	  - name: AND
//	    stages: 9
//	    nodes: [A, B, C, {name: AUX, ref: true}]
//	    weights:
//	      - [0, -2, 4, 1]
//	      - [-2, 0, 4, 1]
//	      - [4, 4, 0, -2]
//	      - [1, 1, -2, 0]
//
type catalogFile struct {
	Gates []wc.Spec `yaml:"gates"`
}

// LoadCatalog reads and validates gate specifications from a YAML document.
// A missing stage count defaults to Stages. Unknown fields are errors.
//
func LoadCatalog(r io.Reader) ([]wc.Spec, error) {
	var f catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to decode gate catalog")
	}
	seen := make(map[string]bool, len(f.Gates))
	for i := range f.Gates {
		s := &f.Gates[i]
		if s.Stages == 0 {
			s.Stages = Stages
		}
		if err := s.Validate(); err != nil {
			return nil, errors.Wrapf(err, "gate #%d (%s)", i, s.Name)
		}
		if seen[s.Name] {
			return nil, errors.Errorf("gate #%d: duplicate gate name %s", i, s.Name)
		}
		seen[s.Name] = true
	}
	return f.Gates, nil
}

// WriteCatalog writes specs as a YAML document readable by LoadCatalog.
//
func WriteCatalog(w io.Writer, specs []wc.Spec) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(catalogFile{Gates: specs}); err != nil {
		return errors.Wrap(err, "failed to encode gate catalog")
	}
	return enc.Close()
}
