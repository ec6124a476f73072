package gatelib

import (
	"runtime"
	"sync"

	wc "github.com/ThomasPluck/wobblchip"
)

// SynthesizeAll synthesizes independent gates in parallel and returns them in
// the order of specs.
//
// workers is the number of goroutines used. If less or equal to 0, the value
// of GOMAXPROCS will be used. Specs are split into contiguous chunks, one per
// worker. If any gate fails, the error of the first failing spec is returned.
//
func SynthesizeAll(workers int, specs []wc.Spec, opts ...wc.Option) ([]*wc.Gate, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	if workers <= 0 {
		workers = 1
	}
	size := len(specs) / workers
	if size*workers < len(specs) {
		size++
	}

	gates := make([]*wc.Gate, len(specs))
	errs := make([]error, len(specs))
	var wg sync.WaitGroup
	for lo := 0; lo < len(specs); lo += size {
		hi := lo + size
		if hi > len(specs) {
			hi = len(specs)
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				gates[i], errs[i] = wc.Synthesize(specs[i], opts...)
			}
		}(lo, hi)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return gates, nil
}
