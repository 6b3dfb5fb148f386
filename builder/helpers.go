// SPDX-License-Identifier: MIT
// Package builder provides internal helper functions
// used by Constructor implementations.
package builder

import (
	"fmt"

	"github.com/katalvlaran/gaussnet/model"
)

// constructErr wraps a model failure for node id with ErrConstructFailed,
// keeping both sentinels reachable via errors.Is.
func constructErr(method, id string, err error) error {
	return fmt.Errorf("%s: node %q: %w: %w", method, id, ErrConstructFailed, err)
}

// meanValue returns the current value of mu stretched to dim.
func meanValue(mu model.Mean, dim int) []float64 {
	out := make([]float64, dim)
	var v []float64
	if n := mu.Node(); n != nil {
		v = n.Value()
	} else {
		v = mu.Const()
	}
	switch len(v) {
	case 0:
	case 1:
		for i := range out {
			out[i] = v[0]
		}
	default:
		copy(out, v)
	}

	return out
}

// noisy adds independent N(0, sd²) noise drawn from cfg.rng to v in place.
// Without an RNG v is returned unchanged.
func noisy(cfg builderConfig, v []float64, sd float64) []float64 {
	for i := range v {
		v[i] += sd * cfg.normal()
	}

	return v
}
