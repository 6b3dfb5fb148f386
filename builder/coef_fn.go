// SPDX-License-Identifier: MIT
// Package builder provides internal helper functions and types
// for configuring coefficient distributions in network constructors.
package builder

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// DefaultCoefficient is the coefficient produced when no custom CoefFn is
// provided or when a random CoefFn has no RNG. It keeps autoregressions stable.
const DefaultCoefficient float64 = 0.9

// CoefFn produces a real coefficient given an optional *rand.Rand source.
// It must be deterministic for a given RNG seed.
type CoefFn func(rng *rand.Rand) float64

// DefaultCoefFn always returns DefaultCoefficient.
func DefaultCoefFn(_ *rand.Rand) float64 {
	return DefaultCoefficient
}

// ConstantCoefFn returns a CoefFn that always yields value.
// Panics if value is not finite.
func ConstantCoefFn(value float64) CoefFn {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		panic(fmt.Sprintf("ConstantCoefFn: value must be finite, got %g", value))
	}

	return func(_ *rand.Rand) float64 {
		return value
	}
}

// UniformCoefFn returns a CoefFn sampling uniformly in [min, max).
// Panics if max < min or a bound is not finite.
// If rng is nil, yields the midpoint to keep a deterministic fallback.
func UniformCoefFn(min, max float64) CoefFn {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) || max < min {
		panic(fmt.Sprintf("UniformCoefFn: require finite min ≤ max, got min=%g, max=%g", min, max))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return (min + max) / 2
		}
		if max == min {
			return min
		}

		return min + rng.Float64()*(max-min)
	}
}

// NormalCoefFn returns a CoefFn sampling from N(mean, stddev²).
// Panics if stddev < 0. If rng is nil, yields mean.
func NormalCoefFn(mean, stddev float64) CoefFn {
	if stddev < 0 || math.IsNaN(stddev) {
		panic(fmt.Sprintf("NormalCoefFn: stddev must be ≥ 0, got %f", stddev))
	}

	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return mean
		}

		return mean + rng.NormFloat64()*stddev
	}
}

// WithConstantCoef sets a fixed coefficient via ConstantCoefFn.
func WithConstantCoef(v float64) BuilderOption {
	return WithCoefFn(ConstantCoefFn(v))
}

// WithUniformCoef sets coefficients ∼ U[min,max) via UniformCoefFn.
func WithUniformCoef(min, max float64) BuilderOption {
	return WithCoefFn(UniformCoefFn(min, max))
}

// WithNormalCoef sets coefficients ∼ N(mean,stddev²) via NormalCoefFn.
func WithNormalCoef(mean, stddev float64) BuilderOption {
	return WithCoefFn(NormalCoefFn(mean, stddev))
}
