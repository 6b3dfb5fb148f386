// SPDX-License-Identifier: MIT
// Package: gaussnet/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Design:
//   • builderConfig is the single source of truth for all builder knobs.
//   • Defaults are deterministic and documented; no globals.
//   • newBuilderConfig applies options in-order (later overrides earlier).
//
// Deterministic defaults (no surprises):
//   • idFn         = PaddedIDFn(defaultIDWidth)  ("0000","0001",...)
//   • rng          = nil                         (pure/deterministic unless seeded)
//   • coefFn       = DefaultCoefFn               (DefaultCoefficient)
//   • precision    = defaultPrecision            (latent nodes)
//   • obsPrecision = defaultObsPrecision         (observed nodes)

package builder

import (
	"math/rand/v2"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors (immutable to callers).
type builderConfig struct {
	// Node ID strategy: index -> ID suffix (deterministic).
	idFn IDFn
	// RNG for stochastic choices; nil means “no randomness”.
	rng *rand.Rand
	// Coefficient generator for autoregressions and covariates.
	coefFn CoefFn

	precision    float64 // >0, diagonal precision of latent nodes
	obsPrecision float64 // >0, diagonal precision of observed nodes
}

// Deterministic defaults (named, no magic numbers).
const (
	defaultIDWidth      = 4
	defaultPrecision    = 1.0
	defaultObsPrecision = 4.0
)

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order.
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:         PaddedIDFn(defaultIDWidth),
		coefFn:       DefaultCoefFn,
		precision:    defaultPrecision,
		obsPrecision: defaultObsPrecision,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// normal returns a standard-normal deviate from cfg.rng, or 0 without one.
func (c builderConfig) normal() float64 {
	if c.rng == nil {
		return 0
	}

	return c.rng.NormFloat64()
}
