// SPDX-License-Identifier: MIT
// Package: gaussnet/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves MUST NOT panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"math"
	"math/rand/v2"
)

// BuilderOption customizes the behavior of a constructor by mutating a
// builderConfig instance before the network is built.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the deterministic node ID suffix generator: idx -> string.
// Panics on nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) {
		c.idFn = fn
	}
}

// WithRand provides an explicit RNG for stochastic choices.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new PCG-backed *rand.Rand with the given seed.
func WithSeed(seed uint64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewPCG(seed, seed^seedStream))
	}
}

// WithCoefFn overrides the coefficient generator. Panics on nil.
func WithCoefFn(fn CoefFn) BuilderOption {
	if fn == nil {
		panic("builder: WithCoefFn(nil)")
	}
	return func(c *builderConfig) {
		c.coefFn = fn
	}
}

// WithPrecision sets the diagonal precision of latent nodes.
// Panics unless tau is finite and > 0.
func WithPrecision(tau float64) BuilderOption {
	if !(tau > 0) || math.IsInf(tau, 0) {
		panic("builder: WithPrecision(tau<=0)")
	}
	return func(c *builderConfig) {
		c.precision = tau
	}
}

// WithObservationPrecision sets the diagonal precision of observed nodes.
// Panics unless tau is finite and > 0.
func WithObservationPrecision(tau float64) BuilderOption {
	if !(tau > 0) || math.IsInf(tau, 0) {
		panic("builder: WithObservationPrecision(tau<=0)")
	}
	return func(c *builderConfig) {
		c.obsPrecision = tau
	}
}

// seedStream separates the two PCG words derived from one seed.
const seedStream = 0xda3e39cb94b95bdb
