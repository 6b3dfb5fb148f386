// SPDX-License-Identifier: MIT
// Package gaussian - RNG utilities for conditional sampling.
//
// Goals:
//   - Determinism: same seed ⇒ identical draws across platforms.
//   - Encapsulation: a single RNG factory; no time-based sources anywhere.
//
// Concurrency:
//   - *rand.Rand is NOT goroutine-safe. The Submodel serializes access to its
//     own stream; Conditional.Sample takes the caller's stream.

package gaussian

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// defaultRNGSeed is the fixed seed used when callers pass seed==0.
const defaultRNGSeed uint64 = 1

// samplerStream is the stream id of the DrawConditional sampler.
const samplerStream uint64 = 0x5eed

// rngFromSeed returns a deterministic PCG-backed *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; the second PCG word is derived by deriveSeed.
func rngFromSeed(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewPCG(seed, deriveSeed(seed, samplerStream)))
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit
// seed with the SplitMix64 finalizer.
func deriveSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return x
}

// standardNormal fills a fresh length-n vector with N(0, 1) deviates from src.
func standardNormal(src rand.Source, n int) []float64 {
	dist := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	z := make([]float64, n)
	for i := range z {
		z[i] = dist.Rand()
	}

	return z
}
