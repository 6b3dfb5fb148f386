// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic sparse fixtures and dense gonum references.
//   • Keep all data finite and well-conditioned to avoid pivot-policy interference.

package matrix_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gaussnet/matrix"
)

// tol is the absolute tolerance used when comparing against dense references.
const tol = 1e-9

// entry is a (row, col, value) triple used by MustSparse.
type entry struct {
	i, j int
	v    float64
}

// MustSparse BUILDS an r×c *Sparse from triples (duplicates summed) or fails the test.
func MustSparse(t *testing.T, r, c int, es ...entry) *matrix.Sparse {
	t.Helper()
	b, err := matrix.NewBuilder(r, c)
	require.NoError(t, err)
	for _, e := range es {
		require.NoError(t, b.Add(e.i, e.j, e.v))
	}

	return b.Build()
}

// RandomSPD RETURNS an n×n diagonally dominant sparse SPD matrix (upper-stored)
// and its dense symmetric twin.
//
// Determinism:
//   - Deterministic for a fixed seed.
//
// Notes:
//   - density is the probability of an off-diagonal pair being nonzero.
func RandomSPD(t *testing.T, n int, density float64, seed uint64) (*matrix.Sparse, *mat.SymDense) {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	dense := mat.NewSymDense(n, nil)
	rowAbs := make([]float64, n)
	var i, j int
	var v float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if rng.Float64() >= density {
				continue
			}
			v = rng.Float64()*2 - 1
			dense.SetSym(i, j, v)
			rowAbs[i] += math.Abs(v)
			rowAbs[j] += math.Abs(v)
		}
	}
	b, err := matrix.NewBuilder(n, n)
	require.NoError(t, err)
	for i = 0; i < n; i++ {
		dense.SetSym(i, i, rowAbs[i]+1)
		for j = i; j < n; j++ {
			if v = dense.At(i, j); v != 0 {
				require.NoError(t, b.Set(i, j, v))
			}
		}
	}

	return b.Build(), dense
}

// DenseSolve RETURNS a⁻¹·b using gonum's Cholesky as the reference.
func DenseSolve(t *testing.T, a *mat.SymDense, b []float64) []float64 {
	t.Helper()
	var ch mat.Cholesky
	require.True(t, ch.Factorize(a), "reference matrix must be SPD")
	var x mat.VecDense
	require.NoError(t, ch.SolveVecTo(&x, mat.NewVecDense(len(b), append([]float64(nil), b...))))

	return x.RawVector().Data
}

// AssertVecClose FAILS the test when |a[i]-b[i]| > eps for any i.
func AssertVecClose(t *testing.T, want, got []float64, eps float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDelta(t, want[i], got[i], eps, "index %d", i)
	}
}

// seq RETURNS the vector (1, 2, ..., n) scaled by s.
func seq(n int, s float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i+1) * s
	}

	return out
}

// posInf RETURNS +Inf (keeps literal math out of table rows).
func posInf() float64 { return math.Inf(1) }
