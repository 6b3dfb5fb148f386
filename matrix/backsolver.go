// SPDX-License-Identifier: MIT

// Package matrix: triangular solves against an LDLᵀ factor.
//
// Notation: A is the original symmetric matrix, P the fill-reducing
// permutation (A[perm, perm] = L·D·Lᵀ), and b a right-hand side in the
// original coordinates. Solve supports three systems:
//
//	squared            x = A⁻¹ b
//	Upper, !squared    x = Pᵀ·L⁻ᵀ·D^{-1/2}·P·b
//	Lower, !squared    x = Pᵀ·D^{-1/2}·L⁻¹·P·b
//
// The half solves compose: Solve(Solve(b, Lower, false), Upper, false) = A⁻¹ b,
// and ‖Solve(b, Lower, false)‖² = bᵀA⁻¹b.
// The Upper half solve maps a standard-normal vector to a draw with
// covariance A⁻¹, which is what samplers use.
package matrix

import (
	"fmt"
	"math"
)

// Triangle selects which half of the factor a non-squared solve applies.
type Triangle uint8

const (
	// Upper applies the transposed (upper) half: Pᵀ·L⁻ᵀ·D^{-1/2}·P.
	Upper Triangle = iota
	// Lower applies the lower half: Pᵀ·D^{-1/2}·L⁻¹·P.
	Lower
)

// String implements fmt.Stringer.
func (t Triangle) String() string {
	switch t {
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	default:
		return fmt.Sprintf("Triangle(%d)", uint8(t))
	}
}

// Backsolver holds a sparse LDLᵀ factorization and performs solves against it.
// It is immutable after Factorize and safe for concurrent use.
type Backsolver struct {
	n        int
	perm     []int // perm[k] = original index at permuted position k
	pinv     []int
	lp       []int // column pointers of strict L
	li       []int
	lx       []float64
	d        []float64
	invSqrtD []float64
}

// Dim returns the order of the factored matrix.
func (bs *Backsolver) Dim() int { return bs.n }

// NNZ returns the number of stored entries of L (strict part) plus D.
func (bs *Backsolver) NNZ() int { return bs.lp[bs.n] + bs.n }

// Perm returns a copy of the fill-reducing permutation.
func (bs *Backsolver) Perm() []int { return append([]int(nil), bs.perm...) }

// Diag returns a copy of D.
func (bs *Backsolver) Diag() []float64 { return append([]float64(nil), bs.d...) }

// LogDet returns log det A = Σ log D[k].
func (bs *Backsolver) LogDet() float64 {
	var s float64
	for _, v := range bs.d {
		s += math.Log(v)
	}

	return s
}

// Solve returns a new vector x for the system selected by tri and squared
// (see the package notes in this file). rhs is not modified.
//
// Errors: ErrNilMatrix for a nil receiver, ErrDimensionMismatch for len(rhs) != Dim().
// Complexity: O(nnz(L) + n).
func (bs *Backsolver) Solve(rhs []float64, tri Triangle, squared bool) ([]float64, error) {
	if bs == nil {
		return nil, matrixErrorf(opSolve, ErrNilMatrix)
	}
	if err := ValidateVecLen(rhs, bs.n); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	y := make([]float64, bs.n)
	var k int
	for k = 0; k < bs.n; k++ {
		y[k] = rhs[bs.perm[k]] // y = P·b
	}

	switch {
	case squared:
		bs.lsolve(y)
		bs.dsolve(y)
		bs.ltsolve(y)
		return bs.unpermute(y), nil
	case tri == Lower:
		bs.lsolve(y)
		bs.scaleInvSqrtD(y)
		return bs.unpermute(y), nil
	default:
		bs.scaleInvSqrtD(y)
		bs.ltsolve(y)
		return bs.unpermute(y), nil
	}
}

// unpermute maps permuted coordinates back: x[perm[k]] = y[k].
func (bs *Backsolver) unpermute(y []float64) []float64 {
	x := make([]float64, bs.n)
	for k, p := range bs.perm {
		x[p] = y[k]
	}

	return x
}

// lsolve solves L·x = x in place (unit diagonal).
func (bs *Backsolver) lsolve(x []float64) {
	var j, p int
	for j = 0; j < bs.n; j++ {
		if x[j] == 0 {
			continue
		}
		for p = bs.lp[j]; p < bs.lp[j+1]; p++ {
			x[bs.li[p]] -= bs.lx[p] * x[j]
		}
	}
}

// dsolve solves D·x = x in place.
func (bs *Backsolver) dsolve(x []float64) {
	for j := range x {
		x[j] /= bs.d[j]
	}
}

// ltsolve solves Lᵀ·x = x in place.
func (bs *Backsolver) ltsolve(x []float64) {
	var j, p int
	for j = bs.n - 1; j >= 0; j-- {
		for p = bs.lp[j]; p < bs.lp[j+1]; p++ {
			x[j] -= bs.lx[p] * x[bs.li[p]]
		}
	}
}

func (bs *Backsolver) scaleInvSqrtD(x []float64) {
	for j := range x {
		x[j] *= bs.invSqrtD[j]
	}
}
