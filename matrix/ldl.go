// SPDX-License-Identifier: MIT

// Package matrix: sparse LDLᵀ factorization of symmetric positive-definite matrices.
//
// Factorize computes C = L·D·Lᵀ for C = A[perm, perm], where A is given by its
// upper triangle, L is unit lower triangular (strict part stored by columns)
// and D is diagonal. The algorithm is the up-looking scheme driven by the
// elimination tree:
//   - symbolic: elimination tree and per-column nonzero counts of L;
//   - numeric: for each row k, a sparse triangular solve over the reach of
//     row k in the elimination tree yields row k of L and the pivot D[k].
//
// The factor is returned as a *Backsolver, which owns the solves.
package matrix

import (
	"math"
	"strconv"
)

// Factorize computes a sparse LDLᵀ factorization of the symmetric matrix a,
// given by its upper triangle (entries below the diagonal are ignored).
//
// Implementation:
//   - Stage 1: validate a and resolve the symmetric permutation (ordering options).
//   - Stage 2: permute the upper triangle into C = A[perm, perm] (upper-stored).
//   - Stage 3: symbolic analysis (elimination tree, column counts).
//   - Stage 4: numeric up-looking factorization; reject pivots ≤ tolerance.
//   - Stage 5: precompute D^{-1/2} for the half solves.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare on invalid input.
//   - ErrBadPermutation for an invalid WithPermutation.
//   - ErrNotPositiveDefinite when a pivot is ≤ tolerance or not finite.
//
// Complexity:
//   - Time O(Σ_k |L_k|²) numeric plus ordering cost; Space O(nnz(L) + n).
func Factorize(a *Sparse, opts ...FactorOption) (*Backsolver, error) {
	if err := ValidateSquare(a); err != nil {
		return nil, matrixErrorf(opFactorize, err)
	}
	f := gatherFactorOptions(opts...)
	perm, err := resolvePermutation(a, f)
	if err != nil {
		return nil, matrixErrorf(opFactorize, err)
	}
	n := a.r
	pinv := make([]int, n)
	for k, p := range perm {
		pinv[p] = k
	}
	c, err := permuteUpper(a, pinv)
	if err != nil {
		return nil, matrixErrorf(opFactorize, err)
	}

	bs := &Backsolver{n: n, perm: perm, pinv: pinv}
	parent, lnz := ldlSymbolic(c)
	bs.lp = make([]int, n+1)
	var k int
	for k = 0; k < n; k++ {
		bs.lp[k+1] = bs.lp[k] + lnz[k]
	}
	if err = bs.ldlNumeric(c, parent, f.pivotTol); err != nil {
		return nil, matrixErrorf(opFactorize, err)
	}

	// D^{-1/2}: solve D·x = 1, then take square roots.
	bs.invSqrtD = make([]float64, n)
	for k = 0; k < n; k++ {
		bs.invSqrtD[k] = 1
	}
	bs.dsolve(bs.invSqrtD)
	for k = 0; k < n; k++ {
		bs.invSqrtD[k] = math.Sqrt(bs.invSqrtD[k])
	}

	return bs, nil
}

// permuteUpper returns the upper triangle of A[perm, perm] given pinv.
func permuteUpper(a *Sparse, pinv []int) (*Sparse, error) {
	b, err := NewBuilder(a.r, a.c)
	if err != nil {
		return nil, err
	}
	a.Do(func(i, j int, v float64) {
		if i > j {
			return
		}
		i2, j2 := pinv[i], pinv[j]
		if i2 > j2 {
			i2, j2 = j2, i2
		}
		b.put(i2, j2, v, true)
	})

	return b.Build(), nil
}

// ldlSymbolic computes the elimination tree (parent) and the number of
// strictly-lower nonzeros per column of L (lnz) for an upper-stored C.
func ldlSymbolic(c *Sparse) (parent, lnz []int) {
	n := c.r
	parent = make([]int, n)
	lnz = make([]int, n)
	flag := make([]int, n)
	var i, k, p int
	for k = 0; k < n; k++ {
		parent[k] = -1
		flag[k] = k
		for p = c.colPtr[k]; p < c.colPtr[k+1]; p++ {
			i = c.rowIdx[p]
			if i >= k {
				continue
			}
			// Walk from i up the tree until reaching a node already flagged for row k.
			for ; flag[i] != k; i = parent[i] {
				if parent[i] == -1 {
					parent[i] = k
				}
				lnz[i]++
				flag[i] = k
			}
		}
	}

	return parent, lnz
}

// ldlNumeric fills bs.li, bs.lx and bs.d. bs.lp must already hold column pointers.
func (bs *Backsolver) ldlNumeric(c *Sparse, parent []int, tol float64) error {
	n := c.r
	bs.li = make([]int, bs.lp[n])
	bs.lx = make([]float64, bs.lp[n])
	bs.d = make([]float64, n)
	y := make([]float64, n)
	pattern := make([]int, n)
	flag := make([]int, n)
	lnz := make([]int, n)

	var (
		i, k, p, p2, top, length int
		yi, lki                  float64
	)
	for k = 0; k < n; k++ {
		// Nonzero pattern of row k of L, in topological order, lands in pattern[top:n].
		y[k] = 0
		top = n
		flag[k] = k
		for p = c.colPtr[k]; p < c.colPtr[k+1]; p++ {
			i = c.rowIdx[p]
			if i > k {
				continue
			}
			y[i] += c.vals[p]
			for length = 0; flag[i] != k; i = parent[i] {
				pattern[length] = i
				length++
				flag[i] = k
			}
			for length > 0 {
				top--
				length--
				pattern[top] = pattern[length]
			}
		}

		bs.d[k] = y[k]
		y[k] = 0
		for ; top < n; top++ {
			i = pattern[top]
			yi = y[i]
			y[i] = 0
			p2 = bs.lp[i] + lnz[i]
			for p = bs.lp[i]; p < p2; p++ {
				y[bs.li[p]] -= bs.lx[p] * yi
			}
			lki = yi / bs.d[i]
			bs.d[k] -= lki * yi
			bs.li[p2] = k
			bs.lx[p2] = lki
			lnz[i]++
		}
		if !(bs.d[k] > tol) || math.IsInf(bs.d[k], 0) {
			return pivotError(bs.perm[k])
		}
	}

	return nil
}

// PivotError reports the original row/column whose pivot broke down.
type PivotError struct {
	Index int
}

func (e *PivotError) Error() string {
	return "matrix: non-positive pivot at index " + strconv.Itoa(e.Index)
}

// Unwrap makes errors.Is(err, ErrNotPositiveDefinite) hold.
func (e *PivotError) Unwrap() error { return ErrNotPositiveDefinite }

func pivotError(index int) error { return &PivotError{Index: index} }
