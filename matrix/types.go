// SPDX-License-Identifier: MIT

// Package matrix: sparse storage types.
// This file contains ONLY the compressed-column matrix and its read-only
// accessors. Construction lives in builder.go, kernels in ops.go, and the
// factorization in ldl.go / backsolver.go.
package matrix

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Sparse is an immutable r×c matrix in compressed sparse column (CSC) form.
//
// Layout:
//   - colPtr has length c+1; column j occupies rowIdx/vals[colPtr[j]:colPtr[j+1]].
//   - Row indices within a column are strictly increasing (no duplicates).
//   - Explicit zeros are never stored by Builder.
//
// Symmetric matrices are stored by their upper triangle only (i ≤ j); kernels
// that interpret storage symmetrically are named accordingly (SymMulVec, SymDense).
//
// Concurrency: a *Sparse is never mutated after construction and is safe for
// concurrent readers.
type Sparse struct {
	r, c   int
	colPtr []int
	rowIdx []int
	vals   []float64
}

// Rows returns the number of rows.
func (s *Sparse) Rows() int { return s.r }

// Cols returns the number of columns.
func (s *Sparse) Cols() int { return s.c }

// NNZ returns the number of stored entries.
func (s *Sparse) NNZ() int { return len(s.vals) }

// Dims returns (rows, cols).
func (s *Sparse) Dims() (r, c int) { return s.r, s.c }

// At returns the stored value at (i, j), or 0 when the entry is structurally absent.
// Complexity: O(log k) where k is the number of entries in column j.
func (s *Sparse) At(i, j int) (float64, error) {
	if err := ValidateIndex(i, j, s.r, s.c); err != nil {
		return 0, matrixErrorf(opAt, err)
	}
	lo, hi := s.colPtr[j], s.colPtr[j+1]
	k := lo + sort.SearchInts(s.rowIdx[lo:hi], i)
	if k < hi && s.rowIdx[k] == i {
		return s.vals[k], nil
	}

	return 0, nil
}

// Do calls fn for every stored entry in column-major order.
// Complexity: O(nnz).
func (s *Sparse) Do(fn func(i, j int, v float64)) {
	var j, k int
	for j = 0; j < s.c; j++ {
		for k = s.colPtr[j]; k < s.colPtr[j+1]; k++ {
			fn(s.rowIdx[k], j, s.vals[k])
		}
	}
}

// Column returns views of the row indices and values stored in column j.
// The returned slices alias internal storage and must not be modified.
func (s *Sparse) Column(j int) (rows []int, vals []float64) {
	lo, hi := s.colPtr[j], s.colPtr[j+1]

	return s.rowIdx[lo:hi], s.vals[lo:hi]
}

// Dense expands s into a gonum dense matrix.
// Complexity: O(r*c + nnz).
func (s *Sparse) Dense() *mat.Dense {
	if s.r == 0 || s.c == 0 {
		return &mat.Dense{}
	}
	d := mat.NewDense(s.r, s.c, nil)
	s.Do(func(i, j int, v float64) { d.Set(i, j, v) })

	return d
}

// SymDense expands an upper-stored symmetric matrix into a gonum symmetric
// matrix. Entries below the diagonal are ignored.
func (s *Sparse) SymDense() (*mat.SymDense, error) {
	if err := ValidateSquare(s); err != nil {
		return nil, err
	}
	if s.r == 0 {
		return &mat.SymDense{}, nil
	}
	d := mat.NewSymDense(s.r, nil)
	s.Do(func(i, j int, v float64) {
		if i <= j {
			d.SetSym(i, j, v)
		}
	})

	return d, nil
}
