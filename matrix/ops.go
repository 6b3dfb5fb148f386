// SPDX-License-Identifier: MIT

// Package matrix: sparse kernels.
//
// Kernels are pure functions over immutable *Sparse operands. Each validates its
// inputs through validators.go and tags failures with its operation name.
package matrix

// Transpose returns sᵀ.
// Complexity: O(nnz + r + c).
func Transpose(s *Sparse) *Sparse {
	t := &Sparse{
		r:      s.c,
		c:      s.r,
		colPtr: make([]int, s.r+1),
		rowIdx: make([]int, len(s.rowIdx)),
		vals:   make([]float64, len(s.vals)),
	}
	// Count entries per row of s (columns of t).
	for _, i := range s.rowIdx {
		t.colPtr[i+1]++
	}
	var i, j, k int
	for i = 0; i < s.r; i++ {
		t.colPtr[i+1] += t.colPtr[i]
	}
	next := append([]int(nil), t.colPtr[:s.r]...)
	// Scanning s column by column keeps row indices of t sorted.
	for j = 0; j < s.c; j++ {
		for k = s.colPtr[j]; k < s.colPtr[j+1]; k++ {
			i = s.rowIdx[k]
			t.rowIdx[next[i]] = j
			t.vals[next[i]] = s.vals[k]
			next[i]++
		}
	}

	return t
}

// MulVec returns s·x.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(nnz).
func MulVec(s *Sparse, x []float64) ([]float64, error) {
	if err := ValidateNotNil(s); err != nil {
		return nil, matrixErrorf(opMulVec, err)
	}
	if err := ValidateVecLen(x, s.c); err != nil {
		return nil, matrixErrorf(opMulVec, err)
	}
	y := make([]float64, s.r)
	var j, k int
	for j = 0; j < s.c; j++ {
		if x[j] == 0 {
			continue
		}
		for k = s.colPtr[j]; k < s.colPtr[j+1]; k++ {
			y[s.rowIdx[k]] += s.vals[k] * x[j]
		}
	}

	return y, nil
}

// MulTransVec returns sᵀ·x.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(nnz).
func MulTransVec(s *Sparse, x []float64) ([]float64, error) {
	if err := ValidateNotNil(s); err != nil {
		return nil, matrixErrorf(opMulTransVec, err)
	}
	if err := ValidateVecLen(x, s.r); err != nil {
		return nil, matrixErrorf(opMulTransVec, err)
	}
	y := make([]float64, s.c)
	var (
		j, k int
		acc  float64
	)
	for j = 0; j < s.c; j++ {
		acc = 0
		for k = s.colPtr[j]; k < s.colPtr[j+1]; k++ {
			acc += s.vals[k] * x[s.rowIdx[k]]
		}
		y[j] = acc
	}

	return y, nil
}

// SymMulVec returns a·x where a is symmetric and stored by its upper triangle.
// Entries below the diagonal, if any, are ignored.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch.
// Complexity: O(nnz).
func SymMulVec(a *Sparse, x []float64) ([]float64, error) {
	if err := ValidateSquare(a); err != nil {
		return nil, matrixErrorf(opSymMulVec, err)
	}
	if err := ValidateVecLen(x, a.c); err != nil {
		return nil, matrixErrorf(opSymMulVec, err)
	}
	y := make([]float64, a.r)
	var i, j, k int
	var v float64
	for j = 0; j < a.c; j++ {
		for k = a.colPtr[j]; k < a.colPtr[j+1]; k++ {
			i, v = a.rowIdx[k], a.vals[k]
			if i > j {
				continue
			}
			y[i] += v * x[j]
			if i != j {
				y[j] += v * x[i]
			}
		}
	}

	return y, nil
}

// SyrkUpper returns the upper triangle of uᵀu as an upper-stored symmetric matrix.
//
// Implementation:
//   - Stage 1: transpose u so that each row of u becomes a contiguous column.
//   - Stage 2: for every row k of u and every pair a ≤ b of its nonzero
//     columns, accumulate u[k,a]·u[k,b] into entry (a, b).
//
// Behavior highlights:
//   - Only structurally nonzero products are visited; cost is Σ_k nnz(row k)².
//
// Errors:
//   - ErrNilMatrix for nil u; ErrNaNInf if a product overflows.
func SyrkUpper(u *Sparse) (*Sparse, error) {
	if err := ValidateNotNil(u); err != nil {
		return nil, matrixErrorf(opSyrkUpper, err)
	}
	rowsOf := Transpose(u)
	b, err := NewBuilder(u.c, u.c)
	if err != nil {
		return nil, matrixErrorf(opSyrkUpper, err)
	}
	var (
		k, p, q int
		idx     []int
		vals    []float64
	)
	for k = 0; k < rowsOf.c; k++ {
		idx, vals = rowsOf.Column(k)
		for p = 0; p < len(idx); p++ {
			for q = p; q < len(idx); q++ {
				if err = b.Add(idx[p], idx[q], vals[p]*vals[q]); err != nil {
					return nil, matrixErrorf(opSyrkUpper, err)
				}
			}
		}
	}

	return b.Build(), nil
}
