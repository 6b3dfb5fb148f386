// SPDX-License-Identifier: MIT

// Package matrix: incremental sparse construction.
//
// Builder accumulates entries keyed by (row, col) and compresses them into an
// immutable *Sparse. Add sums duplicates, Set overwrites; block and diagonal
// helpers let callers place dense sub-blocks at arbitrary offsets.
//
// Determinism: Build emits columns in index order and rows sorted within each
// column, independent of insertion order.
package matrix

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Builder assembles a sparse r×c matrix. The zero value is not usable; call NewBuilder.
// Not safe for concurrent use.
type Builder struct {
	r, c int
	cols []map[int]float64
}

// NewBuilder returns an empty r×c builder.
// Errors: ErrBadShape if r < 0 or c < 0.
func NewBuilder(r, c int) (*Builder, error) {
	if r < 0 || c < 0 {
		return nil, matrixErrorf(opNewBuilder, ErrBadShape)
	}

	return &Builder{r: r, c: c, cols: make([]map[int]float64, c)}, nil
}

// Dims returns (rows, cols).
func (b *Builder) Dims() (r, c int) { return b.r, b.c }

func (b *Builder) put(i, j int, v float64, sum bool) {
	col := b.cols[j]
	if col == nil {
		col = make(map[int]float64, 4)
		b.cols[j] = col
	}
	if sum {
		col[i] += v
	} else {
		col[i] = v
	}
}

// Add accumulates v into entry (i, j).
// Errors: ErrOutOfRange, ErrNaNInf.
func (b *Builder) Add(i, j int, v float64) error {
	if err := ValidateIndex(i, j, b.r, b.c); err != nil {
		return matrixErrorf(opAdd, err)
	}
	if isNonFinite(v) {
		return matrixErrorf(opAdd, ErrNaNInf)
	}
	b.put(i, j, v, true)

	return nil
}

// Set overwrites entry (i, j) with v.
func (b *Builder) Set(i, j int, v float64) error {
	if err := ValidateIndex(i, j, b.r, b.c); err != nil {
		return matrixErrorf(opAdd, err)
	}
	if isNonFinite(v) {
		return matrixErrorf(opAdd, ErrNaNInf)
	}
	b.put(i, j, v, false)

	return nil
}

// SetBlock writes the dense block m with its top-left corner at (r0, c0),
// overwriting existing entries. Exact zeros in m are skipped.
//
// Errors:
//   - ErrOutOfRange when the block does not fit.
//   - ErrNaNInf when m holds a non-finite value (nothing is written then).
//
// Complexity: O(rows(m)*cols(m)).
func (b *Builder) SetBlock(r0, c0 int, m mat.Matrix) error {
	mr, mc := m.Dims()
	if r0 < 0 || c0 < 0 || r0+mr > b.r || c0+mc > b.c {
		return matrixErrorf(opSetBlock, ErrOutOfRange)
	}
	var i, j int
	var v float64
	for i = 0; i < mr; i++ {
		for j = 0; j < mc; j++ {
			if isNonFinite(m.At(i, j)) {
				return matrixErrorf(opSetBlock, ErrNaNInf)
			}
		}
	}
	for j = 0; j < mc; j++ {
		for i = 0; i < mr; i++ {
			v = m.At(i, j)
			if v != 0 {
				b.put(r0+i, c0+j, v, false)
			}
		}
	}

	return nil
}

// SetDiag writes d along the diagonal starting at (k0, k0).
// Errors: ErrOutOfRange, ErrNaNInf.
func (b *Builder) SetDiag(k0 int, d []float64) error {
	if k0 < 0 || k0+len(d) > b.r || k0+len(d) > b.c {
		return matrixErrorf(opSetDiag, ErrOutOfRange)
	}
	for _, v := range d {
		if isNonFinite(v) {
			return matrixErrorf(opSetDiag, ErrNaNInf)
		}
	}
	for k, v := range d {
		if v != 0 {
			b.put(k0+k, k0+k, v, false)
		}
	}

	return nil
}

// Build compresses the accumulated entries into a *Sparse. Entries that summed
// to exactly zero are dropped. The builder remains usable afterwards.
// Complexity: O(nnz log nnz) for the per-column sorts.
func (b *Builder) Build() *Sparse {
	s := &Sparse{r: b.r, c: b.c, colPtr: make([]int, b.c+1)}
	var (
		j    int
		rows []int
	)
	for j = 0; j < b.c; j++ {
		rows = rows[:0]
		for i, v := range b.cols[j] {
			if v != 0 {
				rows = append(rows, i)
			}
		}
		sort.Ints(rows)
		for _, i := range rows {
			s.rowIdx = append(s.rowIdx, i)
			s.vals = append(s.vals, b.cols[j][i])
		}
		s.colPtr[j+1] = len(s.rowIdx)
	}

	return s
}
