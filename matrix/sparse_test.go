// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gaussnet/matrix"
)

// TestBuilder_SumsDuplicatesAndDropsZeros verifies Add accumulation and that
// entries cancelling to exactly zero are not stored.
func TestBuilder_SumsDuplicatesAndDropsZeros(t *testing.T) {
	s := MustSparse(t, 3, 3,
		entry{0, 0, 1}, entry{0, 0, 2},
		entry{1, 2, 5}, entry{1, 2, -5},
		entry{2, 1, 4},
	)
	assert.Equal(t, 2, s.NNZ())

	v, err := s.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
	v, err = s.At(1, 2)
	require.NoError(t, err)
	assert.Zero(t, v)
	v, err = s.At(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)
}

// TestBuilder_Errors covers shape, index and NaN/Inf validation.
func TestBuilder_Errors(t *testing.T) {
	_, err := matrix.NewBuilder(-1, 2)
	assert.ErrorIs(t, err, matrix.ErrBadShape)

	b, err := matrix.NewBuilder(2, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, b.Add(2, 0, 1), matrix.ErrOutOfRange)
	assert.ErrorIs(t, b.Set(0, -1, 1), matrix.ErrOutOfRange)
	assert.ErrorIs(t, b.SetDiag(1, []float64{1, 2}), matrix.ErrOutOfRange)
	assert.ErrorIs(t, b.SetBlock(1, 1, mat.NewDense(2, 1, []float64{1, 2})), matrix.ErrOutOfRange)
	assert.ErrorIs(t, b.SetBlock(0, 0, mat.NewDense(1, 1, []float64{posInf()})), matrix.ErrNaNInf)

	s := b.Build()
	_, err = s.At(5, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestBuilder_BlockAndDiag places a dense block and a diagonal at offsets.
func TestBuilder_BlockAndDiag(t *testing.T) {
	b, err := matrix.NewBuilder(4, 4)
	require.NoError(t, err)
	require.NoError(t, b.SetDiag(0, []float64{1, 2}))
	require.NoError(t, b.SetBlock(2, 2, mat.NewDense(2, 2, []float64{3, 4, 0, 5})))
	s := b.Build()

	want := mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 2, 0, 0,
		0, 0, 3, 4,
		0, 0, 0, 5,
	})
	assert.True(t, mat.Equal(want, s.Dense()))
	assert.Equal(t, 5, s.NNZ())
}

// TestTranspose_RoundTrip checks (sᵀ)ᵀ = s on a rectangular matrix.
func TestTranspose_RoundTrip(t *testing.T) {
	s := MustSparse(t, 2, 3, entry{0, 1, 1}, entry{1, 0, 2}, entry{1, 2, 3})
	tr := matrix.Transpose(s)
	assert.Equal(t, 3, tr.Rows())
	assert.Equal(t, 2, tr.Cols())

	var want mat.Dense
	want.CloneFrom(s.Dense().T())
	assert.True(t, mat.Equal(&want, tr.Dense()))
	assert.True(t, mat.Equal(s.Dense(), matrix.Transpose(tr).Dense()))
}

// TestMulVec compares sparse products against gonum.
func TestMulVec(t *testing.T) {
	s := MustSparse(t, 2, 3, entry{0, 0, 1}, entry{0, 2, -1}, entry{1, 1, 2})
	x := []float64{1, 2, 3}

	y, err := matrix.MulVec(s, x)
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, 4}, y)

	z, err := matrix.MulTransVec(s, []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, -1}, z)

	_, err = matrix.MulVec(s, []float64{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MulVec(nil, x)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestSymMulVec checks that upper storage is interpreted symmetrically.
func TestSymMulVec(t *testing.T) {
	a, dense := RandomSPD(t, 12, 0.3, 7)
	x := seq(12, 0.5)

	got, err := matrix.SymMulVec(a, x)
	require.NoError(t, err)

	var want mat.VecDense
	want.MulVec(dense, mat.NewVecDense(12, x))
	AssertVecClose(t, want.RawVector().Data, got, tol)

	_, err = matrix.SymMulVec(MustSparse(t, 2, 3), []float64{1, 2, 3})
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
}

// TestSyrkUpper verifies the upper triangle of UᵀU against a dense product.
func TestSyrkUpper(t *testing.T) {
	u := MustSparse(t, 3, 3,
		entry{0, 0, 1}, entry{0, 1, -1},
		entry{1, 1, 2}, entry{1, 2, 0.5},
		entry{2, 2, 3},
	)
	tau, err := matrix.SyrkUpper(u)
	require.NoError(t, err)

	var want mat.Dense
	want.Mul(u.Dense().T(), u.Dense())
	sym, err := tau.SymDense()
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(&want, sym, tol))

	// Nothing below the diagonal is stored.
	tau.Do(func(i, j int, _ float64) { assert.LessOrEqual(t, i, j) })
}
