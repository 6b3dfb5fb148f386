// SPDX-License-Identifier: MIT

package gaussian

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gaussnet/matrix"
)

// PrecisionFactor is a Cholesky-factor handle over a conditional precision P.
//
// Solve follows matrix.Backsolver: squared solves P·x = b; the Upper half maps
// a standard-normal vector to a draw with covariance P⁻¹; the Lower half is its
// transpose partner, so Upper∘Lower = P⁻¹ and ‖Lower(b)‖² = bᵀP⁻¹b.
type PrecisionFactor interface {
	Dim() int
	Solve(rhs []float64, tri matrix.Triangle, squared bool) ([]float64, error)
	LogDet() float64
}

var (
	_ PrecisionFactor = (*matrix.Backsolver)(nil)
	_ PrecisionFactor = (*DenseFactor)(nil)
)

// DenseFactor is a PrecisionFactor over a dense Cholesky factorization
// P = UᵀU. It is returned for marginal queries, whose precision is a dense
// Schur complement. Immutable and safe for concurrent use.
type DenseFactor struct {
	n    int
	chol mat.Cholesky
	u, l mat.TriDense
}

// newDenseFactor factors p; ok is false when p is not positive definite.
func newDenseFactor(p *mat.SymDense) (*DenseFactor, bool) {
	f := &DenseFactor{n: p.SymmetricDim()}
	if !f.chol.Factorize(p) {
		return nil, false
	}
	f.chol.UTo(&f.u)
	f.chol.LTo(&f.l)

	return f, true
}

// Dim returns the order of P.
func (f *DenseFactor) Dim() int { return f.n }

// LogDet returns log det P.
func (f *DenseFactor) LogDet() float64 { return f.chol.LogDet() }

// Solve returns P⁻¹b (squared), U⁻¹b (Upper) or U⁻ᵀb (Lower).
func (f *DenseFactor) Solve(rhs []float64, tri matrix.Triangle, squared bool) ([]float64, error) {
	if len(rhs) != f.n {
		return nil, fmt.Errorf("DenseFactor.Solve: %w", matrix.ErrDimensionMismatch)
	}
	b := mat.NewVecDense(f.n, append([]float64(nil), rhs...))
	var x mat.VecDense
	var err error
	switch {
	case squared:
		err = f.chol.SolveVecTo(&x, b)
	case tri == matrix.Lower:
		err = x.SolveVec(&f.l, b)
	default:
		err = x.SolveVec(&f.u, b)
	}
	var cond mat.Condition
	if err != nil && !errors.As(err, &cond) {
		return nil, fmt.Errorf("DenseFactor.Solve: %w: %w", ErrSingularSystem, err)
	}

	return x.RawVector().Data, nil
}
