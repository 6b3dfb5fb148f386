// SPDX-License-Identifier: MIT
// File: localfactor.go
// Role: Local Factor Builder. Every member's own conditional precision Q_c is
// reduced to R_c with Q_c = R_cᵀR_c: a vector of square roots for diagonal
// precisions, an upper Cholesky factor otherwise.

package gaussian

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gaussnet/model"
)

// localFactor is R_c. Exactly one of diag and upper is set.
type localFactor struct {
	diag  []float64
	upper *mat.TriDense
}

func (f localFactor) diagonal() bool { return f.upper == nil }

// newLocalFactor derives R_c from the node's declared precision parameter.
//
// Errors: ErrNonPositiveDefinite when the parameter is asymmetric beyond symTol,
// has a non-positive diagonal precision, or fails a Cholesky factorization.
func newLocalFactor(s *model.Stochastic, symTol float64) (localFactor, error) {
	p := s.Precision()
	d := s.Dim()
	switch p.Form {
	case model.FormDiagonal:
		tau := stretch(p.Diag, d)
		for i, v := range tau {
			if !(v > 0) {
				return localFactor{}, nonPD(s, "precision %g at element %d", v, i)
			}
			tau[i] = math.Sqrt(v)
		}
		return localFactor{diag: tau}, nil

	case model.FormPrecision:
		sym, ok := symmetric(p.Matrix, symTol)
		if !ok {
			return localFactor{}, nonPD(s, "precision matrix is not symmetric")
		}
		return upperFactor(s, sym, "precision matrix")

	case model.FormCovariance:
		sym, ok := symmetric(p.Matrix, symTol)
		if !ok {
			return localFactor{}, nonPD(s, "covariance matrix is not symmetric")
		}
		return covarianceFactor(s, sym)

	case model.FormCovCholesky:
		var cov mat.SymDense
		cov.SymOuterK(1, p.Matrix)
		return covarianceFactor(s, &cov)

	default:
		return localFactor{}, nonPD(s, "no precision parameter")
	}
}

// covarianceFactor inverts the covariance and factors the resulting precision.
func covarianceFactor(s *model.Stochastic, cov *mat.SymDense) (localFactor, error) {
	var ch mat.Cholesky
	if !ch.Factorize(cov) {
		return localFactor{}, nonPD(s, "covariance matrix")
	}
	var prec mat.SymDense
	if err := ch.InverseTo(&prec); err != nil {
		return localFactor{}, nonPD(s, "covariance inverse: %v", err)
	}

	return upperFactor(s, &prec, "inverse covariance")
}

func upperFactor(s *model.Stochastic, prec *mat.SymDense, what string) (localFactor, error) {
	var ch mat.Cholesky
	if !ch.Factorize(prec) {
		return localFactor{}, nonPD(s, "%s", what)
	}
	u := new(mat.TriDense)
	ch.UTo(u)

	return localFactor{upper: u}, nil
}

// symmetric returns the upper triangle of m as a SymDense when m is symmetric
// within tol relative to its largest absolute entry.
func symmetric(m *mat.Dense, tol float64) (*mat.SymDense, bool) {
	n, _ := m.Dims()
	scale := math.Max(1, mat.Norm(m, math.Inf(1)))
	sym := mat.NewSymDense(n, nil)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > tol*scale {
				return nil, false
			}
			sym.SetSym(i, j, m.At(i, j))
		}
	}

	return sym, true
}

func nonPD(s *model.Stochastic, format string, args ...any) error {
	return fmt.Errorf("%w: node %q: %s", ErrNonPositiveDefinite, s.ID(), fmt.Sprintf(format, args...))
}
