// SPDX-License-Identifier: MIT
package gaussian_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gaussnet/gaussian"
	"github.com/katalvlaran/gaussnet/model"
)

const tol = 1e-8

// MustNormal builds a diagonal-precision Gaussian or fails the test.
func MustNormal(t *testing.T, id string, dim int, mu model.Mean, tau []float64, opts ...model.NodeOption) *model.Stochastic {
	t.Helper()
	n, err := model.NewNormal(id, dim, mu, tau, opts...)
	require.NoError(t, err)

	return n
}

// MustLC builds a linear combination or fails the test.
func MustLC(t *testing.T, id string, dim int, terms ...model.Term) *model.LinearCombination {
	t.Helper()
	lc, err := model.NewLinearCombination(id, dim, terms...)
	require.NoError(t, err)

	return lc
}

// MustSubmodel builds a submodel or fails the test.
func MustSubmodel(t *testing.T, nodes []model.Node, opts ...gaussian.Option) *gaussian.Submodel {
	t.Helper()
	sm, err := gaussian.New(nodes, opts...)
	require.NoError(t, err)

	return sm
}

// AssertVecClose compares vectors elementwise within eps.
func AssertVecClose(t *testing.T, want, got []float64, eps float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDeltaf(t, want[i], got[i], eps, "index %d: want %v got %v", i, want, got)
	}
}

// AssertMatClose compares matrices elementwise within eps.
func AssertMatClose(t *testing.T, want, got mat.Matrix, eps float64) {
	t.Helper()
	wr, wc := want.Dims()
	gr, gc := got.Dims()
	require.Equal(t, []int{wr, wc}, []int{gr, gc})
	for i := 0; i < wr; i++ {
		for j := 0; j < wc; j++ {
			require.InDeltaf(t, want.At(i, j), got.At(i, j), eps, "entry (%d,%d)", i, j)
		}
	}
}

// refNetwork is a dense description of a linear-Gaussian network in the
// submodel's storage layout: x = B·x + b + ε, ε ~ N(0, Q⁻¹).
type refNetwork struct {
	n int
	B *mat.Dense
	Q *mat.Dense
	b []float64
}

func newRefNetwork(n int) *refNetwork {
	return &refNetwork{n: n, B: mat.NewDense(n, n, nil), Q: mat.NewDense(n, n, nil), b: make([]float64, n)}
}

// link writes the coefficient k of parent p in child c's mean.
func (r *refNetwork) link(t *testing.T, sm *gaussian.Submodel, c, p model.Node, k mat.Matrix) {
	t.Helper()
	co, ok := sm.Offset(c)
	require.True(t, ok)
	po, ok := sm.Offset(p)
	require.True(t, ok)
	kr, kc := k.Dims()
	for i := 0; i < kr; i++ {
		for j := 0; j < kc; j++ {
			r.B.Set(co+i, po+j, r.B.At(co+i, po+j)+k.At(i, j))
		}
	}
}

// local writes the node's own precision q and constant mean part bc.
func (r *refNetwork) local(t *testing.T, sm *gaussian.Submodel, c model.Node, q mat.Matrix, bc ...float64) {
	t.Helper()
	co, ok := sm.Offset(c)
	require.True(t, ok)
	d, _ := q.Dims()
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			r.Q.Set(co+i, co+j, q.At(i, j))
		}
		r.b[co+i] = bc[i]
	}
}

// precision returns (I−B)ᵀ Q (I−B).
func (r *refNetwork) precision() *mat.SymDense {
	var ib, tmp, tau mat.Dense
	ib.Sub(identity(r.n), r.B)
	tmp.Mul(r.Q, &ib)
	tau.Mul(ib.T(), &tmp)
	out := mat.NewSymDense(r.n, nil)
	for i := 0; i < r.n; i++ {
		for j := i; j < r.n; j++ {
			out.SetSym(i, j, 0.5*(tau.At(i, j)+tau.At(j, i)))
		}
	}

	return out
}

// mean solves (I−B)·μ = b.
func (r *refNetwork) mean(t *testing.T) []float64 {
	t.Helper()
	var ib mat.Dense
	ib.Sub(identity(r.n), r.B)
	var mu mat.VecDense
	require.NoError(t, mu.SolveVec(&ib, mat.NewVecDense(r.n, append([]float64(nil), r.b...))))

	return mu.RawVector().Data
}

// conditionRef returns the mean and covariance of x[s] given x[e] = xe under
// N(mu, tau⁻¹), computed from the dense covariance.
func conditionRef(t *testing.T, tau *mat.SymDense, mu []float64, s, e []int, xe []float64) ([]float64, *mat.Dense) {
	t.Helper()
	var ch mat.Cholesky
	require.True(t, ch.Factorize(tau))
	var sigma mat.SymDense
	require.NoError(t, ch.InverseTo(&sigma))

	sSS := sub(&sigma, s, s)
	meanS := make([]float64, len(s))
	for i, k := range s {
		meanS[i] = mu[k]
	}
	if len(e) == 0 {
		return meanS, sSS
	}
	sSE := sub(&sigma, s, e)
	sEE := sub(&sigma, e, e)
	diff := mat.NewVecDense(len(e), nil)
	for i, k := range e {
		diff.SetVec(i, xe[i]-mu[k])
	}
	var w mat.VecDense
	require.NoError(t, w.SolveVec(sEE, diff))
	var shift mat.VecDense
	shift.MulVec(sSE, &w)
	for i := range meanS {
		meanS[i] += shift.AtVec(i)
	}
	var gain, corr, cov mat.Dense
	require.NoError(t, gain.Solve(sEE, sSE.T()))
	corr.Mul(sSE, &gain)
	cov.Sub(sSS, &corr)

	return meanS, &cov
}

func sub(m mat.Matrix, rows, cols []int) *mat.Dense {
	out := mat.NewDense(len(rows), len(cols), nil)
	for i, r := range rows {
		for j, c := range cols {
			out.Set(i, j, m.At(r, c))
		}
	}

	return out
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}

	return m
}

// indices returns the joint indices of nodes, in order.
func indices(t *testing.T, sm *gaussian.Submodel, nodes ...model.Node) []int {
	t.Helper()
	var out []int
	for _, n := range nodes {
		off, ok := sm.Offset(n)
		require.True(t, ok)
		for i := 0; i < n.Dim(); i++ {
			out = append(out, off+i)
		}
	}

	return out
}

// values concatenates node values.
func values(nodes ...model.Node) []float64 {
	var out []float64
	for _, n := range nodes {
		out = append(out, n.Value()...)
	}

	return out
}

func finite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}

	return true
}
