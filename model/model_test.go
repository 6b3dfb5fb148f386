// SPDX-License-Identifier: MIT
package model_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gaussnet/model"
)

// mustNormal builds a Normal node or fails the test.
func mustNormal(t *testing.T, id string, dim int, mu model.Mean, tau ...float64) *model.Stochastic {
	t.Helper()
	n, err := model.NewNormal(id, dim, mu, tau)
	require.NoError(t, err)

	return n
}

// TestNewNormal_MeanBroadcast checks that a scalar parent broadcasts into the
// initial value of a vector child and that the child is registered.
func TestNewNormal_MeanBroadcast(t *testing.T) {
	p := mustNormal(t, "p", 1, model.MeanConst(3), 1)
	c := mustNormal(t, "c", 3, model.MeanOf(p), 2)

	assert.Equal(t, []float64{3, 3, 3}, c.Value())
	assert.Equal(t, model.KindNormal, c.Kind())
	assert.True(t, c.Kind().Gaussian())
	assert.Equal(t, []model.Node{c}, p.Children())
	assert.Equal(t, []model.Node{p}, c.Parents())
	assert.Same(t, p, c.Mean().Node())
}

// TestNewNormal_Errors covers shape and finiteness validation.
func TestNewNormal_Errors(t *testing.T) {
	p := mustNormal(t, "p", 2, model.MeanConst(0), 1)

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"zero dim", func() error { _, err := model.NewNormal("x", 0, model.MeanConst(), []float64{1}); return err }, model.ErrDimensionMismatch},
		{"tau length", func() error { _, err := model.NewNormal("x", 3, model.MeanConst(), []float64{1, 2}); return err }, model.ErrDimensionMismatch},
		{"parent dim", func() error { _, err := model.NewNormal("x", 3, model.MeanOf(p), []float64{1}); return err }, model.ErrDimensionMismatch},
		{"const mean", func() error { _, err := model.NewNormal("x", 3, model.MeanConst(1, 2), []float64{1}); return err }, model.ErrDimensionMismatch},
		{"nan tau", func() error { _, err := model.NewNormal("x", 1, model.MeanConst(), []float64{math.NaN()}); return err }, model.ErrInvalidValue},
		{"bad value", func() error {
			_, err := model.NewNormal("x", 2, model.MeanConst(), []float64{1}, model.WithValue(1))
			return err
		}, model.ErrDimensionMismatch},
		{"cov shape", func() error { _, err := model.NewMvNormalCov("x", model.MeanConst(), mat.NewDense(2, 3, nil)); return err }, model.ErrDimensionMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.run(), tc.want)
		})
	}
	assert.Panics(t, func() { model.WithValue() })
}

// TestStochastic_Versions verifies counter bumps on value and precision updates.
func TestStochastic_Versions(t *testing.T) {
	n, err := model.NewMvNormal("n", model.MeanConst(), mat.NewDense(2, 2, []float64{2, 0, 0, 2}), model.WithObserved())
	require.NoError(t, err)
	assert.True(t, n.Observed())
	assert.Equal(t, model.KindMvNormal, n.Kind())

	v0, p0 := n.ValueVersion(), n.ParamVersion()
	require.NoError(t, n.SetValue([]float64{1, 2}))
	assert.Equal(t, v0+1, n.ValueVersion())
	assert.Equal(t, p0, n.ParamVersion())
	assert.Equal(t, []float64{1, 2}, n.Value())

	require.NoError(t, n.SetPrecision(model.DensePrecision(mat.NewDense(2, 2, []float64{3, 0, 0, 3}))))
	assert.Equal(t, p0+1, n.ParamVersion())
	assert.Equal(t, 3.0, n.Precision().Matrix.At(0, 0))

	assert.ErrorIs(t, n.SetValue([]float64{1}), model.ErrDimensionMismatch)
	assert.ErrorIs(t, n.SetValue([]float64{math.Inf(1), 0}), model.ErrInvalidValue)
	assert.ErrorIs(t, n.SetPrecision(model.DiagPrecision(1)), model.ErrDimensionMismatch)

	// Returned values are copies.
	v := n.Value()
	v[0] = 99
	assert.Equal(t, []float64{1, 2}, n.Value())
}

// TestNewValue covers the non-Gaussian node and generated identifiers.
func TestNewValue(t *testing.T) {
	v, err := model.NewValue("", []float64{1, 2})
	require.NoError(t, err)
	_, err = uuid.Parse(v.ID())
	assert.NoError(t, err)
	assert.Equal(t, model.KindValue, v.Kind())
	assert.False(t, v.Kind().Gaussian())
	assert.True(t, v.Kind().Stochastic())
	assert.Empty(t, v.Parents())

	_, err = model.NewValue("x", nil)
	assert.ErrorIs(t, err, model.ErrDimensionMismatch)
}

// TestLinearCombination_Value evaluates every term kind.
func TestLinearCombination_Value(t *testing.T) {
	x := mustNormal(t, "x", 2, model.MeanConst(1, 2), 1)
	s := mustNormal(t, "s", 1, model.MeanConst(3), 1)
	w, err := model.NewValue("w", []float64{2})
	require.NoError(t, err)

	// (3, 2) + (6, 6) + (1, 2) + (2, 4) + (0.5, 0.5)
	lc, err := model.NewLinearCombination("lc", 2,
		model.Scaled(mat.NewDense(2, 2, []float64{1, 1, 0, 1}), x),
		model.Scale(2, s),
		model.ScaledRight(x, mat.NewDense(2, 2, []float64{1, 0, 0, 1})),
		model.Product(w, x),
		model.Offset(0.5),
	)
	require.NoError(t, err)
	assert.Equal(t, []float64{12.5, 14.5}, lc.Value())
	assert.Equal(t, model.KindLinearCombination, lc.Kind())
	assert.Equal(t, []model.Node{x, s, w}, lc.Parents())
	assert.Contains(t, x.Children(), model.Node(lc))
	require.Len(t, lc.Terms(), 5)
	assert.Equal(t, model.TermScaledRight, lc.Terms()[2].Kind())

	// Value version follows parent values; param version follows coefficients.
	vv, pv := lc.ValueVersion(), lc.ParamVersion()
	require.NoError(t, x.SetValue([]float64{0, 0}))
	assert.Greater(t, lc.ValueVersion(), vv)
	assert.Equal(t, pv, lc.ParamVersion())

	require.NoError(t, lc.SetCoefficient(0, mat.NewDense(2, 2, []float64{2, 0, 0, 2})))
	assert.Equal(t, pv+1, lc.ParamVersion())
	assert.ErrorIs(t, lc.SetCoefficient(4, mat.NewDense(2, 2, nil)), model.ErrTermIndex)
	assert.ErrorIs(t, lc.SetCoefficient(0, mat.NewDense(3, 2, nil)), model.ErrDimensionMismatch)

	cv := lc.ConstVersion()
	require.NoError(t, lc.SetOffset(4, 1, 1))
	assert.Equal(t, cv+1, lc.ConstVersion())
	assert.ErrorIs(t, lc.SetOffset(0, 1), model.ErrTermIndex)
}

// TestLinearCombination_Errors covers construction validation.
func TestLinearCombination_Errors(t *testing.T) {
	x := mustNormal(t, "x", 2, model.MeanConst(), 1)

	_, err := model.NewLinearCombination("lc", 3, model.Scale(1, x))
	assert.ErrorIs(t, err, model.ErrDimensionMismatch)
	_, err = model.NewLinearCombination("lc", 2, model.Scaled(mat.NewDense(2, 3, nil), x))
	assert.ErrorIs(t, err, model.ErrDimensionMismatch)
	_, err = model.NewLinearCombination("lc", 2, model.Scaled(mat.NewDense(2, 2, nil), nil))
	assert.ErrorIs(t, err, model.ErrNilNode)
	_, err = model.NewLinearCombination("lc", 0)
	assert.ErrorIs(t, err, model.ErrDimensionMismatch)

	// Repeated references are a submodel concern, not a model error.
	_, err = model.NewLinearCombination("dup", 2, model.Scale(1, x), model.Scale(2, x))
	assert.NoError(t, err)
}

// TestDeterministic evaluates a generic function node.
func TestDeterministic(t *testing.T) {
	v, err := model.NewValue("v", []float64{2})
	require.NoError(t, err)
	sq := func(args [][]float64) []float64 { return []float64{args[0][0] * args[0][0]} }

	d, err := model.NewDeterministic("d", 1, sq, v)
	require.NoError(t, err)
	assert.Equal(t, []float64{4}, d.Value())
	assert.Equal(t, model.KindDeterministic, d.Kind())

	before := d.ValueVersion()
	require.NoError(t, v.SetValue([]float64{3}))
	assert.Equal(t, []float64{9}, d.Value())
	assert.Greater(t, d.ValueVersion(), before)

	_, err = model.NewDeterministic("bad", 2, sq, v)
	assert.ErrorIs(t, err, model.ErrDimensionMismatch)
	_, err = model.NewDeterministic("nil", 1, nil, v)
	assert.ErrorIs(t, err, model.ErrNilNode)
}

// TestNetwork covers registration, lookup and enumeration.
func TestNetwork(t *testing.T) {
	net := model.NewNetwork()
	a := mustNormal(t, "a", 1, model.MeanConst(), 1)
	b := mustNormal(t, "b", 1, model.MeanOf(a), 1)
	v, err := model.NewValue("v", []float64{1})
	require.NoError(t, err)

	require.NoError(t, net.Add(b, a, v))
	assert.Equal(t, 3, net.Len())
	assert.ErrorIs(t, net.Add(a), model.ErrDuplicateNode)
	assert.ErrorIs(t, net.Add(nil), model.ErrNilNode)

	c := mustNormal(t, "c", 1, model.MeanConst(), 1)
	assert.ErrorIs(t, net.Add(c, c), model.ErrDuplicateNode)
	assert.Equal(t, 3, net.Len(), "failed Add must not register anything")

	ids := func(ns []model.Node) []string {
		out := make([]string, len(ns))
		for i, n := range ns {
			out[i] = n.ID()
		}
		return out
	}
	assert.Equal(t, []string{"a", "b", "v"}, ids(net.Nodes()))
	assert.Equal(t, []*model.Stochastic{a, b}, net.Gaussians())

	sel, err := net.Select("b", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(sel))
	_, err = net.Node("zzz")
	assert.ErrorIs(t, err, model.ErrNodeNotFound)
}
