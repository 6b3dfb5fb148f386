// SPDX-License-Identifier: MIT
// Package: gaussnet/builder
//
// impl_regression.go - implementation of Regression(scope, n, p).
//
// Contract:
//   - n ≥ 1 responses, p ≥ 1 covariates.
//   - <scope>.beta ~ N(0, τ⁻¹·I_p), <scope>.alpha ~ N(0, τ⁻¹)
//   - <scope>.eta<i> = betaᵀ·x_i + alpha (linear combination)
//   - <scope>.y<i> ~ N(eta_i, τ_obs⁻¹), observed
//   - Covariates x_ij = cfg.coefFn(cfg.rng), drawn row by row.
//   - Responses are simulated from beta = 1, alpha = 0 plus N(0, τ_obs⁻¹)
//     noise when cfg.rng is set.
//
// Complexity:
//   - Time: O(n·p). Space: O(n) nodes plus O(n·p) coefficients.

package builder

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gaussnet/model"
)

// Regression returns a Constructor that builds a Bayesian linear regression.
func Regression(scope string, n, p int) Constructor {
	return func(net *model.Network, cfg builderConfig) error {
		if err := validateMin(MethodRegression, "n", n, MinObservations); err != nil {
			return err
		}
		if err := validateMin(MethodRegression, "p", p, MinCovariates); err != nil {
			return err
		}

		tau := []float64{cfg.precision}
		sd := 1 / math.Sqrt(cfg.obsPrecision)
		nodes := make([]model.Node, 0, 2+2*n)

		betaID := scope + ScopeSeparator + "beta"
		beta, err := model.NewNormal(betaID, p, model.MeanConst(0), tau)
		if err != nil {
			return constructErr(MethodRegression, betaID, err)
		}
		alphaID := scope + ScopeSeparator + "alpha"
		alpha, err := model.NewNormal(alphaID, 1, model.MeanConst(0), tau)
		if err != nil {
			return constructErr(MethodRegression, alphaID, err)
		}
		nodes = append(nodes, beta, alpha)

		x := make([]float64, p)
		for i := 0; i < n; i++ {
			var signal float64
			for j := range x {
				x[j] = cfg.coefFn(cfg.rng)
				signal += x[j]
			}
			etaID := scope + ScopeSeparator + "eta" + cfg.idFn(i)
			eta, err := model.NewLinearCombination(etaID, 1,
				model.ScaledRight(beta, mat.NewDense(p, 1, x)), model.Scale(1, alpha))
			if err != nil {
				return constructErr(MethodRegression, etaID, err)
			}
			yID := scope + ScopeSeparator + "y" + cfg.idFn(i)
			y, err := model.NewNormal(yID, 1, model.MeanOf(eta), []float64{cfg.obsPrecision},
				model.WithObserved(), model.WithValue(noisy(cfg, []float64{signal}, sd)...))
			if err != nil {
				return constructErr(MethodRegression, yID, err)
			}
			nodes = append(nodes, eta, y)
		}
		if err = net.Add(nodes...); err != nil {
			return constructErr(MethodRegression, scope, err)
		}

		return nil
	}
}
