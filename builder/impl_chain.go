// SPDX-License-Identifier: MIT
// Package: gaussnet/builder
//
// impl_chain.go - implementation of Chain(scope, n, dim, observed...).
//
// Contract:
//   - n ≥ 1, dim ≥ 1, observed ⊆ [0, n) (else ErrTooFewNodes / ErrBadDimension / ErrBadIndex).
//   - x_0 ~ N(0, τ⁻¹·I); x_i ~ N(c_i·x_{i-1}, τ⁻¹·I) for i ≥ 1, where
//     c_i = cfg.coefFn(cfg.rng) and τ = cfg.precision.
//   - The mean of x_i is the linear combination <id(x_i)>.mean.
//   - Observed states hold c_i·x_{i-1} plus N(0, τ⁻¹) noise when cfg.rng is set.
//   - IDs: scope + cfg.idFn(i).
//
// Complexity:
//   - Time: O(n·dim). Space: O(n) nodes.

package builder

import (
	"math"

	"github.com/katalvlaran/gaussnet/model"
)

// Chain returns a Constructor that builds a first-order autoregression.
func Chain(scope string, n, dim int, observed ...int) Constructor {
	obs := append([]int(nil), observed...)

	return func(net *model.Network, cfg builderConfig) error {
		if err := validateMin(MethodChain, "n", n, MinChainNodes); err != nil {
			return err
		}
		if err := validateDim(MethodChain, dim); err != nil {
			return err
		}
		if err := validateIndices(MethodChain, obs, n); err != nil {
			return err
		}
		isObs := make(map[int]bool, len(obs))
		for _, i := range obs {
			isObs[i] = true
		}

		sd := 1 / math.Sqrt(cfg.precision)
		nodes := make([]model.Node, 0, 2*n)
		var (
			prev *model.Stochastic
			err  error
		)
		for i := 0; i < n; i++ {
			id := scope + cfg.idFn(i)
			mu := model.MeanConst(0)
			if prev != nil {
				lc, err := model.NewLinearCombination(id+MeanSuffix, dim, model.Scale(cfg.coefFn(cfg.rng), prev))
				if err != nil {
					return constructErr(MethodChain, id+MeanSuffix, err)
				}
				nodes = append(nodes, lc)
				mu = model.MeanOf(lc)
			}
			var opts []model.NodeOption
			if isObs[i] {
				opts = append(opts, model.WithObserved(), model.WithValue(noisy(cfg, meanValue(mu, dim), sd)...))
			}
			if prev, err = model.NewNormal(id, dim, mu, []float64{cfg.precision}, opts...); err != nil {
				return constructErr(MethodChain, id, err)
			}
			nodes = append(nodes, prev)
		}
		if err = net.Add(nodes...); err != nil {
			return constructErr(MethodChain, scope, err)
		}

		return nil
	}
}
