// SPDX-License-Identifier: MIT
// Package: gaussnet/builder
//
// impl_hierarchy.go - implementation of Hierarchy(scope, groups, perGroup, dim).
//
// Contract:
//   - groups ≥ 1, perGroup ≥ 1, dim ≥ 1.
//   - <scope>.mu ~ N(0, τ⁻¹·I)
//   - <scope>.g<j> ~ N(mu, τ⁻¹·I)                      j = 0..groups-1
//   - <scope>.y<j>.<k> ~ N(g_j, τ_obs⁻¹·I), observed     k = 0..perGroup-1
//   - Observed values are (j+1)·cfg.coefFn(cfg.rng) per element plus
//     N(0, τ_obs⁻¹) noise when cfg.rng is set, so groups carry distinct levels.
//
// Complexity:
//   - Time: O(groups·perGroup·dim). Space: O(groups·perGroup) nodes.

package builder

import (
	"math"

	"github.com/katalvlaran/gaussnet/model"
)

// Hierarchy returns a Constructor that builds a two-level random-effects model.
func Hierarchy(scope string, groups, perGroup, dim int) Constructor {
	return func(net *model.Network, cfg builderConfig) error {
		if err := validateMin(MethodHierarchy, "groups", groups, MinGroups); err != nil {
			return err
		}
		if err := validateMin(MethodHierarchy, "perGroup", perGroup, MinPerGroup); err != nil {
			return err
		}
		if err := validateDim(MethodHierarchy, dim); err != nil {
			return err
		}

		tau := []float64{cfg.precision}
		sd := 1 / math.Sqrt(cfg.obsPrecision)
		nodes := make([]model.Node, 0, 1+groups*(1+perGroup))

		rootID := scope + ScopeSeparator + "mu"
		root, err := model.NewNormal(rootID, dim, model.MeanConst(0), tau)
		if err != nil {
			return constructErr(MethodHierarchy, rootID, err)
		}
		nodes = append(nodes, root)

		for j := 0; j < groups; j++ {
			gID := scope + ScopeSeparator + "g" + cfg.idFn(j)
			g, err := model.NewNormal(gID, dim, model.MeanOf(root), tau)
			if err != nil {
				return constructErr(MethodHierarchy, gID, err)
			}
			nodes = append(nodes, g)
			level := float64(j+1) * cfg.coefFn(cfg.rng)
			for k := 0; k < perGroup; k++ {
				yID := scope + ScopeSeparator + "y" + cfg.idFn(j) + ScopeSeparator + cfg.idFn(k)
				v := make([]float64, dim)
				for i := range v {
					v[i] = level
				}
				y, err := model.NewNormal(yID, dim, model.MeanOf(g), []float64{cfg.obsPrecision},
					model.WithObserved(), model.WithValue(noisy(cfg, v, sd)...))
				if err != nil {
					return constructErr(MethodHierarchy, yID, err)
				}
				nodes = append(nodes, y)
			}
		}
		if err = net.Add(nodes...); err != nil {
			return constructErr(MethodHierarchy, scope, err)
		}

		return nil
	}
}
