// SPDX-License-Identifier: MIT

// Package model is the node graph of a directed probabilistic network whose
// Gaussian part is linear.
//
// What:
//
//   - Stochastic nodes: Normal (diagonal precision), MvNormal (precision
//     matrix), MvNormalCov (covariance), MvNormalChol (covariance Cholesky
//     factor), and Value (a non-Gaussian node or constant).
//   - LinearCombination nodes: Σ K·x terms, elementwise products and offsets.
//   - Deterministic nodes: arbitrary functions of their parents.
//   - Network: a registry keyed by ID.
//
// Each Gaussian's mean is another node (MeanOf) or a constant (MeanConst).
// Dimension-1 means and product factors broadcast to the child's dimension.
// Setters bump the ValueVersion/ParamVersion counters that downstream caches
// compare against; nodes never validate positive-definiteness themselves.
//
// Example:
//
//	b, _ := model.NewNormal("B", 1, model.MeanConst(0), []float64{1})
//	a, _ := model.NewNormal("A", 1, model.MeanOf(b), []float64{1})
package model
