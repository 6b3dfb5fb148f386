// SPDX-License-Identifier: MIT

// Package gaussian builds the joint distribution of a linear-Gaussian network
// and answers conditional queries against it.
//
// What:
//
//   - A Submodel over Gaussian member nodes whose means are linear in one
//     another (directly or through linear combinations).
//   - The joint precision τ in sparse form, assembled directly as its upper
//     Cholesky factor τ_chol (τ = τ_cholᵀ·τ_chol).
//   - Queries: Posterior, FullConditional, Prior and Conditional return a
//     *Conditional (precision factor + mean); DrawConditional samples the
//     changeable members given the fixed ones and writes the draws back.
//
// Partition: a member is changeable when it is not observed and no member
// uses it as a mean parent; every other member is fixed.
//
// Errors:
//
//	ErrModelShape          - the graph is not linear-Gaussian (*ShapeError names the node).
//	ErrNonPositiveDefinite - a declared local precision is not SPD.
//	ErrSingularSystem      - an assembled block failed numeric factorization.
//	ErrInvalidQuery        - a query names non-members, repeats, or overlaps its evidence.
//
// Derived state is cached against node version counters and rebuilt only when
// stale (see state.go). Options configure logging (log/slog), Prometheus
// metrics, sampling seed and factorization; Config is their YAML form.
//
// Example:
//
//	a, _ := model.NewNormal("A", 1, model.MeanConst(0), []float64{1})
//	b, _ := model.NewNormal("B", 1, model.MeanOf(a), []float64{1})
//	sm, _ := gaussian.New([]model.Node{a, b})
//	_ = b.SetValue([]float64{2})
//	c, _ := sm.Conditional([]model.Node{a}, []model.Node{b})
//	fmt.Println(c.Mean()) // [1]
package gaussian
