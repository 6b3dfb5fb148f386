// SPDX-License-Identifier: MIT

// Package gaussnet answers conditional queries over networks of linear-Gaussian
// nodes using one sparse joint precision matrix.
//
// A submodel is a set of Gaussian nodes whose means are linear combinations of
// other nodes. Its joint density is kept as an upper Cholesky factor τ_chol,
// assembled block by block from each member's local precision and its
// coupling to its mean parents, together with the canonical mean η = τ·μ.
// Queries slice blocks out of τ = τ_cholᵀ·τ_chol, factor them with a sparse
// LDLᵀ and return a Gaussian in canonical form.
//
// The module is organized in flat packages:
//
//	model/    - nodes, linear combinations, version counters, Network registry
//	dfs/      - topological ordering of the mean graph
//	matrix/   - sparse storage, symmetric rank update, minimum-degree ordering,
//	            LDLᵀ factorization and the Backsolver
//	gaussian/ - Submodel: resolution, joint factor, queries, sampling,
//	            cache invalidation, metrics and configuration
//	builder/  - deterministic network constructors (chains, hierarchies,
//	            regressions) for tests and experiments
//
// Quick example:
//
//	a ──► b (observed)
//
//	a, _ := model.NewNormal("a", 1, model.MeanConst(1), []float64{1})
//	b, _ := model.NewNormal("b", 1, model.MeanOf(a), []float64{1},
//		model.WithObserved(), model.WithValue(2))
//	sm, _ := gaussian.New([]model.Node{a, b})
//	post, _ := sm.Posterior(a) // mean 1.5, precision 2
//
//	go get github.com/katalvlaran/gaussnet
package gaussnet
