// SPDX-License-Identifier: MIT
// Package builder provides deterministic, “functional‐options”‐style
// constructors for linear-Gaussian networks. It is used by tests, examples
// and callers that need realistic fixtures for the gaussian package.
//
// The package offers the following key components:
//
//   - Orchestrators:
//     – BuildNetwork:  runs constructors against a fresh model.Network.
//     – BuildSubmodel: BuildNetwork + gaussian.New over every Gaussian.
//   - Constructors (Constructor closures):
//     – Chain:      first-order autoregression, optionally with observed states.
//     – Hierarchy:  root → group means → observed leaves.
//     – Regression: Bayesian linear regression with observed responses.
//   - Configuration primitives:
//     – BuilderOption: a function that mutates builderConfig before use.
//     – WithSeed / WithRand, WithPrecision, WithObservationPrecision.
//   - Node-ID schemes (IDFn implementations):
//     – DefaultIDFn, PaddedIDFn (default, width 4), AlphanumericIDFn,
//     ExcelColumnIDFn, UUIDIDFn (name-based, deterministic).
//   - Coefficient distributions (CoefFn implementations):
//     – DefaultCoefFn, ConstantCoefFn, UniformCoefFn, NormalCoefFn.
//
// Guarantees:
//
//   - Determinism: equal options, seed and constructor order produce equal
//     IDs, coefficients and observed values.
//   - Fast‐fail on invalid option parameters via panics in option constructors.
//   - Constructors return sentinel errors (ErrTooFewNodes, ErrBadDimension,
//     ErrBadIndex, ErrConstructFailed) wrapped with the constructor name.
//
// Example:
//
//	sm, net, err := builder.BuildSubmodel(
//		[]builder.BuilderOption{builder.WithSeed(7)},
//		[]gaussian.Option{gaussian.WithSeed(7)},
//		builder.Chain("x", 100, 2, 50),
//	)
package builder
