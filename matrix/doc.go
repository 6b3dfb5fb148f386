// SPDX-License-Identifier: MIT

// Package matrix offers sparse symmetric linear algebra for precision matrices.
//
// The matrix package provides:
//
//   - Sparse, an immutable compressed-column matrix, and Builder for
//     assembling one from scalar entries, dense blocks and diagonals.
//   - Kernels over sparse operands: Transpose, MulVec, MulTransVec, SymMulVec
//     (upper-stored symmetric), and SyrkUpper (the upper triangle of UᵀU).
//   - Fill-reducing orderings (minimum degree, natural, reverse).
//   - Factorize, a sparse LDLᵀ factorization of symmetric positive-definite
//     matrices, returning a Backsolver for full and half solves.
//
// Symmetric matrices are always stored by their upper triangle. All errors are
// package sentinels (see errors.go) wrapped with the operation tag; match them
// with errors.Is. Dense interoperability goes through gonum's mat package.
package matrix
