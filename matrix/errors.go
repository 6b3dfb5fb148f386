// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels (optionally wrapped with an
// operation tag) and tests MUST check them via errors.Is. No kernel panics on
// user-triggered error conditions; panics are reserved for option constructors.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for easy grepping. Kernels wrap
// with the operation tag via matrixErrorf(opX, ErrY); callers match with errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape/index -> NaN/Inf -> dimension mismatch -> numeric breakdown.

var (
	// ErrBadShape is returned when a requested shape is invalid (r<0 or c<0).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand dimensions,
	// e.g. a vector whose length differs from the matrix column count.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required (builder ingestion, pivots).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil matrix or factor (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrNotPositiveDefinite is returned when an LDLᵀ pivot is not strictly
	// positive (above the configured pivot tolerance).
	ErrNotPositiveDefinite = errors.New("matrix: matrix is not positive definite")

	// ErrBadPermutation indicates that a supplied ordering is not a permutation of 0..n-1.
	ErrBadPermutation = errors.New("matrix: invalid permutation")
)

// Operation tags used by matrixErrorf (no magic strings at call sites).
const (
	opNewBuilder  = "NewBuilder"
	opAdd         = "Builder.Add"
	opSetBlock    = "Builder.SetBlock"
	opSetDiag     = "Builder.SetDiag"
	opAt          = "Sparse.At"
	opMulVec      = "MulVec"
	opMulTransVec = "MulTransVec"
	opSymMulVec   = "SymMulVec"
	opSyrkUpper   = "SyrkUpper"
	opFactorize   = "Factorize"
	opSolve       = "Backsolver.Solve"
	opOrdering    = "Ordering"
)

// matrixErrorf wraps err with an operation tag: "<tag>: <err>".
// Complexity: O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
