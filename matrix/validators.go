// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating shape/nil/index checks here.
//  - Return sentinel errors tagged by validatorErrorf so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure and allocate nothing (except ValidatePermutation's mark slice).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// isNonFinite reports whether x is NaN or ±Inf.
func isNonFinite(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}

// ValidateNotNil ensures the sparse matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(s *Sparse) error {
	if s == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that s is non-nil and square.
// Complexity: O(1).
func ValidateSquare(s *Sparse) error {
	if err := ValidateNotNil(s); err != nil {
		return validatorErrorf("ValidateSquare", err)
	}
	if s.r != s.c {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// Time: O(1). Space: O(1).
func ValidateVecLen(x []float64, n int) error {
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateIndex ensures 0 ≤ i < r and 0 ≤ j < c.
func ValidateIndex(i, j, r, c int) error {
	if i < 0 || i >= r || j < 0 || j >= c {
		return validatorErrorf("ValidateIndex", ErrOutOfRange)
	}

	return nil
}

// ValidatePermutation checks that perm is a permutation of 0..n-1.
// Complexity: O(n) time, O(n) space.
func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return validatorErrorf("ValidatePermutation", ErrBadPermutation)
	}
	seen := make([]bool, n)
	for _, p := range perm {
		if p < 0 || p >= n || seen[p] {
			return validatorErrorf("ValidatePermutation", ErrBadPermutation)
		}
		seen[p] = true
	}

	return nil
}
