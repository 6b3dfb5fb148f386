// SPDX-License-Identifier: MIT
// Package builder provides validation helpers to enforce
// parameter contracts in Constructor factories.
//
// Each function returns a sentinel wrapped via builderErrorf
// when its precondition is violated.
package builder

// validateMin ensures that the count got is ≥ min.
// Returns "<Method>: <name>=<got> < min=<min>: ErrTooFewNodes" otherwise.
func validateMin(method, name string, got, min int) error {
	if got < min {
		return builderErrorf(method, ErrTooFewNodes, "%s=%d < min=%d", name, got, min)
	}

	return nil
}

// validateDim ensures that dim ≥ MinDim.
func validateDim(method string, dim int) error {
	if dim < MinDim {
		return builderErrorf(method, ErrBadDimension, "dim=%d", dim)
	}

	return nil
}

// validateIndices ensures every index lies in [0, n).
func validateIndices(method string, idx []int, n int) error {
	for _, i := range idx {
		if i < 0 || i >= n {
			return builderErrorf(method, ErrBadIndex, "index %d not in [0,%d)", i, n)
		}
	}

	return nil
}
