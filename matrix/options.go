// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for sparse factorization.
// This file defines:
//   - FactorOption (functional options resolved into an unexported factorOptions),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherFactorOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, orderings break ties by index.
//   - No dead switches: each knob changes factorization behavior and is tested.
package matrix

import "fmt"

// Ordering selects the symmetric permutation applied before factorization.
type Ordering uint8

const (
	// OrderMinDegree eliminates, at every step, a vertex of minimum degree in the
	// current elimination graph (ties broken by smallest index). Fill-reducing.
	OrderMinDegree Ordering = iota
	// OrderNatural keeps the input order (identity permutation).
	OrderNatural
	// OrderReverse eliminates vertices in reverse index order. For matrices
	// stored children-first this is the parents-first order.
	OrderReverse
)

// String implements fmt.Stringer.
func (o Ordering) String() string {
	switch o {
	case OrderMinDegree:
		return "mindegree"
	case OrderNatural:
		return "natural"
	case OrderReverse:
		return "reverse"
	default:
		return fmt.Sprintf("Ordering(%d)", uint8(o))
	}
}

// ParseOrdering maps a textual name ("mindegree", "natural", "reverse") to an Ordering.
func ParseOrdering(s string) (Ordering, error) {
	switch s {
	case "", "mindegree", "min-degree", "amd":
		return OrderMinDegree, nil
	case "natural":
		return OrderNatural, nil
	case "reverse":
		return OrderReverse, nil
	default:
		return OrderMinDegree, fmt.Errorf("matrix: unknown ordering %q: %w", s, ErrBadPermutation)
	}
}

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultOrdering is the fill-reducing ordering used by Factorize.
	DefaultOrdering = OrderMinDegree

	// DefaultPivotTolerance is the smallest admissible LDLᵀ pivot. A pivot
	// d ≤ tolerance yields ErrNotPositiveDefinite.
	DefaultPivotTolerance = 0.0
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicOrderingInvalid  = "matrix: WithOrdering: unknown ordering"
	panicPivotTolInvalid  = "matrix: WithPivotTolerance: tolerance must be finite, non-negative"
	panicPermutationEmpty = "matrix: WithPermutation: permutation must be non-nil"
)

// FactorOption mutates factorization options. Safe to apply repeatedly.
type FactorOption func(*factorOptions)

type factorOptions struct {
	ordering Ordering
	perm     []int // explicit permutation; overrides ordering when non-nil
	pivotTol float64
}

// WithOrdering selects the fill-reducing ordering.
// Panics on an unknown Ordering value (programmer error).
func WithOrdering(o Ordering) FactorOption {
	if o > OrderReverse {
		panic(panicOrderingInvalid)
	}

	return func(f *factorOptions) { f.ordering = o }
}

// WithPermutation forces an explicit symmetric permutation: row/column k of the
// permuted matrix is row/column perm[k] of the input. It is validated by
// Factorize (ErrBadPermutation), not here, since n is unknown at this point.
func WithPermutation(perm []int) FactorOption {
	if perm == nil {
		panic(panicPermutationEmpty)
	}
	p := append([]int(nil), perm...)

	return func(f *factorOptions) { f.perm = p }
}

// WithPivotTolerance sets the smallest admissible pivot.
//
// Inputs:
//   - tol: non-negative finite value; pivots d ≤ tol fail with ErrNotPositiveDefinite.
//
// Errors:
//   - Panics with a stable message when tol is invalid.
//
// Notes:
//   - The default (0) accepts any strictly positive pivot. Raise it to reject
//     numerically semidefinite systems early.
func WithPivotTolerance(tol float64) FactorOption {
	if isNonFinite(tol) || tol < 0 {
		panic(panicPivotTolInvalid)
	}

	return func(f *factorOptions) { f.pivotTol = tol }
}

// gatherFactorOptions resolves defaults and applies opts in order.
func gatherFactorOptions(opts ...FactorOption) factorOptions {
	f := factorOptions{
		ordering: DefaultOrdering,
		pivotTol: DefaultPivotTolerance,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}

	return f
}
