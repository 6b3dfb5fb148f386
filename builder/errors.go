// SPDX-License-Identifier: MIT
// Package: gaussnet/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   • Implementations attach context with `%w` (see builderErrorf).
//   • Constructors MUST NOT panic at runtime; validation panics are confined
//     to option constructor functions (WithX...).

package builder

import (
	"errors"
	"fmt"
)

// ErrTooFewNodes indicates that a count parameter (n, groups, perGroup, p)
// is smaller than the allowed minimum for the requested constructor.
var ErrTooFewNodes = errors.New("builder: parameter too small")

// ErrBadDimension indicates a node dimension < 1.
var ErrBadDimension = errors.New("builder: invalid dimension")

// ErrBadIndex indicates an observed index outside [0, n).
var ErrBadIndex = errors.New("builder: index out of range")

// ErrConstructFailed indicates that a constructor could not create or register
// its nodes (nil constructor, model rejection, duplicate IDs).
var ErrConstructFailed = errors.New("builder: construction failed")

// builderErrorf prefixes err with the method name and a formatted context:
// "<Method>: <context>: <err>". The sentinel stays reachable via errors.Is.
func builderErrorf(method string, err error, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), err)
}
