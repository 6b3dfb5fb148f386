// SPDX-License-Identifier: MIT
// Package gaussian: sentinel error set.
// Every failure surfaced by a Submodel matches exactly one of the sentinels
// below via errors.Is. Nothing is retried and nothing is partially applied:
// a failed construction returns no Submodel, a failed draw leaves every node
// value untouched.

package gaussian

import (
	"errors"
	"fmt"
)

var (
	// ErrModelShape reports a graph that violates the linear-Gaussian
	// structural constraints. The concrete error is a *ShapeError.
	ErrModelShape = errors.New("gaussian: model shape")

	// ErrNonPositiveDefinite reports a declared local precision, covariance or
	// covariance factor that is not symmetric positive definite.
	ErrNonPositiveDefinite = errors.New("gaussian: local precision is not positive definite")

	// ErrSingularSystem reports an assembled precision block whose numeric
	// factorization failed.
	ErrSingularSystem = errors.New("gaussian: singular system")

	// ErrInvalidQuery reports a query over nodes that are not Gaussian
	// members, repeated nodes, or overlapping query and evidence sets.
	ErrInvalidQuery = errors.New("gaussian: invalid query")

	// ErrInvalidConfig reports a configuration document with unknown keys or
	// out-of-range values.
	ErrInvalidConfig = errors.New("gaussian: invalid config")

	// ErrNoMembers is returned by New when no Gaussian member was supplied.
	ErrNoMembers = errors.New("gaussian: no gaussian members")
)

// ShapeError names the node that breaks the structural constraints.
type ShapeError struct {
	Node   string
	Reason string
}

// Error implements error.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("gaussian: model shape: node %q: %s", e.Node, e.Reason)
}

// Unwrap makes errors.Is(err, ErrModelShape) hold.
func (e *ShapeError) Unwrap() error { return ErrModelShape }

func shapeErrorf(node, format string, args ...any) error {
	return &ShapeError{Node: node, Reason: fmt.Sprintf(format, args...)}
}

// Operation tags used by gaussianErrorf.
const (
	opNew         = "New"
	opRefresh     = "refresh"
	opLocalFactor = "localFactor"
	opAssemble    = "assemble"
	opPosterior   = "Posterior"
	opFullCond    = "FullConditional"
	opPrior       = "Prior"
	opConditional = "Conditional"
	opDraw        = "DrawConditional"
	opBlock       = "PrecisionBlock"
	opLoadConfig  = "LoadConfig"
)

// gaussianErrorf wraps err with an operation tag: "<tag>: <err>".
func gaussianErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
