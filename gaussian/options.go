// SPDX-License-Identifier: MIT
// Package gaussian: functional configuration for submodels.
// This file defines:
//   - Option (functional options resolved into an unexported config),
//   - documented defaults (constants),
//   - WithX constructors that panic on nonsensical values,
//   - newConfig helper (internal).

package gaussian

import (
	"log/slog"
	"math"

	"github.com/katalvlaran/gaussnet/matrix"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultSeed seeds the internal sampler; 0 selects defaultRNGSeed.
	DefaultSeed uint64 = 0

	// DefaultSymmetryTolerance is the largest admissible |a_ij − a_ji| of a
	// dense local precision or covariance, relative to max|a|.
	DefaultSymmetryTolerance = 1e-10

	// DefaultWarmupDraws is the number of DrawConditional calls made by New.
	DefaultWarmupDraws = 0

	// DefaultOrdering is the fill-reducing ordering of every sparse block.
	DefaultOrdering = matrix.DefaultOrdering

	// DefaultPivotTolerance is the smallest admissible LDLᵀ pivot.
	DefaultPivotTolerance = matrix.DefaultPivotTolerance
)

const (
	panicNilLogger     = "gaussian: WithLogger(nil)"
	panicNilMetrics    = "gaussian: WithMetrics(nil)"
	panicSymTolInvalid = "gaussian: WithSymmetryTolerance: tolerance must be finite, non-negative"
	panicPivotInvalid  = "gaussian: WithPivotTolerance: tolerance must be finite, non-negative"
	panicWarmupInvalid = "gaussian: WithWarmupDraws(n<0)"
	panicOrderInvalid  = "gaussian: WithOrdering: unknown ordering"
)

// Option customizes a Submodel at construction.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	metrics  *Collector
	seed     uint64
	symTol   float64
	pivotTol float64
	ordering matrix.Ordering
	warmup   int
}

// WithLogger routes debug records (resolution, assembly, refresh) to l.
// Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(c *config) { c.logger = l }
}

// WithMetrics records refreshes, factorizations and queries on m.
// Panics on nil.
func WithMetrics(m *Collector) Option {
	if m == nil {
		panic(panicNilMetrics)
	}

	return func(c *config) { c.metrics = m }
}

// WithSeed seeds the sampler used by DrawConditional.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = seed }
}

// WithOrdering selects the fill-reducing ordering of every factored block.
func WithOrdering(o matrix.Ordering) Option {
	if o > matrix.OrderReverse {
		panic(panicOrderInvalid)
	}

	return func(c *config) { c.ordering = o }
}

// WithSymmetryTolerance sets the relative asymmetry accepted in dense local
// parameters. Asymmetry above it yields ErrNonPositiveDefinite.
func WithSymmetryTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicSymTolInvalid)
	}

	return func(c *config) { c.symTol = tol }
}

// WithPivotTolerance sets the smallest admissible pivot of sparse factorizations.
func WithPivotTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicPivotInvalid)
	}

	return func(c *config) { c.pivotTol = tol }
}

// WithWarmupDraws makes New call DrawConditional n times before returning.
func WithWarmupDraws(n int) Option {
	if n < 0 {
		panic(panicWarmupInvalid)
	}

	return func(c *config) { c.warmup = n }
}

func newConfig(opts ...Option) config {
	c := config{
		logger:   slog.New(slog.DiscardHandler),
		seed:     DefaultSeed,
		symTol:   DefaultSymmetryTolerance,
		pivotTol: DefaultPivotTolerance,
		ordering: DefaultOrdering,
		warmup:   DefaultWarmupDraws,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

// factorOptions translates the config into matrix factorization options.
func (c config) factorOptions() []matrix.FactorOption {
	return []matrix.FactorOption{
		matrix.WithOrdering(c.ordering),
		matrix.WithPivotTolerance(c.pivotTol),
	}
}
