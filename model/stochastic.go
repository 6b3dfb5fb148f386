// SPDX-License-Identifier: MIT
// File: stochastic.go
// Role: Gaussian and non-Gaussian stochastic nodes.
//
// Determinism:
//   - Constructors never draw random numbers; the initial value is the supplied
//     WithValue, else the mean's current value.
//
// Concurrency:
//   - value and precision are guarded by mu; version counters are atomic.

package model

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Form tells how a Precision is parameterized.
type Form uint8

const (
	// FormDiagonal holds per-element precisions in Diag (length 1 broadcasts).
	FormDiagonal Form = iota + 1
	// FormPrecision holds a dense precision matrix.
	FormPrecision
	// FormCovariance holds a dense covariance matrix.
	FormCovariance
	// FormCovCholesky holds a lower-triangular σ with covariance σ·σᵀ.
	FormCovCholesky
)

// Precision is the (possibly indirect) precision parameter of a Gaussian node.
// Exactly one of Diag or Matrix is set, according to Form.
type Precision struct {
	Form   Form
	Diag   []float64
	Matrix *mat.Dense
}

// DiagPrecision returns a diagonal precision (tau of length 1 broadcasts).
func DiagPrecision(tau ...float64) Precision {
	return Precision{Form: FormDiagonal, Diag: append([]float64(nil), tau...)}
}

// DensePrecision returns a dense precision-matrix parameter.
func DensePrecision(tau mat.Matrix) Precision {
	return Precision{Form: FormPrecision, Matrix: mat.DenseCopyOf(tau)}
}

// Covariance returns a dense covariance parameter.
func Covariance(cov mat.Matrix) Precision {
	return Precision{Form: FormCovariance, Matrix: mat.DenseCopyOf(cov)}
}

// CovCholesky returns a covariance-Cholesky parameter (covariance σ·σᵀ).
func CovCholesky(sig mat.Matrix) Precision {
	return Precision{Form: FormCovCholesky, Matrix: mat.DenseCopyOf(sig)}
}

func (p Precision) clone() Precision {
	out := Precision{Form: p.Form, Diag: append([]float64(nil), p.Diag...)}
	if p.Matrix != nil {
		out.Matrix = mat.DenseCopyOf(p.Matrix)
	}

	return out
}

// kind maps a Form to the Gaussian Kind it induces.
func (p Precision) kind() Kind {
	switch p.Form {
	case FormDiagonal:
		return KindNormal
	case FormPrecision:
		return KindMvNormal
	case FormCovariance:
		return KindMvNormalCov
	case FormCovCholesky:
		return KindMvNormalChol
	default:
		return 0
	}
}

// validate checks the parameter shape against dimension d. Positive
// definiteness is not checked here.
func (p Precision) validate(d int) error {
	switch p.Form {
	case FormDiagonal:
		if len(p.Diag) != d && len(p.Diag) != 1 {
			return ErrDimensionMismatch
		}
		return checkFinite(p.Diag)
	case FormPrecision, FormCovariance, FormCovCholesky:
		if p.Matrix == nil {
			return ErrDimensionMismatch
		}
		r, c := p.Matrix.Dims()
		if r != d || c != d {
			return ErrDimensionMismatch
		}
		return checkFinite(p.Matrix.RawMatrix().Data)
	default:
		return ErrDimensionMismatch
	}
}

// Mean describes the expectation of a stochastic node: either another node's
// value (possibly broadcast from dimension 1) or a constant vector.
type Mean struct {
	node  Node
	value []float64
}

// MeanOf uses the value of n as the mean.
func MeanOf(n Node) Mean { return Mean{node: n} }

// MeanConst uses a constant mean (length 1 broadcasts, empty means zero).
func MeanConst(v ...float64) Mean { return Mean{value: append([]float64(nil), v...)} }

// Node returns the parent node, or nil for constant means.
func (m Mean) Node() Node { return m.node }

// Const returns a copy of the constant mean (nil when the mean is a node).
func (m Mean) Const() []float64 { return append([]float64(nil), m.value...) }

// NodeOption configures a stochastic node at construction.
type NodeOption func(*nodeConfig)

type nodeConfig struct {
	observed bool
	value    []float64
}

// WithObserved marks the node as observed data.
func WithObserved() NodeOption {
	return func(c *nodeConfig) { c.observed = true }
}

// WithValue sets the initial value. Panics on an empty value (programmer error).
func WithValue(v ...float64) NodeOption {
	if len(v) == 0 {
		panic("model: WithValue: empty value")
	}
	cp := append([]float64(nil), v...)

	return func(c *nodeConfig) { c.value = cp }
}

// Stochastic is a random node. Gaussian kinds carry a Mean and a Precision;
// KindValue nodes carry only a value.
type Stochastic struct {
	nodeBase

	kind     Kind
	mean     Mean
	observed bool

	mu    sync.RWMutex // guards value, prec
	value []float64
	prec  Precision
}

// NewNormal creates a Gaussian with diagonal precision tau (length dim or 1).
//
// Errors:
//   - ErrDimensionMismatch for dim < 1, a tau of wrong length, or an incompatible mean.
//   - ErrInvalidValue for non-finite inputs.
func NewNormal(id string, dim int, mu Mean, tau []float64, opts ...NodeOption) (*Stochastic, error) {
	return newGaussian(id, dim, mu, DiagPrecision(tau...), opts)
}

// NewMvNormal creates a Gaussian parameterized by its dense precision matrix.
func NewMvNormal(id string, mu Mean, tau mat.Matrix, opts ...NodeOption) (*Stochastic, error) {
	r, _ := tau.Dims()
	return newGaussian(id, r, mu, DensePrecision(tau), opts)
}

// NewMvNormalCov creates a Gaussian parameterized by its dense covariance matrix.
func NewMvNormalCov(id string, mu Mean, cov mat.Matrix, opts ...NodeOption) (*Stochastic, error) {
	r, _ := cov.Dims()
	return newGaussian(id, r, mu, Covariance(cov), opts)
}

// NewMvNormalChol creates a Gaussian whose covariance is sig·sigᵀ.
func NewMvNormalChol(id string, mu Mean, sig mat.Matrix, opts ...NodeOption) (*Stochastic, error) {
	r, _ := sig.Dims()
	return newGaussian(id, r, mu, CovCholesky(sig), opts)
}

// NewValue creates a non-Gaussian stochastic node holding value. It acts as a
// constant for Gaussian submodels.
func NewValue(id string, value []float64, opts ...NodeOption) (*Stochastic, error) {
	if len(value) == 0 {
		return nil, ErrDimensionMismatch
	}
	if err := checkFinite(value); err != nil {
		return nil, err
	}
	cfg := nodeConfig{}
	for _, o := range opts {
		o(&cfg)
	}
	s := &Stochastic{kind: KindValue, observed: cfg.observed, value: append([]float64(nil), value...)}
	s.init(id, len(value))

	return s, nil
}

func newGaussian(id string, dim int, mu Mean, prec Precision, opts []NodeOption) (*Stochastic, error) {
	if dim < 1 {
		return nil, ErrDimensionMismatch
	}
	if err := prec.validate(dim); err != nil {
		return nil, err
	}
	var start []float64
	var err error
	if mu.node != nil {
		if d := mu.node.Dim(); d != dim && d != 1 {
			return nil, ErrDimensionMismatch
		}
		if start, err = broadcast(mu.node.Value(), dim); err != nil {
			return nil, err
		}
	} else {
		if err = checkFinite(mu.value); err != nil {
			return nil, err
		}
		if start, err = broadcast(mu.value, dim); err != nil {
			return nil, err
		}
	}

	cfg := nodeConfig{}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.value != nil {
		if len(cfg.value) != dim {
			return nil, ErrDimensionMismatch
		}
		if err = checkFinite(cfg.value); err != nil {
			return nil, err
		}
		start = cfg.value
	}

	s := &Stochastic{
		kind:     prec.kind(),
		mean:     mu,
		observed: cfg.observed,
		value:    start,
		prec:     prec,
	}
	s.init(id, dim)
	if mu.node != nil {
		mu.node.base().addChild(s)
	}

	return s, nil
}

// Kind returns the node class.
func (s *Stochastic) Kind() Kind { return s.kind }

// Observed reports whether the node holds data.
func (s *Stochastic) Observed() bool { return s.observed }

// Mean returns the mean description (zero Mean for KindValue).
func (s *Stochastic) Mean() Mean { return s.mean }

// Parents returns the mean parent, if any.
func (s *Stochastic) Parents() []Node {
	if s.mean.node == nil {
		return nil
	}

	return []Node{s.mean.node}
}

// Value returns a copy of the current value.
func (s *Stochastic) Value() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]float64(nil), s.value...)
}

// SetValue replaces the current value and bumps ValueVersion.
// Errors: ErrDimensionMismatch, ErrInvalidValue.
func (s *Stochastic) SetValue(v []float64) error {
	if len(v) != s.dim {
		return ErrDimensionMismatch
	}
	if err := checkFinite(v); err != nil {
		return err
	}
	s.mu.Lock()
	copy(s.value, v)
	s.mu.Unlock()
	s.valueVer.Add(1)

	return nil
}

// ValueVersion returns the value counter.
func (s *Stochastic) ValueVersion() uint64 { return s.valueVer.Load() }

// ParamVersion returns the parameter counter.
func (s *Stochastic) ParamVersion() uint64 { return s.paramVer.Load() }

// Precision returns a deep copy of the precision parameter. For KindValue the
// zero Precision is returned.
func (s *Stochastic) Precision() Precision {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.prec.clone()
}

// SetPrecision replaces the precision parameter and bumps ParamVersion. The
// Form must match the node's Kind.
// Errors: ErrDimensionMismatch, ErrInvalidValue.
func (s *Stochastic) SetPrecision(p Precision) error {
	if !s.kind.Gaussian() || p.kind() != s.kind {
		return ErrDimensionMismatch
	}
	if err := p.validate(s.dim); err != nil {
		return err
	}
	s.mu.Lock()
	s.prec = p.clone()
	s.mu.Unlock()
	s.paramVer.Add(1)

	return nil
}
