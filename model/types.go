// SPDX-License-Identifier: MIT

// File: types.go
// Role: Kind, the sealed Node interface, the shared nodeBase, and sentinels.
//
// Every node carries two monotone counters. ValueVersion changes whenever the
// node's value (or, for derived nodes, any input value) changes; ParamVersion
// changes whenever a parameter that shapes the joint precision changes.
// Consumers cache derived artifacts against these counters.

package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Sentinel errors for model construction and mutation.
var (
	// ErrNilNode indicates that a nil node was supplied.
	ErrNilNode = errors.New("model: node is nil")

	// ErrDimensionMismatch indicates incompatible shapes.
	ErrDimensionMismatch = errors.New("model: dimension mismatch")

	// ErrInvalidValue indicates a NaN or ±Inf value or parameter.
	ErrInvalidValue = errors.New("model: invalid value")

	// ErrDuplicateNode indicates an ID collision inside a Network.
	ErrDuplicateNode = errors.New("model: duplicate node id")

	// ErrNodeNotFound indicates a lookup of an unknown ID.
	ErrNodeNotFound = errors.New("model: node not found")

	// ErrTermIndex indicates an invalid linear-combination term reference.
	ErrTermIndex = errors.New("model: invalid term index")
)

// Kind classifies nodes.
type Kind uint8

const (
	// KindNormal is a Gaussian with per-element (diagonal) precision.
	KindNormal Kind = iota + 1
	// KindMvNormal is a Gaussian parameterized by a dense precision matrix.
	KindMvNormal
	// KindMvNormalCov is a Gaussian parameterized by a dense covariance matrix.
	KindMvNormalCov
	// KindMvNormalChol is a Gaussian parameterized by a lower Cholesky factor of its covariance.
	KindMvNormalChol
	// KindValue is a non-Gaussian stochastic node (or a constant) that only
	// contributes its current value.
	KindValue
	// KindLinearCombination is a deterministic node Σ terms.
	KindLinearCombination
	// KindDeterministic is a deterministic node computed by an arbitrary function.
	KindDeterministic
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "Normal"
	case KindMvNormal:
		return "MvNormal"
	case KindMvNormalCov:
		return "MvNormalCov"
	case KindMvNormalChol:
		return "MvNormalChol"
	case KindValue:
		return "Value"
	case KindLinearCombination:
		return "LinearCombination"
	case KindDeterministic:
		return "Deterministic"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Gaussian reports whether k is one of the Gaussian stochastic kinds.
func (k Kind) Gaussian() bool {
	return k >= KindNormal && k <= KindMvNormalChol
}

// Stochastic reports whether k is a stochastic (Gaussian or Value) kind.
func (k Kind) Stochastic() bool {
	return k.Gaussian() || k == KindValue
}

// Node is a vertex of the model graph. The interface is sealed: only types in
// this package implement it.
//
// Concurrency: all methods are safe for concurrent use.
type Node interface {
	// ID returns the unique identifier.
	ID() string
	// Kind returns the node class.
	Kind() Kind
	// Dim returns the length of the node's value.
	Dim() int
	// Value returns a copy of the current value (computed for deterministic nodes).
	Value() []float64
	// ValueVersion changes whenever Value may have changed.
	ValueVersion() uint64
	// ParamVersion changes whenever a precision-shaping parameter changed.
	ParamVersion() uint64
	// Observed reports whether the value is fixed data.
	Observed() bool
	// Parents returns the nodes this node's distribution or value depends on.
	Parents() []Node
	// Children returns the nodes that list this node as a parent, sorted by ID.
	Children() []Node

	base() *nodeBase
}

// nodeBase holds the identity, counters and child links shared by all nodes.
type nodeBase struct {
	id  string
	dim int

	muChildren sync.RWMutex // guards children
	children   []Node

	valueVer atomic.Uint64
	paramVer atomic.Uint64
}

// init assigns identity in place; an empty id gets a random UUID.
func (b *nodeBase) init(id string, dim int) {
	if id == "" {
		id = uuid.NewString()
	}
	b.id, b.dim = id, dim
}

func (b *nodeBase) base() *nodeBase { return b }

// ID returns the unique identifier.
func (b *nodeBase) ID() string { return b.id }

// Dim returns the value length.
func (b *nodeBase) Dim() int { return b.dim }

// Children returns a snapshot of child nodes sorted by ID.
func (b *nodeBase) Children() []Node {
	b.muChildren.RLock()
	out := append([]Node(nil), b.children...)
	b.muChildren.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })

	return out
}

// addChild registers c once, regardless of how many times c references b.
func (b *nodeBase) addChild(c Node) {
	b.muChildren.Lock()
	defer b.muChildren.Unlock()
	for _, x := range b.children {
		if x == c {
			return
		}
	}
	b.children = append(b.children, c)
}

// checkFinite returns ErrInvalidValue when v holds NaN or ±Inf.
func checkFinite(v []float64) error {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ErrInvalidValue
		}
	}

	return nil
}

// broadcast returns v stretched to length d: a copy when len(v) == d, d copies
// of v[0] when len(v) == 1, zeros when v is empty.
func broadcast(v []float64, d int) ([]float64, error) {
	out := make([]float64, d)
	switch len(v) {
	case d:
		copy(out, v)
	case 0:
	case 1:
		for i := range out {
			out[i] = v[0]
		}
	default:
		return nil, ErrDimensionMismatch
	}

	return out, nil
}
