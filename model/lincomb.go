// SPDX-License-Identifier: MIT
// File: lincomb.go
// Role: linear-combination nodes, the only deterministic nodes through which
// Gaussian values may flow into other Gaussian means.
//
// A LinearCombination of dimension d evaluates
//
//	Σ K_i·x_i  +  Σ a_j ⊙ b_j  +  Σ c_k
//
// where K_i is a d×dim(x_i) coefficient, ⊙ is an elementwise product with
// dimension-1 broadcasting, and c_k are constant offsets.
//
// Concurrency:
//   - terms are guarded by mu; coefficient and offset updates bump counters.

package model

import (
	"sync"
	"sync/atomic"

	"gonum.org/v1/gonum/mat"
)

// TermKind classifies linear-combination terms.
type TermKind uint8

const (
	// TermScaled is K·x.
	TermScaled TermKind = iota + 1
	// TermScaledRight is xᵀ·K, i.e. Kᵀ·x with K stored as dim(x)×d.
	TermScaledRight
	// TermProduct is the elementwise product a ⊙ b.
	TermProduct
	// TermOffset is a constant vector.
	TermOffset
)

// Term is one summand of a LinearCombination.
type Term struct {
	kind     TermKind
	coef     *mat.Dense // effective d×dim(a) coefficient (Scaled, ScaledRight)
	scalar   float64
	isScalar bool
	a, b     Node
	offset   []float64
}

// Scaled returns the term coef·n.
func Scaled(coef mat.Matrix, n Node) Term {
	return Term{kind: TermScaled, coef: mat.DenseCopyOf(coef), a: n}
}

// Scale returns c·n, expanded to c·I (same dimension) or a broadcast column
// c·1 (scalar n) when the combination is built.
func Scale(c float64, n Node) Term {
	return Term{kind: TermScaled, scalar: c, isScalar: true, a: n}
}

// ScaledRight returns nᵀ·coef, where coef is dim(n)×d.
func ScaledRight(n Node, coef mat.Matrix) Term {
	var t mat.Dense
	t.CloneFrom(coef.T())

	return Term{kind: TermScaledRight, coef: &t, a: n}
}

// Product returns the elementwise product a ⊙ b.
func Product(a, b Node) Term {
	return Term{kind: TermProduct, a: a, b: b}
}

// Offset returns a constant term (length 1 broadcasts).
func Offset(v ...float64) Term {
	return Term{kind: TermOffset, offset: append([]float64(nil), v...)}
}

// Kind returns the term class.
func (t Term) Kind() TermKind { return t.kind }

// Nodes returns the nodes referenced by the term, in order (two for products).
func (t Term) Nodes() []Node {
	switch t.kind {
	case TermScaled, TermScaledRight:
		return []Node{t.a}
	case TermProduct:
		return []Node{t.a, t.b}
	default:
		return nil
	}
}

// Coefficient returns a copy of the effective d×dim(x) coefficient of a
// Scaled or ScaledRight term (nil otherwise).
func (t Term) Coefficient() *mat.Dense {
	if t.coef == nil {
		return nil
	}

	return mat.DenseCopyOf(t.coef)
}

// OffsetValue returns a copy of a constant term's vector (nil otherwise).
func (t Term) OffsetValue() []float64 { return append([]float64(nil), t.offset...) }

func (t Term) clone() Term {
	out := t
	if t.coef != nil {
		out.coef = mat.DenseCopyOf(t.coef)
	}
	out.offset = append([]float64(nil), t.offset...)

	return out
}

// resolve validates t against dimension d and expands scalar coefficients
// and offsets.
func (t Term) resolve(d int) (Term, error) {
	switch t.kind {
	case TermScaled, TermScaledRight:
		if t.a == nil {
			return t, ErrNilNode
		}
		n := t.a.Dim()
		if t.isScalar {
			switch {
			case n == d:
				t.coef = mat.NewDense(d, d, nil)
				for i := 0; i < d; i++ {
					t.coef.Set(i, i, t.scalar)
				}
			case n == 1:
				col := make([]float64, d)
				for i := range col {
					col[i] = t.scalar
				}
				t.coef = mat.NewDense(d, 1, col)
			default:
				return t, ErrDimensionMismatch
			}
			t.isScalar = false
		}
		r, c := t.coef.Dims()
		if r != d || c != n {
			return t, ErrDimensionMismatch
		}
		return t, checkFinite(t.coef.RawMatrix().Data)
	case TermProduct:
		if t.a == nil || t.b == nil {
			return t, ErrNilNode
		}
		for _, x := range []Node{t.a, t.b} {
			if x.Dim() != d && x.Dim() != 1 {
				return t, ErrDimensionMismatch
			}
		}
		return t, nil
	case TermOffset:
		v, err := broadcast(t.offset, d)
		if err != nil {
			return t, err
		}
		t.offset = v
		return t, checkFinite(v)
	default:
		return t, ErrTermIndex
	}
}

// LinearCombination is a deterministic node formed from linear terms.
type LinearCombination struct {
	nodeBase

	mu       sync.RWMutex // guards terms
	terms    []Term
	parents  []Node
	constVer atomic.Uint64
}

// NewLinearCombination builds a dim-dimensional combination of terms and
// registers it as a child of every referenced node. Repeated references to the
// same node are accepted here; Gaussian submodels reject them.
//
// Errors: ErrDimensionMismatch, ErrNilNode, ErrInvalidValue.
func NewLinearCombination(id string, dim int, terms ...Term) (*LinearCombination, error) {
	if dim < 1 {
		return nil, ErrDimensionMismatch
	}
	lc := &LinearCombination{terms: make([]Term, 0, len(terms))}
	seen := make(map[Node]bool)
	for _, t := range terms {
		r, err := t.resolve(dim)
		if err != nil {
			return nil, err
		}
		lc.terms = append(lc.terms, r)
		for _, n := range r.Nodes() {
			if !seen[n] {
				seen[n] = true
				lc.parents = append(lc.parents, n)
			}
		}
	}
	lc.init(id, dim)
	for _, p := range lc.parents {
		p.base().addChild(lc)
	}

	return lc, nil
}

// Kind returns KindLinearCombination.
func (lc *LinearCombination) Kind() Kind { return KindLinearCombination }

// Observed is always false for deterministic nodes.
func (lc *LinearCombination) Observed() bool { return false }

// Parents returns the distinct referenced nodes in first-reference order.
func (lc *LinearCombination) Parents() []Node { return append([]Node(nil), lc.parents...) }

// Terms returns deep copies of the terms.
func (lc *LinearCombination) Terms() []Term {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	out := make([]Term, len(lc.terms))
	for i, t := range lc.terms {
		out[i] = t.clone()
	}

	return out
}

// Value evaluates the combination at the current parent values.
func (lc *LinearCombination) Value() []float64 {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	out := make([]float64, lc.dim)
	var i int
	for _, t := range lc.terms {
		switch t.kind {
		case TermScaled, TermScaledRight:
			var y mat.VecDense
			y.MulVec(t.coef, mat.NewVecDense(t.a.Dim(), t.a.Value()))
			for i = range out {
				out[i] += y.AtVec(i)
			}
		case TermProduct:
			av, _ := broadcast(t.a.Value(), lc.dim)
			bv, _ := broadcast(t.b.Value(), lc.dim)
			for i = range out {
				out[i] += av[i] * bv[i]
			}
		case TermOffset:
			for i = range out {
				out[i] += t.offset[i]
			}
		}
	}

	return out
}

// ValueVersion changes whenever any input value, coefficient or offset changes.
func (lc *LinearCombination) ValueVersion() uint64 {
	v := lc.paramVer.Load() + lc.constVer.Load()
	for _, p := range lc.parents {
		v += p.ValueVersion()
	}

	return v
}

// ParamVersion changes whenever a coefficient changes.
func (lc *LinearCombination) ParamVersion() uint64 { return lc.paramVer.Load() }

// ConstVersion changes whenever an offset changes.
func (lc *LinearCombination) ConstVersion() uint64 { return lc.constVer.Load() }

// SetCoefficient replaces the coefficient of term i, given in the same
// orientation as at construction (d×dim(x) for Scaled, dim(x)×d for
// ScaledRight), and bumps ParamVersion.
//
// Errors: ErrTermIndex, ErrDimensionMismatch, ErrInvalidValue.
func (lc *LinearCombination) SetCoefficient(i int, coef mat.Matrix) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if i < 0 || i >= len(lc.terms) {
		return ErrTermIndex
	}
	t := lc.terms[i]
	var next Term
	switch t.kind {
	case TermScaled:
		next = Scaled(coef, t.a)
	case TermScaledRight:
		next = ScaledRight(t.a, coef)
	default:
		return ErrTermIndex
	}
	r, err := next.resolve(lc.dim)
	if err != nil {
		return err
	}
	lc.terms[i] = r
	lc.paramVer.Add(1)

	return nil
}

// SetOffset replaces the vector of constant term i and bumps ConstVersion.
func (lc *LinearCombination) SetOffset(i int, v ...float64) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if i < 0 || i >= len(lc.terms) || lc.terms[i].kind != TermOffset {
		return ErrTermIndex
	}
	r, err := Offset(v...).resolve(lc.dim)
	if err != nil {
		return err
	}
	lc.terms[i] = r
	lc.constVer.Add(1)

	return nil
}
