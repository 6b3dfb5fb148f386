// SPDX-License-Identifier: MIT

package model

// Func computes a deterministic value from the parent values, in parent order.
type Func func(args [][]float64) []float64

// Deterministic is a node whose value is an arbitrary function of its parents.
// Gaussian submodels treat it as a constant when no member Gaussian feeds it,
// and reject it otherwise.
type Deterministic struct {
	nodeBase

	fn      Func
	parents []Node
}

// NewDeterministic builds a dim-dimensional node computing fn(parents...).
// fn is evaluated once to check that it returns dim finite values.
//
// Errors: ErrNilNode, ErrDimensionMismatch, ErrInvalidValue.
func NewDeterministic(id string, dim int, fn Func, parents ...Node) (*Deterministic, error) {
	if fn == nil {
		return nil, ErrNilNode
	}
	for _, p := range parents {
		if p == nil {
			return nil, ErrNilNode
		}
	}
	d := &Deterministic{fn: fn, parents: append([]Node(nil), parents...)}
	d.init(id, dim)
	v := d.eval()
	if dim < 1 || len(v) != dim {
		return nil, ErrDimensionMismatch
	}
	if err := checkFinite(v); err != nil {
		return nil, err
	}
	for _, p := range d.parents {
		p.base().addChild(d)
	}

	return d, nil
}

func (d *Deterministic) eval() []float64 {
	args := make([][]float64, len(d.parents))
	for i, p := range d.parents {
		args[i] = p.Value()
	}

	return d.fn(args)
}

// Kind returns KindDeterministic.
func (d *Deterministic) Kind() Kind { return KindDeterministic }

// Observed is always false.
func (d *Deterministic) Observed() bool { return false }

// Parents returns the function inputs.
func (d *Deterministic) Parents() []Node { return append([]Node(nil), d.parents...) }

// Value evaluates fn at the current parent values. A result of the wrong
// length yields zeros.
func (d *Deterministic) Value() []float64 {
	v := d.eval()
	if len(v) != d.dim {
		return make([]float64, d.dim)
	}

	return append([]float64(nil), v...)
}

// ValueVersion is the sum of the parents' value versions.
func (d *Deterministic) ValueVersion() uint64 {
	var v uint64
	for _, p := range d.parents {
		v += p.ValueVersion()
	}

	return v
}

// ParamVersion is always zero.
func (d *Deterministic) ParamVersion() uint64 { return 0 }
