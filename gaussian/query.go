// SPDX-License-Identifier: MIT
// File: query.go
// Role: Conditional Query Engine.
//
// For a query set S and evidence E (disjoint member sets), with R the members
// outside E and O = R \ S:
//
//	η'_G = η_G − τ_GE·x_E                       (canonical update, G ⊆ R)
//	O = ∅:  P = τ_SS,                            mean = P⁻¹ η'_S
//	O ≠ ∅:  P = τ_SS − τ_SO τ_OO⁻¹ τ_OS,         mean = P⁻¹ (η'_S − τ_SO τ_OO⁻¹ η'_O)
//
// The first case returns the sparse Backsolver over τ_SS; the second returns a
// DenseFactor over the Schur complement.

package gaussian

import (
	"fmt"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gaussnet/matrix"
	"github.com/katalvlaran/gaussnet/model"
)

// Conditional is the Gaussian distribution of a node set under a conditioning
// regime, in canonical form: a precision factor and a mean. Immutable.
type Conditional struct {
	nodes   []*model.Stochastic
	offsets map[*model.Stochastic]int
	mean    []float64
	factor  PrecisionFactor
}

func newConditional(g group, mean []float64, f PrecisionFactor) *Conditional {
	c := &Conditional{
		nodes:   g.nodes(),
		offsets: make(map[*model.Stochastic]int, len(g.entries)),
		mean:    mean,
		factor:  f,
	}
	var off int
	for _, e := range g.entries {
		c.offsets[e.node] = off
		off += e.dim
	}

	return c
}

// Nodes returns the query nodes in the order their blocks appear.
func (c *Conditional) Nodes() []*model.Stochastic { return append([]*model.Stochastic(nil), c.nodes...) }

// Dim returns the length of the conditional mean.
func (c *Conditional) Dim() int { return len(c.mean) }

// Mean returns a copy of the conditional mean.
func (c *Conditional) Mean() []float64 { return append([]float64(nil), c.mean...) }

// MeanOf returns the block of the mean belonging to n.
func (c *Conditional) MeanOf(n model.Node) ([]float64, error) {
	s, ok := n.(*model.Stochastic)
	if !ok {
		return nil, fmt.Errorf("%w: node is not part of the conditional", ErrInvalidQuery)
	}
	off, ok := c.offsets[s]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not part of the conditional", ErrInvalidQuery, s.ID())
	}

	return append([]float64(nil), c.mean[off:off+s.Dim()]...), nil
}

// Factor returns the precision factor handle.
func (c *Conditional) Factor() PrecisionFactor { return c.factor }

// LogDet returns log det of the conditional precision.
func (c *Conditional) LogDet() float64 { return c.factor.LogDet() }

// Covariance returns the dense conditional covariance P⁻¹, one squared solve
// per column. Intended for small node sets.
func (c *Conditional) Covariance() (*mat.SymDense, error) {
	n := c.Dim()
	cov := mat.NewSymDense(n, nil)
	e := make([]float64, n)
	var i, j int
	for j = 0; j < n; j++ {
		e[j] = 1
		col, err := c.factor.Solve(e, matrix.Upper, true)
		if err != nil {
			return nil, err
		}
		e[j] = 0
		for i = 0; i <= j; i++ {
			cov.SetSym(i, j, col[i])
		}
	}

	return cov, nil
}

// Sample draws mean + Upper(z) for standard-normal z from src.
func (c *Conditional) Sample(src rand.Source) ([]float64, error) {
	dx, err := c.factor.Solve(standardNormal(src, c.Dim()), matrix.Upper, false)
	if err != nil {
		return nil, err
	}
	for i := range dx {
		dx[i] += c.mean[i]
	}

	return dx, nil
}

// Posterior returns the distribution of nodes given every observed member.
//
// Errors: ErrInvalidQuery (empty set, non-members, repeats, observed nodes),
// ErrSingularSystem, and any refresh error.
func (s *Submodel) Posterior(nodes ...model.Node) (cond *Conditional, err error) {
	defer s.observe(opPosterior, time.Now(), &err)
	sg, err := s.queryGroup(opPosterior, nodes)
	if err != nil {
		return nil, err
	}
	var obs []*entry
	for _, e := range s.reg.entries {
		if e.node.Observed() {
			obs = append(obs, e)
		}
	}

	return s.conditional(opPosterior, sg, newGroup(obs))
}

// FullConditional returns the distribution of nodes given every other member.
func (s *Submodel) FullConditional(nodes ...model.Node) (cond *Conditional, err error) {
	defer s.observe(opFullCond, time.Now(), &err)
	sg, err := s.queryGroup(opFullCond, nodes)
	if err != nil {
		return nil, err
	}

	return s.conditional(opFullCond, sg, s.reg.complement(sg))
}

// Prior returns the joint prior marginal of nodes, conditioning on nothing
// inside the submodel.
func (s *Submodel) Prior(nodes ...model.Node) (cond *Conditional, err error) {
	defer s.observe(opPrior, time.Now(), &err)
	sg, err := s.queryGroup(opPrior, nodes)
	if err != nil {
		return nil, err
	}

	return s.conditional(opPrior, sg, group{})
}

// Conditional returns the distribution of nodes given the current values of
// evidence; members in neither set are marginalized out.
func (s *Submodel) Conditional(nodes, evidence []model.Node) (cond *Conditional, err error) {
	defer s.observe(opConditional, time.Now(), &err)
	sg, err := s.queryGroup(opConditional, nodes)
	if err != nil {
		return nil, err
	}
	eg, err := s.reg.group(evidence)
	if err != nil {
		return nil, gaussianErrorf(opConditional, err)
	}

	return s.conditional(opConditional, sg, eg)
}

func (s *Submodel) observe(op string, start time.Time, err *error) {
	s.cfg.metrics.recordQuery(op, start, *err)
}

func (s *Submodel) queryGroup(op string, nodes []model.Node) (group, error) {
	if len(nodes) == 0 {
		return group{}, gaussianErrorf(op, fmt.Errorf("%w: empty node set", ErrInvalidQuery))
	}
	g, err := s.reg.group(nodes)
	if err != nil {
		return group{}, gaussianErrorf(op, err)
	}

	return g, nil
}

// conditional runs the query engine for S given E.
func (s *Submodel) conditional(op string, sg, eg group) (*Conditional, error) {
	inE := make(map[*entry]bool, len(eg.entries))
	for _, e := range eg.entries {
		inE[e] = true
	}
	for _, e := range sg.entries {
		if inE[e] {
			return nil, gaussianErrorf(op, fmt.Errorf("%w: %q is both queried and evidence", ErrInvalidQuery, e.node.ID()))
		}
	}
	st, err := s.current()
	if err != nil {
		return nil, gaussianErrorf(op, err)
	}
	xE := eg.values()

	etaS, err := s.updatedEta(st, sg, eg, xE)
	if err != nil {
		return nil, gaussianErrorf(op, err)
	}
	og := s.reg.complement(eg, sg)
	if og.dim == 0 {
		role := blockQuery
		if sg.key() == s.changeable.key() {
			role = blockChangeable
		}
		bs, err := s.solver(st, sg, role)
		if err != nil {
			return nil, gaussianErrorf(op, err)
		}
		mean, err := bs.Solve(etaS, matrix.Upper, true)
		if err != nil {
			return nil, gaussianErrorf(op, err)
		}
		return newConditional(sg, mean, bs), nil
	}

	etaO, err := s.updatedEta(st, og, eg, xE)
	if err != nil {
		return nil, gaussianErrorf(op, err)
	}
	p, h, err := s.schur(st, sg, og, etaS, etaO)
	if err != nil {
		return nil, gaussianErrorf(op, err)
	}
	f, ok := newDenseFactor(p)
	if !ok {
		return nil, gaussianErrorf(op, fmt.Errorf("%w: marginal precision of %d nodes", ErrSingularSystem, len(sg.entries)))
	}
	mean, err := f.Solve(h, matrix.Upper, true)
	if err != nil {
		return nil, gaussianErrorf(op, err)
	}

	return newConditional(sg, mean, f), nil
}

// updatedEta returns η_G − τ_GE·x_E.
func (s *Submodel) updatedEta(st *state, g, eg group, xE []float64) ([]float64, error) {
	eta := g.gather(st.eta)
	if eg.dim == 0 {
		return eta, nil
	}
	cross, err := sliceCross(st.prec, s.reg.total, g, eg)
	if err != nil {
		return nil, err
	}
	y, err := matrix.MulVec(cross, xE)
	if err != nil {
		return nil, err
	}
	for i := range eta {
		eta[i] -= y[i]
	}

	return eta, nil
}

// schur marginalizes O out of the (S ∪ O) system:
// P = τ_SS − τ_SO τ_OO⁻¹ τ_OS and h = η_S − τ_SO τ_OO⁻¹ η_O.
func (s *Submodel) schur(st *state, sg, og group, etaS, etaO []float64) (*mat.SymDense, []float64, error) {
	bsO, err := s.solver(st, og, blockMarginal)
	if err != nil {
		return nil, nil, err
	}
	tSS, err := sliceSym(st.prec, s.reg.total, sg)
	if err != nil {
		return nil, nil, err
	}
	p, err := tSS.SymDense()
	if err != nil {
		return nil, nil, err
	}
	tSO, err := sliceCross(st.prec, s.reg.total, sg, og)
	if err != nil {
		return nil, nil, err
	}
	tOS := matrix.Transpose(tSO)

	// Column j of the correction is τ_SO τ_OO⁻¹ τ_OS[:, j].
	n := sg.dim
	corr := mat.NewDense(n, n, nil)
	col := make([]float64, og.dim)
	var i, j int
	for j = 0; j < n; j++ {
		rows, vals := tOS.Column(j)
		if len(rows) == 0 {
			continue
		}
		for i = range col {
			col[i] = 0
		}
		for k, r := range rows {
			col[r] = vals[k]
		}
		w, err := bsO.Solve(col, matrix.Upper, true)
		if err != nil {
			return nil, nil, err
		}
		c, err := matrix.MulVec(tSO, w)
		if err != nil {
			return nil, nil, err
		}
		corr.SetCol(j, c)
	}
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			p.SetSym(i, j, p.At(i, j)-0.5*(corr.At(i, j)+corr.At(j, i)))
		}
	}

	v, err := bsO.Solve(etaO, matrix.Upper, true)
	if err != nil {
		return nil, nil, err
	}
	hv, err := matrix.MulVec(tSO, v)
	if err != nil {
		return nil, nil, err
	}
	h := make([]float64, n)
	for i = range h {
		h[i] = etaS[i] - hv[i]
	}

	return p, h, nil
}
