// SPDX-License-Identifier: MIT
// File: resolver.go
// Role: Dependency Resolver.
//
// Responsibilities:
//   - classify the supplied nodes into Gaussian members and linear combinations;
//   - reject graphs outside the linear-Gaussian class (*ShapeError);
//   - expand every member's mean through linear-combination indirection into
//     Σ K_cp·x_p + b_c over member parents p, where K_cp accumulates every path
//     from p to c and b_c collects all non-member contributions;
//   - order the members children-first and partition them into changeable and
//     fixed.
//
// The graph structure is immutable, so classification, checks and ordering run
// once. The expansion itself is re-run on every refresh because coefficients
// and constant inputs may change.

package gaussian

import (
	"context"
	"errors"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gaussnet/dfs"
	"github.com/katalvlaran/gaussnet/model"
)

// resolution is the structural result of resolve.
type resolution struct {
	order      []*model.Stochastic // storage order: children before mean parents
	changeable map[*model.Stochastic]bool
	parents    map[*model.Stochastic][]*model.Stochastic // effective member parents
	lcs        []*model.LinearCombination                // reached by some member mean
	inputs     []model.Node                              // non-member value inputs
}

// trace records what a mean expansion touched.
type trace struct {
	lcSeen    map[*model.LinearCombination]bool
	lcs       []*model.LinearCombination
	inputSeen map[model.Node]bool
	inputs    []model.Node
}

func newTrace() *trace {
	return &trace{
		lcSeen:    make(map[*model.LinearCombination]bool),
		inputSeen: make(map[model.Node]bool),
	}
}

func (t *trace) lc(lc *model.LinearCombination) {
	if t != nil && !t.lcSeen[lc] {
		t.lcSeen[lc] = true
		t.lcs = append(t.lcs, lc)
	}
}

func (t *trace) input(n model.Node) {
	if t != nil && !t.inputSeen[n] {
		t.inputSeen[n] = true
		t.inputs = append(t.inputs, n)
	}
}

// expansion is Σ K_cp·x_p + b_c for one member c.
type expansion struct {
	links    map[*model.Stochastic]*mat.Dense // K_cp, d_c × d_p
	constant []float64                        // b_c
}

// walker expands means. With a non-nil trace it also enforces the structural
// checks and records inputs; refreshes run it without one.
type walker struct {
	members map[*model.Stochastic]bool
	reach   map[model.Node]bool // memo for reachesMember
	trace   *trace

	child *model.Stochastic
	exp   expansion
}

func newWalker(members map[*model.Stochastic]bool, tr *trace) *walker {
	return &walker{members: members, reach: make(map[model.Node]bool), trace: tr}
}

// resolve classifies nodes, validates the graph and orders the members.
// ctx cancels the ordering walk.
func resolve(ctx context.Context, nodes []model.Node) (*resolution, error) {
	members := make(map[*model.Stochastic]bool)
	var (
		gaussians []*model.Stochastic
		listedLCs []*model.LinearCombination
	)
	for _, n := range nodes {
		switch x := n.(type) {
		case nil:
			return nil, model.ErrNilNode
		case *model.Stochastic:
			if !x.Kind().Gaussian() {
				return nil, shapeErrorf(x.ID(), "%s node cannot be a member", x.Kind())
			}
			if members[x] {
				return nil, shapeErrorf(x.ID(), "listed more than once")
			}
			members[x] = true
			gaussians = append(gaussians, x)
		case *model.LinearCombination:
			listedLCs = append(listedLCs, x)
		default:
			return nil, shapeErrorf(n.ID(), "%s node cannot be a member", n.Kind())
		}
	}
	if len(gaussians) == 0 {
		return nil, ErrNoMembers
	}

	tr := newTrace()
	w := newWalker(members, tr)
	for _, lc := range listedLCs {
		if err := w.checkTerms(lc); err != nil {
			return nil, err
		}
	}
	for _, g := range gaussians {
		if err := checkExtendedChildren(g); err != nil {
			return nil, err
		}
	}

	res := &resolution{
		changeable: make(map[*model.Stochastic]bool, len(gaussians)),
		parents:    make(map[*model.Stochastic][]*model.Stochastic, len(gaussians)),
	}
	byID := make(map[string]*model.Stochastic, len(gaussians))
	adj := make(dfs.Adjacency, len(gaussians))
	isParent := make(map[*model.Stochastic]bool)
	for _, c := range gaussians {
		exp, err := w.expand(c)
		if err != nil {
			return nil, err
		}
		ps := make([]*model.Stochastic, 0, len(exp.links))
		for p := range exp.links {
			ps = append(ps, p)
			isParent[p] = true
		}
		sort.Slice(ps, func(i, j int) bool { return ps[i].ID() < ps[j].ID() })
		res.parents[c] = ps
		ids := make([]string, len(ps))
		for i, p := range ps {
			ids[i] = p.ID()
		}
		adj[c.ID()] = ids
		if prev, ok := byID[c.ID()]; ok && prev != c {
			return nil, shapeErrorf(c.ID(), "two members share this id")
		}
		byID[c.ID()] = c
	}

	// Edges run child → parent, so the topological order is children-first.
	ids, err := dfs.TopologicalSort(adj, dfs.WithCancelContext(ctx))
	if err != nil {
		var ce *dfs.CycleError
		if errors.As(err, &ce) {
			return nil, shapeErrorf(ce.Vertex, "mean graph contains a cycle")
		}
		return nil, err
	}
	res.order = make([]*model.Stochastic, len(ids))
	for i, id := range ids {
		res.order[i] = byID[id]
	}
	for _, c := range gaussians {
		res.changeable[c] = !c.Observed() && !isParent[c]
	}
	res.lcs, res.inputs = tr.lcs, tr.inputs

	return res, nil
}

// expand computes Σ K_cp·x_p + b_c for member c.
func (w *walker) expand(c *model.Stochastic) (expansion, error) {
	d := c.Dim()
	w.child = c
	w.exp = expansion{links: make(map[*model.Stochastic]*mat.Dense), constant: make([]float64, d)}
	mu := c.Mean()
	m := mu.Node()
	if m == nil {
		copy(w.exp.constant, stretch(mu.Const(), d))
		return w.exp, nil
	}

	// Identity for equal dimensions, a ones column for a broadcast scalar.
	var a *mat.Dense
	if m.Dim() == d {
		a = identity(d)
	} else {
		a = mat.NewDense(d, 1, ones(d))
	}
	if err := w.node(m, a); err != nil {
		return expansion{}, err
	}

	return w.exp, nil
}

// node accumulates the contribution a·value(n) into the current expansion.
func (w *walker) node(n model.Node, a *mat.Dense) error {
	switch x := n.(type) {
	case *model.Stochastic:
		if w.members[x] {
			w.addLink(x, a)
			return nil
		}
		w.trace.input(x)
		w.addConst(a, x.Value())
		return nil

	case *model.LinearCombination:
		if w.trace != nil {
			if err := w.checkTerms(x); err != nil {
				return err
			}
		}
		w.trace.lc(x)
		for _, t := range x.Terms() {
			switch t.Kind() {
			case model.TermScaled, model.TermScaledRight:
				var next mat.Dense
				next.Mul(a, t.Coefficient())
				if err := w.node(t.Nodes()[0], &next); err != nil {
					return err
				}
			case model.TermProduct:
				ns := t.Nodes()
				w.trace.input(ns[0])
				w.trace.input(ns[1])
				w.addConst(a, product(ns[0].Value(), ns[1].Value(), x.Dim()))
			case model.TermOffset:
				w.addConst(a, t.OffsetValue())
			}
		}
		return nil

	default:
		if w.trace != nil && w.reachesMember(n) {
			return shapeErrorf(n.ID(), "non-linear transform of a member enters the mean of %q", w.child.ID())
		}
		w.trace.input(n)
		w.addConst(a, n.Value())
		return nil
	}
}

func (w *walker) addLink(p *model.Stochastic, a *mat.Dense) {
	if k, ok := w.exp.links[p]; ok {
		k.Add(k, a)
		return
	}
	w.exp.links[p] = mat.DenseCopyOf(a)
}

func (w *walker) addConst(a *mat.Dense, v []float64) {
	var y mat.VecDense
	y.MulVec(a, mat.NewVecDense(len(v), v))
	for i := range w.exp.constant {
		w.exp.constant[i] += y.AtVec(i)
	}
}

// checkTerms rejects repeated references and non-linear products in lc.
func (w *walker) checkTerms(lc *model.LinearCombination) error {
	seen := make(map[model.Node]bool)
	for _, t := range lc.Terms() {
		ns := t.Nodes()
		for _, n := range ns {
			if seen[n] {
				return shapeErrorf(lc.ID(), "node %q appears more than once", n.ID())
			}
			seen[n] = true
		}
		if t.Kind() != model.TermProduct {
			continue
		}
		if ns[0].Kind().Gaussian() && ns[1].Kind().Gaussian() {
			return shapeErrorf(lc.ID(), "product of gaussian nodes %q and %q", ns[0].ID(), ns[1].ID())
		}
		for _, n := range ns {
			if w.reachesMember(n) {
				return shapeErrorf(lc.ID(), "product term involves member gaussian %q", n.ID())
			}
		}
	}

	return nil
}

// reachesMember reports whether the value of n depends on a member's value.
// Non-member stochastic nodes cut the dependency.
func (w *walker) reachesMember(n model.Node) bool {
	if r, ok := w.reach[n]; ok {
		return r
	}
	var r bool
	if s, ok := n.(*model.Stochastic); ok {
		r = w.members[s]
	} else {
		w.reach[n] = false // the graph is acyclic; this only guards re-entry
		for _, p := range n.Parents() {
			if w.reachesMember(p) {
				r = true
				break
			}
		}
	}
	w.reach[n] = r

	return r
}

// checkExtendedChildren rejects a member whose value reaches a Gaussian
// through a generic deterministic transform.
func checkExtendedChildren(g *model.Stochastic) error {
	type visit struct {
		n   model.Node
		det string
	}
	seen := make(map[visit]bool)
	stack := make([]visit, 0, 8)
	for _, c := range g.Children() {
		stack = append(stack, visit{n: c})
	}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[v] {
			continue
		}
		seen[v] = true
		switch v.n.Kind() {
		case model.KindDeterministic:
			if v.det == "" {
				v.det = v.n.ID()
			}
		case model.KindLinearCombination:
		default:
			if v.det != "" && v.n.Kind().Gaussian() {
				return shapeErrorf(v.det, "non-linear transform of member %q feeds gaussian %q", g.ID(), v.n.ID())
			}
			continue
		}
		for _, c := range v.n.Children() {
			stack = append(stack, visit{n: c, det: v.det})
		}
	}

	return nil
}

// identity returns I_d.
func identity(d int) *mat.Dense {
	m := mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		m.Set(i, i, 1)
	}

	return m
}

func ones(d int) []float64 {
	v := make([]float64, d)
	for i := range v {
		v[i] = 1
	}

	return v
}

// stretch broadcasts v to length d (empty means zeros, length 1 repeats).
func stretch(v []float64, d int) []float64 {
	out := make([]float64, d)
	switch len(v) {
	case 0:
	case 1:
		for i := range out {
			out[i] = v[0]
		}
	default:
		copy(out, v)
	}

	return out
}

// product is the elementwise product of a and b, each broadcast to length d.
func product(a, b []float64, d int) []float64 {
	av, bv := stretch(a, d), stretch(b, d)
	for i := range av {
		av[i] *= bv[i]
	}

	return av
}
