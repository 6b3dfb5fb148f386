// SPDX-License-Identifier: MIT

package gaussian

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"

	"golang.org/x/sync/singleflight"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gaussnet/matrix"
	"github.com/katalvlaran/gaussnet/model"
)

// Submodel is the joint Gaussian distribution of a set of member nodes whose
// means are linear in one another. It owns the sparse joint factor and every
// factorization derived from it, and recomputes them when member parameters
// or constant inputs change.
//
// All methods are safe for concurrent use.
type Submodel struct {
	cfg     config
	log     *slog.Logger
	res     *resolution
	reg     *registry
	members map[*model.Stochastic]bool

	changeable group
	fixed      group

	mu sync.RWMutex // guards st
	st *state
	sf singleflight.Group

	rngMu sync.Mutex // guards rng
	rng   *rand.Rand
}

// New builds the submodel over nodes. Gaussian stochastic nodes become
// members; linear-combination nodes may be listed and are validated, but only
// Gaussians occupy rows of the joint precision. Anything else reached by a
// member's mean is treated as a constant input.
//
// Construction is eager: the joint factor is assembled and the block of
// changeable members factored before New returns.
//
// Errors:
//   - ErrNoMembers when nodes holds no Gaussian.
//   - ErrModelShape (*ShapeError) when the graph is not linear-Gaussian.
//   - ErrNonPositiveDefinite when a local precision is not SPD.
//   - ErrSingularSystem when the changeable block cannot be factored.
func New(nodes []model.Node, opts ...Option) (*Submodel, error) {
	return NewContext(context.Background(), nodes, opts...)
}

// NewContext is New with a context that cancels the ordering walk and any
// warm-up draws still pending. The error then wraps ctx.Err().
func NewContext(ctx context.Context, nodes []model.Node, opts ...Option) (*Submodel, error) {
	cfg := newConfig(opts...)
	res, err := resolve(ctx, nodes)
	if err != nil {
		return nil, gaussianErrorf(opNew, err)
	}

	s := &Submodel{
		cfg:     cfg,
		log:     cfg.logger,
		res:     res,
		reg:     newRegistry(res.order),
		members: make(map[*model.Stochastic]bool, len(res.order)),
		rng:     rngFromSeed(cfg.seed),
	}
	var ch, fx []*entry
	for _, e := range s.reg.entries {
		s.members[e.node] = true
		if res.changeable[e.node] {
			ch = append(ch, e)
		} else {
			fx = append(fx, e)
		}
	}
	s.changeable, s.fixed = newGroup(ch), newGroup(fx)

	st, err := s.current()
	if err != nil {
		return nil, gaussianErrorf(opNew, err)
	}
	if s.changeable.dim > 0 {
		if _, err = s.solver(st, s.changeable, blockChangeable); err != nil {
			return nil, gaussianErrorf(opNew, err)
		}
	}
	s.log.Debug("gaussian: submodel built",
		"members", len(s.reg.entries), "dim", s.reg.total,
		"changeable", len(ch), "fixed", len(fx), "linear_combinations", len(res.lcs))

	for i := 0; i < cfg.warmup; i++ {
		if err = ctx.Err(); err != nil {
			return nil, gaussianErrorf(opNew, err)
		}
		if err = s.DrawConditional(); err != nil {
			return nil, gaussianErrorf(opNew, err)
		}
	}

	return s, nil
}

// Dim returns the total dimension of the joint vector.
func (s *Submodel) Dim() int { return s.reg.total }

// Order returns the members in storage order (children before mean parents).
func (s *Submodel) Order() []*model.Stochastic { return newGroup(s.reg.entries).nodes() }

// Changeable returns the members sampled by DrawConditional, in storage order.
func (s *Submodel) Changeable() []*model.Stochastic { return s.changeable.nodes() }

// Fixed returns the members DrawConditional conditions on, in storage order.
func (s *Submodel) Fixed() []*model.Stochastic { return s.fixed.nodes() }

// Offset returns the first joint index of member n.
func (s *Submodel) Offset(n model.Node) (int, bool) {
	e, ok := s.reg.lookup(n)
	if !ok {
		return 0, false
	}

	return e.offset, true
}

// JointFactor returns the upper-triangular τ_chol, with τ = τ_cholᵀ·τ_chol.
func (s *Submodel) JointFactor() (*matrix.Sparse, error) {
	st, err := s.current()
	if err != nil {
		return nil, err
	}

	return st.chol, nil
}

// JointPrecision returns τ stored by its upper triangle.
func (s *Submodel) JointPrecision() (*matrix.Sparse, error) {
	st, err := s.current()
	if err != nil {
		return nil, err
	}

	return st.prec, nil
}

// DensePrecision expands τ. Intended for diagnostics on small models.
func (s *Submodel) DensePrecision() (*mat.SymDense, error) {
	st, err := s.current()
	if err != nil {
		return nil, err
	}

	return st.prec.SymDense()
}

// JointMean returns the prior mean μ in storage order.
func (s *Submodel) JointMean() ([]float64, error) {
	st, err := s.current()
	if err != nil {
		return nil, err
	}

	return append([]float64(nil), st.mean...), nil
}

// CanonicalMean returns η = τ·μ in storage order.
func (s *Submodel) CanonicalMean() ([]float64, error) {
	st, err := s.current()
	if err != nil {
		return nil, err
	}

	return append([]float64(nil), st.eta...), nil
}

// PrecisionBlock returns τ[rows, cols] in full (not upper-stored), with rows
// and columns laid out in the order the nodes are given.
//
// Errors: ErrInvalidQuery for non-members or repeated nodes.
func (s *Submodel) PrecisionBlock(rows, cols []model.Node) (*matrix.Sparse, error) {
	rg, err := s.reg.group(rows)
	if err != nil {
		return nil, gaussianErrorf(opBlock, err)
	}
	cg, err := s.reg.group(cols)
	if err != nil {
		return nil, gaussianErrorf(opBlock, err)
	}
	st, err := s.current()
	if err != nil {
		return nil, gaussianErrorf(opBlock, err)
	}
	out, err := sliceCross(st.prec, s.reg.total, rg, cg)
	if err != nil {
		return nil, gaussianErrorf(opBlock, err)
	}

	return out, nil
}
