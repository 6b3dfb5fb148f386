// SPDX-License-Identifier: MIT
// File: state.go
// Role: derived-state cache and invalidation.
//
// A state is an immutable snapshot of every derived artifact, tagged with two
// stamps:
//   - paramStamp: ParamVersion of every member and every reached linear
//     combination. It guards local factors, τ_chol, τ and cached factorizations.
//   - valueStamp: ValueVersion of every non-member input and ConstVersion of
//     every reached linear combination. It guards μ and η.
//
// Counters only grow, so a sum changes whenever any counter does.
//
// Concurrency:
//   - the current *state pointer is guarded by Submodel.mu; readers keep the
//     snapshot they loaded, refreshes publish a new one;
//   - concurrent refreshes are coalesced by singleflight; a joined refresh
//     older than the caller's stamps is retried;
//   - the solver cache is shared by states with equal paramStamp.

package gaussian

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/gaussnet/matrix"
)

const refreshKey = "refresh"

// Factorization roles recorded by the metrics.
const (
	blockChangeable = "changeable"
	blockQuery      = "query"
	blockMarginal   = "marginal"
)

type state struct {
	paramStamp uint64
	valueStamp uint64

	exps    []expansion
	factors []localFactor
	chol    *matrix.Sparse
	prec    *matrix.Sparse
	mean    []float64
	eta     []float64

	solvers *solverCache
}

type solverCache struct {
	mu sync.Mutex
	m  map[string]*matrix.Backsolver
}

func (s *Submodel) paramStamp() uint64 {
	var v uint64
	for _, e := range s.reg.entries {
		v += e.node.ParamVersion()
	}
	for _, lc := range s.res.lcs {
		v += lc.ParamVersion()
	}

	return v
}

func (s *Submodel) valueStamp() uint64 {
	var v uint64
	for _, n := range s.res.inputs {
		v += n.ValueVersion()
	}
	for _, lc := range s.res.lcs {
		v += lc.ConstVersion()
	}

	return v
}

// current returns an up-to-date state, refreshing it when a stamp moved.
//
// A caller may join a refresh that read its stamps before the caller's own
// mutation; such a result is older than ps/vs and the caller refreshes again.
// Stamps are sums of growing counters, so a state with both stamps at least
// ps and vs was built after every change the caller observed.
func (s *Submodel) current() (*state, error) {
	for {
		ps, vs := s.paramStamp(), s.valueStamp()
		s.mu.RLock()
		st := s.st
		s.mu.RUnlock()
		if st != nil && st.paramStamp == ps && st.valueStamp == vs {
			return st, nil
		}
		v, err, _ := s.sf.Do(refreshKey, func() (any, error) { return s.refresh() })
		if err != nil {
			return nil, err
		}
		if st = v.(*state); st.paramStamp >= ps && st.valueStamp >= vs {
			return st, nil
		}
	}
}

// refresh rebuilds what is stale and publishes the result.
func (s *Submodel) refresh() (*state, error) {
	ps, vs := s.paramStamp(), s.valueStamp()
	s.mu.RLock()
	prev := s.st
	s.mu.RUnlock()
	if prev != nil && prev.paramStamp == ps && prev.valueStamp == vs {
		return prev, nil
	}

	next := &state{paramStamp: ps, valueStamp: vs, exps: make([]expansion, len(s.reg.entries))}
	w := newWalker(s.members, nil)
	var err error
	for i, e := range s.reg.entries {
		if next.exps[i], err = w.expand(e.node); err != nil {
			return nil, gaussianErrorf(opRefresh, err)
		}
	}

	kind := refreshValues
	if prev != nil && prev.paramStamp == ps {
		next.factors, next.chol, next.prec, next.solvers = prev.factors, prev.chol, prev.prec, prev.solvers
	} else {
		kind = refreshParams
		next.factors = make([]localFactor, len(s.reg.entries))
		for i, e := range s.reg.entries {
			if next.factors[i], err = newLocalFactor(e.node, s.cfg.symTol); err != nil {
				return nil, gaussianErrorf(opLocalFactor, err)
			}
		}
		if next.chol, next.prec, err = assemble(s.reg, next.factors, next.exps); err != nil {
			return nil, err
		}
		next.solvers = &solverCache{m: make(map[string]*matrix.Backsolver)}
		s.cfg.metrics.setNNZ("joint_factor", next.chol.NNZ())
		s.cfg.metrics.setNNZ("joint_precision", next.prec.NNZ())
	}

	next.mean = jointMean(s.reg, next.exps)
	if next.eta, err = canonicalMean(next.prec, next.mean); err != nil {
		return nil, gaussianErrorf(opRefresh, err)
	}

	s.mu.Lock()
	s.st = next
	s.mu.Unlock()
	s.cfg.metrics.recordRefresh(kind)
	s.log.Debug("gaussian: refreshed derived state",
		"kind", kind, "dim", s.reg.total, "factor_nnz", next.chol.NNZ(), "precision_nnz", next.prec.NNZ())

	return next, nil
}

// solver returns the cached factorization of τ[g, g], factoring on a miss.
//
// Errors: ErrSingularSystem when the block is not numerically positive definite.
func (s *Submodel) solver(st *state, g group, role string) (*matrix.Backsolver, error) {
	key := g.key()
	st.solvers.mu.Lock()
	bs, ok := st.solvers.m[key]
	st.solvers.mu.Unlock()
	if ok {
		return bs, nil
	}

	block, err := sliceSym(st.prec, s.reg.total, g)
	if err != nil {
		return nil, err
	}
	bs, err = matrix.Factorize(block, s.cfg.factorOptions()...)
	s.cfg.metrics.recordFactorization(role, err)
	if err != nil {
		return nil, fmt.Errorf("%w: %s block: %w", ErrSingularSystem, role, err)
	}
	s.cfg.metrics.setNNZ(role, bs.NNZ())
	s.log.Debug("gaussian: factored block", "role", role, "dim", bs.Dim(), "nnz", bs.NNZ())

	st.solvers.mu.Lock()
	if prev, ok := st.solvers.m[key]; ok {
		bs = prev
	} else {
		st.solvers.m[key] = bs
	}
	st.solvers.mu.Unlock()

	return bs, nil
}
