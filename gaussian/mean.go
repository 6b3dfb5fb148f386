// SPDX-License-Identifier: MIT

package gaussian

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gaussnet/matrix"
)

// jointMean propagates means parents-first (reverse storage order):
// μ_c = Σ_p K_cp·μ_p + b_c, where b_c already holds every non-member value.
func jointMean(reg *registry, exps []expansion) []float64 {
	mu := make([]float64, reg.total)
	var (
		y  mat.VecDense
		i  int
		ok bool
		pe *entry
	)
	for idx := len(reg.entries) - 1; idx >= 0; idx-- {
		e := reg.entries[idx]
		out := mu[e.offset : e.offset+e.dim]
		copy(out, exps[idx].constant)
		for p, k := range exps[idx].links {
			if pe, ok = reg.lookup(p); !ok {
				continue
			}
			y.Reset()
			y.MulVec(k, mat.NewVecDense(pe.dim, mu[pe.offset:pe.offset+pe.dim]))
			for i = range out {
				out[i] += y.AtVec(i)
			}
		}
	}

	return mu
}

// canonicalMean returns η = τ·μ.
func canonicalMean(prec *matrix.Sparse, mu []float64) ([]float64, error) {
	return matrix.SymMulVec(prec, mu)
}
