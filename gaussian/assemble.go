// SPDX-License-Identifier: MIT
// File: assemble.go
// Role: Sparse Joint Factor Assembler.
//
// Block-row c of the joint factor holds R_c on the diagonal and −R_c·K_cp at
// every member parent p. Storage order puts children first, so every parent
// block lies right of the diagonal and the matrix is upper triangular. Each
// block-row is R_c·(x_c − Σ K_cp x_p), hence τ = τ_cholᵀ·τ_chol is the joint
// precision and τ_chol is its Cholesky factor. τ itself comes from a sparse
// symmetric rank update; no dense product is formed.

package gaussian

import (
	"fmt"

	"github.com/katalvlaran/gaussnet/matrix"
)

// assemble builds τ_chol and the upper-stored τ.
func assemble(reg *registry, factors []localFactor, exps []expansion) (chol, prec *matrix.Sparse, err error) {
	b, err := matrix.NewBuilder(reg.total, reg.total)
	if err != nil {
		return nil, nil, gaussianErrorf(opAssemble, err)
	}
	for i, e := range reg.entries {
		f := factors[i]
		if f.diagonal() {
			err = b.SetDiag(e.offset, f.diag)
		} else {
			err = b.SetBlock(e.offset, e.offset, f.upper)
		}
		if err != nil {
			return nil, nil, gaussianErrorf(opAssemble, err)
		}
		for p, k := range exps[i].links {
			pe, ok := reg.lookup(p)
			if !ok || pe.index <= e.index {
				return nil, nil, gaussianErrorf(opAssemble,
					shapeErrorf(p.ID(), "parent of %q is out of storage order", e.node.ID()))
			}
			if err = b.SetBlock(e.offset, pe.offset, couplingBlock(f, k)); err != nil {
				return nil, nil, gaussianErrorf(opAssemble, fmt.Errorf("%w: coupling %q→%q: %w",
					ErrSingularSystem, p.ID(), e.node.ID(), err))
			}
		}
	}
	chol = b.Build()
	if prec, err = matrix.SyrkUpper(chol); err != nil {
		return nil, nil, gaussianErrorf(opAssemble, fmt.Errorf("%w: %w", ErrSingularSystem, err))
	}

	return chol, prec, nil
}
