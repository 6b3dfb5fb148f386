// SPDX-License-Identifier: MIT
// File: slicer.go
// Role: Block Slicer over the upper-stored joint precision.
//
// Only entries (i, j) with i ≤ j exist in τ. A group may list members in any
// order and need not be contiguous in storage, so each stored entry is mapped
// through the group positions and, where the requested block sits on the other
// side of the diagonal, mirrored.

package gaussian

import (
	"github.com/katalvlaran/gaussnet/matrix"
)

// sliceSym returns τ[g, g] stored by its upper triangle.
func sliceSym(prec *matrix.Sparse, total int, g group) (*matrix.Sparse, error) {
	pos := g.positions(total)
	b, err := matrix.NewBuilder(g.dim, g.dim)
	if err != nil {
		return nil, err
	}
	prec.Do(func(i, j int, v float64) {
		if err != nil || i > j {
			return
		}
		a, c := pos[i], pos[j]
		if a < 0 || c < 0 {
			return
		}
		if a > c {
			a, c = c, a
		}
		err = b.Set(a, c, v)
	})
	if err != nil {
		return nil, err
	}

	return b.Build(), nil
}

// sliceCross returns the full rectangular block τ[rows, cols].
func sliceCross(prec *matrix.Sparse, total int, rows, cols group) (*matrix.Sparse, error) {
	rpos, cpos := rows.positions(total), cols.positions(total)
	b, err := matrix.NewBuilder(rows.dim, cols.dim)
	if err != nil {
		return nil, err
	}
	prec.Do(func(i, j int, v float64) {
		if err != nil || i > j {
			return
		}
		if rpos[i] >= 0 && cpos[j] >= 0 {
			err = b.Set(rpos[i], cpos[j], v)
		}
		if err == nil && i != j && rpos[j] >= 0 && cpos[i] >= 0 {
			err = b.Set(rpos[j], cpos[i], v)
		}
	})
	if err != nil {
		return nil, err
	}

	return b.Build(), nil
}
