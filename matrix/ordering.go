// SPDX-License-Identifier: MIT

// Package matrix: fill-reducing orderings for symmetric factorization.
//
// MinimumDegree implements the classical minimum-degree heuristic on the
// elimination graph: repeatedly eliminate a vertex of smallest current degree,
// turning its neighborhood into a clique. A lazy binary heap keyed by
// (degree, index) provides the selection; stale heap entries are skipped when
// popped. Ties are broken by the smallest index, so the result is deterministic.
package matrix

import (
	"container/heap"
	"sort"
)

type degreeItem struct {
	v   int
	deg int
}

// degreeHeap is a min-heap ordered by (deg, v).
type degreeHeap []degreeItem

func (h degreeHeap) Len() int { return len(h) }
func (h degreeHeap) Less(a, b int) bool {
	if h[a].deg != h[b].deg {
		return h[a].deg < h[b].deg
	}
	return h[a].v < h[b].v
}
func (h degreeHeap) Swap(a, b int) { h[a], h[b] = h[b], h[a] }
func (h *degreeHeap) Push(x any)   { *h = append(*h, x.(degreeItem)) }
func (h *degreeHeap) Pop() any {
	old := *h
	it := old[len(old)-1]
	*h = old[:len(old)-1]
	return it
}

// MinimumDegree returns an elimination order for the symmetric sparsity pattern
// of a. Both triangles are read, so a may be stored full or upper-only; the
// diagonal is ignored. perm[k] is the original index eliminated at step k.
//
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(Σ_k deg_k² · log n) in the worst case; near-linear for the
// chain- and tree-like patterns produced by directed Gaussian networks.
func MinimumDegree(a *Sparse) ([]int, error) {
	if err := ValidateSquare(a); err != nil {
		return nil, matrixErrorf(opOrdering, err)
	}
	n := a.r
	adj := make([]map[int]struct{}, n)
	var v int
	for v = 0; v < n; v++ {
		adj[v] = make(map[int]struct{})
	}
	a.Do(func(i, j int, _ float64) {
		if i != j {
			adj[i][j] = struct{}{}
			adj[j][i] = struct{}{}
		}
	})

	h := make(degreeHeap, 0, n)
	for v = 0; v < n; v++ {
		h = append(h, degreeItem{v: v, deg: len(adj[v])})
	}
	heap.Init(&h)

	perm := make([]int, 0, n)
	eliminated := make([]bool, n)
	nbrs := make([]int, 0, 8)
	var p, q int
	for h.Len() > 0 {
		it := heap.Pop(&h).(degreeItem)
		if eliminated[it.v] || it.deg != len(adj[it.v]) {
			continue // stale
		}
		v = it.v
		eliminated[v] = true
		perm = append(perm, v)

		nbrs = nbrs[:0]
		for u := range adj[v] {
			nbrs = append(nbrs, u)
		}
		sort.Ints(nbrs)
		for _, u := range nbrs {
			delete(adj[u], v)
		}
		for p = 0; p < len(nbrs); p++ {
			for q = p + 1; q < len(nbrs); q++ {
				adj[nbrs[p]][nbrs[q]] = struct{}{}
				adj[nbrs[q]][nbrs[p]] = struct{}{}
			}
		}
		for _, u := range nbrs {
			heap.Push(&h, degreeItem{v: u, deg: len(adj[u])})
		}
		adj[v] = nil
	}

	return perm, nil
}

// resolvePermutation picks the symmetric permutation for a according to f.
func resolvePermutation(a *Sparse, f factorOptions) ([]int, error) {
	n := a.r
	if f.perm != nil {
		if err := ValidatePermutation(f.perm, n); err != nil {
			return nil, matrixErrorf(opOrdering, err)
		}
		return append([]int(nil), f.perm...), nil
	}
	perm := make([]int, n)
	var k int
	switch f.ordering {
	case OrderNatural:
		for k = 0; k < n; k++ {
			perm[k] = k
		}
	case OrderReverse:
		for k = 0; k < n; k++ {
			perm[k] = n - 1 - k
		}
	default:
		return MinimumDegree(a)
	}

	return perm, nil
}
