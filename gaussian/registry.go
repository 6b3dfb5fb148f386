// SPDX-License-Identifier: MIT
// File: registry.go
// Role: Node Registry. Holds the Gaussian members in storage order with their
// offsets into the joint vector, and builds ordered groups over them.
//
// Storage order lists children before their mean parents, so the joint factor
// assembled in that order is upper triangular.

package gaussian

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/gaussnet/model"
)

// entry is one Gaussian member.
type entry struct {
	node   *model.Stochastic
	index  int // position in storage order
	offset int // first row of the member's block in the joint vector
	dim    int
}

// registry is immutable after newRegistry.
type registry struct {
	entries []*entry
	byID    map[string]*entry
	total   int
}

// newRegistry lays out nodes (already in storage order) contiguously.
func newRegistry(nodes []*model.Stochastic) *registry {
	r := &registry{
		entries: make([]*entry, len(nodes)),
		byID:    make(map[string]*entry, len(nodes)),
	}
	for i, n := range nodes {
		e := &entry{node: n, index: i, offset: r.total, dim: n.Dim()}
		r.entries[i] = e
		r.byID[n.ID()] = e
		r.total += e.dim
	}

	return r
}

// lookup returns the entry of a member node.
func (r *registry) lookup(n model.Node) (*entry, bool) {
	if n == nil {
		return nil, false
	}
	e, ok := r.byID[n.ID()]
	if !ok || model.Node(e.node) != n {
		return nil, false
	}

	return e, true
}

// group is an ordered selection of members.
type group struct {
	entries []*entry
	dim     int
}

func newGroup(entries []*entry) group {
	g := group{entries: entries}
	for _, e := range entries {
		g.dim += e.dim
	}

	return g
}

// group resolves nodes into a group, rejecting non-members and repeats.
func (r *registry) group(nodes []model.Node) (group, error) {
	seen := make(map[*entry]bool, len(nodes))
	out := make([]*entry, 0, len(nodes))
	for _, n := range nodes {
		e, ok := r.lookup(n)
		if !ok {
			id := "<nil>"
			if n != nil {
				id = n.ID()
			}
			return group{}, fmt.Errorf("%w: %q is not a gaussian member", ErrInvalidQuery, id)
		}
		if seen[e] {
			return group{}, fmt.Errorf("%w: %q listed twice", ErrInvalidQuery, e.node.ID())
		}
		seen[e] = true
		out = append(out, e)
	}

	return newGroup(out), nil
}

// complement returns the members outside every excluded group, in storage order.
func (r *registry) complement(excluded ...group) group {
	skip := make(map[*entry]bool)
	for _, g := range excluded {
		for _, e := range g.entries {
			skip[e] = true
		}
	}
	out := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		if !skip[e] {
			out = append(out, e)
		}
	}

	return newGroup(out)
}

// positions maps joint indices to positions inside g (-1 when outside).
func (g group) positions(total int) []int {
	pos := make([]int, total)
	for i := range pos {
		pos[i] = -1
	}
	var k, i int
	for _, e := range g.entries {
		for i = 0; i < e.dim; i++ {
			pos[e.offset+i] = k
			k++
		}
	}

	return pos
}

// gather copies the g-blocks of the joint vector v into a fresh vector.
func (g group) gather(v []float64) []float64 {
	out := make([]float64, 0, g.dim)
	for _, e := range g.entries {
		out = append(out, v[e.offset:e.offset+e.dim]...)
	}

	return out
}

// values concatenates the current node values of g.
func (g group) values() []float64 {
	out := make([]float64, 0, g.dim)
	for _, e := range g.entries {
		out = append(out, e.node.Value()...)
	}

	return out
}

// nodes returns the member nodes of g.
func (g group) nodes() []*model.Stochastic {
	out := make([]*model.Stochastic, len(g.entries))
	for i, e := range g.entries {
		out[i] = e.node
	}

	return out
}

// key identifies g for block caches; it depends on member order.
func (g group) key() string {
	var b strings.Builder
	for i, e := range g.entries {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(e.index))
	}

	return b.String()
}

// sorted returns g with entries in storage order.
func (g group) sorted() group {
	out := make([]*entry, len(g.entries))
	copy(out, g.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].index < out[j].index })

	return newGroup(out)
}
