// SPDX-License-Identifier: MIT
package dfs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gaussnet/dfs"
)

// position returns index of v in slice or -1 if not found
func position(order []string, v string) int {
	for i, x := range order {
		if x == v {
			return i
		}
	}

	return -1
}

// failing is a Digraph whose successor lookup always fails.
type failing struct{}

func (failing) Vertices() []string { return []string{"A"} }
func (failing) Successors(string) ([]string, error) {
	return nil, errors.New("boom")
}

// TestTopo_NilGraph verifies that passing a nil graph returns ErrGraphNil.
func TestTopo_NilGraph(t *testing.T) {
	order, err := dfs.TopologicalSort(nil)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)
}

// TestTopo_EmptyGraph covers a graph with no vertices.
func TestTopo_EmptyGraph(t *testing.T) {
	order, err := dfs.TopologicalSort(dfs.Adjacency{})
	assert.NoError(t, err)
	assert.Empty(t, order)
}

// TestTopo_NoEdges checks that isolated vertices can be sorted in any order.
func TestTopo_NoEdges(t *testing.T) {
	g := dfs.Adjacency{"A": nil, "B": nil, "C": nil}

	order, err := dfs.TopologicalSort(g)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "B", "C"}, order)
}

// TestTopo_SimpleChain verifies linear chain A→B→C yields [A,B,C].
func TestTopo_SimpleChain(t *testing.T) {
	g := dfs.Adjacency{"A": {"B"}, "B": {"C"}}

	order, err := dfs.TopologicalSort(g)
	assert.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, order)
	assert.Equal(t, []string{"C", "B", "A"}, dfs.Reverse(order))
}

// TestTopo_BranchingDAG checks a DAG with A→B and A→C: A must come first,
// B and C in any order afterward.
func TestTopo_BranchingDAG(t *testing.T) {
	g := dfs.Adjacency{"A": {"B", "C"}}

	order, err := dfs.TopologicalSort(g)
	assert.NoError(t, err)
	assert.Equal(t, "A", order[0])
	assert.ElementsMatch(t, []string{"B", "C"}, order[1:])
}

// TestTopo_Disconnected verifies that disconnected components are included.
func TestTopo_Disconnected(t *testing.T) {
	g := dfs.Adjacency{"X": {"Y"}, "A": {"B"}}

	order, err := dfs.TopologicalSort(g)
	assert.NoError(t, err)
	assert.Less(t, position(order, "X"), position(order, "Y"))
	assert.Less(t, position(order, "A"), position(order, "B"))
	assert.ElementsMatch(t, []string{"X", "Y", "A", "B"}, order)
}

// TestTopo_ComplexDAG builds a DAG of 10 vertices with cross-links and ensures validity.
func TestTopo_ComplexDAG(t *testing.T) {
	edges := [][2]string{
		{"V1", "V3"}, {"V1", "V2"}, {"V2", "V5"}, {"V3", "V5"},
		{"V2", "V4"}, {"V4", "V6"}, {"V5", "V7"}, {"V6", "V8"},
		{"V7", "V9"}, {"V8", "V10"},
	}
	g := dfs.Adjacency{}
	for _, e := range edges {
		g[e[0]] = append(g[e[0]], e[1])
	}

	order, err := dfs.TopologicalSort(g)
	assert.NoError(t, err)
	assert.Len(t, order, 10)
	for _, e := range edges {
		assert.Less(t,
			position(order, e[0]), position(order, e[1]),
			"edge %s→%s should be respected", e[0], e[1],
		)
	}
}

// TestTopo_CycleDetection uses a 6-node cycle to verify ErrCycleDetected.
func TestTopo_CycleDetection(t *testing.T) {
	cycle := []string{"a", "b", "c", "d", "e", "f"}
	g := dfs.Adjacency{}
	for i := range cycle {
		g[cycle[i]] = []string{cycle[(i+1)%len(cycle)]}
	}

	order, err := dfs.TopologicalSort(g)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, dfs.ErrCycleDetected)
	assert.Contains(t, err.Error(), `"a"`)
	var ce *dfs.CycleError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "a", ce.Vertex)
}

// TestTopo_NeighborFetch wraps successor failures in ErrNeighborFetch.
func TestTopo_NeighborFetch(t *testing.T) {
	_, err := dfs.TopologicalSort(failing{})
	assert.ErrorIs(t, err, dfs.ErrNeighborFetch)
}

// TestTopo_Cancelled returns the context error when cancelled up front.
func TestTopo_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dfs.TopologicalSort(dfs.Adjacency{"A": {"B"}}, dfs.WithCancelContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}
