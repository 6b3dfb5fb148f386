// SPDX-License-Identifier: MIT

// Package dfs defines the graph abstraction, visitation states and sentinel
// errors shared by the traversal routines.
package dfs

import (
	"errors"
	"sort"
	"strconv"
)

// VertexState represents the DFS visitation state of a vertex.
const (
	White = iota // White: the vertex has not been visited yet.
	Gray         // Gray: the vertex is in the recursion stack (visiting).
	Black        // Black: the vertex and all its descendants have been fully explored.
)

var (
	// ErrGraphNil is returned when a nil graph is passed to TopologicalSort.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrCycleDetected indicates that a cycle was encountered during TopologicalSort.
	ErrCycleDetected = errors.New("dfs: cycle detected")

	// ErrNeighborFetch indicates a failure to retrieve successors from the graph.
	ErrNeighborFetch = errors.New("dfs: failed to fetch neighbors")
)

// CycleError names the vertex at which TopologicalSort closed a cycle.
// It unwraps to ErrCycleDetected.
type CycleError struct {
	Vertex string
}

// Error implements error.
func (e *CycleError) Error() string {
	return ErrCycleDetected.Error() + " at " + strconv.Quote(e.Vertex)
}

// Unwrap returns ErrCycleDetected.
func (e *CycleError) Unwrap() error { return ErrCycleDetected }

// Digraph is the read-only view of a directed graph required by the traversals.
//
// Vertices must return every vertex exactly once in a deterministic order;
// Successors returns the heads of the edges leaving id.
type Digraph interface {
	Vertices() []string
	Successors(id string) ([]string, error)
}

// Adjacency is a map-backed Digraph: key → successors. Vertices that only
// appear as successors are still enumerated.
type Adjacency map[string][]string

// Vertices returns all vertices in ascending order.
func (a Adjacency) Vertices() []string {
	seen := make(map[string]struct{}, len(a))
	for u, vs := range a {
		seen[u] = struct{}{}
		for _, v := range vs {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)

	return out
}

// Successors returns the successors of id (nil when id has none).
func (a Adjacency) Successors(id string) ([]string, error) {
	return a[id], nil
}

// Reverse returns a new slice containing the elements of s in reverse order.
// Time Complexity: O(n).
func Reverse(s []string) []string {
	out := make([]string, len(s))
	for i := range s {
		out[i] = s[len(s)-1-i]
	}

	return out
}
