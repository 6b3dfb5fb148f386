// SPDX-License-Identifier: MIT

// Package dfs implements depth-first topological ordering on directed graphs
// exposed through the small Digraph interface.
//
// What:
//
//   - TopologicalSort: computes a linear ordering of vertices in a directed
//     acyclic graph (DAG), returning ErrCycleDetected if cycles exist.
//   - Adjacency: a map-backed Digraph for callers that already hold edges.
//
// Why:
//   - Determine safe evaluation orders in dependency graphs (for example,
//     computing node means parents-first in a linear-Gaussian network).
//   - Detect cycles to prevent inconsistent states.
//
// Key Types & Constants:
//
//   - VertexState: White, Gray, Black (visitation markers)
//   - Digraph: Vertices + Successors
//   - TopoOption: WithCancelContext
package dfs
