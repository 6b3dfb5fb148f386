// SPDX-License-Identifier: MIT
// File: network.go
// Role: Network, a registry of nodes keyed by ID.
//
// Determinism:
//   - Nodes() returns nodes sorted by ID ascending.
//
// Concurrency:
//   - The catalog is protected by mu; nodes themselves are independently safe.

package model

import (
	"fmt"
	"sort"
	"sync"
)

// Network is a thread-safe registry of model nodes.
type Network struct {
	mu    sync.RWMutex
	nodes map[string]Node
}

// NewNetwork returns an empty Network.
func NewNetwork() *Network {
	return &Network{nodes: make(map[string]Node)}
}

// Add registers nodes. It is all-or-nothing: on error nothing is added.
//
// Errors:
//   - ErrNilNode: a nil node was passed.
//   - ErrDuplicateNode: an ID is already registered or repeated in the call.
func (n *Network) Add(nodes ...Node) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	pending := make(map[string]struct{}, len(nodes))
	for _, x := range nodes {
		if x == nil {
			return ErrNilNode
		}
		if _, ok := n.nodes[x.ID()]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateNode, x.ID())
		}
		if _, ok := pending[x.ID()]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateNode, x.ID())
		}
		pending[x.ID()] = struct{}{}
	}
	for _, x := range nodes {
		n.nodes[x.ID()] = x
	}

	return nil
}

// Node returns the node registered under id.
func (n *Network) Node(id string) (Node, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	x, ok := n.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}

	return x, nil
}

// Select returns the nodes registered under ids, in the given order.
func (n *Network) Select(ids ...string) ([]Node, error) {
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		x, err := n.Node(id)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}

	return out, nil
}

// Len returns the number of registered nodes.
func (n *Network) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.nodes)
}

// Nodes returns all nodes sorted by ID.
func (n *Network) Nodes() []Node {
	n.mu.RLock()
	out := make([]Node, 0, len(n.nodes))
	for _, x := range n.nodes {
		out = append(out, x)
	}
	n.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })

	return out
}

// Gaussians returns the Gaussian stochastic nodes sorted by ID.
func (n *Network) Gaussians() []*Stochastic {
	var out []*Stochastic
	for _, x := range n.Nodes() {
		if s, ok := x.(*Stochastic); ok && s.kind.Gaussian() {
			out = append(out, s)
		}
	}

	return out
}
