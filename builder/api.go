// SPDX-License-Identifier: MIT
// Package: gaussnet/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract:
//   - One orchestrator: BuildNetwork(bopts, cons...). Creates the network,
//     resolves cfg, runs cons in order.
//   - BuildSubmodel goes one step further and hands every Gaussian of the
//     network to gaussian.New.
//   - Functional options (BuilderOption) resolve into an immutable
//     builderConfig (no global state).
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical
//     networks (IDs, coefficients and observed values).
//   - Safety: never panic at runtime; return sentinel errors from constructors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/gaussnet/gaussian"
	"github.com/katalvlaran/gaussnet/model"
)

// Constructor adds a deterministic family of nodes to net using the resolved
// builderConfig. Constructors MUST:
//   - Validate parameters early and return sentinel errors (no panics).
//   - Register every node they create in net (all-or-nothing per call).
//   - Preserve determinism for the same config and call order.
type Constructor func(net *model.Network, cfg builderConfig) error

// BuildNetwork creates an empty model.Network, resolves the builder
// configuration from bopts, and applies all constructors in order.
// Any constructor error is wrapped with "BuildNetwork: %w" and returned
// immediately; nodes added by earlier constructors are discarded with the
// network.
//
// Errors:
//   - Wraps constructor errors via %w; branch with errors.Is against builder
//     sentinels (ErrTooFewNodes, ErrBadDimension, ...) or model sentinels
//     (model.ErrDuplicateNode).
func BuildNetwork(bopts []BuilderOption, cons ...Constructor) (*model.Network, error) {
	net := model.NewNetwork()
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildNetwork: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(net, cfg); err != nil {
			return nil, fmt.Errorf("BuildNetwork: %w", err)
		}
	}

	return net, nil
}

// BuildSubmodel runs BuildNetwork and builds a gaussian.Submodel over every
// Gaussian of the result. gopts are passed to gaussian.New unchanged.
func BuildSubmodel(bopts []BuilderOption, gopts []gaussian.Option, cons ...Constructor) (*gaussian.Submodel, *model.Network, error) {
	net, err := BuildNetwork(bopts, cons...)
	if err != nil {
		return nil, nil, err
	}
	gs := net.Gaussians()
	nodes := make([]model.Node, len(gs))
	for i, g := range gs {
		nodes[i] = g
	}
	sm, err := gaussian.New(nodes, gopts...)
	if err != nil {
		return nil, nil, fmt.Errorf("BuildSubmodel: %w", err)
	}

	return sm, net, nil
}

// =============================================================================
// Network factories (declarations) - implemented in impl_*.go
// =============================================================================
//
// Each factory returns a Constructor closure. The closure MUST:
//   - Derive node IDs from scope and cfg.idFn.
//   - Draw random quantities only from cfg.rng (deterministic fallback when nil).
//   - Return only sentinel errors; NEVER panic at runtime.

// Chain builds a first-order autoregression x_0 → x_1 → ... → x_{n-1}.
//func Chain(scope string, n, dim int, observed ...int) Constructor

// Hierarchy builds a two-level random-effects model with observed leaves.
//func Hierarchy(scope string, groups, perGroup, dim int) Constructor

// Regression builds a Bayesian linear regression with observed responses.
//func Regression(scope string, n, p int) Constructor
