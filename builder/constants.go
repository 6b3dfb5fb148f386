// SPDX-License-Identifier: MIT
// Package builder defines shared constants used by network builders, ensuring
// consistent defaults and validation across all constructors.
package builder

//-----------------------------------------------------------------------------
// Builder Method Name Constants
//   used to prefix errors with the constructor name for context.
//-----------------------------------------------------------------------------

const (
	// MethodChain is the canonical name for the Chain constructor.
	MethodChain = "Chain"
	// MethodHierarchy is the canonical name for the Hierarchy constructor.
	MethodHierarchy = "Hierarchy"
	// MethodRegression is the canonical name for the Regression constructor.
	MethodRegression = "Regression"
)

//-----------------------------------------------------------------------------
// ID layout
//-----------------------------------------------------------------------------

// Separators and suffixes used to derive node IDs from a scope.
const (
	// MeanSuffix names the linear combination holding a node's mean.
	MeanSuffix = ".mean"
	// ScopeSeparator joins a scope and a role inside a constructor.
	ScopeSeparator = "."
)

//-----------------------------------------------------------------------------
// Minimum sizes
//-----------------------------------------------------------------------------

// MinChainNodes is the smallest chain: a single root.
const MinChainNodes = 1

// MinGroups is the smallest number of groups in a hierarchy.
const MinGroups = 1

// MinPerGroup is the smallest number of observations per group.
const MinPerGroup = 1

// MinObservations is the smallest number of regression responses.
const MinObservations = 1

// MinCovariates is the smallest number of regression covariates.
const MinCovariates = 1

// MinDim is the smallest node dimension.
const MinDim = 1
