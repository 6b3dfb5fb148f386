// SPDX-License-Identifier: MIT
// Package builder provides internal helper functions and types
// for configuring ID schemes in network constructors.
package builder

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// IDFn generates a node ID suffix from its zero‐based index.
// It must be a pure, deterministic function: given the same idx, it always
// returns the same string. Panics in implementations indicate programmer error.
type IDFn func(idx int) string

// DefaultIDFn returns the decimal string of idx, e.g. 0→"0", 42→"42".
// Never panics.
func DefaultIDFn(idx int) string {
	return strconv.Itoa(idx)
}

// PaddedIDFn returns a decimal scheme zero-padded to width, so that
// lexicographic and numeric order agree for idx < 10^width.
// Panics if width < 1.
func PaddedIDFn(width int) IDFn {
	if width < 1 {
		panic(fmt.Sprintf("PaddedIDFn: width must be ≥ 1, got %d", width))
	}
	return func(idx int) string {
		if idx < 0 {
			panic(fmt.Sprintf("PaddedIDFn: idx must be ≥ 0, got %d", idx))
		}
		return fmt.Sprintf("%0*d", width, idx)
	}
}

// AlphanumericIDFn returns a base-36 string for idx, e.g. 0→"0", 10→"a", 35→"z", 36→"10".
// Panics if idx < 0.
func AlphanumericIDFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("AlphanumericIDFn: idx must be ≥ 0, got %d", idx))
	}

	return strconv.FormatInt(int64(idx), 36)
}

// ExcelColumnIDFn returns the “Excel‐style” column name for idx, e.g. 0→"A", 25→"Z", 26→"AA".
// Panics if idx < 0.
func ExcelColumnIDFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("ExcelColumnIDFn: idx must be ≥ 0, got %d", idx))
	}
	var runes []rune
	var i, j int
	for i = idx; i >= 0; i = i/26 - 1 {
		runes = append(runes, rune('A'+(i%26)))
	}
	for i, j = 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

// UUIDIDFn returns a scheme of name-based (SHA-1) UUIDs derived from
// namespace and idx. Deterministic for equal inputs.
func UUIDIDFn(namespace uuid.UUID) IDFn {
	return func(idx int) string {
		return uuid.NewSHA1(namespace, []byte(strconv.Itoa(idx))).String()
	}
}

// WithDefaultIDs sets the ID scheme to DefaultIDFn.
func WithDefaultIDs() BuilderOption {
	return WithIDScheme(DefaultIDFn)
}

// WithPaddedIDs sets the ID scheme to PaddedIDFn(width).
func WithPaddedIDs(width int) BuilderOption {
	return WithIDScheme(PaddedIDFn(width))
}

// WithExcelColumnIDs sets the ID scheme to ExcelColumnIDFn.
func WithExcelColumnIDs() BuilderOption {
	return WithIDScheme(ExcelColumnIDFn)
}

// WithAlphanumericIDs sets the ID scheme to AlphanumericIDFn.
func WithAlphanumericIDs() BuilderOption {
	return WithIDScheme(AlphanumericIDFn)
}

// WithUUIDs sets the ID scheme to UUIDIDFn(namespace).
func WithUUIDs(namespace uuid.UUID) BuilderOption {
	return WithIDScheme(UUIDIDFn(namespace))
}
