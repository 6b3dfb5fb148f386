// SPDX-License-Identifier: MIT
package builder_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/gaussnet/builder"
)

// TestIDFns verifies each IDFn implementation both for correct outputs on
// valid inputs and for panics on invalid inputs.
func TestIDFns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		fn          builder.IDFn
		input       int
		want        string
		shouldPanic bool
	}{
		{"DefaultIDFn_zero", builder.DefaultIDFn, 0, "0", false},
		{"DefaultIDFn_multi", builder.DefaultIDFn, 123, "123", false},

		{"PaddedIDFn_zero", builder.PaddedIDFn(4), 0, "0000", false},
		{"PaddedIDFn_wide", builder.PaddedIDFn(2), 123, "123", false},
		{"PaddedIDFn_neg", builder.PaddedIDFn(3), -1, "", true},

		{"AlphanumericIDFn_zero", builder.AlphanumericIDFn, 0, "0", false},
		{"AlphanumericIDFn_low", builder.AlphanumericIDFn, 10, "a", false},
		{"AlphanumericIDFn_high", builder.AlphanumericIDFn, 35, "z", false},
		{"AlphanumericIDFn_neg", builder.AlphanumericIDFn, -5, "", true},

		{"ExcelColumnIDFn_zero", builder.ExcelColumnIDFn, 0, "A", false},
		{"ExcelColumnIDFn_endSingle", builder.ExcelColumnIDFn, 25, "Z", false},
		{"ExcelColumnIDFn_startDouble", builder.ExcelColumnIDFn, 26, "AA", false},
		{"ExcelColumnIDFn_ZZ", builder.ExcelColumnIDFn, 701, "ZZ", false},
		{"ExcelColumnIDFn_AAA", builder.ExcelColumnIDFn, 702, "AAA", false},
		{"ExcelColumnIDFn_neg", builder.ExcelColumnIDFn, -1, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if tc.shouldPanic {
				assert.Panics(t, func() { tc.fn(tc.input) })
				return
			}
			assert.Equal(t, tc.want, tc.fn(tc.input))
		})
	}
}

func TestPaddedIDFn_OrderMatchesIndex(t *testing.T) {
	fn := builder.PaddedIDFn(3)
	for i := 1; i < 1000; i++ {
		assert.Less(t, fn(i-1), fn(i))
	}
	assert.Panics(t, func() { builder.PaddedIDFn(0) })
}

func TestUUIDIDFn_Deterministic(t *testing.T) {
	fn := builder.UUIDIDFn(uuid.NameSpaceOID)
	a, b := fn(3), fn(3)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, fn(4))
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}
