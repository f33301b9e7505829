package invoice

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	ierr "github.com/facturio/facturio/internal/errors"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "FAC-000001", FormatNumber(1))
	assert.Equal(t, "FAC-000042", FormatNumber(42))
	assert.Equal(t, "FAC-999999", FormatNumber(999999))
	// the sequence keeps going past the padded width
	assert.Equal(t, "FAC-1000000", FormatNumber(1000000))
}

func TestParseNumber(t *testing.T) {
	testCases := []struct {
		name        string
		number      string
		expectedSeq int64
		expectError bool
	}{
		{
			name:        "first_number",
			number:      "FAC-000001",
			expectedSeq: 1,
		},
		{
			name:        "large_number",
			number:      "FAC-001234",
			expectedSeq: 1234,
		},
		{
			name:        "missing_prefix",
			number:      "INV-000001",
			expectError: true,
		},
		{
			name:        "non_numeric_suffix",
			number:      "FAC-ABCDEF",
			expectError: true,
		},
		{
			name:        "empty",
			number:      "",
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			seq, err := ParseNumber(tc.number)
			if tc.expectError {
				assert.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectedSeq, seq)
		})
	}
}

func TestNextNumber(t *testing.T) {
	testCases := []struct {
		name     string
		last     *string
		expected string
	}{
		{
			name:     "empty_ledger_starts_at_one",
			last:     nil,
			expected: "FAC-000001",
		},
		{
			name:     "increments_latest",
			last:     lo.ToPtr("FAC-000007"),
			expected: "FAC-000008",
		},
		{
			name:     "unparseable_latest_falls_back_to_one",
			last:     lo.ToPtr("garbage"),
			expected: "FAC-000001",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NextNumber(tc.last))
		})
	}
}
