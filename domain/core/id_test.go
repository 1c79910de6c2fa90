package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

func TestParseRunID(t *testing.T) {
	tests := []struct {
		input    string
		expected RunID
		hasError bool
	}{
		{"valid-id", RunID("valid-id"), false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRunID(tt.input)
		if tt.hasError {
			assert.Error(t, err)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, got)
	}
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsValidationError(NewMissingSheetError("Portfolios")))
	assert.True(t, IsValidationError(NewMissingColumnError("Portfolios", "Portfolio ID")))
	assert.True(t, errors.Is(NewMissingColumnError("a", "b"), ErrMissingColumn))
	assert.True(t, IsDataError(NewDataError("s", 3, "Units", "not a number")))
	assert.True(t, IsProcessingError(NewProcessingError("top_campaigns", "process", errors.New("boom"))))
	assert.True(t, IsConfigurationError(NewUnknownStrategyError("nope")))
	assert.False(t, IsValidationError(NewProcessingError("x", "clean", errors.New("boom"))))
}

func TestHashShort(t *testing.T) {
	h := NewHash([]byte("workbook"))
	assert.Len(t, h.Short(), 12)
	assert.Equal(t, NewHash([]byte("workbook")), h)
	assert.False(t, h.IsEmpty())
}
