package timecalc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tasktime/internal/models"
)

func ops(minutes ...int) []models.Operation {
	out := make([]models.Operation, 0, len(minutes))
	for i, m := range minutes {
		out = append(out, models.Operation{ID: int64(i + 1), SpentTime: m})
	}
	return out
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		ops      []models.Operation
		expected string
	}{
		{"empty", nil, "0h 0m"},
		{"under an hour", ops(45), "0h 45m"},
		{"exactly an hour", ops(60), "1h 0m"},
		{"ninety minutes", ops(90), "1h 30m"},
		{"summed across operations", ops(30, 45, 50), "2h 5m"},
		{"negative clamps", ops(-10), "0h 0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.ops))
		})
	}
}

func TestTotalMinutesComponentInRange(t *testing.T) {
	for a := 0; a < 200; a += 7 {
		for b := 0; b < 200; b += 13 {
			input := ops(a, b)
			got := Total(input)
			sum := a + b

			assert.GreaterOrEqual(t, got.Minutes, 0)
			assert.LessOrEqual(t, got.Minutes, 59)
			assert.Equal(t, sum%60, got.Minutes)
			assert.Equal(t, sum/60, got.Hours)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0h 0m", FormatMinutes(0))
	assert.Equal(t, "2h 1m", FormatMinutes(121))
}
