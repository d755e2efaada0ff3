// Package timecalc derives display values from logged operation time.
package timecalc

import (
	"fmt"

	"tasktime/internal/models"
)

// Duration is a whole number of minutes split into hours and a 0..59 remainder.
type Duration struct {
	Hours   int
	Minutes int
}

// String renders the duration as "1h 30m".
func (d Duration) String() string {
	return fmt.Sprintf("%dh %dm", d.Hours, d.Minutes)
}

// FromMinutes splits m into hours and minutes. Negative values clamp to zero.
func FromMinutes(m int) Duration {
	if m < 0 {
		m = 0
	}
	return Duration{Hours: m / 60, Minutes: m % 60}
}

// SumMinutes adds up spent time across ops.
func SumMinutes(ops []models.Operation) int {
	total := 0
	for _, op := range ops {
		total += op.SpentTime
	}
	return total
}

// Total is the summed spent time of ops.
func Total(ops []models.Operation) Duration {
	return FromMinutes(SumMinutes(ops))
}

// Format returns the total spent time of ops as "Xh Ym".
func Format(ops []models.Operation) string {
	return Total(ops).String()
}

// FormatMinutes renders a single spent time value.
func FormatMinutes(m int) string {
	return FromMinutes(m).String()
}
