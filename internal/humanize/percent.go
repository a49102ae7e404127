// Package humanize provides a human-readable representation for numbers.
package humanize

import (
	"fmt"
)

type (
	integer interface {
		~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
	}

	number interface {
		integer | ~float32 | ~float64
	}
)

// PercentageDiff returns a human-readable representation of the percentage difference between two numbers.
func PercentageDiff[A, B number](a A, b B) string {
	var floatA, floatB = float64(a), float64(b)

	if floatB == 0 {
		return "0.00%"
	}

	return fmt.Sprintf("%0.2f%%", ((floatA-floatB)/floatB)*100) //nolint:mnd
}
