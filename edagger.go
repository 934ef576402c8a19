package keyfitz

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// TotalLifeExpectancyLoss aggregates per-interval losses into one
// scalar for the group: the death-weighted sum of exdagger, rescaled
// by the cohort radix:
//
//	edagger = Σ dx[i]·exdagger[i] / radix
//
// When dx holds counts from an initial cohort of size radix, dividing
// by radix turns the sum back into a per-capita quantity. Pass
// DefaultRadix (1) when dx already holds probabilities.
//
// The function is linear in exdagger: scaling every exdagger[i] by a
// constant k scales edagger by k.
func TotalLifeExpectancyLoss(dx, exdagger []float64, radix float64) (float64, error) {
	if len(dx) != len(exdagger) {
		return 0, fmt.Errorf("%w: column length mismatch: dx=%d exdagger=%d",
			ErrInvalidInput, len(dx), len(exdagger))
	}
	if len(dx) == 0 {
		return 0, fmt.Errorf("%w: empty death column", ErrInvalidInput)
	}
	if math.IsNaN(radix) || math.IsInf(radix, 0) || radix <= 0 {
		return 0, fmt.Errorf("%w: radix = %v (must be strictly positive)", ErrInvalidInput, radix)
	}

	return floats.Dot(dx, exdagger) / radix, nil
}
