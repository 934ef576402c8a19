package keyfitz

import (
	"fmt"
	"math"
)

// LifespanEquality normalizes the total life expectancy lost by life
// expectancy at birth:
//
//	keyfz = edagger / e0
//
// The ratio is dimensionless and jointly scale-invariant: scaling both
// edagger and e0 by the same positive constant leaves it unchanged.
//
// The raw ratio is returned; converting it into an equality score
// where higher means more equal lifespans (e.g. -log(keyfz)) is a
// presentation choice left to the caller.
//
// Only meaningful when edagger was produced by TotalLifeExpectancyLoss
// over the same life-table group that supplied e0; mixing groups
// yields a number with no interpretation. LifeTableGroup.Measure
// enforces that pairing by construction.
func LifespanEquality(edagger, e0 float64) (float64, error) {
	if math.IsNaN(e0) || math.IsInf(e0, 0) || e0 <= 0 {
		return 0, fmt.Errorf("%w: e0 = %v (life expectancy at birth must be strictly positive)",
			ErrInvalidInput, e0)
	}
	return edagger / e0, nil
}
