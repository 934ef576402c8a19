package keyfitz

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is the single error kind for life-table contract
// violations: non-increasing ages, non-positive life expectancy,
// mismatched column lengths, missing interval widths, non-positive
// radix or e0. Every returned error wraps it; test with errors.Is.
var ErrInvalidInput = errors.New("invalid life-table input")

// DefaultRadix is the population base when death counts are already
// expressed per capita (probabilities rather than cohort counts).
// Human Mortality Database tables typically use a radix of 100000.
const DefaultRadix = 1.0

// LifeTableGroup is one demographic life-table already filtered to a
// single population subset (one period and one sex). Columns are
// parallel, equal-length, ordered by increasing age, and validated
// once at construction.
type LifeTableGroup struct {
	// X holds start-of-interval ages, strictly increasing, no gaps.
	X []float64

	// Wx holds interval widths in the same units as X. The terminal
	// entry is NaN: the last interval is open-ended ("110+").
	Wx []float64

	// Ax holds the average time spent in interval i by those who die
	// within it. Defaults to half the interval width.
	Ax []float64

	// Ex holds life expectancy at the start of each interval.
	// Strictly positive.
	Ex []float64

	// Dx holds death counts within each interval. Non-negative,
	// expressed against Radix.
	Dx []float64

	// Radix is the cohort base underlying Dx.
	Radix float64

	// Terminal is the open-interval policy applied by Measure.
	Terminal TerminalPolicy
}

// GroupConfig controls optional columns and defaults at construction.
// Zero-value slices mean "derive from X" (widths) and "half the local
// width" (ax), the standard uniform-deaths assumption.
type GroupConfig struct {
	Wx       []float64      // Explicit widths; nil = infer x[i+1]-x[i]
	Ax       []float64      // Explicit time-spent values; nil = wx/2
	Radix    float64        // Cohort base for Dx (default 1)
	Terminal TerminalPolicy // Open-interval policy (default TerminalResidual)
}

// DefaultGroupConfig returns the standard demographic assumptions:
// widths inferred from ages, deaths uniform within intervals, per
// capita death counts, residual terminal policy.
func DefaultGroupConfig() GroupConfig {
	return GroupConfig{
		Radix:    DefaultRadix,
		Terminal: TerminalResidual,
	}
}

// NewLifeTableGroup validates the columns once and materializes the
// optional ones, so every later computation can assume the table
// invariants hold: ordered contiguous intervals, open terminal
// interval, positive life expectancies, non-negative deaths.
func NewLifeTableGroup(x, ex, dx []float64, cfg GroupConfig) (*LifeTableGroup, error) {
	n := len(x)
	if n < 1 {
		return nil, fmt.Errorf("%w: empty age column", ErrInvalidInput)
	}
	if len(ex) != n || len(dx) != n {
		return nil, fmt.Errorf("%w: column length mismatch: x=%d ex=%d dx=%d",
			ErrInvalidInput, n, len(ex), len(dx))
	}

	if err := checkAges(x); err != nil {
		return nil, err
	}
	if err := checkExpectancies(ex); err != nil {
		return nil, err
	}
	for i, d := range dx {
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			return nil, fmt.Errorf("%w: dx[%d] = %v (death counts must be finite and non-negative)",
				ErrInvalidInput, i, d)
		}
	}

	radix := cfg.Radix
	if radix == 0 {
		radix = DefaultRadix
	}
	if radix < 0 {
		return nil, fmt.Errorf("%w: radix = %v (must be strictly positive)", ErrInvalidInput, radix)
	}

	wx, err := resolveWidths(x, cfg.Wx)
	if err != nil {
		return nil, err
	}
	ax, err := resolveAx(wx, cfg.Ax)
	if err != nil {
		return nil, err
	}

	return &LifeTableGroup{
		X:        append([]float64(nil), x...),
		Wx:       wx,
		Ax:       ax,
		Ex:       append([]float64(nil), ex...),
		Dx:       append([]float64(nil), dx...),
		Radix:    radix,
		Terminal: cfg.Terminal,
	}, nil
}

// Len returns the number of age intervals.
func (g *LifeTableGroup) Len() int { return len(g.X) }

// checkAges verifies the age column is strictly increasing with finite
// values. Contiguity follows from widths being derived as x[i+1]-x[i];
// explicitly supplied widths are checked in resolveWidths.
func checkAges(x []float64) error {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: x[%d] = %v (ages must be finite)", ErrInvalidInput, i, v)
		}
		if i > 0 && v <= x[i-1] {
			return fmt.Errorf("%w: age column not strictly increasing at index %d: x[%d]=%v, x[%d]=%v",
				ErrInvalidInput, i, i-1, x[i-1], i, v)
		}
	}
	return nil
}

// checkExpectancies verifies every ex value is finite and strictly
// positive. A decreasing trend is expected in real tables but not
// enforced.
func checkExpectancies(ex []float64) error {
	for i, v := range ex {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: ex[%d] = %v (life expectancy must be finite and strictly positive)",
				ErrInvalidInput, i, v)
		}
	}
	return nil
}

// resolveWidths returns a full widths column: supplied values when
// given, otherwise x[i+1]-x[i] for non-terminal intervals. The
// terminal width is always NaN: the last interval has no upper bound.
func resolveWidths(x, wx []float64) ([]float64, error) {
	n := len(x)
	out := make([]float64, n)

	if wx == nil {
		for i := 0; i < n-1; i++ {
			out[i] = x[i+1] - x[i]
		}
		out[n-1] = math.NaN()
		return out, nil
	}

	if len(wx) != n {
		return nil, fmt.Errorf("%w: wx length %d does not match x length %d",
			ErrInvalidInput, len(wx), n)
	}
	for i := 0; i < n-1; i++ {
		if math.IsNaN(wx[i]) {
			return nil, fmt.Errorf("%w: wx[%d] is missing (widths required for all non-terminal intervals)",
				ErrInvalidInput, i)
		}
		if math.IsInf(wx[i], 0) || wx[i] <= 0 {
			return nil, fmt.Errorf("%w: wx[%d] = %v (widths must be finite and strictly positive)",
				ErrInvalidInput, i, wx[i])
		}
		out[i] = wx[i]
	}
	out[n-1] = math.NaN()
	return out, nil
}

// resolveAx returns a full ax column: supplied values when given,
// otherwise half the local width. The terminal default is 0.5 (half of
// the width-1 convention used by the reuse-last policy); the residual
// policy never reads it.
func resolveAx(wx, ax []float64) ([]float64, error) {
	n := len(wx)
	out := make([]float64, n)

	if ax == nil {
		for i := 0; i < n-1; i++ {
			out[i] = wx[i] / 2
		}
		out[n-1] = 0.5
		return out, nil
	}

	if len(ax) != n {
		return nil, fmt.Errorf("%w: ax length %d does not match table length %d",
			ErrInvalidInput, len(ax), n)
	}
	for i, v := range ax {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("%w: ax[%d] = %v (time-spent values must be finite and non-negative)",
				ErrInvalidInput, i, v)
		}
		out[i] = v
	}
	return out, nil
}
