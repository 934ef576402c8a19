package keyfitz

import "fmt"

// TerminalResidualExpectancy is the assumed remaining life expectancy,
// in years, beyond a life-table's last tabulated age. Under the
// TerminalResidual policy the open terminal interval contributes
//
//	exdagger[n-1] = (ex[n-1] + 1.4) / 2
//
// The 1.4-year value is an empirical calibration for open-ended
// terminal groups ("110+") where no next life expectancy exists to
// interpolate toward.
const TerminalResidualExpectancy = 1.4

// TerminalPolicy selects how the open-ended terminal interval is
// handled by IntervalLifeExpectancyLoss. The two variants are never
// blended: one policy applies to the whole computation.
type TerminalPolicy int

const (
	// TerminalResidual computes (ex[n-1] + TerminalResidualExpectancy)/2,
	// crediting the open interval with a small residual expectancy
	// beyond the table's last age. This is the default.
	TerminalResidual TerminalPolicy = iota

	// TerminalReuseLast treats the terminal interval as width 1 and
	// reuses ex[n-1] as its own successor, the degenerate case of the
	// general interpolation formula.
	TerminalReuseLast
)

// String returns the policy name for logs and diagnostics.
func (p TerminalPolicy) String() string {
	switch p {
	case TerminalResidual:
		return "residual"
	case TerminalReuseLast:
		return "reuse-last"
	default:
		return fmt.Sprintf("TerminalPolicy(%d)", int(p))
	}
}

// LossConfig controls the optional inputs of IntervalLifeExpectancyLoss.
// Nil slices select the defaults: widths inferred from consecutive
// ages, ax equal to half the local width (deaths uniform within the
// interval).
type LossConfig struct {
	Wx       []float64      // Explicit interval widths (terminal entry may be NaN)
	Ax       []float64      // Explicit average time spent at death
	Terminal TerminalPolicy // Open-interval policy
}

// DefaultLossConfig returns the standard assumptions: inferred widths,
// uniform deaths, residual terminal policy.
func DefaultLossConfig() LossConfig {
	return LossConfig{Terminal: TerminalResidual}
}

// IntervalLifeExpectancyLoss computes, per age interval, the life
// expectancy lost by those who die within it.
//
// For each non-terminal interval the loss is a linear interpolation
// between the life expectancy at the start of the interval and the
// life expectancy at the start of the next one, weighted by the
// fraction of the interval's width consumed on average before death:
//
//	A[i] = ax[i] / wx[i]
//	exdagger[i] = A[i]·ex[i+1] + (1 - A[i])·ex[i]
//
// The terminal interval follows cfg.Terminal. With valid data
// (0 ≤ ax[i] ≤ wx[i]) each non-terminal exdagger[i] is a convex
// combination of ex[i] and ex[i+1].
//
// Inputs are never mutated; the returned slice is freshly allocated.
// All contract violations surface as ErrInvalidInput.
func IntervalLifeExpectancyLoss(x, ex []float64, cfg LossConfig) ([]float64, error) {
	n := len(x)
	if n < 1 {
		return nil, fmt.Errorf("%w: empty age column", ErrInvalidInput)
	}
	if len(ex) != n {
		return nil, fmt.Errorf("%w: column length mismatch: x=%d ex=%d", ErrInvalidInput, n, len(ex))
	}
	if err := checkAges(x); err != nil {
		return nil, err
	}
	if err := checkExpectancies(ex); err != nil {
		return nil, err
	}

	wx, err := resolveWidths(x, cfg.Wx)
	if err != nil {
		return nil, err
	}
	ax, err := resolveAx(wx, cfg.Ax)
	if err != nil {
		return nil, err
	}

	return intervalLoss(ex, wx, ax, cfg.Terminal), nil
}

// intervalLoss runs the interpolation over pre-validated columns.
// Shared by IntervalLifeExpectancyLoss and LifeTableGroup.Measure.
func intervalLoss(ex, wx, ax []float64, terminal TerminalPolicy) []float64 {
	n := len(ex)
	out := make([]float64, n)

	for i := 0; i < n-1; i++ {
		a := ax[i] / wx[i]
		out[i] = a*ex[i+1] + (1-a)*ex[i]
	}

	last := ex[n-1]
	switch terminal {
	case TerminalReuseLast:
		// Width-1 interval with ex[n] aliased to ex[n-1]: the
		// interpolation collapses onto the last observed value
		// regardless of ax.
		out[n-1] = last
	default:
		out[n-1] = (last + TerminalResidualExpectancy) / 2
	}

	return out
}

// terminalLoss returns the configured policy's value for a lone
// terminal interval. Used by assertions to spot-check the boundary.
func terminalLoss(ex float64, terminal TerminalPolicy) float64 {
	if terminal == TerminalReuseLast {
		return ex
	}
	return (ex + TerminalResidualExpectancy) / 2
}
