package keyfitz

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalLifeExpectancyLoss_SingleYearIntervals(t *testing.T) {
	// x = [0,1,2], ex = [40,39,38], default wx=1, ax=0.5.
	// Non-terminal: 0.5·39 + 0.5·40 = 39.5
	// Terminal (residual): (38 + 1.4) / 2 = 19.7
	x := []float64{0, 1, 2}
	ex := []float64{40, 39, 38}

	exdagger, err := IntervalLifeExpectancyLoss(x, ex, DefaultLossConfig())
	require.NoError(t, err)
	require.Len(t, exdagger, 3)

	assert.InDelta(t, 39.5, exdagger[0], 1e-9)
	assert.InDelta(t, 38.5, exdagger[1], 1e-9)
	assert.InDelta(t, 19.7, exdagger[2], 1e-9)

	t.Logf("✓ ex† = %v", exdagger)
}

func TestIntervalLifeExpectancyLoss_ReuseLastPolicy(t *testing.T) {
	x := []float64{0, 1, 2}
	ex := []float64{40, 39, 38}

	exdagger, err := IntervalLifeExpectancyLoss(x, ex, LossConfig{Terminal: TerminalReuseLast})
	require.NoError(t, err)

	// Width-1 terminal with ex[n] aliased to ex[n-1] collapses onto
	// the last observed expectancy.
	assert.InDelta(t, 38.0, exdagger[2], 1e-9)
	// Non-terminal intervals are unaffected by the terminal policy.
	assert.InDelta(t, 39.5, exdagger[0], 1e-9)
}

func TestIntervalLifeExpectancyLoss_SingleTerminalInterval(t *testing.T) {
	// n=1: the whole table is one open interval. The result must equal
	// the configured policy's constant exactly.
	x := []float64{0}
	ex := []float64{40}

	residual, err := IntervalLifeExpectancyLoss(x, ex, DefaultLossConfig())
	require.NoError(t, err)
	assert.InDelta(t, (40+TerminalResidualExpectancy)/2, residual[0], 1e-9)

	reuse, err := IntervalLifeExpectancyLoss(x, ex, LossConfig{Terminal: TerminalReuseLast})
	require.NoError(t, err)
	assert.InDelta(t, 40.0, reuse[0], 1e-9)
}

func TestIntervalLifeExpectancyLoss_AbridgedTable(t *testing.T) {
	// Abridged table: 0, 1-4, 5-9, 10-14, ... widths 1, 4, 5.
	// Inferred widths must track the variable spacing.
	x := []float64{0, 1, 5, 10}
	ex := []float64{70, 69.5, 66, 61.2}

	exdagger, err := IntervalLifeExpectancyLoss(x, ex, DefaultLossConfig())
	require.NoError(t, err)

	// ax defaults to wx/2, so A = 0.5 at every non-terminal interval
	// and each loss is the midpoint of consecutive expectancies.
	assert.InDelta(t, (70+69.5)/2, exdagger[0], 1e-9)
	assert.InDelta(t, (69.5+66)/2, exdagger[1], 1e-9)
	assert.InDelta(t, (66+61.2)/2, exdagger[2], 1e-9)
	assert.InDelta(t, (61.2+TerminalResidualExpectancy)/2, exdagger[3], 1e-9)
}

func TestIntervalLifeExpectancyLoss_ExplicitAx(t *testing.T) {
	// Infant mortality concentrates deaths early in the interval:
	// ax[0] well below wx/2 pulls the loss toward ex[0].
	x := []float64{0, 1, 5}
	ex := []float64{70, 69.5, 66}
	ax := []float64{0.1, 2, 0.5}

	exdagger, err := IntervalLifeExpectancyLoss(x, ex, LossConfig{Ax: ax})
	require.NoError(t, err)

	// A = 0.1/1: exdagger = 0.1·69.5 + 0.9·70 = 69.95
	assert.InDelta(t, 69.95, exdagger[0], 1e-9)
	// A = 2/4 = 0.5: midpoint
	assert.InDelta(t, (69.5+66)/2, exdagger[1], 1e-9)
}

func TestIntervalLifeExpectancyLoss_ExplicitWidths(t *testing.T) {
	x := []float64{0, 5, 10}
	ex := []float64{60, 56, 52}
	wx := []float64{5, 5, math.NaN()} // open terminal, no defined width

	exdagger, err := IntervalLifeExpectancyLoss(x, ex, LossConfig{Wx: wx})
	require.NoError(t, err)
	assert.InDelta(t, (60+56)/2, exdagger[0], 1e-9)
	assert.InDelta(t, (52+TerminalResidualExpectancy)/2, exdagger[2], 1e-9)
}

func TestIntervalLifeExpectancyLoss_ConvexCombination(t *testing.T) {
	g, err := NewLifeTableGroup(
		[]float64{0, 1, 5, 10, 20, 40, 60, 80},
		[]float64{71.3, 70.9, 67.1, 62.3, 52.6, 33.8, 17.2, 6.9},
		[]float64{1800, 300, 250, 400, 1500, 9000, 30000, 56750},
		GroupConfig{Radix: 100000},
	)
	require.NoError(t, err)

	m, err := g.Measure()
	require.NoError(t, err)

	AssertInterpolationBounds(t, g, m.ExDagger)
	AssertTerminalPolicy(t, g, m.ExDagger, DefaultAssertionConfig())
}

func TestIntervalLifeExpectancyLoss_InvalidInput(t *testing.T) {
	valid := DefaultLossConfig()

	cases := []struct {
		name string
		x    []float64
		ex   []float64
		cfg  LossConfig
	}{
		{"empty table", nil, nil, valid},
		{"length mismatch", []float64{0, 1}, []float64{40}, valid},
		{"non-increasing ages", []float64{0, 2, 1}, []float64{40, 39, 38}, valid},
		{"duplicate age", []float64{0, 1, 1}, []float64{40, 39, 38}, valid},
		{"zero life expectancy", []float64{0, 1}, []float64{40, 0}, valid},
		{"negative life expectancy", []float64{0, 1}, []float64{40, -3}, valid},
		{"NaN life expectancy", []float64{0, 1}, []float64{40, math.NaN()}, valid},
		{"NaN age", []float64{0, math.NaN()}, []float64{40, 39}, valid},
		{"wx length mismatch", []float64{0, 1, 2}, []float64{40, 39, 38},
			LossConfig{Wx: []float64{1, 1}}},
		{"missing non-terminal width", []float64{0, 1, 2}, []float64{40, 39, 38},
			LossConfig{Wx: []float64{1, math.NaN(), math.NaN()}}},
		{"non-positive width", []float64{0, 1, 2}, []float64{40, 39, 38},
			LossConfig{Wx: []float64{1, -1, math.NaN()}}},
		{"ax length mismatch", []float64{0, 1, 2}, []float64{40, 39, 38},
			LossConfig{Ax: []float64{0.5}}},
		{"negative ax", []float64{0, 1, 2}, []float64{40, 39, 38},
			LossConfig{Ax: []float64{0.5, -0.5, 0.5}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := IntervalLifeExpectancyLoss(tc.x, tc.ex, tc.cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput), "want ErrInvalidInput, got %v", err)
		})
	}
}

func TestIntervalLifeExpectancyLoss_DoesNotMutateInputs(t *testing.T) {
	x := []float64{0, 1, 2}
	ex := []float64{40, 39, 38}
	wx := []float64{1, 1, math.NaN()}
	ax := []float64{0.5, 0.5, 0.5}

	xCopy := append([]float64(nil), x...)
	exCopy := append([]float64(nil), ex...)
	axCopy := append([]float64(nil), ax...)

	_, err := IntervalLifeExpectancyLoss(x, ex, LossConfig{Wx: wx, Ax: ax})
	require.NoError(t, err)

	assert.Equal(t, xCopy, x)
	assert.Equal(t, exCopy, ex)
	assert.Equal(t, axCopy, ax)
	assert.InDelta(t, 1.0, wx[0], 0) // width entries untouched
	assert.True(t, math.IsNaN(wx[2]))
}

func TestTerminalPolicy_String(t *testing.T) {
	assert.Equal(t, "residual", TerminalResidual.String())
	assert.Equal(t, "reuse-last", TerminalReuseLast.String())
}
