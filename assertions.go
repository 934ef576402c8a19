package keyfitz

import (
	"math"
	"testing"
)

// AssertionConfig contains tolerances for the property assertions.
type AssertionConfig struct {
	// Tolerance for floating-point equality checks.
	Epsilon float64

	// Scale factors exercised by the linearity and scale-invariance
	// checks.
	Scales []float64
}

// DefaultAssertionConfig returns conservative tolerances.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		Epsilon: 1e-9,
		Scales:  []float64{0.5, 2, 10, 1000},
	}
}

// AssertInterpolationBounds verifies that every non-terminal
// exdagger[i] lies between ex[i] and ex[i+1] inclusive.
//
// Mathematical property: exdagger[i] is a convex combination
//
//	exdagger[i] = A·ex[i+1] + (1-A)·ex[i],  A = ax[i]/wx[i] ∈ [0,1]
//
// so it cannot escape the segment between consecutive life
// expectancies in valid data.
func AssertInterpolationBounds(t *testing.T, g *LifeTableGroup, exdagger []float64) {
	t.Helper()

	n := g.Len()
	if len(exdagger) != n {
		t.Fatalf("exdagger length %d does not match table length %d", len(exdagger), n)
	}

	for i := 0; i < n-1; i++ {
		lo := math.Min(g.Ex[i], g.Ex[i+1])
		hi := math.Max(g.Ex[i], g.Ex[i+1])
		if exdagger[i] < lo || exdagger[i] > hi {
			t.Errorf("interval %d: exdagger=%.6f outside [%.6f, %.6f] (ex[%d]=%.6f, ex[%d]=%.6f)",
				i, exdagger[i], lo, hi, i, g.Ex[i], i+1, g.Ex[i+1])
		}
	}

	t.Logf("✓ Interpolation bounds: %d non-terminal losses inside their [ex[i], ex[i+1]] segments", n-1)
}

// AssertTerminalPolicy verifies the last loss matches the configured
// open-interval policy exactly.
func AssertTerminalPolicy(t *testing.T, g *LifeTableGroup, exdagger []float64, cfg AssertionConfig) {
	t.Helper()

	n := g.Len()
	want := terminalLoss(g.Ex[n-1], g.Terminal)
	got := exdagger[n-1]
	if math.Abs(got-want) > cfg.Epsilon {
		t.Errorf("terminal interval: exdagger=%.9f, policy %s expects %.9f", got, g.Terminal, want)
	} else {
		t.Logf("✓ Terminal policy %s: exdagger[n-1] = %.6f", g.Terminal, got)
	}
}

// AssertLossLinearity verifies TotalLifeExpectancyLoss is linear in
// exdagger: scaling every exdagger[i] by k scales edagger by k.
func AssertLossLinearity(t *testing.T, dx, exdagger []float64, radix float64, cfg AssertionConfig) {
	t.Helper()

	base, err := TotalLifeExpectancyLoss(dx, exdagger, radix)
	if err != nil {
		t.Fatalf("baseline total loss failed: %v", err)
	}

	for _, k := range cfg.Scales {
		scaled := make([]float64, len(exdagger))
		for i, v := range exdagger {
			scaled[i] = k * v
		}
		got, err := TotalLifeExpectancyLoss(dx, scaled, radix)
		if err != nil {
			t.Fatalf("scaled total loss failed at k=%v: %v", k, err)
		}
		want := k * base
		if math.Abs(got-want) > cfg.Epsilon*math.Max(1, math.Abs(want)) {
			t.Errorf("linearity broken at k=%v: edagger=%.9f, want %.9f", k, got, want)
		}
	}

	t.Logf("✓ Linearity: edagger scales with exdagger across k=%v", cfg.Scales)
}

// AssertScaleInvariance verifies LifespanEquality is jointly
// scale-invariant: scaling edagger and e0 by the same positive
// constant leaves keyfz unchanged.
func AssertScaleInvariance(t *testing.T, edagger, e0 float64, cfg AssertionConfig) {
	t.Helper()

	base, err := LifespanEquality(edagger, e0)
	if err != nil {
		t.Fatalf("baseline equality failed: %v", err)
	}

	for _, k := range cfg.Scales {
		got, err := LifespanEquality(k*edagger, k*e0)
		if err != nil {
			t.Fatalf("scaled equality failed at k=%v: %v", k, err)
		}
		if math.Abs(got-base) > cfg.Epsilon {
			t.Errorf("scale invariance broken at k=%v: keyfz=%.12f, want %.12f", k, got, base)
		}
	}

	t.Logf("✓ Scale invariance: keyfz = %.6f stable across k=%v", base, cfg.Scales)
}

// AssertMeasures runs all property assertions against one measured
// group with default tolerances.
func AssertMeasures(t *testing.T, g *LifeTableGroup, m Measures) {
	t.Helper()

	cfg := DefaultAssertionConfig()

	t.Run("InterpolationBounds", func(t *testing.T) {
		AssertInterpolationBounds(t, g, m.ExDagger)
	})
	t.Run("TerminalPolicy", func(t *testing.T) {
		AssertTerminalPolicy(t, g, m.ExDagger, cfg)
	})
	t.Run("LossLinearity", func(t *testing.T) {
		AssertLossLinearity(t, g.Dx, m.ExDagger, g.Radix, cfg)
	})
	t.Run("ScaleInvariance", func(t *testing.T) {
		AssertScaleInvariance(t, m.EDagger, g.Ex[0], cfg)
	})
}

// PrintLifeTableAnalysis outputs the full per-interval breakdown to
// the test log.
func PrintLifeTableAnalysis(t *testing.T, g *LifeTableGroup, m Measures) {
	t.Helper()

	t.Logf("\n=== Life-Table Analysis ===")
	t.Logf("Intervals: %d, radix: %.0f, terminal policy: %s", g.Len(), g.Radix, g.Terminal)

	t.Logf("  i    x      ex        dx        ex†")
	t.Logf("  --   ----   -------   -------   -------")
	for i := 0; i < g.Len(); i++ {
		t.Logf("  %-4d %-6.1f %9.4f %9.2f %9.4f", i, g.X[i], g.Ex[i], g.Dx[i], m.ExDagger[i])
	}

	t.Logf("\nGroup measures:")
	t.Logf("  e†     = %.6f years lost per capita", m.EDagger)
	t.Logf("  keyfz  = %.6f (e†/e0)", m.Equality)
	t.Logf("  -log   = %.6f (equality score, higher = more equal)", -math.Log(m.Equality))
}
