// Package keyfitz computes lifespan-equality measures from demographic
// life-tables.
//
// # Overview
//
// A life-table tabulates age-specific mortality for one population
// subset (e.g. one period and one sex): interval start ages, life
// expectancies, average time spent in the interval by those who die in
// it, and death counts. keyfitz derives three quantities from those
// columns:
//
//   - exdagger[i]: life expectancy lost, on average, by those who die
//     within age interval i
//   - edagger: total life expectancy lost due to death, aggregated over
//     all intervals of one group
//   - keyfz: edagger normalized by life expectancy at birth, a
//     dimensionless measure of variability in age at death, commonly
//     called Keyfitz's entropy
//
// # The Pipeline
//
// The three stages form a strict forward pipeline over one group:
//
//	exdagger := keyfitz.IntervalLifeExpectancyLoss(x, ex, cfg)
//	edagger  := keyfitz.TotalLifeExpectancyLoss(dx, exdagger, radix)
//	keyfz    := keyfitz.LifespanEquality(edagger, e0)
//
// Stage 1 interpolates between consecutive life expectancies:
//
//	A[i] = ax[i] / wx[i]
//	exdagger[i] = A[i]·ex[i+1] + (1 - A[i])·ex[i]
//
// Stage 2 weights the per-interval losses by death counts:
//
//	edagger = Σ dx[i]·exdagger[i] / radix
//
// Stage 3 normalizes by life expectancy at birth:
//
//	keyfz = edagger / e0
//
// Higher keyfz means death losses are large relative to longevity,
// i.e. less equal lifespans. To convert the ratio into a score where higher
// means MORE equal, apply a negative logarithm:
//
//	equality := -math.Log(keyfz)
//
// That transform is a presentation choice; keyfitz exposes the raw
// ratio.
//
// # The Terminal Interval
//
// The last age interval of a life-table is open-ended ("110+"): there
// is no next life expectancy to interpolate toward. Two policies exist
// in the demographic literature, and the choice is explicit here:
//
//   - TerminalReuseLast: width-1 interval, last observed life
//     expectancy reused as its own successor
//   - TerminalResidual (default): exdagger[n-1] = (ex[n-1] + 1.4) / 2,
//     where 1.4 years is the assumed residual life expectancy beyond
//     the last tabulated age (TerminalResidualExpectancy)
//
// # Quick Start
//
// Build a validated group once and measure it:
//
//	group, err := keyfitz.NewLifeTableGroup(x, ex, dx, keyfitz.DefaultGroupConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	m, err := group.Measure()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("e†: %.3f years lost\n", m.EDagger)
//	fmt.Printf("keyfz: %.4f\n", m.Equality)
//
// # Batch Evaluation
//
// Each group is independent and stateless, so arbitrarily many groups
// (one per period×sex combination) evaluate in parallel with no
// coordination:
//
//	results := keyfitz.MeasureGroups(ctx, groups, keyfitz.DefaultBatchConfig())
//	summary := keyfitz.SummarizeEquality(results)
//	fmt.Printf("mean keyfz across %d groups: %.4f\n", summary.Groups, summary.Mean)
//
// # Errors
//
// Every contract violation (non-increasing ages, non-positive life
// expectancy, mismatched column lengths, missing widths, non-positive
// radix or e0) is reported synchronously as ErrInvalidInput. There
// are no partial results, no silent coercion, and no internal logging;
// callers repair life-table data before invocation, not keyfitz.
//
// # Testing
//
// Use the in-package assertions to validate the mathematical
// properties of a computation:
//
//	func TestMyTable(t *testing.T) {
//	    m, _ := group.Measure()
//	    cfg := keyfitz.DefaultAssertionConfig()
//
//	    // exdagger[i] is a convex combination of ex[i], ex[i+1]
//	    keyfitz.AssertInterpolationBounds(t, group, m.ExDagger)
//
//	    // edagger is linear in exdagger
//	    keyfitz.AssertLossLinearity(t, group.Dx, m.ExDagger, group.Radix, cfg)
//
//	    // keyfz is jointly scale-invariant
//	    keyfitz.AssertScaleInvariance(t, m.EDagger, group.Ex[0], cfg)
//	}
package keyfitz
