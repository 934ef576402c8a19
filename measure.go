package keyfitz

// Measures bundles the three derived quantities for one life-table
// group. They have no lifecycle of their own: pure function values,
// recomputed per call.
type Measures struct {
	// ExDagger holds the per-interval life expectancy lost at death.
	ExDagger []float64

	// EDagger is the total life expectancy lost due to death,
	// per capita.
	EDagger float64

	// Equality is EDagger normalized by life expectancy at birth
	// (Keyfitz's entropy). Raw ratio; apply -log for an
	// increasing-is-better equality score.
	Equality float64
}

// Measure runs the full pipeline over the group:
//
//	interval losses -> total loss -> equality ratio
//
// The group was validated at construction, so the only failures left
// are degenerate tables that slipped past a zero-value struct literal;
// those still surface as ErrInvalidInput rather than a panic.
//
// Because all three stages draw on the same receiver, the equality
// ratio is guaranteed to pair an edagger with the e0 of the table that
// produced it.
func (g *LifeTableGroup) Measure() (Measures, error) {
	exdagger, err := IntervalLifeExpectancyLoss(g.X, g.Ex, LossConfig{
		Wx:       g.Wx,
		Ax:       g.Ax,
		Terminal: g.Terminal,
	})
	if err != nil {
		return Measures{}, err
	}

	radix := g.Radix
	if radix == 0 {
		radix = DefaultRadix
	}
	edagger, err := TotalLifeExpectancyLoss(g.Dx, exdagger, radix)
	if err != nil {
		return Measures{}, err
	}

	keyfz, err := LifespanEquality(edagger, g.Ex[0])
	if err != nil {
		return Measures{}, err
	}

	return Measures{
		ExDagger: exdagger,
		EDagger:  edagger,
		Equality: keyfz,
	}, nil
}
