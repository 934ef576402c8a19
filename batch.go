package keyfitz

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GroupResult pairs one group's identifier with its measures or the
// error that stopped them. Exactly one of Measures/Err is meaningful.
type GroupResult struct {
	ID       string
	Measures Measures
	Err      error
}

// BatchConfig controls parallel evaluation of many groups.
type BatchConfig struct {
	// Workers bounds concurrent group evaluations.
	// 0 = runtime.NumCPU().
	Workers int

	// Logger receives one warning per failed group. Nil = no logging;
	// the per-group error is always carried in the result either way.
	Logger *slog.Logger
}

// DefaultBatchConfig returns one worker per CPU and no logger.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{}
}

// MeasureGroups evaluates many independent life-table groups in
// parallel, one group per task. Groups share no mutable state, so no
// synchronization beyond the work distribution is needed.
//
// Results are returned for every group in deterministic (sorted-ID)
// order: failures carry their ErrInvalidInput in GroupResult.Err and
// never abort the rest of the batch. Cancelling ctx stops the batch
// early; unstarted groups report ctx.Err().
func MeasureGroups(ctx context.Context, groups map[string]*LifeTableGroup, cfg BatchConfig) []GroupResult {
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(ids) {
		workers = len(ids)
	}

	results := make([]GroupResult, len(ids))
	tasks := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				id := ids[idx]
				m, err := groups[id].Measure()
				results[idx] = GroupResult{ID: id, Measures: m, Err: err}
				if err != nil && cfg.Logger != nil {
					cfg.Logger.Warn("life-table group rejected",
						"group", id,
						"err", err)
				}
			}
		}()
	}

	i := 0
dispatch:
	for ; i < len(ids); i++ {
		select {
		case <-ctx.Done():
			break dispatch
		case tasks <- i:
		}
	}
	close(tasks)
	wg.Wait()

	// Mark groups the cancellation left unstarted.
	for ; i < len(ids); i++ {
		if results[i].ID == "" {
			results[i] = GroupResult{ID: ids[i], Err: ctx.Err()}
		}
	}

	return results
}

// EqualitySummary aggregates the equality ratio across a batch.
type EqualitySummary struct {
	Groups int     // Successfully measured groups
	Failed int     // Groups that returned an error
	Mean   float64 // Mean keyfz across successful groups
	Stddev float64 // Sample standard deviation of keyfz
	Min    float64 // Smallest keyfz (most equal lifespans)
	Max    float64 // Largest keyfz (least equal lifespans)
}

// SummarizeEquality reduces batch results to distribution statistics
// of the equality ratio. Failed groups are counted but excluded from
// the statistics. Stddev is zero when fewer than two groups succeeded.
func SummarizeEquality(results []GroupResult) EqualitySummary {
	values := make([]float64, 0, len(results))
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		values = append(values, r.Measures.Equality)
	}

	s := EqualitySummary{Groups: len(values), Failed: failed}
	if len(values) == 0 {
		return s
	}

	s.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		s.Stddev = stat.StdDev(values, nil)
	}
	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	return s
}
