// Package analytics derives match statistics from a raw, time-ordered
// sequence of ball-by-ball deliveries and a point-in-time match snapshot:
// over-by-over run distributions (manhattan), cumulative run curves (worm),
// dot/boundary rates, run-rate figures, partnership matrices, phase-of-innings
// splits and wagon-wheel projections.
//
// Every transform is a pure function of its inputs — no retained state, no
// wall clock, no randomness — so recomputation over the same ledger and
// snapshot is bit-identical and external caching keyed by
// (match id, delivery count, snapshot version) is safe.
//
// All rate and percentage figures use shopspring/decimal, never float64.
package analytics

import (
	"sync"

	"github.com/crickd/insights-engine/internal/model"
)

// BuildInsights computes the full derived-analytics bundle for one match.
//
// The individual transforms share the same two read-only inputs and none
// depends on another's output, so they fan out on goroutines writing to
// distinct fields of the result. Failure modes degrade independently: an
// unresolvable player name or an unusable overs limit empties one panel
// without touching the others.
func BuildInsights(matchID string, deliveries []model.Delivery, snap model.MatchSnapshot, roster map[string]string) model.Insights {
	buckets := PartitionInnings(deliveries, DefaultInning)
	innings := Innings(buckets)

	out := model.Insights{
		MatchID:         matchID,
		DLS:             snap.DLS,
		DeliveryCount:   len(deliveries),
		SnapshotVersion: snap.Version,
	}

	var wg sync.WaitGroup
	wg.Add(6)

	go func() {
		defer wg.Done()
		out.Charts = BuildOverCharts(buckets)
	}()

	go func() {
		defer wg.Done()
		scoring := make([]model.InningsScoring, 0, len(innings))
		for _, in := range innings {
			scoring = append(scoring, model.InningsScoring{
				Inning:         in,
				ScoringSummary: Scoring(buckets[in]),
			})
		}
		out.Scoring = scoring
	}()

	go func() {
		defer wg.Done()
		out.RunRate = RunRates(snap)
	}()

	go func() {
		defer wg.Done()
		partnerships := make([]model.InningsPartnerships, 0, len(innings))
		for _, in := range innings {
			partnerships = append(partnerships, model.InningsPartnerships{
				Inning:            in,
				PartnershipMatrix: BuildPartnerships(buckets[in], snap.Batting, roster),
			})
		}
		out.Partnerships = partnerships
	}()

	go func() {
		defer wg.Done()
		phases := make([]model.InningsPhases, 0, len(innings))
		for _, in := range innings {
			phases = append(phases, model.InningsPhases{
				Inning:  in,
				Buckets: SplitPhases(snap.OversLimit, buckets[in]),
			})
		}
		out.Phases = phases
	}()

	go func() {
		defer wg.Done()
		out.WagonWheel = WagonWheel(deliveries)
	}()

	wg.Wait()
	return out
}
