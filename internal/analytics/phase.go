package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/crickd/insights-engine/internal/model"
)

// Phase names.
const (
	PhasePowerplay = "powerplay"
	PhaseMiddle    = "middle"
	PhaseDeath     = "death"
)

// OversScale is the number of decimal places for phase overs-bowled figures.
const OversScale int32 = 1

// PhaseRanges computes the powerplay/middle/death over ranges (1-based,
// inclusive) for a given overs limit. Two regimes:
//
// Limited-overs formats of 45+ overs use the classic ODI split — powerplay
// overs 1–10, death the last 10, middle everything between.
//
// Shorter formats scale the windows down:
//
//	deathLen  = min(5, oversLimit/4), floored at 1
//	ppLen     = min(6, max(1, oversLimit/3))
//	middleEnd = max(ppLen+1, oversLimit−deathLen)
//
// An overs limit ≤ 0 yields an empty list — no negative ranges, no division
// by zero downstream.
func PhaseRanges(oversLimit int) []model.PhaseBucket {
	if oversLimit <= 0 {
		return []model.PhaseBucket{}
	}

	var ppEnd, middleEnd int
	if oversLimit >= 45 {
		ppEnd = 10
		middleEnd = oversLimit - 10
	} else {
		deathLen := oversLimit / 4
		if deathLen > 5 {
			deathLen = 5
		}
		if deathLen == 0 {
			deathLen = 1
		}
		ppEnd = oversLimit / 3
		if ppEnd < 1 {
			ppEnd = 1
		}
		if ppEnd > 6 {
			ppEnd = 6
		}
		middleEnd = oversLimit - deathLen
		if middleEnd < ppEnd+1 {
			middleEnd = ppEnd + 1
		}
	}

	return []model.PhaseBucket{
		{Name: PhasePowerplay, StartOver: 1, EndOver: ppEnd},
		{Name: PhaseMiddle, StartOver: ppEnd + 1, EndOver: middleEnd},
		{Name: PhaseDeath, StartOver: middleEnd + 1, EndOver: oversLimit},
	}
}

// SplitPhases buckets a delivery sequence into the phase ranges for the
// given overs limit and aggregates per bucket: total runs (every delivery
// counts toward phase scoring, extras included), overs bowled (legal balls ÷
// 6) and wickets. Each delivery lands in exactly one bucket via its 1-based
// over number; one whose over falls outside every range is dropped — the
// ranges are contiguous across [1, oversLimit], so that only happens when
// the ledger disagrees with the overs limit.
func SplitPhases(oversLimit int, deliveries []model.Delivery) []model.PhaseBucket {
	buckets := PhaseRanges(oversLimit)
	if len(buckets) == 0 {
		return buckets
	}

	legalBalls := make([]int, len(buckets))
	for _, d := range deliveries {
		overNo := d.Over + 1
		for i := range buckets {
			if overNo < buckets[i].StartOver || overNo > buckets[i].EndOver {
				continue
			}
			buckets[i].Runs += d.Runs
			if d.IsWicket {
				buckets[i].Wickets++
			}
			if IsLegal(d) {
				legalBalls[i]++
			}
			break
		}
	}

	for i := range buckets {
		buckets[i].Overs = decimal.NewFromInt(int64(legalBalls[i])).Div(six).Round(OversScale)
	}
	return buckets
}
