package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/crickd/insights-engine/internal/model"
)

// RateScale is the number of decimal places for run-rate rounding.
const RateScale int32 = 2

var six = decimal.NewFromInt(6)

// RunRates derives current and required run rates from a match snapshot.
//
//	ballsBowled    = oversCompleted×6 + ballsThisOver
//	currentRunRate = totalRuns / (ballsBowled/6)
//
// The current rate is exactly zero when no ball has been bowled. The chase
// figures (remaining runs/overs, required rate) are populated only when the
// snapshot carries a target, and the required rate is nil — not zero, not
// infinite — once the overs are exhausted: the rate is undefined there.
func RunRates(snap model.MatchSnapshot) model.RunRateFigures {
	ballsBowled := snap.OversCompleted*6 + snap.BallsThisOver
	if ballsBowled < 0 {
		ballsBowled = 0
	}

	var figures model.RunRateFigures
	if ballsBowled > 0 {
		// runs / (balls/6) == runs×6 / balls, kept in integer space until
		// the final division.
		figures.CurrentRunRate = decimal.NewFromInt(int64(snap.TotalRuns)).
			Mul(six).
			Div(decimal.NewFromInt(int64(ballsBowled))).
			Round(RateScale)
	} else {
		figures.CurrentRunRate = decimal.Zero
	}

	if snap.Target == nil {
		return figures
	}

	remainingRuns := *snap.Target - snap.TotalRuns
	if remainingRuns < 0 {
		remainingRuns = 0
	}
	remainingBalls := snap.OversLimit*6 - ballsBowled
	if remainingBalls < 0 {
		remainingBalls = 0
	}

	remainingOvers := decimal.NewFromInt(int64(remainingBalls)).Div(six).Round(RateScale)
	figures.RemainingRuns = &remainingRuns
	figures.RemainingOvers = &remainingOvers

	if remainingBalls > 0 {
		rrr := decimal.NewFromInt(int64(remainingRuns)).
			Mul(six).
			Div(decimal.NewFromInt(int64(remainingBalls))).
			Round(RateScale)
		figures.RequiredRunRate = &rrr
	}
	return figures
}
