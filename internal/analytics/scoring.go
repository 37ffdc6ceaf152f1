package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/crickd/insights-engine/internal/model"
)

// PctScale is the number of decimal places for percentage rounding.
const PctScale int32 = 2

var hundred = decimal.NewFromInt(100)

// Scoring tallies dot balls and boundaries among the legal balls of a
// delivery sequence. Callers that want per-innings figures partition first.
//
// A dot ball is a legal ball with exactly zero runs; a boundary is a legal
// ball scoring exactly 4 or 6. Both percentages are count/legal×100 and are
// exactly zero — never NaN — when no legal ball has been bowled.
func Scoring(deliveries []model.Delivery) model.ScoringSummary {
	var legal, dots, boundaries int
	for _, d := range deliveries {
		if !IsLegal(d) {
			continue
		}
		legal++
		switch d.Runs {
		case 0:
			dots++
		case 4, 6:
			boundaries++
		}
	}

	return model.ScoringSummary{
		Legal:       legal,
		Dots:        dots,
		Boundaries:  boundaries,
		DotPct:      percentage(dots, legal),
		BoundaryPct: percentage(boundaries, legal),
	}
}

// percentage computes count/total×100 rounded to PctScale, zero when the
// denominator is zero.
func percentage(count, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(count)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(PctScale)
}
