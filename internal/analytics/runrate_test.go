package analytics

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/crickd/insights-engine/internal/model"
)

func intp(v int) *int { return &v }

func TestRunRates_NoBallsBowled(t *testing.T) {
	got := RunRates(model.MatchSnapshot{TotalRuns: 0})
	// Exactly zero — never NaN.
	if !got.CurrentRunRate.IsZero() {
		t.Errorf("expected CRR 0 with no balls bowled, got %s", got.CurrentRunRate)
	}
	if got.RequiredRunRate != nil {
		t.Errorf("no target → no required rate, got %s", got.RequiredRunRate)
	}
}

func TestRunRates_CurrentRate(t *testing.T) {
	snap := model.MatchSnapshot{
		TotalRuns:      48,
		OversCompleted: 6,
		BallsThisOver:  0,
		OversLimit:     20,
	}
	got := RunRates(snap)
	if !got.CurrentRunRate.Equal(decimal.NewFromInt(8)) {
		t.Errorf("expected CRR 8, got %s", got.CurrentRunRate)
	}
}

func TestRunRates_Chase(t *testing.T) {
	// target=150, total=80, limit=20, 12.3 overs bowled.
	snap := model.MatchSnapshot{
		TotalRuns:      80,
		OversCompleted: 12,
		BallsThisOver:  3,
		OversLimit:     20,
		Target:         intp(150),
	}

	got := RunRates(snap)
	if got.RemainingRuns == nil || *got.RemainingRuns != 70 {
		t.Fatalf("expected remaining runs 70, got %v", got.RemainingRuns)
	}
	if got.RemainingOvers == nil || !got.RemainingOvers.Equal(decimal.NewFromFloat(7.5)) {
		t.Fatalf("expected remaining overs 7.5, got %v", got.RemainingOvers)
	}
	if got.RequiredRunRate == nil || !got.RequiredRunRate.Equal(decimal.NewFromFloat(9.33)) {
		t.Fatalf("expected RRR 9.33, got %v", got.RequiredRunRate)
	}
}

// Once the overs are exhausted the required rate is undefined — nil, not
// zero, not infinite.
func TestRunRates_OversExhausted(t *testing.T) {
	snap := model.MatchSnapshot{
		TotalRuns:      140,
		OversCompleted: 20,
		BallsThisOver:  0,
		OversLimit:     20,
		Target:         intp(150),
	}

	got := RunRates(snap)
	if got.RequiredRunRate != nil {
		t.Errorf("expected nil RRR with no balls remaining, got %s", got.RequiredRunRate)
	}
	if got.RemainingRuns == nil || *got.RemainingRuns != 10 {
		t.Errorf("expected remaining runs 10, got %v", got.RemainingRuns)
	}
	if got.RemainingOvers == nil || !got.RemainingOvers.IsZero() {
		t.Errorf("expected remaining overs 0, got %v", got.RemainingOvers)
	}
}

func TestRunRates_TargetAlreadyPassed(t *testing.T) {
	snap := model.MatchSnapshot{
		TotalRuns:      160,
		OversCompleted: 18,
		BallsThisOver:  2,
		OversLimit:     20,
		Target:         intp(150),
	}

	got := RunRates(snap)
	if got.RemainingRuns == nil || *got.RemainingRuns != 0 {
		t.Errorf("remaining runs clamp at 0, got %v", got.RemainingRuns)
	}
	if got.RequiredRunRate == nil || !got.RequiredRunRate.IsZero() {
		t.Errorf("expected RRR 0 with target passed and balls left, got %v", got.RequiredRunRate)
	}
}
