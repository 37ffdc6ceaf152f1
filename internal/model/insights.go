package model

import "github.com/shopspring/decimal"

// InningsSeries is one innings' over-by-over run profile. PerOver is the
// manhattan series, Cumulative the worm. When innings differ in length the
// shorter arrays are padded with nil so a renderer can tell "not yet bowled"
// apart from "zero runs" — the nils marshal as JSON null.
type InningsSeries struct {
	Inning     int    `json:"inning"`
	PerOver    []*int `json:"per_over"`
	Cumulative []*int `json:"cumulative"`
}

// OverCharts aligns every innings' series to a common length.
type OverCharts struct {
	Overs   int             `json:"overs"` // padded series length
	Innings []InningsSeries `json:"innings"`
}

// ScoringSummary tallies dot balls and boundaries among legal balls.
// Percentages are exactly zero when no legal ball has been bowled.
type ScoringSummary struct {
	Legal       int             `json:"legal"`
	Dots        int             `json:"dots"`
	Boundaries  int             `json:"boundaries"`
	DotPct      decimal.Decimal `json:"dot_pct"`
	BoundaryPct decimal.Decimal `json:"boundary_pct"`
}

// InningsScoring pairs a ScoringSummary with its innings number.
type InningsScoring struct {
	Inning int `json:"inning"`
	ScoringSummary
}

// RunRateFigures carries current and (if chasing) required run rates.
// RequiredRunRate is nil — not zero, not infinite — once the overs are
// exhausted: the rate is undefined, and the renderer shows a dash.
type RunRateFigures struct {
	CurrentRunRate  decimal.Decimal  `json:"current_run_rate"`
	RequiredRunRate *decimal.Decimal `json:"required_run_rate,omitempty"`
	RemainingRuns   *int             `json:"remaining_runs,omitempty"`
	RemainingOvers  *decimal.Decimal `json:"remaining_overs,omitempty"`
}

// PartnershipMatrix is the symmetric batter-pair run matrix. Players are
// sorted by display name and Matrix[i][j] holds the runs scored while
// Players[i] and Players[j] were partnered; the diagonal is always zero.
type PartnershipMatrix struct {
	Players []Player `json:"players"`
	Matrix  [][]int  `json:"matrix"`
}

// InningsPartnerships pairs a PartnershipMatrix with its innings number.
type InningsPartnerships struct {
	Inning int `json:"inning"`
	PartnershipMatrix
}

// PhaseBucket aggregates one named segment of an innings. Runs counts every
// delivery in the phase, extras included; Overs is legal balls ÷ 6.
type PhaseBucket struct {
	Name      string          `json:"name"`
	StartOver int             `json:"start_over"` // 1-based, inclusive
	EndOver   int             `json:"end_over"`   // 1-based, inclusive
	Runs      int             `json:"runs"`
	Overs     decimal.Decimal `json:"overs"`
	Wickets   int             `json:"wkts"`
}

// InningsPhases pairs a phase bucket list with its innings number.
type InningsPhases struct {
	Inning  int           `json:"inning"`
	Buckets []PhaseBucket `json:"buckets"`
}

// Stroke is one wagon-wheel data point for polar-plot rendering.
type Stroke struct {
	AngleDeg float64 `json:"angle_deg"`
	Runs     int     `json:"runs"`
	Kind     string  `json:"kind"` // "six", "four", "other"
}

// Insights is the full derived-analytics bundle for one match. It is rebuilt
// from scratch on every request; DeliveryCount and SnapshotVersion echo the
// inputs so callers can key caches on (match id, delivery count, version).
type Insights struct {
	MatchID         string                `json:"match_id"`
	Charts          OverCharts            `json:"over_charts"`
	Scoring         []InningsScoring      `json:"scoring"`
	RunRate         RunRateFigures        `json:"run_rate"`
	Partnerships    []InningsPartnerships `json:"partnerships"`
	Phases          []InningsPhases       `json:"phases"`
	WagonWheel      []Stroke              `json:"wagon_wheel"`
	DLS             *DLSPanel             `json:"dls,omitempty"`
	DeliveryCount   int                   `json:"delivery_count"`
	SnapshotVersion int64                 `json:"snapshot_version"`
}
