// Package ingest normalizes raw wire deliveries onto the canonical model.
//
// Scoring feeds disagree on field names and presence: runs arrive as
// runs_scored or the legacy runs_off_bat, extra types come in half a dozen
// spellings, and first-innings deliveries are often untagged. The mapping
// happens here exactly once — downstream analytics never does per-field
// fallback checks.
package ingest

import (
	"sort"

	"github.com/crickd/insights-engine/internal/analytics"
	"github.com/crickd/insights-engine/internal/model"
)

// RawDelivery is the wire form of one ball. Every field is optional;
// missing numerics default to zero and missing strings to empty — partial
// and historic records are expected, never rejected.
type RawDelivery struct {
	Inning       *int     `json:"inning,omitempty"`
	OverNumber   *int     `json:"over_number,omitempty"`
	BallNumber   *int     `json:"ball_number,omitempty"`
	RunsScored   *int     `json:"runs_scored,omitempty"`
	RunsOffBat   *int     `json:"runs_off_bat,omitempty"` // legacy alias for runs_scored
	IsExtra      *bool    `json:"is_extra,omitempty"`
	ExtraType    *string  `json:"extra_type,omitempty"`
	IsWicket     *bool    `json:"is_wicket,omitempty"`
	DismissedID  *string  `json:"dismissed_player_id,omitempty"`
	StrikerID    *string  `json:"striker_id,omitempty"`
	NonStrikerID *string  `json:"non_striker_id,omitempty"`
	ShotAngleDeg *float64 `json:"shot_angle_deg,omitempty"`
	ShotMap      *string  `json:"shot_map,omitempty"`
}

// Normalizer maps raw deliveries onto canonical ones. The default inning is
// explicit rather than baked in: untagged deliveries are a known upstream
// data-quality problem and operators may need to re-ingest with a different
// default.
type Normalizer struct {
	defaultInning int
}

// NewNormalizer creates a Normalizer. A defaultInning below 1 falls back to
// analytics.DefaultInning.
func NewNormalizer(defaultInning int) *Normalizer {
	if defaultInning < 1 {
		defaultInning = analytics.DefaultInning
	}
	return &Normalizer{defaultInning: defaultInning}
}

// Normalize maps one raw delivery onto the canonical form:
//
//   - runs_scored wins over the legacy runs_off_bat when both are present
//   - the extra type is case-normalized onto the canonical constants
//   - a missing inning becomes the configured default
//   - negative over/ball numbers clamp to zero
func (n *Normalizer) Normalize(raw RawDelivery) model.Delivery {
	d := model.Delivery{
		Inning:       intOr(raw.Inning, 0),
		Over:         clampNonNegative(intOr(raw.OverNumber, 0)),
		Ball:         clampNonNegative(intOr(raw.BallNumber, 0)),
		IsWicket:     boolOr(raw.IsWicket, false),
		DismissedID:  strOr(raw.DismissedID),
		StrikerID:    strOr(raw.StrikerID),
		NonStrikerID: strOr(raw.NonStrikerID),
		ShotAngle:    raw.ShotAngleDeg,
		ShotMap:      strOr(raw.ShotMap),
	}

	if d.Inning == 0 {
		d.Inning = n.defaultInning
	}

	// Canonical run field wins over the legacy alias.
	switch {
	case raw.RunsScored != nil:
		d.Runs = *raw.RunsScored
	case raw.RunsOffBat != nil:
		d.Runs = *raw.RunsOffBat
	}

	d.ExtraType = analytics.NormalizeExtraType(strOr(raw.ExtraType))
	d.IsExtra = boolOr(raw.IsExtra, d.ExtraType != model.ExtraNone)

	return d
}

// NormalizeBatch maps a raw batch and restores the (inning, over, ball)
// ascending consumption order, keeping arrival order for ties.
func (n *Normalizer) NormalizeBatch(raws []RawDelivery) []model.Delivery {
	out := make([]model.Delivery, len(raws))
	for i, raw := range raws {
		out[i] = n.Normalize(raw)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Inning != out[j].Inning {
			return out[i].Inning < out[j].Inning
		}
		if out[i].Over != out[j].Over {
			return out[i].Over < out[j].Over
		}
		return out[i].Ball < out[j].Ball
	})
	return out
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func strOr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
