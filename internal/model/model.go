// Package model defines the core domain types shared across the insights
// engine. Deliveries are immutable once ingested — the analytics layer only
// ever reads them. All rate and percentage figures use shopspring/decimal,
// never float64, so recomputation over the same ledger is bit-identical.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExtraType is the canonical extra classification for a delivery. Raw feeds
// use a mix of aliases ("wd", "WIDE", "noball"); ingest maps them all onto
// these constants exactly once, so downstream code never string-matches.
type ExtraType string

const (
	ExtraNone   ExtraType = ""
	ExtraWide   ExtraType = "wide"
	ExtraNoBall ExtraType = "no-ball"
	ExtraBye    ExtraType = "bye"
	ExtraLegBye ExtraType = "leg-bye"
	ExtraOther  ExtraType = "other"
)

// Delivery is one ball bowled — the atomic unit of the match event log.
// This is the canonical, post-normalization form: Runs is always populated
// (legacy runs_off_bat feeds are folded in at ingest) and Inning is never
// zero. Ordering is (inning, over, ball) ascending, ties kept stable.
type Delivery struct {
	Inning       int       `json:"inning"`
	Over         int       `json:"over_number"` // 0-based
	Ball         int       `json:"ball_number"`
	Runs         int       `json:"runs_scored"`
	IsExtra      bool      `json:"is_extra"`
	ExtraType    ExtraType `json:"extra_type,omitempty"`
	IsWicket     bool      `json:"is_wicket"`
	DismissedID  string    `json:"dismissed_player_id,omitempty"`
	StrikerID    string    `json:"striker_id,omitempty"`
	NonStrikerID string    `json:"non_striker_id,omitempty"`
	ShotAngle    *float64  `json:"shot_angle_deg,omitempty"`
	ShotMap      string    `json:"shot_map,omitempty"`
}

// Player is a roster entry used to resolve display names.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Match is the metadata record the service shell manages. The analytics
// layer only cares about OversLimit and the roster.
type Match struct {
	ID         string    `json:"id" db:"id"`
	HomeTeam   string    `json:"home_team" db:"home_team"`
	AwayTeam   string    `json:"away_team" db:"away_team"`
	Venue      string    `json:"venue,omitempty" db:"venue"`
	OversLimit int       `json:"overs_limit" db:"overs_limit"`
	Status     string    `json:"status" db:"status"` // "live", "completed"
	Roster     []Player  `json:"roster,omitempty"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// RosterLookup builds a player id → display name map from the match roster.
func (m *Match) RosterLookup() map[string]string {
	if len(m.Roster) == 0 {
		return nil
	}
	names := make(map[string]string, len(m.Roster))
	for _, p := range m.Roster {
		names[p.ID] = p.Name
	}
	return names
}

// BattingCard is one batter's line in the scorecard.
type BattingCard struct {
	Name      string `json:"name,omitempty"`
	Runs      int    `json:"runs"`
	Balls     int    `json:"balls"`
	Fours     int    `json:"fours"`
	Sixes     int    `json:"sixes"`
	Dismissal string `json:"dismissal,omitempty"`
}

// BowlingCard is one bowler's line in the scorecard.
type BowlingCard struct {
	Name    string          `json:"name,omitempty"`
	Overs   decimal.Decimal `json:"overs"`
	Maidens int             `json:"maidens"`
	Runs    int             `json:"runs_conceded"`
	Wickets int             `json:"wickets"`
}

// ExtrasBreakdown totals extras by category.
type ExtrasBreakdown struct {
	Wides   int `json:"wides"`
	NoBalls int `json:"no_balls"`
	Byes    int `json:"byes"`
	LegByes int `json:"leg_byes"`
	Penalty int `json:"penalty"`
}

// FallOfWicket records one dismissal on the score timeline.
type FallOfWicket struct {
	PlayerID string `json:"player_id"`
	Score    int    `json:"score"`
	Wicket   int    `json:"wicket"` // 1-based ordinal
	Over     int    `json:"over_number"`
	Ball     int    `json:"ball_number"`
}

// DLSPanel is the precomputed Duckworth-Lewis-Stern state supplied by the
// external match-state service. Passed through verbatim, never derived here.
type DLSPanel struct {
	Target  int `json:"target"`
	Par     int `json:"par"`
	AheadBy int `json:"ahead_by"`
}

// MatchSnapshot is the point-in-time aggregate owned by the external
// match-state service. Read-only to the analytics layer.
type MatchSnapshot struct {
	TotalRuns      int                    `json:"total_runs"`
	OversCompleted int                    `json:"overs_completed"`
	BallsThisOver  int                    `json:"balls_this_over"`
	OversLimit     int                    `json:"overs_limit"`
	Target         *int                   `json:"target,omitempty"`
	Extras         ExtrasBreakdown        `json:"extras"`
	FallOfWickets  []FallOfWicket         `json:"fall_of_wickets,omitempty"`
	DLS            *DLSPanel              `json:"dls,omitempty"`
	Batting        map[string]BattingCard `json:"batting,omitempty"`
	Bowling        map[string]BowlingCard `json:"bowling,omitempty"`
	Version        int64                  `json:"version"` // monotonic, set by the owning service
}
