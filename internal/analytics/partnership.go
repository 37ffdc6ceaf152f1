package analytics

import (
	"sort"

	"github.com/crickd/insights-engine/internal/model"
)

// pairKey is an order-independent key for a batter pair: Low sorts before
// High, so (a,b) and (b,a) accumulate into the same cell.
type pairKey struct {
	low, high string
}

func newPairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{low: a, high: b}
}

// BuildPartnerships accumulates runs per unordered batter pair and lays them
// out as a symmetric N×N matrix over a player list sorted by display name.
//
// Every player who ever appeared as striker or non-striker is enumerated
// first, then the matrix is filled over that fixed index space — players who
// faced balls but never partnered keep an all-zero row and column rather
// than dropping out. The diagonal is always zero.
//
// Display names resolve scorecard entry → roster lookup → raw id; a player
// the match-state service has never heard of still renders under their id.
func BuildPartnerships(deliveries []model.Delivery, scorecard map[string]model.BattingCard, roster map[string]string) model.PartnershipMatrix {
	runs := make(map[pairKey]int)
	seen := make(map[string]bool)

	for _, d := range deliveries {
		if d.StrikerID != "" {
			seen[d.StrikerID] = true
		}
		if d.NonStrikerID != "" {
			seen[d.NonStrikerID] = true
		}
		if d.StrikerID == "" || d.NonStrikerID == "" || d.StrikerID == d.NonStrikerID {
			continue
		}
		runs[newPairKey(d.StrikerID, d.NonStrikerID)] += d.Runs
	}

	players := make([]model.Player, 0, len(seen))
	for id := range seen {
		players = append(players, model.Player{
			ID:   id,
			Name: resolveName(id, scorecard, roster),
		})
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Name != players[j].Name {
			return players[i].Name < players[j].Name
		}
		return players[i].ID < players[j].ID
	})

	index := make(map[string]int, len(players))
	for i, p := range players {
		index[p.ID] = i
	}

	matrix := make([][]int, len(players))
	for i := range matrix {
		matrix[i] = make([]int, len(players))
	}
	for key, r := range runs {
		i, j := index[key.low], index[key.high]
		matrix[i][j] = r
		matrix[j][i] = r
	}

	return model.PartnershipMatrix{Players: players, Matrix: matrix}
}

// resolveName picks a display name by priority: scorecard → roster → raw id.
func resolveName(id string, scorecard map[string]model.BattingCard, roster map[string]string) string {
	if card, ok := scorecard[id]; ok && card.Name != "" {
		return card.Name
	}
	if name, ok := roster[id]; ok && name != "" {
		return name
	}
	return id
}
