package analytics

import "github.com/crickd/insights-engine/internal/model"

// OverTotals sums runs scored per over for one innings (the manhattan
// series). The result is indexed by over number and zero-filled only up to
// the highest over seen — no extrapolation beyond the observed range. Wides
// and no-balls contribute their runs to the over total even though they are
// excluded from ball-legality counting.
func OverTotals(deliveries []model.Delivery) []int {
	maxOver := -1
	for _, d := range deliveries {
		if d.Over > maxOver {
			maxOver = d.Over
		}
	}
	if maxOver < 0 {
		return []int{}
	}

	totals := make([]int, maxOver+1)
	for _, d := range deliveries {
		if d.Over < 0 {
			continue
		}
		totals[d.Over] += d.Runs
	}
	return totals
}

// Cumulative returns the running prefix sum of a per-over series (the worm).
func Cumulative(perOver []int) []int {
	out := make([]int, len(perOver))
	sum := 0
	for i, r := range perOver {
		sum += r
		out[i] = sum
	}
	return out
}

// BuildOverCharts computes manhattan and worm series for every innings in a
// partition and aligns them to a common length. Shorter innings are padded
// with nil (JSON null), never zero, so "not yet bowled" stays distinguishable
// from "zero runs off the over".
func BuildOverCharts(buckets map[int][]model.Delivery) model.OverCharts {
	innings := Innings(buckets)

	width := 0
	perInnings := make([][]int, len(innings))
	for i, in := range innings {
		perInnings[i] = OverTotals(buckets[in])
		if len(perInnings[i]) > width {
			width = len(perInnings[i])
		}
	}

	charts := model.OverCharts{
		Overs:   width,
		Innings: make([]model.InningsSeries, len(innings)),
	}
	for i, in := range innings {
		charts.Innings[i] = model.InningsSeries{
			Inning:     in,
			PerOver:    padSeries(perInnings[i], width),
			Cumulative: padSeries(Cumulative(perInnings[i]), width),
		}
	}
	return charts
}

// padSeries copies values into a nil-padded slice of the requested length.
func padSeries(values []int, width int) []*int {
	out := make([]*int, width)
	for i := range values {
		v := values[i]
		out[i] = &v
	}
	return out
}
