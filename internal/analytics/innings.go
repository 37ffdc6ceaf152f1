package analytics

import (
	"sort"

	"github.com/crickd/insights-engine/internal/model"
)

// DefaultInning is applied when a delivery arrives without an inning number.
// The upstream feed historically left first-innings deliveries untagged;
// callers that know better (e.g. a second-innings-only replay) can partition
// with a different default.
const DefaultInning = 1

// PartitionInnings groups deliveries by inning number, substituting
// defaultInning (clamped to at least 1) when the field is unset. Relative
// order is preserved within each group, no delivery is dropped, and inning
// numbers outside {1, 2} keep their own bucket.
func PartitionInnings(deliveries []model.Delivery, defaultInning int) map[int][]model.Delivery {
	if defaultInning < 1 {
		defaultInning = DefaultInning
	}

	buckets := make(map[int][]model.Delivery)
	for _, d := range deliveries {
		in := d.Inning
		if in == 0 {
			in = defaultInning
		}
		buckets[in] = append(buckets[in], d)
	}
	return buckets
}

// Innings returns the bucket keys in ascending order, giving deterministic
// iteration over a partition.
func Innings(buckets map[int][]model.Delivery) []int {
	keys := make([]int, 0, len(buckets))
	for in := range buckets {
		keys = append(keys, in)
	}
	sort.Ints(keys)
	return keys
}
