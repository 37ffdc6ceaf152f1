package analytics

import "github.com/crickd/insights-engine/internal/model"

// Stroke kinds for wagon-wheel rendering.
const (
	StrokeSix   = "six"
	StrokeFour  = "four"
	StrokeOther = "other"
)

// WagonWheel projects the deliveries carrying directional data into
// {angle, runs, kind} tuples for polar-plot rendering. No aggregation —
// the renderer decides how to bin strokes.
func WagonWheel(deliveries []model.Delivery) []model.Stroke {
	strokes := make([]model.Stroke, 0)
	for _, d := range deliveries {
		if d.ShotAngle == nil {
			continue
		}
		strokes = append(strokes, model.Stroke{
			AngleDeg: *d.ShotAngle,
			Runs:     d.Runs,
			Kind:     strokeKind(d.Runs),
		})
	}
	return strokes
}

func strokeKind(runs int) string {
	switch runs {
	case 6:
		return StrokeSix
	case 4:
		return StrokeFour
	default:
		return StrokeOther
	}
}
