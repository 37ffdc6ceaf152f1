package analytics

import (
	"strings"

	"github.com/crickd/insights-engine/internal/model"
)

// extraAliases maps the raw extra-type spellings seen across scoring feeds
// onto the canonical constants. Keys are lower-cased and trimmed before
// lookup.
var extraAliases = map[string]model.ExtraType{
	"":        model.ExtraNone,
	"none":    model.ExtraNone,
	"wide":    model.ExtraWide,
	"wd":      model.ExtraWide,
	"no-ball": model.ExtraNoBall,
	"no ball": model.ExtraNoBall,
	"noball":  model.ExtraNoBall,
	"nb":      model.ExtraNoBall,
	"bye":     model.ExtraBye,
	"b":       model.ExtraBye,
	"leg-bye": model.ExtraLegBye,
	"leg bye": model.ExtraLegBye,
	"legbye":  model.ExtraLegBye,
	"lb":      model.ExtraLegBye,
}

// NormalizeExtraType maps a raw extra-type code onto its canonical constant.
// Unrecognized non-empty codes become ExtraOther rather than an error —
// partial and historic records are expected.
func NormalizeExtraType(raw string) model.ExtraType {
	key := strings.ToLower(strings.TrimSpace(raw))
	if et, ok := extraAliases[key]; ok {
		return et
	}
	return model.ExtraOther
}

// IsLegalExtra reports whether a delivery with the given extra-type code
// counts toward the 6-ball over. A delivery is illegal iff its normalized
// extra type is a wide or a no-ball; byes, leg-byes and plain deliveries are
// legal. Pure function of the code only — runs and wicket fields never enter
// into it, so every panel that counts balls agrees.
func IsLegalExtra(raw string) bool {
	et := NormalizeExtraType(raw)
	return et != model.ExtraWide && et != model.ExtraNoBall
}

// IsLegal reports whether a canonical delivery counts toward the over.
func IsLegal(d model.Delivery) bool {
	return d.ExtraType != model.ExtraWide && d.ExtraType != model.ExtraNoBall
}
