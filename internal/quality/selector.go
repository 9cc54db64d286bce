package quality

import (
	"pocketpilot/budget-engine/internal/logging"
	"pocketpilot/budget-engine/internal/models"
)

// Selection is the outcome of base-month selection.
type Selection struct {
	Summary models.MonthSummary

	// CarryOverEligible marks a reliable previous month whose data may seed
	// more than one future budget cycle.
	CarryOverEligible bool

	// CarriedOver marks a base month found by scanning backward past the
	// previous month.
	CarriedOver bool

	// Temporary marks a usable-tier previous month: good enough for this
	// cycle only, not to be reused.
	Temporary bool

	// LowConfidence marks the last-resort fallback, when no reliable month
	// exists anywhere in the history. The whole prescription is labeled low
	// confidence in that case.
	LowConfidence bool
}

// SelectBaseMonth walks the classified months and chooses the source month
// for the prescription. summaries must be in chronological order and end at
// the month immediately preceding the target month. The boolean return is
// false when there is no recorded month at all.
//
// Precedence is strict: a reliable or strong or usable previous month is used
// directly; otherwise the most recent reliable month anywhere in the history
// is carried over; otherwise the previous month is used regardless of tier.
// Within the backward scan the most recent qualifying month always wins,
// never an older one with higher completeness.
func SelectBaseMonth(summaries []models.MonthSummary, logger logging.Logger) (Selection, bool) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if len(summaries) == 0 {
		return Selection{}, false
	}

	previous := summaries[len(summaries)-1]

	switch previous.Tier {
	case models.TierReliable:
		logger.Debug("Base month: previous month is reliable",
			logging.Field{Key: logging.FieldBaseMonth, Value: previous.Month.String()})
		return Selection{Summary: previous, CarryOverEligible: true}, true
	case models.TierStrong:
		logger.Debug("Base month: previous month is strong",
			logging.Field{Key: logging.FieldBaseMonth, Value: previous.Month.String()})
		return Selection{Summary: previous}, true
	case models.TierUsable:
		logger.Debug("Base month: previous month is usable, low persistence",
			logging.Field{Key: logging.FieldBaseMonth, Value: previous.Month.String()})
		return Selection{Summary: previous, Temporary: true}, true
	}

	// Previous month is insufficient: scan backward for the most recent
	// reliable month.
	for i := len(summaries) - 2; i >= 0; i-- {
		if summaries[i].Tier == models.TierReliable {
			logger.Debug("Base month: carried over from earlier reliable month",
				logging.Field{Key: logging.FieldBaseMonth, Value: summaries[i].Month.String()})
			return Selection{Summary: summaries[i], CarryOverEligible: true, CarriedOver: true}, true
		}
	}

	// No reliable month ever recorded. Fall back to the previous month and
	// flag the prescription low confidence.
	logger.Warn("Base month: no reliable month in history, using previous month",
		logging.Field{Key: logging.FieldBaseMonth, Value: previous.Month.String()},
		logging.Field{Key: logging.FieldTier, Value: previous.Tier})
	return Selection{Summary: previous, LowConfidence: true}, true
}
