// Package conditions maps gauge readings onto discrete floatability codes.
package conditions

import "github.com/driftwell/riverplan/internal/models"

// Classify maps a gauge height against a river's ordered thresholds to a
// single condition code. Evaluation runs from the most severe boundary
// downward, first match wins; that ordering is what keeps a river with a
// sparse threshold set from matching two codes at once.
//
// Thresholds may have gaps (any field nil). A height above the optimal
// window still classifies as high even when the high boundary itself is
// unset or not yet reached. A height below every configured boundary
// falls through to too_low; unknown is reserved for a missing reading.
func Classify(heightFt *float64, t models.GaugeThresholds) models.ConditionCode {
	if heightFt == nil {
		return models.ConditionUnknown
	}
	h := *heightFt

	switch {
	case t.DangerousFt != nil && h >= *t.DangerousFt:
		return models.ConditionDangerous
	case t.HighFt != nil && h >= *t.HighFt:
		return models.ConditionHigh
	case t.OptimalMinFt != nil && t.OptimalMaxFt != nil && h >= *t.OptimalMinFt:
		if h <= *t.OptimalMaxFt {
			return models.ConditionOptimal
		}
		return models.ConditionHigh
	case t.LowFt != nil && h >= *t.LowFt:
		return models.ConditionLow
	case t.TooLowFt != nil && h >= *t.TooLowFt:
		return models.ConditionVeryLow
	default:
		return models.ConditionTooLow
	}
}

// Monotonic reports whether every present threshold is non-decreasing
// from too-low up to dangerous. Used to validate operator edits before
// they are stored.
func Monotonic(t models.GaugeThresholds) bool {
	ordered := []*float64{
		t.TooLowFt, t.LowFt, t.OptimalMinFt, t.OptimalMaxFt, t.HighFt, t.DangerousFt,
	}

	var prev *float64
	for _, v := range ordered {
		if v == nil {
			continue
		}
		if prev != nil && *v < *prev {
			return false
		}
		prev = v
	}
	return true
}
