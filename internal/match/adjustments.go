package match

import "fmt"

// AdjustmentKind tags one collected adjustment record.
type AdjustmentKind string

const (
	AdjustmentCap       AdjustmentKind = "cap"
	AdjustmentPenalty   AdjustmentKind = "penalty"
	AdjustmentFloor     AdjustmentKind = "floor"
	AdjustmentGuarantee AdjustmentKind = "guarantee"
)

// Adjustment is one applicable cap, penalty, floor, or guarantee. The
// pipeline collects every applicable record first, then reduces them in a
// fixed precedence, so the outcome never depends on collection order.
type Adjustment struct {
	Kind   AdjustmentKind `json:"kind"`
	Name   string         `json:"name"`
	Value  float64        `json:"value"`
	Reason string         `json:"reason"`
}

// Cap names, tightest first. Only the tightest applicable cap is collected.
const (
	capMissingCritical  = "missing_critical"
	capMissingSubject   = "missing_subject"
	capCriticalNearMiss = "critical_near_miss"
	capUnmetRequirement = "unmet_requirement"
)

// collectAdjustments gathers every applicable adjustment for one scored
// pair. Weights are the ones actually used (post-redistribution).
func collectAdjustments(academic AcademicResult, location, field PreferenceMatch, weights WeightConfig) []Adjustment {
	var adjs []Adjustment

	// Tightest absolute cap, by fixed precedence.
	switch {
	case academic.MissingCritical > 0:
		adjs = append(adjs, Adjustment{
			Kind: AdjustmentCap, Name: capMissingCritical, Value: 0.45,
			Reason: fmt.Sprintf("capped at 0.45: %d critical subject(s) missing", academic.MissingCritical),
		})
	case academic.MissingNonCritical > 0:
		adjs = append(adjs, Adjustment{
			Kind: AdjustmentCap, Name: capMissingSubject, Value: 0.70,
			Reason: fmt.Sprintf("capped at 0.70: %d required subject(s) missing", academic.MissingNonCritical),
		})
	case hasCriticalNearMiss(academic.Details):
		adjs = append(adjs, Adjustment{
			Kind: AdjustmentCap, Name: capCriticalNearMiss, Value: 0.80,
			Reason: "capped at 0.80: critical requirement narrowly missed",
		})
	case !academic.PointsMet || !academic.AllSubjectsMet():
		adjs = append(adjs, Adjustment{
			Kind: AdjustmentCap, Name: capUnmetRequirement, Value: 0.90,
			Reason: "capped at 0.90: not all requirements fully met",
		})
	}

	// Multiple-requirements penalty.
	if academic.RequirementCount >= 2 {
		total := float64(academic.RequirementCount)
		missing := float64(academic.MissingCritical + academic.MissingNonCritical)
		partial := float64(academic.PartialCount)
		factor := missing/total + 0.5*partial/total
		if factor > 0 {
			adjs = append(adjs, Adjustment{
				Kind: AdjustmentPenalty, Name: "multiple_requirements", Value: factor,
				Reason: fmt.Sprintf("penalty for %d missing and %d partial of %d requirements", int(missing), int(partial), academic.RequirementCount),
			})
		}
	}

	// Non-academic floor: strong location/field interest keeps the score
	// from collapsing entirely on academics.
	floor := weights.Location*location.Score*0.8 + weights.Field*field.Score*0.8
	adjs = append(adjs, Adjustment{
		Kind: AdjustmentFloor, Name: "non_academic_floor", Value: floor,
		Reason: fmt.Sprintf("non-academic floor of %.2f", floor),
	})

	// Minimum guarantee for students who clear the points bar.
	if academic.PointsMet {
		adjs = append(adjs, Adjustment{
			Kind: AdjustmentGuarantee, Name: "points_met_minimum", Value: 0.15,
			Reason: "minimum 0.15 guaranteed: points requirement met",
		})
	}

	return adjs
}

// reduceAdjustments applies collected adjustments in fixed precedence:
// penalty, floor, cap, guarantee. Only the floor and guarantee steps may
// raise the score.
func reduceAdjustments(raw float64, adjs []Adjustment) MatchAdjustments {
	out := MatchAdjustments{RawScore: raw, FinalScore: raw}

	for _, a := range adjs {
		if a.Kind == AdjustmentPenalty {
			f := a.Value
			out.PenaltyFactor = &f
			out.FinalScore *= 1 - 0.4*f
			out.Reasons = append(out.Reasons, a.Reason)
		}
	}
	for _, a := range adjs {
		if a.Kind == AdjustmentFloor {
			out.NonAcademicFloor = a.Value
			if out.FinalScore < a.Value {
				out.FinalScore = a.Value
				out.Reasons = append(out.Reasons, a.Reason)
			}
		}
	}
	for _, a := range adjs {
		if a.Kind == AdjustmentCap {
			if out.Caps == nil {
				out.Caps = map[string]float64{}
			}
			out.Caps[a.Name] = a.Value
			if out.FinalScore > a.Value {
				out.FinalScore = a.Value
			}
			out.Reasons = append(out.Reasons, a.Reason)
		}
	}
	for _, a := range adjs {
		if a.Kind == AdjustmentGuarantee && out.FinalScore < a.Value {
			out.FinalScore = a.Value
			out.Reasons = append(out.Reasons, a.Reason)
		}
	}

	out.FinalScore = clamp(out.FinalScore, 0, 1)
	return out
}

func hasCriticalNearMiss(details []SubjectMatch) bool {
	for _, d := range details {
		if d.Critical && d.Status == StatusPartialMatch && d.Score >= 0.75 {
			return true
		}
	}
	return false
}
