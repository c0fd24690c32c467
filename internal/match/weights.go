package match

import (
	"fmt"
	"math"
)

// WeightConfig defines the relative importance of the three top-level
// components. All weights must sum to 1.0 (±0.001 tolerance).
type WeightConfig struct {
	Academic float64 `json:"academic"`
	Location float64 `json:"location"`
	Field    float64 `json:"field"`
}

// WeightMode names a preset weight distribution.
type WeightMode string

const (
	ModeBalanced      WeightMode = "balanced"
	ModeAcademicFirst WeightMode = "academic-first"
	ModeLocationFirst WeightMode = "location-first"
	ModeExploration   WeightMode = "exploration"
)

// WeightsForMode returns the preset for a named mode. Unknown modes fall
// back to the balanced preset.
func WeightsForMode(mode WeightMode) WeightConfig {
	switch mode {
	case ModeAcademicFirst:
		return WeightConfig{Academic: 0.8, Location: 0.1, Field: 0.1}
	case ModeLocationFirst:
		return WeightConfig{Academic: 0.4, Location: 0.5, Field: 0.1}
	case ModeExploration:
		return WeightConfig{Academic: 0.4, Location: 0.2, Field: 0.4}
	default:
		return WeightConfig{Academic: 0.6, Location: 0.3, Field: 0.1}
	}
}

// Sum returns the total of all weights.
func (w WeightConfig) Sum() float64 {
	return w.Academic + w.Location + w.Field
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightConfig) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.Academic, w.Location, w.Field} {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	return nil
}

// RedistributeWithoutLocation zeroes the location weight and spreads it
// across academic and field, preserving their ratio. Used when the student
// states no country preference and location carries no signal.
func (w WeightConfig) RedistributeWithoutLocation() WeightConfig {
	denom := w.Academic + w.Field
	if denom <= 0 {
		return WeightConfig{Academic: 0.5, Location: 0, Field: 0.5}
	}
	return WeightConfig{
		Academic: w.Academic / denom,
		Location: 0,
		Field:    w.Field / denom,
	}
}
