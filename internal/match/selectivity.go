package match

// highAchieverPoints is the total at or above which the selectivity boost
// activates.
const highAchieverPoints = 38

// SelectivityTier classifies a program's competitiveness from its minimum
// points: 1 is the most selective, 4 the least (or unknown).
func SelectivityTier(minPoints *int) int {
	if minPoints == nil {
		return 4
	}
	switch {
	case *minPoints >= 40:
		return 1
	case *minPoints >= 36:
		return 2
	case *minPoints >= 32:
		return 3
	default:
		return 4
	}
}

// SelectivityBoost returns the additive boost a high achiever earns on a
// program of the given tier. Students below the high-achiever threshold get
// no boost regardless of tier.
func SelectivityBoost(studentPoints, tier int) float64 {
	if studentPoints < highAchieverPoints {
		return 0
	}
	switch tier {
	case 1:
		return 0.05
	case 2:
		return 0.03
	case 3:
		return 0.01
	default:
		return 0
	}
}

// ApplySelectivityBoost adds the tier boost to a base score, clamped to 1.0.
func ApplySelectivityBoost(base float64, studentPoints, tier int) float64 {
	return clamp(base+SelectivityBoost(studentPoints, tier), 0, 1)
}
