package match

// FitQuality maps student points against a program's required points onto
// [0.30, 1.00]. The curve rewards a small surplus over the bare minimum
// more than an exact match or a large one:
//
//	under-qualified: 0.90 at a 1-point deficit, linear down to 0.30 at
//	                 the worst representable deficit (required − 24)
//	optimal:         0.95 at exact match, linear up to 1.00 at +3
//	over-qualified:  gentle linear decay from 1.00, floored at 0.80
//
// Non-decreasing for studentPoints in [24, requiredPoints+3].
func FitQuality(studentPoints, requiredPoints int) float64 {
	if requiredPoints <= 0 {
		return 1.0
	}
	points := clampInt(studentPoints, MinDiplomaPoints, MaxDiplomaPoints)

	switch {
	case points < requiredPoints:
		deficit := requiredPoints - points
		maxDeficit := requiredPoints - MinDiplomaPoints
		if maxDeficit <= 1 {
			return 0.90
		}
		score := 0.90 - 0.60*float64(deficit-1)/float64(maxDeficit-1)
		return clamp(score, 0.30, 0.90)

	case points <= requiredPoints+3:
		return 0.95 + 0.05*float64(points-requiredPoints)/3.0

	default:
		surplus := points - (requiredPoints + 3)
		maxSurplus := MaxDiplomaPoints - (requiredPoints + 3)
		if maxSurplus <= 0 {
			return 1.0
		}
		score := 1.0 - 0.20*float64(surplus)/float64(maxSurplus)
		return clamp(score, 0.80, 1.0)
	}
}
