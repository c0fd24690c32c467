package match

// Categorize buckets a final score into an admission-likelihood band using
// the score, the points margin (student minus required), and whether every
// subject requirement was fully met. Thresholds are fixed here and locked
// by regression fixtures; the ordering SAFETY > MATCH > REACH > UNLIKELY
// holds in both score and margin.
func Categorize(score float64, margin int, allSubjectsMet bool) Category {
	switch {
	case score >= 0.85 && margin >= 3 && allSubjectsMet:
		return CategorySafety
	case score >= 0.65 && margin >= 0:
		return CategoryMatch
	case score >= 0.40 && margin >= -5:
		return CategoryReach
	default:
		return CategoryUnlikely
	}
}
