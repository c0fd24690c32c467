package match

// Options selects the weights for a scoring call. An explicit WeightConfig
// wins over a named mode; with neither, the balanced preset applies.
type Options struct {
	Mode    WeightMode
	Weights *WeightConfig
}

func resolveWeights(opts Options) WeightConfig {
	if opts.Weights != nil {
		return *opts.Weights
	}
	return WeightsForMode(opts.Mode)
}

// ScoreOne computes the full match result for a single student-program
// pair through the direct (non-indexed, non-memoized) path.
func ScoreOne(student *StudentProfile, program *ProgramRequirements, opts Options) MatchResult {
	return scoreWithEvaluator(student, program, resolveWeights(opts), newDirectEvaluator(student))
}

// scoreWithEvaluator is the single scoring pipeline both paths share:
// components, weight redistribution, fit-quality refinement, selectivity
// boost, then the collect-then-apply adjustment pipeline.
func scoreWithEvaluator(student *StudentProfile, program *ProgramRequirements, weights WeightConfig, ev subjectEvaluator) MatchResult {
	academic := evaluateAcademic(student, program, ev)
	field := MatchField(student.InterestedFields, program.FieldID)
	location := MatchLocation(student.PreferredCountries, program.CountryID)

	used := weights
	if len(student.PreferredCountries) == 0 {
		used = weights.RedistributeWithoutLocation()
	}

	raw := used.Academic*academic.Score + used.Location*location.Score + used.Field*field.Score

	// Points-fit refinement: a narrow multiplier, so the curve breaks ties
	// between otherwise-similar programs without drowning the components.
	if program.MinPoints != nil && *program.MinPoints > 0 {
		raw *= 0.9 + 0.1*FitQuality(student.TotalPoints, *program.MinPoints)
	}

	// Boost precedes the cap/penalty pipeline; caps still bound it.
	tier := SelectivityTier(program.MinPoints)
	raw = ApplySelectivityBoost(raw, student.TotalPoints, tier)

	adjustments := reduceAdjustments(raw, collectAdjustments(academic, location, field, used))

	margin := 0
	if program.MinPoints != nil {
		margin = student.TotalPoints - *program.MinPoints
	}

	return MatchResult{
		ProgramID:     program.ProgramID,
		OverallScore:  adjustments.FinalScore,
		AcademicScore: academic.Score,
		LocationScore: location.Score,
		FieldScore:    field.Score,
		Category:      Categorize(adjustments.FinalScore, margin, academic.AllSubjectsMet()),
		Confidence:    AssessConfidence(student, program),
		Adjustments:   adjustments,
		Weights:       used,
		Academic:      academic,
	}
}
