package match

// fullDiplomaCourses is the standard six-subject diploma load; thinner
// profiles usually mean incomplete source data.
const fullDiplomaCourses = 6

// AssessConfidence reports how reliable a result is, from data-completeness
// signals only. It never changes the score: a REACH on predicted grades is
// still a REACH, just a less certain one.
func AssessConfidence(student *StudentProfile, program *ProgramRequirements) Confidence {
	deficiencies := 0
	if student.PredictedGrades {
		deficiencies++
	}
	if !program.Verified {
		deficiencies++
	}
	if len(student.Courses) < fullDiplomaCourses {
		deficiencies++
	}

	switch deficiencies {
	case 0:
		return ConfidenceHigh
	case 1:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
