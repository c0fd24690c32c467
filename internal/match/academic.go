package match

import "math"

// AcademicResult is the aggregated academic fit for one program.
type AcademicResult struct {
	Score           float64 `json:"score"`
	SubjectsScore   float64 `json:"subjects_score"`
	PointsMet       bool    `json:"points_met"`
	PointsShortfall int     `json:"points_shortfall"`

	Details []SubjectMatch `json:"details,omitempty"`

	MissingCritical    int `json:"missing_critical"`
	MissingNonCritical int `json:"missing_non_critical"`
	PartialCount       int `json:"partial_count"`
	RequirementCount   int `json:"requirement_count"`
}

// AllSubjectsMet reports whether every requirement is a full match.
func (a AcademicResult) AllSubjectsMet() bool {
	for _, d := range a.Details {
		if d.Status != StatusFullMatch {
			return false
		}
	}
	return true
}

// EvaluateAcademic aggregates subject and points fit for one program using
// the direct scan path.
func EvaluateAcademic(student *StudentProfile, program *ProgramRequirements) AcademicResult {
	return evaluateAcademic(student, program, newDirectEvaluator(student))
}

func evaluateAcademic(student *StudentProfile, program *ProgramRequirements, ev subjectEvaluator) AcademicResult {
	res := AcademicResult{
		PointsMet:        true,
		RequirementCount: program.RequirementCount(),
	}
	if program.MinPoints != nil && student.TotalPoints < *program.MinPoints {
		res.PointsMet = false
		res.PointsShortfall = *program.MinPoints - student.TotalPoints
	}

	res.Details = make([]SubjectMatch, 0, res.RequirementCount)
	for _, req := range program.Subjects {
		res.Details = append(res.Details, ev.matchSubject(req))
	}
	for _, group := range program.SubjectGroups {
		res.Details = append(res.Details, ev.matchGroup(group))
	}
	for _, d := range res.Details {
		switch d.Status {
		case StatusNoMatch:
			if d.Critical {
				res.MissingCritical++
			} else {
				res.MissingNonCritical++
			}
		case StatusPartialMatch:
			res.PartialCount++
		}
	}
	res.SubjectsScore = meanScore(res.Details)

	switch program.Type {
	case PointsOnly:
		res.Score = pointsOnlyScore(student.TotalPoints, program.MinPoints)
	case SubjectsOnly:
		res.Score = res.SubjectsScore
	default: // FullRequirements
		res.Score = res.SubjectsScore
		if !res.PointsMet {
			res.Score *= pointsDeficitFactor(res.PointsShortfall, *program.MinPoints)
		}
	}
	return res
}

// meanScore averages requirement scores; an empty requirement set is
// vacuously satisfied.
func meanScore(details []SubjectMatch) float64 {
	if len(details) == 0 {
		return 1.0
	}
	var sum float64
	for _, d := range details {
		sum += d.Score
	}
	return sum / float64(len(details))
}

func pointsOnlyScore(points int, minPoints *int) float64 {
	if minPoints == nil || points >= *minPoints {
		return 1.0
	}
	deficit := *minPoints - points
	raw := 1 - float64(deficit)/float64(*minPoints)
	return clamp(raw, 0.3, 0.9)
}

// pointsDeficitFactor penalizes the subjects mean when the points minimum
// is unmet: small deficits cost a flat 20%, larger ones decay with the
// relative shortfall.
func pointsDeficitFactor(deficit, minPoints int) float64 {
	if deficit <= 3 {
		return 0.8
	}
	return math.Max(0.5, 1-float64(deficit)/float64(minPoints))
}
