package match

import (
	"fmt"
	"math"
)

// courseLookup resolves a student's grades for the subject matcher. The
// scan-based and capability-vector implementations must agree exactly:
// the optimized batch path relies on it.
type courseLookup interface {
	// gradeAt returns the best grade held at exactly this level.
	gradeAt(subjectID string, level Level) (int, bool)
	// bestAtOrAbove returns the best grade held at this level or a
	// higher one (HL covers an SL requirement, never the reverse).
	bestAtOrAbove(subjectID string, level Level) (int, bool)
}

// courseList is the direct O(n)-scan lookup over a raw course slice.
type courseList []CourseRecord

func (c courseList) gradeAt(subjectID string, level Level) (int, bool) {
	best, found := 0, false
	for _, rec := range c {
		if rec.SubjectID == subjectID && rec.Level == level && rec.Grade > best {
			best, found = rec.Grade, true
		}
	}
	return best, found
}

func (c courseList) bestAtOrAbove(subjectID string, level Level) (int, bool) {
	best, found := c.gradeAt(subjectID, level)
	if level == LevelSL {
		if hl, ok := c.gradeAt(subjectID, LevelHL); ok && (!found || hl > best) {
			best, found = hl, true
		}
	}
	return best, found
}

// MatchSubject evaluates one standalone requirement against a student's
// full course list.
func MatchSubject(req SubjectRequirement, courses []CourseRecord) SubjectMatch {
	return matchSubjectLookup(req, courseList(courses))
}

func matchSubjectLookup(req SubjectRequirement, src courseLookup) SubjectMatch {
	if grade, ok := src.bestAtOrAbove(req.SubjectID, req.Level); ok {
		return matchExactOrHigher(req, grade)
	}
	if req.Level == LevelHL {
		if grade, ok := src.gradeAt(req.SubjectID, LevelSL); ok {
			return matchSLForHL(req, grade)
		}
	}
	return SubjectMatch{
		SubjectID: req.SubjectID,
		Status:    StatusNoMatch,
		Score:     0,
		Critical:  req.Critical,
		Reason:    fmt.Sprintf("%s not taken", req.SubjectID),
	}
}

// matchExactOrHigher handles a student holding the subject at the required
// level (or HL against an SL requirement).
func matchExactOrHigher(req SubjectRequirement, grade int) SubjectMatch {
	if grade >= req.MinGrade {
		return SubjectMatch{
			SubjectID: req.SubjectID,
			Status:    StatusFullMatch,
			Score:     1.0,
			Critical:  req.Critical,
			Reason:    fmt.Sprintf("%s grade %d meets %s minimum %d", req.SubjectID, grade, req.Level, req.MinGrade),
		}
	}
	return SubjectMatch{
		SubjectID: req.SubjectID,
		Status:    StatusPartialMatch,
		Score:     gradeShortfallScore(req.MinGrade, grade, req.Critical),
		Critical:  req.Critical,
		Reason:    fmt.Sprintf("%s grade %d below %s minimum %d", req.SubjectID, grade, req.Level, req.MinGrade),
	}
}

// matchSLForHL handles a student holding only SL where HL is required.
func matchSLForHL(req SubjectRequirement, grade int) SubjectMatch {
	m := SubjectMatch{
		SubjectID: req.SubjectID,
		Status:    StatusPartialMatch,
		Critical:  req.Critical,
		Reason:    fmt.Sprintf("%s taken at SL, HL minimum %d required", req.SubjectID, req.MinGrade),
	}

	// Strong SL grades are near-equivalent to a modest HL requirement.
	if (grade == 7 && req.MinGrade <= 6) || (grade == 6 && req.MinGrade <= 5) {
		m.Score = 0.8
		return m
	}

	hlEquivalent := grade - 2
	if hlEquivalent < 1 {
		hlEquivalent = 1
	}
	if hlEquivalent >= req.MinGrade {
		m.Score = 0.75
		return m
	}
	base := gradeShortfallScore(req.MinGrade, hlEquivalent, false)
	m.Score = math.Max(0.25, base*0.7)
	return m
}

// gradeShortfallScore maps a grade below the minimum onto a partial score.
// A one-point gap keeps most of the credit; wider gaps decay linearly
// against the requirement's own grade range, floored at 0.25.
func gradeShortfallScore(minGrade, grade int, critical bool) float64 {
	gap := minGrade - grade
	if gap == 1 {
		if critical {
			return 0.85
		}
		return 0.78
	}
	score := (1 - float64(gap)/float64(minGrade-1)) * 0.9
	return math.Max(0.25, score)
}
