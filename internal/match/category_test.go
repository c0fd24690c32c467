package match

import "testing"

// Regression fixtures locking the categorization thresholds. The
// qualitative ordering SAFETY > MATCH > REACH > UNLIKELY must hold in
// both score and margin.
func TestCategorize(t *testing.T) {
	tests := []struct {
		name   string
		score  float64
		margin int
		allMet bool
		want   Category
	}{
		{"comfortable safety", 0.92, 5, true, CategorySafety},
		{"safety boundary", 0.85, 3, true, CategorySafety},
		{"high score thin margin", 0.92, 2, true, CategoryMatch},
		{"high score unmet subject", 0.88, 5, false, CategoryMatch},
		{"solid match", 0.70, 0, true, CategoryMatch},
		{"good score negative margin", 0.70, -2, true, CategoryReach},
		{"low score small margin", 0.50, 1, false, CategoryReach},
		{"reach boundary", 0.40, -5, false, CategoryReach},
		{"deep deficit", 0.50, -6, false, CategoryUnlikely},
		{"weak everywhere", 0.20, 2, false, CategoryUnlikely},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.score, tt.margin, tt.allMet); got != tt.want {
				t.Errorf("Categorize(%f, %d, %v) = %s, want %s", tt.score, tt.margin, tt.allMet, got, tt.want)
			}
		})
	}
}

func TestAssessConfidence(t *testing.T) {
	fullCourses := premedStudent().Courses

	tests := []struct {
		name      string
		predicted bool
		verified  bool
		courses   []CourseRecord
		want      Confidence
	}{
		{"complete data", false, true, fullCourses, ConfidenceHigh},
		{"predicted grades", true, true, fullCourses, ConfidenceMedium},
		{"unverified requirements", false, false, fullCourses, ConfidenceMedium},
		{"thin profile", false, true, fullCourses[:4], ConfidenceMedium},
		{"predicted and unverified", true, false, fullCourses, ConfidenceLow},
		{"everything uncertain", true, false, fullCourses[:2], ConfidenceLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &StudentProfile{TotalPoints: 36, Courses: tt.courses, PredictedGrades: tt.predicted}
			p := &ProgramRequirements{ProgramID: "p1", Type: PointsOnly, Verified: tt.verified}
			if got := AssessConfidence(s, p); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestConfidenceIndependentOfScore(t *testing.T) {
	s := premedStudent()
	s.PredictedGrades = true

	strong := medicineProgram()
	weak := medicineProgram()
	weak.ProgramID = "med-2"
	weak.Subjects = []SubjectRequirement{{SubjectID: "latin", Level: LevelHL, MinGrade: 7, Critical: true}}

	a := ScoreOne(s, strong, Options{})
	b := ScoreOne(s, weak, Options{})
	if a.Confidence != b.Confidence {
		t.Errorf("confidence must not depend on score: %s vs %s", a.Confidence, b.Confidence)
	}
	if a.OverallScore == b.OverallScore {
		t.Error("fixtures should differ in score")
	}
}
