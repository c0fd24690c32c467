package match

// IB diploma points domain. 24 is the minimum awarded-diploma total.
const (
	MinDiplomaPoints = 24
	MaxDiplomaPoints = 45
)

// Level is the rigor tier of an IB subject.
type Level string

const (
	LevelHL Level = "HL"
	LevelSL Level = "SL"
)

// CourseRecord is one subject on a student's diploma programme.
type CourseRecord struct {
	SubjectID string `json:"subject_id"`
	Level     Level  `json:"level"`
	Grade     int    `json:"grade"`
}

// StudentProfile is the immutable per-request view of one applicant.
// Domain validation (grade 1-7, points 24-45) happens in the transform
// layer before a profile reaches this package.
type StudentProfile struct {
	ID                 string         `json:"id"`
	TotalPoints        int            `json:"total_points"`
	Courses            []CourseRecord `json:"courses"`
	InterestedFields   []string       `json:"interested_fields"`
	PreferredCountries []string       `json:"preferred_countries"`

	// Optional core components
	TOKGrade string `json:"tok_grade,omitempty"`
	EEGrade  string `json:"ee_grade,omitempty"`

	// PredictedGrades marks profiles built from predicted rather than
	// final results; it lowers confidence, never the score.
	PredictedGrades bool `json:"predicted_grades,omitempty"`
}

// ProgramType discriminates how a program states its requirements.
type ProgramType string

const (
	FullRequirements ProgramType = "FULL_REQUIREMENTS"
	PointsOnly       ProgramType = "POINTS_ONLY"
	SubjectsOnly     ProgramType = "SUBJECTS_ONLY"
)

// SubjectRequirement is one required subject at a level and minimum grade.
type SubjectRequirement struct {
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name,omitempty"`
	Level       Level  `json:"level"`
	MinGrade    int    `json:"min_grade"`
	Critical    bool   `json:"critical"`
}

// ORGroupRequirement is satisfied by any one of its options.
type ORGroupRequirement struct {
	Options []SubjectRequirement `json:"options"`
}

// Critical reports whether any option in the group is critical.
func (g ORGroupRequirement) Critical() bool {
	for _, opt := range g.Options {
		if opt.Critical {
			return true
		}
	}
	return false
}

// ProgramRequirements is the immutable per-request view of one program.
type ProgramRequirements struct {
	ProgramID string      `json:"program_id"`
	Name      string      `json:"name,omitempty"`
	Type      ProgramType `json:"type"`
	MinPoints *int        `json:"min_points,omitempty"`

	Subjects      []SubjectRequirement `json:"subjects,omitempty"`
	SubjectGroups []ORGroupRequirement `json:"subject_groups,omitempty"`

	FieldID   string `json:"field_id"`
	CountryID string `json:"country_id"`

	// Verified marks requirements confirmed against the program's
	// official admission page; unverified data lowers confidence.
	Verified bool `json:"verified"`
}

// RequirementCount is the number of standalone subjects plus OR-groups.
func (p *ProgramRequirements) RequirementCount() int {
	return len(p.Subjects) + len(p.SubjectGroups)
}

// MatchStatus classifies how a single requirement was met.
type MatchStatus string

const (
	StatusFullMatch    MatchStatus = "FULL_MATCH"
	StatusPartialMatch MatchStatus = "PARTIAL_MATCH"
	StatusNoMatch      MatchStatus = "NO_MATCH"
)

// SubjectMatch captures one requirement's evaluation against a student.
type SubjectMatch struct {
	SubjectID string      `json:"subject_id"`
	Status    MatchStatus `json:"status"`
	Score     float64     `json:"score"`
	Critical  bool        `json:"critical"`
	Group     bool        `json:"group,omitempty"`

	// For OR-groups: the option that produced the best score.
	MatchedOptionID   string `json:"matched_option_id,omitempty"`
	MatchedOptionName string `json:"matched_option_name,omitempty"`

	Reason string `json:"reason"`
}

// Category buckets a result by admission likelihood.
type Category string

const (
	CategorySafety   Category = "SAFETY"
	CategoryMatch    Category = "MATCH"
	CategoryReach    Category = "REACH"
	CategoryUnlikely Category = "UNLIKELY"
)

// Confidence reports how reliable a result is, orthogonal to its score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// MatchAdjustments records what the penalty/cap pipeline did to the raw
// weighted score, in evaluation order, for explanation output.
type MatchAdjustments struct {
	RawScore         float64            `json:"raw_score"`
	FinalScore       float64            `json:"final_score"`
	Caps             map[string]float64 `json:"caps,omitempty"`
	PenaltyFactor    *float64           `json:"penalty_factor,omitempty"`
	NonAcademicFloor float64            `json:"non_academic_floor"`
	Reasons          []string           `json:"reasons,omitempty"`
}

// MatchResult is the complete scoring output for one student-program pair.
// It is ephemeral: never persisted by this package.
type MatchResult struct {
	ProgramID    string  `json:"program_id"`
	OverallScore float64 `json:"overall_score"`

	AcademicScore float64 `json:"academic_score"`
	LocationScore float64 `json:"location_score"`
	FieldScore    float64 `json:"field_score"`

	Category   Category   `json:"category"`
	Confidence Confidence `json:"confidence"`

	Adjustments MatchAdjustments `json:"adjustments"`
	Weights     WeightConfig     `json:"weights"`

	Academic AcademicResult `json:"academic"`
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
