package events

import "time"

type RankCompletedEvent struct {
	StudentID   string    `json:"student_id"`
	Candidates  int       `json:"candidates"`
	Shortlisted int       `json:"shortlisted"`
	DurationMs  int64     `json:"duration_ms"`
	TopProgram  string    `json:"top_program,omitempty"`
	TopScore    float64   `json:"top_score"`
	Safety      int       `json:"safety"`
	Match       int       `json:"match"`
	Reach       int       `json:"reach"`
	Unlikely    int       `json:"unlikely"`
	Timestamp   time.Time `json:"timestamp"`
}

type MatchScoredEvent struct {
	StudentID    string  `json:"student_id"`
	ProgramID    string  `json:"program_id"`
	OverallScore float64 `json:"overall_score"`
	Category     string  `json:"category"`
	Confidence   string  `json:"confidence"`
}

type CatalogRefreshedEvent struct {
	Programs  int       `json:"programs"`
	Skipped   int       `json:"skipped"`
	Timestamp time.Time `json:"timestamp"`
}
