package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProgramRow is a university program as persisted in the catalog table.
// Subject requirements live in a jsonb column; the transform package turns
// rows into engine inputs.
type ProgramRow struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	University  string    `json:"university,omitempty"`
	FieldID     string    `json:"field_id"`
	CountryID   string    `json:"country_id"`
	ProgramType string    `json:"program_type"`
	MinPoints   *int      `json:"min_points,omitempty"`

	// Requirements holds the jsonb blob with "subjects" and
	// "subject_groups" arrays.
	Requirements []byte `json:"requirements,omitempty"`

	Verified bool `json:"verified"`
	Active   bool `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StudentRow is a student profile as persisted. Courses live in a jsonb
// column shaped like the engine's course records.
type StudentRow struct {
	ID          uuid.UUID `json:"id"`
	TotalPoints int       `json:"total_points"`

	Courses            []byte   `json:"courses,omitempty"`
	InterestedFields   []string `json:"interested_fields"`
	PreferredCountries []string `json:"preferred_countries"`

	TOKGrade        string `json:"tok_grade,omitempty"`
	EEGrade         string `json:"ee_grade,omitempty"`
	PredictedGrades bool   `json:"predicted_grades"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProgramFilter struct {
	FieldID   string
	CountryID string
	Verified  *bool
	Limit     int
	Offset    int
}

type CatalogStats struct {
	TotalPrograms    int     `json:"total_programs"`
	VerifiedPrograms int     `json:"verified_programs"`
	TotalStudents    int     `json:"total_students"`
	AvgMinPoints     float64 `json:"avg_min_points"`
}

type Store interface {
	ListPrograms(ctx context.Context, filter ProgramFilter) ([]*ProgramRow, error)
	ListActivePrograms(ctx context.Context) ([]*ProgramRow, error)
	GetProgram(ctx context.Context, id uuid.UUID) (*ProgramRow, error)

	GetStudent(ctx context.Context, id uuid.UUID) (*StudentRow, error)

	GetCatalogStats(ctx context.Context) (*CatalogStats, error)

	Close() error
}
