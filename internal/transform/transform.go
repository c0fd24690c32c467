// Package transform converts persisted catalog rows into engine inputs,
// validating at the boundary so the scoring core can assume well-formed
// data.
package transform

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/admitpath/compass/internal/match"
	"github.com/admitpath/compass/internal/store"
)

var validate = validator.New()

type courseDTO struct {
	SubjectID string `json:"subject_id" validate:"required"`
	Level     string `json:"level" validate:"required,oneof=HL SL"`
	Grade     int    `json:"grade" validate:"min=1,max=7"`
}

type subjectDTO struct {
	SubjectID   string `json:"subject_id" validate:"required"`
	SubjectName string `json:"subject_name"`
	Level       string `json:"level" validate:"required,oneof=HL SL"`
	MinGrade    int    `json:"min_grade" validate:"min=1,max=7"`
	Critical    bool   `json:"critical"`
}

type groupDTO struct {
	Options []subjectDTO `json:"options" validate:"min=1,dive"`
}

type requirementsDTO struct {
	Subjects      []subjectDTO `json:"subjects" validate:"dive"`
	SubjectGroups []groupDTO   `json:"subject_groups" validate:"dive"`
}

type studentDTO struct {
	TotalPoints int         `json:"total_points" validate:"min=24,max=45"`
	Courses     []courseDTO `json:"courses" validate:"dive"`
}

// Program converts a catalog row into engine requirements.
func Program(row *store.ProgramRow) (*match.ProgramRequirements, error) {
	var dto requirementsDTO
	if len(row.Requirements) > 0 {
		if err := json.Unmarshal(row.Requirements, &dto); err != nil {
			return nil, fmt.Errorf("parse requirements for program %s: %w", row.ID, err)
		}
		if err := validate.Struct(&dto); err != nil {
			return nil, fmt.Errorf("invalid requirements for program %s: %w", row.ID, err)
		}
	}

	p := &match.ProgramRequirements{
		ProgramID: row.ID.String(),
		Name:      row.Name,
		Type:      match.ProgramType(row.ProgramType),
		MinPoints: row.MinPoints,
		FieldID:   row.FieldID,
		CountryID: row.CountryID,
		Verified:  row.Verified,
	}
	switch p.Type {
	case match.FullRequirements, match.PointsOnly, match.SubjectsOnly:
	default:
		return nil, fmt.Errorf("program %s: unknown type %q", row.ID, row.ProgramType)
	}
	if p.Type != match.SubjectsOnly && p.MinPoints == nil {
		return nil, fmt.Errorf("program %s: type %s requires min_points", row.ID, p.Type)
	}

	for _, s := range dto.Subjects {
		p.Subjects = append(p.Subjects, subjectRequirement(s))
	}
	for _, g := range dto.SubjectGroups {
		group := match.ORGroupRequirement{}
		for _, opt := range g.Options {
			group.Options = append(group.Options, subjectRequirement(opt))
		}
		p.SubjectGroups = append(p.SubjectGroups, group)
	}
	return p, nil
}

// Programs converts rows in bulk, skipping invalid rows and reporting them
// through the returned slice of errors. A bad row never blocks the rest of
// the catalog.
func Programs(rows []*store.ProgramRow) ([]*match.ProgramRequirements, []error) {
	programs := make([]*match.ProgramRequirements, 0, len(rows))
	var errs []error
	for _, row := range rows {
		p, err := Program(row)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		programs = append(programs, p)
	}
	return programs, errs
}

// Student converts a persisted student row into an engine profile.
func Student(row *store.StudentRow) (*match.StudentProfile, error) {
	dto := studentDTO{TotalPoints: row.TotalPoints}
	if len(row.Courses) > 0 {
		if err := json.Unmarshal(row.Courses, &dto.Courses); err != nil {
			return nil, fmt.Errorf("parse courses for student %s: %w", row.ID, err)
		}
	}
	if err := validate.Struct(&dto); err != nil {
		return nil, fmt.Errorf("invalid student %s: %w", row.ID, err)
	}

	profile := &match.StudentProfile{
		ID:                 row.ID.String(),
		TotalPoints:        row.TotalPoints,
		InterestedFields:   row.InterestedFields,
		PreferredCountries: row.PreferredCountries,
		TOKGrade:           row.TOKGrade,
		EEGrade:            row.EEGrade,
		PredictedGrades:    row.PredictedGrades,
	}
	for _, c := range dto.Courses {
		profile.Courses = append(profile.Courses, match.CourseRecord{
			SubjectID: c.SubjectID,
			Level:     match.Level(c.Level),
			Grade:     c.Grade,
		})
	}
	return profile, nil
}

func subjectRequirement(s subjectDTO) match.SubjectRequirement {
	return match.SubjectRequirement{
		SubjectID:   s.SubjectID,
		SubjectName: s.SubjectName,
		Level:       match.Level(s.Level),
		MinGrade:    s.MinGrade,
		Critical:    s.Critical,
	}
}
