package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const programColumns = `id, name, university, field_id, country_id, program_type,
	min_points, requirements, verified, active, created_at, updated_at`

func (s *PostgresStore) ListPrograms(ctx context.Context, filter ProgramFilter) ([]*ProgramRow, error) {
	query := `SELECT ` + programColumns + ` FROM programs WHERE active = true`
	args := []interface{}{}
	n := 0

	if filter.FieldID != "" {
		n++
		query += fmt.Sprintf(" AND field_id = $%d", n)
		args = append(args, filter.FieldID)
	}
	if filter.CountryID != "" {
		n++
		query += fmt.Sprintf(" AND country_id = $%d", n)
		args = append(args, filter.CountryID)
	}
	if filter.Verified != nil {
		n++
		query += fmt.Sprintf(" AND verified = $%d", n)
		args = append(args, *filter.Verified)
	}

	query += " ORDER BY name ASC, id ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPrograms(rows)
}

func (s *PostgresStore) ListActivePrograms(ctx context.Context) ([]*ProgramRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+programColumns+`
		FROM programs WHERE active = true
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPrograms(rows)
}

func (s *PostgresStore) GetProgram(ctx context.Context, id uuid.UUID) (*ProgramRow, error) {
	p := &ProgramRow{}
	var university sql.NullString
	err := s.pool.QueryRow(ctx, `
		SELECT `+programColumns+`
		FROM programs WHERE id = $1`, id,
	).Scan(
		&p.ID, &p.Name, &university, &p.FieldID, &p.CountryID, &p.ProgramType,
		&p.MinPoints, &p.Requirements, &p.Verified, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if university.Valid {
		p.University = university.String
	}
	return p, nil
}

func (s *PostgresStore) GetStudent(ctx context.Context, id uuid.UUID) (*StudentRow, error) {
	st := &StudentRow{}
	var tok, ee sql.NullString
	err := s.pool.QueryRow(ctx, `
		SELECT id, total_points, courses, interested_fields, preferred_countries,
			tok_grade, ee_grade, predicted_grades, created_at, updated_at
		FROM students WHERE id = $1`, id,
	).Scan(
		&st.ID, &st.TotalPoints, &st.Courses, &st.InterestedFields, &st.PreferredCountries,
		&tok, &ee, &st.PredictedGrades, &st.CreatedAt, &st.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if tok.Valid {
		st.TOKGrade = tok.String
	}
	if ee.Valid {
		st.EEGrade = ee.String
	}
	return st, nil
}

func (s *PostgresStore) GetCatalogStats(ctx context.Context) (*CatalogStats, error) {
	stats := &CatalogStats{}
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM programs WHERE active = true),
			(SELECT COUNT(*) FROM programs WHERE active = true AND verified = true),
			(SELECT COUNT(*) FROM students),
			(SELECT COALESCE(AVG(min_points), 0) FROM programs WHERE active = true AND min_points IS NOT NULL)`,
	).Scan(&stats.TotalPrograms, &stats.VerifiedPrograms, &stats.TotalStudents, &stats.AvgMinPoints)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func scanPrograms(rows pgx.Rows) ([]*ProgramRow, error) {
	var programs []*ProgramRow
	for rows.Next() {
		p := &ProgramRow{}
		var university sql.NullString
		err := rows.Scan(
			&p.ID, &p.Name, &university, &p.FieldID, &p.CountryID, &p.ProgramType,
			&p.MinPoints, &p.Requirements, &p.Verified, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if university.Valid {
			p.University = university.String
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}
