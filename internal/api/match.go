package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/admitpath/compass/internal/catalog"
	"github.com/admitpath/compass/internal/config"
	"github.com/admitpath/compass/internal/events"
	"github.com/admitpath/compass/internal/match"
	"github.com/admitpath/compass/internal/store"
	"github.com/admitpath/compass/internal/transform"
)

type MatchHandler struct {
	catalog *catalog.Catalog
	store   store.Store
	events  events.Client
	cfg     *config.Config
}

func NewMatchHandler(c *catalog.Catalog, s store.Store, ev events.Client, cfg *config.Config) *MatchHandler {
	return &MatchHandler{catalog: c, store: s, events: ev, cfg: cfg}
}

type MatchRequest struct {
	StudentID string                     `json:"student_id,omitempty"`
	Student   *match.StudentProfile      `json:"student,omitempty"`
	ProgramID string                     `json:"program_id,omitempty"`
	Program   *match.ProgramRequirements `json:"program,omitempty"`
	Mode      string                     `json:"mode,omitempty"`
}

type RankRequest struct {
	StudentID string                `json:"student_id,omitempty"`
	Student   *match.StudentProfile `json:"student,omitempty"`

	Fields    []string `json:"fields,omitempty"`
	Countries []string `json:"countries,omitempty"`

	// PointsMargin widens the points shortlist band; nil uses the
	// configured default, a negative value disables the band.
	PointsMargin *int `json:"points_margin,omitempty"`

	Limit int    `json:"limit,omitempty"`
	Mode  string `json:"mode,omitempty"`
}

type RankResponse struct {
	StudentID   string              `json:"student_id"`
	Catalog     int                 `json:"catalog"`
	Shortlisted int                 `json:"shortlisted"`
	Results     []match.MatchResult `json:"results"`
}

// Score computes a single student-program match.
// POST /api/v1/match
func (h *MatchHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	student, ok := h.resolveStudent(w, r, req.StudentID, req.Student)
	if !ok {
		return
	}

	program := req.Program
	if program == nil {
		if req.ProgramID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "program or program_id required"})
			return
		}
		program = h.catalog.Program(req.ProgramID)
		if program == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "program not found"})
			return
		}
	}

	result := match.ScoreOne(student, program, h.options(req.Mode))

	if h.events != nil {
		_ = h.events.Publish(events.SubjectMatchScored(student.ID), events.MatchScoredEvent{
			StudentID:    student.ID,
			ProgramID:    result.ProgramID,
			OverallScore: result.OverallScore,
			Category:     string(result.Category),
			Confidence:   string(result.Confidence),
		})
	}

	writeJSON(w, http.StatusOK, result)
}

// Rank scores the student against the catalog and returns the ordered list.
// POST /api/v1/rank
func (h *MatchHandler) Rank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	student, ok := h.resolveStudent(w, r, req.StudentID, req.Student)
	if !ok {
		return
	}

	filter := match.CandidateFilter{
		Fields:    req.Fields,
		Countries: req.Countries,
	}
	margin := h.cfg.Matching.ShortlistMargin
	if req.PointsMargin != nil {
		margin = *req.PointsMargin
	}
	if margin >= 0 {
		filter.StudentPoints = student.TotalPoints
		filter.PointsMargin = margin
	}

	start := time.Now()
	results := h.catalog.Rank(r.Context(), student, filter, h.options(req.Mode))
	shortlisted := len(results)

	if req.Limit > 0 && len(results) > req.Limit {
		results = results[:req.Limit]
	}

	if h.events != nil {
		ev := events.RankCompletedEvent{
			StudentID:   student.ID,
			Candidates:  h.catalog.Len(),
			Shortlisted: shortlisted,
			DurationMs:  time.Since(start).Milliseconds(),
			Timestamp:   time.Now().UTC(),
		}
		if len(results) > 0 {
			ev.TopProgram = results[0].ProgramID
			ev.TopScore = results[0].OverallScore
		}
		for _, res := range results {
			switch res.Category {
			case match.CategorySafety:
				ev.Safety++
			case match.CategoryMatch:
				ev.Match++
			case match.CategoryReach:
				ev.Reach++
			default:
				ev.Unlikely++
			}
		}
		_ = h.events.Publish(events.SubjectRankCompleted(student.ID), ev)
	}

	writeJSON(w, http.StatusOK, RankResponse{
		StudentID:   student.ID,
		Catalog:     h.catalog.Len(),
		Shortlisted: shortlisted,
		Results:     results,
	})
}

// Explain returns the full scoring breakdown for one pair.
// GET /api/v1/explain/{program_id}?student_id=...
func (h *MatchHandler) Explain(w http.ResponseWriter, r *http.Request) {
	program := h.catalog.Program(chi.URLParam(r, "program_id"))
	if program == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "program not found"})
		return
	}

	student, ok := h.resolveStudent(w, r, r.URL.Query().Get("student_id"), nil)
	if !ok {
		return
	}

	result := match.ScoreOne(student, program, h.options(r.URL.Query().Get("mode")))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"student_id":  student.ID,
		"program_id":  program.ProgramID,
		"result":      result,
		"adjustments": result.Adjustments,
		"academic":    result.Academic,
		"weights":     result.Weights,
	})
}

// options resolves scoring options: an explicit request mode wins, then the
// configured custom weights, then the configured mode preset.
func (h *MatchHandler) options(mode string) match.Options {
	if mode != "" {
		return match.Options{Mode: match.WeightMode(mode)}
	}
	opts := match.Options{Mode: match.WeightMode(h.cfg.Matching.Mode)}
	if w := h.cfg.Matching.Weights; w.Academic+w.Location+w.Field > 0 {
		wc := match.WeightConfig{Academic: w.Academic, Location: w.Location, Field: w.Field}
		if wc.Validate() == nil {
			opts.Weights = &wc
		}
	}
	return opts
}

func (h *MatchHandler) resolveStudent(w http.ResponseWriter, r *http.Request, studentID string, inline *match.StudentProfile) (*match.StudentProfile, bool) {
	if inline != nil {
		if inline.TotalPoints < match.MinDiplomaPoints || inline.TotalPoints > match.MaxDiplomaPoints {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "total_points out of range"})
			return nil, false
		}
		for _, c := range inline.Courses {
			if c.Grade < 1 || c.Grade > 7 {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "course grade out of range"})
				return nil, false
			}
		}
		return inline, true
	}

	id, err := uuid.Parse(studentID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid student_id"})
		return nil, false
	}
	row, err := h.store.GetStudent(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	if row == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "student not found"})
		return nil, false
	}
	student, err := transform.Student(row)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return nil, false
	}
	return student, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
