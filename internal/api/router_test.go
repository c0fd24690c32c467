package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/admitpath/compass/internal/catalog"
	"github.com/admitpath/compass/internal/config"
	"github.com/admitpath/compass/internal/store"
)

// Mocks
type mockStore struct {
	programs map[uuid.UUID]*store.ProgramRow
	students map[uuid.UUID]*store.StudentRow
}

func newMockStore() *mockStore {
	return &mockStore{
		programs: make(map[uuid.UUID]*store.ProgramRow),
		students: make(map[uuid.UUID]*store.StudentRow),
	}
}

func (m *mockStore) ListPrograms(_ context.Context, _ store.ProgramFilter) ([]*store.ProgramRow, error) {
	return m.listAll(), nil
}
func (m *mockStore) ListActivePrograms(_ context.Context) ([]*store.ProgramRow, error) {
	return m.listAll(), nil
}
func (m *mockStore) listAll() []*store.ProgramRow {
	var out []*store.ProgramRow
	for _, p := range m.programs {
		out = append(out, p)
	}
	return out
}
func (m *mockStore) GetProgram(_ context.Context, id uuid.UUID) (*store.ProgramRow, error) {
	return m.programs[id], nil
}
func (m *mockStore) GetStudent(_ context.Context, id uuid.UUID) (*store.StudentRow, error) {
	return m.students[id], nil
}
func (m *mockStore) GetCatalogStats(_ context.Context) (*store.CatalogStats, error) {
	return &store.CatalogStats{TotalPrograms: len(m.programs), TotalStudents: len(m.students)}, nil
}
func (m *mockStore) Close() error { return nil }

func (m *mockStore) addProgram(t *testing.T, field, country, programType string, minPoints *int, requirements string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	m.programs[id] = &store.ProgramRow{
		ID:           id,
		Name:         fmt.Sprintf("%s program", field),
		FieldID:      field,
		CountryID:    country,
		ProgramType:  programType,
		MinPoints:    minPoints,
		Requirements: []byte(requirements),
		Verified:     true,
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	return id
}

func (m *mockStore) addStudent(t *testing.T, points int, courses string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	m.students[id] = &store.StudentRow{
		ID:               id,
		TotalPoints:      points,
		Courses:          []byte(courses),
		InterestedFields: []string{"medicine"},
	}
	return id
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{APIKey: "test-key"},
		Matching: config.MatchingConfig{
			Mode:              "balanced",
			OptimizedEnabled:  true,
			MemoCacheSize:     64,
			ShortlistMargin:   5,
			RefreshIntervalMs: 60000,
		},
	}
}

func setupTestRouter(t *testing.T) (http.Handler, *mockStore, uuid.UUID, uuid.UUID) {
	t.Helper()
	ms := newMockStore()

	min := 36
	programID := ms.addProgram(t, "medicine", "uk", "FULL_REQUIREMENTS", &min, `{
		"subjects": [{"subject_id": "chemistry", "level": "HL", "min_grade": 6, "critical": true}]
	}`)
	ms.addProgram(t, "computer-science", "usa", "POINTS_ONLY", &min, "")

	studentID := ms.addStudent(t, 38, `[
		{"subject_id": "chemistry", "level": "HL", "grade": 7},
		{"subject_id": "biology", "level": "HL", "grade": 6},
		{"subject_id": "mathematics", "level": "SL", "grade": 6}
	]`)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testConfig()
	cat := catalog.New(ms, nil, nil, nil, cfg, logger)
	if err := cat.Refresh(context.Background()); err != nil {
		t.Fatalf("catalog refresh: %v", err)
	}

	return NewRouter(cat, ms, nil, cfg, logger), ms, programID, studentID
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMatchEndpoint(t *testing.T) {
	router, _, programID, studentID := setupTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/match", map[string]string{
		"student_id": studentID.String(),
		"program_id": programID.String(),
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	score, ok := result["overall_score"].(float64)
	if !ok {
		t.Fatal("expected overall_score in response")
	}
	if score < 0 || score > 1 {
		t.Errorf("score out of bounds: %f", score)
	}
	if result["category"] == "" {
		t.Error("expected category in response")
	}
}

func TestMatchEndpointProgramNotFound(t *testing.T) {
	router, _, _, studentID := setupTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/match", map[string]string{
		"student_id": studentID.String(),
		"program_id": uuid.New().String(),
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestMatchEndpointInlineStudentValidation(t *testing.T) {
	router, _, programID, _ := setupTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/match", map[string]interface{}{
		"program_id": programID.String(),
		"student": map[string]interface{}{
			"id":           "inline-1",
			"total_points": 50,
		},
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for 50 points, got %d", w.Code)
	}
}

func TestRankEndpoint(t *testing.T) {
	router, _, _, studentID := setupTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/rank", map[string]string{
		"student_id": studentID.String(),
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp RankResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Catalog != 2 {
		t.Errorf("expected catalog 2, got %d", resp.Catalog)
	}
	if len(resp.Results) == 0 {
		t.Fatal("expected results")
	}
	for i := 1; i < len(resp.Results); i++ {
		if resp.Results[i].OverallScore > resp.Results[i-1].OverallScore {
			t.Error("results not sorted descending")
		}
	}
}

func TestRankEndpointFieldFilter(t *testing.T) {
	router, _, _, studentID := setupTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/rank", map[string]interface{}{
		"student_id": studentID.String(),
		"fields":     []string{"medicine"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp RankResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Shortlisted != 1 {
		t.Errorf("expected 1 shortlisted, got %d", resp.Shortlisted)
	}
}

func TestRankEndpointLimit(t *testing.T) {
	router, _, _, studentID := setupTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/rank", map[string]interface{}{
		"student_id": studentID.String(),
		"limit":      1,
	})

	var resp RankResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Errorf("expected 1 result after limit, got %d", len(resp.Results))
	}
	if resp.Shortlisted != 2 {
		t.Errorf("shortlisted count must ignore limit, got %d", resp.Shortlisted)
	}
}

func TestExplainEndpoint(t *testing.T) {
	router, _, programID, studentID := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/api/v1/explain/"+programID.String()+"?student_id="+studentID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["adjustments"] == nil {
		t.Error("expected adjustments breakdown")
	}
	if resp["academic"] == nil {
		t.Error("expected academic breakdown")
	}
}

func TestStatsRequiresAPIKey(t *testing.T) {
	router, _, _, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/api/v1/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/api/v1/stats", nil)
	req.Header.Set("Authorization", "Bearer test-key")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with key, got %d", w.Code)
	}
}

func TestCatalogRefreshEndpoint(t *testing.T) {
	router, ms, _, _ := setupTestRouter(t)

	min := 30
	ms.addProgram(t, "law", "uk", "POINTS_ONLY", &min, "")

	req := httptest.NewRequest("POST", "/api/v1/catalog/refresh", nil)
	req.Header.Set("Authorization", "Bearer test-key")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["indexed"].(float64) != 3 {
		t.Errorf("expected 3 indexed after refresh, got %v", resp["indexed"])
	}
}

func TestMetricsRouterHealth(t *testing.T) {
	router := NewMetricsRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
