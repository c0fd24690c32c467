package match

import "testing"

func catalog() []*ProgramRequirements {
	return []*ProgramRequirements{
		{ProgramID: "med-usa", Type: FullRequirements, MinPoints: intPtr(40), FieldID: "medicine", CountryID: "usa"},
		{ProgramID: "med-uk", Type: FullRequirements, MinPoints: intPtr(38), FieldID: "medicine", CountryID: "uk"},
		{ProgramID: "law-usa", Type: PointsOnly, MinPoints: intPtr(34), FieldID: "law", CountryID: "usa"},
		{ProgramID: "art-fr", Type: SubjectsOnly, FieldID: "art", CountryID: "france"},
		{ProgramID: "eng-de", Type: FullRequirements, MinPoints: intPtr(30), FieldID: "engineering", CountryID: "germany",
			Subjects: []SubjectRequirement{{SubjectID: "math", Level: LevelHL, MinGrade: 5}}},
	}
}

func TestProgramIndexShortlistByField(t *testing.T) {
	idx := NewProgramIndex(catalog())
	got := idx.Shortlist(CandidateFilter{Fields: []string{"medicine"}})
	if len(got) != 2 {
		t.Fatalf("expected 2 medicine programs, got %d", len(got))
	}
	for _, p := range got {
		if p.FieldID != "medicine" {
			t.Errorf("unexpected program %s", p.ProgramID)
		}
	}
}

func TestProgramIndexShortlistIntersectsDimensions(t *testing.T) {
	idx := NewProgramIndex(catalog())
	got := idx.Shortlist(CandidateFilter{
		Fields:    []string{"medicine", "law"},
		Countries: []string{"usa"},
	})
	ids := map[string]bool{}
	for _, p := range got {
		ids[p.ProgramID] = true
	}
	if !ids["med-usa"] || !ids["law-usa"] || len(ids) != 2 {
		t.Errorf("expected med-usa and law-usa, got %v", ids)
	}
}

func TestProgramIndexPointsDimension(t *testing.T) {
	idx := NewProgramIndex(catalog())
	got := idx.Shortlist(CandidateFilter{StudentPoints: 32, PointsMargin: 2})

	// Thresholds above 34 are out of reach; programs without a threshold
	// always pass.
	ids := map[string]bool{}
	for _, p := range got {
		ids[p.ProgramID] = true
	}
	if ids["med-usa"] {
		t.Error("40-point program should be excluded for a 32-point student with margin 2")
	}
	if !ids["art-fr"] {
		t.Error("program without a points threshold must never be excluded on points")
	}
	if !ids["eng-de"] || !ids["law-usa"] {
		t.Errorf("reachable programs missing: %v", ids)
	}
}

func TestProgramIndexEmptyFilterReturnsEverything(t *testing.T) {
	programs := catalog()
	idx := NewProgramIndex(programs)
	if got := idx.Shortlist(CandidateFilter{}); len(got) != len(programs) {
		t.Errorf("expected full catalog, got %d of %d", len(got), len(programs))
	}
	if got := idx.All(); len(got) != len(programs) {
		t.Errorf("All() returned %d of %d", len(got), len(programs))
	}
}

func TestProgramIndexGet(t *testing.T) {
	idx := NewProgramIndex(catalog())
	if idx.Get("med-usa") == nil {
		t.Error("expected med-usa present")
	}
	if idx.Get("nope") != nil {
		t.Error("expected nil for unknown program")
	}
	if idx.Len() != 5 {
		t.Errorf("expected 5 programs, got %d", idx.Len())
	}
}
