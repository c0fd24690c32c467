package match

// pointsBucketWidth groups programs by minimum points into coarse bands
// for shortlisting.
const pointsBucketWidth = 5

// noPointsBucket collects programs without a minimum-points threshold;
// they can never be excluded on points.
const noPointsBucket = -1

// ProgramIndex is a multi-key pre-filter over the program catalog. It is a
// performance optimization only: a program excluded by Shortlist must be
// genuinely outside the caller's filter, never a scoring decision.
type ProgramIndex struct {
	programs map[string]*ProgramRequirements
	ids      []string // insertion order, for deterministic iteration

	byField   map[string]map[string]struct{}
	byCountry map[string]map[string]struct{}
	byBucket  map[int]map[string]struct{}
	bySubject map[string]map[string]struct{}
}

// CandidateFilter narrows the catalog before scoring. Zero-valued
// dimensions are skipped: an empty filter shortlists everything.
type CandidateFilter struct {
	Fields    []string
	Countries []string

	// StudentPoints plus PointsMargin bounds the highest minimum-points
	// threshold worth scoring; 0 disables the points dimension.
	StudentPoints int
	PointsMargin  int
}

// NewProgramIndex builds the index over a full catalog.
func NewProgramIndex(programs []*ProgramRequirements) *ProgramIndex {
	idx := &ProgramIndex{
		programs:  make(map[string]*ProgramRequirements, len(programs)),
		byField:   map[string]map[string]struct{}{},
		byCountry: map[string]map[string]struct{}{},
		byBucket:  map[int]map[string]struct{}{},
		bySubject: map[string]map[string]struct{}{},
	}
	for _, p := range programs {
		if _, dup := idx.programs[p.ProgramID]; dup {
			continue
		}
		idx.programs[p.ProgramID] = p
		idx.ids = append(idx.ids, p.ProgramID)

		addKey(idx.byField, p.FieldID, p.ProgramID)
		addKey(idx.byCountry, p.CountryID, p.ProgramID)
		addBucket(idx.byBucket, p.MinPoints, p.ProgramID)
		for _, req := range p.Subjects {
			addKey(idx.bySubject, req.SubjectID, p.ProgramID)
		}
		for _, group := range p.SubjectGroups {
			for _, opt := range group.Options {
				addKey(idx.bySubject, opt.SubjectID, p.ProgramID)
			}
		}
	}
	return idx
}

// Len is the catalog size.
func (idx *ProgramIndex) Len() int { return len(idx.programs) }

// Get returns a program by ID, or nil.
func (idx *ProgramIndex) Get(programID string) *ProgramRequirements {
	return idx.programs[programID]
}

// All returns the entire catalog in insertion order: the graceful
// degradation path when no filter applies.
func (idx *ProgramIndex) All() []*ProgramRequirements {
	out := make([]*ProgramRequirements, 0, len(idx.ids))
	for _, id := range idx.ids {
		out = append(out, idx.programs[id])
	}
	return out
}

// Shortlist returns the candidates compatible with the filter, in
// insertion order. Each active dimension intersects: field membership,
// country membership, and a minimum-points threshold no higher than
// StudentPoints+PointsMargin (programs without a threshold always pass).
func (idx *ProgramIndex) Shortlist(filter CandidateFilter) []*ProgramRequirements {
	fieldSet := unionKeys(idx.byField, filter.Fields)
	countrySet := unionKeys(idx.byCountry, filter.Countries)

	var pointsSet map[string]struct{}
	if filter.StudentPoints > 0 {
		limit := filter.StudentPoints + filter.PointsMargin
		pointsSet = map[string]struct{}{}
		for bucket, ids := range idx.byBucket {
			if bucket == noPointsBucket || bucket*pointsBucketWidth <= limit {
				for id := range ids {
					pointsSet[id] = struct{}{}
				}
			}
		}
	}

	out := make([]*ProgramRequirements, 0, len(idx.ids))
	for _, id := range idx.ids {
		if fieldSet != nil {
			if _, ok := fieldSet[id]; !ok {
				continue
			}
		}
		if countrySet != nil {
			if _, ok := countrySet[id]; !ok {
				continue
			}
		}
		if pointsSet != nil {
			if _, ok := pointsSet[id]; !ok {
				continue
			}
		}
		out = append(out, idx.programs[id])
	}
	return out
}

func addKey(m map[string]map[string]struct{}, key, id string) {
	if key == "" {
		return
	}
	if m[key] == nil {
		m[key] = map[string]struct{}{}
	}
	m[key][id] = struct{}{}
}

func addBucket(m map[int]map[string]struct{}, minPoints *int, id string) {
	bucket := noPointsBucket
	if minPoints != nil {
		bucket = *minPoints / pointsBucketWidth
	}
	if m[bucket] == nil {
		m[bucket] = map[string]struct{}{}
	}
	m[bucket][id] = struct{}{}
}

// unionKeys returns nil when the dimension is inactive (no keys given).
func unionKeys(m map[string]map[string]struct{}, keys []string) map[string]struct{} {
	if len(keys) == 0 {
		return nil
	}
	out := map[string]struct{}{}
	for _, k := range keys {
		for id := range m[k] {
			out[id] = struct{}{}
		}
	}
	return out
}
