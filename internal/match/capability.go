package match

type levelKey struct {
	subject string
	level   Level
}

// CapabilityVector is a per-student O(1) lookup index over the course
// list, for scoring one student against many programs. It implements the
// same lookup contract as the direct scan, so both paths score
// identically.
type CapabilityVector struct {
	fingerprint string
	grades      map[levelKey]int
	best        map[string]CourseRecord
	maxGrade    int
	courseCount int
}

// NewCapabilityVector precomputes (subject, level) → grade and the
// per-subject best record, preferring HL over SL when both exist.
func NewCapabilityVector(student *StudentProfile) *CapabilityVector {
	v := &CapabilityVector{
		fingerprint: courseFingerprint(student),
		grades:      make(map[levelKey]int, len(student.Courses)),
		best:        make(map[string]CourseRecord, len(student.Courses)),
		courseCount: len(student.Courses),
	}
	for _, c := range student.Courses {
		key := levelKey{subject: c.SubjectID, level: c.Level}
		if c.Grade > v.grades[key] {
			v.grades[key] = c.Grade
		}
		if cur, ok := v.best[c.SubjectID]; !ok || betterRecord(c, cur) {
			v.best[c.SubjectID] = c
		}
		if c.Grade > v.maxGrade {
			v.maxGrade = c.Grade
		}
	}
	return v
}

// betterRecord prefers HL over SL, then the higher grade.
func betterRecord(a, b CourseRecord) bool {
	if a.Level != b.Level {
		return a.Level == LevelHL
	}
	return a.Grade > b.Grade
}

// Fingerprint identifies the underlying course set, for memo-cache scoping.
func (v *CapabilityVector) Fingerprint() string { return v.fingerprint }

// BestGrade returns the student's best record for a subject, HL preferred.
func (v *CapabilityVector) BestGrade(subjectID string) (CourseRecord, bool) {
	rec, ok := v.best[subjectID]
	return rec, ok
}

// MaxGrade is the highest grade across all courses.
func (v *CapabilityVector) MaxGrade() int { return v.maxGrade }

// CourseCount is the number of courses indexed.
func (v *CapabilityVector) CourseCount() int { return v.courseCount }

func (v *CapabilityVector) gradeAt(subjectID string, level Level) (int, bool) {
	g, ok := v.grades[levelKey{subject: subjectID, level: level}]
	return g, ok
}

func (v *CapabilityVector) bestAtOrAbove(subjectID string, level Level) (int, bool) {
	best, found := v.gradeAt(subjectID, level)
	if level == LevelSL {
		if hl, ok := v.gradeAt(subjectID, LevelHL); ok && (!found || hl > best) {
			best, found = hl, true
		}
	}
	return best, found
}
