package match

import (
	"fmt"
	"strconv"
	"strings"
)

// subjectEvaluator resolves per-requirement matches through a lookup
// source, optionally memoizing results. Both scoring paths funnel through
// it, so batch and direct output stay identical.
type subjectEvaluator struct {
	src        courseLookup
	memo       *MemoCache
	studentKey string
	stats      *evalStats
}

// evalStats counts memo outcomes for a single scoring call. The memo's own
// counters are process-global and cannot attribute lookups to one batch
// when several batches share the cache.
type evalStats struct {
	hits   uint64
	misses uint64
}

func newDirectEvaluator(student *StudentProfile) subjectEvaluator {
	return subjectEvaluator{src: courseList(student.Courses)}
}

func (e subjectEvaluator) matchSubject(req SubjectRequirement) SubjectMatch {
	if e.memo == nil {
		return matchSubjectLookup(req, e.src)
	}
	key := e.studentKey + "|" + requirementFingerprint(req)
	if m, ok := e.memo.Get(key); ok {
		e.count(true)
		return m
	}
	e.count(false)
	m := matchSubjectLookup(req, e.src)
	e.memo.Put(key, m)
	return m
}

func (e subjectEvaluator) matchGroup(group ORGroupRequirement) SubjectMatch {
	if e.memo == nil {
		return matchGroupLookup(group, e.src)
	}
	key := e.studentKey + "|" + groupFingerprint(group)
	if m, ok := e.memo.Get(key); ok {
		e.count(true)
		return m
	}
	e.count(false)
	m := matchGroupLookup(group, e.src)
	e.memo.Put(key, m)
	return m
}

func (e subjectEvaluator) count(hit bool) {
	if e.stats == nil {
		return
	}
	if hit {
		e.stats.hits++
	} else {
		e.stats.misses++
	}
}

// requirementFingerprint is a structural identity for memo keys: two
// requirements with the same fingerprint score identically for any student.
func requirementFingerprint(req SubjectRequirement) string {
	crit := "n"
	if req.Critical {
		crit = "c"
	}
	return req.SubjectID + ":" + string(req.Level) + ":" + strconv.Itoa(req.MinGrade) + ":" + crit
}

// groupFingerprint additionally covers option display names: the group
// result records the matched option's name, so two groups that differ only
// in naming must not share a memo entry.
func groupFingerprint(group ORGroupRequirement) string {
	parts := make([]string, 0, len(group.Options)+1)
	parts = append(parts, "or")
	for _, opt := range group.Options {
		parts = append(parts, requirementFingerprint(opt)+":"+opt.SubjectName)
	}
	return strings.Join(parts, "|")
}

// courseFingerprint identifies a course set for memo scoping. Order matters
// only as declared; scoring is order-independent, so a canonical join of
// the declared list is sufficient and cheap.
func courseFingerprint(student *StudentProfile) string {
	if student.ID != "" {
		return student.ID
	}
	var b strings.Builder
	for _, c := range student.Courses {
		fmt.Fprintf(&b, "%s:%s:%d;", c.SubjectID, c.Level, c.Grade)
	}
	return b.String()
}
