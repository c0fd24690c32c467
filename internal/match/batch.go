package match

import (
	"log/slog"
	"sort"
	"time"
)

// ScoreMany scores a student against every given program through the
// direct path and returns results ordered by score descending, ties broken
// by ascending program ID.
func ScoreMany(student *StudentProfile, programs []*ProgramRequirements, opts Options) []MatchResult {
	weights := resolveWeights(opts)
	ev := newDirectEvaluator(student)

	results := make([]MatchResult, 0, len(programs))
	for _, p := range programs {
		results = append(results, scoreWithEvaluator(student, p, weights, ev))
	}
	sortResults(results)
	return results
}

// BatchObserver receives observability signals from the optimized path.
// Cache hit and miss counts are scoped to the observed call, not to the
// shared memo. Implementations must be safe for concurrent use.
type BatchObserver interface {
	ObserveRank(candidates, shortlisted int, duration time.Duration, cacheHits, cacheMisses uint64)
	ObserveCategory(category Category)
}

// Ranker orchestrates index, capability vector, and memo cache for batch
// ranking. All collaborators are injected; nothing here is a singleton.
type Ranker struct {
	index    *ProgramIndex
	memo     *MemoCache
	observer BatchObserver
	logger   *slog.Logger
}

// NewRanker creates a Ranker over an indexed catalog. Memo cache and
// observer are optional.
func NewRanker(index *ProgramIndex, memo *MemoCache, observer BatchObserver, logger *slog.Logger) *Ranker {
	return &Ranker{index: index, memo: memo, observer: observer, logger: logger}
}

// Index exposes the catalog index backing this ranker.
func (r *Ranker) Index() *ProgramIndex { return r.index }

// ScoreManyOptimized ranks the shortlisted catalog for one student. For
// the same candidate set its ordering is identical to ScoreMany: the
// index only removes candidates outside the filter, and the memo cache
// stores exact per-requirement results keyed by student fingerprint.
func (r *Ranker) ScoreManyOptimized(student *StudentProfile, filter CandidateFilter, opts Options) []MatchResult {
	start := time.Now()

	vector := NewCapabilityVector(student)
	candidates := r.index.Shortlist(filter)

	stats := &evalStats{}
	ev := subjectEvaluator{src: vector, memo: r.memo, studentKey: vector.Fingerprint(), stats: stats}
	weights := resolveWeights(opts)

	results := make([]MatchResult, 0, len(candidates))
	for _, p := range candidates {
		results = append(results, scoreWithEvaluator(student, p, weights, ev))
	}
	sortResults(results)

	if r.observer != nil {
		r.observer.ObserveRank(r.index.Len(), len(candidates), time.Since(start), stats.hits, stats.misses)
		for _, res := range results {
			r.observer.ObserveCategory(res.Category)
		}
	}
	if r.logger != nil {
		r.logger.Debug("ranked catalog",
			"student", student.ID,
			"catalog", r.index.Len(),
			"shortlisted", len(candidates),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return results
}

// sortResults orders by score descending, then program ID ascending. The
// tie-break keeps batch output a total, deterministic order.
func sortResults(results []MatchResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].OverallScore != results[j].OverallScore {
			return results[i].OverallScore > results[j].OverallScore
		}
		return results[i].ProgramID < results[j].ProgramID
	})
}
