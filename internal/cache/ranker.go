package cache

import (
	"context"
	"log/slog"

	"github.com/admitpath/compass/internal/match"
)

// CachedRanker fronts a batch ranker with the result cache. A nil cache
// means pass-through.
type CachedRanker struct {
	ranker  *match.Ranker
	results *ResultCache
	logger  *slog.Logger
}

func NewCachedRanker(ranker *match.Ranker, results *ResultCache, logger *slog.Logger) *CachedRanker {
	return &CachedRanker{ranker: ranker, results: results, logger: logger}
}

// Ranker exposes the wrapped ranker for callers that need the index.
func (r *CachedRanker) Ranker() *match.Ranker { return r.ranker }

// Rank returns the cached ranking when present, otherwise computes and
// stores it. Cache failures only cost the round trip.
func (r *CachedRanker) Rank(ctx context.Context, student *match.StudentProfile, filter match.CandidateFilter, opts match.Options) []match.MatchResult {
	if r.results == nil {
		return r.ranker.ScoreManyOptimized(student, filter, opts)
	}

	key := Key(student, filter, opts)
	if results, ok := r.results.Get(ctx, key); ok {
		if r.logger != nil {
			r.logger.Debug("ranking served from cache", "student", student.ID)
		}
		return results
	}

	results := r.ranker.ScoreManyOptimized(student, filter, opts)
	if err := r.results.Set(ctx, key, results); err != nil && r.logger != nil {
		r.logger.Warn("failed to cache ranking", "student", student.ID, "error", err)
	}
	return results
}

// Invalidate clears cached rankings after a catalog refresh.
func (r *CachedRanker) Invalidate(ctx context.Context) {
	if r.results == nil {
		return
	}
	if err := r.results.Invalidate(ctx); err != nil && r.logger != nil {
		r.logger.Warn("failed to invalidate result cache", "error", err)
	}
}
