// Package catalog owns the in-memory program index and keeps it fresh
// against the store. Ranking always runs against the most recent snapshot;
// a failed refresh keeps the previous one serving.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/admitpath/compass/internal/cache"
	"github.com/admitpath/compass/internal/config"
	"github.com/admitpath/compass/internal/events"
	"github.com/admitpath/compass/internal/match"
	"github.com/admitpath/compass/internal/metrics"
	"github.com/admitpath/compass/internal/store"
	"github.com/admitpath/compass/internal/transform"
)

type Catalog struct {
	store    store.Store
	results  *cache.ResultCache
	events   events.Client
	observer match.BatchObserver
	cfg      *config.Config
	logger   *slog.Logger

	mu     sync.RWMutex
	ranker *cache.CachedRanker
	size   int

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// New builds an empty catalog. Call Refresh before serving, then Start for
// periodic refreshes. Result cache, events client, and observer are all
// optional.
func New(s store.Store, results *cache.ResultCache, ev events.Client, observer match.BatchObserver, cfg *config.Config, logger *slog.Logger) *Catalog {
	c := &Catalog{
		store:    s,
		results:  results,
		events:   ev,
		observer: observer,
		cfg:      cfg,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
	c.install(nil)
	return c
}

func (c *Catalog) Start(ctx context.Context) {
	c.wg.Add(1)
	go c.refreshLoop(ctx)
}

func (c *Catalog) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
	c.wg.Wait()
}

func (c *Catalog) refreshLoop(ctx context.Context) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.cfg.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil {
				c.logger.Error("catalog refresh failed", "error", err)
				if c.events != nil {
					_ = c.events.Publish(events.SubjectCatalogDegraded(), events.CatalogRefreshedEvent{
						Programs:  c.Len(),
						Timestamp: time.Now().UTC(),
					})
				}
			}
		}
	}
}

// Refresh reloads active programs, rebuilds the index, and invalidates
// cached rankings. Rows that fail conversion are skipped and logged.
func (c *Catalog) Refresh(ctx context.Context) error {
	rows, err := c.store.ListActivePrograms(ctx)
	if err != nil {
		return fmt.Errorf("list programs: %w", err)
	}

	programs, errs := transform.Programs(rows)
	for _, convErr := range errs {
		c.logger.Warn("skipping invalid program", "error", convErr)
	}

	c.install(programs)

	if c.results != nil {
		if err := c.results.Invalidate(ctx); err != nil {
			c.logger.Warn("failed to invalidate result cache", "error", err)
		}
	}
	if c.events != nil {
		_ = c.events.Publish(events.SubjectCatalogRefreshed(), events.CatalogRefreshedEvent{
			Programs:  len(programs),
			Skipped:   len(errs),
			Timestamp: time.Now().UTC(),
		})
	}

	c.logger.Info("catalog refreshed", "programs", len(programs), "skipped", len(errs))
	return nil
}

func (c *Catalog) install(programs []*match.ProgramRequirements) {
	memo := match.NewMemoCache(c.cfg.Matching.MemoCacheSize, c.cfg.MemoTTL())
	ranker := match.NewRanker(match.NewProgramIndex(programs), memo, c.observer, c.logger)

	c.mu.Lock()
	c.ranker = cache.NewCachedRanker(ranker, c.results, c.logger)
	c.size = len(programs)
	c.mu.Unlock()

	metrics.CatalogPrograms.Set(float64(len(programs)))
}

// Rank scores the student against the current snapshot. With the optimized
// path disabled it falls back to the direct scorer over the full snapshot,
// which skips index, memo, and result cache.
func (c *Catalog) Rank(ctx context.Context, student *match.StudentProfile, filter match.CandidateFilter, opts match.Options) []match.MatchResult {
	c.mu.RLock()
	ranker := c.ranker
	c.mu.RUnlock()

	if !c.cfg.Matching.OptimizedEnabled {
		return match.ScoreMany(student, ranker.Ranker().Index().All(), opts)
	}
	return ranker.Rank(ctx, student, filter, opts)
}

// Program returns the indexed requirements for id, or nil when absent.
func (c *Catalog) Program(id string) *match.ProgramRequirements {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ranker.Ranker().Index().Get(id)
}

// Len is the number of indexed programs.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.size
}
