package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/admitpath/compass/internal/match"
)

var (
	RankRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "compass_rank_requests_total",
			Help: "Total number of batch ranking requests",
		},
	)

	RankDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "compass_rank_duration_seconds",
			Help:    "Duration of batch ranking in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RankCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "compass_rank_candidates",
			Help:    "Catalog size seen by each ranking request",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000},
		},
	)

	RankShortlisted = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "compass_rank_shortlisted",
			Help:    "Programs surviving the index shortlist per request",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000},
		},
	)

	MemoHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "compass_memo_hits_total",
			Help: "Memo cache hits during ranking",
		},
	)

	MemoMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "compass_memo_misses_total",
			Help: "Memo cache misses during ranking",
		},
	)

	MatchCategories = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compass_match_categories_total",
			Help: "Match results by category",
		},
		[]string{"category"},
	)

	CatalogPrograms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "compass_catalog_programs",
			Help: "Programs currently indexed",
		},
	)
)

// Recorder bridges ranking observations into Prometheus.
type Recorder struct{}

var _ match.BatchObserver = Recorder{}

func (Recorder) ObserveRank(candidates, shortlisted int, duration time.Duration, cacheHits, cacheMisses uint64) {
	RankRequests.Inc()
	RankDuration.Observe(duration.Seconds())
	RankCandidates.Observe(float64(candidates))
	RankShortlisted.Observe(float64(shortlisted))
	MemoHits.Add(float64(cacheHits))
	MemoMisses.Add(float64(cacheMisses))
}

func (Recorder) ObserveCategory(category match.Category) {
	MatchCategories.WithLabelValues(string(category)).Inc()
}
