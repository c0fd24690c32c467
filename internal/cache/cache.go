// Package cache provides a Redis-backed result cache for batch rankings.
// The cache is strictly an accelerator: any Redis failure degrades to a
// fresh computation and is never surfaced to callers.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/admitpath/compass/internal/match"
)

const keyPrefix = "compass:rank:"

// ResultCache stores serialized ranking results keyed by student, filter,
// and resolved weights.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResultCache(addr, password string, db int, ttl time.Duration) *ResultCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})
	return &ResultCache{client: rdb, ttl: ttl}
}

// NewResultCacheWithClient wires an existing client, used by tests.
func NewResultCacheWithClient(client *redis.Client, ttl time.Duration) *ResultCache {
	return &ResultCache{client: client, ttl: ttl}
}

func (c *ResultCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *ResultCache) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Get returns the cached ranking for key, or (nil, false) on miss or any
// Redis error.
func (c *ResultCache) Get(ctx context.Context, key string) ([]match.MatchResult, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var results []match.MatchResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, false
	}
	return results, true
}

// Set stores a ranking under key with the configured TTL. Errors are
// returned for logging but safe to ignore.
func (c *ResultCache) Set(ctx context.Context, key string, results []match.MatchResult) error {
	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Invalidate drops every cached ranking. Called when the catalog refreshes.
func (c *ResultCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Key derives a deterministic cache key from the ranking inputs. Courses,
// preferences, and the resolved weight triple are part of the digest, so a
// profile edit or a different weighting always misses.
func Key(student *match.StudentProfile, filter match.CandidateFilter, opts match.Options) string {
	weights := match.WeightsForMode(opts.Mode)
	if opts.Weights != nil {
		weights = *opts.Weights
	}
	var b strings.Builder
	b.WriteString(student.ID)
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(student.TotalPoints))
	b.WriteByte('|')
	for _, c := range student.Courses {
		fmt.Fprintf(&b, "%s:%s:%d;", c.SubjectID, c.Level, c.Grade)
	}
	b.WriteByte('|')
	b.WriteString(strings.Join(sorted(student.InterestedFields), ","))
	b.WriteByte('|')
	b.WriteString(strings.Join(sorted(student.PreferredCountries), ","))
	b.WriteByte('|')
	b.WriteString(strings.Join(sorted(filter.Fields), ","))
	b.WriteByte('|')
	b.WriteString(strings.Join(sorted(filter.Countries), ","))
	fmt.Fprintf(&b, "|%d|%d|%g:%g:%g", filter.StudentPoints, filter.PointsMargin,
		weights.Academic, weights.Location, weights.Field)

	sum := sha256.Sum256([]byte(b.String()))
	return keyPrefix + hex.EncodeToString(sum[:])
}

func sorted(values []string) []string {
	if len(values) < 2 {
		return values
	}
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}
