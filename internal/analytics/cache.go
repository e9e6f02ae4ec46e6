// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

package analytics

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/softhalostudio/studio/internal/config"
	"github.com/softhalostudio/studio/internal/logging"
	"github.com/softhalostudio/studio/internal/metrics"
	"github.com/softhalostudio/studio/internal/models"
)

const snapshotKey = "studio:analytics:snapshot"

// statsFetcher is what the cached service wraps; satisfied by *Client.
type statsFetcher interface {
	FetchStats(ctx context.Context) (*models.SiteStats, error)
}

// snapshotCache is the subset of the Redis client the service uses.
type snapshotCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Service serves dashboard stats, caching snapshots in Redis so repeated
// dashboard loads don't hammer the GA4 API. Without Redis configured it
// degrades to direct fetches.
type Service struct {
	fetcher statsFetcher
	cache   snapshotCache
	ttl     time.Duration
}

// NewService wraps a fetcher with an optional Redis snapshot cache.
// A nil cache client disables caching.
func NewService(fetcher statsFetcher, cfg *config.AnalyticsConfig, cache *redis.Client) *Service {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	s := &Service{fetcher: fetcher, ttl: ttl}
	if cache != nil {
		s.cache = cache
	}
	return s
}

// Stats returns the current dashboard snapshot, from cache when fresh.
// The bool reports whether the snapshot was served from cache. Cache
// failures are logged and treated as misses.
func (s *Service) Stats(ctx context.Context) (*models.SiteStats, bool, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, snapshotKey).Result()
		switch {
		case err == nil:
			var stats models.SiteStats
			uerr := json.Unmarshal([]byte(raw), &stats)
			if uerr == nil {
				metrics.AnalyticsCacheHits.Inc()
				return &stats, true, nil
			}
			logging.Warn().Err(uerr).Msg("discarding corrupt analytics snapshot")
		case err != redis.Nil:
			logging.Warn().Err(err).Msg("analytics cache read failed")
		}
		metrics.AnalyticsCacheMisses.Inc()
	}

	stats, err := s.fetcher.FetchStats(ctx)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, snapshotKey, raw, s.ttl).Err(); err != nil {
				logging.Warn().Err(err).Msg("analytics cache write failed")
			}
		}
	}

	return stats, false, nil
}

// NewCacheClient builds the Redis client for the snapshot cache, or nil
// when no address is configured.
func NewCacheClient(cfg *config.CacheConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
