package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
)

const reportCacheKey = "tickets:report:closed"

// ReportCache caches the closed-ticket report in Redis for a short TTL.
// Status updates and deletions invalidate it. All methods are nil-safe and
// degrade to a cache miss on any Redis error, so the report endpoint never
// fails because the cache is down.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewReportCache builds the cache around an existing client.
func NewReportCache(r *Redis, ttl time.Duration, logger *zap.Logger) *ReportCache {
	if r == nil || r.Client == nil {
		return nil
	}
	return &ReportCache{client: r.Client, ttl: ttl, logger: logger}
}

// Get returns the cached report, if present.
func (c *ReportCache) Get(ctx context.Context) ([]domain.Ticket, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, reportCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var tickets []domain.Ticket
	if err := json.Unmarshal(raw, &tickets); err != nil {
		c.logger.Warn("dropping malformed report cache entry", zap.Error(err))
		_ = c.client.Del(ctx, reportCacheKey).Err()
		return nil, false
	}
	return tickets, true
}

// Set stores the report under the configured TTL.
func (c *ReportCache) Set(ctx context.Context, tickets []domain.Ticket) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(tickets)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, reportCacheKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache report", zap.Error(err))
	}
}

// Invalidate drops the cached report.
func (c *ReportCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, reportCacheKey).Err(); err != nil {
		c.logger.Warn("failed to invalidate report cache", zap.Error(err))
	}
}
