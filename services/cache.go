package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"housing-report/models"
)

const summaryKeyPrefix = "housing-report:summary:"

// SummaryCache memoises dataset summaries in Redis, keyed by the dataset
// fingerprint. A cache without a client is disabled and never fails.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache connects to redisURL and pings it once. An empty URL
// returns a disabled cache.
func NewSummaryCache(ctx context.Context, redisURL string, ttl time.Duration) (*SummaryCache, error) {
	if redisURL == "" {
		return &SummaryCache{}, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return &SummaryCache{}, fmt.Errorf("cache: invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return &SummaryCache{}, fmt.Errorf("cache: redis ping: %w", err)
	}

	return &SummaryCache{client: client, ttl: ttl}, nil
}

// Available reports whether a Redis client is configured.
func (c *SummaryCache) Available() bool {
	return c != nil && c.client != nil
}

// Get returns the cached summary for fingerprint, if any.
func (c *SummaryCache) Get(ctx context.Context, fingerprint string) (*models.DatasetSummary, bool, error) {
	if !c.Available() {
		return nil, false, nil
	}
	val, err := c.client.Get(ctx, summaryKeyPrefix+fingerprint).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var summary models.DatasetSummary
	if err := json.Unmarshal(val, &summary); err != nil {
		return nil, false, err
	}
	return &summary, true, nil
}

// Set stores summary under fingerprint.
func (c *SummaryCache) Set(ctx context.Context, fingerprint string, summary *models.DatasetSummary) error {
	if !c.Available() {
		return nil
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, summaryKeyPrefix+fingerprint, data, c.ttl).Err()
}

func (c *SummaryCache) Close() error {
	if !c.Available() {
		return nil
	}
	return c.client.Close()
}
