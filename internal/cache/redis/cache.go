// Package redis caches validated generative analysis results in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/logger"
	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/types"
	schemafiles "github.com/jonathan/resume-ats/schemas"
)

// DefaultTTL is used when Config.TTL is zero.
const DefaultTTL = 24 * time.Hour

// Config configures the cache connection
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// ResultCache stores AnalysisResults as JSON values under caller-supplied keys.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, cfg Config, log *zap.Logger) (*ResultCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	log = logger.OrNop(log)
	log.Info("redis result cache initialized", zap.String("addr", cfg.Addr), zap.Duration("ttl", ttl))
	return &ResultCache{client: client, ttl: ttl, log: log}, nil
}

// Get returns the cached result, or nil without error on a miss.
func (c *ResultCache) Get(ctx context.Context, key string) (*types.AnalysisResult, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached result: %w", err)
	}

	result, err := decode(data)
	if err != nil {
		return nil, err
	}
	c.log.Debug("result cache hit", zap.String("key", key))
	return result, nil
}

// Set stores result under key with the configured TTL.
func (c *ResultCache) Set(ctx context.Context, key string, result types.AnalysisResult) error {
	data, err := json.Marshal(result.Clone())
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache result: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (c *ResultCache) Close() error {
	return c.client.Close()
}

// decode checks a cached value against the stored result schema before use.
func decode(data []byte) (*types.AnalysisResult, error) {
	if err := schemas.Validate(schemafiles.AnalysisResult, string(data)); err != nil {
		return nil, fmt.Errorf("cached result is malformed: %w", err)
	}
	var result types.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached result: %w", err)
	}
	if !result.KeywordsDisjoint() {
		return nil, errors.New("cached result lists a keyword as both matched and missing")
	}
	return &result, nil
}
