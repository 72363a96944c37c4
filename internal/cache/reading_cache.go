package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"growwise-monitor/internal/config"
	"growwise-monitor/internal/models"
)

// ReadingCache keeps the most recent sensor reading per space in
// Redis so the hourly sweep and the event path read the hot row
// without touching PostgreSQL.
type ReadingCache struct {
	config      *config.Config
	redisClient *redis.Client
	logger      *zap.Logger
}

// NewReadingCache creates the cache.
func NewReadingCache(cfg *config.Config, redisClient *redis.Client, logger *zap.Logger) *ReadingCache {
	return &ReadingCache{
		config:      cfg,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (c *ReadingCache) key(spaceID string) string {
	return fmt.Sprintf("%s%s%s",
		c.config.Cache.ReadingKeyPrefix,
		spaceID,
		c.config.Cache.ReadingSuffix,
	)
}

// GetLatestReading returns the cached reading for a space, or
// (nil, nil) on a cache miss.
func (c *ReadingCache) GetLatestReading(ctx context.Context, spaceID string) (*models.SensorReading, error) {
	val, err := c.redisClient.Get(ctx, c.key(spaceID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reading cache: %w", err)
	}

	var reading models.SensorReading
	if err := json.Unmarshal([]byte(val), &reading); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached reading: %w", err)
	}

	return &reading, nil
}

// SetLatestReading stores the reading with the configured TTL.
func (c *ReadingCache) SetLatestReading(ctx context.Context, reading *models.SensorReading) error {
	jsonData, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	err = c.redisClient.Set(
		ctx,
		c.key(reading.SpaceID),
		jsonData,
		time.Duration(c.config.Cache.ReadingTTL)*time.Second,
	).Err()

	if err != nil {
		return fmt.Errorf("failed to set reading cache: %w", err)
	}

	c.logger.Debug("Updated reading cache",
		zap.String("space_id", reading.SpaceID),
		zap.String("key", c.key(reading.SpaceID)),
	)

	return nil
}
