package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"growwise-monitor/internal/config"
	"growwise-monitor/internal/models"
)

func setupTestCache(t *testing.T) (*miniredis.Miniredis, *ReadingCache) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cfg := &config.Config{}
	cfg.Cache.ReadingKeyPrefix = "growwise:space:"
	cfg.Cache.ReadingSuffix = ":latest"
	cfg.Cache.ReadingTTL = 3600

	return mr, NewReadingCache(cfg, redisClient, zap.NewNop())
}

func floatPtr(v float64) *float64 { return &v }

func TestReadingCache_RoundTrip(t *testing.T) {
	_, c := setupTestCache(t)
	ctx := context.Background()

	reading := &models.SensorReading{
		ReadingID: "reading-1",
		SpaceID:   "space-1",
		LogDate:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Turn:      models.TurnAM,
		TempC:     floatPtr(24.5),
		RH:        floatPtr(55),
	}

	require.NoError(t, c.SetLatestReading(ctx, reading))

	got, err := c.GetLatestReading(ctx, "space-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "reading-1", got.ReadingID)
	assert.Equal(t, "space-1", got.SpaceID)
	assert.Equal(t, models.TurnAM, got.Turn)
	require.NotNil(t, got.TempC)
	assert.Equal(t, 24.5, *got.TempC)
	assert.Nil(t, got.PH)
}

func TestReadingCache_MissReturnsNil(t *testing.T) {
	_, c := setupTestCache(t)

	got, err := c.GetLatestReading(context.Background(), "space-unknown")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReadingCache_KeyAndTTL(t *testing.T) {
	mr, c := setupTestCache(t)
	ctx := context.Background()

	reading := &models.SensorReading{
		ReadingID: "reading-2",
		SpaceID:   "space-2",
		LogDate:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Turn:      models.TurnPM,
	}
	require.NoError(t, c.SetLatestReading(ctx, reading))

	assert.True(t, mr.Exists("growwise:space:space-2:latest"))

	// entries expire so a decommissioned space does not linger forever
	mr.FastForward(2 * time.Hour)
	assert.False(t, mr.Exists("growwise:space:space-2:latest"))
}
