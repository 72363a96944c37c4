package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"growwise-monitor/internal/cache"
	"growwise-monitor/internal/config"
	"growwise-monitor/internal/consumer"
	"growwise-monitor/internal/detector"
	"growwise-monitor/internal/notifier"
	"growwise-monitor/internal/repository"
	"growwise-monitor/internal/sweep"
	"growwise-monitor/internal/target"
	"growwise-monitor/pkg/database"
	"growwise-monitor/pkg/mqttclient"
	"growwise-monitor/pkg/redisutil"
)

// MonitorService wires the deviation engine together: repositories
// over PostgreSQL, the Redis reading cache, the MQTT event path, the
// periodic fleet sweep, and the push notifier.
type MonitorService struct {
	config      *config.Config
	db          *sql.DB
	redisClient *redis.Client
	mqttClient  *mqttclient.Client
	logger      *zap.Logger

	readingCache    *cache.ReadingCache
	spaceRepo       *repository.GrowSpaceRepository
	cycleRepo       *repository.CycleRepository
	plantRepo       *repository.PlantRepository
	varietyRepo     *repository.VarietyRepository
	targetRepo      *repository.WeeklyTargetRepository
	marginRepo      *repository.PhaseMarginRepository
	readingRepo     *repository.ReadingRepository
	alertRepo       *repository.AlertRepository
	historyRepo     *repository.AlertHistoryRepository
	resolver        *target.Resolver
	detector        *detector.Detector
	sweeper         *sweep.Sweeper
	readingConsumer *consumer.ReadingConsumer
}

// NewMonitorService connects to the backing stores and builds every
// layer.
func NewMonitorService(cfg *config.Config, logger *zap.Logger) (*MonitorService, error) {
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	redisClient := redisutil.NewClient(&cfg.Redis)
	if err := redisutil.Ping(context.Background(), redisClient); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	mqttClient, err := mqttclient.NewClient(&cfg.MQTT, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	spaceRepo := repository.NewGrowSpaceRepository(db, logger)
	cycleRepo := repository.NewCycleRepository(db, logger)
	plantRepo := repository.NewPlantRepository(db, logger)
	varietyRepo := repository.NewVarietyRepository(db, logger)
	targetRepo := repository.NewWeeklyTargetRepository(db, logger)
	marginRepo := repository.NewPhaseMarginRepository(db, logger)
	readingRepo := repository.NewReadingRepository(db, logger)
	alertRepo := repository.NewAlertRepository(db, logger)
	historyRepo := repository.NewAlertHistoryRepository(db, logger)

	readingCache := cache.NewReadingCache(cfg, redisClient, logger)
	resolver := target.NewResolver(plantRepo, targetRepo, logger)

	var push detector.Notifier
	if cfg.Notify.GatewayURL != "" {
		push = notifier.NewPushNotifier(cfg.Notify.GatewayURL, cfg.Notify.Token, logger)
	} else {
		logger.Warn("No push gateway configured, notifications disabled")
		push = notifier.NopNotifier{}
	}

	det := detector.NewDetector(
		spaceRepo,
		cycleRepo,
		marginRepo,
		readingRepo,
		readingCache,
		varietyRepo,
		resolver,
		alertRepo,
		historyRepo,
		push,
		logger,
	)

	sweeper := sweep.NewSweeper(
		spaceRepo,
		det,
		time.Duration(cfg.Sweep.IntervalMinutes)*time.Minute,
		logger,
	)

	readingConsumer := consumer.NewReadingConsumer(cfg, readingRepo, readingCache, det, logger)

	return &MonitorService{
		config:          cfg,
		db:              db,
		redisClient:     redisClient,
		mqttClient:      mqttClient,
		logger:          logger,
		readingCache:    readingCache,
		spaceRepo:       spaceRepo,
		cycleRepo:       cycleRepo,
		plantRepo:       plantRepo,
		varietyRepo:     varietyRepo,
		targetRepo:      targetRepo,
		marginRepo:      marginRepo,
		readingRepo:     readingRepo,
		alertRepo:       alertRepo,
		historyRepo:     historyRepo,
		resolver:        resolver,
		detector:        det,
		sweeper:         sweeper,
		readingConsumer: readingConsumer,
	}, nil
}

// Start subscribes the event path and blocks in the sweep loop until
// the context is cancelled.
func (s *MonitorService) Start(ctx context.Context) error {
	s.logger.Info("Starting monitor service")

	if err := s.readingConsumer.Start(ctx, s.mqttClient); err != nil {
		return fmt.Errorf("failed to start reading consumer: %w", err)
	}

	return s.sweeper.Start(ctx)
}

// Stop closes every connection.
func (s *MonitorService) Stop() error {
	s.logger.Info("Stopping monitor service")

	if s.mqttClient != nil {
		s.mqttClient.Disconnect(250)
	}

	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close database",
			zap.Error(err),
		)
	}

	if err := s.redisClient.Close(); err != nil {
		s.logger.Error("Failed to close redis",
			zap.Error(err),
		)
	}

	return nil
}
