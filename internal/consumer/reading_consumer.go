package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"growwise-monitor/internal/config"
	"growwise-monitor/internal/detector"
	"growwise-monitor/internal/models"
	"growwise-monitor/pkg/mqttclient"
)

// Subscriber is the piece of the MQTT client the consumer needs.
type Subscriber interface {
	Subscribe(topic string, qos byte, handler mqttclient.MessageHandler) error
}

// ReadingWriter persists incoming readings.
type ReadingWriter interface {
	InsertReading(ctx context.Context, reading *models.SensorReading) error
}

// ReadingCacher refreshes the latest-reading cache.
type ReadingCacher interface {
	SetLatestReading(ctx context.Context, reading *models.SensorReading) error
}

// SpaceChecker triggers the immediate deviation check.
type SpaceChecker interface {
	CheckSpace(ctx context.Context, spaceID string) (*detector.CheckResult, error)
}

// readingPayload is the wire shape published by the logging frontend.
// The space id comes from the topic, not the body.
type readingPayload struct {
	LogDate string   `json:"log_date"` // YYYY-MM-DD
	Turn    string   `json:"turn"`
	TempC   *float64 `json:"temp_c,omitempty"`
	RH      *float64 `json:"rh,omitempty"`
	PPFD    *float64 `json:"ppfd,omitempty"`
	PH      *float64 `json:"ph,omitempty"`
	EC      *float64 `json:"ec,omitempty"`
}

// ReadingConsumer subscribes to the reading topic and runs the event
// path: persist, refresh cache, check the space right away.
type ReadingConsumer struct {
	config   *config.Config
	readings ReadingWriter
	cache    ReadingCacher
	checker  SpaceChecker
	logger   *zap.Logger
}

// NewReadingConsumer creates the consumer.
func NewReadingConsumer(
	cfg *config.Config,
	readings ReadingWriter,
	cache ReadingCacher,
	checker SpaceChecker,
	logger *zap.Logger,
) *ReadingConsumer {
	return &ReadingConsumer{
		config:   cfg,
		readings: readings,
		cache:    cache,
		checker:  checker,
		logger:   logger,
	}
}

// Start subscribes to the configured topic filter.
func (c *ReadingConsumer) Start(ctx context.Context, subscriber Subscriber) error {
	topic := c.config.Ingest.Topic

	err := subscriber.Subscribe(topic, c.config.MQTT.QoS, func(msgTopic string, payload []byte) error {
		return c.HandleMessage(ctx, msgTopic, payload)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to readings: %w", err)
	}

	c.logger.Info("Reading consumer started",
		zap.String("topic", topic),
	)

	return nil
}

// HandleMessage processes one inbound reading message.
func (c *ReadingConsumer) HandleMessage(ctx context.Context, topic string, payload []byte) error {
	spaceID, err := spaceIDFromTopic(topic)
	if err != nil {
		return err
	}

	var body readingPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return fmt.Errorf("failed to unmarshal reading payload: %w", err)
	}

	logDate, err := time.Parse("2006-01-02", body.LogDate)
	if err != nil {
		return fmt.Errorf("invalid log_date %q: %w", body.LogDate, err)
	}

	reading := &models.SensorReading{
		ReadingID: uuid.New().String(),
		SpaceID:   spaceID,
		LogDate:   logDate,
		Turn:      body.Turn,
		TempC:     body.TempC,
		RH:        body.RH,
		PPFD:      body.PPFD,
		PH:        body.PH,
		EC:        body.EC,
	}

	if !reading.IsPlausible() {
		return fmt.Errorf("implausible reading for space %s rejected", spaceID)
	}

	if err := c.readings.InsertReading(ctx, reading); err != nil {
		return fmt.Errorf("failed to persist reading: %w", err)
	}

	if err := c.cache.SetLatestReading(ctx, reading); err != nil {
		// cache refresh is best effort, the database row is the truth
		c.logger.Warn("Failed to refresh reading cache",
			zap.String("space_id", spaceID),
			zap.Error(err),
		)
	}

	result, err := c.checker.CheckSpace(ctx, spaceID)
	if err != nil {
		c.logger.Error("Failed to check space after new reading",
			zap.String("space_id", spaceID),
			zap.Error(err),
		)
		// the reading itself is stored, the periodic sweep will retry
		return nil
	}

	c.logger.Debug("Reading ingested",
		zap.String("space_id", spaceID),
		zap.Int("new_alerts", result.AlertsGenerated),
	)

	return nil
}

// spaceIDFromTopic extracts the id from growwise/spaces/<id>/readings.
func spaceIDFromTopic(topic string) (string, error) {
	parts := strings.Split(topic, "/")
	if len(parts) != 4 || parts[0] != "growwise" || parts[1] != "spaces" || parts[3] != "readings" || parts[2] == "" {
		return "", fmt.Errorf("unexpected reading topic: %s", topic)
	}
	return parts[2], nil
}
