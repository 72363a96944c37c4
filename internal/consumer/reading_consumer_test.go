package consumer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"growwise-monitor/internal/config"
	"growwise-monitor/internal/detector"
	"growwise-monitor/internal/models"
)

type fakeWriter struct {
	readings []*models.SensorReading
}

func (f *fakeWriter) InsertReading(ctx context.Context, reading *models.SensorReading) error {
	f.readings = append(f.readings, reading)
	return nil
}

type fakeCacher struct {
	readings []*models.SensorReading
}

func (f *fakeCacher) SetLatestReading(ctx context.Context, reading *models.SensorReading) error {
	f.readings = append(f.readings, reading)
	return nil
}

type fakeChecker struct {
	checked []string
}

func (f *fakeChecker) CheckSpace(ctx context.Context, spaceID string) (*detector.CheckResult, error) {
	f.checked = append(f.checked, spaceID)
	return &detector.CheckResult{}, nil
}

func setupConsumer() (*ReadingConsumer, *fakeWriter, *fakeCacher, *fakeChecker) {
	cfg := &config.Config{}
	cfg.Ingest.Topic = "growwise/spaces/+/readings"

	writer := &fakeWriter{}
	cacher := &fakeCacher{}
	checker := &fakeChecker{}

	c := NewReadingConsumer(cfg, writer, cacher, checker, zap.NewNop())
	return c, writer, cacher, checker
}

func TestHandleMessage_PersistsCachesAndChecks(t *testing.T) {
	c, writer, cacher, checker := setupConsumer()

	payload := []byte(`{"log_date":"2025-06-15","turn":"AM","temp_c":24.5,"rh":55}`)

	err := c.HandleMessage(context.Background(), "growwise/spaces/space-1/readings", payload)

	require.NoError(t, err)
	require.Len(t, writer.readings, 1)
	reading := writer.readings[0]
	assert.Equal(t, "space-1", reading.SpaceID)
	assert.Equal(t, models.TurnAM, reading.Turn)
	assert.NotEmpty(t, reading.ReadingID)
	require.NotNil(t, reading.TempC)
	assert.Equal(t, 24.5, *reading.TempC)
	assert.Nil(t, reading.PH)

	require.Len(t, cacher.readings, 1)
	assert.Equal(t, reading, cacher.readings[0])

	assert.Equal(t, []string{"space-1"}, checker.checked)
}

func TestHandleMessage_BadTopicRejected(t *testing.T) {
	c, writer, _, _ := setupConsumer()

	err := c.HandleMessage(context.Background(), "growwise/other/space-1", []byte(`{}`))

	assert.Error(t, err)
	assert.Empty(t, writer.readings)
}

func TestHandleMessage_InvalidDateRejected(t *testing.T) {
	c, writer, _, _ := setupConsumer()

	payload := []byte(`{"log_date":"15/06/2025","turn":"AM","temp_c":24.5}`)

	err := c.HandleMessage(context.Background(), "growwise/spaces/space-1/readings", payload)

	assert.Error(t, err)
	assert.Empty(t, writer.readings)
}

func TestHandleMessage_ImplausibleReadingRejected(t *testing.T) {
	c, writer, _, checker := setupConsumer()

	tests := []struct {
		name    string
		payload string
	}{
		{"bad turn", `{"log_date":"2025-06-15","turn":"NOON","temp_c":24}`},
		{"impossible temperature", `{"log_date":"2025-06-15","turn":"AM","temp_c":120}`},
		{"negative humidity", `{"log_date":"2025-06-15","turn":"PM","rh":-3}`},
		{"ph out of scale", `{"log_date":"2025-06-15","turn":"PM","ph":15}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.HandleMessage(context.Background(), "growwise/spaces/space-1/readings", []byte(tt.payload))
			assert.Error(t, err)
		})
	}

	assert.Empty(t, writer.readings)
	assert.Empty(t, checker.checked)
}
