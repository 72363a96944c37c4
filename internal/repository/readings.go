package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"growwise-monitor/internal/models"
)

// ReadingRepository reads and writes sensor readings.
type ReadingRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReadingRepository creates the repository.
func NewReadingRepository(db *sql.DB, logger *zap.Logger) *ReadingRepository {
	return &ReadingRepository{
		db:     db,
		logger: logger,
	}
}

// GetLatestReading returns the newest reading for a space by log date,
// PM before AM on the same date. (nil, nil) when the space has no
// readings yet.
func (r *ReadingRepository) GetLatestReading(spaceID string) (*models.SensorReading, error) {
	query := `
		SELECT reading_id, space_id, log_date, turn, temp_c, rh, ppfd, ph, ec
		FROM sensor_readings
		WHERE space_id = $1
		ORDER BY log_date DESC, CASE WHEN turn = 'PM' THEN 1 ELSE 0 END DESC
		LIMIT 1
	`

	var reading models.SensorReading
	var tempC, rh, ppfd, ph, ec sql.NullFloat64

	err := r.db.QueryRow(query, spaceID).Scan(
		&reading.ReadingID,
		&reading.SpaceID,
		&reading.LogDate,
		&reading.Turn,
		&tempC, &rh, &ppfd, &ph, &ec,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query latest reading: %w", err)
	}

	reading.TempC = nullableFloat(tempC)
	reading.RH = nullableFloat(rh)
	reading.PPFD = nullableFloat(ppfd)
	reading.PH = nullableFloat(ph)
	reading.EC = nullableFloat(ec)

	return &reading, nil
}

// InsertReading persists one reading.
func (r *ReadingRepository) InsertReading(ctx context.Context, reading *models.SensorReading) error {
	if reading == nil {
		return fmt.Errorf("reading is required")
	}
	if reading.SpaceID == "" {
		return fmt.Errorf("space_id is required")
	}

	query := `
		INSERT INTO sensor_readings (
			reading_id, space_id, log_date, turn, temp_c, rh, ppfd, ph, ec
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		reading.ReadingID,
		reading.SpaceID,
		reading.LogDate,
		reading.Turn,
		reading.TempC,
		reading.RH,
		reading.PPFD,
		reading.PH,
		reading.EC,
	)

	if err != nil {
		return fmt.Errorf("failed to insert reading: %w", err)
	}

	return nil
}
