package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"growwise-monitor/internal/models"
)

// CycleRepository reads cultivation cycles.
type CycleRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCycleRepository creates the repository.
func NewCycleRepository(db *sql.DB, logger *zap.Logger) *CycleRepository {
	return &CycleRepository{
		db:     db,
		logger: logger,
	}
}

// GetActiveCycle returns the space's ACTIVE cycle, or (nil, nil) when
// no cycle is running. The surrounding system keeps at most one active
// cycle per space; if that invariant is ever broken the newest one
// wins here.
func (r *CycleRepository) GetActiveCycle(spaceID string) (*models.Cycle, error) {
	query := `
		SELECT cycle_id, space_id, variety_id, start_date, flora_start_date, cloning_start_date, status
		FROM cycles
		WHERE space_id = $1 AND status = $2
		ORDER BY start_date DESC
		LIMIT 1
	`

	var cycle models.Cycle
	var varietyID sql.NullString
	var floraStart, cloningStart sql.NullTime

	err := r.db.QueryRow(query, spaceID, models.CycleActive).Scan(
		&cycle.CycleID,
		&cycle.SpaceID,
		&varietyID,
		&cycle.StartDate,
		&floraStart,
		&cloningStart,
		&cycle.Status,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query active cycle: %w", err)
	}

	if varietyID.Valid {
		cycle.VarietyID = &varietyID.String
	}
	if floraStart.Valid {
		t := floraStart.Time
		cycle.FloraStartDate = &t
	}
	if cloningStart.Valid {
		t := cloningStart.Time
		cycle.CloningStartDate = &t
	}

	return &cycle, nil
}
