package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"growwise-monitor/internal/models"
)

// WeeklyTargetRepository reads ideal range records.
type WeeklyTargetRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewWeeklyTargetRepository creates the repository.
func NewWeeklyTargetRepository(db *sql.DB, logger *zap.Logger) *WeeklyTargetRepository {
	return &WeeklyTargetRepository{
		db:     db,
		logger: logger,
	}
}

// GetTarget does an exact-match lookup of (variety, phase, week).
// No interpolation across adjacent weeks: an exact miss returns
// (nil, nil).
func (r *WeeklyTargetRepository) GetTarget(varietyID, phase string, week int) (*models.WeeklyTarget, error) {
	query := `
		SELECT variety_id, phase, week_number,
		       temp_min, temp_max, rh_min, rh_max,
		       ppfd_min, ppfd_max, ph_min, ph_max,
		       ec_min, ec_max
		FROM weekly_targets
		WHERE variety_id = $1 AND phase = $2 AND week_number = $3
	`

	var t models.WeeklyTarget
	var tempMin, tempMax, rhMin, rhMax, ppfdMin, ppfdMax, phMin, phMax, ecMin, ecMax sql.NullFloat64

	err := r.db.QueryRow(query, varietyID, phase, week).Scan(
		&t.VarietyID,
		&t.Phase,
		&t.WeekNumber,
		&tempMin, &tempMax,
		&rhMin, &rhMax,
		&ppfdMin, &ppfdMax,
		&phMin, &phMax,
		&ecMin, &ecMax,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query weekly target: %w", err)
	}

	t.TempMin = nullableFloat(tempMin)
	t.TempMax = nullableFloat(tempMax)
	t.RHMin = nullableFloat(rhMin)
	t.RHMax = nullableFloat(rhMax)
	t.PPFDMin = nullableFloat(ppfdMin)
	t.PPFDMax = nullableFloat(ppfdMax)
	t.PHMin = nullableFloat(phMin)
	t.PHMax = nullableFloat(phMax)
	t.ECMin = nullableFloat(ecMin)
	t.ECMax = nullableFloat(ecMax)

	return &t, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
