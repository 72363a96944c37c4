package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"growwise-monitor/internal/models"
)

// VarietyRepository reads genetic varieties.
type VarietyRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewVarietyRepository creates the repository.
func NewVarietyRepository(db *sql.DB, logger *zap.Logger) *VarietyRepository {
	return &VarietyRepository{
		db:     db,
		logger: logger,
	}
}

// GetVarietyByID returns one variety, or (nil, nil) when the id is
// unknown. Alert messages fall back to a placeholder name in that
// case rather than failing the check.
func (r *VarietyRepository) GetVarietyByID(varietyID string) (*models.Variety, error) {
	query := `
		SELECT variety_id, variety_name, vega_weeks, flora_weeks
		FROM varieties
		WHERE variety_id = $1
	`

	var v models.Variety
	err := r.db.QueryRow(query, varietyID).Scan(
		&v.VarietyID,
		&v.VarietyName,
		&v.VegaWeeks,
		&v.FloraWeeks,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query variety: %w", err)
	}

	return &v, nil
}
