package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"growwise-monitor/internal/models"
)

// PlantRepository reads individually tracked plants.
type PlantRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPlantRepository creates the repository.
func NewPlantRepository(db *sql.DB, logger *zap.Logger) *PlantRepository {
	return &PlantRepository{
		db:     db,
		logger: logger,
	}
}

// GetActiveVarietyIDs returns the distinct variety ids of all ACTIVE
// plants physically located in the space. Empty slice when the space
// has no tracked plants.
func (r *PlantRepository) GetActiveVarietyIDs(spaceID string) ([]string, error) {
	query := `
		SELECT DISTINCT variety_id
		FROM plants
		WHERE space_id = $1 AND status = $2
		ORDER BY variety_id
	`

	rows, err := r.db.Query(query, spaceID, models.PlantActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query plant varieties: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan variety id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plant varieties: %w", err)
	}

	return ids, nil
}
