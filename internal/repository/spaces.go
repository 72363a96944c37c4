package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"growwise-monitor/internal/models"
)

// GrowSpaceRepository reads growing spaces.
type GrowSpaceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewGrowSpaceRepository creates the repository.
func NewGrowSpaceRepository(db *sql.DB, logger *zap.Logger) *GrowSpaceRepository {
	return &GrowSpaceRepository{
		db:     db,
		logger: logger,
	}
}

// GetSpaceByID returns one space. A missing space is an error: checks
// are always triggered with an id that came from this table.
func (r *GrowSpaceRepository) GetSpaceByID(spaceID string) (*models.GrowSpace, error) {
	query := `
		SELECT space_id, space_name, category
		FROM grow_spaces
		WHERE space_id = $1
	`

	var space models.GrowSpace
	err := r.db.QueryRow(query, spaceID).Scan(
		&space.SpaceID,
		&space.SpaceName,
		&space.Category,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("grow space not found: %s", spaceID)
		}
		return nil, fmt.Errorf("failed to query grow space: %w", err)
	}

	return &space, nil
}

// GetAllSpaces returns every space, ordered by id for a stable sweep
// order.
func (r *GrowSpaceRepository) GetAllSpaces() ([]models.GrowSpace, error) {
	query := `
		SELECT space_id, space_name, category
		FROM grow_spaces
		ORDER BY space_id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query grow spaces: %w", err)
	}
	defer rows.Close()

	var spaces []models.GrowSpace
	for rows.Next() {
		var space models.GrowSpace
		if err := rows.Scan(&space.SpaceID, &space.SpaceName, &space.Category); err != nil {
			return nil, fmt.Errorf("failed to scan grow space: %w", err)
		}
		spaces = append(spaces, space)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate grow spaces: %w", err)
	}

	return spaces, nil
}
