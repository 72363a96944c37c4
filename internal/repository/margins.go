package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"growwise-monitor/internal/models"
)

// PhaseMarginRepository reads phase alert margins.
type PhaseMarginRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPhaseMarginRepository creates the repository.
func NewPhaseMarginRepository(db *sql.DB, logger *zap.Logger) *PhaseMarginRepository {
	return &PhaseMarginRepository{
		db:     db,
		logger: logger,
	}
}

// GetMargin returns the tolerance margin for a phase, or (nil, nil)
// when none is configured. ph_margin is nullable; NULL disables pH
// checking for the phase.
func (r *PhaseMarginRepository) GetMargin(phase string) (*models.PhaseMargin, error) {
	query := `
		SELECT phase, temp_margin, rh_margin, ppfd_margin, ph_margin
		FROM phase_margins
		WHERE phase = $1
	`

	var m models.PhaseMargin
	var phMargin sql.NullFloat64

	err := r.db.QueryRow(query, phase).Scan(
		&m.Phase,
		&m.TempMargin,
		&m.RHMargin,
		&m.PPFDMargin,
		&phMargin,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query phase margin: %w", err)
	}

	m.PHMargin = nullableFloat(phMargin)

	return &m, nil
}
