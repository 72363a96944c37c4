package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"growwise-monitor/internal/models"
)

// AlertHistoryRepository owns the append-only audit trail. Entries are
// inserted once per emission and never updated or deleted.
type AlertHistoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAlertHistoryRepository creates the repository.
func NewAlertHistoryRepository(db *sql.DB, logger *zap.Logger) *AlertHistoryRepository {
	return &AlertHistoryRepository{
		db:     db,
		logger: logger,
	}
}

// CreateEntry appends one history entry.
func (r *AlertHistoryRepository) CreateEntry(ctx context.Context, entry *models.AlertHistoryEntry) error {
	if entry == nil {
		return fmt.Errorf("entry is required")
	}
	if entry.SpaceID == "" {
		return fmt.Errorf("space_id is required")
	}

	query := `
		INSERT INTO alert_history (
			entry_id, space_id, metric, value, ideal_min, ideal_max, message, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.EntryID,
		entry.SpaceID,
		entry.Metric,
		entry.Value,
		entry.IdealMin,
		entry.IdealMax,
		entry.Message,
		entry.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create history entry: %w", err)
	}

	return nil
}

// ListEntries returns a page of a space's history, newest first.
func (r *AlertHistoryRepository) ListEntries(ctx context.Context, spaceID string, page, size int) ([]*models.AlertHistoryEntry, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}

	query := `
		SELECT entry_id, space_id, metric, value, ideal_min, ideal_max, message, created_at
		FROM alert_history
		WHERE space_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, spaceID, size, (page-1)*size)
	if err != nil {
		return nil, fmt.Errorf("failed to query alert history: %w", err)
	}
	defer rows.Close()

	var entries []*models.AlertHistoryEntry
	for rows.Next() {
		var e models.AlertHistoryEntry
		if err := rows.Scan(
			&e.EntryID,
			&e.SpaceID,
			&e.Metric,
			&e.Value,
			&e.IdealMin,
			&e.IdealMax,
			&e.Message,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alert history: %w", err)
	}

	return entries, nil
}
