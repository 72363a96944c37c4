package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"growwise-monitor/internal/models"
)

// AlertRepository writes and lists deviation alerts. Alert rows are
// inserted here and only ever mutated in their status field, by the
// acknowledging side.
type AlertRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAlertRepository creates the repository.
func NewAlertRepository(db *sql.DB, logger *zap.Logger) *AlertRepository {
	return &AlertRepository{
		db:     db,
		logger: logger,
	}
}

// AlertFilters narrows ListAlerts.
type AlertFilters struct {
	SpaceID *string
	Metric  *string
	Status  *string
}

// CreateAlert inserts one alert row.
func (r *AlertRepository) CreateAlert(ctx context.Context, alert *models.Alert) error {
	if alert == nil {
		return fmt.Errorf("alert is required")
	}
	if alert.SpaceID == "" {
		return fmt.Errorf("space_id is required")
	}

	query := `
		INSERT INTO alerts (
			alert_id, space_id, metric, value, ideal_min, ideal_max, message, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		alert.AlertID,
		alert.SpaceID,
		alert.Metric,
		alert.Value,
		alert.IdealMin,
		alert.IdealMax,
		alert.Message,
		alert.Status,
		alert.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	return nil
}

// ListAlerts returns a page of alerts matching the filters, newest
// first, plus the total match count.
func (r *AlertRepository) ListAlerts(ctx context.Context, filters AlertFilters, page, size int) ([]*models.Alert, int, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}

	var conditions []string
	var args []interface{}
	argN := 1

	if filters.SpaceID != nil {
		conditions = append(conditions, fmt.Sprintf("space_id = $%d", argN))
		args = append(args, *filters.SpaceID)
		argN++
	}
	if filters.Metric != nil {
		conditions = append(conditions, fmt.Sprintf("metric = $%d", argN))
		args = append(args, *filters.Metric)
		argN++
	}
	if filters.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argN))
		args = append(args, *filters.Status)
		argN++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM alerts %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count alerts: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT alert_id, space_id, metric, value, ideal_min, ideal_max, message, status, created_at
		FROM alerts
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argN, argN+1)
	args = append(args, size, (page-1)*size)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*models.Alert
	for rows.Next() {
		var a models.Alert
		if err := rows.Scan(
			&a.AlertID,
			&a.SpaceID,
			&a.Metric,
			&a.Value,
			&a.IdealMin,
			&a.IdealMax,
			&a.Message,
			&a.Status,
			&a.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate alerts: %w", err)
	}

	return alerts, total, nil
}

// MarkSeen flips one NEW alert to SEEN.
func (r *AlertRepository) MarkSeen(ctx context.Context, alertID string) error {
	query := `
		UPDATE alerts
		SET status = $1
		WHERE alert_id = $2 AND status = $3
	`

	result, err := r.db.ExecContext(ctx, query, models.AlertSeen, alertID, models.AlertNew)
	if err != nil {
		return fmt.Errorf("failed to mark alert seen: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("alert not found or already seen: %s", alertID)
	}

	return nil
}
