package detector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"growwise-monitor/internal/models"
	"growwise-monitor/internal/phase"
)

// Collaborator interfaces, satisfied by the repository and cache
// types. Small on purpose so tests substitute fakes.

// SpaceStore reads one grow space.
type SpaceStore interface {
	GetSpaceByID(spaceID string) (*models.GrowSpace, error)
}

// CycleStore reads the active cycle of a space.
type CycleStore interface {
	GetActiveCycle(spaceID string) (*models.Cycle, error)
}

// MarginStore reads the tolerance margin of a phase.
type MarginStore interface {
	GetMargin(phase string) (*models.PhaseMargin, error)
}

// ReadingStore reads the latest persisted reading of a space.
type ReadingStore interface {
	GetLatestReading(spaceID string) (*models.SensorReading, error)
}

// ReadingCache reads the cached latest reading, (nil, nil) on miss.
type ReadingCache interface {
	GetLatestReading(ctx context.Context, spaceID string) (*models.SensorReading, error)
}

// VarietyStore reads variety names for alert messages.
type VarietyStore interface {
	GetVarietyByID(varietyID string) (*models.Variety, error)
}

// TargetResolver finds the applicable range record.
type TargetResolver interface {
	Resolve(cycle *models.Cycle, phase string, week int) (*models.WeeklyTarget, []string, error)
}

// AlertStore persists alert rows.
type AlertStore interface {
	CreateAlert(ctx context.Context, alert *models.Alert) error
}

// HistoryStore appends audit entries.
type HistoryStore interface {
	CreateEntry(ctx context.Context, entry *models.AlertHistoryEntry) error
}

// Notifier delivers a best-effort push notification.
type Notifier interface {
	Notify(ctx context.Context, title, content string) error
}

// CheckResult is the outcome of one space evaluation.
type CheckResult struct {
	AlertsGenerated int
	Messages        []string
}

// Detector turns the latest sensor reading of a space into zero or
// more alerts. Every evaluation is a fresh, stateless decision based
// solely on that single reading; no hysteresis, no dedup against
// earlier emissions. The event path (new reading) and the periodic
// sweep may therefore both record the same ongoing condition.
type Detector struct {
	spaces    SpaceStore
	cycles    CycleStore
	margins   MarginStore
	readings  ReadingStore
	cache     ReadingCache // optional, may be nil
	varieties VarietyStore
	resolver  TargetResolver
	alerts    AlertStore
	history   HistoryStore
	notifier  Notifier
	logger    *zap.Logger
	now       func() time.Time
}

// NewDetector creates a detector. cache may be nil to always read the
// database.
func NewDetector(
	spaces SpaceStore,
	cycles CycleStore,
	margins MarginStore,
	readings ReadingStore,
	cache ReadingCache,
	varieties VarietyStore,
	resolver TargetResolver,
	alerts AlertStore,
	history HistoryStore,
	notifier Notifier,
	logger *zap.Logger,
) *Detector {
	return &Detector{
		spaces:    spaces,
		cycles:    cycles,
		margins:   margins,
		readings:  readings,
		cache:     cache,
		varieties: varieties,
		resolver:  resolver,
		alerts:    alerts,
		history:   history,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// SetClock overrides the time source, for tests.
func (d *Detector) SetClock(now func() time.Time) {
	d.now = now
}

// CheckSpace evaluates the latest reading of one space against its
// resolved ideal range widened by the phase margin. Incomplete setup
// (no reading, no active cycle, no target, no margin) returns a zero
// result, not an error.
func (d *Detector) CheckSpace(ctx context.Context, spaceID string) (*CheckResult, error) {
	result := &CheckResult{}

	reading, err := d.latestReading(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if reading == nil {
		return result, nil
	}

	space, err := d.spaces.GetSpaceByID(spaceID)
	if err != nil {
		return nil, err
	}
	if space == nil {
		return result, nil
	}

	cycle, err := d.cycles.GetActiveCycle(spaceID)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return result, nil
	}

	pw := phase.Derive(space.Category, d.now(), cycle.StartDate, cycle.FloraStartDate)

	record, varietyIDs, err := d.resolver.Resolve(cycle, pw.Phase, pw.Week)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return result, nil
	}

	margin, err := d.margins.GetMargin(pw.Phase)
	if err != nil {
		return nil, err
	}
	if margin == nil {
		return result, nil
	}

	varietyName := d.varietyName(varietyIDs)

	for _, c := range metricChecks(reading, record, margin) {
		deviation := c.evaluate()
		if deviation == nil {
			continue
		}

		msg := deviationMessage(space.SpaceName, *deviation, c, varietyName, pw)

		if err := d.persist(ctx, spaceID, c.metric, *c.value, c.idealMin(), c.idealMax(), msg); err != nil {
			d.logger.Error("Failed to persist alert",
				zap.String("space_id", spaceID),
				zap.String("metric", c.metric),
				zap.Error(err),
			)
			continue
		}

		result.AlertsGenerated++
		result.Messages = append(result.Messages, msg)
	}

	if result.AlertsGenerated > 0 {
		d.dispatch(ctx, space.SpaceName, result)
	}

	return result, nil
}

// latestReading prefers the cache, falling back to the database both
// on a miss and on a cache error.
func (d *Detector) latestReading(ctx context.Context, spaceID string) (*models.SensorReading, error) {
	if d.cache != nil {
		reading, err := d.cache.GetLatestReading(ctx, spaceID)
		if err != nil {
			d.logger.Warn("Reading cache unavailable, falling back to database",
				zap.String("space_id", spaceID),
				zap.Error(err),
			)
		} else if reading != nil {
			return reading, nil
		}
	}

	reading, err := d.readings.GetLatestReading(spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest reading: %w", err)
	}
	return reading, nil
}

// varietyName builds the display name for the varieties behind the
// resolved target. Unknown ids fall back to a generic placeholder.
func (d *Detector) varietyName(varietyIDs []string) string {
	var names []string
	for _, id := range varietyIDs {
		v, err := d.varieties.GetVarietyByID(id)
		if err != nil {
			d.logger.Warn("Failed to load variety name",
				zap.String("variety_id", id),
				zap.Error(err),
			)
			continue
		}
		if v != nil {
			names = append(names, v.VarietyName)
		}
	}

	if len(names) == 0 {
		return "unknown variety"
	}
	return strings.Join(names, " / ")
}

// persist writes the alert row and its audit twin. The history entry
// is written even if it duplicates information, it is the permanent
// trail and has no status lifecycle.
func (d *Detector) persist(ctx context.Context, spaceID, metric string, value, idealMin, idealMax float64, msg string) error {
	now := d.now()

	alert := &models.Alert{
		AlertID:   uuid.New().String(),
		SpaceID:   spaceID,
		Metric:    metric,
		Value:     value,
		IdealMin:  idealMin,
		IdealMax:  idealMax,
		Message:   msg,
		Status:    models.AlertNew,
		CreatedAt: now,
	}
	if err := d.alerts.CreateAlert(ctx, alert); err != nil {
		return err
	}

	entry := &models.AlertHistoryEntry{
		EntryID:   uuid.New().String(),
		SpaceID:   spaceID,
		Metric:    metric,
		Value:     value,
		IdealMin:  idealMin,
		IdealMax:  idealMax,
		Message:   msg,
		CreatedAt: now,
	}
	if err := d.history.CreateEntry(ctx, entry); err != nil {
		// the alert row is already in; history failure is logged, not
		// rolled back
		d.logger.Error("Failed to append alert history",
			zap.String("space_id", spaceID),
			zap.String("metric", metric),
			zap.Error(err),
		)
	}

	return nil
}

// dispatch sends one notification carrying all messages of this check.
// Failure never affects the persisted alerts or the returned count.
func (d *Detector) dispatch(ctx context.Context, spaceName string, result *CheckResult) {
	title := fmt.Sprintf("GrowWise: %d deviation(s) in %s", result.AlertsGenerated, spaceName)
	content := strings.Join(result.Messages, "\n")

	if err := d.notifier.Notify(ctx, title, content); err != nil {
		d.logger.Error("Failed to dispatch notification",
			zap.String("space", spaceName),
			zap.Error(err),
		)
	}
}
