package sweep

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"growwise-monitor/internal/detector"
	"growwise-monitor/internal/models"
)

// SpaceLister enumerates the fleet.
type SpaceLister interface {
	GetAllSpaces() ([]models.GrowSpace, error)
}

// SpaceChecker evaluates one space.
type SpaceChecker interface {
	CheckSpace(ctx context.Context, spaceID string) (*detector.CheckResult, error)
}

// SpaceResult is one space's outcome within a sweep.
type SpaceResult struct {
	SpaceID   string
	SpaceName string
	NewAlerts int
	Err       error
}

// Result summarizes one full sweep.
type Result struct {
	SpacesChecked  int
	TotalNewAlerts int
	Spaces         []SpaceResult
}

// Sweeper runs the deviation check across every known space on a
// fixed interval, in addition to the event-triggered path.
type Sweeper struct {
	spaces   SpaceLister
	checker  SpaceChecker
	interval time.Duration
	logger   *zap.Logger
}

// NewSweeper creates the sweeper.
func NewSweeper(spaces SpaceLister, checker SpaceChecker, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		spaces:   spaces,
		checker:  checker,
		interval: interval,
		logger:   logger,
	}
}

// CheckAllSpaces walks the fleet sequentially. A failing space is
// recorded and logged but never aborts the remaining iterations.
func (s *Sweeper) CheckAllSpaces(ctx context.Context) (*Result, error) {
	spaces, err := s.spaces.GetAllSpaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list grow spaces: %w", err)
	}

	result := &Result{}

	for _, space := range spaces {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		spaceResult := SpaceResult{SpaceID: space.SpaceID, SpaceName: space.SpaceName}

		check, err := s.checker.CheckSpace(ctx, space.SpaceID)
		if err != nil {
			spaceResult.Err = err
			s.logger.Error("Failed to check space",
				zap.String("space_id", space.SpaceID),
				zap.String("space_name", space.SpaceName),
				zap.Error(err),
			)
		} else {
			spaceResult.NewAlerts = check.AlertsGenerated
			result.TotalNewAlerts += check.AlertsGenerated
		}

		result.SpacesChecked++
		result.Spaces = append(result.Spaces, spaceResult)
	}

	s.logger.Info("Fleet sweep finished",
		zap.Int("spaces_checked", result.SpacesChecked),
		zap.Int("new_alerts", result.TotalNewAlerts),
	)

	return result, nil
}

// Start runs one sweep immediately, then repeats on the interval until
// the context is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	s.logger.Info("Fleet sweep started",
		zap.Duration("interval", s.interval),
	)

	if _, err := s.CheckAllSpaces(ctx); err != nil {
		s.logger.Error("Failed to run initial sweep",
			zap.Error(err),
		)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Fleet sweep stopped")
			return nil
		case <-ticker.C:
			if _, err := s.CheckAllSpaces(ctx); err != nil {
				s.logger.Error("Failed to run sweep",
					zap.Error(err),
				)
				// keep ticking, a bad pass must not stop the schedule
			}
		}
	}
}
