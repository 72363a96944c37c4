package target

import (
	"fmt"

	"go.uber.org/zap"

	"growwise-monitor/internal/models"
)

// PlantStore lists the distinct varieties of active plants in a space.
type PlantStore interface {
	GetActiveVarietyIDs(spaceID string) ([]string, error)
}

// TargetStore looks up one (variety, phase, week) range record.
type TargetStore interface {
	GetTarget(varietyID, phase string, week int) (*models.WeeklyTarget, error)
}

// Resolver finds the ideal range applicable to a space at a given
// phase and week. Every consumer of "which range applies here" must go
// through it; the multi-variety averaging lives only here.
type Resolver struct {
	plants  PlantStore
	targets TargetStore
	logger  *zap.Logger
}

// NewResolver creates the resolver.
func NewResolver(plants PlantStore, targets TargetStore, logger *zap.Logger) *Resolver {
	return &Resolver{
		plants:  plants,
		targets: targets,
		logger:  logger,
	}
}

// Resolve returns the applicable range record and the variety ids that
// contributed to it. The cycle decides the variety set: a cycle with
// its own variety uses that one; otherwise the distinct varieties of
// the space's active plants are used, averaging per field when more
// than one record exists.
//
// A nil record with nil error means "no target configured, nothing to
// check" and is a normal state, not a failure.
func (r *Resolver) Resolve(cycle *models.Cycle, phase string, week int) (*models.WeeklyTarget, []string, error) {
	if cycle == nil {
		return nil, nil, nil
	}

	var varietyIDs []string
	if cycle.VarietyID != nil {
		varietyIDs = []string{*cycle.VarietyID}
	} else {
		ids, err := r.plants.GetActiveVarietyIDs(cycle.SpaceID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to collect space varieties: %w", err)
		}
		varietyIDs = ids
	}

	if len(varietyIDs) == 0 {
		return nil, nil, nil
	}

	var records []*models.WeeklyTarget
	var contributed []string
	for _, id := range varietyIDs {
		record, err := r.targets.GetTarget(id, phase, week)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to look up target for variety %s: %w", id, err)
		}
		if record == nil {
			// an exact miss is a full miss, no adjacent-week fallback
			continue
		}
		records = append(records, record)
		contributed = append(contributed, id)
	}

	if len(records) == 0 {
		return nil, nil, nil
	}

	if len(records) == 1 {
		return records[0], contributed, nil
	}

	return averageTargets(records, phase, week), contributed, nil
}

// averageTargets computes the arithmetic mean of every environmental
// bound independently. Nil bounds are excluded per field, not per
// record; a field no record defines stays nil.
func averageTargets(records []*models.WeeklyTarget, phase string, week int) *models.WeeklyTarget {
	avg := &models.WeeklyTarget{
		Phase:      phase,
		WeekNumber: week,
	}

	avg.TempMin = meanOf(records, func(t *models.WeeklyTarget) *float64 { return t.TempMin })
	avg.TempMax = meanOf(records, func(t *models.WeeklyTarget) *float64 { return t.TempMax })
	avg.RHMin = meanOf(records, func(t *models.WeeklyTarget) *float64 { return t.RHMin })
	avg.RHMax = meanOf(records, func(t *models.WeeklyTarget) *float64 { return t.RHMax })
	avg.PPFDMin = meanOf(records, func(t *models.WeeklyTarget) *float64 { return t.PPFDMin })
	avg.PPFDMax = meanOf(records, func(t *models.WeeklyTarget) *float64 { return t.PPFDMax })
	avg.PHMin = meanOf(records, func(t *models.WeeklyTarget) *float64 { return t.PHMin })
	avg.PHMax = meanOf(records, func(t *models.WeeklyTarget) *float64 { return t.PHMax })

	return avg
}

func meanOf(records []*models.WeeklyTarget, field func(*models.WeeklyTarget) *float64) *float64 {
	var sum float64
	var count int
	for _, record := range records {
		if v := field(record); v != nil {
			sum += *v
			count++
		}
	}
	if count == 0 {
		return nil
	}
	mean := sum / float64(count)
	return &mean
}
