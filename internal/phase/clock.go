package phase

import (
	"time"

	"growwise-monitor/internal/models"
)

// Drying never progresses past its second week regardless of how long
// the harvest hangs.
const maxDryingWeek = 2

// Derive answers "which phase and week is this space in right now"
// from the space category and the active cycle's recorded dates.
//
// Week numbers advance on whole elapsed days: day 0 through 6 after the
// reference date is week 1, day 7 starts week 2. The hour of day never
// matters. floraStart applies only to FLORA spaces; when it is nil the
// cycle start date is used instead, which covers cycles created
// directly in flora.
func Derive(category string, now, cycleStart time.Time, floraStart *time.Time) models.PhaseWeek {
	switch category {
	case models.CategoryMaintenance:
		// maintenance has no week progression
		return models.PhaseWeek{Phase: models.PhaseMaintenance, Week: 1}
	case models.CategoryVega:
		return models.PhaseWeek{Phase: models.PhaseVega, Week: weekSince(cycleStart, now)}
	case models.CategoryFlora:
		ref := cycleStart
		if floraStart != nil {
			ref = *floraStart
		}
		return models.PhaseWeek{Phase: models.PhaseFlora, Week: weekSince(ref, now)}
	case models.CategoryDrying:
		week := weekSince(cycleStart, now)
		if week > maxDryingWeek {
			week = maxDryingWeek
		}
		return models.PhaseWeek{Phase: models.PhaseDrying, Week: week}
	default:
		// unknown category behaves like maintenance rather than failing;
		// the surrounding system only ever writes the four known values
		return models.PhaseWeek{Phase: models.PhaseMaintenance, Week: 1}
	}
}

// weekSince returns floor(wholeDaysBetween(start, now)/7) + 1, never
// less than 1 even if now precedes start.
func weekSince(start, now time.Time) int {
	days := wholeDaysBetween(start, now)
	if days < 0 {
		days = 0
	}
	return days/7 + 1
}

// wholeDaysBetween counts calendar days from start to now. Both
// endpoints are reduced to their calendar date and rebuilt at UTC
// midnight before subtracting, so partial days never count and a DST
// transition inside the span cannot shorten a day.
func wholeDaysBetween(start, now time.Time) int {
	s := utcMidnight(start)
	n := utcMidnight(now.In(start.Location()))
	return int(n.Sub(s).Hours() / 24)
}

func utcMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
