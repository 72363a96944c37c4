package nutrient

import (
	"math"

	"growwise-monitor/internal/models"
)

// Week caps for the feeding ramp. Weeks past the cap reuse the capped
// multiplier instead of scaling further.
const (
	vegaWeekCap  = 4
	floraWeekCap = 8
)

// saltDose is the gram dose of one salt per 10 L at multiplier 1.0.
type saltDose struct {
	name         string
	npk          string
	calciumPct   *float64
	magnesiumPct *float64
	ironPct      *float64
	sulfurPct    *float64
	gramsPer10L  float64
}

func pct(v float64) *float64 { return &v }

// baseSalts returns the salt list for a phase at multiplier 1.0.
// DRYING has no feeding at all (pure water flush).
func baseSalts(phase string) []saltDose {
	switch phase {
	case models.PhaseMaintenance:
		return []saltDose{
			{name: "Calcium nitrate", npk: "15.5-0-0", calciumPct: pct(19), gramsPer10L: 6},
			{name: "Potassium nitrate", npk: "13-0-46", gramsPer10L: 2},
			{name: "Monopotassium phosphate", npk: "0-52-34", gramsPer10L: 1},
			{name: "Magnesium sulfate", npk: "0-0-0", magnesiumPct: pct(9.8), sulfurPct: pct(12.9), gramsPer10L: 3},
			{name: "Micronutrient blend", npk: "0-0-0", ironPct: pct(7), gramsPer10L: 0.4},
		}
	case models.PhaseCloning:
		return []saltDose{
			{name: "Calcium nitrate", npk: "15.5-0-0", calciumPct: pct(19), gramsPer10L: 2},
			{name: "Potassium nitrate", npk: "13-0-46", gramsPer10L: 1},
			{name: "Monopotassium phosphate", npk: "0-52-34", gramsPer10L: 0.5},
			{name: "Magnesium sulfate", npk: "0-0-0", magnesiumPct: pct(9.8), sulfurPct: pct(12.9), gramsPer10L: 1},
			{name: "Micronutrient blend", npk: "0-0-0", ironPct: pct(7), gramsPer10L: 0.2},
		}
	case models.PhaseVega:
		return []saltDose{
			{name: "Calcium nitrate", npk: "15.5-0-0", calciumPct: pct(19), gramsPer10L: 9},
			{name: "Potassium nitrate", npk: "13-0-46", gramsPer10L: 4},
			{name: "Monopotassium phosphate", npk: "0-52-34", gramsPer10L: 1.5},
			{name: "Magnesium sulfate", npk: "0-0-0", magnesiumPct: pct(9.8), sulfurPct: pct(12.9), gramsPer10L: 4.5},
			{name: "Micronutrient blend", npk: "0-0-0", ironPct: pct(7), gramsPer10L: 0.5},
		}
	case models.PhaseFlora:
		return []saltDose{
			{name: "Calcium nitrate", npk: "15.5-0-0", calciumPct: pct(19), gramsPer10L: 7},
			{name: "Potassium nitrate", npk: "13-0-46", gramsPer10L: 5},
			{name: "Monopotassium phosphate", npk: "0-52-34", gramsPer10L: 4},
			{name: "Magnesium sulfate", npk: "0-0-0", magnesiumPct: pct(9.8), sulfurPct: pct(12.9), gramsPer10L: 5},
			{name: "Micronutrient blend", npk: "0-0-0", ironPct: pct(7), gramsPer10L: 0.5},
		}
	default:
		return nil
	}
}

// weekMultiplier ramps the feed strength of VEGA and FLORA with the
// week number, flat past the phase cap. Other phases feed at constant
// strength.
func weekMultiplier(phase string, week int) float64 {
	var capWeek int
	switch phase {
	case models.PhaseVega:
		capWeek = vegaWeekCap
	case models.PhaseFlora:
		capWeek = floraWeekCap
	default:
		return 1.0
	}

	if week < 1 {
		week = 1
	}
	if week > capWeek {
		week = capWeek
	}

	return 0.4 + 0.15*float64(week)
}

// RecommendedRecipe builds the salt shopping list for a phase and week
// scaled to the reservoir volume, plus the estimated resulting mix.
// DRYING always yields an empty list and an all-zero mix.
// volumeLiters must be positive.
func RecommendedRecipe(phase string, week int, volumeLiters float64) ([]Product, Mix) {
	if phase == models.PhaseDrying {
		return []Product{}, Mix{}
	}

	salts := baseSalts(phase)
	if len(salts) == 0 {
		return []Product{}, Mix{}
	}

	multiplier := weekMultiplier(phase, week)

	products := make([]Product, 0, len(salts))
	for _, s := range salts {
		grams := s.gramsPer10L * (volumeLiters / 10) * multiplier
		grams = math.Round(grams*100) / 100

		products = append(products, Product{
			Name:         s.name,
			AmountGrams:  grams,
			NPK:          s.npk,
			CalciumPct:   s.calciumPct,
			MagnesiumPct: s.magnesiumPct,
			IronPct:      s.ironPct,
			SulfurPct:    s.sulfurPct,
		})
	}

	return products, MixNutrients(products, volumeLiters)
}
