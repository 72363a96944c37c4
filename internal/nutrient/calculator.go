package nutrient

import (
	"math"
	"strconv"
	"strings"
)

// Conversion constants. These are the exact numbers the platform's
// stored recipes were tuned against; do not replace them with a more
// accurate chemistry model.
const (
	// fixed EC<->PPM conversion factor (640 scale)
	ppmPerEC = 640

	// empirical dissolved-salts to EC factor, mS/cm per g/L
	saltsToECFactor = 0.91

	// the mix estimator does not model pH buffering; it reports a
	// fixed slightly-acidic value
	estimatedMixPH = 6.0

	// pH differences below this are treated as already on target
	phDeadband = 0.1
)

// Product is one mineral salt going into a reservoir. NPK is a
// percentage string like "15.5-0-0"; the extra percentages cover the
// secondary nutrients the NPK triple leaves out. Products exist only as
// calculator input/output and are never persisted.
type Product struct {
	Name         string   `json:"name"`
	AmountGrams  float64  `json:"amount_grams"`
	NPK          string   `json:"npk,omitempty"`
	CalciumPct   *float64 `json:"calcium_pct,omitempty"`
	MagnesiumPct *float64 `json:"magnesium_pct,omitempty"`
	IronPct      *float64 `json:"iron_pct,omitempty"`
	SulfurPct    *float64 `json:"sulfur_pct,omitempty"`
}

// Mix is the estimated outcome of dissolving a set of products in a
// reservoir volume.
type Mix struct {
	NitrogenPPM   float64 `json:"nitrogen_ppm"`
	PhosphorusPPM float64 `json:"phosphorus_ppm"`
	PotassiumPPM  float64 `json:"potassium_ppm"`
	CalciumPPM    float64 `json:"calcium_ppm"`
	MagnesiumPPM  float64 `json:"magnesium_ppm"`
	IronPPM       float64 `json:"iron_ppm"`
	SulfurPPM     float64 `json:"sulfur_ppm"`
	ECEstimated   float64 `json:"ec_estimated"`
	PHEstimated   float64 `json:"ph_estimated"`
}

// PHAdjustment directions.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
	DirectionNone = "none"
)

// PHCorrection is a dosing suggestion for pH up/down solution.
type PHCorrection struct {
	Direction string  `json:"direction"`
	AmountMl  float64 `json:"amount_ml"`
}

// ECToPPM converts electrical conductivity (mS/cm) to parts per
// million on the 640 scale.
func ECToPPM(ec float64) int {
	return int(math.Round(ec * ppmPerEC))
}

// PPMToEC converts parts per million back to EC, rounded to two
// decimals.
func PPMToEC(ppm float64) float64 {
	return math.Round(ppm/ppmPerEC*100) / 100
}

// PHAdjustmentFor estimates how much pH up/down solution shifts the
// reservoir from current to target. Linear approximation: 1 mL moves
// the pH by 0.1 per 10 L of solution. Differences under the deadband
// need no correction. volumeLiters must be positive.
func PHAdjustmentFor(current, target, volumeLiters float64) PHCorrection {
	diff := target - current
	if math.Abs(diff) < phDeadband {
		return PHCorrection{Direction: DirectionNone, AmountMl: 0}
	}

	amount := math.Round(math.Abs(diff)*volumeLiters*10) / 10

	direction := DirectionDown
	if diff > 0 {
		direction = DirectionUp
	}

	return PHCorrection{Direction: direction, AmountMl: amount}
}

// MixNutrients estimates the nutrient concentrations and EC of
// dissolving the given products in volumeLiters of water.
// volumeLiters must be positive.
func MixNutrients(products []Product, volumeLiters float64) Mix {
	mix := Mix{PHEstimated: estimatedMixPH}

	var totalGramsPerLiter float64

	for _, p := range products {
		concentration := p.AmountGrams / volumeLiters // g/L
		totalGramsPerLiter += concentration

		n, ph, k, ok := parseNPK(p.NPK)
		if ok {
			mix.NitrogenPPM += ppmContribution(n, concentration)
			mix.PhosphorusPPM += ppmContribution(ph, concentration)
			mix.PotassiumPPM += ppmContribution(k, concentration)
		}

		if p.CalciumPct != nil {
			mix.CalciumPPM += ppmContribution(*p.CalciumPct, concentration)
		}
		if p.MagnesiumPct != nil {
			mix.MagnesiumPPM += ppmContribution(*p.MagnesiumPct, concentration)
		}
		if p.IronPct != nil {
			mix.IronPPM += ppmContribution(*p.IronPct, concentration)
		}
		if p.SulfurPct != nil {
			mix.SulfurPPM += ppmContribution(*p.SulfurPct, concentration)
		}
	}

	mix.ECEstimated = math.Round(totalGramsPerLiter*saltsToECFactor*100) / 100

	return mix
}

// ppmContribution converts a percentage of a g/L concentration into
// ppm: (percent/100) * g/L * 1000.
func ppmContribution(percent, gramsPerLiter float64) float64 {
	return percent / 100 * gramsPerLiter * 1000
}

// parseNPK splits an "N-P-K" percentage string such as "15.5-0-0".
// Malformed strings report ok=false and contribute nothing.
func parseNPK(s string) (n, p, k float64, ok bool) {
	if s == "" {
		return 0, 0, 0, false
	}

	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}

	vals := make([]float64, 3)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return 0, 0, 0, false
		}
		vals[i] = v
	}

	return vals[0], vals[1], vals[2], true
}
