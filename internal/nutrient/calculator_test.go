package nutrient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestECToPPM_KnownValues(t *testing.T) {
	assert.Equal(t, 640, ECToPPM(1.0))
	assert.Equal(t, 960, ECToPPM(1.5))
	assert.Equal(t, 1280, ECToPPM(2.0))
}

func TestECPPM_RoundTrip(t *testing.T) {
	for _, ec := range []float64{0.2, 0.8, 1.0, 1.35, 1.5, 2.0, 2.75, 3.1} {
		ppm := ECToPPM(ec)
		back := PPMToEC(float64(ppm))
		assert.InDelta(t, ec, back, 0.01, "ec=%v", ec)
	}
}

func TestPHAdjustmentFor_Deadband(t *testing.T) {
	adj := PHAdjustmentFor(6.0, 6.05, 100)

	assert.Equal(t, DirectionNone, adj.Direction)
	assert.Equal(t, 0.0, adj.AmountMl)
}

func TestPHAdjustmentFor_Direction(t *testing.T) {
	up := PHAdjustmentFor(5.5, 6.0, 10)
	assert.Equal(t, DirectionUp, up.Direction)
	assert.Equal(t, 5.0, up.AmountMl)

	down := PHAdjustmentFor(6.5, 6.0, 10)
	assert.Equal(t, DirectionDown, down.Direction)
	assert.Equal(t, 5.0, down.AmountMl)
}

func TestPHAdjustmentFor_ScalesLinearlyWithVolume(t *testing.T) {
	small := PHAdjustmentFor(5.5, 6.0, 10)
	large := PHAdjustmentFor(5.5, 6.0, 20)

	assert.InDelta(t, 2*small.AmountMl, large.AmountMl, 0.05)
}

func TestMixNutrients_SingleSalt(t *testing.T) {
	products := []Product{
		{Name: "Calcium nitrate", AmountGrams: 10, NPK: "15.5-0-0", CalciumPct: pct(19)},
	}

	mix := MixNutrients(products, 10)

	// 1 g/L at 15.5% N -> 155 ppm N, 19% Ca -> 190 ppm Ca
	assert.InDelta(t, 155, mix.NitrogenPPM, 0.001)
	assert.InDelta(t, 0, mix.PhosphorusPPM, 0.001)
	assert.InDelta(t, 190, mix.CalciumPPM, 0.001)
	assert.InDelta(t, 0.91, mix.ECEstimated, 0.001)
	assert.Equal(t, 6.0, mix.PHEstimated)
}

func TestMixNutrients_ScaleInvariance(t *testing.T) {
	products := []Product{
		{Name: "Calcium nitrate", AmountGrams: 6, NPK: "15.5-0-0", CalciumPct: pct(19)},
		{Name: "Potassium nitrate", AmountGrams: 2, NPK: "13-0-46"},
		{Name: "Magnesium sulfate", AmountGrams: 3, NPK: "0-0-0", MagnesiumPct: pct(9.8), SulfurPct: pct(12.9)},
	}

	doubled := make([]Product, len(products))
	copy(doubled, products)
	for i := range doubled {
		doubled[i].AmountGrams *= 2
	}

	mix := MixNutrients(products, 10)
	mixDoubled := MixNutrients(doubled, 20)

	assert.InDelta(t, mix.NitrogenPPM, mixDoubled.NitrogenPPM, 0.001)
	assert.InDelta(t, mix.PhosphorusPPM, mixDoubled.PhosphorusPPM, 0.001)
	assert.InDelta(t, mix.PotassiumPPM, mixDoubled.PotassiumPPM, 0.001)
	assert.InDelta(t, mix.MagnesiumPPM, mixDoubled.MagnesiumPPM, 0.001)
	assert.InDelta(t, mix.SulfurPPM, mixDoubled.SulfurPPM, 0.001)
	assert.InDelta(t, mix.ECEstimated, mixDoubled.ECEstimated, 0.001)
}

func TestMixNutrients_MalformedNPKIgnored(t *testing.T) {
	products := []Product{
		{Name: "Mystery powder", AmountGrams: 5, NPK: "a-b-c"},
		{Name: "No label", AmountGrams: 5},
	}

	mix := MixNutrients(products, 10)

	assert.Equal(t, 0.0, mix.NitrogenPPM)
	// dissolved grams still count toward EC even without a label
	assert.InDelta(t, 0.91, mix.ECEstimated, 0.001)
}

func TestParseNPK(t *testing.T) {
	n, p, k, ok := parseNPK("13-0-46")
	assert.True(t, ok)
	assert.Equal(t, 13.0, n)
	assert.Equal(t, 0.0, p)
	assert.Equal(t, 46.0, k)

	_, _, _, ok = parseNPK("13-0")
	assert.False(t, ok)

	_, _, _, ok = parseNPK("")
	assert.False(t, ok)
}
