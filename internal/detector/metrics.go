package detector

import (
	"fmt"
	"strconv"

	"growwise-monitor/internal/models"
)

// Marker glyphs per metric. Notification bodies and history lists rely
// on these to tell metrics apart at a glance; keep them stable.
const (
	glyphTemp = "🌡️"
	glyphRH   = "💧"
	glyphPPFD = "💡"
	glyphPH   = "🧪"
)

// metricCheck is one metric's comparison input: the measured value,
// the resolved target bounds, and the phase tolerance. A nil margin
// disables the check (deliberate for pH in DRYING).
type metricCheck struct {
	metric   string
	glyph    string
	label    string
	unit     string
	value    *float64
	rangeMin *float64
	rangeMax *float64
	margin   *float64
}

// deviation marks a value outside the widened ideal band.
type deviation struct {
	direction string // "below" or "above"
	bound     float64
}

// metricChecks assembles the four checked metrics from a reading, a
// resolved range and a phase margin. EC is logged but never checked.
func metricChecks(reading *models.SensorReading, record *models.WeeklyTarget, margin *models.PhaseMargin) []metricCheck {
	tempMargin := margin.TempMargin
	rhMargin := margin.RHMargin
	ppfdMargin := margin.PPFDMargin

	return []metricCheck{
		{
			metric: models.MetricTemp, glyph: glyphTemp, label: "temperature", unit: "°C",
			value: reading.TempC, rangeMin: record.TempMin, rangeMax: record.TempMax, margin: &tempMargin,
		},
		{
			metric: models.MetricRH, glyph: glyphRH, label: "humidity", unit: "%",
			value: reading.RH, rangeMin: record.RHMin, rangeMax: record.RHMax, margin: &rhMargin,
		},
		{
			metric: models.MetricPPFD, glyph: glyphPPFD, label: "light intensity", unit: " µmol/m²/s",
			value: reading.PPFD, rangeMin: record.PPFDMin, rangeMax: record.PPFDMax, margin: &ppfdMargin,
		},
		{
			metric: models.MetricPH, glyph: glyphPH, label: "pH", unit: "",
			value: reading.PH, rangeMin: record.PHMin, rangeMax: record.PHMax, margin: margin.PHMargin,
		},
	}
}

// enabled requires a measured value, both target bounds, and a
// non-nil tolerance.
func (c metricCheck) enabled() bool {
	return c.value != nil && c.rangeMin != nil && c.rangeMax != nil && c.margin != nil
}

func (c metricCheck) idealMin() float64 { return *c.rangeMin - *c.margin }
func (c metricCheck) idealMax() float64 { return *c.rangeMax + *c.margin }

// evaluate applies the strict comparison: a value exactly at a widened
// bound never alerts.
func (c metricCheck) evaluate() *deviation {
	if !c.enabled() {
		return nil
	}
	if *c.value < c.idealMin() {
		return &deviation{direction: "below", bound: c.idealMin()}
	}
	if *c.value > c.idealMax() {
		return &deviation{direction: "above", bound: c.idealMax()}
	}
	return nil
}

// deviationMessage renders the alert text. The wording is
// presentation, but the included facts are contractual: space name,
// metric, measured value, violated bound, margin, variety name.
func deviationMessage(spaceName string, dev deviation, c metricCheck, varietyName string, pw models.PhaseWeek) string {
	boundWord := "minimum"
	if dev.direction == "above" {
		boundWord = "maximum"
	}

	return fmt.Sprintf("%s %s: %s %s%s %s ideal %s %s%s (target %s-%s ±%s, %s, %s week %d)",
		c.glyph,
		spaceName,
		c.label,
		fmtNum(*c.value),
		c.unit,
		dev.direction,
		boundWord,
		fmtNum(dev.bound),
		c.unit,
		fmtNum(*c.rangeMin),
		fmtNum(*c.rangeMax),
		fmtNum(*c.margin),
		varietyName,
		pw.Phase,
		pw.Week,
	)
}

// fmtNum renders floats without trailing zeros: 21 not 21.00, but
// 20.99 stays 20.99.
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
