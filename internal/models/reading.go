package models

import "time"

// Half-day turn markers for sensor readings.
const (
	TurnAM = "AM"
	TurnPM = "PM"
)

// SensorReading is one logged environment measurement for a space.
// Every value is optional; a reading may carry any subset.
type SensorReading struct {
	ReadingID string    `json:"reading_id"`
	SpaceID   string    `json:"space_id"`
	LogDate   time.Time `json:"log_date"`
	Turn      string    `json:"turn"`
	TempC     *float64  `json:"temp_c,omitempty"`
	RH        *float64  `json:"rh,omitempty"`
	PPFD      *float64  `json:"ppfd,omitempty"`
	PH        *float64  `json:"ph,omitempty"`
	EC        *float64  `json:"ec,omitempty"`
}

// IsPlausible reports whether the reading's values fall inside sane
// physical ranges for an indoor tent. Out-of-band values indicate a
// broken sensor or a corrupt payload and are rejected at ingestion.
func (r *SensorReading) IsPlausible() bool {
	if r.SpaceID == "" {
		return false
	}
	if r.LogDate.IsZero() {
		return false
	}
	if r.Turn != TurnAM && r.Turn != TurnPM {
		return false
	}
	if r.TempC != nil && (*r.TempC < -10 || *r.TempC > 60) {
		return false
	}
	if r.RH != nil && (*r.RH < 0 || *r.RH > 100) {
		return false
	}
	if r.PPFD != nil && (*r.PPFD < 0 || *r.PPFD > 3000) {
		return false
	}
	if r.PH != nil && (*r.PH < 0 || *r.PH > 14) {
		return false
	}
	if r.EC != nil && (*r.EC < 0 || *r.EC > 10) {
		return false
	}
	return true
}
