package models

import "time"

// Checked metrics. Each out-of-range metric produces its own alert.
const (
	MetricTemp = "TEMP"
	MetricRH   = "RH"
	MetricPPFD = "PPFD"
	MetricPH   = "PH"
)

// Alert statuses. NEW alerts become SEEN when a person acknowledges
// them in the app; that transition happens outside this service.
const (
	AlertNew  = "NEW"
	AlertSeen = "SEEN"
)

// Alert is one deviation finding for a space. Mutable only in its
// status field, and only by the acknowledging side.
type Alert struct {
	AlertID   string    `json:"alert_id"`
	SpaceID   string    `json:"space_id"`
	Metric    string    `json:"metric"`
	Value     float64   `json:"value"`
	IdealMin  float64   `json:"ideal_min"`
	IdealMax  float64   `json:"ideal_max"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// AlertHistoryEntry is the append-only audit record written alongside
// every alert. It has no status and is never updated.
type AlertHistoryEntry struct {
	EntryID   string    `json:"entry_id"`
	SpaceID   string    `json:"space_id"`
	Metric    string    `json:"metric"`
	Value     float64   `json:"value"`
	IdealMin  float64   `json:"ideal_min"`
	IdealMax  float64   `json:"ideal_max"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
