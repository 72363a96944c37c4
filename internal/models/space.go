package models

import "time"

// Space categories. A space's category decides which phase-derivation
// rule applies to the cycle running in it.
const (
	CategoryMaintenance = "MAINTENANCE"
	CategoryVega        = "VEGA"
	CategoryFlora       = "FLORA"
	CategoryDrying      = "DRYING"
)

// Cycle statuses.
const (
	CycleActive   = "ACTIVE"
	CycleFinished = "FINISHED"
)

// Plant statuses.
const (
	PlantActive = "ACTIVE"
)

// GrowSpace is one physical growing enclosure (tent).
type GrowSpace struct {
	SpaceID   string
	SpaceName string
	Category  string
}

// Variety is a genetic variety. Vega/Flora week counts are used by the
// scheduling service, not by the deviation engine.
type Variety struct {
	VarietyID   string
	VarietyName string
	VegaWeeks   int
	FloraWeeks  int
}

// Cycle is one continuous cultivation run inside a space. VarietyID is
// nil when the space hosts individually tracked plants of possibly
// different varieties.
type Cycle struct {
	CycleID          string
	SpaceID          string
	VarietyID        *string
	StartDate        time.Time
	FloraStartDate   *time.Time
	CloningStartDate *time.Time
	Status           string
}

// Plant is an individually tracked plant inside a space.
type Plant struct {
	PlantID   string
	SpaceID   string
	VarietyID string
	Status    string
}
