package models

// Growth phases. CLONING never comes out of the phase clock (no space
// category maps to it) but margin and target rows may exist for it.
const (
	PhaseMaintenance = "MAINTENANCE"
	PhaseCloning     = "CLONING"
	PhaseVega        = "VEGA"
	PhaseFlora       = "FLORA"
	PhaseDrying      = "DRYING"
)

// PhaseWeek is the phase clock's answer for a space.
type PhaseWeek struct {
	Phase string
	Week  int
}

// WeeklyTarget is the recommended environmental range for one
// (variety, phase, week). Any bound may be nil, meaning no constraint
// for that metric at that week.
type WeeklyTarget struct {
	VarietyID  string
	Phase      string
	WeekNumber int

	TempMin *float64
	TempMax *float64
	RHMin   *float64
	RHMax   *float64
	PPFDMin *float64
	PPFDMax *float64
	PHMin   *float64
	PHMax   *float64
	ECMin   *float64
	ECMax   *float64
}

// PhaseMargin is the phase-wide tolerance added outside the target
// range before a reading counts as out of range. PHMargin nil disables
// pH checking for the phase (deliberate for DRYING).
type PhaseMargin struct {
	Phase      string
	TempMargin float64
	RHMargin   float64
	PPFDMargin float64
	PHMargin   *float64
}
