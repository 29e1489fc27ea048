package db

import (
	"fmt"
	"time"
)

// Setting keys used by the rotation engine.
const (
	SettingCyclesPerYear = "cycles_per_year"
	SettingCurrentCycle  = "current_cycle"
)

// Garden represents a garden database record
type Garden struct {
	ID            int64
	Code          string
	Name          string
	Beds          int
	BedLengthM    float64
	BedWidthM     float64
	SubBedsPerBed int
	ActiveSubBeds int
	CreatedAt     time.Time
}

// SubBed represents a sub-bed database record. Reserve sub-beds are
// permanently excluded from rotation and assignment.
type SubBed struct {
	ID        int64
	GardenID  int64
	BedNumber int
	Position  int
	IsReserve bool
}

// DisplayID renders the operator-facing identifier, e.g. "P03-S2".
func (s SubBed) DisplayID() string {
	return fmt.Sprintf("P%02d-S%d", s.BedNumber, s.Position)
}

// Crop represents a crop database record. Family and Species carry
// botanical grouping data; empty strings mean the data is absent.
type Crop struct {
	ID       int64
	Name     string
	Category string
	Family   string
	Species  string
}

// RotationStep is one entry of the configured rotation sequence.
type RotationStep struct {
	Position int
	Category string
}

// CyclePlan represents a cycle plan database record: the planned and
// actual category/crop for one sub-bed in one cycle. At most one row
// exists per (sub-bed, cycle).
type CyclePlan struct {
	ID              int64
	SubBedID        int64
	GardenID        int64
	Cycle           string
	PlannedCategory string
	PlannedCropID   *int64
	ActualCategory  string
	ActualCropID    *int64
	IsOverride      bool
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EffectiveCategory returns the actual category when the operator
// overrode the plan, otherwise the planned one.
func (p CyclePlan) EffectiveCategory() string {
	if p.ActualCategory != "" {
		return p.ActualCategory
	}
	return p.PlannedCategory
}

// EffectiveCropID returns the actual crop when set, else the planned one.
func (p CyclePlan) EffectiveCropID() *int64 {
	if p.ActualCropID != nil {
		return p.ActualCropID
	}
	return p.PlannedCropID
}

// CyclePlanView is a cycle plan joined with its sub-bed, garden and
// crop names, matching the cycle_plans_view database view.
type CyclePlanView struct {
	CyclePlan
	BedNumber       int
	Position        int
	IsReserve       bool
	GardenCode      string
	GardenName      string
	PlannedCropName string
	ActualCropName  string
}

// EffectiveCropName returns the actual crop name when an actual crop is
// set, else the planned crop name.
func (v CyclePlanView) EffectiveCropName() string {
	if v.ActualCropID != nil {
		return v.ActualCropName
	}
	return v.PlannedCropName
}

// DistributionProfile is a percentage target for one crop in one
// garden's cycle.
type DistributionProfile struct {
	ID               int64
	GardenID         int64
	Cycle            string
	CropID           int64
	TargetPercentage float64
}
