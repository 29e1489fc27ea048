package services

import (
	"context"
	"sort"
	"time"

	"github.com/hbiaou/crop-rotation/pkg/db"
)

// mockDB implements db.TxDatabase in memory for one garden's worth of
// test data. InTx simply runs the callback against the mock itself;
// forced errors simulate storage faults.
type mockDB struct {
	gardens  []db.Garden
	subBeds  []db.SubBed
	crops    []db.Crop
	sequence []db.RotationStep
	settings map[string]string
	plans    []db.CyclePlanView
	profiles []db.DistributionProfile

	nextPlanID int64

	// cyclesOverride pins GetCycles to a fixed answer, simulating a
	// stale read racing a concurrent writer
	cyclesOverride []string

	// forced errors, keyed by method name
	errs map[string]error
}

func newMockDB() *mockDB {
	return &mockDB{
		settings: make(map[string]string),
		errs:     make(map[string]error),
	}
}

func (m *mockDB) InTx(ctx context.Context, fn func(db.Database) error) error {
	return fn(m)
}

func (m *mockDB) GetGardens(ctx context.Context) ([]db.Garden, error) {
	if err := m.errs["GetGardens"]; err != nil {
		return nil, err
	}
	return m.gardens, nil
}

func (m *mockDB) GetGarden(ctx context.Context, gardenID int64) (*db.Garden, error) {
	if err := m.errs["GetGarden"]; err != nil {
		return nil, err
	}
	for _, g := range m.gardens {
		if g.ID == gardenID {
			garden := g
			return &garden, nil
		}
	}
	return nil, nil
}

func (m *mockDB) GetSubBeds(ctx context.Context, gardenID int64, activeOnly bool) ([]db.SubBed, error) {
	if err := m.errs["GetSubBeds"]; err != nil {
		return nil, err
	}
	var result []db.SubBed
	for _, sb := range m.subBeds {
		if sb.GardenID != gardenID {
			continue
		}
		if activeOnly && sb.IsReserve {
			continue
		}
		result = append(result, sb)
	}
	sort.SliceStable(result, func(a, b int) bool {
		if result[a].BedNumber != result[b].BedNumber {
			return result[a].BedNumber < result[b].BedNumber
		}
		return result[a].Position < result[b].Position
	})
	return result, nil
}

func (m *mockDB) GetCrops(ctx context.Context, category string) ([]db.Crop, error) {
	if err := m.errs["GetCrops"]; err != nil {
		return nil, err
	}
	if category == "" {
		return m.crops, nil
	}
	var result []db.Crop
	for _, c := range m.crops {
		if c.Category == category {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockDB) GetRotationSequence(ctx context.Context) ([]db.RotationStep, error) {
	if err := m.errs["GetRotationSequence"]; err != nil {
		return nil, err
	}
	return m.sequence, nil
}

func (m *mockDB) SaveRotationSequence(ctx context.Context, categories []string) error {
	m.sequence = nil
	for i, category := range categories {
		m.sequence = append(m.sequence, db.RotationStep{Position: i + 1, Category: category})
	}
	return nil
}

func (m *mockDB) GetSetting(ctx context.Context, key, fallback string) (string, error) {
	if err := m.errs["GetSetting"]; err != nil {
		return "", err
	}
	if value, ok := m.settings[key]; ok {
		return value, nil
	}
	return fallback, nil
}

func (m *mockDB) UpdateSetting(ctx context.Context, key, value string) error {
	if err := m.errs["UpdateSetting"]; err != nil {
		return err
	}
	m.settings[key] = value
	return nil
}

func (m *mockDB) GetCyclePlans(ctx context.Context, gardenID int64, cycle string) ([]db.CyclePlanView, error) {
	if err := m.errs["GetCyclePlans"]; err != nil {
		return nil, err
	}
	var result []db.CyclePlanView
	for _, p := range m.plans {
		if p.GardenID == gardenID && p.Cycle == cycle {
			result = append(result, p)
		}
	}
	sort.SliceStable(result, func(a, b int) bool {
		if result[a].BedNumber != result[b].BedNumber {
			return result[a].BedNumber < result[b].BedNumber
		}
		return result[a].Position < result[b].Position
	})
	return result, nil
}

func (m *mockDB) GetCycles(ctx context.Context, gardenID int64) ([]string, error) {
	if err := m.errs["GetCycles"]; err != nil {
		return nil, err
	}
	if m.cyclesOverride != nil {
		return m.cyclesOverride, nil
	}
	seen := make(map[string]bool)
	var cycles []string
	for _, p := range m.plans {
		if p.GardenID == gardenID && !seen[p.Cycle] {
			seen[p.Cycle] = true
			cycles = append(cycles, p.Cycle)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(cycles)))
	return cycles, nil
}

func (m *mockDB) InsertCyclePlans(ctx context.Context, plans []db.CyclePlan) error {
	if err := m.errs["InsertCyclePlans"]; err != nil {
		return err
	}
	for _, p := range plans {
		m.nextPlanID++
		view := db.CyclePlanView{CyclePlan: p}
		view.ID = m.nextPlanID
		view.CreatedAt = time.Now()
		for _, sb := range m.subBeds {
			if sb.ID == p.SubBedID {
				view.BedNumber = sb.BedNumber
				view.Position = sb.Position
				view.IsReserve = sb.IsReserve
			}
		}
		for _, c := range m.crops {
			if p.PlannedCropID != nil && c.ID == *p.PlannedCropID {
				view.PlannedCropName = c.Name
			}
			if p.ActualCropID != nil && c.ID == *p.ActualCropID {
				view.ActualCropName = c.Name
			}
		}
		m.plans = append(m.plans, view)
	}
	return nil
}

func (m *mockDB) ClearPlannedCrops(ctx context.Context, gardenID int64, cycle string) error {
	if err := m.errs["ClearPlannedCrops"]; err != nil {
		return err
	}
	for i := range m.plans {
		if m.plans[i].GardenID == gardenID && m.plans[i].Cycle == cycle {
			m.plans[i].PlannedCropID = nil
			m.plans[i].PlannedCropName = ""
		}
	}
	return nil
}

func (m *mockDB) UpdatePlannedCrop(ctx context.Context, planID int64, cropID *int64) error {
	if err := m.errs["UpdatePlannedCrop"]; err != nil {
		return err
	}
	for i := range m.plans {
		if m.plans[i].ID == planID {
			m.plans[i].PlannedCropID = cropID
			m.plans[i].PlannedCropName = ""
			if cropID != nil {
				for _, c := range m.crops {
					if c.ID == *cropID {
						m.plans[i].PlannedCropName = c.Name
					}
				}
			}
		}
	}
	return nil
}

func (m *mockDB) UpdateActuals(ctx context.Context, planID int64, category string, cropID *int64, notes string) error {
	if err := m.errs["UpdateActuals"]; err != nil {
		return err
	}
	for i := range m.plans {
		if m.plans[i].ID == planID {
			m.plans[i].ActualCategory = category
			m.plans[i].ActualCropID = cropID
			m.plans[i].IsOverride = true
			m.plans[i].Notes = notes
		}
	}
	return nil
}

func (m *mockDB) DeleteCyclePlans(ctx context.Context, gardenID int64, cycle string) (int64, error) {
	if err := m.errs["DeleteCyclePlans"]; err != nil {
		return 0, err
	}
	var kept []db.CyclePlanView
	var deleted int64
	for _, p := range m.plans {
		if p.GardenID == gardenID && p.Cycle == cycle {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	m.plans = kept
	return deleted, nil
}

func (m *mockDB) GetDistributionProfiles(ctx context.Context, gardenID int64, cycle string) ([]db.DistributionProfile, error) {
	if err := m.errs["GetDistributionProfiles"]; err != nil {
		return nil, err
	}
	var result []db.DistributionProfile
	for _, p := range m.profiles {
		if p.GardenID == gardenID && p.Cycle == cycle {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockDB) ReplaceDistributionProfiles(ctx context.Context, gardenID int64, cycle string, profiles []db.DistributionProfile) error {
	if err := m.errs["ReplaceDistributionProfiles"]; err != nil {
		return err
	}
	var kept []db.DistributionProfile
	for _, p := range m.profiles {
		if p.GardenID == gardenID && p.Cycle == cycle {
			continue
		}
		kept = append(kept, p)
	}
	m.profiles = append(kept, profiles...)
	return nil
}

// addPlan registers a plan row with its sub-bed join data filled in.
func (m *mockDB) addPlan(subBedID, gardenID int64, cycle, plannedCategory string, plannedCropID *int64) *db.CyclePlanView {
	m.nextPlanID++
	view := db.CyclePlanView{}
	view.ID = m.nextPlanID
	view.SubBedID = subBedID
	view.GardenID = gardenID
	view.Cycle = cycle
	view.PlannedCategory = plannedCategory
	view.PlannedCropID = plannedCropID
	if plannedCropID != nil {
		for _, c := range m.crops {
			if c.ID == *plannedCropID {
				view.PlannedCropName = c.Name
			}
		}
	}
	for _, sb := range m.subBeds {
		if sb.ID == subBedID {
			view.BedNumber = sb.BedNumber
			view.Position = sb.Position
			view.IsReserve = sb.IsReserve
		}
	}
	m.plans = append(m.plans, view)
	return &m.plans[len(m.plans)-1]
}

func defaultSequence() []db.RotationStep {
	return []db.RotationStep{
		{Position: 1, Category: "Leaf"},
		{Position: 2, Category: "Seed"},
		{Position: 3, Category: "Root"},
		{Position: 4, Category: "Fruit"},
		{Position: 5, Category: "Cover"},
	}
}

func int64Ptr(v int64) *int64 {
	return &v
}
