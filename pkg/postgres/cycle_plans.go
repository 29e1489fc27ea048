package postgres

import (
	"context"
	"fmt"

	"github.com/hbiaou/crop-rotation/pkg/db"
)

// GetCyclePlans retrieves the plan rows for one garden and cycle joined
// with sub-bed position, reserve flag and crop names, in physical order
func (s *store) GetCyclePlans(ctx context.Context, gardenID int64, cycle string) ([]db.CyclePlanView, error) {
	rows, err := s.q.Query(ctx, `
		SELECT cp.id, cp.sub_bed_id, cp.garden_id, cp.cycle,
		       COALESCE(cp.planned_category, ''), cp.planned_crop_id,
		       COALESCE(cp.actual_category, ''), cp.actual_crop_id,
		       cp.is_override, cp.notes, cp.created_at, cp.updated_at,
		       sb.bed_number, sb.sub_bed_position, sb.is_reserve,
		       g.garden_code, g.name,
		       COALESCE(pc.crop_name, ''), COALESCE(ac.crop_name, '')
		FROM cycle_plans cp
		JOIN sub_beds sb ON cp.sub_bed_id = sb.id
		JOIN gardens g ON cp.garden_id = g.id
		LEFT JOIN crops pc ON cp.planned_crop_id = pc.id
		LEFT JOIN crops ac ON cp.actual_crop_id = ac.id
		WHERE cp.garden_id = $1 AND cp.cycle = $2
		ORDER BY sb.bed_number, sb.sub_bed_position
	`, gardenID, cycle)
	if err != nil {
		return nil, fmt.Errorf("failed to query cycle plans: %w", err)
	}
	defer rows.Close()

	var plans []db.CyclePlanView
	for rows.Next() {
		var p db.CyclePlanView
		if err := rows.Scan(&p.ID, &p.SubBedID, &p.GardenID, &p.Cycle,
			&p.PlannedCategory, &p.PlannedCropID,
			&p.ActualCategory, &p.ActualCropID,
			&p.IsOverride, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
			&p.BedNumber, &p.Position, &p.IsReserve,
			&p.GardenCode, &p.GardenName,
			&p.PlannedCropName, &p.ActualCropName); err != nil {
			return nil, fmt.Errorf("failed to scan cycle plan: %w", err)
		}
		plans = append(plans, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cycle plans: %w", err)
	}

	return plans, nil
}

// GetCycles retrieves the distinct cycles recorded for a garden, most
// recent first. Cycle identifiers sort correctly as strings within a
// fixed cadence.
func (s *store) GetCycles(ctx context.Context, gardenID int64) ([]string, error) {
	rows, err := s.q.Query(ctx, `
		SELECT DISTINCT cycle
		FROM cycle_plans
		WHERE garden_id = $1
		ORDER BY cycle DESC
	`, gardenID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cycles: %w", err)
	}
	defer rows.Close()

	var cycles []string
	for rows.Next() {
		var cycle string
		if err := rows.Scan(&cycle); err != nil {
			return nil, fmt.Errorf("failed to scan cycle: %w", err)
		}
		cycles = append(cycles, cycle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cycles: %w", err)
	}

	return cycles, nil
}

// InsertCyclePlans inserts plan rows. The UNIQUE(sub_bed_id, cycle)
// constraint rejects duplicates, so a generation race fails hard for
// the losing caller.
func (s *store) InsertCyclePlans(ctx context.Context, plans []db.CyclePlan) error {
	for _, p := range plans {
		_, err := s.q.Exec(ctx, `
			INSERT INTO cycle_plans (sub_bed_id, garden_id, cycle,
			        planned_category, planned_crop_id,
			        actual_category, actual_crop_id,
			        is_override, notes)
			VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''), $7, $8, $9)
		`, p.SubBedID, p.GardenID, p.Cycle,
			p.PlannedCategory, p.PlannedCropID,
			p.ActualCategory, p.ActualCropID,
			p.IsOverride, p.Notes)
		if err != nil {
			return fmt.Errorf("failed to insert cycle plan for sub-bed %d: %w", p.SubBedID, err)
		}
	}
	return nil
}

// ClearPlannedCrops nulls the planned crop on every plan row of one
// garden and cycle, making crop assignment idempotent on re-run
func (s *store) ClearPlannedCrops(ctx context.Context, gardenID int64, cycle string) error {
	_, err := s.q.Exec(ctx, `
		UPDATE cycle_plans
		SET planned_crop_id = NULL, updated_at = NOW()
		WHERE garden_id = $1 AND cycle = $2
	`, gardenID, cycle)
	if err != nil {
		return fmt.Errorf("failed to clear planned crops: %w", err)
	}
	return nil
}

// UpdatePlannedCrop sets (or clears) one plan row's planned crop
func (s *store) UpdatePlannedCrop(ctx context.Context, planID int64, cropID *int64) error {
	_, err := s.q.Exec(ctx, `
		UPDATE cycle_plans
		SET planned_crop_id = $2, updated_at = NOW()
		WHERE id = $1
	`, planID, cropID)
	if err != nil {
		return fmt.Errorf("failed to update planned crop for plan %d: %w", planID, err)
	}
	return nil
}

// UpdateActuals records an operator override of a plan's actual
// category and crop
func (s *store) UpdateActuals(ctx context.Context, planID int64, category string, cropID *int64, notes string) error {
	_, err := s.q.Exec(ctx, `
		UPDATE cycle_plans
		SET actual_category = NULLIF($2, ''), actual_crop_id = $3,
		    is_override = TRUE, notes = $4, updated_at = NOW()
		WHERE id = $1
	`, planID, category, cropID, notes)
	if err != nil {
		return fmt.Errorf("failed to update actuals for plan %d: %w", planID, err)
	}
	return nil
}

// DeleteCyclePlans removes every plan row of one garden and cycle,
// returning the number of deleted rows. Used only by explicit cycle
// rollback.
func (s *store) DeleteCyclePlans(ctx context.Context, gardenID int64, cycle string) (int64, error) {
	tag, err := s.q.Exec(ctx, `
		DELETE FROM cycle_plans
		WHERE garden_id = $1 AND cycle = $2
	`, gardenID, cycle)
	if err != nil {
		return 0, fmt.Errorf("failed to delete cycle plans: %w", err)
	}
	return tag.RowsAffected(), nil
}
