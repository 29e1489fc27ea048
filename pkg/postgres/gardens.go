package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hbiaou/crop-rotation/pkg/db"
)

// GetGardens retrieves all gardens ordered by garden code
func (s *store) GetGardens(ctx context.Context) ([]db.Garden, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id, garden_code, name, beds, bed_length_m, bed_width_m,
		       sub_beds_per_bed, active_sub_beds, created_at
		FROM gardens
		ORDER BY garden_code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query gardens: %w", err)
	}
	defer rows.Close()

	var gardens []db.Garden
	for rows.Next() {
		var g db.Garden
		if err := rows.Scan(&g.ID, &g.Code, &g.Name, &g.Beds, &g.BedLengthM,
			&g.BedWidthM, &g.SubBedsPerBed, &g.ActiveSubBeds, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan garden: %w", err)
		}
		gardens = append(gardens, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gardens: %w", err)
	}

	return gardens, nil
}

// GetGarden retrieves a single garden by ID, nil when it does not exist
func (s *store) GetGarden(ctx context.Context, gardenID int64) (*db.Garden, error) {
	var g db.Garden
	err := s.q.QueryRow(ctx, `
		SELECT id, garden_code, name, beds, bed_length_m, bed_width_m,
		       sub_beds_per_bed, active_sub_beds, created_at
		FROM gardens
		WHERE id = $1
	`, gardenID).Scan(&g.ID, &g.Code, &g.Name, &g.Beds, &g.BedLengthM,
		&g.BedWidthM, &g.SubBedsPerBed, &g.ActiveSubBeds, &g.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query garden %d: %w", gardenID, err)
	}
	return &g, nil
}

// GetSubBeds retrieves a garden's sub-beds in physical order, optionally
// restricted to active (non-reserve) ones
func (s *store) GetSubBeds(ctx context.Context, gardenID int64, activeOnly bool) ([]db.SubBed, error) {
	query := `
		SELECT id, garden_id, bed_number, sub_bed_position, is_reserve
		FROM sub_beds
		WHERE garden_id = $1
		ORDER BY bed_number, sub_bed_position
	`
	if activeOnly {
		query = `
			SELECT id, garden_id, bed_number, sub_bed_position, is_reserve
			FROM sub_beds
			WHERE garden_id = $1 AND NOT is_reserve
			ORDER BY bed_number, sub_bed_position
		`
	}

	rows, err := s.q.Query(ctx, query, gardenID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sub-beds: %w", err)
	}
	defer rows.Close()

	var subBeds []db.SubBed
	for rows.Next() {
		var sb db.SubBed
		if err := rows.Scan(&sb.ID, &sb.GardenID, &sb.BedNumber, &sb.Position, &sb.IsReserve); err != nil {
			return nil, fmt.Errorf("failed to scan sub-bed: %w", err)
		}
		subBeds = append(subBeds, sb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sub-beds: %w", err)
	}

	return subBeds, nil
}
