package postgres

import (
	"context"
	"fmt"

	"github.com/hbiaou/crop-rotation/pkg/db"
)

// GetDistributionProfiles retrieves the percentage targets for one
// garden and cycle in insertion order
func (s *store) GetDistributionProfiles(ctx context.Context, gardenID int64, cycle string) ([]db.DistributionProfile, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id, garden_id, cycle, crop_id, target_percentage
		FROM distribution_profiles
		WHERE garden_id = $1 AND cycle = $2
		ORDER BY id
	`, gardenID, cycle)
	if err != nil {
		return nil, fmt.Errorf("failed to query distribution profiles: %w", err)
	}
	defer rows.Close()

	var profiles []db.DistributionProfile
	for rows.Next() {
		var p db.DistributionProfile
		if err := rows.Scan(&p.ID, &p.GardenID, &p.Cycle, &p.CropID, &p.TargetPercentage); err != nil {
			return nil, fmt.Errorf("failed to scan distribution profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating distribution profiles: %w", err)
	}

	return profiles, nil
}

// ReplaceDistributionProfiles swaps the full target set for one garden
// and cycle
func (s *store) ReplaceDistributionProfiles(ctx context.Context, gardenID int64, cycle string, profiles []db.DistributionProfile) error {
	_, err := s.q.Exec(ctx, `
		DELETE FROM distribution_profiles
		WHERE garden_id = $1 AND cycle = $2
	`, gardenID, cycle)
	if err != nil {
		return fmt.Errorf("failed to clear distribution profiles: %w", err)
	}

	for _, p := range profiles {
		_, err := s.q.Exec(ctx, `
			INSERT INTO distribution_profiles (garden_id, cycle, crop_id, target_percentage)
			VALUES ($1, $2, $3, $4)
		`, gardenID, cycle, p.CropID, p.TargetPercentage)
		if err != nil {
			return fmt.Errorf("failed to insert distribution profile for crop %d: %w", p.CropID, err)
		}
	}

	return nil
}
