package postgres

import (
	"context"
	"fmt"

	"github.com/hbiaou/crop-rotation/pkg/db"
)

// GetCrops retrieves crops, optionally filtered by category. Pass an
// empty category for all crops.
func (s *store) GetCrops(ctx context.Context, category string) ([]db.Crop, error) {
	query := `
		SELECT id, crop_name, category, family, species
		FROM crops
		ORDER BY category, crop_name
	`
	args := []any{}
	if category != "" {
		query = `
			SELECT id, crop_name, category, family, species
			FROM crops
			WHERE category = $1
			ORDER BY crop_name
		`
		args = append(args, category)
	}

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query crops: %w", err)
	}
	defer rows.Close()

	var crops []db.Crop
	for rows.Next() {
		var c db.Crop
		if err := rows.Scan(&c.ID, &c.Name, &c.Category, &c.Family, &c.Species); err != nil {
			return nil, fmt.Errorf("failed to scan crop: %w", err)
		}
		crops = append(crops, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating crops: %w", err)
	}

	return crops, nil
}

// GetRotationSequence retrieves the rotation sequence ordered by position
func (s *store) GetRotationSequence(ctx context.Context) ([]db.RotationStep, error) {
	rows, err := s.q.Query(ctx, `
		SELECT position, category
		FROM rotation_sequence
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rotation sequence: %w", err)
	}
	defer rows.Close()

	var steps []db.RotationStep
	for rows.Next() {
		var step db.RotationStep
		if err := rows.Scan(&step.Position, &step.Category); err != nil {
			return nil, fmt.Errorf("failed to scan rotation step: %w", err)
		}
		steps = append(steps, step)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rotation sequence: %w", err)
	}

	return steps, nil
}

// SaveRotationSequence replaces the rotation sequence with the given
// category order
func (s *store) SaveRotationSequence(ctx context.Context, categories []string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM rotation_sequence`); err != nil {
		return fmt.Errorf("failed to clear rotation sequence: %w", err)
	}

	for i, category := range categories {
		_, err := s.q.Exec(ctx, `
			INSERT INTO rotation_sequence (position, category) VALUES ($1, $2)
		`, i+1, category)
		if err != nil {
			return fmt.Errorf("failed to insert rotation step %d: %w", i+1, err)
		}
	}

	return nil
}
