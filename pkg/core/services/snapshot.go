package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hbiaou/crop-rotation/pkg/db"
)

// SnapshotRecord is one sub-bed's effective state in a snapshot.
type SnapshotRecord struct {
	SubBed    string `json:"sub_bed"`
	BedNumber int    `json:"bed_number"`
	Position  int    `json:"position"`
	Category  string `json:"category"`
	Crop      string `json:"crop,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Snapshot is the durable JSON record of a cycle's effective
// assignments, written before the cycle is superseded.
type Snapshot struct {
	ID         string           `json:"id"`
	GardenCode string           `json:"garden_code"`
	GardenName string           `json:"garden_name"`
	Cycle      string           `json:"cycle"`
	CreatedAt  time.Time        `json:"created_at"`
	Records    []SnapshotRecord `json:"records"`
}

// SaveSnapshot writes a JSON snapshot of one garden cycle's effective
// assignments into dir, named "{garden_code}_{cycle}_actual.json", and
// returns the file path. Reserve sub-beds are excluded, and effective
// values (actual over planned) are recorded — the snapshot captures
// what was actually in the ground.
func SaveSnapshot(ctx context.Context, database db.Database, logger *zap.Logger, gardenID int64, cycle, dir string) (string, error) {
	garden, err := database.GetGarden(ctx, gardenID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch garden: %w", err)
	}
	if garden == nil {
		return "", fmt.Errorf("%w: %d", ErrGardenNotFound, gardenID)
	}

	plans, err := database.GetCyclePlans(ctx, gardenID, cycle)
	if err != nil {
		return "", fmt.Errorf("failed to fetch plans for cycle %s: %w", cycle, err)
	}
	if len(plans) == 0 {
		return "", fmt.Errorf("%w: garden %d cycle %s", ErrEmptyCycle, gardenID, cycle)
	}

	snapshot := Snapshot{
		ID:         uuid.New().String(),
		GardenCode: garden.Code,
		GardenName: garden.Name,
		Cycle:      cycle,
		CreatedAt:  time.Now().UTC(),
	}
	for _, plan := range plans {
		if plan.IsReserve {
			continue
		}
		snapshot.Records = append(snapshot.Records, SnapshotRecord{
			SubBed:    db.SubBed{BedNumber: plan.BedNumber, Position: plan.Position}.DisplayID(),
			BedNumber: plan.BedNumber,
			Position:  plan.Position,
			Category:  plan.EffectiveCategory(),
			Crop:      plan.EffectiveCropName(),
			Notes:     plan.Notes,
		})
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s_actual.json", garden.Code, cycle))
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot file: %w", err)
	}

	logger.Info("Snapshot saved",
		zap.String("garden_code", garden.Code),
		zap.String("cycle", cycle),
		zap.String("path", path),
		zap.Int("record_count", len(snapshot.Records)))

	return path, nil
}
