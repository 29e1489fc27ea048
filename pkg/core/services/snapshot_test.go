package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hbiaou/crop-rotation/pkg/db"
)

func TestSaveSnapshot_WritesEffectiveAssignments(t *testing.T) {
	m := gardenWithCycle()
	m.crops = []db.Crop{
		{ID: 1, Name: "Lettuce", Category: "Leaf"},
		{ID: 2, Name: "Carrot", Category: "Root"},
	}
	m.plans[0].PlannedCropID = int64Ptr(1)
	m.plans[0].PlannedCropName = "Lettuce"
	m.plans[1].ActualCategory = "Root"
	m.plans[1].ActualCropID = int64Ptr(2)
	m.plans[1].ActualCropName = "Carrot"
	m.plans[1].IsOverride = true

	dir := t.TempDir()
	path, err := SaveSnapshot(context.Background(), m, zap.NewNop(), 1, "2026A", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "G1_2026A_actual.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var snapshot Snapshot
	require.NoError(t, json.Unmarshal(data, &snapshot))

	assert.NotEmpty(t, snapshot.ID)
	assert.Equal(t, "G1", snapshot.GardenCode)
	assert.Equal(t, "2026A", snapshot.Cycle)

	// Reserve sub-bed 13 is excluded: two records, not three.
	require.Len(t, snapshot.Records, 2)
	assert.Equal(t, "P01-S1", snapshot.Records[0].SubBed)
	assert.Equal(t, "Leaf", snapshot.Records[0].Category)
	assert.Equal(t, "Lettuce", snapshot.Records[0].Crop)

	// Overridden sub-bed records its effective state.
	assert.Equal(t, "Root", snapshot.Records[1].Category)
	assert.Equal(t, "Carrot", snapshot.Records[1].Crop)
}

func TestSaveSnapshot_GardenNotFound(t *testing.T) {
	m := gardenWithCycle()

	_, err := SaveSnapshot(context.Background(), m, zap.NewNop(), 99, "2026A", t.TempDir())
	assert.ErrorIs(t, err, ErrGardenNotFound)
}

func TestSaveSnapshot_EmptyCycle(t *testing.T) {
	m := gardenWithCycle()

	_, err := SaveSnapshot(context.Background(), m, zap.NewNop(), 1, "2031A", t.TempDir())
	assert.ErrorIs(t, err, ErrEmptyCycle)
}
