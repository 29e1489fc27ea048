package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hbiaou/crop-rotation/pkg/core/rotation"
	"github.com/hbiaou/crop-rotation/pkg/db"
)

// RecordOverride stores what the operator actually planted on one
// sub-bed, overriding the planned category and crop. Effective values
// (actual over planned) are what rotation and history scoring read, so
// an override changes how this sub-bed advances and scores from the
// next cycle on.
func RecordOverride(ctx context.Context, database db.Database, logger *zap.Logger, planID int64, category string, cropID *int64, notes string) error {
	if category != "" && !rotation.IsValidCategory(rotation.Category(category)) {
		return fmt.Errorf("unknown category %q", category)
	}

	if err := database.UpdateActuals(ctx, planID, category, cropID, notes); err != nil {
		return err
	}

	fields := []zap.Field{
		zap.Int64("plan_id", planID),
		zap.String("actual_category", category),
	}
	if cropID != nil {
		fields = append(fields, zap.Int64("actual_crop_id", *cropID))
	}
	logger.Info("Override recorded", fields...)

	return nil
}
