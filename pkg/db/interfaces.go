package db

import "context"

// Database defines the interface for all database operations the core
// services need. The postgres-backed store implements it both directly
// (pool-scoped) and inside a transaction.
type Database interface {
	// Gardens and sub-beds
	GetGardens(ctx context.Context) ([]Garden, error)
	GetGarden(ctx context.Context, gardenID int64) (*Garden, error)
	GetSubBeds(ctx context.Context, gardenID int64, activeOnly bool) ([]SubBed, error)

	// Crops and rotation sequence
	GetCrops(ctx context.Context, category string) ([]Crop, error)
	GetRotationSequence(ctx context.Context) ([]RotationStep, error)
	SaveRotationSequence(ctx context.Context, categories []string) error

	// Settings
	GetSetting(ctx context.Context, key, fallback string) (string, error)
	UpdateSetting(ctx context.Context, key, value string) error

	// Cycle plans
	GetCyclePlans(ctx context.Context, gardenID int64, cycle string) ([]CyclePlanView, error)
	GetCycles(ctx context.Context, gardenID int64) ([]string, error)
	InsertCyclePlans(ctx context.Context, plans []CyclePlan) error
	ClearPlannedCrops(ctx context.Context, gardenID int64, cycle string) error
	UpdatePlannedCrop(ctx context.Context, planID int64, cropID *int64) error
	UpdateActuals(ctx context.Context, planID int64, category string, cropID *int64, notes string) error
	DeleteCyclePlans(ctx context.Context, gardenID int64, cycle string) (int64, error)

	// Distribution profiles
	GetDistributionProfiles(ctx context.Context, gardenID int64, cycle string) ([]DistributionProfile, error)
	ReplaceDistributionProfiles(ctx context.Context, gardenID int64, cycle string, profiles []DistributionProfile) error
}

// TxDatabase is a Database that can also run a function against a
// transaction-scoped Database handle. The callback's reads and writes
// all use one connection and commit together, or roll back entirely
// when the callback errors.
type TxDatabase interface {
	Database
	InTx(ctx context.Context, fn func(Database) error) error
}
