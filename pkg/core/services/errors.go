package services

import "errors"

// Sentinel errors returned by the cycle services. Callers match them
// with errors.Is; every failure aborts the whole operation with no
// partial rows left behind.
var (
	// ErrNoPriorCycle means the garden has no cycle to advance from.
	ErrNoPriorCycle = errors.New("garden has no prior cycle")

	// ErrEmptyCycle means the source cycle exists but holds no plan rows.
	ErrEmptyCycle = errors.New("source cycle has no plan rows")

	// ErrCycleAlreadyExists means plan rows already exist for the
	// target cycle in this garden.
	ErrCycleAlreadyExists = errors.New("cycle already exists for garden")

	// ErrGardenNotFound means the garden ID matched no record.
	ErrGardenNotFound = errors.New("garden not found")
)
