package rotation

// Category is one of the five fixed rotation classes every crop belongs to.
type Category string

const (
	CategoryLeaf  Category = "Leaf"
	CategorySeed  Category = "Seed"
	CategoryRoot  Category = "Root"
	CategoryFruit Category = "Fruit"
	CategoryCover Category = "Cover"
)

// Categories lists all valid categories in their canonical order.
var Categories = []Category{
	CategoryLeaf,
	CategorySeed,
	CategoryRoot,
	CategoryFruit,
	CategoryCover,
}

// IsValidCategory reports whether c is one of the five known categories.
func IsValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// CropInfo carries the crop metadata the engine needs for scoring.
// Family and Species are botanical groupings; an empty string means the
// data is absent and that axis places no constraint on assignment.
type CropInfo struct {
	ID       int64
	Name     string
	Category Category
	Family   string
	Species  string
}

// PlanSlot is one sub-bed's entry in the cycle being assigned.
type PlanSlot struct {
	// SubBedID identifies the physical sub-bed (tie-break key for
	// deterministic output)
	SubBedID int64

	// Category is the planned rotation category for this cycle
	Category Category
}

// HistoryEntry records one prior cycle's occupant of a sub-bed.
// Effective values are used: the actual crop/category if the operator
// overrode the plan, otherwise the planned ones.
type HistoryEntry struct {
	// CyclesAgo is 1 for the most recent prior cycle, up to Lookback
	CyclesAgo int

	// Category the sub-bed held in that cycle
	Category Category

	// CropID that occupied the sub-bed
	CropID int64

	// Family and Species of the occupying crop (empty when unknown)
	Family  string
	Species string
}

// SlotAssignment is the outcome for a single sub-bed during initial
// allocation. CropID is zero when no crop could be assigned.
type SlotAssignment struct {
	Category Category
	CropID   int64
}
