package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// seedCrop carries one crop's seed data including botanical grouping.
type seedCrop struct {
	name     string
	category string
	family   string
	species  string
}

var seedCrops = []seedCrop{
	// Leaf
	{"Cabbage", "Leaf", "Brassicaceae", "Brassica oleracea"},
	{"Lettuce", "Leaf", "Asteraceae", "Lactuca sativa"},
	{"Jute Mallow", "Leaf", "Malvaceae", "Corchorus olitorius"},
	{"Amaranth", "Leaf", "Amaranthaceae", "Amaranthus cruentus"},
	// Seed
	{"Maize", "Seed", "Poaceae", "Zea mays"},
	{"Lentil", "Seed", "Fabaceae", "Lens culinaris"},
	{"Green Bean", "Seed", "Fabaceae", "Phaseolus vulgaris"},
	{"Sunflower", "Seed", "Asteraceae", "Helianthus annuus"},
	{"Sesame", "Seed", "Pedaliaceae", "Sesamum indicum"},
	// Root
	{"Carrot", "Root", "Apiaceae", "Daucus carota"},
	{"Onion", "Root", "Amaryllidaceae", "Allium cepa"},
	{"Potato", "Root", "Solanaceae", "Solanum tuberosum"},
	{"Garlic", "Root", "Amaryllidaceae", "Allium sativum"},
	// Fruit
	{"Okra", "Fruit", "Malvaceae", "Abelmoschus esculentus"},
	{"Chili Pepper", "Fruit", "Solanaceae", "Capsicum annuum"},
	{"Tomato", "Fruit", "Solanaceae", "Solanum lycopersicum"},
	{"Cucumber", "Fruit", "Cucurbitaceae", "Cucumis sativus"},
	{"Watermelon", "Fruit", "Cucurbitaceae", "Citrullus lanatus"},
	{"Strawberry", "Fruit", "Rosaceae", "Fragaria ananassa"},
	// Cover
	{"Crotalaria", "Cover", "Fabaceae", "Crotalaria juncea"},
	{"Aeschynomene", "Cover", "Fabaceae", "Aeschynomene americana"},
	{"Tithonia", "Cover", "Asteraceae", "Tithonia diversifolia"},
	{"Mucuna", "Cover", "Fabaceae", "Mucuna pruriens"},
}

var seedSequence = []string{"Leaf", "Seed", "Root", "Fruit", "Cover"}

// Seed inserts the default rotation sequence, crop catalogue and the
// two reference gardens with their sub-beds. It is idempotent: a
// database that already holds gardens is left untouched.
func (d *DB) Seed(ctx context.Context) error {
	var gardenCount int
	if err := d.pool.QueryRow(ctx, `SELECT COUNT(*) FROM gardens`).Scan(&gardenCount); err != nil {
		return fmt.Errorf("failed to count gardens: %w", err)
	}
	if gardenCount > 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, category := range seedSequence {
		_, err := tx.Exec(ctx, `
			INSERT INTO rotation_sequence (position, category) VALUES ($1, $2)
			ON CONFLICT (position) DO NOTHING
		`, i+1, category)
		if err != nil {
			return fmt.Errorf("failed to seed rotation step %d: %w", i+1, err)
		}
	}

	for _, crop := range seedCrops {
		_, err := tx.Exec(ctx, `
			INSERT INTO crops (crop_name, category, family, species)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (crop_name) DO NOTHING
		`, crop.name, crop.category, crop.family, crop.species)
		if err != nil {
			return fmt.Errorf("failed to seed crop %s: %w", crop.name, err)
		}
	}

	// G1: 28 beds of 4 sub-beds, the last bed's positions 3 and 4 held
	// in reserve. G2: 23 beds of 2, the last position in reserve.
	g1, err := seedGarden(ctx, tx, "G1", "Main Garden", 28, 50.0, 4, 110)
	if err != nil {
		return err
	}
	if err := seedSubBeds(ctx, tx, g1, 28, 4, func(bed, pos int) bool {
		return bed == 28 && pos >= 3
	}); err != nil {
		return err
	}

	g2, err := seedGarden(ctx, tx, "G2", "Small Garden", 23, 22.0, 2, 45)
	if err != nil {
		return err
	}
	if err := seedSubBeds(ctx, tx, g2, 23, 2, func(bed, pos int) bool {
		return bed == 23 && pos == 2
	}); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO settings (key, value) VALUES ('cycles_per_year', '2')
		ON CONFLICT (key) DO NOTHING
	`); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return nil
}

func seedGarden(ctx context.Context, tx pgx.Tx, code, name string, beds int, bedLength float64, subBedsPerBed, activeSubBeds int) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO gardens (garden_code, name, beds, bed_length_m, bed_width_m, sub_beds_per_bed, active_sub_beds)
		VALUES ($1, $2, $3, $4, 1.0, $5, $6)
		RETURNING id
	`, code, name, beds, bedLength, subBedsPerBed, activeSubBeds).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to seed garden %s: %w", code, err)
	}
	return id, nil
}

func seedSubBeds(ctx context.Context, tx pgx.Tx, gardenID int64, beds, subBedsPerBed int, isReserve func(bed, pos int) bool) error {
	for bed := 1; bed <= beds; bed++ {
		for pos := 1; pos <= subBedsPerBed; pos++ {
			_, err := tx.Exec(ctx, `
				INSERT INTO sub_beds (garden_id, bed_number, sub_bed_position, is_reserve)
				VALUES ($1, $2, $3, $4)
			`, gardenID, bed, pos, isReserve(bed, pos))
			if err != nil {
				return fmt.Errorf("failed to seed sub-bed %d/%d for garden %d: %w", bed, pos, gardenID, err)
			}
		}
	}
	return nil
}
