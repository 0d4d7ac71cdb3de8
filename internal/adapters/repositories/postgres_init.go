package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"food-match-service/internal/adapters/seed"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createVehiclesQuery := `
	CREATE TABLE IF NOT EXISTS vehicles (
		vehicle_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		capacity_meals INTEGER NOT NULL DEFAULT 50,
		base_lat DOUBLE PRECISION NOT NULL DEFAULT 0,
		base_lon DOUBLE PRECISION NOT NULL DEFAULT 0,
		is_available BOOLEAN NOT NULL DEFAULT TRUE
	);
	`

	createDonationsQuery := `
	CREATE TABLE IF NOT EXISTS food_donations (
		donation_id INTEGER PRIMARY KEY,
		donor_email TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_veg BOOLEAN NOT NULL DEFAULT TRUE,
		quantity_meals INTEGER NOT NULL DEFAULT 1 CHECK (quantity_meals >= 1),
		ready_by TIMESTAMPTZ,
		expire_by TIMESTAMPTZ,
		address TEXT NOT NULL DEFAULT '',
		pincode TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL DEFAULT 0,
		lon DOUBLE PRECISION NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'open',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createRequestsQuery := `
	CREATE TABLE IF NOT EXISTS food_requests (
		request_id INTEGER PRIMARY KEY,
		recipient_email TEXT NOT NULL,
		prefers_veg BOOLEAN NOT NULL DEFAULT TRUE,
		need_meals INTEGER NOT NULL DEFAULT 1 CHECK (need_meals >= 1),
		earliest TIMESTAMPTZ,
		latest TIMESTAMPTZ,
		address TEXT NOT NULL DEFAULT '',
		pincode TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL DEFAULT 0,
		lon DOUBLE PRECISION NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'open',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createMatchesQuery := `
	CREATE TABLE IF NOT EXISTS matches (
		match_id INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		donation_id INTEGER NOT NULL REFERENCES food_donations(donation_id),
		request_id INTEGER NOT NULL REFERENCES food_requests(request_id),
		score DOUBLE PRECISION NOT NULL DEFAULT 0,
		explanation TEXT NOT NULL DEFAULT '{}',
		vehicle_id INTEGER REFERENCES vehicles(vehicle_id),
		route_json TEXT,
		status TEXT NOT NULL DEFAULT 'planned',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_food_requests_status
	ON food_requests(status, request_id);
	`

	statements := []string{
		createVehiclesQuery,
		createDonationsQuery,
		createRequestsQuery,
		createMatchesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database from a seed file. Vehicles are upserted; existing
// donations and requests keep their lifecycle state.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	data, err := seed.Load(jsonPath)
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed database: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, v := range data.Vehicles {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO vehicles (vehicle_id, name, capacity_meals, base_lat, base_lon, is_available)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (vehicle_id) DO UPDATE
		SET name = EXCLUDED.name,
			capacity_meals = EXCLUDED.capacity_meals,
			base_lat = EXCLUDED.base_lat,
			base_lon = EXCLUDED.base_lon,
			is_available = EXCLUDED.is_available;
		`, v.VehicleID, v.Name, v.CapacityMeals, v.BaseLocation.Lat, v.BaseLocation.Lon, v.IsAvailable)
		if err != nil {
			return fmt.Errorf("seed database: insert vehicle_id=%d: %w", v.VehicleID, err)
		}
	}

	for _, d := range data.Donations {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO food_donations (
			donation_id, donor_email, title, description, is_veg, quantity_meals,
			ready_by, expire_by, address, pincode, lat, lon, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (donation_id) DO NOTHING;
		`,
			d.DonationID, d.DonorEmail, d.Title, d.Description, d.IsVeg, d.QuantityMeals,
			nullTime(d.ReadyBy), nullTime(d.ExpireBy), d.Address, d.Pincode,
			d.Location.Lat, d.Location.Lon, string(d.Status),
		)
		if err != nil {
			return fmt.Errorf("seed database: insert donation_id=%d: %w", d.DonationID, err)
		}
	}

	for _, r := range data.Requests {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO food_requests (
			request_id, recipient_email, prefers_veg, need_meals,
			earliest, latest, address, pincode, lat, lon, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (request_id) DO NOTHING;
		`,
			r.RequestID, r.RecipientEmail, r.PrefersVeg, r.NeedMeals,
			nullTime(r.Earliest), nullTime(r.Latest), r.Address, r.Pincode,
			r.Location.Lat, r.Location.Lon, string(r.Status),
		)
		if err != nil {
			return fmt.Errorf("seed database: insert request_id=%d: %w", r.RequestID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed database: commit tx: %w", err)
	}

	return nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
