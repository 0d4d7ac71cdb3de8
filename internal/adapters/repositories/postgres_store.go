package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"food-match-service/internal/domain"
	"food-match-service/internal/platform/obs"
	"food-match-service/internal/ports"
)

// Postgres-backed implementation of the MatchStore port.
// Lifecycle mutations run in a transaction and take row locks with
// SELECT ... FOR UPDATE, so concurrent calls on the same records serialize.
type PostgresStore struct {
	DB *sql.DB
}

var _ ports.MatchStore = (*PostgresStore)(nil)

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	donationColumns = `
		donation_id, donor_email, title, description, is_veg, quantity_meals,
		ready_by, expire_by, address, pincode, lat, lon, status, created_at`

	requestColumns = `
		request_id, recipient_email, prefers_veg, need_meals,
		earliest, latest, address, pincode, lat, lon, status, created_at`

	vehicleColumns = `
		vehicle_id, name, capacity_meals, base_lat, base_lon, is_available`

	matchColumns = `
		match_id, donation_id, request_id, score, explanation,
		vehicle_id, route_json, status, created_at`
)

func (s *PostgresStore) GetDonation(ctx context.Context, id int) (_ *domain.Donation, err error) {
	defer obs.Time(ctx, "store.GetDonation")(&err)
	if s.DB == nil {
		return nil, errors.New("postgres store: DB is nil")
	}
	return getDonation(ctx, s.DB, id, false)
}

func (s *PostgresStore) GetRequest(ctx context.Context, id int) (_ *domain.Request, err error) {
	defer obs.Time(ctx, "store.GetRequest")(&err)
	if s.DB == nil {
		return nil, errors.New("postgres store: DB is nil")
	}
	return getRequest(ctx, s.DB, id, false)
}

func (s *PostgresStore) GetVehicle(ctx context.Context, id int) (_ *domain.Vehicle, err error) {
	defer obs.Time(ctx, "store.GetVehicle")(&err)
	if s.DB == nil {
		return nil, errors.New("postgres store: DB is nil")
	}
	return getVehicle(ctx, s.DB, id)
}

func (s *PostgresStore) GetMatch(ctx context.Context, id int) (_ *domain.Match, err error) {
	defer obs.Time(ctx, "store.GetMatch")(&err)
	if s.DB == nil {
		return nil, errors.New("postgres store: DB is nil")
	}
	return getMatch(ctx, s.DB, id, false)
}

func (s *PostgresStore) ListOpenRequests(ctx context.Context) (_ []*domain.Request, err error) {
	defer obs.Time(ctx, "store.ListOpenRequests")(&err)
	if s.DB == nil {
		return nil, errors.New("postgres store: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT `+requestColumns+`
	FROM food_requests
	WHERE status = $1
	ORDER BY request_id;
	`, string(domain.RequestOpen))
	if err != nil {
		return nil, fmt.Errorf("list open requests: query food_requests table: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Request, 0, 32)
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("list open requests: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list open requests: row iteration: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListVehicles(ctx context.Context) (_ []*domain.Vehicle, err error) {
	defer obs.Time(ctx, "store.ListVehicles")(&err)
	if s.DB == nil {
		return nil, errors.New("postgres store: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT `+vehicleColumns+`
	FROM vehicles
	ORDER BY vehicle_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query vehicles table: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Vehicle, 0, 8)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("list vehicles: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListMatches(ctx context.Context) (_ []*domain.Match, err error) {
	defer obs.Time(ctx, "store.ListMatches")(&err)
	if s.DB == nil {
		return nil, errors.New("postgres store: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT `+matchColumns+`
	FROM matches
	ORDER BY match_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list matches: query matches table: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Match, 0, 32)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("list matches: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list matches: row iteration: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) InTx(ctx context.Context, fn func(tx ports.MatchTx) error) (err error) {
	defer obs.Time(ctx, "store.InTx")(&err)
	if s.DB == nil {
		return errors.New("postgres store: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres store: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&postgresTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres store: commit tx: %w", err)
	}
	return nil
}

func getDonation(ctx context.Context, q queryer, id int, lock bool) (*domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM food_donations WHERE donation_id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	d, err := scanDonation(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get donation %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get donation %d: %w", id, err)
	}
	return d, nil
}

func getRequest(ctx context.Context, q queryer, id int, lock bool) (*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM food_requests WHERE request_id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	r, err := scanRequest(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get request %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get request %d: %w", id, err)
	}
	return r, nil
}

func getVehicle(ctx context.Context, q queryer, id int) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE vehicle_id = $1`

	v, err := scanVehicle(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get vehicle %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get vehicle %d: %w", id, err)
	}
	return v, nil
}

func getMatch(ctx context.Context, q queryer, id int, lock bool) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE match_id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	m, err := scanMatch(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get match %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get match %d: %w", id, err)
	}
	return m, nil
}

func scanDonation(row rowScanner) (*domain.Donation, error) {
	var (
		d                 domain.Donation
		status            string
		readyBy, expireBy sql.NullTime
	)
	err := row.Scan(
		&d.DonationID, &d.DonorEmail, &d.Title, &d.Description, &d.IsVeg, &d.QuantityMeals,
		&readyBy, &expireBy, &d.Address, &d.Pincode, &d.Location.Lat, &d.Location.Lon,
		&status, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.ReadyBy = readyBy.Time
	d.ExpireBy = expireBy.Time
	d.Status = domain.DonationStatus(status)
	return &d, nil
}

func scanRequest(row rowScanner) (*domain.Request, error) {
	var (
		r                domain.Request
		status           string
		earliest, latest sql.NullTime
	)
	err := row.Scan(
		&r.RequestID, &r.RecipientEmail, &r.PrefersVeg, &r.NeedMeals,
		&earliest, &latest, &r.Address, &r.Pincode, &r.Location.Lat, &r.Location.Lon,
		&status, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Earliest = earliest.Time
	r.Latest = latest.Time
	r.Status = domain.RequestStatus(status)
	return &r, nil
}

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := row.Scan(&v.VehicleID, &v.Name, &v.CapacityMeals, &v.BaseLocation.Lat, &v.BaseLocation.Lon, &v.IsAvailable)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func scanMatch(row rowScanner) (*domain.Match, error) {
	var (
		m           domain.Match
		explanation string
		vehicleID   sql.NullInt64
		routeJSON   sql.NullString
		status      string
	)
	err := row.Scan(
		&m.MatchID, &m.DonationID, &m.RequestID, &m.Score, &explanation,
		&vehicleID, &routeJSON, &status, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if m.Explanation, err = decodeExplanation(explanation); err != nil {
		return nil, fmt.Errorf("match %d: %w", m.MatchID, err)
	}
	if m.Route, err = decodeRoute(routeJSON); err != nil {
		return nil, fmt.Errorf("match %d: %w", m.MatchID, err)
	}
	if vehicleID.Valid {
		id := int(vehicleID.Int64)
		m.VehicleID = &id
	}
	m.Status = domain.MatchStatus(status)
	return &m, nil
}
