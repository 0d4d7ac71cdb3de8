package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"food-match-service/internal/domain"
)

type postgresTx struct {
	tx *sql.Tx
}

func (p *postgresTx) LockDonation(ctx context.Context, id int) (*domain.Donation, error) {
	return getDonation(ctx, p.tx, id, true)
}

func (p *postgresTx) LockRequest(ctx context.Context, id int) (*domain.Request, error) {
	return getRequest(ctx, p.tx, id, true)
}

func (p *postgresTx) LockMatch(ctx context.Context, id int) (*domain.Match, error) {
	return getMatch(ctx, p.tx, id, true)
}

func (p *postgresTx) GetVehicle(ctx context.Context, id int) (*domain.Vehicle, error) {
	return getVehicle(ctx, p.tx, id)
}

func (p *postgresTx) InsertMatch(ctx context.Context, m *domain.Match) error {
	explanation, err := encodeExplanation(m.Explanation)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	route, err := encodeRoute(m.Route)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	err = p.tx.QueryRowContext(ctx, `
	INSERT INTO matches (donation_id, request_id, score, explanation, vehicle_id, route_json, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING match_id;
	`,
		m.DonationID, m.RequestID, m.Score, explanation, nullInt(m.VehicleID), route, string(m.Status), m.CreatedAt,
	).Scan(&m.MatchID)
	if err != nil {
		return fmt.Errorf("insert match donation_id=%d request_id=%d: %w", m.DonationID, m.RequestID, err)
	}
	return nil
}

func (p *postgresTx) UpdateMatch(ctx context.Context, m *domain.Match) error {
	route, err := encodeRoute(m.Route)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}

	res, err := p.tx.ExecContext(ctx, `
	UPDATE matches
	SET vehicle_id = $2,
		route_json = $3,
		status = $4
	WHERE match_id = $1;
	`, m.MatchID, nullInt(m.VehicleID), route, string(m.Status))
	if err != nil {
		return fmt.Errorf("update match %d: %w", m.MatchID, err)
	}
	return expectOneRow(res, "update match", m.MatchID)
}

func (p *postgresTx) DeleteMatch(ctx context.Context, id int) error {
	res, err := p.tx.ExecContext(ctx, `DELETE FROM matches WHERE match_id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete match %d: %w", id, err)
	}
	return expectOneRow(res, "delete match", id)
}

func (p *postgresTx) UpdateDonationStatus(ctx context.Context, id int, status domain.DonationStatus) error {
	res, err := p.tx.ExecContext(ctx, `UPDATE food_donations SET status = $2 WHERE donation_id = $1;`, id, string(status))
	if err != nil {
		return fmt.Errorf("update donation %d status: %w", id, err)
	}
	return expectOneRow(res, "update donation status", id)
}

func (p *postgresTx) UpdateRequestStatus(ctx context.Context, id int, status domain.RequestStatus) error {
	res, err := p.tx.ExecContext(ctx, `UPDATE food_requests SET status = $2 WHERE request_id = $1;`, id, string(status))
	if err != nil {
		return fmt.Errorf("update request %d status: %w", id, err)
	}
	return expectOneRow(res, "update request status", id)
}

func expectOneRow(res sql.Result, op string, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d: rows affected: %w", op, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", op, id, domain.ErrNotFound)
	}
	return nil
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}
