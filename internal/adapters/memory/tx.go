package memory

import (
	"context"
	"fmt"

	"food-match-service/internal/domain"
)

// memTx runs with the store mutex held, so reads go straight to the store
// maps and writes are staged until commit.
type memTx struct {
	s         *Store
	donations map[int]domain.DonationStatus
	requests  map[int]domain.RequestStatus
	matches   map[int]domain.Match
	deleted   map[int]struct{}
}

func (tx *memTx) LockDonation(_ context.Context, id int) (*domain.Donation, error) {
	d, err := tx.s.donation(id)
	if err != nil {
		return nil, err
	}
	if st, ok := tx.donations[id]; ok {
		d.Status = st
	}
	return d, nil
}

func (tx *memTx) LockRequest(_ context.Context, id int) (*domain.Request, error) {
	r, err := tx.s.request(id)
	if err != nil {
		return nil, err
	}
	if st, ok := tx.requests[id]; ok {
		r.Status = st
	}
	return r, nil
}

func (tx *memTx) LockMatch(_ context.Context, id int) (*domain.Match, error) {
	if _, gone := tx.deleted[id]; gone {
		return nil, fmt.Errorf("memory store: match %d: %w", id, domain.ErrNotFound)
	}
	if m, ok := tx.matches[id]; ok {
		c := copyMatch(m)
		return &c, nil
	}
	return tx.s.match(id)
}

func (tx *memTx) GetVehicle(_ context.Context, id int) (*domain.Vehicle, error) {
	return tx.s.vehicle(id)
}

func (tx *memTx) InsertMatch(_ context.Context, m *domain.Match) error {
	m.MatchID = tx.s.nextMatchID
	tx.s.nextMatchID++
	tx.matches[m.MatchID] = copyMatch(*m)
	return nil
}

func (tx *memTx) UpdateMatch(ctx context.Context, m *domain.Match) error {
	if _, err := tx.LockMatch(ctx, m.MatchID); err != nil {
		return err
	}
	tx.matches[m.MatchID] = copyMatch(*m)
	return nil
}

func (tx *memTx) DeleteMatch(ctx context.Context, id int) error {
	if _, err := tx.LockMatch(ctx, id); err != nil {
		return err
	}
	delete(tx.matches, id)
	tx.deleted[id] = struct{}{}
	return nil
}

func (tx *memTx) UpdateDonationStatus(_ context.Context, id int, status domain.DonationStatus) error {
	if _, err := tx.s.donation(id); err != nil {
		return err
	}
	tx.donations[id] = status
	return nil
}

func (tx *memTx) UpdateRequestStatus(_ context.Context, id int, status domain.RequestStatus) error {
	if _, err := tx.s.request(id); err != nil {
		return err
	}
	tx.requests[id] = status
	return nil
}
