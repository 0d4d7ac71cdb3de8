// Package memory is an in-process MatchStore used for local runs without a
// database and for tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"food-match-service/internal/adapters/seed"
	"food-match-service/internal/domain"
	"food-match-service/internal/ports"
)

// Store keeps records as values so callers never share memory with it.
// InTx holds a single mutex for the whole transaction, which serializes all
// lifecycle mutations.
type Store struct {
	mu          sync.Mutex
	donations   map[int]domain.Donation
	requests    map[int]domain.Request
	vehicles    map[int]domain.Vehicle
	matches     map[int]domain.Match
	nextMatchID int
}

var _ ports.MatchStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		donations:   make(map[int]domain.Donation),
		requests:    make(map[int]domain.Request),
		vehicles:    make(map[int]domain.Vehicle),
		matches:     make(map[int]domain.Match),
		nextMatchID: 1,
	}
}

func (s *Store) PutDonation(d domain.Donation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.donations[d.DonationID] = d
}

func (s *Store) PutRequest(r domain.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[r.RequestID] = r
}

func (s *Store) PutVehicle(v domain.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles[v.VehicleID] = v
}

func (s *Store) GetDonation(_ context.Context, id int) (*domain.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.donation(id)
}

func (s *Store) GetRequest(_ context.Context, id int) (*domain.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.request(id)
}

func (s *Store) GetVehicle(_ context.Context, id int) (*domain.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vehicle(id)
}

func (s *Store) GetMatch(_ context.Context, id int) (*domain.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match(id)
}

func (s *Store) ListOpenRequests(_ context.Context) ([]*domain.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Request, 0, len(s.requests))
	for _, id := range sortedKeys(s.requests) {
		r := s.requests[id]
		if r.Status == domain.RequestOpen {
			out = append(out, &r)
		}
	}
	return out, nil
}

func (s *Store) ListVehicles(_ context.Context) ([]*domain.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Vehicle, 0, len(s.vehicles))
	for _, id := range sortedKeys(s.vehicles) {
		v := s.vehicles[id]
		out = append(out, &v)
	}
	return out, nil
}

func (s *Store) ListMatches(_ context.Context) ([]*domain.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Match, 0, len(s.matches))
	for _, id := range sortedKeys(s.matches) {
		m := copyMatch(s.matches[id])
		out = append(out, &m)
	}
	return out, nil
}

// InTx stages writes and applies them only when fn returns nil.
func (s *Store) InTx(ctx context.Context, fn func(tx ports.MatchTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		s:         s,
		donations: map[int]domain.DonationStatus{},
		requests:  map[int]domain.RequestStatus{},
		matches:   map[int]domain.Match{},
		deleted:   map[int]struct{}{},
	}
	if err := fn(tx); err != nil {
		return err
	}

	for id, st := range tx.donations {
		d := s.donations[id]
		d.Status = st
		s.donations[id] = d
	}
	for id, st := range tx.requests {
		r := s.requests[id]
		r.Status = st
		s.requests[id] = r
	}
	for id, m := range tx.matches {
		s.matches[id] = m
	}
	for id := range tx.deleted {
		delete(s.matches, id)
	}
	return nil
}

func (s *Store) donation(id int) (*domain.Donation, error) {
	d, ok := s.donations[id]
	if !ok {
		return nil, fmt.Errorf("memory store: donation %d: %w", id, domain.ErrNotFound)
	}
	return &d, nil
}

func (s *Store) request(id int) (*domain.Request, error) {
	r, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("memory store: request %d: %w", id, domain.ErrNotFound)
	}
	return &r, nil
}

func (s *Store) vehicle(id int) (*domain.Vehicle, error) {
	v, ok := s.vehicles[id]
	if !ok {
		return nil, fmt.Errorf("memory store: vehicle %d: %w", id, domain.ErrNotFound)
	}
	return &v, nil
}

func (s *Store) match(id int) (*domain.Match, error) {
	m, ok := s.matches[id]
	if !ok {
		return nil, fmt.Errorf("memory store: match %d: %w", id, domain.ErrNotFound)
	}
	c := copyMatch(m)
	return &c, nil
}

// copyMatch detaches the pointer fields so stored matches cannot be mutated
// through a returned value.
func copyMatch(m domain.Match) domain.Match {
	if m.VehicleID != nil {
		id := *m.VehicleID
		m.VehicleID = &id
	}
	if m.Route != nil {
		r := *m.Route
		r.VisitingOrder = slices.Clone(r.VisitingOrder)
		m.Route = &r
	}
	return m
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Load copies seed records into the store.
func (s *Store) Load(data *seed.Data) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range data.Vehicles {
		s.vehicles[v.VehicleID] = v
	}
	for _, d := range data.Donations {
		s.donations[d.DonationID] = d
	}
	for _, r := range data.Requests {
		s.requests[r.RequestID] = r
	}
}
