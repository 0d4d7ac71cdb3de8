package ports

import (
	"context"
	"food-match-service/internal/domain"
)

// Read-only access to the records the workflow consumes.
// Missing records are reported with domain.ErrNotFound.
type MatchReader interface {
	GetDonation(ctx context.Context, id int) (*domain.Donation, error)
	GetRequest(ctx context.Context, id int) (*domain.Request, error)
	GetVehicle(ctx context.Context, id int) (*domain.Vehicle, error)
	GetMatch(ctx context.Context, id int) (*domain.Match, error)

	// Open requests in id order.
	ListOpenRequests(ctx context.Context) ([]*domain.Request, error)
	ListVehicles(ctx context.Context) ([]*domain.Vehicle, error)
	ListMatches(ctx context.Context) ([]*domain.Match, error)
}

// MatchTx is a unit of work. Lock* methods read a record and hold it until the
// transaction ends so concurrent lifecycle calls on the same match, donation or
// request are serialized.
type MatchTx interface {
	LockDonation(ctx context.Context, id int) (*domain.Donation, error)
	LockRequest(ctx context.Context, id int) (*domain.Request, error)
	LockMatch(ctx context.Context, id int) (*domain.Match, error)
	GetVehicle(ctx context.Context, id int) (*domain.Vehicle, error)

	// Insert a new match and set its MatchID.
	InsertMatch(ctx context.Context, m *domain.Match) error
	UpdateMatch(ctx context.Context, m *domain.Match) error
	DeleteMatch(ctx context.Context, id int) error
	UpdateDonationStatus(ctx context.Context, id int, status domain.DonationStatus) error
	UpdateRequestStatus(ctx context.Context, id int, status domain.RequestStatus) error
}

// Port: persistence boundary for the match lifecycle.
type MatchStore interface {
	MatchReader
	// Run fn in a transaction; it commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(tx MatchTx) error) error
}
