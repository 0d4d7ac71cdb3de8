package domain

import (
	"fmt"
	"strings"
	"time"
)

type MatchStatus string

const (
	MatchPlanned   MatchStatus = "planned"
	MatchAssigned  MatchStatus = "assigned"
	MatchEnroute   MatchStatus = "enroute"
	MatchDelivered MatchStatus = "delivered"
	MatchCancelled MatchStatus = "cancelled"
)

// allowed target statuses per source status. Assignment is handled by
// AssignVehicle, never by Transition.
var matchTransitions = map[MatchStatus][]MatchStatus{
	MatchPlanned:  {MatchCancelled},
	MatchAssigned: {MatchEnroute, MatchDelivered, MatchCancelled},
	MatchEnroute:  {MatchDelivered, MatchCancelled},
}

func ParseMatchStatus(s string) (MatchStatus, error) {
	st := MatchStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case MatchPlanned, MatchAssigned, MatchEnroute, MatchDelivered, MatchCancelled:
		return st, nil
	}
	return "", fmt.Errorf("parse match status %q: %w", s, ErrInvalidStatus)
}

// Terminal reports whether no further transitions are possible.
func (s MatchStatus) Terminal() bool {
	return s == MatchDelivered || s == MatchCancelled
}

// Match pairs one donation with one request and tracks it through delivery.
// VehicleID and Route are set once a vehicle has been assigned.
type Match struct {
	MatchID     int
	DonationID  int
	RequestID   int
	Score       float64
	Explanation ScoreExplanation
	VehicleID   *int
	Route       *RoutePlan
	Status      MatchStatus
	CreatedAt   time.Time
}

// NewMatch creates a planned match and marks both sides as matched.
// Both the donation and the request must still be open.
func NewMatch(d *Donation, r *Request, score MatchScore, now time.Time) (*Match, error) {
	if d.Status != DonationOpen {
		return nil, fmt.Errorf("new match: donation %d is %s: %w", d.DonationID, d.Status, ErrNotOpen)
	}
	if r.Status != RequestOpen {
		return nil, fmt.Errorf("new match: request %d is %s: %w", r.RequestID, r.Status, ErrNotOpen)
	}

	d.Status = DonationMatched
	r.Status = RequestMatched

	return &Match{
		DonationID:  d.DonationID,
		RequestID:   r.RequestID,
		Score:       score.Score,
		Explanation: score.Explanation,
		Status:      MatchPlanned,
		CreatedAt:   now,
	}, nil
}

// Attach a vehicle and its route. A match can be (re)assigned until it is en route.
func (m *Match) AssignVehicle(v *Vehicle, plan RoutePlan) error {
	if m.Status != MatchPlanned && m.Status != MatchAssigned {
		return fmt.Errorf("assign vehicle: match %d is %s: %w", m.MatchID, m.Status, ErrInvalidTransition)
	}
	if !v.IsAvailable {
		return fmt.Errorf("assign vehicle: vehicle %d: %w", v.VehicleID, ErrVehicleUnavailable)
	}

	id := v.VehicleID
	m.VehicleID = &id
	m.Route = &plan
	m.Status = MatchAssigned
	return nil
}

// Move the match to a new status and propagate the outcome to its donation
// and request. Setting the current status again is a no-op.
func (m *Match) Transition(to MatchStatus, d *Donation, r *Request) error {
	if to == m.Status {
		return nil
	}

	allowed := false
	for _, s := range matchTransitions[m.Status] {
		if s == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("transition match %d: %s -> %s: %w", m.MatchID, m.Status, to, ErrInvalidTransition)
	}

	switch to {
	case MatchEnroute:
		d.Status = DonationPicked
	case MatchDelivered:
		d.Status = DonationDelivered
		r.Status = RequestFulfilled
	case MatchCancelled:
		// Both sides become available for another match.
		d.Status = DonationOpen
		r.Status = RequestOpen
	}

	m.Status = to
	return nil
}

// Only delivered matches may be removed.
func (m *Match) CanDelete() bool {
	return m.Status == MatchDelivered
}
