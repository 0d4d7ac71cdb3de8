package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"food-match-service/internal/domain"
	"food-match-service/internal/matching"
	"food-match-service/internal/platform/obs"
	"food-match-service/internal/ports"
	"food-match-service/internal/routing"
)

var ErrScoreBelowThreshold = errors.New("match score below threshold")

type WorkflowDeps struct {
	Store    ports.MatchStore
	Scorer   *matching.Engine
	Router   *routing.Engine
	Notifier ports.Notifier // optional

	// Matches scoring below MinScore are refused; 0 accepts everything.
	MinScore float64
	Now      func() time.Time
}

// Workflow sequences scoring, routing and persistence for each match
// lifecycle event. The engines it calls are pure; all state changes go
// through the store inside a transaction.
type Workflow struct {
	store    ports.MatchStore
	scorer   *matching.Engine
	router   *routing.Engine
	notifier ports.Notifier
	minScore float64
	now      func() time.Time
}

func NewWorkflow(deps WorkflowDeps) (*Workflow, error) {
	if deps.Store == nil {
		return nil, errors.New("new workflow: store must be non-nil")
	}
	if deps.Scorer == nil || deps.Router == nil {
		return nil, errors.New("new workflow: scorer and router must be non-nil")
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &Workflow{
		store:    deps.Store,
		scorer:   deps.Scorer,
		router:   deps.Router,
		notifier: deps.Notifier,
		minScore: deps.MinScore,
		now:      now,
	}, nil
}

// Score previews the compatibility of a stored donation and request without
// creating a match.
func (w *Workflow) Score(ctx context.Context, donationID, requestID int) (_ domain.MatchScore, err error) {
	defer obs.Time(ctx, "workflow.Score")(&err)

	d, err := w.store.GetDonation(ctx, donationID)
	if err != nil {
		return domain.MatchScore{}, fmt.Errorf("score: donation %d: %w", donationID, err)
	}
	r, err := w.store.GetRequest(ctx, requestID)
	if err != nil {
		return domain.MatchScore{}, fmt.Errorf("score: request %d: %w", requestID, err)
	}
	return w.scorer.Score(*d, *r), nil
}

// CreateMatch scores the pair and records a planned match. The donation and
// request must both be open; they are marked matched in the same transaction.
func (w *Workflow) CreateMatch(ctx context.Context, donationID, requestID int) (_ *domain.Match, err error) {
	defer obs.Time(ctx, "workflow.CreateMatch")(&err)

	var (
		created *domain.Match
		donor   string
		recip   string
	)

	err = w.store.InTx(ctx, func(tx ports.MatchTx) error {
		d, err := tx.LockDonation(ctx, donationID)
		if err != nil {
			return fmt.Errorf("donation %d: %w", donationID, err)
		}
		r, err := tx.LockRequest(ctx, requestID)
		if err != nil {
			return fmt.Errorf("request %d: %w", requestID, err)
		}

		score := w.scorer.Score(*d, *r)

		m, err := domain.NewMatch(d, r, score, w.now())
		if err != nil {
			return err
		}
		if w.minScore > 0 && score.Score < w.minScore {
			return fmt.Errorf("score %.3f < %.3f (%s): %w", score.Score, w.minScore, score.Explanation, ErrScoreBelowThreshold)
		}

		if err := tx.InsertMatch(ctx, m); err != nil {
			return err
		}
		if err := tx.UpdateDonationStatus(ctx, d.DonationID, d.Status); err != nil {
			return err
		}
		if err := tx.UpdateRequestStatus(ctx, r.RequestID, r.Status); err != nil {
			return err
		}

		created, donor, recip = m, d.DonorEmail, r.RecipientEmail
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}

	log.Printf(
		"match created match_id=%d donation_id=%d request_id=%d score=%.3f %s",
		created.MatchID, created.DonationID, created.RequestID, created.Score, created.Explanation,
	)

	w.notify(ctx, ports.MatchEvent{
		Kind:       ports.EventMatchPlanned,
		MatchID:    created.MatchID,
		Status:     created.Status,
		Recipients: []string{donor, recip},
		Details:    fmt.Sprintf("score=%.2f (%s)", created.Score, created.Explanation),
		At:         created.CreatedAt,
	})

	return created, nil
}

// AssignVehicle plans the pickup/drop-off route from the vehicle's base and
// attaches it to the match.
//
// Vehicle capacity is not enforced; an undersized vehicle is only logged.
func (w *Workflow) AssignVehicle(ctx context.Context, matchID, vehicleID int) (_ *domain.Match, err error) {
	defer obs.Time(ctx, "workflow.AssignVehicle")(&err)

	var assigned *domain.Match

	err = w.store.InTx(ctx, func(tx ports.MatchTx) error {
		m, err := tx.LockMatch(ctx, matchID)
		if err != nil {
			return fmt.Errorf("match %d: %w", matchID, err)
		}
		v, err := tx.GetVehicle(ctx, vehicleID)
		if err != nil {
			return fmt.Errorf("vehicle %d: %w", vehicleID, err)
		}
		d, err := tx.LockDonation(ctx, m.DonationID)
		if err != nil {
			return fmt.Errorf("donation %d: %w", m.DonationID, err)
		}
		r, err := tx.LockRequest(ctx, m.RequestID)
		if err != nil {
			return fmt.Errorf("request %d: %w", m.RequestID, err)
		}

		plan := w.router.PlanRoute(v.BaseLocation, []domain.GeoPoint{d.Location, r.Location})

		if !v.CanCarry(d.QuantityMeals) {
			log.Printf(
				"warning: vehicle over capacity match_id=%d vehicle_id=%d capacity=%d meals=%d",
				m.MatchID, v.VehicleID, v.CapacityMeals, d.QuantityMeals,
			)
		}

		if err := m.AssignVehicle(v, plan); err != nil {
			return err
		}
		if err := tx.UpdateMatch(ctx, m); err != nil {
			return err
		}

		assigned = m
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("assign vehicle: %w", err)
	}

	log.Printf(
		"vehicle assigned match_id=%d vehicle_id=%d strategy=%s stops=%d km=%.2f",
		assigned.MatchID, *assigned.VehicleID, assigned.Route.Strategy,
		len(assigned.Route.VisitingOrder), assigned.Route.TotalDistanceKm,
	)

	return assigned, nil
}

// UpdateStatus moves a match along its lifecycle and propagates delivery or
// cancellation to the donation and request.
func (w *Workflow) UpdateStatus(ctx context.Context, matchID int, status string) (_ *domain.Match, err error) {
	defer obs.Time(ctx, "workflow.UpdateStatus")(&err)

	to, err := domain.ParseMatchStatus(status)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	var (
		updated *domain.Match
		donor   string
		recip   string
		changed bool
	)

	err = w.store.InTx(ctx, func(tx ports.MatchTx) error {
		m, err := tx.LockMatch(ctx, matchID)
		if err != nil {
			return fmt.Errorf("match %d: %w", matchID, err)
		}
		// Repeating the current status writes nothing and sends no event.
		if m.Status == to {
			updated = m
			return nil
		}
		d, err := tx.LockDonation(ctx, m.DonationID)
		if err != nil {
			return fmt.Errorf("donation %d: %w", m.DonationID, err)
		}
		r, err := tx.LockRequest(ctx, m.RequestID)
		if err != nil {
			return fmt.Errorf("request %d: %w", m.RequestID, err)
		}

		if err := m.Transition(to, d, r); err != nil {
			return err
		}

		if err := tx.UpdateMatch(ctx, m); err != nil {
			return err
		}
		if err := tx.UpdateDonationStatus(ctx, d.DonationID, d.Status); err != nil {
			return err
		}
		if err := tx.UpdateRequestStatus(ctx, r.RequestID, r.Status); err != nil {
			return err
		}

		updated, donor, recip, changed = m, d.DonorEmail, r.RecipientEmail, true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if !changed {
		return updated, nil
	}

	log.Printf("match status changed match_id=%d status=%s", updated.MatchID, updated.Status)

	w.notify(ctx, ports.MatchEvent{
		Kind:       ports.EventMatchStatus,
		MatchID:    updated.MatchID,
		Status:     updated.Status,
		Recipients: []string{donor, recip},
		Details:    fmt.Sprintf("status changed to %s", updated.Status),
		At:         w.now(),
	})

	return updated, nil
}

// DeleteMatch removes a delivered match. Any other status is refused.
func (w *Workflow) DeleteMatch(ctx context.Context, matchID int) (err error) {
	defer obs.Time(ctx, "workflow.DeleteMatch")(&err)

	err = w.store.InTx(ctx, func(tx ports.MatchTx) error {
		m, err := tx.LockMatch(ctx, matchID)
		if err != nil {
			return fmt.Errorf("match %d: %w", matchID, err)
		}
		if !m.CanDelete() {
			return fmt.Errorf("match %d is %s: %w", matchID, m.Status, domain.ErrNotDeletable)
		}
		return tx.DeleteMatch(ctx, matchID)
	})
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}

	log.Printf("match deleted match_id=%d", matchID)
	return nil
}

// SuggestRequests ranks the open requests for a donation, best first.
// A limit <= 0 returns every candidate.
func (w *Workflow) SuggestRequests(ctx context.Context, donationID int, limit int) ([]matching.Candidate, error) {
	d, err := w.store.GetDonation(ctx, donationID)
	if err != nil {
		return nil, fmt.Errorf("suggest requests: donation %d: %w", donationID, err)
	}

	open, err := w.store.ListOpenRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest requests: list open requests: %w", err)
	}

	reqs := make([]domain.Request, 0, len(open))
	for _, r := range open {
		reqs = append(reqs, *r)
	}

	ranked := w.scorer.Rank(*d, reqs)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// PreviewRoute plans a route from a stored vehicle's base without touching any match.
func (w *Workflow) PreviewRoute(ctx context.Context, vehicleID int, stops []domain.GeoPoint) (domain.RoutePlan, error) {
	v, err := w.store.GetVehicle(ctx, vehicleID)
	if err != nil {
		return domain.RoutePlan{}, fmt.Errorf("preview route: vehicle %d: %w", vehicleID, err)
	}
	return w.router.PlanRoute(v.BaseLocation, stops), nil
}

func (w *Workflow) ListMatches(ctx context.Context) ([]*domain.Match, error) {
	ms, err := w.store.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return ms, nil
}

func (w *Workflow) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	vs, err := w.store.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return vs, nil
}

// Notification failures never fail the lifecycle call.
func (w *Workflow) notify(ctx context.Context, ev ports.MatchEvent) {
	if w.notifier == nil {
		return
	}
	if err := w.notifier.Notify(ctx, ev); err != nil {
		log.Printf("req_id=%s notify failed kind=%s match_id=%d err=%v", obs.RequestID(ctx), ev.Kind, ev.MatchID, err)
	}
}
