package ports

import (
	"context"
	"food-match-service/internal/domain"
	"time"
)

const (
	EventMatchPlanned = "match.planned"
	EventMatchStatus  = "match.status"
)

// A lifecycle change worth telling the donor and recipient about.
type MatchEvent struct {
	Kind       string
	MatchID    int
	Status     domain.MatchStatus
	Recipients []string
	Details    string
	At         time.Time
}

// Contract for best-effort delivery of match events.
type Notifier interface {
	Notify(ctx context.Context, ev MatchEvent) error
}
