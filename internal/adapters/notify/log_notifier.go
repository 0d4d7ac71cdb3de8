package notify

import (
	"context"
	"log"

	"food-match-service/internal/platform/obs"
	"food-match-service/internal/ports"
)

// LogNotifier writes one log line per recipient. It is the default when no
// message broker is configured.
type LogNotifier struct {
	Logger *log.Logger // nil uses the standard logger
}

var _ ports.Notifier = LogNotifier{}

func (n LogNotifier) Notify(ctx context.Context, ev ports.MatchEvent) error {
	logf := log.Printf
	if n.Logger != nil {
		logf = n.Logger.Printf
	}

	for _, to := range ev.Recipients {
		if to == "" {
			continue
		}
		logf(
			"req_id=%s notify kind=%s to=%s match_id=%d status=%s details=%q",
			obs.RequestID(ctx), ev.Kind, to, ev.MatchID, ev.Status, ev.Details,
		)
	}
	return nil
}
