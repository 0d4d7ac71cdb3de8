package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"food-match-service/internal/domain"
	"food-match-service/internal/platform/obs"
	"food-match-service/internal/ports"
)

// RequestIDHeader carries the originating HTTP request id on published events.
const RequestIDHeader = "X-Request-ID"

// Publisher is the subset of *nats.Conn the notifier needs.
type Publisher interface {
	PublishMsg(m *nats.Msg) error
}

// NATSNotifier publishes match events as JSON on "<prefix>.<kind>",
// e.g. foodmatch.match.planned.
type NATSNotifier struct {
	pub    Publisher
	prefix string
}

var _ ports.Notifier = (*NATSNotifier)(nil)

func NewNATSNotifier(pub Publisher, prefix string) (*NATSNotifier, error) {
	if pub == nil {
		return nil, errors.New("new nats notifier: publisher must be non-nil")
	}
	return &NATSNotifier{pub: pub, prefix: strings.Trim(prefix, ". ")}, nil
}

// Connect dials the broker and returns a notifier publishing on it.
// The caller owns the returned connection.
func Connect(url, prefix string) (*NATSNotifier, *nats.Conn, error) {
	nc, err := nats.Connect(url, nats.Name("food-match-service"))
	if err != nil {
		return nil, nil, fmt.Errorf("connect nats %q: %w", url, err)
	}
	n, err := NewNATSNotifier(nc, prefix)
	if err != nil {
		nc.Close()
		return nil, nil, err
	}
	return n, nc, nil
}

// Wire form of a match event.
type eventMessage struct {
	Kind       string             `json:"kind"`
	MatchID    int                `json:"match_id"`
	Status     domain.MatchStatus `json:"status"`
	Recipients []string           `json:"recipients"`
	Details    string             `json:"details,omitempty"`
	At         time.Time          `json:"at"`
}

func (n *NATSNotifier) Subject(kind string) string {
	if n.prefix == "" {
		return kind
	}
	return n.prefix + "." + kind
}

func (n *NATSNotifier) Notify(ctx context.Context, ev ports.MatchEvent) (err error) {
	defer obs.Time(ctx, "notify.NATS")(&err)

	data, err := json.Marshal(eventMessage{
		Kind:       ev.Kind,
		MatchID:    ev.MatchID,
		Status:     ev.Status,
		Recipients: ev.Recipients,
		Details:    ev.Details,
		At:         ev.At.UTC(),
	})
	if err != nil {
		return fmt.Errorf("nats notify: marshal event: %w", err)
	}

	msg := &nats.Msg{
		Subject: n.Subject(ev.Kind),
		Data:    data,
	}
	if id := obs.RequestID(ctx); id != "" {
		msg.Header = nats.Header{}
		msg.Header.Set(RequestIDHeader, id)
	}

	if err := n.pub.PublishMsg(msg); err != nil {
		return fmt.Errorf("nats notify: publish %s: %w", msg.Subject, err)
	}
	return nil
}
