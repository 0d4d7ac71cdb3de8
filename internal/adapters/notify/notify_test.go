package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-match-service/internal/domain"
	"food-match-service/internal/platform/obs"
	"food-match-service/internal/ports"
)

type fakePublisher struct {
	msgs []*nats.Msg
	err  error
}

func (f *fakePublisher) PublishMsg(m *nats.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, m)
	return nil
}

func sampleEvent() ports.MatchEvent {
	return ports.MatchEvent{
		Kind:       ports.EventMatchPlanned,
		MatchID:    7,
		Status:     domain.MatchPlanned,
		Recipients: []string{"donor@example.com", "ngo@example.com"},
		Details:    "score=0.98",
		At:         time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestNATSNotifier_PublishesJSONOnPrefixedSubject(t *testing.T) {
	pub := &fakePublisher{}
	n, err := NewNATSNotifier(pub, "foodmatch.")
	require.NoError(t, err)

	ctx := obs.WithRequestID(context.Background(), "req-1")
	require.NoError(t, n.Notify(ctx, sampleEvent()))

	require.Len(t, pub.msgs, 1)
	msg := pub.msgs[0]
	assert.Equal(t, "foodmatch.match.planned", msg.Subject)
	assert.Equal(t, "req-1", msg.Header.Get(RequestIDHeader))

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, "match.planned", got["kind"])
	assert.Equal(t, float64(7), got["match_id"])
	assert.Equal(t, "planned", got["status"])
	assert.Equal(t, []any{"donor@example.com", "ngo@example.com"}, got["recipients"])
	assert.Equal(t, "2025-01-02T03:04:05Z", got["at"])
}

func TestNATSNotifier_EmptyPrefixUsesKind(t *testing.T) {
	n, err := NewNATSNotifier(&fakePublisher{}, "")
	require.NoError(t, err)
	assert.Equal(t, "match.status", n.Subject(ports.EventMatchStatus))
}

func TestNATSNotifier_PublishErrorIsWrapped(t *testing.T) {
	boom := errors.New("no responders")
	n, err := NewNATSNotifier(&fakePublisher{err: boom}, "foodmatch")
	require.NoError(t, err)

	err = n.Notify(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestNewNATSNotifier_RequiresPublisher(t *testing.T) {
	_, err := NewNATSNotifier(nil, "foodmatch")
	require.Error(t, err)
}

func TestLogNotifier_OneLinePerRecipient(t *testing.T) {
	var buf bytes.Buffer
	n := LogNotifier{Logger: log.New(&buf, "", 0)}

	ev := sampleEvent()
	ev.Recipients = append(ev.Recipients, "")
	require.NoError(t, n.Notify(context.Background(), ev))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "to=donor@example.com")
	assert.Contains(t, string(lines[1]), "to=ngo@example.com")
	assert.Contains(t, string(lines[0]), "kind=match.planned")
}
