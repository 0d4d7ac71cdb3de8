package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestTimeLogsRequestIDAndError(t *testing.T) {
	buf := captureLog(t)
	ctx := WithRequestID(context.Background(), "abc")

	err := errors.New("boom")
	Time(ctx, "store.LockMatch")(&err)

	assert.Contains(t, buf.String(), "req_id=abc op=store.LockMatch")
	assert.Contains(t, buf.String(), "err=boom")
}

func TestTimeWithoutError(t *testing.T) {
	buf := captureLog(t)

	var err error
	Time(context.Background(), "noop")(&err)

	assert.Contains(t, buf.String(), "op=noop")
	assert.NotContains(t, buf.String(), "err=")
}
