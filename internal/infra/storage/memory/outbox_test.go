package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appoutbox "tarifario/internal/app/outbox"
)

func record(id string) appoutbox.EventRecord {
	return appoutbox.EventRecord{
		ID:         id,
		Name:       "pricing.rule.created",
		Payload:    []byte(`{"rule_id":"r1"}`),
		OccurredAt: time.Now().UTC(),
		Aggregate:  "r1",
	}
}

func TestOutboxStagedRecordsAreInvisibleUntilFlush(t *testing.T) {
	ctx := context.Background()
	box := NewOutbox()

	require.NoError(t, box.Add(ctx, record("e1")))
	assert.Zero(t, box.PendingCount())

	ev, err := box.Claim(ctx)
	require.NoError(t, err)
	assert.Nil(t, ev)

	require.NoError(t, box.Flush(ctx))
	assert.Equal(t, 1, box.PendingCount())
}

func TestOutboxClaimMarkSent(t *testing.T) {
	ctx := context.Background()
	box := NewOutbox()
	require.NoError(t, box.Add(ctx, record("e1")))
	require.NoError(t, box.Flush(ctx))

	ev, err := box.Claim(ctx)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "e1", ev.Record.ID)

	// claimed records are not handed out twice
	again, err := box.Claim(ctx)
	require.NoError(t, err)
	assert.Nil(t, again)

	require.NoError(t, box.MarkSent(ctx, "e1"))
	assert.Zero(t, box.PendingCount())
}

func TestOutboxMarkFailedSchedulesRetry(t *testing.T) {
	ctx := context.Background()
	box := NewOutbox()
	require.NoError(t, box.Add(ctx, record("e1")))
	require.NoError(t, box.Flush(ctx))

	ev, err := box.Claim(ctx)
	require.NoError(t, err)
	require.NotNil(t, ev)

	require.NoError(t, box.MarkFailed(ctx, "e1", time.Now().Add(time.Hour), "broker down"))
	assert.Equal(t, 1, box.PendingCount())

	// not claimable again before the retry time
	ev, err = box.Claim(ctx)
	require.NoError(t, err)
	assert.Nil(t, ev)

	require.NoError(t, box.MarkFailed(ctx, "e1", time.Now().Add(-time.Minute), "broker down"))
	ev, err = box.Claim(ctx)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, 2, ev.Attempts)
}
