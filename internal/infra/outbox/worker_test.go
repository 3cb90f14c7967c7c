package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appoutbox "tarifario/internal/app/outbox"
)

type stubStore struct {
	pending []*PendingEvent
	sent    []string
	failed  []string
}

func (s *stubStore) Claim(ctx context.Context) (*PendingEvent, error) {
	if len(s.pending) == 0 {
		return nil, nil
	}
	ev := s.pending[0]
	s.pending = s.pending[1:]
	return ev, nil
}

func (s *stubStore) MarkSent(ctx context.Context, id string) error {
	s.sent = append(s.sent, id)
	return nil
}

func (s *stubStore) MarkFailed(ctx context.Context, id string, retryAt time.Time, reason string) error {
	s.failed = append(s.failed, id)
	return nil
}

type stubProducer struct {
	err      error
	topics   []string
	keys     []string
	payloads [][]byte
	headers  []map[string]string
}

func (p *stubProducer) Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error {
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	p.keys = append(p.keys, key)
	p.payloads = append(p.payloads, payload)
	p.headers = append(p.headers, headers)
	return nil
}

func pendingEvent(id string) *PendingEvent {
	return &PendingEvent{Record: appoutbox.EventRecord{
		ID:         id,
		Name:       "pricing.rule.created",
		Payload:    []byte(`{"rule_id":"r1","unit_id":"u1"}`),
		OccurredAt: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC),
		Aggregate:  "r1",
	}}
}

func TestProcessOncePublishesCloudEvent(t *testing.T) {
	store := &stubStore{pending: []*PendingEvent{pendingEvent("e1")}}
	producer := &stubProducer{}
	w := &Worker{Store: store, Producer: producer, TopicPrefix: "tarifario"}

	require.NoError(t, w.ProcessOnce(context.Background()))

	require.Len(t, producer.topics, 1)
	assert.Equal(t, "tarifario.pricing.rule.created", producer.topics[0])
	assert.Equal(t, "r1", producer.keys[0])
	assert.Equal(t, "application/cloudevents+json", producer.headers[0]["content-type"])
	assert.Equal(t, []string{"e1"}, store.sent)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(producer.payloads[0], &envelope))
	assert.Equal(t, "1.0", envelope["specversion"])
	assert.Equal(t, "pricing.rule.created.v1", envelope["type"])
	assert.Equal(t, "tarifario", envelope["source"])
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "r1", data["rule_id"])
}

func TestProcessOncePublishFailureMarksFailed(t *testing.T) {
	store := &stubStore{pending: []*PendingEvent{pendingEvent("e1")}}
	producer := &stubProducer{err: errors.New("broker down")}
	w := &Worker{Store: store, Producer: producer}

	// a failed publish is recorded for retry, never returned
	require.NoError(t, w.ProcessOnce(context.Background()))
	assert.Equal(t, []string{"e1"}, store.failed)
	assert.Empty(t, store.sent)
}

func TestProcessOnceEmptyStoreIsNoOp(t *testing.T) {
	w := &Worker{Store: &stubStore{}, Producer: &stubProducer{}}
	require.NoError(t, w.ProcessOnce(context.Background()))
}

func TestRunRequiresStoreAndProducer(t *testing.T) {
	w := &Worker{}
	require.ErrorIs(t, w.Run(context.Background()), ErrWorkerNotConfigured)
}

func TestTopicForWithoutPrefix(t *testing.T) {
	w := &Worker{}
	assert.Equal(t, "pricing.rule.created", w.topicFor("pricing.rule.created"))
}
