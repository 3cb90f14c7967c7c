package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	appoutbox "tarifario/internal/app/outbox"
)

var ErrWorkerNotConfigured = errors.New("outbox: worker requires a store and a producer")

// PendingEvent is a committed record plus its delivery bookkeeping.
type PendingEvent struct {
	Record    appoutbox.EventRecord
	Attempts  int
	RetryAt   time.Time
	Claimed   bool
	LastError string
}

type Store interface {
	Claim(ctx context.Context) (*PendingEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, retryAt time.Time, reason string) error
}

type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// Worker polls the store and publishes committed rule events to the broker
// as CloudEvents JSON.
type Worker struct {
	Store       Store
	Producer    Producer
	Logger      *slog.Logger
	Interval    time.Duration
	TopicPrefix string
	Source      string
	Backoff     []time.Duration
}

func (w *Worker) Run(ctx context.Context) error {
	if w.Store == nil || w.Producer == nil {
		return ErrWorkerNotConfigured
	}
	ticker := time.NewTicker(w.interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.ProcessOnce(ctx); err != nil {
				return err
			}
		}
	}
}

// ProcessOnce claims and publishes at most one record. Publish failures are
// recorded on the store with backoff and never abort the loop.
func (w *Worker) ProcessOnce(ctx context.Context) error {
	ev, err := w.Store.Claim(ctx)
	if err != nil || ev == nil {
		return err
	}
	topic := w.topicFor(ev.Record.Name)
	payload, headers, err := w.formatPayload(ev.Record)
	if err != nil {
		_ = w.Store.MarkFailed(ctx, ev.Record.ID, w.nextRetry(ev.Attempts), err.Error())
		return nil
	}
	if err := w.Producer.Publish(ctx, topic, ev.Record.Aggregate, payload, headers); err != nil {
		if w.Logger != nil {
			w.Logger.Warn("event publish failed", "event", ev.Record.Name, "id", ev.Record.ID, "error", err)
		}
		_ = w.Store.MarkFailed(ctx, ev.Record.ID, w.nextRetry(ev.Attempts), err.Error())
		return nil
	}
	return w.Store.MarkSent(ctx, ev.Record.ID)
}

func (w *Worker) formatPayload(rec appoutbox.EventRecord) ([]byte, map[string]string, error) {
	data := map[string]any{}
	if err := json.Unmarshal(rec.Payload, &data); err != nil {
		return nil, nil, err
	}
	evt := map[string]any{
		"specversion":     "1.0",
		"id":              uuid.NewString(),
		"type":            rec.Name + ".v1",
		"source":          w.source(),
		"time":            rec.OccurredAt,
		"datacontenttype": "application/json",
		"data":            data,
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, nil, err
	}
	headers := map[string]string{"content-type": "application/cloudevents+json"}
	for k, v := range rec.Headers {
		headers[k] = v
	}
	return payload, headers, nil
}

func (w *Worker) topicFor(name string) string {
	if w.TopicPrefix == "" {
		return name
	}
	return strings.TrimSuffix(w.TopicPrefix, ".") + "." + name
}

func (w *Worker) nextRetry(attempts int) time.Time {
	backoff := w.Backoff
	if len(backoff) == 0 {
		backoff = []time.Duration{time.Second, 5 * time.Second, 30 * time.Second}
	}
	if attempts >= len(backoff) {
		attempts = len(backoff) - 1
	}
	return time.Now().Add(backoff[attempts])
}

func (w *Worker) interval() time.Duration {
	if w.Interval <= 0 {
		return 500 * time.Millisecond
	}
	return w.Interval
}

func (w *Worker) source() string {
	if w.Source == "" {
		return "tarifario"
	}
	return w.Source
}
