package memory

import (
	"context"
	"sync"
	"time"

	appoutbox "tarifario/internal/app/outbox"
	infraoutbox "tarifario/internal/infra/outbox"
)

// Outbox stages event records during a command and exposes the committed
// ones to the publishing worker. Add stages, Flush commits.
type Outbox struct {
	mu     sync.Mutex
	staged []appoutbox.EventRecord
	ready  []*infraoutbox.PendingEvent
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.staged = append(o.staged, record)
	return nil
}

// Flush commits staged records for publication.
func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, rec := range o.staged {
		o.ready = append(o.ready, &infraoutbox.PendingEvent{Record: rec})
	}
	o.staged = nil
	return nil
}

// Claim hands the oldest publishable record to the worker.
func (o *Outbox) Claim(ctx context.Context) (*infraoutbox.PendingEvent, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := time.Now()
	for _, ev := range o.ready {
		if ev.Claimed || ev.RetryAt.After(now) {
			continue
		}
		ev.Claimed = true
		claimed := *ev
		return &claimed, nil
	}
	return nil, nil
}

func (o *Outbox) MarkSent(ctx context.Context, id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, ev := range o.ready {
		if ev.Record.ID == id {
			o.ready = append(o.ready[:i], o.ready[i+1:]...)
			return nil
		}
	}
	return nil
}

func (o *Outbox) MarkFailed(ctx context.Context, id string, retryAt time.Time, reason string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, ev := range o.ready {
		if ev.Record.ID == id {
			ev.Claimed = false
			ev.Attempts++
			ev.RetryAt = retryAt
			ev.LastError = reason
			return nil
		}
	}
	return nil
}

// PendingCount reports records awaiting publication; used by tests and
// readiness reporting.
func (o *Outbox) PendingCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.ready)
}

var (
	_ appoutbox.Outbox  = (*Outbox)(nil)
	_ infraoutbox.Store = (*Outbox)(nil)
)
