package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Sink receives audit events for durable delivery.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher buffers events on a channel so domain operations never block on
// the sink. A full buffer drops the event with a warning; audit delivery is
// best-effort and must not fail the request that produced it.
type Publisher struct {
	inbox chan Event
	log   *slog.Logger
}

func NewPublisher(buffer int, log *slog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{
		inbox: make(chan Event, buffer),
		log:   log,
	}
}

// Emit queues an event for delivery. Missing timestamps are filled in.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
	default:
		p.log.WarnContext(ctx, "audit buffer full, dropping event",
			"action", event.Action,
			"record_id", event.RecordID,
		)
	}
}

// Inbox exposes the event channel for the worker.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}

// MemorySink collects events in memory for tests and local development.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of everything appended so far.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
