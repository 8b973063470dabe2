package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the append-only persistence behind the publisher.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByBuddy(ctx context.Context, buddyID int64) ([]Event, error)
}

// Sink receives events after they are persisted. Sinks are best-effort; a
// sink failure never fails the emitting operation.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
	sinks []Sink
}

func NewPublisher(store Store, sinks ...Sink) *Publisher {
	return &Publisher{store: store, sinks: sinks}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	for _, sink := range p.sinks {
		_ = sink.Publish(ctx, event)
	}
	return nil
}

func (p *Publisher) List(ctx context.Context, buddyID int64) ([]Event, error) {
	return p.store.ListByBuddy(ctx, buddyID)
}
