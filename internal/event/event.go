// Package event carries shop activity to live clients and downstream consumers.
package event

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Type string

const (
	ItemCreated     Type = "item_created"
	ItemUpdated     Type = "item_updated"
	ItemDeleted     Type = "item_deleted"
	StockUpdated    Type = "stock_updated"
	CustomerCreated Type = "customer_created"
	CustomerUpdated Type = "customer_updated"
	CustomerDeleted Type = "customer_deleted"
	BillCreated     Type = "bill_created"
)

type Event struct {
	Type       Type        `json:"type"`
	ShopID     uuid.UUID   `json:"shop_id"`
	ActorID    uuid.UUID   `json:"actor_id"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func New(t Type, shopID, actorID uuid.UUID, data interface{}, message string) Event {
	return Event{
		Type:       t,
		ShopID:     shopID,
		ActorID:    actorID,
		Data:       data,
		Message:    message,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Async publishes in the background so a slow consumer never holds up a request.
// Failures are logged.
type Async struct {
	next    Publisher
	log     zerolog.Logger
	timeout time.Duration
}

func NewAsync(next Publisher, log zerolog.Logger) *Async {
	return &Async{next: next, log: log, timeout: 5 * time.Second}
}

func (a *Async) Publish(_ context.Context, e Event) error {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		if err := a.next.Publish(ctx, e); err != nil {
			a.log.Warn().Err(err).Str("event", string(e.Type)).Str("shop_id", e.ShopID.String()).Msg("publish event failed")
		}
	}()
	return nil
}
