// Package events fans order lifecycle events out to WebSocket dashboards
// and, when configured, a RabbitMQ queue.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/Keerthims13/ecommerce-platform/models"
)

type Type string

const (
	OrderCreated       Type = "order.created"
	OrderStatusUpdated Type = "order.status_updated"
)

type Event struct {
	Type        Type               `json:"type"`
	OrderID     uint               `json:"order_id"`
	UserID      uint               `json:"user_id,omitempty"`
	Status      models.OrderStatus `json:"status"`
	TotalAmount float64            `json:"total_amount,omitempty"`
	At          time.Time          `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Fanout publishes to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
