package events

import (
	"errors"
	"time"

	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"github.com/google/uuid"
)

const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
	TypeOrderPurged        = "order.purged"
)

type OrderEvent struct {
	EventID      string             `json:"eventId"`
	Type         string             `json:"type"`
	OrderID      uint               `json:"orderId"`
	UserID       uint               `json:"userId"`
	RestaurantID uint               `json:"restaurantId"`
	Status       entity.OrderStatus `json:"status"`
	PrevStatus   entity.OrderStatus `json:"prevStatus,omitempty"`
	Total        int64              `json:"total"`
	OccurredAt   time.Time          `json:"occurredAt"`
}

// NewOrderEvent snapshots an order into an event of the given type.
func NewOrderEvent(typ string, o *entity.Order) OrderEvent {
	return OrderEvent{
		EventID:      uuid.NewString(),
		Type:         typ,
		OrderID:      o.ID,
		UserID:       o.UserID,
		RestaurantID: o.RestaurantID,
		Status:       o.Status,
		Total:        o.Total,
		OccurredAt:   time.Now().UTC(),
	}
}

// Publisher delivers order events after the owning transaction committed.
type Publisher interface {
	Publish(evt OrderEvent) error
}

type Nop struct{}

func (Nop) Publish(OrderEvent) error { return nil }

// Fanout publishes to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(evt OrderEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
