package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OrderItemEvent struct {
	ProductID  uuid.UUID `json:"product_id"`
	Quantity   int32     `json:"quantity"`
	PriceCents int64     `json:"price_cents"`
}

type OrderPlacedEvent struct {
	OrderID         uuid.UUID        `json:"order_id"`
	UserID          uuid.UUID        `json:"user_id"`
	Items           []OrderItemEvent `json:"items"`
	TotalCents      int64            `json:"total_cents"`
	ShippingAddress string           `json:"shipping_address"`
	ShippingPhone   string           `json:"shipping_phone"`
	PlacedAt        time.Time        `json:"placed_at"`
}

type EventBus interface {
	PublishOrderPlaced(ctx context.Context, e OrderPlacedEvent) error
}

// Publisher is satisfied by producer.OrderProducer.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type kafkaEventBus struct {
	pub Publisher
}

func NewKafkaEventBus(pub Publisher) EventBus {
	return &kafkaEventBus{pub: pub}
}

func (b *kafkaEventBus) PublishOrderPlaced(ctx context.Context, e OrderPlacedEvent) error {
	return b.pub.Publish(ctx, e.OrderID.String(), e)
}
