package ordering

import (
	"github.com/chickenviken/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event type constants for the ordering context
const (
	EventTypeOrderCreated       = "ordering.order.created"
	EventTypeOrderStatusChanged = "ordering.order.status_changed"
)

// OrderCreatedEvent is published when a checkout produces a new order
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderCode   string    `json:"order_code"`
	UserID      uuid.UUID `json:"user_id"`
	FinalAmount string    `json:"final_amount"`
	ItemCount   int       `json:"item_count"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, "Order", order.ID),
		OrderCode:       order.OrderCode,
		UserID:          order.UserID,
		FinalAmount:     order.FinalAmount.String(),
		ItemCount:       len(order.Items),
	}
}

// OrderStatusChangedEvent is published on every status transition,
// including cancellations
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderCode  string      `json:"order_code"`
	UserID     uuid.UUID   `json:"user_id"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, from OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, "Order", order.ID),
		OrderCode:       order.OrderCode,
		UserID:          order.UserID,
		FromStatus:      from,
		ToStatus:        order.Status,
	}
}
