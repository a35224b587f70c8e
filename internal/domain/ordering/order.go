package ordering

import (
	"fmt"
	"strconv"
	"time"

	"github.com/chickenviken/backend/internal/domain/shared"
	"github.com/chickenviken/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryFee is the flat fee added to every order at checkout.
var DeliveryFee = decimal.NewFromInt(40)

// OrderStatus represents the status of a customer order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus normalizes a raw status string. Historical documents and
// clients use "completed" for delivered and the "canceled" spelling, so both
// are accepted on input and collapsed to the canonical value.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch raw {
	case "pending":
		return OrderStatusPending, nil
	case "processing":
		return OrderStatusProcessing, nil
	case "delivered", "completed":
		return OrderStatusDelivered, nil
	case "cancelled", "canceled":
		return OrderStatusCancelled, nil
	}
	return "", shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", raw))
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true for states no further transition may leave
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusProcessing || target == OrderStatusDelivered || target == OrderStatusCancelled
	case OrderStatusProcessing:
		return target == OrderStatusDelivered || target == OrderStatusCancelled
	case OrderStatusDelivered, OrderStatusCancelled:
		return false
	}
	return false
}

// PaymentStatus represents the payment state of an order. No payment gateway
// is integrated; checkout records "paid" unconditionally after the client's
// simulated payment step.
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// OrderItem is a line item snapshot taken from the cart at checkout.
// Name, price and image are copied so later product edits don't rewrite
// order history.
type OrderItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id" gorm:"index"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url"`
}

// Amount returns the line total (unit price * quantity)
func (i OrderItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents one checkout transaction. It is the aggregate root for
// the customer-namespace orders collection.
type Order struct {
	shared.BaseAggregateRoot
	OrderCode       string                      `json:"order_code" gorm:"uniqueIndex"`
	UserID          uuid.UUID                   `json:"user_id" gorm:"index"`
	Items           []OrderItem                 `json:"items" gorm:"foreignKey:OrderID"`
	Subtotal        decimal.Decimal             `json:"subtotal"`
	DeliveryFee     decimal.Decimal             `json:"delivery_fee"`
	FinalAmount     decimal.Decimal             `json:"final_amount"`
	ShippingAddress valueobject.ShippingAddress `json:"shipping_address" gorm:"type:text"`
	PaymentMethod   string                      `json:"payment_method"`
	PaymentStatus   PaymentStatus               `json:"payment_status"`
	Status          OrderStatus                 `json:"status" gorm:"index"`
	CancelledAt     *time.Time                  `json:"cancelled_at,omitempty"`
}

// GenerateOrderCode builds the human-facing order identifier from the
// current wall clock. Two orders created within the same millisecond by the
// same process collide; the store id remains the unique key.
func GenerateOrderCode(at time.Time) string {
	return "ORD" + strconv.FormatInt(at.UnixMilli(), 10)
}

// NewOrder creates an order from a reconciled cart. The caller supplies the
// cart subtotal; the final amount adds the flat delivery fee once, at
// creation, and is never recomputed afterwards.
func NewOrder(userID uuid.UUID, items []OrderItem, subtotal decimal.Decimal, address valueobject.ShippingAddress, paymentMethod string) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot place an order without items")
	}
	if subtotal.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Order total must be positive")
	}
	if address.IsEmpty() {
		return nil, shared.NewDomainError("MISSING_ADDRESS", "Shipping address is required")
	}
	if paymentMethod == "" {
		return nil, shared.NewDomainError("MISSING_PAYMENT_METHOD", "Payment method is required")
	}
	for _, item := range items {
		if item.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_ITEM", "Order item product ID is required")
		}
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_ITEM", "Order item quantity must be positive")
		}
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Subtotal:          subtotal,
		DeliveryFee:       DeliveryFee,
		FinalAmount:       subtotal.Add(DeliveryFee),
		ShippingAddress:   address,
		PaymentMethod:     paymentMethod,
		PaymentStatus:     PaymentStatusPaid,
		Status:            OrderStatusPending,
	}
	order.OrderCode = GenerateOrderCode(order.CreatedAt)

	order.Items = make([]OrderItem, 0, len(items))
	for _, item := range items {
		item.ID = uuid.New()
		item.OrderID = order.ID
		order.Items = append(order.Items, item)
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// TransitionTo moves the order to the target status, enforcing the
// transition table. A repeated transition to the current status is a no-op
// so that retried cancellations stay idempotent.
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if o.Status == target {
		return nil
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}

	from := o.Status
	now := time.Now()
	o.Status = target
	o.UpdatedAt = now
	if target == OrderStatusCancelled {
		o.CancelledAt = &now
	}

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))

	return nil
}

// Cancel cancels the order. Calling it on an already-cancelled order is a
// no-op; calling it on a delivered order fails.
func (o *Order) Cancel() error {
	return o.TransitionTo(OrderStatusCancelled)
}

// CancellableByCustomer reports whether the owning customer may still
// self-cancel. Only pending orders are offered the action.
func (o *Order) CancellableByCustomer() bool {
	return o.Status == OrderStatusPending
}

// IsCancelled returns true if the order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}
