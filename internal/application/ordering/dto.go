package ordering

import (
	"time"

	"github.com/chickenviken/backend/internal/domain/ordering"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one cart line at checkout
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	Price     float64   `json:"price" binding:"required,gt=0"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
	ImageURL  string    `json:"image,omitempty"`
}

// CreateOrderRequest is the checkout payload. The shipping address arrives as
// a loose JSON object; its fields are coerced to strings before validation so
// numeric zip codes survive.
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required"`
	Subtotal        float64            `json:"subtotal" binding:"required,gt=0"`
	ShippingAddress map[string]any     `json:"shippingAddress" binding:"required"`
	PaymentMethod   string             `json:"paymentMethod" binding:"required"`
}

// UpdateOrderStatusRequest changes an order's status from the dashboard
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderItemResponse is one order line in API responses
type OrderItemResponse struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}

// OrderResponse is the API shape of an order
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrderCode       string              `json:"orderCode"`
	UserID          uuid.UUID           `json:"userId"`
	Items           []OrderItemResponse `json:"items"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	DeliveryFee     decimal.Decimal     `json:"deliveryFee"`
	FinalAmount     decimal.Decimal     `json:"finalAmount"`
	ShippingAddress any                 `json:"shippingAddress"`
	PaymentMethod   string              `json:"paymentMethod"`
	PaymentStatus   string              `json:"paymentStatus"`
	Status          string              `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
	CancelledAt     *time.Time          `json:"cancelledAt,omitempty"`
}

// ToOrderResponse maps an order aggregate to its API shape
func ToOrderResponse(order *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.UnitPrice,
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
			Amount:    item.Amount(),
		}
	}
	return OrderResponse{
		ID:              order.ID,
		OrderCode:       order.OrderCode,
		UserID:          order.UserID,
		Items:           items,
		Subtotal:        order.Subtotal,
		DeliveryFee:     order.DeliveryFee,
		FinalAmount:     order.FinalAmount,
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		PaymentStatus:   string(order.PaymentStatus),
		Status:          string(order.Status),
		CreatedAt:       order.CreatedAt,
		CancelledAt:     order.CancelledAt,
	}
}

// ToOrderResponses maps a slice of orders
func ToOrderResponses(orders []ordering.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}
