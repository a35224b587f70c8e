package ordering

import (
	"context"
	"sort"
	"time"

	"github.com/chickenviken/backend/internal/domain/ordering"
	"github.com/chickenviken/backend/internal/domain/shared"
	"github.com/chickenviken/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService handles checkout and order lifecycle operations. It writes
// through the storefront repository and serves admin reads through the
// query port.
type OrderService struct {
	orders    ordering.OrderRepository
	query     ordering.OrderQuery
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orders ordering.OrderRepository, query ordering.OrderQuery, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		query:  query,
		logger: logger,
	}
}

// SetEventPublisher sets the publisher for order lifecycle events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Create places an order for the signed-in customer. Payment is recorded as
// settled up front and stock is not touched here.
func (s *OrderService) Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot place an order with an empty cart")
	}

	items := make([]ordering.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = ordering.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: decimal.NewFromFloat(item.Price),
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
		}
	}

	address := valueobject.NewShippingAddress(
		req.ShippingAddress["name"],
		req.ShippingAddress["phone"],
		req.ShippingAddress["street"],
		req.ShippingAddress["city"],
		req.ShippingAddress["state"],
		req.ShippingAddress["zipCode"],
	)

	order, err := ordering.NewOrder(userID, items, decimal.NewFromFloat(req.Subtotal), address, req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	s.logger.Info("order placed",
		zap.String("order_code", order.OrderCode),
		zap.String("user_id", userID.String()),
		zap.String("final_amount", order.FinalAmount.String()),
	)

	response := ToOrderResponse(order)
	return &response, nil
}

// GetOwn retrieves one of the customer's own orders
func (s *OrderService) GetOwn(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		// don't leak existence of other customers' orders
		return nil, shared.ErrNotFound
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// ListByUser returns the customer's orders, newest first. The store cannot
// sort this query, so ordering happens here; records without a creation
// timestamp sort as if they were just placed.
func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sortKey := func(o *ordering.Order) time.Time {
		if o.CreatedAt.IsZero() {
			return now
		}
		return o.CreatedAt
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return sortKey(&orders[i]).After(sortKey(&orders[j]))
	})

	return ToOrderResponses(orders), nil
}

// ListAll returns orders across all customers for the dashboard
func (s *OrderService) ListAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	orders, err := s.query.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.query.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToOrderResponses(orders), total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetByID retrieves any order for the dashboard
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.query.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateStatus moves an order along the lifecycle. Unknown statuses and
// transitions out of a terminal state are rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, rawStatus string) (*OrderResponse, error) {
	status, err := ordering.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.TransitionTo(status); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	s.logger.Info("order status updated",
		zap.String("order_code", order.OrderCode),
		zap.String("status", string(status)),
	)

	response := ToOrderResponse(order)
	return &response, nil
}

// Cancel cancels an order from the dashboard. Repeating the call on an
// already-cancelled order succeeds without changing anything.
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// CancelOwn lets a customer cancel one of their own orders while it is still
// pending
func (s *OrderService) CancelOwn(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, shared.ErrNotFound
	}
	if !order.CancellableByCustomer() && order.Status != ordering.OrderStatusCancelled {
		return nil, shared.NewDomainError("ORDER_NOT_CANCELLABLE", "Order can no longer be cancelled")
	}

	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// Delete removes an order record entirely
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	return s.orders.Delete(ctx, orderID)
}

func (s *OrderService) publishEvents(ctx context.Context, order *ordering.Order) {
	if s.publisher == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish order events", zap.Error(err))
	}
	order.ClearDomainEvents()
}
