package ordering

import (
	"context"

	"github.com/chickenviken/backend/internal/domain/ordering"
	"github.com/chickenviken/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderAuditHandler writes an audit line for every order lifecycle event
type OrderAuditHandler struct {
	logger *zap.Logger
}

// NewOrderAuditHandler creates a new OrderAuditHandler
func NewOrderAuditHandler(logger *zap.Logger) *OrderAuditHandler {
	return &OrderAuditHandler{logger: logger.Named("order-audit")}
}

// EventTypes lists the events this handler subscribes to
func (h *OrderAuditHandler) EventTypes() []string {
	return []string{
		ordering.EventTypeOrderCreated,
		ordering.EventTypeOrderStatusChanged,
	}
}

// Handle records the event in the audit log
func (h *OrderAuditHandler) Handle(_ context.Context, ev shared.DomainEvent) error {
	switch e := ev.(type) {
	case *ordering.OrderCreatedEvent:
		h.logger.Info("order created",
			zap.String("order_id", e.AggregateID().String()),
			zap.String("order_code", e.OrderCode),
			zap.String("user_id", e.UserID.String()),
			zap.String("final_amount", e.FinalAmount),
		)
	case *ordering.OrderStatusChangedEvent:
		h.logger.Info("order status changed",
			zap.String("order_id", e.AggregateID().String()),
			zap.String("from", string(e.FromStatus)),
			zap.String("to", string(e.ToStatus)),
		)
	default:
		h.logger.Info("order event",
			zap.String("event_type", ev.EventType()),
			zap.String("order_id", ev.AggregateID().String()),
		)
	}
	return nil
}

var _ shared.EventHandler = (*OrderAuditHandler)(nil)
