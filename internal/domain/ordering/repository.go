package ordering

import (
	"context"

	"github.com/chickenviken/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository is the persistence port for orders, owned by the
// customer-facing service (user namespace).
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByUser filters by owner equality only. The store has no compound
	// (user_id, created_at) index, so callers sort in application memory.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderQuery is the read port the admin application depends on. The admin
// dashboard has no authoritative copy of orders; it reads the customer
// namespace through this boundary instead of sharing a raw database client.
type OrderQuery interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
