package catalog

import (
	"context"

	"github.com/chickenviken/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository is the persistence port for products (admin namespace)
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindPopular orders by the best-effort order_count column. Callers
	// should be prepared for this to fail on stores where older documents
	// never carried the column, and fall back to a plain listing.
	FindPopular(ctx context.Context, limit int) ([]Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
