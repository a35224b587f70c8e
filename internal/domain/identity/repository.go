package identity

import (
	"context"

	"github.com/chickenviken/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AdminRepository is the persistence port for admin-namespace accounts
type AdminRepository interface {
	Save(ctx context.Context, admin *Admin) error
	FindByID(ctx context.Context, id uuid.UUID) (*Admin, error)
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Admin, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomerRepository is the persistence port for storefront accounts
// (user namespace)
type CustomerRepository interface {
	Save(ctx context.Context, customer *Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
