package catalog

import (
	"context"

	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[Product], error)
	Save(ctx context.Context, product *Product) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// CategoryRepository defines the persistence interface for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PriceChangeRepository persists the append-only price history
type PriceChangeRepository interface {
	Append(ctx context.Context, change *PriceChange) error
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (shared.Paginated[PriceChange], error)
}
