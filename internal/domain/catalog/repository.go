package catalog

import (
	"context"

	"github.com/erp/backoffice/internal/domain/shared"
)

// MaterialRepository defines persistence operations for materials.
// FindByIDForUpdate acquires a row lock on the material so callers can
// serialize per-material work inside a transaction.
type MaterialRepository interface {
	shared.Repository[Material]
	FindByCode(ctx context.Context, code string) (*Material, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*Material, error)
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	shared.Repository[Product]
	FindBySKU(ctx context.Context, sku string) (*Product, error)
}

// PriceListRepository defines persistence operations for price lists.
// Save persists the header together with its items.
type PriceListRepository interface {
	shared.Repository[PriceList]
	FindByIDWithItems(ctx context.Context, id uint) (*PriceList, error)
}

// UnitOfMeasureRepository defines persistence operations for units of measure
type UnitOfMeasureRepository interface {
	shared.Repository[UnitOfMeasure]
}
