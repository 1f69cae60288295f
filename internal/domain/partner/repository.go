package partner

import (
	"context"

	"github.com/erp/backoffice/internal/domain/shared"
)

// SupplierRepository defines persistence operations for suppliers
type SupplierRepository interface {
	shared.Repository[Supplier]
	FindByCode(ctx context.Context, code string) (*Supplier, error)
}

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	shared.Repository[Customer]
	FindByCode(ctx context.Context, code string) (*Customer, error)
}
