package receiving

import (
	"context"

	"github.com/erp/backoffice/internal/domain/catalog"
	"github.com/erp/backoffice/internal/domain/receiving"
)

// TransactionalRepositories exposes the repositories bound to one
// database transaction. Everything obtained from it reads and writes
// within that transaction.
type TransactionalRepositories interface {
	GoodsReceipts() receiving.GRNRepository
	MaterialLots() receiving.MaterialLotRepository
	Materials() catalog.MaterialRepository
}

// TransactionScope executes a unit of work atomically. If fn returns an
// error the transaction rolls back and nothing it wrote is visible.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}
