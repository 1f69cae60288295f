package persistence

import (
	"context"

	"gorm.io/gorm"

	appreceiving "github.com/erp/backoffice/internal/application/receiving"
	"github.com/erp/backoffice/internal/domain/catalog"
	"github.com/erp/backoffice/internal/domain/receiving"
)

// GormTransactionScope implements the receiving transaction scope on a
// GORM database transaction. Everything the unit of work touches goes
// through repositories bound to that transaction; an error from the
// function rolls the whole posting back.
type GormTransactionScope struct {
	db *gorm.DB
}

var _ appreceiving.TransactionScope = (*GormTransactionScope)(nil)

// NewGormTransactionScope creates a new transaction scope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside one database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appreceiving.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&transactionalRepositories{tx: tx})
	})
}

type transactionalRepositories struct {
	tx *gorm.DB
}

var _ appreceiving.TransactionalRepositories = (*transactionalRepositories)(nil)

func (r *transactionalRepositories) GoodsReceipts() receiving.GRNRepository {
	return NewGormGRNRepository(r.tx)
}

func (r *transactionalRepositories) MaterialLots() receiving.MaterialLotRepository {
	return NewGormMaterialLotRepository(r.tx)
}

func (r *transactionalRepositories) Materials() catalog.MaterialRepository {
	return NewGormMaterialRepository(r.tx)
}
