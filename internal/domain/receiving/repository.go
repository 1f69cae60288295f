package receiving

import (
	"context"

	"github.com/shopspring/decimal"
)

// GRNRepository owns persistence of goods receipt headers and lines.
// The write operations are meaningful only inside the posting
// transaction; the transaction scope hands out a bound instance.
type GRNRepository interface {
	InsertHeader(ctx context.Context, grn *GoodsReceiptNote) error
	InsertItem(ctx context.Context, item *GoodsReceiptItem) error
	FinalizeHeader(ctx context.Context, grnID uint, totalMaterialCost, totalCost decimal.Decimal) error
	FindByID(ctx context.Context, id uint) (*GoodsReceiptNote, error)
	// FindAllWithItems returns headers newest-first with items loaded
	// in ascending id order.
	FindAllWithItems(ctx context.Context) ([]GoodsReceiptNote, error)
}

// MaterialLotRepository owns persistence of material stock lots.
// CountByMaterial must be read in the same transaction as the
// subsequent insert, with the material row locked, so concurrent
// postings for one material cannot derive the same sequence.
type MaterialLotRepository interface {
	Insert(ctx context.Context, lot *MaterialLot) error
	CountByMaterial(ctx context.Context, materialID uint) (int64, error)
	FindByMaterial(ctx context.Context, materialID uint) ([]MaterialLot, error)
}
