package persistence

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/erp/backoffice/internal/domain/receiving"
)

// GormGRNRepository implements receiving.GRNRepository using GORM.
// The write methods participate in whatever transaction the db handle
// is bound to; the transaction scope hands out instances bound to one.
type GormGRNRepository struct {
	db *gorm.DB
}

var _ receiving.GRNRepository = (*GormGRNRepository)(nil)

// NewGormGRNRepository creates a new goods receipt repository
func NewGormGRNRepository(db *gorm.DB) *GormGRNRepository {
	return &GormGRNRepository{db: db}
}

// InsertHeader inserts the header row in status CREATED and assigns its id
func (r *GormGRNRepository) InsertHeader(ctx context.Context, grn *receiving.GoodsReceiptNote) error {
	return r.db.WithContext(ctx).Omit("Items").Create(grn).Error
}

// InsertItem inserts one line row and assigns its id
func (r *GormGRNRepository) InsertItem(ctx context.Context, item *receiving.GoodsReceiptItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// FinalizeHeader moves the header to POSTED with its aggregate totals
func (r *GormGRNRepository) FinalizeHeader(ctx context.Context, grnID uint, totalMaterialCost, totalCost decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&receiving.GoodsReceiptNote{}).
		Where("id = ? AND status = ?", grnID, receiving.StatusCreated).
		Updates(map[string]interface{}{
			"status":              receiving.StatusPosted,
			"total_material_cost": totalMaterialCost,
			"total_cost":          totalCost,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return receiving.ErrGRNNotFound
	}
	return nil
}

// FindByID returns one goods receipt note with its items
func (r *GormGRNRepository) FindByID(ctx context.Context, id uint) (*receiving.GoodsReceiptNote, error) {
	var grn receiving.GoodsReceiptNote
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&grn, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, receiving.ErrGRNNotFound
		}
		return nil, err
	}
	return &grn, nil
}

// FindAllWithItems returns all headers newest-first with their items in
// ascending id order
func (r *GormGRNRepository) FindAllWithItems(ctx context.Context) ([]receiving.GoodsReceiptNote, error) {
	var notes []receiving.GoodsReceiptNote
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("created_at DESC, id DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}
