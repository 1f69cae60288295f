package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/erp/backoffice/internal/domain/receiving"
)

// GormMaterialLotRepository implements receiving.MaterialLotRepository
// using GORM
type GormMaterialLotRepository struct {
	db *gorm.DB
}

var _ receiving.MaterialLotRepository = (*GormMaterialLotRepository)(nil)

// NewGormMaterialLotRepository creates a new material lot repository
func NewGormMaterialLotRepository(db *gorm.DB) *GormMaterialLotRepository {
	return &GormMaterialLotRepository{db: db}
}

// Insert inserts one lot row. The unique index on (material_id, lot_no)
// backstops the sequence serialization.
func (r *GormMaterialLotRepository) Insert(ctx context.Context, lot *receiving.MaterialLot) error {
	if err := r.db.WithContext(ctx).Create(lot).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return receiving.ErrDuplicateLot
		}
		return err
	}
	return nil
}

// CountByMaterial returns the number of lots that exist for a material.
// Must run inside the posting transaction, after the material row lock.
func (r *GormMaterialLotRepository) CountByMaterial(ctx context.Context, materialID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&receiving.MaterialLot{}).
		Where("material_id = ?", materialID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// FindByMaterial returns a material's lots in creation order
func (r *GormMaterialLotRepository) FindByMaterial(ctx context.Context, materialID uint) ([]receiving.MaterialLot, error) {
	var lots []receiving.MaterialLot
	err := r.db.WithContext(ctx).
		Where("material_id = ?", materialID).
		Order("id ASC").
		Find(&lots).Error
	if err != nil {
		return nil, err
	}
	return lots, nil
}
