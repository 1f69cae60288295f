package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/erp/backoffice/internal/domain/catalog"
	"github.com/erp/backoffice/internal/domain/shared"
)

// GormUOMRepository implements catalog.UnitOfMeasureRepository using GORM
type GormUOMRepository struct {
	db *gorm.DB
}

var _ catalog.UnitOfMeasureRepository = (*GormUOMRepository)(nil)

// NewGormUOMRepository creates a new unit of measure repository
func NewGormUOMRepository(db *gorm.DB) *GormUOMRepository {
	return &GormUOMRepository{db: db}
}

// FindByID returns one unit of measure by id
func (r *GormUOMRepository) FindByID(ctx context.Context, id uint) (*catalog.UnitOfMeasure, error) {
	var uom catalog.UnitOfMeasure
	if err := r.db.WithContext(ctx).First(&uom, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrUOMNotFound
		}
		return nil, err
	}
	return &uom, nil
}

// FindAll returns units of measure matching the filter
func (r *GormUOMRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.UnitOfMeasure, error) {
	var uoms []catalog.UnitOfMeasure
	query := applyFilter(r.db.WithContext(ctx).Model(&catalog.UnitOfMeasure{}), filter, "name")
	if err := query.Find(&uoms).Error; err != nil {
		return nil, err
	}
	return uoms, nil
}

// Save inserts or updates a unit of measure
func (r *GormUOMRepository) Save(ctx context.Context, uom *catalog.UnitOfMeasure) error {
	return r.db.WithContext(ctx).Save(uom).Error
}

// Delete removes a unit of measure
func (r *GormUOMRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&catalog.UnitOfMeasure{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.ErrUOMNotFound
	}
	return nil
}

// Count returns the number of units of measure
func (r *GormUOMRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	filter.Page = 0
	filter.PageSize = 0
	filter.OrderBy = ""
	query := applyFilter(r.db.WithContext(ctx).Model(&catalog.UnitOfMeasure{}), filter, "name")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
