package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/erp/backoffice/internal/domain/catalog"
	"github.com/erp/backoffice/internal/domain/shared"
)

// GormMaterialRepository implements catalog.MaterialRepository using GORM
type GormMaterialRepository struct {
	db *gorm.DB
}

var _ catalog.MaterialRepository = (*GormMaterialRepository)(nil)

// NewGormMaterialRepository creates a new material repository
func NewGormMaterialRepository(db *gorm.DB) *GormMaterialRepository {
	return &GormMaterialRepository{db: db}
}

// FindByID returns one material by id
func (r *GormMaterialRepository) FindByID(ctx context.Context, id uint) (*catalog.Material, error) {
	var material catalog.Material
	if err := r.db.WithContext(ctx).First(&material, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrMaterialNotFound
		}
		return nil, err
	}
	return &material, nil
}

// FindByIDForUpdate returns one material with its row locked until the
// surrounding transaction ends. SQLite has no row locks; its single
// writer already serializes concurrent transactions there.
func (r *GormMaterialRepository) FindByIDForUpdate(ctx context.Context, id uint) (*catalog.Material, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var material catalog.Material
	if err := query.First(&material, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrMaterialNotFound
		}
		return nil, err
	}
	return &material, nil
}

// FindAll returns materials matching the filter
func (r *GormMaterialRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Material, error) {
	var materials []catalog.Material
	query := applyFilter(r.db.WithContext(ctx).Model(&catalog.Material{}), filter, "name", "code")
	if err := query.Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

// Save inserts or updates a material
func (r *GormMaterialRepository) Save(ctx context.Context, material *catalog.Material) error {
	if err := r.db.WithContext(ctx).Save(material).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return catalog.ErrMaterialCodeExists
		}
		return err
	}
	return nil
}

// Delete removes a material
func (r *GormMaterialRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Material{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.ErrMaterialNotFound
	}
	return nil
}

// Count returns the number of materials matching the filter
func (r *GormMaterialRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	filter.Page = 0
	filter.PageSize = 0
	filter.OrderBy = ""
	query := applyFilter(r.db.WithContext(ctx).Model(&catalog.Material{}), filter, "name", "code")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByCode returns one material by its unique code
func (r *GormMaterialRepository) FindByCode(ctx context.Context, code string) (*catalog.Material, error) {
	var material catalog.Material
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&material).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrMaterialNotFound
		}
		return nil, err
	}
	return &material, nil
}
