package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/erp/backoffice/internal/domain/catalog"
	"github.com/erp/backoffice/internal/domain/shared"
)

// GormPriceListRepository implements catalog.PriceListRepository using GORM
type GormPriceListRepository struct {
	db *gorm.DB
}

var _ catalog.PriceListRepository = (*GormPriceListRepository)(nil)

// NewGormPriceListRepository creates a new price list repository
func NewGormPriceListRepository(db *gorm.DB) *GormPriceListRepository {
	return &GormPriceListRepository{db: db}
}

// FindByID returns one price list header by id
func (r *GormPriceListRepository) FindByID(ctx context.Context, id uint) (*catalog.PriceList, error) {
	var priceList catalog.PriceList
	if err := r.db.WithContext(ctx).First(&priceList, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrPriceListNotFound
		}
		return nil, err
	}
	return &priceList, nil
}

// FindByIDWithItems returns one price list with its items loaded
func (r *GormPriceListRepository) FindByIDWithItems(ctx context.Context, id uint) (*catalog.PriceList, error) {
	var priceList catalog.PriceList
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&priceList, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrPriceListNotFound
		}
		return nil, err
	}
	return &priceList, nil
}

// FindAll returns price list headers matching the filter
func (r *GormPriceListRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.PriceList, error) {
	var priceLists []catalog.PriceList
	query := applyFilter(r.db.WithContext(ctx).Model(&catalog.PriceList{}), filter, "name")
	if err := query.Find(&priceLists).Error; err != nil {
		return nil, err
	}
	return priceLists, nil
}

// Save persists the header and replaces its item set, dropping items
// removed from the aggregate.
func (r *GormPriceListRepository) Save(ctx context.Context, priceList *catalog.PriceList) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(priceList).Error; err != nil {
			return fmt.Errorf("save price list: %w", err)
		}

		kept := make([]uint, 0, len(priceList.Items))
		for _, item := range priceList.Items {
			if item.ID != 0 {
				kept = append(kept, item.ID)
			}
		}
		prune := tx.Where("price_list_id = ?", priceList.ID)
		if len(kept) > 0 {
			prune = prune.Where("id NOT IN ?", kept)
		}
		if err := prune.Delete(&catalog.PriceListItem{}).Error; err != nil {
			return fmt.Errorf("prune price list items: %w", err)
		}

		for i := range priceList.Items {
			priceList.Items[i].PriceListID = priceList.ID
			if err := tx.Save(&priceList.Items[i]).Error; err != nil {
				return fmt.Errorf("save price list item: %w", err)
			}
		}
		return nil
	})
}

// Delete removes a price list and its items
func (r *GormPriceListRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("price_list_id = ?", id).Delete(&catalog.PriceListItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&catalog.PriceList{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return catalog.ErrPriceListNotFound
		}
		return nil
	})
}

// Count returns the number of price lists matching the filter
func (r *GormPriceListRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	filter.Page = 0
	filter.PageSize = 0
	filter.OrderBy = ""
	query := applyFilter(r.db.WithContext(ctx).Model(&catalog.PriceList{}), filter, "name")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
