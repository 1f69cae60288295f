package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/catalog"
	"github.com/erp/backoffice/internal/domain/shared"
)

// PriceListService handles price list headers and their items
type PriceListService struct {
	priceLists catalog.PriceListRepository
	products   catalog.ProductRepository
	logger     *zap.Logger
}

// NewPriceListService creates a new price list service
func NewPriceListService(priceLists catalog.PriceListRepository, products catalog.ProductRepository, logger *zap.Logger) *PriceListService {
	return &PriceListService{
		priceLists: priceLists,
		products:   products,
		logger:     logger.Named("price_list"),
	}
}

// Create builds a price list with its items in one save
func (s *PriceListService) Create(ctx context.Context, input CreatePriceListInput) (*PriceListResponse, error) {
	priceList, err := catalog.NewPriceList(input.Name, input.Description, input.Currency, input.CustomerType, input.EffectiveFrom, input.EffectiveTo)
	if err != nil {
		return nil, err
	}

	for _, item := range input.Items {
		if _, err := s.products.FindByID(ctx, item.ProductID); err != nil {
			return nil, err
		}
		if err := priceList.AddItem(item.ProductID, item.Price, item.MinQuantity); err != nil {
			return nil, err
		}
	}

	if err := s.priceLists.Save(ctx, priceList); err != nil {
		return nil, err
	}

	s.logger.Info("price list created",
		zap.Uint("id", priceList.ID),
		zap.String("name", priceList.Name),
		zap.Int("items", len(priceList.Items)),
	)
	resp := newPriceListResponse(priceList)
	return &resp, nil
}

// GetByID returns one price list with its items
func (s *PriceListService) GetByID(ctx context.Context, id uint) (*PriceListResponse, error) {
	priceList, err := s.priceLists.FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := newPriceListResponse(priceList)
	return &resp, nil
}

// List returns price list headers matching the filter
func (s *PriceListService) List(ctx context.Context, filter shared.Filter) ([]PriceListResponse, error) {
	priceLists, err := s.priceLists.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]PriceListResponse, 0, len(priceLists))
	for i := range priceLists {
		result = append(result, newPriceListResponse(&priceLists[i]))
	}
	return result, nil
}

// AddItem attaches a product price to an existing list
func (s *PriceListService) AddItem(ctx context.Context, id uint, input PriceListItemInput) (*PriceListResponse, error) {
	priceList, err := s.priceLists.FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.products.FindByID(ctx, input.ProductID); err != nil {
		return nil, err
	}
	if err := priceList.AddItem(input.ProductID, input.Price, input.MinQuantity); err != nil {
		return nil, err
	}
	if err := s.priceLists.Save(ctx, priceList); err != nil {
		return nil, err
	}
	resp := newPriceListResponse(priceList)
	return &resp, nil
}

// RemoveItem detaches a product price from an existing list
func (s *PriceListService) RemoveItem(ctx context.Context, id, productID uint) (*PriceListResponse, error) {
	priceList, err := s.priceLists.FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := priceList.RemoveItem(productID); err != nil {
		return nil, err
	}
	if err := s.priceLists.Save(ctx, priceList); err != nil {
		return nil, err
	}
	resp := newPriceListResponse(priceList)
	return &resp, nil
}

// Deactivate marks a price list inactive
func (s *PriceListService) Deactivate(ctx context.Context, id uint) error {
	priceList, err := s.priceLists.FindByID(ctx, id)
	if err != nil {
		return err
	}
	priceList.Deactivate()
	return s.priceLists.Save(ctx, priceList)
}
