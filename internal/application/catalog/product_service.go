package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/catalog"
	"github.com/erp/backoffice/internal/domain/shared"
)

// ProductService handles product reference data
type ProductService struct {
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(products catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		products: products,
		logger:   logger.Named("product"),
	}
}

// Create registers a new product
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*ProductResponse, error) {
	product, err := catalog.NewProduct(input.SKU, input.Name, input.Description, input.BasePrice)
	if err != nil {
		return nil, err
	}

	existing, err := s.products.FindBySKU(ctx, product.SKU)
	if err != nil && !errors.Is(err, catalog.ErrProductNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, catalog.ErrProductSKUExists
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.Uint("id", product.ID), zap.String("sku", product.SKU))
	resp := newProductResponse(product)
	return &resp, nil
}

// GetByID returns one product
func (s *ProductService) GetByID(ctx context.Context, id uint) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := newProductResponse(product)
	return &resp, nil
}

// List returns products matching the filter
func (s *ProductService) List(ctx context.Context, filter shared.Filter) ([]ProductResponse, error) {
	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, newProductResponse(&products[i]))
	}
	return result, nil
}

// Update changes a product's attributes
func (s *ProductService) Update(ctx context.Context, id uint, input UpdateProductInput) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Update(input.Name, input.Description, input.BasePrice); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := newProductResponse(product)
	return &resp, nil
}

// Deactivate marks a product inactive without deleting history
func (s *ProductService) Deactivate(ctx context.Context, id uint) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	product.Deactivate()
	return s.products.Save(ctx, product)
}
