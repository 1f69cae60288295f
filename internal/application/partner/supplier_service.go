package partner

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/partner"
	"github.com/erp/backoffice/internal/domain/shared"
)

// SupplierService handles supplier lifecycle operations
type SupplierService struct {
	suppliers partner.SupplierRepository
	logger    *zap.Logger
}

// NewSupplierService creates a new supplier service
func NewSupplierService(suppliers partner.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{
		suppliers: suppliers,
		logger:    logger.Named("supplier"),
	}
}

// Create registers a new supplier
func (s *SupplierService) Create(ctx context.Context, input CreateSupplierInput) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(input.Name, input.Code)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(input.Name, input.ContactPerson, input.Phone, input.Email, input.GSTNumber, input.Address); err != nil {
		return nil, err
	}

	existing, err := s.suppliers.FindByCode(ctx, supplier.Code)
	if err != nil && !errors.Is(err, partner.ErrSupplierNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, partner.ErrSupplierCodeExists
	}

	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.logger.Info("supplier created", zap.Uint("id", supplier.ID), zap.String("code", supplier.Code))
	resp := newSupplierResponse(supplier)
	return &resp, nil
}

// GetByID returns one supplier
func (s *SupplierService) GetByID(ctx context.Context, id uint) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := newSupplierResponse(supplier)
	return &resp, nil
}

// List returns suppliers matching the filter
func (s *SupplierService) List(ctx context.Context, filter shared.Filter) ([]SupplierResponse, error) {
	suppliers, err := s.suppliers.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		result = append(result, newSupplierResponse(&suppliers[i]))
	}
	return result, nil
}

// Update changes a supplier's attributes
func (s *SupplierService) Update(ctx context.Context, id uint, input UpdateSupplierInput) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(strings.TrimSpace(input.Name), input.ContactPerson, input.Phone, input.Email, input.GSTNumber, input.Address); err != nil {
		return nil, err
	}
	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	resp := newSupplierResponse(supplier)
	return &resp, nil
}

// Deactivate marks a supplier inactive without deleting history
func (s *SupplierService) Deactivate(ctx context.Context, id uint) error {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	supplier.Deactivate()
	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return err
	}
	s.logger.Info("supplier deactivated", zap.Uint("id", id))
	return nil
}
