package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/catalog"
	"github.com/erp/backoffice/internal/domain/shared"
)

// MaterialService handles material reference data
type MaterialService struct {
	materials catalog.MaterialRepository
	uoms      catalog.UnitOfMeasureRepository
	logger    *zap.Logger
}

// NewMaterialService creates a new material service
func NewMaterialService(materials catalog.MaterialRepository, uoms catalog.UnitOfMeasureRepository, logger *zap.Logger) *MaterialService {
	return &MaterialService{
		materials: materials,
		uoms:      uoms,
		logger:    logger.Named("material"),
	}
}

// Create registers a new material
func (s *MaterialService) Create(ctx context.Context, input CreateMaterialInput) (*MaterialResponse, error) {
	material, err := catalog.NewMaterial(input.Code, input.Name, input.UOMID, input.MinStock)
	if err != nil {
		return nil, err
	}

	if _, err := s.uoms.FindByID(ctx, material.UOMID); err != nil {
		return nil, err
	}

	existing, err := s.materials.FindByCode(ctx, material.Code)
	if err != nil && !errors.Is(err, catalog.ErrMaterialNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, catalog.ErrMaterialCodeExists
	}

	if err := s.materials.Save(ctx, material); err != nil {
		return nil, err
	}

	s.logger.Info("material created", zap.Uint("id", material.ID), zap.String("code", material.Code))
	resp := newMaterialResponse(material)
	return &resp, nil
}

// GetByID returns one material
func (s *MaterialService) GetByID(ctx context.Context, id uint) (*MaterialResponse, error) {
	material, err := s.materials.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := newMaterialResponse(material)
	return &resp, nil
}

// List returns materials matching the filter
func (s *MaterialService) List(ctx context.Context, filter shared.Filter) ([]MaterialResponse, error) {
	materials, err := s.materials.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]MaterialResponse, 0, len(materials))
	for i := range materials {
		result = append(result, newMaterialResponse(&materials[i]))
	}
	return result, nil
}

// Update changes a material's attributes. The code stays fixed; lot
// numbers already derived from it must keep resolving.
func (s *MaterialService) Update(ctx context.Context, id uint, input UpdateMaterialInput) (*MaterialResponse, error) {
	material, err := s.materials.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.UOMID != material.UOMID {
		if _, err := s.uoms.FindByID(ctx, input.UOMID); err != nil {
			return nil, err
		}
	}
	if err := material.Update(input.Name, input.UOMID, input.MinStock); err != nil {
		return nil, err
	}
	if err := s.materials.Save(ctx, material); err != nil {
		return nil, err
	}
	resp := newMaterialResponse(material)
	return &resp, nil
}

// ListUOMs returns all units of measure
func (s *MaterialService) ListUOMs(ctx context.Context) ([]UOMResponse, error) {
	uoms, err := s.uoms.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	result := make([]UOMResponse, 0, len(uoms))
	for _, u := range uoms {
		result = append(result, UOMResponse{ID: u.ID, Name: u.Name, Symbol: u.Symbol})
	}
	return result, nil
}
