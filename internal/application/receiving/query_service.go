package receiving

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/catalog"
	"github.com/erp/backoffice/internal/domain/receiving"
	"github.com/erp/backoffice/internal/domain/shared"
)

// QueryService serves the goods receipt read paths. No allocation logic
// lives here; it only shapes the persisted aggregates for listing.
type QueryService struct {
	grns      receiving.GRNRepository
	lots      receiving.MaterialLotRepository
	materials catalog.MaterialRepository
	logger    *zap.Logger
}

// NewQueryService creates a new query service
func NewQueryService(grns receiving.GRNRepository, lots receiving.MaterialLotRepository, materials catalog.MaterialRepository, logger *zap.Logger) *QueryService {
	return &QueryService{
		grns:      grns,
		lots:      lots,
		materials: materials,
		logger:    logger.Named("grn_query"),
	}
}

// ListAll returns every goods receipt note with its lines joined with
// material reference data, newest header first.
func (s *QueryService) ListAll(ctx context.Context) ([]GoodsReceiptResponse, error) {
	notes, err := s.grns.FindAllWithItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list goods receipts: %w", err)
	}

	materials, err := s.materials.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, fmt.Errorf("load materials: %w", err)
	}
	byID := make(map[uint]catalog.Material, len(materials))
	for _, m := range materials {
		byID[m.ID] = m
	}

	result := make([]GoodsReceiptResponse, 0, len(notes))
	for _, note := range notes {
		items := make([]GoodsReceiptItemResponse, 0, len(note.Items))
		for _, item := range note.Items {
			material := byID[item.MaterialID]
			items = append(items, GoodsReceiptItemResponse{
				ID:           item.ID,
				MaterialID:   item.MaterialID,
				MaterialName: material.Name,
				MaterialCode: material.Code,
				UOMID:        material.UOMID,
				Quantity:     item.Quantity,
				UnitRate:     item.UnitRate,
				LineCost:     item.LineCost,
			})
		}
		result = append(result, GoodsReceiptResponse{
			ID:                  note.ID,
			SupplierID:          note.SupplierID,
			SupplierInvoiceNo:   note.SupplierInvoiceNo,
			SupplierInvoiceDate: note.SupplierInvoiceDate,
			TransportCost:       note.TransportCost,
			LoadingCost:         note.LoadingCost,
			MiscCost:            note.MiscCost,
			TotalMaterialCost:   note.TotalMaterialCost,
			TotalCost:           note.TotalCost,
			Status:              string(note.Status),
			CreatedAt:           note.CreatedAt,
			Items:               items,
		})
	}
	return result, nil
}

// ListLotsByMaterial returns the stock lots received for one material,
// oldest first, forming the raw material ledger.
func (s *QueryService) ListLotsByMaterial(ctx context.Context, materialID uint) ([]MaterialLotResponse, error) {
	if _, err := s.materials.FindByID(ctx, materialID); err != nil {
		return nil, err
	}

	lots, err := s.lots.FindByMaterial(ctx, materialID)
	if err != nil {
		return nil, fmt.Errorf("list lots for material %d: %w", materialID, err)
	}

	result := make([]MaterialLotResponse, 0, len(lots))
	for _, lot := range lots {
		result = append(result, newMaterialLotResponse(lot))
	}
	return result, nil
}
