package receiving

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/receiving"
)

// PostingService drives the goods receipt posting transaction: validate
// the payload, allocate overhead, persist header, lines and lots in one
// transaction and finalize the header to POSTED.
type PostingService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewPostingService creates a new posting service
func NewPostingService(scope TransactionScope, logger *zap.Logger) *PostingService {
	return &PostingService{
		scope:  scope,
		logger: logger.Named("grn_posting"),
	}
}

// Post creates and posts a goods receipt note, returning its id.
// Validation and allocation run before the transaction opens; a
// degenerate allocation never touches the database. Any failure inside
// the transaction rolls everything back.
func (s *PostingService) Post(ctx context.Context, input PostGoodsReceiptInput) (uint, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	lines := make([]receiving.AllocationLine, len(input.Items))
	for i, item := range input.Items {
		lines[i] = receiving.AllocationLine{
			Quantity: item.Quantity,
			UnitRate: item.UnitRate,
		}
	}

	grn, err := receiving.NewGoodsReceiptNote(
		input.SupplierID,
		input.SupplierInvoiceNo,
		input.SupplierInvoiceDate,
		input.TransportCost,
		input.LoadingCost,
		input.MiscCost,
	)
	if err != nil {
		return 0, err
	}

	alloc, err := receiving.Allocate(lines, grn.Overhead())
	if err != nil {
		return 0, err
	}

	for _, item := range input.Items {
		if err := grn.AddItem(item.MaterialID, item.Quantity, item.UnitRate); err != nil {
			return 0, err
		}
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		grns := repos.GoodsReceipts()

		if err := grns.InsertHeader(ctx, grn); err != nil {
			return fmt.Errorf("insert header: %w", err)
		}

		for i := range grn.Items {
			grn.Items[i].GRNID = grn.ID
			if err := grns.InsertItem(ctx, &grn.Items[i]); err != nil {
				return fmt.Errorf("insert item %d: %w", i, err)
			}
		}

		for i := range grn.Items {
			item := &grn.Items[i]

			// Lock the material row so concurrent postings for the
			// same material serialize before the sequence read.
			material, err := repos.Materials().FindByIDForUpdate(ctx, item.MaterialID)
			if err != nil {
				return fmt.Errorf("lock material %d: %w", item.MaterialID, err)
			}

			count, err := repos.MaterialLots().CountByMaterial(ctx, item.MaterialID)
			if err != nil {
				return fmt.Errorf("count lots for material %d: %w", item.MaterialID, err)
			}

			lotNo := receiving.GenerateLotNumber(material.Code, count+1)
			lot, err := receiving.NewMaterialLot(
				item.MaterialID,
				grn.ID,
				item.ID,
				lotNo,
				input.Items[i].BatchNo,
				input.Items[i].ExpiryDate,
				item.Quantity,
				item.UnitRate,
				alloc.Lines[i].LandedUnitCost,
			)
			if err != nil {
				return err
			}
			if err := repos.MaterialLots().Insert(ctx, lot); err != nil {
				return fmt.Errorf("insert lot %s: %w", lotNo, err)
			}
		}

		if err := grn.Finalize(alloc.TotalMaterialCost, alloc.TotalCost); err != nil {
			return err
		}
		if err := grns.FinalizeHeader(ctx, grn.ID, grn.TotalMaterialCost, grn.TotalCost); err != nil {
			return fmt.Errorf("finalize header: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("goods receipt posting failed",
			zap.Uint("supplier_id", input.SupplierID),
			zap.Int("items", len(input.Items)),
			zap.Error(err),
		)
		return 0, err
	}

	s.logger.Info("goods receipt posted",
		zap.Uint("grn_id", grn.ID),
		zap.Uint("supplier_id", grn.SupplierID),
		zap.Int("items", len(grn.Items)),
		zap.String("total_cost", grn.TotalCost.String()),
	)
	return grn.ID, nil
}
