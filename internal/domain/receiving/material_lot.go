package receiving

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/shared"
)

// MaterialLot is a traceable batch of received material. Created exactly
// once per goods receipt line; qty_available is consumed by downstream
// workflows but starts equal to qty_received.
type MaterialLot struct {
	shared.BaseEntity
	MaterialID   uint   `gorm:"uniqueIndex:idx_lots_material_lot_no"`
	GRNID        uint   `gorm:"column:grn_id;index"`
	GRNItemID    uint   `gorm:"column:grn_item_id"`
	LotNo        string `gorm:"uniqueIndex:idx_lots_material_lot_no"`
	BatchNo      string
	ExpiryDate   *time.Time
	QtyReceived  decimal.Decimal `gorm:"type:numeric(12,2)"`
	QtyAvailable decimal.Decimal `gorm:"type:numeric(12,2)"`
	UnitCost     decimal.Decimal `gorm:"type:numeric(12,2)"`
	LandedCost   decimal.Decimal `gorm:"type:numeric(12,4)"`
}

// TableName returns the database table name
func (MaterialLot) TableName() string {
	return "material_lots"
}

// NewMaterialLot creates a lot for a received line
func NewMaterialLot(materialID, grnID, grnItemID uint, lotNo, batchNo string, expiryDate *time.Time, qtyReceived, unitCost, landedCost decimal.Decimal) (*MaterialLot, error) {
	if materialID == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "material is required")
	}
	if lotNo == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "lot number is required")
	}
	if !qtyReceived.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "received quantity must be positive")
	}

	return &MaterialLot{
		BaseEntity:   shared.NewBaseEntity(),
		MaterialID:   materialID,
		GRNID:        grnID,
		GRNItemID:    grnItemID,
		LotNo:        lotNo,
		BatchNo:      batchNo,
		ExpiryDate:   expiryDate,
		QtyReceived:  qtyReceived,
		QtyAvailable: qtyReceived,
		UnitCost:     unitCost,
		LandedCost:   landedCost,
	}, nil
}
