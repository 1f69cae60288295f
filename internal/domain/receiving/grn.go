package receiving

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/shared"
)

// Status is the lifecycle state of a goods receipt note
type Status string

const (
	// StatusCreated is the initial state, assigned when the header row
	// is inserted at the start of the posting transaction.
	StatusCreated Status = "CREATED"
	// StatusPosted is the terminal state. A posted note has consistent
	// totals and one stock lot per line item.
	StatusPosted Status = "POSTED"
)

// CanTransitionTo reports whether the status may move to the target state
func (s Status) CanTransitionTo(target Status) bool {
	return s == StatusCreated && target == StatusPosted
}

// GoodsReceiptNote records materials physically received from a supplier.
// It anchors the landed-cost allocation and the stock lots it produced.
type GoodsReceiptNote struct {
	shared.BaseEntity
	SupplierID          uint
	SupplierInvoiceNo   string
	SupplierInvoiceDate *time.Time
	TransportCost       decimal.Decimal `gorm:"type:numeric(12,2)"`
	LoadingCost         decimal.Decimal `gorm:"type:numeric(12,2)"`
	MiscCost            decimal.Decimal `gorm:"type:numeric(12,2)"`
	TotalMaterialCost   decimal.Decimal `gorm:"type:numeric(14,2)"`
	TotalCost           decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status              Status
	Items               []GoodsReceiptItem `gorm:"foreignKey:GRNID"`
}

// TableName returns the database table name
func (GoodsReceiptNote) TableName() string {
	return "goods_receipt_notes"
}

// GoodsReceiptItem is one received line, owned exclusively by its note
type GoodsReceiptItem struct {
	shared.BaseEntity
	GRNID      uint            `gorm:"column:grn_id;index"`
	MaterialID uint            `gorm:"index"`
	Quantity   decimal.Decimal `gorm:"type:numeric(12,2)"`
	UnitRate   decimal.Decimal `gorm:"type:numeric(12,2)"`
	LineCost   decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName returns the database table name
func (GoodsReceiptItem) TableName() string {
	return "goods_receipt_items"
}

// NewGoodsReceiptNote creates a note in status CREATED
func NewGoodsReceiptNote(supplierID uint, invoiceNo string, invoiceDate *time.Time, transportCost, loadingCost, miscCost decimal.Decimal) (*GoodsReceiptNote, error) {
	if supplierID == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "supplier is required")
	}
	if transportCost.IsNegative() || loadingCost.IsNegative() || miscCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "overhead costs cannot be negative")
	}

	return &GoodsReceiptNote{
		BaseEntity:          shared.NewBaseEntity(),
		SupplierID:          supplierID,
		SupplierInvoiceNo:   invoiceNo,
		SupplierInvoiceDate: invoiceDate,
		TransportCost:       transportCost,
		LoadingCost:         loadingCost,
		MiscCost:            miscCost,
		TotalMaterialCost:   decimal.Zero,
		TotalCost:           decimal.Zero,
		Status:              StatusCreated,
	}, nil
}

// AddItem attaches a received line. The line cost is derived, never
// supplied by the caller.
func (g *GoodsReceiptNote) AddItem(materialID uint, quantity, unitRate decimal.Decimal) error {
	if g.Status != StatusCreated {
		return shared.ErrInvalidState
	}
	if materialID == 0 {
		return shared.NewDomainError("INVALID_INPUT", "material is required")
	}
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "quantity must be positive")
	}
	if !unitRate.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "unit rate must be positive")
	}

	g.Items = append(g.Items, GoodsReceiptItem{
		BaseEntity: shared.NewBaseEntity(),
		MaterialID: materialID,
		Quantity:   quantity,
		UnitRate:   unitRate,
		LineCost:   quantity.Mul(unitRate),
	})
	return nil
}

// Overhead returns the total incidental cost to allocate across lines
func (g *GoodsReceiptNote) Overhead() decimal.Decimal {
	return g.TransportCost.Add(g.LoadingCost).Add(g.MiscCost)
}

// Finalize moves the note to POSTED with its aggregate totals.
// Once posted a note never changes again.
func (g *GoodsReceiptNote) Finalize(totalMaterialCost, totalCost decimal.Decimal) error {
	if !g.Status.CanTransitionTo(StatusPosted) {
		return shared.ErrInvalidState
	}
	g.TotalMaterialCost = totalMaterialCost
	g.TotalCost = totalCost
	g.Status = StatusPosted
	return nil
}
