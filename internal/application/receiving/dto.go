package receiving

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/receiving"
)

// FieldError describes one invalid request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries per-field detail for a rejected request
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("validation failed: %s %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("validation failed: %d invalid fields", len(e.Fields))
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// PostGoodsReceiptItemInput is one line of a goods receipt request
type PostGoodsReceiptItemInput struct {
	MaterialID uint
	Quantity   decimal.Decimal
	UnitRate   decimal.Decimal
	BatchNo    string
	ExpiryDate *time.Time
}

// PostGoodsReceiptInput is the validated payload for posting a goods
// receipt note
type PostGoodsReceiptInput struct {
	SupplierID          uint
	SupplierInvoiceNo   string
	SupplierInvoiceDate *time.Time
	TransportCost       decimal.Decimal
	LoadingCost         decimal.Decimal
	MiscCost            decimal.Decimal
	Items               []PostGoodsReceiptItemInput
}

// Validate checks the payload shape before any computation runs
func (in *PostGoodsReceiptInput) Validate() error {
	verr := &ValidationError{}

	if in.SupplierID == 0 {
		verr.add("supplier_id", "is required")
	}
	if in.TransportCost.IsNegative() {
		verr.add("transport_cost", "cannot be negative")
	}
	if in.LoadingCost.IsNegative() {
		verr.add("loading_cost", "cannot be negative")
	}
	if in.MiscCost.IsNegative() {
		verr.add("misc_cost", "cannot be negative")
	}
	if len(in.Items) == 0 {
		verr.add("items", "at least one item is required")
	}
	for i, item := range in.Items {
		if item.MaterialID == 0 {
			verr.add(fmt.Sprintf("items[%d].material_id", i), "is required")
		}
		if !item.Quantity.IsPositive() {
			verr.add(fmt.Sprintf("items[%d].quantity", i), "must be positive")
		}
		if !item.UnitRate.IsPositive() {
			verr.add(fmt.Sprintf("items[%d].unit_rate", i), "must be positive")
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// GoodsReceiptItemResponse is one line of a listed goods receipt note,
// joined with material reference data
type GoodsReceiptItemResponse struct {
	ID           uint            `json:"id"`
	MaterialID   uint            `json:"material_id"`
	MaterialName string          `json:"material_name"`
	MaterialCode string          `json:"material_code"`
	UOMID        uint            `json:"uom_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitRate     decimal.Decimal `json:"unit_rate"`
	LineCost     decimal.Decimal `json:"line_cost"`
}

// GoodsReceiptResponse is a listed goods receipt note with its lines
type GoodsReceiptResponse struct {
	ID                  uint                       `json:"grn_id"`
	SupplierID          uint                       `json:"supplier_id"`
	SupplierInvoiceNo   string                     `json:"supplier_invoice_no,omitempty"`
	SupplierInvoiceDate *time.Time                 `json:"supplier_invoice_date,omitempty"`
	TransportCost       decimal.Decimal            `json:"transport_cost"`
	LoadingCost         decimal.Decimal            `json:"loading_cost"`
	MiscCost            decimal.Decimal            `json:"misc_cost"`
	TotalMaterialCost   decimal.Decimal            `json:"total_material_cost"`
	TotalCost           decimal.Decimal            `json:"total_cost"`
	Status              string                     `json:"status"`
	CreatedAt           time.Time                  `json:"created_at"`
	Items               []GoodsReceiptItemResponse `json:"items"`
}

// MaterialLotResponse is one stock lot in the raw material ledger
type MaterialLotResponse struct {
	ID           uint            `json:"id"`
	MaterialID   uint            `json:"material_id"`
	GRNID        uint            `json:"grn_id"`
	LotNo        string          `json:"lot_no"`
	BatchNo      string          `json:"batch_no,omitempty"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	QtyReceived  decimal.Decimal `json:"qty_received"`
	QtyAvailable decimal.Decimal `json:"qty_available"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	LandedCost   decimal.Decimal `json:"landed_cost"`
	CreatedAt    time.Time       `json:"created_at"`
}

func newMaterialLotResponse(lot receiving.MaterialLot) MaterialLotResponse {
	return MaterialLotResponse{
		ID:           lot.ID,
		MaterialID:   lot.MaterialID,
		GRNID:        lot.GRNID,
		LotNo:        lot.LotNo,
		BatchNo:      lot.BatchNo,
		ExpiryDate:   lot.ExpiryDate,
		QtyReceived:  lot.QtyReceived,
		QtyAvailable: lot.QtyAvailable,
		UnitCost:     lot.UnitCost,
		LandedCost:   lot.LandedCost,
		CreatedAt:    lot.CreatedAt,
	}
}
