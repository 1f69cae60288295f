package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appreceiving "github.com/erp/backoffice/internal/application/receiving"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
)

// GRNHandler serves goods receipt posting and the receiving read paths
type GRNHandler struct {
	BaseHandler
	posting *appreceiving.PostingService
	query   *appreceiving.QueryService
}

// NewGRNHandler creates a goods receipt handler
func NewGRNHandler(posting *appreceiving.PostingService, query *appreceiving.QueryService, logger *zap.Logger) *GRNHandler {
	return &GRNHandler{
		BaseHandler: NewBaseHandler(logger.Named("grn_handler")),
		posting:     posting,
		query:       query,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *GRNHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receiving := rg.Group("/receiving")
	{
		receiving.POST("/grn", h.Create)
		receiving.GET("/grn", h.List)
		receiving.GET("/materials/:id/lots", h.ListLots)
	}
}

type goodsReceiptItemRequest struct {
	MaterialID uint            `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitRate   decimal.Decimal `json:"unit_rate"`
	BatchNo    string          `json:"batch_no"`
	ExpiryDate *time.Time      `json:"expiry_date"`
}

// Field validation happens in the application layer so rejected
// payloads get itemized per-field detail rather than binding errors.
type createGoodsReceiptRequest struct {
	SupplierID          uint                      `json:"supplier_id"`
	SupplierInvoiceNo   string                    `json:"supplier_invoice_no"`
	SupplierInvoiceDate *time.Time                `json:"supplier_invoice_date"`
	TransportCost       decimal.Decimal           `json:"transport_cost"`
	LoadingCost         decimal.Decimal           `json:"loading_cost"`
	MiscCost            decimal.Decimal           `json:"misc_cost"`
	Items               []goodsReceiptItemRequest `json:"items"`
}

// Create posts a goods receipt note, allocating overhead costs across
// its lines and cutting one stock lot per line
func (h *GRNHandler) Create(c *gin.Context) {
	var req createGoodsReceiptRequest
	if !h.BindJSON(c, &req) {
		return
	}

	items := make([]appreceiving.PostGoodsReceiptItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, appreceiving.PostGoodsReceiptItemInput{
			MaterialID: item.MaterialID,
			Quantity:   item.Quantity,
			UnitRate:   item.UnitRate,
			BatchNo:    item.BatchNo,
			ExpiryDate: item.ExpiryDate,
		})
	}

	id, err := h.posting.Post(c.Request.Context(), appreceiving.PostGoodsReceiptInput{
		SupplierID:          req.SupplierID,
		SupplierInvoiceNo:   req.SupplierInvoiceNo,
		SupplierInvoiceDate: req.SupplierInvoiceDate,
		TransportCost:       req.TransportCost,
		LoadingCost:         req.LoadingCost,
		MiscCost:            req.MiscCost,
		Items:               items,
	})
	if err != nil {
		h.handleReceivingError(c, err)
		return
	}

	h.Created(c, gin.H{"grn_id": id})
}

// List returns every goods receipt note with its lines, newest first
func (h *GRNHandler) List(c *gin.Context) {
	notes, err := h.query.ListAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, notes)
}

// ListLots returns the stock lots received for one material
func (h *GRNHandler) ListLots(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	lots, err := h.query.ListLotsByMaterial(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lots)
}

func (h *GRNHandler) handleReceivingError(c *gin.Context, err error) {
	var verr *appreceiving.ValidationError
	if errors.As(err, &verr) {
		details := make([]dto.ValidationDetail, 0, len(verr.Fields))
		for _, fe := range verr.Fields {
			details = append(details, dto.ValidationDetail{Field: fe.Field, Message: fe.Message})
		}
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(details, h.RequestID(c)))
		return
	}
	h.HandleError(c, err)
}
