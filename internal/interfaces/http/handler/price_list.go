package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appcatalog "github.com/erp/backoffice/internal/application/catalog"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
)

// PriceListHandler serves price list CRUD
type PriceListHandler struct {
	BaseHandler
	service *appcatalog.PriceListService
}

// NewPriceListHandler creates a price list handler
func NewPriceListHandler(service *appcatalog.PriceListService, logger *zap.Logger) *PriceListHandler {
	return &PriceListHandler{
		BaseHandler: NewBaseHandler(logger.Named("price_list_handler")),
		service:     service,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *PriceListHandler) RegisterRoutes(rg *gin.RouterGroup) {
	priceLists := rg.Group("/price-lists")
	{
		priceLists.POST("", h.Create)
		priceLists.GET("", h.List)
		priceLists.GET("/:id", h.Get)
		priceLists.POST("/:id/items", h.AddItem)
		priceLists.DELETE("/:id/items/:product_id", h.RemoveItem)
		priceLists.DELETE("/:id", h.Deactivate)
	}
}

type priceListItemRequest struct {
	ProductID   uint            `json:"product_id" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
}

type createPriceListRequest struct {
	Name          string                 `json:"name" binding:"required"`
	Description   string                 `json:"description"`
	Currency      string                 `json:"currency"`
	CustomerType  string                 `json:"customer_type" binding:"omitempty,oneof=RETAIL WHOLESALE"`
	EffectiveFrom *time.Time             `json:"effective_from"`
	EffectiveTo   *time.Time             `json:"effective_to"`
	Items         []priceListItemRequest `json:"items" binding:"omitempty,dive"`
}

// Create registers a price list with its initial product prices
func (h *PriceListHandler) Create(c *gin.Context) {
	var req createPriceListRequest
	if !h.BindJSON(c, &req) {
		return
	}

	items := make([]appcatalog.PriceListItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, appcatalog.PriceListItemInput{
			ProductID:   item.ProductID,
			Price:       item.Price,
			MinQuantity: item.MinQuantity,
		})
	}

	priceList, err := h.service.Create(c.Request.Context(), appcatalog.CreatePriceListInput{
		Name:          req.Name,
		Description:   req.Description,
		Currency:      req.Currency,
		CustomerType:  req.CustomerType,
		EffectiveFrom: req.EffectiveFrom,
		EffectiveTo:   req.EffectiveTo,
		Items:         items,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, priceList)
}

// List returns price lists matching the filter
func (h *PriceListHandler) List(c *gin.Context) {
	priceLists, err := h.service.List(c.Request.Context(), h.ParseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, priceLists)
}

// Get returns one price list with its items
func (h *PriceListHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	priceList, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, priceList)
}

// AddItem prices one more product on an existing list
func (h *PriceListHandler) AddItem(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req priceListItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	priceList, err := h.service.AddItem(c.Request.Context(), id, appcatalog.PriceListItemInput{
		ProductID:   req.ProductID,
		Price:       req.Price,
		MinQuantity: req.MinQuantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, priceList)
}

// RemoveItem drops one product's price from a list
func (h *PriceListHandler) RemoveItem(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil || productID == 0 {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidInput, "Invalid product_id parameter", h.RequestID(c)))
		return
	}

	priceList, err2 := h.service.RemoveItem(c.Request.Context(), id, uint(productID))
	if err2 != nil {
		h.HandleError(c, err2)
		return
	}
	h.Success(c, priceList)
}

// Deactivate retires a price list
func (h *PriceListHandler) Deactivate(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
