package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appcatalog "github.com/erp/backoffice/internal/application/catalog"
)

// MaterialHandler serves raw material and unit-of-measure reads
type MaterialHandler struct {
	BaseHandler
	service *appcatalog.MaterialService
}

// NewMaterialHandler creates a material handler
func NewMaterialHandler(service *appcatalog.MaterialService, logger *zap.Logger) *MaterialHandler {
	return &MaterialHandler{
		BaseHandler: NewBaseHandler(logger.Named("material_handler")),
		service:     service,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *MaterialHandler) RegisterRoutes(rg *gin.RouterGroup) {
	materials := rg.Group("/materials")
	{
		materials.POST("", h.Create)
		materials.GET("", h.List)
		materials.GET("/:id", h.Get)
		materials.PUT("/:id", h.Update)
	}
	rg.GET("/uoms", h.ListUOMs)
}

type createMaterialRequest struct {
	Code     string          `json:"code" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	UOMID    uint            `json:"uom_id" binding:"required"`
	MinStock decimal.Decimal `json:"min_stock"`
}

type updateMaterialRequest struct {
	Name     string          `json:"name" binding:"required"`
	UOMID    uint            `json:"uom_id" binding:"required"`
	MinStock decimal.Decimal `json:"min_stock"`
}

// Create registers a material. The code becomes part of every lot
// number cut for it, so it cannot change afterwards.
func (h *MaterialHandler) Create(c *gin.Context) {
	var req createMaterialRequest
	if !h.BindJSON(c, &req) {
		return
	}

	material, err := h.service.Create(c.Request.Context(), appcatalog.CreateMaterialInput{
		Code:     req.Code,
		Name:     req.Name,
		UOMID:    req.UOMID,
		MinStock: req.MinStock,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, material)
}

// List returns materials matching the filter
func (h *MaterialHandler) List(c *gin.Context) {
	materials, err := h.service.List(c.Request.Context(), h.ParseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, materials)
}

// Get returns one material
func (h *MaterialHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	material, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, material)
}

// Update changes a material's details, code excepted
func (h *MaterialHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req updateMaterialRequest
	if !h.BindJSON(c, &req) {
		return
	}

	material, err := h.service.Update(c.Request.Context(), id, appcatalog.UpdateMaterialInput{
		Name:     req.Name,
		UOMID:    req.UOMID,
		MinStock: req.MinStock,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, material)
}

// ListUOMs returns every unit of measure
func (h *MaterialHandler) ListUOMs(c *gin.Context) {
	uoms, err := h.service.ListUOMs(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, uoms)
}
