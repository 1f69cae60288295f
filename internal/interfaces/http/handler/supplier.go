package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apppartner "github.com/erp/backoffice/internal/application/partner"
)

// SupplierHandler serves supplier CRUD
type SupplierHandler struct {
	BaseHandler
	service *apppartner.SupplierService
}

// NewSupplierHandler creates a supplier handler
func NewSupplierHandler(service *apppartner.SupplierService, logger *zap.Logger) *SupplierHandler {
	return &SupplierHandler{
		BaseHandler: NewBaseHandler(logger.Named("supplier_handler")),
		service:     service,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *SupplierHandler) RegisterRoutes(rg *gin.RouterGroup) {
	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.Create)
		suppliers.GET("", h.List)
		suppliers.GET("/:id", h.Get)
		suppliers.PUT("/:id", h.Update)
		suppliers.DELETE("/:id", h.Deactivate)
	}
}

type createSupplierRequest struct {
	Name          string `json:"name" binding:"required"`
	Code          string `json:"code" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	GSTNumber     string `json:"gst_number"`
	Address       string `json:"address"`
}

type updateSupplierRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	GSTNumber     string `json:"gst_number"`
	Address       string `json:"address"`
}

// Create registers a supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	var req createSupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}

	supplier, err := h.service.Create(c.Request.Context(), apppartner.CreateSupplierInput{
		Name:          req.Name,
		Code:          req.Code,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		GSTNumber:     req.GSTNumber,
		Address:       req.Address,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supplier)
}

// List returns suppliers matching the filter
func (h *SupplierHandler) List(c *gin.Context) {
	suppliers, err := h.service.List(c.Request.Context(), h.ParseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suppliers)
}

// Get returns one supplier
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	supplier, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Update changes a supplier's details
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req updateSupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}

	supplier, err := h.service.Update(c.Request.Context(), id, apppartner.UpdateSupplierInput{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		GSTNumber:     req.GSTNumber,
		Address:       req.Address,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Deactivate retires a supplier without losing its receipt history
func (h *SupplierHandler) Deactivate(c *gin.Context) {
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
