package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apppartner "github.com/erp/backoffice/internal/application/partner"
)

// CustomerHandler serves customer CRUD
type CustomerHandler struct {
	BaseHandler
	service *apppartner.CustomerService
}

// NewCustomerHandler creates a customer handler
func NewCustomerHandler(service *apppartner.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		BaseHandler: NewBaseHandler(logger.Named("customer_handler")),
		service:     service,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/:id", h.Get)
		customers.PUT("/:id", h.Update)
		customers.DELETE("/:id", h.Deactivate)
	}
}

type createCustomerRequest struct {
	Name          string `json:"name" binding:"required"`
	Code          string `json:"code" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	Address       string `json:"address"`
	CustomerType  string `json:"customer_type" binding:"omitempty,oneof=RETAIL WHOLESALE"`
}

type updateCustomerRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	Address       string `json:"address"`
	CustomerType  string `json:"customer_type" binding:"omitempty,oneof=RETAIL WHOLESALE"`
}

// Create registers a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req createCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	customer, err := h.service.Create(c.Request.Context(), apppartner.CreateCustomerInput{
		Name:          req.Name,
		Code:          req.Code,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		CustomerType:  req.CustomerType,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// List returns customers matching the filter
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.service.List(c.Request.Context(), h.ParseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}

// Get returns one customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	customer, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Update changes a customer's details
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req updateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	customer, err := h.service.Update(c.Request.Context(), id, apppartner.UpdateCustomerInput{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		CustomerType:  req.CustomerType,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Deactivate retires a customer
func (h *CustomerHandler) Deactivate(c *gin.Context) {
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
