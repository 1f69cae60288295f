package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
)

// BaseHandler provides response and error helpers shared by all handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a base handler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// RequestID returns the request ID set by the middleware, if any
func (h BaseHandler) RequestID(c *gin.Context) string {
	id, _ := c.Get("request_id")
	s, _ := id.(string)
	return s
}

// Success writes a 200 response with the standard envelope
func (h BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created writes a 201 response with the standard envelope
func (h BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent writes a 204 response
func (h BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// HandleError maps domain errors to HTTP status codes through the
// shared error-code table; anything unrecognized becomes a 500 with a
// generic message and a server-side log entry.
func (h BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		status := dto.GetHTTPStatus(code)
		if status >= http.StatusInternalServerError {
			h.logger.Error("request failed",
				zap.String("request_id", h.RequestID(c)),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}
		c.JSON(status, dto.NewErrorResponseWithRequestID(code, domainErr.Message, h.RequestID(c)))
		return
	}

	h.logger.Error("request failed",
		zap.String("request_id", h.RequestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "Internal server error", h.RequestID(c)))
}

// BindJSON binds and validates the request body, writing a 400 with
// field detail on failure. Returns false when the request was rejected.
func (h BaseHandler) BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make([]dto.ValidationDetail, 0, len(verrs))
			for _, fe := range verrs {
				details = append(details, dto.ValidationDetail{
					Field:   strings.ToLower(fe.Field()),
					Message: bindingMessage(fe),
				})
			}
			c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(details, h.RequestID(c)))
		} else {
			c.JSON(http.StatusBadRequest,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidJSON, "Invalid request body", h.RequestID(c)))
		}
		return false
	}
	return true
}

// ParseID reads the numeric :id path parameter, writing a 400 when it
// is absent or not a positive integer
func (h BaseHandler) ParseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidInput, "Invalid id parameter", h.RequestID(c)))
		return 0, false
	}
	return uint(id), true
}

// ParseFilter reads common list query parameters into a domain filter
func (h BaseHandler) ParseFilter(c *gin.Context) shared.Filter {
	filter := shared.DefaultFilter()

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err == nil {
		if req.Page > 0 {
			filter.Page = req.Page
		}
		if req.PageSize > 0 {
			filter.PageSize = req.PageSize
		}
		if req.OrderBy != "" {
			filter.OrderBy = req.OrderBy
		}
		if req.OrderDir != "" {
			filter.OrderDir = req.OrderDir
		}
		filter.Search = req.Search
	}

	if active := c.Query("active"); active != "" {
		filter.Filters["is_active"] = active == "true"
	}
	return filter
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must have at least " + fe.Param() + " elements or be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
