package partner

import (
	"time"

	"github.com/erp/backoffice/internal/domain/partner"
)

// CreateSupplierInput is the payload for registering a supplier
type CreateSupplierInput struct {
	Name          string
	Code          string
	ContactPerson string
	Phone         string
	Email         string
	GSTNumber     string
	Address       string
}

// UpdateSupplierInput is the payload for changing a supplier
type UpdateSupplierInput struct {
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	GSTNumber     string
	Address       string
}

// SupplierResponse is the outward shape of a supplier
type SupplierResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	GSTNumber     string    `json:"gst_number,omitempty"`
	Address       string    `json:"address,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		Code:          s.Code,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		GSTNumber:     s.GSTNumber,
		Address:       s.Address,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// CreateCustomerInput is the payload for registering a customer
type CreateCustomerInput struct {
	Name          string
	Code          string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	CustomerType  string
}

// UpdateCustomerInput is the payload for changing a customer
type UpdateCustomerInput struct {
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	CustomerType  string
}

// CustomerResponse is the outward shape of a customer
type CustomerResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	CustomerType  string    `json:"customer_type"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Code:          c.Code,
		ContactPerson: c.ContactPerson,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		CustomerType:  string(c.CustomerType),
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
