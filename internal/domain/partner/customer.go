package partner

import (
	"strings"

	"github.com/erp/backoffice/internal/domain/shared"
)

// CustomerType classifies customers for pricing purposes
type CustomerType string

const (
	CustomerTypeRetail    CustomerType = "RETAIL"
	CustomerTypeWholesale CustomerType = "WHOLESALE"
)

// IsValid reports whether the customer type is a known value
func (t CustomerType) IsValid() bool {
	switch t {
	case CustomerTypeRetail, CustomerTypeWholesale:
		return true
	}
	return false
}

// Customer is a party goods are sold to
type Customer struct {
	shared.BaseEntity
	Name          string
	Code          string `gorm:"uniqueIndex"`
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	CustomerType  CustomerType
	IsActive      bool
}

// TableName returns the database table name
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with a normalized code
func NewCustomer(name, code string, customerType CustomerType) (*Customer, error) {
	name = strings.TrimSpace(name)
	code = strings.ToUpper(strings.TrimSpace(code))

	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "customer name is required")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "customer code is required")
	}
	if customerType == "" {
		customerType = CustomerTypeRetail
	}
	if !customerType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "unknown customer type")
	}

	return &Customer{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Code:         code,
		CustomerType: customerType,
		IsActive:     true,
	}, nil
}

// Update changes the customer's mutable attributes
func (c *Customer) Update(name, contactPerson, phone, email, address string, customerType CustomerType) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "customer name is required")
	}
	if customerType != "" {
		if !customerType.IsValid() {
			return shared.NewDomainError("INVALID_INPUT", "unknown customer type")
		}
		c.CustomerType = customerType
	}
	c.Name = name
	c.ContactPerson = contactPerson
	c.Phone = phone
	c.Email = email
	c.Address = address
	return nil
}

// Deactivate marks the customer as inactive
func (c *Customer) Deactivate() {
	c.IsActive = false
}

// Activate marks the customer as active
func (c *Customer) Activate() {
	c.IsActive = true
}
