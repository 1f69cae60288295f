package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/shared"
)

// Product is a sellable finished good
type Product struct {
	shared.BaseEntity
	SKU         string `gorm:"column:sku;uniqueIndex"`
	Name        string
	Description string
	BasePrice   decimal.Decimal `gorm:"type:numeric(12,2)"`
	IsActive    bool
}

// TableName returns the database table name
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with a normalized SKU
func NewProduct(sku, name, description string, basePrice decimal.Decimal) (*Product, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	name = strings.TrimSpace(name)

	if sku == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "product SKU is required")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "product name is required")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "base price cannot be negative")
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		SKU:         sku,
		Name:        name,
		Description: description,
		BasePrice:   basePrice,
		IsActive:    true,
	}, nil
}

// Update changes the product's mutable attributes
func (p *Product) Update(name, description string, basePrice decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "product name is required")
	}
	if basePrice.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "base price cannot be negative")
	}
	p.Name = name
	p.Description = description
	p.BasePrice = basePrice
	return nil
}

// Deactivate marks the product as inactive
func (p *Product) Deactivate() {
	p.IsActive = false
}
