package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/shared"
)

// PriceList is a named set of product prices for a customer segment.
// Items are owned by the list and managed through it.
type PriceList struct {
	shared.BaseEntity
	Name          string
	Description   string
	Currency      string
	CustomerType  string
	IsActive      bool
	EffectiveFrom *time.Time
	EffectiveTo   *time.Time
	Items         []PriceListItem `gorm:"foreignKey:PriceListID"`
}

// TableName returns the database table name
func (PriceList) TableName() string {
	return "price_lists"
}

// PriceListItem is a single product price within a price list
type PriceListItem struct {
	shared.BaseEntity
	PriceListID uint            `gorm:"index"`
	ProductID   uint            `gorm:"index"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2)"`
	MinQuantity decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName returns the database table name
func (PriceListItem) TableName() string {
	return "price_list_items"
}

// NewPriceList creates a new price list
func NewPriceList(name, description, currency, customerType string, effectiveFrom, effectiveTo *time.Time) (*PriceList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "price list name is required")
	}
	if currency == "" {
		currency = "INR"
	}
	if effectiveFrom != nil && effectiveTo != nil && effectiveTo.Before(*effectiveFrom) {
		return nil, shared.NewDomainError("INVALID_INPUT", "effective_to cannot precede effective_from")
	}

	return &PriceList{
		BaseEntity:    shared.NewBaseEntity(),
		Name:          name,
		Description:   description,
		Currency:      strings.ToUpper(currency),
		CustomerType:  customerType,
		IsActive:      true,
		EffectiveFrom: effectiveFrom,
		EffectiveTo:   effectiveTo,
	}, nil
}

// AddItem attaches a product price to the list. A product may appear
// at most once per list.
func (pl *PriceList) AddItem(productID uint, price, minQuantity decimal.Decimal) error {
	if productID == 0 {
		return shared.NewDomainError("INVALID_INPUT", "product is required")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "price cannot be negative")
	}
	for _, item := range pl.Items {
		if item.ProductID == productID {
			return shared.NewDomainError("ALREADY_EXISTS", "product is already priced in this list")
		}
	}
	if minQuantity.IsZero() {
		minQuantity = decimal.NewFromInt(1)
	}
	pl.Items = append(pl.Items, PriceListItem{
		BaseEntity:  shared.NewBaseEntity(),
		PriceListID: pl.ID,
		ProductID:   productID,
		Price:       price,
		MinQuantity: minQuantity,
	})
	return nil
}

// RemoveItem detaches a product price from the list
func (pl *PriceList) RemoveItem(productID uint) error {
	for i, item := range pl.Items {
		if item.ProductID == productID {
			pl.Items = append(pl.Items[:i], pl.Items[i+1:]...)
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "product is not priced in this list")
}

// Deactivate marks the price list as inactive
func (pl *PriceList) Deactivate() {
	pl.IsActive = false
}
