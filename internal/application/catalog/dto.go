package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/catalog"
)

// CreateMaterialInput is the payload for registering a material
type CreateMaterialInput struct {
	Code     string
	Name     string
	UOMID    uint
	MinStock decimal.Decimal
}

// UpdateMaterialInput is the payload for changing a material
type UpdateMaterialInput struct {
	Name     string
	UOMID    uint
	MinStock decimal.Decimal
}

// MaterialResponse is the outward shape of a material
type MaterialResponse struct {
	ID        uint            `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	UOMID     uint            `json:"uom_id"`
	MinStock  decimal.Decimal `json:"min_stock"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func newMaterialResponse(m *catalog.Material) MaterialResponse {
	return MaterialResponse{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		UOMID:     m.UOMID,
		MinStock:  m.MinStock,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CreateProductInput is the payload for registering a product
type CreateProductInput struct {
	SKU         string
	Name        string
	Description string
	BasePrice   decimal.Decimal
}

// UpdateProductInput is the payload for changing a product
type UpdateProductInput struct {
	Name        string
	Description string
	BasePrice   decimal.Decimal
}

// ProductResponse is the outward shape of a product
type ProductResponse struct {
	ID          uint            `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	BasePrice   decimal.Decimal `json:"base_price"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func newProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   p.BasePrice,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PriceListItemInput is one product price within a price list payload
type PriceListItemInput struct {
	ProductID   uint
	Price       decimal.Decimal
	MinQuantity decimal.Decimal
}

// CreatePriceListInput is the payload for creating a price list
type CreatePriceListInput struct {
	Name          string
	Description   string
	Currency      string
	CustomerType  string
	EffectiveFrom *time.Time
	EffectiveTo   *time.Time
	Items         []PriceListItemInput
}

// PriceListItemResponse is one product price in a listed price list
type PriceListItemResponse struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"product_id"`
	Price       decimal.Decimal `json:"price"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
}

// PriceListResponse is the outward shape of a price list
type PriceListResponse struct {
	ID            uint                    `json:"id"`
	Name          string                  `json:"name"`
	Description   string                  `json:"description,omitempty"`
	Currency      string                  `json:"currency"`
	CustomerType  string                  `json:"customer_type,omitempty"`
	IsActive      bool                    `json:"is_active"`
	EffectiveFrom *time.Time              `json:"effective_from,omitempty"`
	EffectiveTo   *time.Time              `json:"effective_to,omitempty"`
	Items         []PriceListItemResponse `json:"items"`
	CreatedAt     time.Time               `json:"created_at"`
}

func newPriceListResponse(pl *catalog.PriceList) PriceListResponse {
	items := make([]PriceListItemResponse, 0, len(pl.Items))
	for _, item := range pl.Items {
		items = append(items, PriceListItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			Price:       item.Price,
			MinQuantity: item.MinQuantity,
		})
	}
	return PriceListResponse{
		ID:            pl.ID,
		Name:          pl.Name,
		Description:   pl.Description,
		Currency:      pl.Currency,
		CustomerType:  pl.CustomerType,
		IsActive:      pl.IsActive,
		EffectiveFrom: pl.EffectiveFrom,
		EffectiveTo:   pl.EffectiveTo,
		Items:         items,
		CreatedAt:     pl.CreatedAt,
	}
}

// UOMResponse is the outward shape of a unit of measure
type UOMResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}
