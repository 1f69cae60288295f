package catalog

import "github.com/erp/backoffice/internal/domain/shared"

// Catalog domain errors
var (
	ErrMaterialNotFound   = shared.NewDomainError("MATERIAL_NOT_FOUND", "Material not found")
	ErrMaterialCodeExists = shared.NewDomainError("MATERIAL_CODE_EXISTS", "A material with this code already exists")
	ErrProductNotFound    = shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	ErrProductSKUExists   = shared.NewDomainError("PRODUCT_SKU_EXISTS", "A product with this SKU already exists")
	ErrPriceListNotFound  = shared.NewDomainError("PRICE_LIST_NOT_FOUND", "Price list not found")
	ErrUOMNotFound        = shared.NewDomainError("UOM_NOT_FOUND", "Unit of measure not found")
)
