package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/shared"
)

// UnitOfMeasure is the unit a material quantity is expressed in
type UnitOfMeasure struct {
	shared.BaseEntity
	Name   string `gorm:"uniqueIndex"`
	Symbol string
}

// TableName returns the database table name
func (UnitOfMeasure) TableName() string {
	return "uoms"
}

// Material is a raw material received against goods receipt notes.
// Read-mostly reference data; a material must exist before any lot
// can be created for it.
type Material struct {
	shared.BaseEntity
	Code     string `gorm:"uniqueIndex"`
	Name     string
	UOMID    uint            `gorm:"column:uom_id"`
	MinStock decimal.Decimal `gorm:"type:numeric(12,2)"`
	IsActive bool
}

// TableName returns the database table name
func (Material) TableName() string {
	return "materials"
}

// NewMaterial creates a new material with a normalized code
func NewMaterial(code, name string, uomID uint, minStock decimal.Decimal) (*Material, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	name = strings.TrimSpace(name)

	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "material code is required")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "material name is required")
	}
	if uomID == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "unit of measure is required")
	}
	if minStock.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "minimum stock cannot be negative")
	}

	return &Material{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
		UOMID:      uomID,
		MinStock:   minStock,
		IsActive:   true,
	}, nil
}

// Update changes the material's mutable attributes. The code is
// immutable once assigned; lot numbers derive from it.
func (m *Material) Update(name string, uomID uint, minStock decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "material name is required")
	}
	if uomID == 0 {
		return shared.NewDomainError("INVALID_INPUT", "unit of measure is required")
	}
	if minStock.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "minimum stock cannot be negative")
	}
	m.Name = name
	m.UOMID = uomID
	m.MinStock = minStock
	return nil
}

// Deactivate marks the material as inactive
func (m *Material) Deactivate() {
	m.IsActive = false
}
