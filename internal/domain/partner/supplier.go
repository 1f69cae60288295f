package partner

import (
	"strings"

	"github.com/erp/backoffice/internal/domain/shared"
)

// Supplier is a party materials are received from. Referenced by goods
// receipt notes, never mutated by them.
type Supplier struct {
	shared.BaseEntity
	Name          string
	Code          string `gorm:"uniqueIndex"`
	ContactPerson string
	Phone         string
	Email         string
	GSTNumber     string `gorm:"column:gst_number"`
	Address       string
	IsActive      bool
}

// TableName returns the database table name
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with a normalized code
func NewSupplier(name, code string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	code = strings.ToUpper(strings.TrimSpace(code))

	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "supplier name is required")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "supplier code is required")
	}

	return &Supplier{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Code:       code,
		IsActive:   true,
	}, nil
}

// Update changes the supplier's mutable attributes
func (s *Supplier) Update(name, contactPerson, phone, email, gstNumber, address string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "supplier name is required")
	}
	s.Name = name
	s.ContactPerson = contactPerson
	s.Phone = phone
	s.Email = email
	s.GSTNumber = gstNumber
	s.Address = address
	return nil
}

// Deactivate marks the supplier as inactive
func (s *Supplier) Deactivate() {
	s.IsActive = false
}

// Activate marks the supplier as active
func (s *Supplier) Activate() {
	s.IsActive = true
}
