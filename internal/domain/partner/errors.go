package partner

import "github.com/erp/backoffice/internal/domain/shared"

// Partner domain errors
var (
	ErrSupplierNotFound   = shared.NewDomainError("SUPPLIER_NOT_FOUND", "Supplier not found")
	ErrSupplierCodeExists = shared.NewDomainError("SUPPLIER_CODE_EXISTS", "A supplier with this code already exists")
	ErrCustomerNotFound   = shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
	ErrCustomerCodeExists = shared.NewDomainError("CUSTOMER_CODE_EXISTS", "A customer with this code already exists")
)
