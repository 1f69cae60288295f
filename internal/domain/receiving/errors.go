package receiving

import "github.com/erp/backoffice/internal/domain/shared"

// Receiving domain errors
var (
	ErrGRNNotFound       = shared.NewDomainError("GRN_NOT_FOUND", "Goods receipt note not found")
	ErrZeroMaterialTotal = shared.NewDomainError("ALLOCATION_FAILED", "Cannot allocate overhead: total material cost is zero")
	ErrDuplicateLot      = shared.NewDomainError("DUPLICATE_LOT", "A lot with this number already exists for the material")
)
