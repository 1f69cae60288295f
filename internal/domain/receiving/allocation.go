package receiving

import (
	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/shared"
)

// AllocationLine is one received line entering the overhead allocation
type AllocationLine struct {
	Quantity decimal.Decimal
	UnitRate decimal.Decimal
}

// AllocatedLine is the computed cost for one received line
type AllocatedLine struct {
	LineCost       decimal.Decimal
	LandedUnitCost decimal.Decimal
}

// Allocation is the result of distributing overhead across lines
type Allocation struct {
	Lines             []AllocatedLine
	TotalMaterialCost decimal.Decimal
	Overhead          decimal.Decimal
	TotalCost         decimal.Decimal
}

// Allocate distributes overhead across lines proportionally to each
// line's material value and derives the landed unit cost:
//
//	lineCost  = quantity * unitRate
//	share     = lineCost / totalMaterialCost
//	landed    = unitRate + (share * overhead) / quantity
//
// Deterministic and side-effect free. Fails when the material total is
// zero; the division is undefined and the note must not be posted.
func Allocate(lines []AllocationLine, overhead decimal.Decimal) (*Allocation, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "at least one line is required")
	}
	if overhead.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "overhead cannot be negative")
	}

	total := decimal.Zero
	for _, line := range lines {
		if !line.Quantity.IsPositive() {
			return nil, shared.NewDomainError("INVALID_INPUT", "line quantity must be positive")
		}
		if line.UnitRate.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "line unit rate cannot be negative")
		}
		total = total.Add(line.Quantity.Mul(line.UnitRate))
	}

	if total.IsZero() {
		return nil, ErrZeroMaterialTotal
	}

	result := &Allocation{
		Lines:             make([]AllocatedLine, 0, len(lines)),
		TotalMaterialCost: total,
		Overhead:          overhead,
		TotalCost:         total.Add(overhead),
	}

	for _, line := range lines {
		lineCost := line.Quantity.Mul(line.UnitRate)
		share := lineCost.Div(total)
		landed := line.UnitRate.Add(share.Mul(overhead).Div(line.Quantity))
		result.Lines = append(result.Lines, AllocatedLine{
			LineCost:       lineCost,
			LandedUnitCost: landed,
		})
	}

	return result, nil
}
