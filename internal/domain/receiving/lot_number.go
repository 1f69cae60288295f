package receiving

import (
	"fmt"
	"time"
)

// lotNumberPrefix marks lots originating from raw material receipts
const lotNumberPrefix = "RM"

// FormatLotNumber renders a lot identifier for the given material code,
// year and per-material sequence, e.g. RM-MAT-001-2025-0007. Sequences
// beyond 9999 widen past four digits rather than truncate.
func FormatLotNumber(materialCode string, year int, sequence int64) string {
	return fmt.Sprintf("%s-%s-%d-%04d", lotNumberPrefix, materialCode, year, sequence)
}

// GenerateLotNumber renders a lot identifier using the current year.
// The sequence must be the count of existing lots for the material plus
// one, read race-free by the caller.
func GenerateLotNumber(materialCode string, sequence int64) string {
	return FormatLotNumber(materialCode, time.Now().Year(), sequence)
}
