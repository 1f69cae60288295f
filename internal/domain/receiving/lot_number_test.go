package receiving

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatLotNumber(t *testing.T) {
	tests := []struct {
		name         string
		materialCode string
		year         int
		sequence     int64
		want         string
	}{
		{"first lot", "MAT-001", 2025, 1, "RM-MAT-001-2025-0001"},
		{"padded sequence", "MAT-001", 2025, 7, "RM-MAT-001-2025-0007"},
		{"four digit sequence", "STEEL", 2024, 9999, "RM-STEEL-2024-9999"},
		{"sequence widens past four digits", "STEEL", 2024, 12345, "RM-STEEL-2024-12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLotNumber(tt.materialCode, tt.year, tt.sequence))
		})
	}
}

func TestGenerateLotNumber_UsesCurrentYear(t *testing.T) {
	got := GenerateLotNumber("MAT-001", 3)
	want := fmt.Sprintf("RM-MAT-001-%d-0003", time.Now().Year())
	assert.Equal(t, want, got)
}
