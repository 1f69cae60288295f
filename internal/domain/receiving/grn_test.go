package receiving

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/backoffice/internal/domain/shared"
)

func TestNewGoodsReceiptNote(t *testing.T) {
	t.Run("valid note starts in CREATED", func(t *testing.T) {
		grn, err := NewGoodsReceiptNote(1, "INV-42", nil, d("10"), d("5"), d("0"))
		require.NoError(t, err)
		assert.Equal(t, StatusCreated, grn.Status)
		assert.True(t, grn.Overhead().Equal(d("15")))
		assert.True(t, grn.TotalCost.IsZero())
	})

	t.Run("supplier is required", func(t *testing.T) {
		_, err := NewGoodsReceiptNote(0, "", nil, decimal.Zero, decimal.Zero, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("negative overhead rejected", func(t *testing.T) {
		_, err := NewGoodsReceiptNote(1, "", nil, d("-1"), decimal.Zero, decimal.Zero)
		require.Error(t, err)
	})
}

func TestGoodsReceiptNote_AddItem(t *testing.T) {
	grn, err := NewGoodsReceiptNote(1, "", nil, decimal.Zero, decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, grn.AddItem(1, d("10"), d("5")))
	require.Len(t, grn.Items, 1)
	assert.True(t, grn.Items[0].LineCost.Equal(d("50")), "line cost = %s", grn.Items[0].LineCost)

	assert.Error(t, grn.AddItem(0, d("1"), d("1")), "material required")
	assert.Error(t, grn.AddItem(2, decimal.Zero, d("1")), "quantity must be positive")
	assert.Error(t, grn.AddItem(2, d("1"), decimal.Zero), "unit rate must be positive")
}

func TestGoodsReceiptNote_Finalize(t *testing.T) {
	grn, err := NewGoodsReceiptNote(1, "", nil, d("10"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, grn.AddItem(1, d("10"), d("5")))

	require.NoError(t, grn.Finalize(d("50"), d("60")))
	assert.Equal(t, StatusPosted, grn.Status)
	assert.True(t, grn.TotalMaterialCost.Equal(d("50")))
	assert.True(t, grn.TotalCost.Equal(d("60")))

	// POSTED is terminal.
	err = grn.Finalize(d("50"), d("60"))
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Error(t, grn.AddItem(2, d("1"), d("1")))
}

func TestStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusCreated.CanTransitionTo(StatusPosted))
	assert.False(t, StatusPosted.CanTransitionTo(StatusCreated))
	assert.False(t, StatusPosted.CanTransitionTo(StatusPosted))
}
