package partner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/partner"
	"github.com/erp/backoffice/internal/domain/shared"
)

type mockSupplierRepository struct {
	mock.Mock
}

func (m *mockSupplierRepository) FindByID(ctx context.Context, id uint) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *mockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *mockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *mockSupplierRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSupplierRepository) FindByCode(ctx context.Context, code string) (*partner.Supplier, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func TestSupplierService_Create(t *testing.T) {
	t.Run("creates supplier with normalized code", func(t *testing.T) {
		repo := new(mockSupplierRepository)
		svc := NewSupplierService(repo, zap.NewNop())

		repo.On("FindByCode", mock.Anything, "SUP-01").Return(nil, partner.ErrSupplierNotFound)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Supplier")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*partner.Supplier).ID = 3
			}).Return(nil)

		resp, err := svc.Create(context.Background(), CreateSupplierInput{
			Name:      "Acme Metals",
			Code:      " sup-01 ",
			GSTNumber: "29ABCDE1234F1Z5",
		})

		require.NoError(t, err)
		assert.Equal(t, uint(3), resp.ID)
		assert.Equal(t, "SUP-01", resp.Code)
		assert.True(t, resp.IsActive)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		repo := new(mockSupplierRepository)
		svc := NewSupplierService(repo, zap.NewNop())

		existing, err := partner.NewSupplier("Existing", "SUP-01")
		require.NoError(t, err)
		repo.On("FindByCode", mock.Anything, "SUP-01").Return(existing, nil)

		_, err = svc.Create(context.Background(), CreateSupplierInput{Name: "Acme", Code: "SUP-01"})
		assert.ErrorIs(t, err, partner.ErrSupplierCodeExists)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		repo := new(mockSupplierRepository)
		svc := NewSupplierService(repo, zap.NewNop())

		_, err := svc.Create(context.Background(), CreateSupplierInput{Code: "SUP-01"})
		assert.Error(t, err)
	})
}

func TestSupplierService_Deactivate(t *testing.T) {
	repo := new(mockSupplierRepository)
	svc := NewSupplierService(repo, zap.NewNop())

	supplier, err := partner.NewSupplier("Acme", "SUP-01")
	require.NoError(t, err)
	supplier.ID = 3

	repo.On("FindByID", mock.Anything, uint(3)).Return(supplier, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(s *partner.Supplier) bool {
		return !s.IsActive
	})).Return(nil)

	require.NoError(t, svc.Deactivate(context.Background(), 3))
	repo.AssertExpectations(t)
}

func TestSupplierService_GetByID_NotFound(t *testing.T) {
	repo := new(mockSupplierRepository)
	svc := NewSupplierService(repo, zap.NewNop())

	repo.On("FindByID", mock.Anything, uint(99)).Return(nil, partner.ErrSupplierNotFound)

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, partner.ErrSupplierNotFound)
}
