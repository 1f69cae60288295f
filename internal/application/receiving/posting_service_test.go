package receiving

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/catalog"
	"github.com/erp/backoffice/internal/domain/receiving"
	"github.com/erp/backoffice/internal/domain/shared"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type mockGRNRepository struct {
	mock.Mock
}

func (m *mockGRNRepository) InsertHeader(ctx context.Context, grn *receiving.GoodsReceiptNote) error {
	args := m.Called(ctx, grn)
	return args.Error(0)
}

func (m *mockGRNRepository) InsertItem(ctx context.Context, item *receiving.GoodsReceiptItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockGRNRepository) FinalizeHeader(ctx context.Context, grnID uint, totalMaterialCost, totalCost decimal.Decimal) error {
	args := m.Called(ctx, grnID, totalMaterialCost, totalCost)
	return args.Error(0)
}

func (m *mockGRNRepository) FindByID(ctx context.Context, id uint) (*receiving.GoodsReceiptNote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receiving.GoodsReceiptNote), args.Error(1)
}

func (m *mockGRNRepository) FindAllWithItems(ctx context.Context) ([]receiving.GoodsReceiptNote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]receiving.GoodsReceiptNote), args.Error(1)
}

type mockLotRepository struct {
	mock.Mock
}

func (m *mockLotRepository) Insert(ctx context.Context, lot *receiving.MaterialLot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *mockLotRepository) CountByMaterial(ctx context.Context, materialID uint) (int64, error) {
	args := m.Called(ctx, materialID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLotRepository) FindByMaterial(ctx context.Context, materialID uint) ([]receiving.MaterialLot, error) {
	args := m.Called(ctx, materialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]receiving.MaterialLot), args.Error(1)
}

type mockMaterialRepository struct {
	mock.Mock
}

func (m *mockMaterialRepository) FindByID(ctx context.Context, id uint) (*catalog.Material, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Material), args.Error(1)
}

func (m *mockMaterialRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Material, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Material), args.Error(1)
}

func (m *mockMaterialRepository) Save(ctx context.Context, material *catalog.Material) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *mockMaterialRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockMaterialRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMaterialRepository) FindByCode(ctx context.Context, code string) (*catalog.Material, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Material), args.Error(1)
}

func (m *mockMaterialRepository) FindByIDForUpdate(ctx context.Context, id uint) (*catalog.Material, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Material), args.Error(1)
}

type mockRepos struct {
	grns      *mockGRNRepository
	lots      *mockLotRepository
	materials *mockMaterialRepository
}

func (r *mockRepos) GoodsReceipts() receiving.GRNRepository       { return r.grns }
func (r *mockRepos) MaterialLots() receiving.MaterialLotRepository { return r.lots }
func (r *mockRepos) Materials() catalog.MaterialRepository         { return r.materials }

// mockScope runs the unit of work against mock repositories and
// propagates its error as a rolled-back transaction would.
type mockScope struct {
	repos    *mockRepos
	executed bool
}

func (s *mockScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	s.executed = true
	return fn(s.repos)
}

func newTestScope() *mockScope {
	return &mockScope{repos: &mockRepos{
		grns:      new(mockGRNRepository),
		lots:      new(mockLotRepository),
		materials: new(mockMaterialRepository),
	}}
}

func TestPostingService_Post_SingleLine(t *testing.T) {
	scope := newTestScope()
	svc := NewPostingService(scope, zap.NewNop())

	material := &catalog.Material{Code: "MAT-001", Name: "Steel Rod", UOMID: 1}
	material.ID = 1

	scope.repos.grns.On("InsertHeader", mock.Anything, mock.AnythingOfType("*receiving.GoodsReceiptNote")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*receiving.GoodsReceiptNote).ID = 7
		}).Return(nil)
	scope.repos.grns.On("InsertItem", mock.Anything, mock.AnythingOfType("*receiving.GoodsReceiptItem")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*receiving.GoodsReceiptItem).ID = 70
		}).Return(nil)
	scope.repos.materials.On("FindByIDForUpdate", mock.Anything, uint(1)).Return(material, nil)
	scope.repos.lots.On("CountByMaterial", mock.Anything, uint(1)).Return(int64(0), nil)

	var insertedLot *receiving.MaterialLot
	scope.repos.lots.On("Insert", mock.Anything, mock.AnythingOfType("*receiving.MaterialLot")).
		Run(func(args mock.Arguments) {
			insertedLot = args.Get(1).(*receiving.MaterialLot)
		}).Return(nil)
	scope.repos.grns.On("FinalizeHeader", mock.Anything, uint(7), mock.Anything, mock.Anything).Return(nil)

	id, err := svc.Post(context.Background(), PostGoodsReceiptInput{
		SupplierID: 1,
		Items: []PostGoodsReceiptItemInput{
			{MaterialID: 1, Quantity: d("10"), UnitRate: d("5")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	require.NotNil(t, insertedLot)
	wantLotNo := fmt.Sprintf("RM-MAT-001-%d-0001", time.Now().Year())
	assert.Equal(t, wantLotNo, insertedLot.LotNo)
	assert.True(t, insertedLot.LandedCost.Equal(d("5")), "landed = %s", insertedLot.LandedCost)
	assert.True(t, insertedLot.QtyAvailable.Equal(d("10")))
	assert.Equal(t, uint(7), insertedLot.GRNID)
	assert.Equal(t, uint(70), insertedLot.GRNItemID)

	scope.repos.grns.AssertCalled(t, "FinalizeHeader", mock.Anything, uint(7),
		mock.MatchedBy(func(v decimal.Decimal) bool { return v.Equal(d("50")) }),
		mock.MatchedBy(func(v decimal.Decimal) bool { return v.Equal(d("50")) }))
	scope.repos.grns.AssertExpectations(t)
	scope.repos.lots.AssertExpectations(t)
}

func TestPostingService_Post_AllocatesOverheadProportionally(t *testing.T) {
	scope := newTestScope()
	svc := NewPostingService(scope, zap.NewNop())

	steel := &catalog.Material{Code: "STEEL", UOMID: 1}
	steel.ID = 1
	sand := &catalog.Material{Code: "SAND", UOMID: 2}
	sand.ID = 2

	scope.repos.grns.On("InsertHeader", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*receiving.GoodsReceiptNote).ID = 1
		}).Return(nil)
	scope.repos.grns.On("InsertItem", mock.Anything, mock.Anything).Return(nil)
	scope.repos.materials.On("FindByIDForUpdate", mock.Anything, uint(1)).Return(steel, nil)
	scope.repos.materials.On("FindByIDForUpdate", mock.Anything, uint(2)).Return(sand, nil)
	scope.repos.lots.On("CountByMaterial", mock.Anything, uint(1)).Return(int64(4), nil)
	scope.repos.lots.On("CountByMaterial", mock.Anything, uint(2)).Return(int64(0), nil)

	var lots []*receiving.MaterialLot
	scope.repos.lots.On("Insert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			lots = append(lots, args.Get(1).(*receiving.MaterialLot))
		}).Return(nil)
	scope.repos.grns.On("FinalizeHeader", mock.Anything, uint(1),
		mock.MatchedBy(func(v decimal.Decimal) bool { return v.Equal(d("100")) }),
		mock.MatchedBy(func(v decimal.Decimal) bool { return v.Equal(d("110")) })).Return(nil)

	_, err := svc.Post(context.Background(), PostGoodsReceiptInput{
		SupplierID:    1,
		TransportCost: d("10"),
		Items: []PostGoodsReceiptItemInput{
			{MaterialID: 1, Quantity: d("10"), UnitRate: d("5")},
			{MaterialID: 2, Quantity: d("20"), UnitRate: d("2.5")},
		},
	})

	require.NoError(t, err)
	require.Len(t, lots, 2)
	assert.True(t, lots[0].LandedCost.Equal(d("5.5")), "landed[0] = %s", lots[0].LandedCost)
	assert.True(t, lots[1].LandedCost.Equal(d("2.75")), "landed[1] = %s", lots[1].LandedCost)

	// Sequence continues from the existing lot count.
	wantLotNo := fmt.Sprintf("RM-STEEL-%d-0005", time.Now().Year())
	assert.Equal(t, wantLotNo, lots[0].LotNo)

	scope.repos.grns.AssertExpectations(t)
}

func TestPostingService_Post_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     PostGoodsReceiptInput
		wantField string
	}{
		{
			name:      "empty items",
			input:     PostGoodsReceiptInput{SupplierID: 1},
			wantField: "items",
		},
		{
			name: "missing supplier",
			input: PostGoodsReceiptInput{
				Items: []PostGoodsReceiptItemInput{{MaterialID: 1, Quantity: d("1"), UnitRate: d("1")}},
			},
			wantField: "supplier_id",
		},
		{
			name: "non-positive quantity",
			input: PostGoodsReceiptInput{
				SupplierID: 1,
				Items:      []PostGoodsReceiptItemInput{{MaterialID: 1, Quantity: d("0"), UnitRate: d("1")}},
			},
			wantField: "items[0].quantity",
		},
		{
			name: "negative transport cost",
			input: PostGoodsReceiptInput{
				SupplierID:    1,
				TransportCost: d("-5"),
				Items:         []PostGoodsReceiptItemInput{{MaterialID: 1, Quantity: d("1"), UnitRate: d("1")}},
			},
			wantField: "transport_cost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := newTestScope()
			svc := NewPostingService(scope, zap.NewNop())

			_, err := svc.Post(context.Background(), tt.input)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			fields := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Contains(t, fields, tt.wantField)
			assert.False(t, scope.executed, "transaction must not open on validation failure")
		})
	}
}

func TestPostingService_Post_ZeroMaterialTotal(t *testing.T) {
	scope := newTestScope()
	svc := NewPostingService(scope, zap.NewNop())

	_, err := svc.Post(context.Background(), PostGoodsReceiptInput{
		SupplierID:    1,
		TransportCost: d("10"),
		Items: []PostGoodsReceiptItemInput{
			{MaterialID: 1, Quantity: d("10"), UnitRate: d("0")},
		},
	})

	// Zero-rate lines are caught as a validation failure before the
	// allocator runs; either way the transaction never opens.
	require.Error(t, err)
	assert.False(t, scope.executed)
}

func TestPostingService_Post_RollsBackOnLotFailure(t *testing.T) {
	scope := newTestScope()
	svc := NewPostingService(scope, zap.NewNop())

	scope.repos.grns.On("InsertHeader", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*receiving.GoodsReceiptNote).ID = 1
		}).Return(nil)
	scope.repos.grns.On("InsertItem", mock.Anything, mock.Anything).Return(nil)
	scope.repos.materials.On("FindByIDForUpdate", mock.Anything, uint(9)).
		Return(nil, catalog.ErrMaterialNotFound)

	_, err := svc.Post(context.Background(), PostGoodsReceiptInput{
		SupplierID: 1,
		Items: []PostGoodsReceiptItemInput{
			{MaterialID: 9, Quantity: d("1"), UnitRate: d("1")},
		},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrMaterialNotFound))
	scope.repos.grns.AssertNotCalled(t, "FinalizeHeader", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
