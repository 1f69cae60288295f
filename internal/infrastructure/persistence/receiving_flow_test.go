package persistence

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appreceiving "github.com/erp/backoffice/internal/application/receiving"
	"github.com/erp/backoffice/internal/domain/catalog"
	"github.com/erp/backoffice/internal/domain/partner"
	"github.com/erp/backoffice/internal/domain/receiving"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open("file:"+path+"?_busy_timeout=10000&_foreign_keys=on"), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&partner.Supplier{},
		&catalog.UnitOfMeasure{},
		&catalog.Material{},
		&receiving.GoodsReceiptNote{},
		&receiving.GoodsReceiptItem{},
		&receiving.MaterialLot{},
	))
	return db
}

func seedMaterial(t *testing.T, db *gorm.DB, code string) *catalog.Material {
	t.Helper()

	uom := &catalog.UnitOfMeasure{Name: "kilogram-" + code, Symbol: "kg"}
	require.NoError(t, db.Create(uom).Error)

	material, err := catalog.NewMaterial(code, "Material "+code, uom.ID, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, db.Create(material).Error)
	return material
}

func seedSupplier(t *testing.T, db *gorm.DB) *partner.Supplier {
	t.Helper()

	supplier, err := partner.NewSupplier("Acme Metals", "SUP-01")
	require.NoError(t, err)
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func TestPostingFlow_EndToEnd(t *testing.T) {
	db := setupDB(t)
	supplier := seedSupplier(t, db)
	steel := seedMaterial(t, db, "STEEL")
	sand := seedMaterial(t, db, "SAND")

	svc := appreceiving.NewPostingService(NewGormTransactionScope(db), zap.NewNop())
	ctx := context.Background()

	id, err := svc.Post(ctx, appreceiving.PostGoodsReceiptInput{
		SupplierID:    supplier.ID,
		TransportCost: d("10"),
		Items: []appreceiving.PostGoodsReceiptItemInput{
			{MaterialID: steel.ID, Quantity: d("10"), UnitRate: d("5"), BatchNo: "B-1"},
			{MaterialID: sand.ID, Quantity: d("20"), UnitRate: d("2.5")},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	grn, err := NewGormGRNRepository(db).FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, receiving.StatusPosted, grn.Status)
	assert.True(t, grn.TotalMaterialCost.Equal(d("100")), "material total = %s", grn.TotalMaterialCost)
	assert.True(t, grn.TotalCost.Equal(d("110")), "total = %s", grn.TotalCost)
	require.Len(t, grn.Items, 2)
	assert.True(t, grn.Items[0].LineCost.Equal(d("50")))
	assert.True(t, grn.Items[1].LineCost.Equal(d("50")))

	lots := NewGormMaterialLotRepository(db)
	steelLots, err := lots.FindByMaterial(ctx, steel.ID)
	require.NoError(t, err)
	require.Len(t, steelLots, 1)
	assert.Equal(t, fmt.Sprintf("RM-STEEL-%d-0001", time.Now().Year()), steelLots[0].LotNo)
	assert.Equal(t, "B-1", steelLots[0].BatchNo)
	assert.True(t, steelLots[0].LandedCost.Equal(d("5.5")), "landed = %s", steelLots[0].LandedCost)
	assert.True(t, steelLots[0].QtyAvailable.Equal(d("10")))
	assert.Equal(t, grn.ID, steelLots[0].GRNID)
	assert.Equal(t, grn.Items[0].ID, steelLots[0].GRNItemID)

	sandLots, err := lots.FindByMaterial(ctx, sand.ID)
	require.NoError(t, err)
	require.Len(t, sandLots, 1)
	assert.True(t, sandLots[0].LandedCost.Equal(d("2.75")), "landed = %s", sandLots[0].LandedCost)
}

func TestPostingFlow_SequenceAdvancesPerMaterial(t *testing.T) {
	db := setupDB(t)
	supplier := seedSupplier(t, db)
	steel := seedMaterial(t, db, "STEEL")

	svc := appreceiving.NewPostingService(NewGormTransactionScope(db), zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Post(ctx, appreceiving.PostGoodsReceiptInput{
			SupplierID: supplier.ID,
			Items: []appreceiving.PostGoodsReceiptItemInput{
				{MaterialID: steel.ID, Quantity: d("1"), UnitRate: d("2")},
			},
		})
		require.NoError(t, err)
	}

	steelLots, err := NewGormMaterialLotRepository(db).FindByMaterial(ctx, steel.ID)
	require.NoError(t, err)
	require.Len(t, steelLots, 3)
	year := time.Now().Year()
	for i, lot := range steelLots {
		assert.Equal(t, fmt.Sprintf("RM-STEEL-%d-%04d", year, i+1), lot.LotNo)
	}
}

func TestPostingFlow_RollsBackOnUnknownMaterial(t *testing.T) {
	db := setupDB(t)
	supplier := seedSupplier(t, db)
	steel := seedMaterial(t, db, "STEEL")

	svc := appreceiving.NewPostingService(NewGormTransactionScope(db), zap.NewNop())
	ctx := context.Background()

	// The last line references a material that does not exist; the
	// whole posting must vanish, including the already inserted header
	// and first line.
	_, err := svc.Post(ctx, appreceiving.PostGoodsReceiptInput{
		SupplierID: supplier.ID,
		Items: []appreceiving.PostGoodsReceiptItemInput{
			{MaterialID: steel.ID, Quantity: d("10"), UnitRate: d("5")},
			{MaterialID: 9999, Quantity: d("1"), UnitRate: d("1")},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrMaterialNotFound)

	var headers, items, lots int64
	require.NoError(t, db.Model(&receiving.GoodsReceiptNote{}).Count(&headers).Error)
	require.NoError(t, db.Model(&receiving.GoodsReceiptItem{}).Count(&items).Error)
	require.NoError(t, db.Model(&receiving.MaterialLot{}).Count(&lots).Error)
	assert.Zero(t, headers)
	assert.Zero(t, items)
	assert.Zero(t, lots)

	notes, err := NewGormGRNRepository(db).FindAllWithItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestPostingFlow_ConcurrentPostingsKeepLotNumbersUnique(t *testing.T) {
	db := setupDB(t)
	supplier := seedSupplier(t, db)
	steel := seedMaterial(t, db, "STEEL")

	svc := appreceiving.NewPostingService(NewGormTransactionScope(db), zap.NewNop())
	ctx := context.Background()

	const workers = 4
	const postsPerWorker = 3

	var wg sync.WaitGroup
	errs := make(chan error, workers*postsPerWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < postsPerWorker; i++ {
				_, err := svc.Post(ctx, appreceiving.PostGoodsReceiptInput{
					SupplierID: supplier.ID,
					Items: []appreceiving.PostGoodsReceiptItemInput{
						{MaterialID: steel.ID, Quantity: d("1"), UnitRate: d("3")},
					},
				})
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	steelLots, err := NewGormMaterialLotRepository(db).FindByMaterial(ctx, steel.ID)
	require.NoError(t, err)
	require.Len(t, steelLots, workers*postsPerWorker)

	seen := make(map[string]bool, len(steelLots))
	for _, lot := range steelLots {
		assert.False(t, seen[lot.LotNo], "duplicate lot number %s", lot.LotNo)
		seen[lot.LotNo] = true
	}
}

func TestMaterialLotRepository_RejectsDuplicateLotNo(t *testing.T) {
	db := setupDB(t)
	steel := seedMaterial(t, db, "STEEL")
	repo := NewGormMaterialLotRepository(db)
	ctx := context.Background()

	lot, err := receiving.NewMaterialLot(steel.ID, 1, 1, "RM-STEEL-2025-0001", "", nil, d("1"), d("2"), d("2"))
	require.NoError(t, err)
	require.NoError(t, repo.Insert(ctx, lot))

	dup, err := receiving.NewMaterialLot(steel.ID, 2, 2, "RM-STEEL-2025-0001", "", nil, d("1"), d("2"), d("2"))
	require.NoError(t, err)
	err = repo.Insert(ctx, dup)
	assert.ErrorIs(t, err, receiving.ErrDuplicateLot)
}

func TestQueryFlow_ListAllNewestFirstAndIdempotent(t *testing.T) {
	db := setupDB(t)
	supplier := seedSupplier(t, db)
	steel := seedMaterial(t, db, "STEEL")

	posting := appreceiving.NewPostingService(NewGormTransactionScope(db), zap.NewNop())
	query := appreceiving.NewQueryService(
		NewGormGRNRepository(db),
		NewGormMaterialLotRepository(db),
		NewGormMaterialRepository(db),
		zap.NewNop(),
	)
	ctx := context.Background()

	first, err := posting.Post(ctx, appreceiving.PostGoodsReceiptInput{
		SupplierID: supplier.ID,
		Items: []appreceiving.PostGoodsReceiptItemInput{
			{MaterialID: steel.ID, Quantity: d("10"), UnitRate: d("5")},
		},
	})
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	second, err := posting.Post(ctx, appreceiving.PostGoodsReceiptInput{
		SupplierID: supplier.ID,
		Items: []appreceiving.PostGoodsReceiptItemInput{
			{MaterialID: steel.ID, Quantity: d("2"), UnitRate: d("4")},
		},
	})
	require.NoError(t, err)

	listed, err := query.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, second, listed[0].ID, "newest header first")
	assert.Equal(t, first, listed[1].ID)

	require.Len(t, listed[0].Items, 1)
	assert.Equal(t, "STEEL", listed[0].Items[0].MaterialCode)
	assert.Equal(t, "Material STEEL", listed[0].Items[0].MaterialName)
	assert.Equal(t, steel.UOMID, listed[0].Items[0].UOMID)

	again, err := query.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, listed, again)
}
