package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
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
	"github.com/erp/backoffice/internal/infrastructure/persistence"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
}

func setupGRNRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	posting := appreceiving.NewPostingService(persistence.NewGormTransactionScope(db), zap.NewNop())
	query := appreceiving.NewQueryService(
		persistence.NewGormGRNRepository(db),
		persistence.NewGormMaterialLotRepository(db),
		persistence.NewGormMaterialRepository(db),
		zap.NewNop(),
	)

	engine := gin.New()
	NewGRNHandler(posting, query, zap.NewNop()).RegisterRoutes(engine.Group("/api/v1"))
	return engine, db
}

func seedReceivingRefs(t *testing.T, db *gorm.DB) (*partner.Supplier, *catalog.Material) {
	t.Helper()

	uom := &catalog.UnitOfMeasure{Name: "kilogram", Symbol: "kg"}
	require.NoError(t, db.Create(uom).Error)

	supplier, err := partner.NewSupplier("Acme Metals", "SUP-01")
	require.NoError(t, err)
	require.NoError(t, db.Create(supplier).Error)

	material, err := catalog.NewMaterial("STEEL", "Steel Rod", uom.ID, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, db.Create(material).Error)
	return supplier, material
}

func TestGRNRoutes_PostThenList(t *testing.T) {
	engine, db := setupGRNRouter(t)
	supplier, material := seedReceivingRefs(t, db)

	payload := map[string]interface{}{
		"supplier_id":    supplier.ID,
		"transport_cost": "10",
		"items": []map[string]interface{}{
			{"material_id": material.ID, "quantity": "10", "unit_rate": "5"},
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/receiving/grn", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Success)

	var data struct {
		GRNID uint `json:"grn_id"`
	}
	require.NoError(t, json.Unmarshal(created.Data, &data))
	assert.NotZero(t, data.GRNID)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/receiving/grn", nil)
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var listed envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))

	var notes []appreceiving.GoodsReceiptResponse
	require.NoError(t, json.Unmarshal(listed.Data, &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, data.GRNID, notes[0].ID)
	assert.Equal(t, "POSTED", notes[0].Status)
	require.Len(t, notes[0].Items, 1)
	assert.Equal(t, "STEEL", notes[0].Items[0].MaterialCode)
	assert.Equal(t, "Steel Rod", notes[0].Items[0].MaterialName)
	assert.True(t, notes[0].TotalCost.Equal(decimal.RequireFromString("60")))
}

func TestGRNRoutes_ValidationDetail(t *testing.T) {
	engine, _ := setupGRNRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/receiving/grn",
		bytes.NewReader([]byte(`{"transport_cost":"5","items":[]}`)))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ERR_VALIDATION", resp.Error.Code)

	fields := make([]string, 0, len(resp.Error.Details))
	for _, detail := range resp.Error.Details {
		fields = append(fields, detail.Field)
	}
	assert.Contains(t, fields, "supplier_id")
	assert.Contains(t, fields, "items")
}

func TestGRNRoutes_InvalidJSON(t *testing.T) {
	engine, _ := setupGRNRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/receiving/grn",
		bytes.NewReader([]byte(`{not json`)))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ERR_INVALID_JSON", resp.Error.Code)
}

func TestGRNRoutes_LotsLedger(t *testing.T) {
	engine, db := setupGRNRouter(t)
	supplier, material := seedReceivingRefs(t, db)

	payload := map[string]interface{}{
		"supplier_id": supplier.ID,
		"items": []map[string]interface{}{
			{"material_id": material.ID, "quantity": "4", "unit_rate": "2", "batch_no": "B-7"},
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/receiving/grn", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/receiving/materials/%d/lots", material.ID), nil)
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	var lots []appreceiving.MaterialLotResponse
	require.NoError(t, json.Unmarshal(resp.Data, &lots))
	require.Len(t, lots, 1)
	assert.Equal(t, "B-7", lots[0].BatchNo)
	assert.True(t, lots[0].QtyAvailable.Equal(decimal.RequireFromString("4")))

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/receiving/materials/9999/lots", nil)
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
