package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcatalog "github.com/erp/backoffice/internal/application/catalog"
	apppartner "github.com/erp/backoffice/internal/application/partner"
	appreceiving "github.com/erp/backoffice/internal/application/receiving"
	"github.com/erp/backoffice/internal/infrastructure/config"
	"github.com/erp/backoffice/internal/infrastructure/logger"
	"github.com/erp/backoffice/internal/infrastructure/persistence"
	"github.com/erp/backoffice/internal/interfaces/http/handler"
	"github.com/erp/backoffice/internal/interfaces/http/middleware"
	"github.com/erp/backoffice/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := persistence.CloseDatabase(db); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()

	// Repositories
	supplierRepo := persistence.NewGormSupplierRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	materialRepo := persistence.NewGormMaterialRepository(db)
	uomRepo := persistence.NewGormUOMRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	priceListRepo := persistence.NewGormPriceListRepository(db)
	grnRepo := persistence.NewGormGRNRepository(db)
	lotRepo := persistence.NewGormMaterialLotRepository(db)
	txScope := persistence.NewGormTransactionScope(db)

	// Application services
	supplierService := apppartner.NewSupplierService(supplierRepo, log)
	customerService := apppartner.NewCustomerService(customerRepo, log)
	materialService := appcatalog.NewMaterialService(materialRepo, uomRepo, log)
	productService := appcatalog.NewProductService(productRepo, log)
	priceListService := appcatalog.NewPriceListService(priceListRepo, productRepo, log)
	postingService := appreceiving.NewPostingService(txScope, log)
	queryService := appreceiving.NewQueryService(grnRepo, lotRepo, materialRepo, log)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("failed to set trusted proxies", zap.Error(err))
		}
	}
	engine.MaxMultipartMemory = cfg.HTTP.MaxBodySize

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(&cfg.HTTP),
		middleware.MaxBodySize(cfg.HTTP.MaxBodySize),
	)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewSystemHandler(db, log)).
		Register(handler.NewGRNHandler(postingService, queryService, log)).
		Register(handler.NewSupplierHandler(supplierService, log)).
		Register(handler.NewCustomerHandler(customerService, log)).
		Register(handler.NewMaterialHandler(materialService, log)).
		Register(handler.NewProductHandler(productService, log)).
		Register(handler.NewPriceListHandler(priceListService, log)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()
	log.Info("server listening", zap.String("addr", srv.Addr))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
