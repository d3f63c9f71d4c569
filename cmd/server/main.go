package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/bmscold/slipdesk/internal/config"
	"github.com/bmscold/slipdesk/internal/repository/mongodb"
	"github.com/bmscold/slipdesk/internal/scheduler"
	"github.com/bmscold/slipdesk/internal/server/handlers"
	"github.com/bmscold/slipdesk/internal/server/router"
	"github.com/bmscold/slipdesk/internal/service/archive"
	"github.com/bmscold/slipdesk/internal/service/pdf"
	"github.com/bmscold/slipdesk/internal/service/printing"
	slipsvc "github.com/bmscold/slipdesk/internal/service/slips"
	ledgerclient "github.com/bmscold/slipdesk/pkg/clients/ledger"
	"github.com/bmscold/slipdesk/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ledgerCli := ledgerclient.NewClient(cfg.Ledger)

	var gateway archive.Gateway
	switch cfg.Archive.Backend {
	case config.ArchiveBackendDrive:
		driveGateway, err := archive.NewDriveGateway(context.Background(), cfg.Archive, baseLogger.Named("archive.drive"))
		if err != nil {
			baseLogger.Fatal("failed to init drive archive gateway", zap.Error(err))
		}
		gateway = driveGateway
	default:
		gateway = archive.NewLedgerGateway(ledgerCli)
	}

	// The audit store is optional; without it the pipeline still runs.
	var audit mongodb.Repository
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		audit = mongoRepo
	} else {
		baseLogger.Warn("MONGODB_URI not set, artifact audit trail disabled")
	}

	store := slipsvc.NewStore()
	slipsService := slipsvc.NewService(ledgerCli, store, pdf.NewMaroto(), gateway, audit, baseLogger.Named("svc.slips"))

	viewerRegistry := handlers.NewViewerRegistry(cfg.Server.PublicBaseURL)
	orchestrator := printing.NewOrchestrator(store, slipsService, viewerRegistry, baseLogger.Named("svc.printing"))

	slipHandler := handlers.NewSlipHandler(slipsService, orchestrator, baseLogger.Named("handlers.slips"))
	viewerHandler := handlers.NewViewerHandler(viewerRegistry)
	engine := router.New(slipHandler, viewerHandler, baseLogger.Named("router"))

	// Warm the list before serving; a cold ledger is not fatal, the
	// scheduler and manual refresh can recover later.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := slipsService.Refresh(warmCtx); err != nil {
		baseLogger.Warn("initial slip list fetch failed", zap.Error(err))
	}
	warmCancel()

	sched := scheduler.NewScheduler(cfg.Refresh, slipsService, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}

	// Let in-flight lazy generations finish before exit.
	orchestrator.Wait()
}
