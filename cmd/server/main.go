package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/itstats/internal/config"
	"github.com/mamadbah2/itstats/internal/repository/mongodb"
	"github.com/mamadbah2/itstats/internal/repository/postgres"
	"github.com/mamadbah2/itstats/internal/repository/sheets"
	"github.com/mamadbah2/itstats/internal/scheduler"
	"github.com/mamadbah2/itstats/internal/server/handlers"
	"github.com/mamadbah2/itstats/internal/server/router"
	importersvc "github.com/mamadbah2/itstats/internal/service/importer"
	statssvc "github.com/mamadbah2/itstats/internal/service/stats"
	"github.com/mamadbah2/itstats/pkg/clients/dataset"
	"github.com/mamadbah2/itstats/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	var pgRepo *postgres.PostgresRepository
	if cfg.Postgres.URL != "" {
		pgRepo, err = postgres.NewPostgresRepository(startupCtx, cfg.Postgres.URL, baseLogger.Named("repo.postgres"))
		if err != nil {
			baseLogger.Fatal("failed to init postgres repository", zap.Error(err))
		}
		defer pgRepo.Close()
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(startupCtx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
	}

	var source statssvc.Source
	switch cfg.Source.Kind {
	case config.SourceSheets:
		source = sheets.NewCompanySource(sheetsRepo, cfg.Sheets.CompaniesRange, baseLogger.Named("source.sheets"))
	default:
		source = pgRepo
	}

	var snapshots statssvc.SnapshotStore
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(startupCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		snapshots = mongoRepo
	} else {
		baseLogger.Warn("mongodb uri missing, cohort snapshots disabled")
	}

	var publisher statssvc.Publisher
	if sheetsRepo != nil {
		publisher = sheetsRepo
	}

	statsSvc := statssvc.NewService(source, snapshots, publisher, statssvc.Settings{
		SourceName:  cfg.Source.Kind,
		TopN:        cfg.Dashboard.TopN,
		ExportRange: cfg.Sheets.ExportRange,
	}, baseLogger.Named("svc.stats"))

	if _, err := statsSvc.Refresh(startupCtx); err != nil {
		baseLogger.Warn("initial cohort load failed, will retry on demand", zap.Error(err))
	}

	var runner handlers.ImportRunner
	var scheduledImport scheduler.ImportRunner
	if cfg.Dataset.URL != "" && pgRepo != nil {
		importSvc := importersvc.NewService(dataset.NewClient(cfg.Dataset), pgRepo, baseLogger.Named("svc.importer"))
		runner = importSvc
		scheduledImport = importSvc
		baseLogger.Info("dataset importer enabled", zap.String("url", cfg.Dataset.URL))
	}

	statsHandler := handlers.NewStatsHandler(statsSvc, runner, baseLogger.Named("handlers.stats"))
	engine := router.New(statsHandler, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Refresh, statsSvc, scheduledImport, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("source", cfg.Source.Kind))
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
}
