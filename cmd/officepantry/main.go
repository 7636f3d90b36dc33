package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vbonduro/officepantry/internal/auth"
	"github.com/vbonduro/officepantry/internal/config"
	"github.com/vbonduro/officepantry/internal/db"
	"github.com/vbonduro/officepantry/internal/filestore/local"
	"github.com/vbonduro/officepantry/internal/logging"
	"github.com/vbonduro/officepantry/internal/scheduler"
	"github.com/vbonduro/officepantry/internal/seed"
	"github.com/vbonduro/officepantry/internal/service"
	"github.com/vbonduro/officepantry/internal/store"
	"github.com/vbonduro/officepantry/internal/web"
)

// testModeSecret signs tokens when OFFICEPANTRY_TEST_MODE=1 and no secret is set.
const testModeSecret = "officepantry-test-mode-signing-key"

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	if cfg.SeedSampleData {
		if err := seed.Load(ctx, database, time.Now(), logger); err != nil {
			logger.Error("failed to seed sample data", "error", err)
			return
		}
	}

	userStore := store.NewUserStore(database)
	entryStore := store.NewEntryStore(database)
	productStore := store.NewProductStore(database)
	priceUpdateStore := store.NewPriceUpdateStore(database)

	exports, err := local.NewLocalFileStore(cfg.ExportPath)
	if err != nil {
		logger.Error("failed to initialize export store", "error", err)
		return
	}

	secret := cfg.JWTSecret
	if secret == "" && cfg.TestMode {
		logger.Warn("JWT_SECRET not set, using test mode signing key")
		secret = testModeSecret
	}

	dashboard := service.NewDashboardService(productStore, entryStore, priceUpdateStore, exports,
		service.Thresholds{Low: cfg.LowStockThreshold, Critical: cfg.CriticalStockThreshold}, logger)

	server := web.NewServer(web.Services{
		Auth:        auth.NewService(userStore, auth.NewTokens(secret, cfg.TokenTTL), logger),
		Consumption: service.NewConsumptionService(entryStore, store.NewEntryTx(database), logger),
		Reports:     service.NewReportService(entryStore),
		Pricing:     service.NewPricingService(productStore, priceUpdateStore, store.NewPricingTx(database), logger),
		Dashboard:   dashboard,
	}, logger)

	jobs := scheduler.New(time.Local, 30*time.Second, logger)
	if err := jobs.Add("dashboard-refresh", cfg.RefreshSchedule, func(ctx context.Context) error {
		_, err := dashboard.Refresh(ctx)
		return err
	}); err != nil {
		logger.Error("failed to schedule dashboard refresh", "error", err)
		return
	}
	if err := jobs.Add("backup-prune", cfg.BackupPruneSchedule, func(ctx context.Context) error {
		_, err := dashboard.PruneBackups(ctx, cfg.BackupKeep)
		return err
	}); err != nil {
		logger.Error("failed to schedule backup pruning", "error", err)
		return
	}
	jobs.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		jobs.Stop(stopCtx)
	}()

	if err := server.ListenAndServe(ctx, cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
