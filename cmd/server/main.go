package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ratinto/agri-credit-backend/internal/application/usecase"
	"github.com/ratinto/agri-credit-backend/internal/auth"
	"github.com/ratinto/agri-credit-backend/internal/domain/service"
	"github.com/ratinto/agri-credit-backend/internal/infrastructure/adapter"
	"github.com/ratinto/agri-credit-backend/internal/infrastructure/config"
	"github.com/ratinto/agri-credit-backend/internal/infrastructure/messaging"
	pgRepo "github.com/ratinto/agri-credit-backend/internal/infrastructure/persistence/postgres"
	"github.com/ratinto/agri-credit-backend/internal/observability"
	httpPresentation "github.com/ratinto/agri-credit-backend/internal/presentation/http"
)

func main() {
	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})
	logger.Info("starting service", "http_port", cfg.HTTPPort, "metrics_port", cfg.MetricsPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Database -----------------------------------------------------------
	pool, err := pgRepo.NewPool(ctx, cfg.DB.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		if err := pgRepo.RunMigrations(cfg.DB.DSN(), dir); err != nil {
			logger.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations applied")
	}

	// --- Metrics ------------------------------------------------------------
	metrics, err := observability.InitMetrics(cfg.ServiceName)
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}

	// --- Infrastructure adapters -------------------------------------------
	farmerRepo := pgRepo.NewFarmerRepo(pool)
	farmRepo := pgRepo.NewFarmRepo(pool)
	cropRepo := pgRepo.NewCropRepo(pool)
	loanRepo := pgRepo.NewLoanRepo(pool)
	repaymentRepo := pgRepo.NewRepaymentRepo(pool)
	sequences := pgRepo.NewSequenceRepo(pool, logger)

	publisher := messaging.NewKafkaEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	defer publisher.Close()

	satCfg := adapter.DefaultSatelliteConfig()
	if cfg.Satellite.BaseURL != "" {
		satCfg.BaseURL = cfg.Satellite.BaseURL
		satCfg.APIKey = cfg.Satellite.APIKey
		satCfg.Timeout = cfg.Satellite.Timeout
		satCfg.MaxRetries = cfg.Satellite.MaxRetries
	}
	vegetation := adapter.NewSatelliteAdapter(satCfg, nil)
	weather := adapter.NewMockWeatherClient()
	market := adapter.NewMockMarketPriceClient()

	engine := service.NewTrustScoreEngine(vegetation, logger)
	jwtManager := auth.NewJWTManager(cfg.ServiceName, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// --- Use cases ----------------------------------------------------------
	computeUC := usecase.NewComputeTrustScoreUseCase(farmerRepo, farmRepo, cropRepo, engine, publisher)
	getScoreUC := usecase.NewGetTrustScoreUseCase(farmerRepo)
	offersUC := usecase.NewGenerateOffersUseCase(farmerRepo, farmRepo)
	validateUC := usecase.NewValidateCropUseCase(farmRepo, cropRepo, vegetation, weather, market)
	applyUC := usecase.NewApplyLoanUseCase(farmerRepo, loanRepo, sequences, publisher)
	approveUC := usecase.NewApproveLoanUseCase(loanRepo, publisher)
	rejectUC := usecase.NewRejectLoanUseCase(loanRepo, publisher)
	disburseUC := usecase.NewDisburseLoanUseCase(loanRepo, publisher)
	repayUC := usecase.NewRepayLoanUseCase(loanRepo, repaymentRepo, sequences, publisher)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo, repaymentRepo, farmerRepo)
	historyUC := usecase.NewGetLoanHistoryUseCase(farmerRepo, loanRepo)
	scheduleUC := usecase.NewGetRepaymentScheduleUseCase(loanRepo)

	// --- HTTP API -----------------------------------------------------------
	scoreHandler := httpPresentation.NewScoreHandler(computeUC, getScoreUC, offersUC, validateUC, metrics)
	loanHandler := httpPresentation.NewLoanHandler(
		applyUC, approveUC, rejectUC, disburseUC, repayUC,
		getLoanUC, historyUC, scheduleUC, metrics,
	)
	router := httpPresentation.NewRouter(logger, httpPresentation.Dependencies{
		ScoreHandler: scoreHandler,
		LoanHandler:  loanHandler,
		JWTManager:   jwtManager,
		Pinger:       pool,
	})

	apiServer := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: router,
	}
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr())
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// --- Metrics server -----------------------------------------------------
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metrics.Handler)
	metricsServer := &http.Server{
		Addr:    cfg.MetricsAddr(),
		Handler: metricsMux,
	}
	go func() {
		logger.Info("metrics server listening", "addr", cfg.MetricsAddr())
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful shutdown --------------------------------------------------
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", "error", err)
	}
	if err := metrics.Provider.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics provider shutdown error", "error", err)
	}

	logger.Info("service stopped")
}
