package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devkartikrathi/ncfo/internal/admission"
	"github.com/devkartikrathi/ncfo/internal/ai"
	"github.com/devkartikrathi/ncfo/internal/api"
	"github.com/devkartikrathi/ncfo/internal/api/handlers"
	"github.com/devkartikrathi/ncfo/internal/auth"
	"github.com/devkartikrathi/ncfo/internal/cache"
	"github.com/devkartikrathi/ncfo/internal/config"
	"github.com/devkartikrathi/ncfo/internal/db"
	"github.com/devkartikrathi/ncfo/internal/logger"
	"github.com/devkartikrathi/ncfo/internal/metrics"
	"github.com/devkartikrathi/ncfo/internal/middleware"
	"github.com/devkartikrathi/ncfo/internal/repository/postgres"
	"github.com/devkartikrathi/ncfo/internal/services"
	"github.com/devkartikrathi/ncfo/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	oracle, err := ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Error("ai client", "err", err)
		os.Exit(1)
	}

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4, 256)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTIssuer, cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	adm := admission.NewLimiter(cfg.RateRPS, cfg.RateBurst)
	inv := &cache.LogInvalidator{Log: log}

	userSvc := services.NewUserService(repos.Users, tm)
	acctSvc := services.NewAccountService(repos.Accounts)
	txnSvc := services.NewTransactionService(repos.Transactions, repos.Accounts, repos.AuditLogs, adm, inv, log)
	scanSvc := services.NewScanService(oracle, log)
	promptSvc := services.NewPromptService(oracle, repos.Accounts, txnSvc, log)
	recurringSvc := services.NewRecurringService(repos.Transactions, wp, cfg.SweepBatch, log)

	go recurringSvc.Run(ctx, cfg.SweepInterval)

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Auth:         middleware.NewAuthMiddleware(tm),
		EdgeLimiter:  admission.NewLimiter(cfg.RateRPS*10, cfg.RateBurst*10),
		AuthHandler:  handlers.NewAuthHandler(userSvc),
		Accounts:     handlers.NewAccountsHandler(acctSvc),
		Transactions: handlers.NewTransactionsHandler(txnSvc, scanSvc, promptSvc),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
