package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medplast/consult-console/internal/catalog"
	"github.com/medplast/consult-console/internal/console/handler"
	"github.com/medplast/consult-console/internal/console/server"
	"github.com/medplast/consult-console/internal/console/service"
	"github.com/medplast/consult-console/internal/infra"
	"github.com/medplast/consult-console/internal/infra/auth"
	"github.com/medplast/consult-console/internal/repository/postgres"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// 1. Конфигурация и логгер
	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := infra.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// 2. Инфраструктура и ресурсы
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	repo, err := postgres.NewConsoleRepo(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to init postgres", zap.Error(err))
	}
	if err := repo.Ping(ctx); err != nil {
		logger.Fatal("database unreachable", zap.Error(err))
	}
	cancel()
	defer repo.Close()

	// 3. Ключи RS256
	privateKey, err := service.ParseSigningKey(cfg.Auth.PrivateKey)
	if err != nil {
		logger.Fatal("failed to parse private key", zap.Error(err))
	}
	publicKey, err := auth.ParseRSAPublicKey(cfg.Auth.PublicKey)
	if err != nil {
		logger.Fatal("failed to parse public key", zap.Error(err))
	}
	validator := auth.NewBaseValidator(publicKey)

	// 4. Первичный посев каталога (на пустой базе парсим сайт клиники)
	seedCtx, seedCancel := context.WithTimeout(context.Background(), time.Minute)
	seeder := catalog.NewSeeder(repo, catalog.NewFetcher(cfg.Catalog.FetchTimeout), cfg.Catalog, logger)
	if err := seeder.Seed(seedCtx); err != nil {
		// Консоль работоспособна и с пустым каталогом
		logger.Warn("catalog seeding failed", zap.Error(err))
	}
	seedCancel()

	// 5. Инициализация слоев (Dependency Injection)
	requestService := service.NewRequestService(rdb, repo, validator, logger)
	catalogService := service.NewCatalogService(rdb, repo, logger)
	authService := service.NewAuthService(repo, privateKey, cfg.Auth.TokenTTL, cfg.Auth.BcryptCost)

	reg := prometheus.NewRegistry()

	srv := server.NewConsoleServer(
		cfg,
		logger,
		requestService, // RequestService несет в себе BaseValidator
		handler.NewAuthHandler(authService),
		handler.NewRequestHandler(requestService),
		handler.NewCatalogHandler(catalogService),
		handler.NewDashboardHandler(requestService),
		reg,
	)

	// 6. HTTP сервер + Graceful Shutdown
	httpSrv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      srv,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("console API started", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	<-stop // Ждем сигнал
	logger.Info("console API stopping...")

	// Даем 5 секунд на завершение запросов
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown failed", zap.Error(err))
	}
	logger.Info("console API exited properly")
}
