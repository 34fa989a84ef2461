package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"facebook-scorer/internal/alert"
	"facebook-scorer/internal/api"
	"facebook-scorer/internal/browser"
	"facebook-scorer/internal/cache"
	"facebook-scorer/internal/callback"
	"facebook-scorer/internal/config"
	"facebook-scorer/internal/database"
	"facebook-scorer/internal/facebook"
	"facebook-scorer/internal/logging"
	"facebook-scorer/internal/scorer"
)

func main() {
	logger, err := logging.New()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	//load config, fails fast when FACEBOOK_EMAIL/FACEBOOK_PASSWORD are missing
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	logger.Info("🔧 config loaded", zap.String("port", cfg.Port), zap.String("cookies_path", cfg.CookiesPath))

	//init playwright manager
	manager, err := browser.NewManager(cfg.Headless)
	if err != nil {
		logger.Fatal("failed to init playwright", zap.Error(err))
	}
	defer manager.Close()
	logger.Info("🚀 browser initialized")

	//optional score history
	var repo *database.Repository
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		repo, err = database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			cancel()
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer repo.Close()
		if err := repo.EnsureSchema(ctx); err != nil {
			cancel()
			logger.Fatal("failed to prepare database schema", zap.Error(err))
		}
		cancel()
		logger.Info("🗄️ score history enabled")
	}

	//optional telegram ops alerts
	var alerts *alert.Notifier
	if cfg.TelegramToken != "" {
		alerts, err = alert.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			logger.Fatal("failed to init telegram alerts", zap.Error(err))
		}
		logger.Info("🤖 telegram alerts enabled")
	}

	auth := facebook.NewAuthenticator(cfg, logger)
	client := facebook.NewClient(manager, auth, cfg, logger)
	scoreCache := cache.New(cfg.CachePath, cfg.CacheTTL, logger)
	service := scorer.New(client, scoreCache, alerts, cfg.Weights, logger)

	handler := api.NewHandler(service, repo, callback.New(logger), alerts, logger)
	router := api.NewRouter(handler, logger, cfg.RateLimitRPS, cfg.RateLimitBurst)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	shutdown(server, cfg.ShutdownGracePeriod, logger)
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
