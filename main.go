package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"loan-underwriter/config"
	httpLayer "loan-underwriter/http"
	"loan-underwriter/logger"
	"loan-underwriter/repository"
	"loan-underwriter/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLog, err := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = appLog.Sync() }()

	appLog = appLog.WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
		"env":     cfg.App.Environment,
	})

	var cache repository.CacheRepository
	if cfg.Redis.Enabled {
		redisCache := repository.NewRedisCache(cfg.Redis)
		defer func() { _ = redisCache.Close() }()

		ctx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ReadTimeout))
		if err := redisCache.Ping(ctx); err != nil {
			appLog.WithError(err).Warn("redis unavailable at startup, EMI results will not be cached until it recovers",
				map[string]interface{}{"address": cfg.Redis.Address})
		}
		cancel()
		cache = redisCache
	} else {
		cache = repository.NewMemoryCache()
	}

	loanRepo := repository.NewLoanRepositoryMemory()

	loanService := service.NewLoanService(cache, appLog, cfg.Redis.TTL())
	termService := service.NewTermRecommendationService(appLog)
	applicationService := service.NewApplicationService(loanRepo, service.NewUnderwritingEngine(), appLog)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.WindowDuration())
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Handlers{
		Loans:        httpLayer.NewLoanHandler(loanService, appLog),
		Terms:        httpLayer.NewTermRecommendationHandler(termService, appLog),
		Applications: httpLayer.NewApplicationHandler(applicationService, appLog),
		Health:       httpLayer.NewHealthHandler(appLog, map[string]httpLayer.Pinger{"cache": cache}),
		RateLimiter:  rateLimiter,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		IdleTimeout:  config.GetDuration(cfg.Server.IdleTimeout),
	}

	serverErr := make(chan error, 1)
	go func() {
		appLog.Info("server listening", map[string]interface{}{"addr": server.Addr, "redis": cfg.Redis.Enabled})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		appLog.WithError(err).Error("server failed", nil)
		return
	case sig := <-quit:
		appLog.Info("shutting down server", map[string]interface{}{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.WithError(err).Error("error during server shutdown", nil)
	}

	appLog.Info("server exited", nil)
}
