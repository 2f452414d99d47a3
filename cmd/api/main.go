package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	v1 "github.com/mahmut0ff/HandshakeMeBackend/cmd/api/router/v1"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/config"
	cacheAdapter "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/cache/adapter"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/database"
	queueAdapter "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/adapter"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/realtime"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/logger"
)

func main() {
	// .env is optional; container deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		logger.Debugf(".env not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("config: %v", err)
		return
	}
	logger.InitLogger(logger.ParseLevel(cfg.LogLevel))

	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		logger.Errorf("migrate: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Errorf("database: %v", err)
		return
	}
	defer pool.Close()

	cache, err := cacheAdapter.NewRedisAdapter(cfg.RedisURL)
	if err != nil {
		logger.Errorf("redis: %v", err)
		return
	}
	defer cache.Close()

	queueClient, err := queueAdapter.NewAsynqClient(cfg.RedisURL)
	if err != nil {
		logger.Errorf("queue: %v", err)
		return
	}
	defer queueClient.Close()

	jwtSvc := security.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessExpiry, cfg.Auth.RefreshExpiry)

	rt := realtime.NewRouter()
	defer rt.Close()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(r, pool, jwtSvc, cache, queueClient, rt)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("%s listening on %s", cfg.ServerName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("http server: %v", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warningf("http shutdown: %v", err)
	}
}
