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
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barberin/internal/audit"
	"github.com/BruksfildServices01/barberin/internal/auth"
	"github.com/BruksfildServices01/barberin/internal/config"
	dbpkg "github.com/BruksfildServices01/barberin/internal/db"
	"github.com/BruksfildServices01/barberin/internal/logger"
	"github.com/BruksfildServices01/barberin/internal/payment"
	"github.com/BruksfildServices01/barberin/internal/routes"
	"github.com/BruksfildServices01/barberin/internal/storage"
	"github.com/BruksfildServices01/barberin/internal/validators"
)

const (
	auditQueueSize  = 100
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	log, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		zap.NewExample().Fatal("build logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	db, err := dbpkg.NewDB(cfg, log.Named("db"))
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}

	auditLog := audit.New(db)
	dispatcher := audit.NewDispatcher(auditLog, log.Named("audit"), auditQueueSize)

	payments, err := payment.NewMercadoPago(cfg.MercadoPagoAccessToken, cfg.MercadoPagoBackURL)
	if err != nil {
		log.Fatal("configure payments", zap.Error(err))
	}

	deps := routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Tokens:   auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL),
		Audit:    dispatcher,
		AuditLog: auditLog,
		Payments: payments,
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn("redis unreachable, rate limiting fails open", zap.Error(err))
		}
		deps.Redis = rdb
	} else {
		log.Info("REDIS_ADDR not set, rate limiting disabled")
	}

	if cfg.VerifyEmailDomain {
		deps.Emails = validators.NewEmailDomainChecker()
	}

	if cfg.StorageEnabled() {
		deps.Photos = storage.NewS3Store(storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
	} else {
		log.Info("S3 not configured, photo uploads disabled")
	}

	if cfg.GoogleEnabled() {
		deps.Google = auth.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	}

	if !payments.Enabled() {
		log.Info("MERCADOPAGO_ACCESS_TOKEN not set, checkout disabled")
	}

	validators.Init()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(ctx); err != nil {
		log.Error("audit drain", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
