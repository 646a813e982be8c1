package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"blood-portal/internal/core/auth"
	"blood-portal/internal/core/cache"
	"blood-portal/internal/core/config"
	"blood-portal/internal/core/database"
	"blood-portal/internal/core/logger"
	"blood-portal/internal/core/server"
	"blood-portal/internal/repo"
	"blood-portal/internal/service"
	"blood-portal/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))

	log, cleanup := newLogger(cfg)
	defer cleanup()
	undo := logger.RedirectStdLog(log, zapcore.InfoLevel)
	defer undo()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}
	if cfg.UsesDevSecret() {
		log.Warn("JWT_SECRET not set, using the development signing secret")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = logger.ToWriter(log, zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(log, zapcore.ErrorLevel)

	// 数据库（失败直接 Fatal）
	db := mustOpenDB(cfg, log)
	defer func() { _ = database.Close(db) }()
	log.Info("database connected", zap.String("driver", cfg.DB.Driver), zap.String("dsn", database.MaskDSN(cfg.DB.DSN)))

	if cfg.DB.AutoMigrate {
		if err := repo.AutoMigrate(db); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// 可选缓存：未配置 redis.addr 时为 nil
	rc := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
	defer func() { _ = rc.Close() }()
	if rc.Enabled() {
		pctx, pcancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rc.Ping(pctx); err != nil {
			log.Warn("redis unreachable, profile cache degraded to pass-through", zap.Error(err))
		}
		pcancel()
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.JWT.TTL(),
		Leeway: cfg.JWT.Leeway(),
	}

	users := repo.NewUserRepo(db)
	donors := repo.NewDonorRepo(db)
	requests := repo.NewRequestRepo(db)
	inventory := repo.NewInventoryRepo(db)

	authSvc := service.NewAuthService(users, jwter, rc, log)
	if cfg.Redis.ProfileTTL > 0 {
		authSvc.ProfileTTL = time.Duration(cfg.Redis.ProfileTTL) * time.Second
	}

	r := router.NewAPIEngine(router.Options{
		Log:  log,
		DB:   db,
		JWT:  jwter,
		Port: cfg.App.HTTP.Port,
		Limits: router.Limits{
			RequestTimeout: time.Duration(cfg.App.HTTP.RequestTimeoutSec) * time.Second,
			MaxConcurrent:  cfg.App.HTTP.MaxConcurrent,
			MaxBodyBytes:   cfg.App.HTTP.MaxBodyBytes,
		},
		Services: router.Services{
			Auth:      authSvc,
			Donor:     service.NewDonorService(donors, log),
			Request:   service.NewRequestService(requests, log),
			Inventory: service.NewInventoryService(inventory, log),
			Stats:     service.NewStatsService(donors, requests, inventory),
			Admin:     service.NewAdminService(users, rc, log),
		},
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("blood portal api starting",
		zap.String("env", cfg.App.Env),
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := server.Run(ctx, srv, log, 10*time.Second); err != nil {
		log.Error("blood portal api stopped with error", zap.Error(err))
		return
	}
	log.Info("blood portal api stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File != "" {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File,
			cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays, cfg.Log.Compress)
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
