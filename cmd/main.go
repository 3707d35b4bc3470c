package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/kyle-1207/components-plat-sub002/internal/catalog"
	redisclient "github.com/kyle-1207/components-plat-sub002/internal/clients/redis"
	"github.com/kyle-1207/components-plat-sub002/internal/config"
	"github.com/kyle-1207/components-plat-sub002/internal/data"
	"github.com/kyle-1207/components-plat-sub002/internal/db"
	"github.com/kyle-1207/components-plat-sub002/internal/handlers"
	"github.com/kyle-1207/components-plat-sub002/internal/logger"
	"github.com/kyle-1207/components-plat-sub002/internal/middleware"
	"github.com/kyle-1207/components-plat-sub002/internal/observability"
	"github.com/kyle-1207/components-plat-sub002/internal/repos"
	"github.com/kyle-1207/components-plat-sub002/internal/server"
	"github.com/kyle-1207/components-plat-sub002/internal/services"
	"github.com/kyle-1207/components-plat-sub002/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Config
	log.Info("Loading configuration...")
	cfg, err := config.Load("", log)
	if err != nil {
		log.Error("Config load failed", "error", err)
		os.Exit(1)
	}

	// Tracing
	ctx := context.Background()
	shutdownOTel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "components-platform",
		Environment: utils.GetEnv("DEPLOY_ENV", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
	})
	if shutdownOTel != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOTel(shutdownCtx)
		}()
	}

	// Storage
	var (
		thePG            *gorm.DB
		componentRepo    repos.ComponentRepo
		traceabilityRepo repos.TraceabilityRepo
	)
	driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "postgres", log))
	if driver == "memory" {
		log.Info("Using in-memory storage with seed catalog")
		componentRepo = data.NewMemoryComponentRepo(data.SeedComponents())
		traceabilityRepo = data.NewMemoryTraceabilityRepo()
	} else {
		dbService, err := db.NewService(log)
		if err != nil {
			log.Error("Database init failed", "error", err)
			os.Exit(1)
		}
		if err := dbService.AutoMigrateAll(); err != nil {
			log.Warn("Auto migration failed", "error", err)
		}
		thePG = dbService.DB()
		componentRepo = repos.NewComponentRepo(thePG, log)
		traceabilityRepo = repos.NewTraceabilityRepo(thePG, log)
	}

	// Cache
	var queryCache redisclient.QueryCache
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		qc, err := redisclient.NewQueryCache(log, cfg.Cache.KeyPrefix)
		if err != nil {
			log.Error("Redis cache init failed", "error", err)
			os.Exit(1)
		}
		queryCache = qc
		defer func() { _ = qc.Close() }()
	} else {
		log.Info("REDIS_ADDR not set, search cache disabled")
	}

	// Services
	log.Info("Setting up services...")
	engine := catalog.NewEngine(cfg.Paging.DefaultPageSize, cfg.Paging.MaxPageSize)
	componentService := services.NewComponentService(thePG, log, componentRepo, engine, queryCache, cfg.Cache.KeyPrefix)
	traceabilityService := services.NewTraceabilityService(thePG, log, traceabilityRepo)

	if driver != "memory" {
		if _, err := componentService.EnsureSeed(ctx, nil); err != nil {
			log.Warn("Catalog seeding failed", "error", err)
		}
	}

	if queryCache != nil {
		warmup := services.NewCacheWarmupService(log, componentService, cfg.Cache.WarmCategories, cfg.Paging.DefaultPageSize)
		if err := warmup.Warm(ctx); err != nil {
			log.Warn("Cache warmup failed", "error", err)
		}
	}

	// Handlers
	componentHandler := handlers.NewComponentHandler(log, componentService, cfg.Paging.DefaultPageSize, cfg.Paging.MaxPageSize)
	searchHandler := handlers.NewSearchHandler(log, componentService, cfg.Paging.DefaultPageSize, cfg.Paging.MaxPageSize)
	traceabilityHandler := handlers.NewTraceabilityHandler(log, traceabilityService)
	adminHandler := handlers.NewAdminHandler(log, componentService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AllowOrigins:        cfg.Server.AllowOrigins,
		RequestLog:          middleware.NewRequestLogMiddleware(log),
		ComponentHandler:    componentHandler,
		SearchHandler:       searchHandler,
		TraceabilityHandler: traceabilityHandler,
		AdminHandler:        adminHandler,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Starting server", "addr", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
