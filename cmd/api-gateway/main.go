package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/exam-seating-api/api/swagger"
	"github.com/noah-isme/exam-seating-api/internal/handler"
	"github.com/noah-isme/exam-seating-api/internal/middleware"
	"github.com/noah-isme/exam-seating-api/internal/models"
	"github.com/noah-isme/exam-seating-api/internal/repository"
	"github.com/noah-isme/exam-seating-api/internal/service"
	"github.com/noah-isme/exam-seating-api/pkg/cache"
	"github.com/noah-isme/exam-seating-api/pkg/config"
	"github.com/noah-isme/exam-seating-api/pkg/database"
	"github.com/noah-isme/exam-seating-api/pkg/jobs"
	"github.com/noah-isme/exam-seating-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/exam-seating-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/exam-seating-api/pkg/middleware/requestid"
	"github.com/noah-isme/exam-seating-api/pkg/storage"
)

// @title Exam Seating API
// @version 1.0.0
// @description Exam date sheets, repeat-paper rescheduling and seat allocation.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db); err != nil {
		logr.Fatal("failed to prepare schema", zap.Error(err))
	}

	metrics := service.NewMetricsService()
	validate := validator.New()

	checks := map[string]handler.Pinger{"postgres": db}
	var cacheRepo service.CacheRepository
	if client, err := cache.NewRedis(ctx, cfg.Redis); err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
	} else {
		redisCache := repository.NewCacheRepository(client, logr)
		defer redisCache.Close() //nolint:errcheck
		cacheRepo = redisCache
		checks["redis"] = handler.PingFunc(redisCache.Ping)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Seating.PlanTTL, logr)

	var planStore service.PlanStore
	switch {
	case cfg.Seating.PlanStore == config.PlanStoreRedis && cacheSvc.Enabled():
		planStore = service.NewCachePlanStore(cacheSvc, cfg.Seating.PlanTTL)
	case cfg.Seating.PlanStore == config.PlanStoreRedis:
		logr.Warn("redis plan store requested without redis, falling back to memory")
		planStore = service.NewMemoryPlanStore(cfg.Seating.PlanTTL)
	default:
		planStore = service.NewMemoryPlanStore(cfg.Seating.PlanTTL)
	}

	dateSheetRepo := repository.NewDateSheetRepository(db)
	roomRepo := repository.NewRoomRepository(db)

	dateSheetSvc := service.NewDateSheetService(dateSheetRepo, cacheSvc, validate, logr)
	roomSvc := service.NewRoomService(roomRepo, validate, logr)
	conflictSvc := service.NewConflictService(dateSheetSvc, metrics, logr)
	repeatPaperSvc := service.NewRepeatPaperService(dateSheetSvc, validate, metrics, logr, service.RepeatPaperConfig{
		ExemptBatches: cfg.RepeatPapers.ExemptBatches,
	})
	seatingSvc := service.NewSeatingService(dateSheetSvc, roomSvc, planStore, validate, metrics, logr, service.SeatingConfig{
		MalePoolSize:   cfg.Seating.MalePoolSize,
		StrictCapacity: cfg.Seating.StrictCapacity,
	})

	fileStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare export storage", zap.Error(err))
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exportSvc := service.NewExportService(seatingSvc, fileStore, signer, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
	}, metrics, logr, nil, nil)
	tokenSvc := service.NewTokenService(cfg.JWT.Secret)

	maintenance := jobs.NewQueue("exports", exportSvc.HandleJob, jobs.QueueConfig{Logger: logr})
	maintenance.Start(ctx)
	defer maintenance.Stop()
	go maintenance.Every(ctx, cfg.Exports.CleanupInterval, service.JobExportCleanup)

	dateSheetHandler := handler.NewDateSheetHandler(dateSheetSvc, conflictSvc)
	repeatPaperHandler := handler.NewRepeatPaperHandler(repeatPaperSvc)
	roomHandler := handler.NewRoomHandler(roomSvc)
	seatingHandler := handler.NewSeatingHandler(seatingSvc, exportSvc)
	metricsHandler := handler.NewMetricsHandler(metrics, checks)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/exports/:token", seatingHandler.Download)

	secured := api.Group("")
	secured.Use(middleware.JWT(tokenSvc))
	secured.GET("/datesheets", dateSheetHandler.List)
	secured.GET("/datesheets/batch/*batch", dateSheetHandler.GetByBatch)

	admin := secured.Group("")
	admin.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin))
	admin.PUT("/datesheets", dateSheetHandler.Upsert)
	admin.PUT("/datesheets/:id", dateSheetHandler.UpdateSchedule)
	admin.GET("/datesheets/conflicts", dateSheetHandler.Conflicts)

	admin.POST("/repeat-papers/reschedule", repeatPaperHandler.Reschedule)
	admin.POST("/repeat-papers/clash-check", repeatPaperHandler.CheckClash)
	admin.POST("/repeat-papers/process", repeatPaperHandler.Process)

	admin.GET("/rooms", roomHandler.List)
	admin.PUT("/rooms", roomHandler.Replace)

	admin.POST("/seating-plans", seatingHandler.Generate)
	admin.GET("/seating-plans/:id", seatingHandler.Get)
	admin.GET("/seating-plans/:id/reports", seatingHandler.Reports)
	admin.PUT("/seating-plans/:id/seats", seatingHandler.EditSeat)
	admin.POST("/seating-plans/:id/exports", seatingHandler.Export)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
