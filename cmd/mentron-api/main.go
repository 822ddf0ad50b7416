package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/mentron-app/mentron-api/api/swagger"
	"github.com/mentron-app/mentron-api/internal/handler"
	"github.com/mentron-app/mentron-api/internal/middleware"
	"github.com/mentron-app/mentron-api/internal/repository"
	"github.com/mentron-app/mentron-api/internal/service"
	"github.com/mentron-app/mentron-api/pkg/cache"
	"github.com/mentron-app/mentron-api/pkg/config"
	"github.com/mentron-app/mentron-api/pkg/database"
	"github.com/mentron-app/mentron-api/pkg/logger"
	corsmiddleware "github.com/mentron-app/mentron-api/pkg/middleware/cors"
	reqidmiddleware "github.com/mentron-app/mentron-api/pkg/middleware/requestid"
)

// @title MENTRON API
// @version 1.0.0
// @description Role-scoped academic dashboard backend
// @BasePath /
// @schemes http

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Analytics.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, analytics cache disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Analytics.CacheTTL, logr, true)
		}
	}

	identityRepo := repository.NewIdentityRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	searchRepo := repository.NewSearchRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	tokenSvc := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)
	identitySvc := service.NewIdentityService(identityRepo, logr)
	notificationSvc := service.NewNotificationService(notificationRepo, memberRepo, adminRepo, nil, logr, cfg.Notifications.ListLimit)
	calendarSvc := service.NewCalendarService(calendarRepo, memberRepo, notificationRepo, nil, logr)
	searchSvc := service.NewSearchService(searchRepo, logr, cfg.Search.ResultLimit)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo, cacheSvc, logr, cfg.Analytics.CacheTTL)
	hierarchySvc := service.NewHierarchyService(memberRepo, logr)
	settingsSvc := service.NewSettingsService(adminRepo, logr)

	handlers := handler.Handlers{
		Notifications: handler.NewNotificationHandler(notificationSvc),
		Calendar:      handler.NewCalendarHandler(calendarSvc),
		Search:        handler.NewSearchHandler(searchSvc),
		Hierarchy:     handler.NewHierarchyHandler(hierarchySvc),
		Settings:      handler.NewSettingsHandler(settingsSvc),
		Metrics:       handler.NewMetricsHandler(metricsSvc),
	}
	if cfg.Exports.Enabled {
		exportSvc := service.NewExportService(analyticsSvc, logr)
		handlers.Analytics = handler.NewAnalyticsHandler(analyticsSvc, exportSvc)
	} else {
		handlers.Analytics = handler.NewAnalyticsHandler(analyticsSvc, nil)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	handler.RegisterRoutes(r, cfg.APIPrefix, tokenSvc, identitySvc, handlers)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
