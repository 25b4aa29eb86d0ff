package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"production-tracking/internal/repositories"
	"production-tracking/internal/services"
	"production-tracking/pkg/config"
	"production-tracking/pkg/filestorage"
	"production-tracking/pkg/middleware"
	"production-tracking/pkg/service"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: Начало создания маршрутов")

	// --- ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.Dir)
	if err != nil {
		logger.Fatal("не удалось создать файловое хранилище", zap.Error(err))
	}
	txManager := repositories.NewTxManager(dbConn)

	// --- РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(dbConn)
	orderRepo := repositories.NewOrderRepository(dbConn)
	stageRepo := repositories.NewStageRepository(dbConn)
	fileRepo := repositories.NewFileRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- СЕРВИСЫ ---
	authService := services.NewAuthService(userRepo, jwtSvc, logger)
	orderService := services.NewOrderService(orderRepo, txManager, cacheRepo, fileStorage, logger)
	stageService := services.NewStageService(orderRepo, stageRepo, txManager, cacheRepo, logger)
	attachmentService := services.NewAttachmentService(orderRepo, fileRepo, fileStorage, logger)
	dashboardService := services.NewDashboardService(orderRepo, cacheRepo, cfg.Dashboard.StatsCacheTTL, logger)
	timelineService := services.NewTimelineService(orderRepo, logger)
	reportService := services.NewReportService(orderRepo, logger)

	// --- РОУТЕРЫ ---
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authService, logger)
	runOrderRouter(secureGroup, orderService, stageService, attachmentService, logger, authMW)
	runDashboardRouter(secureGroup, dashboardService, timelineService, logger)
	runReportRouter(secureGroup, reportService, logger, authMW)

	logger.Info("InitRouter: Создание маршрутов завершено")
}
