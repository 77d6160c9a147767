package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-system/internal/controllers"
	"equipment-system/internal/repositories"
	"equipment-system/internal/services"
	"equipment-system/pkg/config"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	txManager := repositories.NewTxManager(dbConn)

	// --- 1. РЕПОЗИТОРИИ ---
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	lookupRepo := repositories.NewLookupRepository(dbConn, logger)
	noteRepo := repositories.NewNoteRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- 2. СЕРВИСЫ ---
	lookupService := services.NewLookupService(lookupRepo, cacheRepo, cfg.Import.LookupCacheTTL, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, txManager, logger)
	salesImportService := services.NewSalesImportService(equipmentRepo, lookupService, txManager, logger)
	purchaseImportService := services.NewPurchaseImportService(equipmentRepo, txManager, logger)
	noteSyncService := services.NewNoteSyncService(noteRepo, txManager, logger)

	// --- 3. КОНТРОЛЛЕРЫ ---
	equipmentController := controllers.NewEquipmentController(equipmentService, logger)
	lookupController := controllers.NewLookupController(lookupService, logger)
	importController := controllers.NewImportController(salesImportService, purchaseImportService, cfg.Import.UploadDir, logger)
	noteSyncController := controllers.NewNoteSyncController(noteSyncService, logger)

	// --- 4. РОУТЕРЫ ---
	runEquipmentRouter(api, equipmentController)
	runLookupRouter(api, lookupController)
	runImportRouter(api, importController)
	runNotesRouter(api, noteSyncController)

	logger.Info("InitRouter: Создание маршрутов завершено")
}
