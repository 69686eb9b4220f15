package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/controllers"
	"asset-system/internal/listeners"
	"asset-system/internal/repositories"
	"asset-system/internal/services"
	"asset-system/pkg/clock"
	"asset-system/pkg/config"
	"asset-system/pkg/eventbus"
	"asset-system/pkg/middleware"
	"asset-system/pkg/service"
	"asset-system/pkg/websocket"
)

// Deps agrupa lo que el router necesita del arranque.
type Deps struct {
	DB     *pgxpool.Pool
	Redis  *redis.Client
	JWT    service.JWTService
	Bus    *eventbus.Bus
	Hub    *websocket.Hub
	Clock  clock.Clock
	Config *config.Config
	Logger *zap.Logger
}

// InitRouter arma repositorios, servicios y controladores y cuelga todas las
// rutas bajo /api. Devuelve el servicio de depreciación para la corrida
// anual del arranque.
func InitRouter(e *echo.Echo, deps Deps) services.DepreciationServiceInterface {
	logger := deps.Logger
	logger.Info("InitRouter: creando rutas")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(deps.JWT, logger)
	txManager := repositories.NewTxManager(deps.DB)

	// repositorios
	userRepo := repositories.NewUserRepository(deps.DB)
	partidaRepo := repositories.NewPartidaRepository(deps.DB)
	personnelRepo := repositories.NewPersonnelRepository(deps.DB)
	modelRepo := repositories.NewAssetModelRepository(deps.DB)
	unitRepo := repositories.NewAssetUnitRepository(deps.DB)
	ledgerRepo := repositories.NewLedgerRepository(deps.DB)
	assignmentRepo := repositories.NewAssignmentRepository(deps.DB)
	reassignmentRepo := repositories.NewReassignmentRepository(deps.DB)
	devolutionRepo := repositories.NewDevolutionRepository(deps.DB)
	disposalRepo := repositories.NewDisposalRepository(deps.DB)
	conditionRepo := repositories.NewConditionChangeRepository(deps.DB)
	depRepo := repositories.NewDepreciationRepository(deps.DB)
	reportRepo := repositories.NewReportRepository(deps.DB)
	cacheRepo := repositories.NewRedisCacheRepository(deps.Redis)

	// servicios
	authService := services.NewAuthService(userRepo, deps.JWT, logger)
	partidaService := services.NewPartidaService(partidaRepo, cacheRepo, logger)
	personnelService := services.NewPersonnelService(personnelRepo, unitRepo, logger)
	modelService := services.NewAssetModelService(txManager, modelRepo, unitRepo, ledgerRepo, partidaRepo, deps.Bus, deps.Clock, logger)
	assignmentService := services.NewAssignmentService(txManager, assignmentRepo, unitRepo, modelRepo, ledgerRepo, personnelRepo, deps.Bus, deps.Clock, logger)
	reassignmentService := services.NewReassignmentService(txManager, reassignmentRepo, unitRepo, personnelRepo, ledgerRepo, deps.Bus, deps.Clock, logger)
	devolutionService := services.NewDevolutionService(txManager, devolutionRepo, unitRepo, modelRepo, ledgerRepo, personnelRepo, deps.Bus, deps.Clock, logger)
	disposalService := services.NewDisposalService(txManager, disposalRepo, unitRepo, ledgerRepo, deps.Bus, deps.Clock, logger)
	conditionService := services.NewConditionService(txManager, unitRepo, conditionRepo, ledgerRepo, deps.Bus, deps.Clock, logger)
	depService := services.NewDepreciationService(txManager, depRepo, unitRepo, modelRepo, partidaRepo, ledgerRepo, cacheRepo, deps.Config.Depreciation, deps.Bus, deps.Clock, logger)
	trackingService := services.NewTrackingService(unitRepo, ledgerRepo, logger)
	reportService := services.NewReportService(reportRepo, logger)

	notificationService := services.NewMockNotificationService(logger)
	wsNotificationService := services.NewWebSocketNotificationService(deps.Hub, logger)
	notificationListener := listeners.NewNotificationListener(notificationService, wsNotificationService, userRepo, logger)
	notificationListener.Register(deps.Bus)

	// controladores
	authController := controllers.NewAuthController(authService, logger)
	partidaController := controllers.NewPartidaController(partidaService, logger)
	personnelController := controllers.NewPersonnelController(personnelService, logger)
	modelController := controllers.NewAssetModelController(modelService, logger)
	unitController := controllers.NewAssetUnitController(trackingService, conditionService, logger)
	assignmentController := controllers.NewAssignmentController(assignmentService, reassignmentService, devolutionService, logger)
	disposalController := controllers.NewDisposalController(disposalService, logger)
	depController := controllers.NewDepreciationController(depService, logger)
	reportController := controllers.NewReportController(reportService, logger)
	wsController := controllers.NewWebSocketController(deps.Hub, deps.JWT, logger)

	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authController, authMW)
	runCatalogRouter(secureGroup, partidaController, personnelController, authMW)
	runAssetRouter(secureGroup, modelController, unitController, authMW)
	runLifecycleRouter(secureGroup, assignmentController, authMW)
	runDisposalRouter(secureGroup, disposalController, authMW)
	runDepreciationRouter(secureGroup, depController, authMW)
	runReportRouter(secureGroup, reportController)

	e.GET("/ws", wsController.ServeWs)

	logger.Info("InitRouter: rutas creadas")
	return depService
}
