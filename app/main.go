package main

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"asset-system/internal/routes"
	"asset-system/migrations"
	"asset-system/pkg/clock"
	"asset-system/pkg/config"
	"asset-system/pkg/database/postgresql"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/eventbus"
	applogger "asset-system/pkg/logger"
	"asset-system/pkg/service"
	"asset-system/pkg/utils"
	"asset-system/pkg/websocket"
)

func main() {
	e := echo.New()
	logger := applogger.NewLogger()
	defer logger.Sync()

	cfg := config.New()

	e.Use(echomiddleware.RecoverWithConfig(echomiddleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("pánico recuperado",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Error interno del servidor", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	e.Validator = utils.NewValidator(validator.New())

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		logger.Fatal("no se pudieron aplicar las migraciones", zap.Error(err))
	}

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("no se pudo conectar a Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)
	bus := eventbus.New(logger)
	hub := websocket.NewHub()
	go hub.Run()

	sysClock := clock.NewSystemClock()

	depService := routes.InitRouter(e, routes.Deps{
		DB:     dbConn,
		Redis:  redisClient,
		JWT:    jwtSvc,
		Bus:    bus,
		Hub:    hub,
		Clock:  sysClock,
		Config: cfg,
		Logger: logger,
	})

	// Corrida anual de arranque. Es idempotente por (unidad, período, método),
	// así que reiniciar el servidor dentro del mismo año no duplica nada.
	go func() {
		summary, err := depService.RunAnnual(context.Background(), sysClock.Now())
		if err != nil {
			logger.Error("falló la depreciación anual de arranque", zap.Error(err))
			return
		}
		logger.Info("depreciación anual de arranque completada",
			zap.Int("procesadas", summary.Processed),
			zap.Int("omitidas", summary.Skipped),
			zap.Int("fallidas", len(summary.Failed)),
		)
	}()

	addr := ":" + cfg.Server.Port
	logger.Info("servidor escuchando", zap.String("address", addr))
	if err := e.Start(addr); err != nil {
		logger.Fatal("error al iniciar el servidor", zap.Error(err))
	}
}

// runMigrations aplica las migraciones incrustadas antes de abrir el pool.
// goose trabaja sobre database/sql, por eso se usa el driver stdlib de pgx.
func runMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}
