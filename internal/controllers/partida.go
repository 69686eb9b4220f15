package controllers

import (
	"net/http"

	"asset-system/internal/dto"
	"asset-system/internal/services"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type PartidaController struct {
	partidaService services.PartidaServiceInterface
	logger         *zap.Logger
}

func NewPartidaController(partidaService services.PartidaServiceInterface, logger *zap.Logger) *PartidaController {
	return &PartidaController{
		partidaService: partidaService,
		logger:         logger,
	}
}

func (c *PartidaController) CreatePartida(ctx echo.Context) error {
	var payload dto.CreatePartidaDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formato del cuerpo inválido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	partida, err := c.partidaService.CreatePartida(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, partida, "Partida creada", http.StatusCreated)
}

func (c *PartidaController) FindPartida(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	partida, err := c.partidaService.FindPartida(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, partida, "Partida encontrada", http.StatusOK)
}

func (c *PartidaController) GetPartidas(ctx echo.Context) error {
	partidas, err := c.partidaService.GetPartidas(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, partidas, "Lista de partidas obtenida", http.StatusOK)
}

func (c *PartidaController) DeletePartida(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.partidaService.DeletePartida(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Partida eliminada", http.StatusOK)
}
