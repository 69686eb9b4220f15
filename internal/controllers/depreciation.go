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

type DepreciationController struct {
	depService services.DepreciationServiceInterface
	logger     *zap.Logger
}

func NewDepreciationController(depService services.DepreciationServiceInterface, logger *zap.Logger) *DepreciationController {
	return &DepreciationController{
		depService: depService,
		logger:     logger,
	}
}

func (c *DepreciationController) CreateDepreciation(ctx echo.Context) error {
	var payload dto.CreateDepreciationDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formato del cuerpo inválido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	dep, err := c.depService.CreateDepreciation(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dep, "Depreciación registrada", http.StatusCreated)
}

func (c *DepreciationController) RunBatch(ctx echo.Context) error {
	var payload dto.BatchDepreciationDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formato del cuerpo inválido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.depService.RunBatch(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Corrida de depreciación terminada", http.StatusOK)
}

func (c *DepreciationController) GetByUnit(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	deps, err := c.depService.GetByUnit(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, deps, "Depreciaciones de la unidad obtenidas", http.StatusOK)
}

func (c *DepreciationController) GetByPeriod(ctx echo.Context) error {
	period := ctx.QueryParam("period")
	if period == "" {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "El parámetro period es obligatorio", nil, nil),
			c.logger)
	}

	deps, err := c.depService.GetByPeriod(ctx.Request().Context(), period)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, deps, "Depreciaciones del período obtenidas", http.StatusOK)
}
