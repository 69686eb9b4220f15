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

type AssetUnitController struct {
	trackingService  services.TrackingServiceInterface
	conditionService services.ConditionServiceInterface
	logger           *zap.Logger
}

func NewAssetUnitController(
	trackingService services.TrackingServiceInterface,
	conditionService services.ConditionServiceInterface,
	logger *zap.Logger,
) *AssetUnitController {
	return &AssetUnitController{
		trackingService:  trackingService,
		conditionService: conditionService,
		logger:           logger,
	}
}

func (c *AssetUnitController) GetAssetUnits(ctx echo.Context) error {
	var filter dto.AssetUnitFilterDTO
	if err := ctx.Bind(&filter); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Parámetros de filtro inválidos", err, nil),
			c.logger)
	}

	units, total, err := c.trackingService.GetAssetUnits(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, units, "Lista de unidades obtenida", http.StatusOK, total)
}

func (c *AssetUnitController) FindAssetUnit(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	unit, err := c.trackingService.FindAssetUnit(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, unit, "Unidad encontrada", http.StatusOK)
}

// GetAssetTrail devuelve el seguimiento completo de la unidad: snapshot más
// el historial del ledger en orden cronológico.
func (c *AssetUnitController) GetAssetTrail(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	trail, err := c.trackingService.GetAssetTrail(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, trail, "Seguimiento obtenido", http.StatusOK)
}

func (c *AssetUnitController) ChangeCondition(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.ChangeConditionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formato del cuerpo inválido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.conditionService.ChangeCondition(ctx.Request().Context(), id, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Estado físico actualizado", http.StatusOK)
}

func (c *AssetUnitController) GetConditionHistory(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	history, err := c.conditionService.GetConditionHistory(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, history, "Historial de estados obtenido", http.StatusOK)
}
