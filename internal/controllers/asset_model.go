package controllers

import (
	"net/http"
	"strconv"

	"asset-system/internal/dto"
	"asset-system/internal/services"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AssetModelController struct {
	modelService services.AssetModelServiceInterface
	logger       *zap.Logger
}

func NewAssetModelController(modelService services.AssetModelServiceInterface, logger *zap.Logger) *AssetModelController {
	return &AssetModelController{
		modelService: modelService,
		logger:       logger,
	}
}

func (c *AssetModelController) CreateAssetModel(ctx echo.Context) error {
	var payload dto.CreateAssetModelDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formato del cuerpo inválido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	model, err := c.modelService.CreateAssetModel(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, model, "Modelo de activo registrado", http.StatusCreated)
}

func (c *AssetModelController) FindAssetModel(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	model, err := c.modelService.FindAssetModel(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, model, "Modelo de activo encontrado", http.StatusOK)
}

func (c *AssetModelController) GetAssetModels(ctx echo.Context) error {
	limit, offset := parsePagination(ctx)
	models, total, err := c.modelService.GetAssetModels(ctx.Request().Context(), limit, offset)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, models, "Lista de modelos obtenida", http.StatusOK, total)
}

func (c *AssetModelController) DeleteAssetModel(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.modelService.DeleteAssetModel(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Modelo de activo eliminado", http.StatusOK)
}

// parseIDParam lee el parámetro :id de la ruta.
func parseIDParam(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewHttpError(http.StatusBadRequest, "Formato de ID inválido", err,
			map[string]interface{}{"param": ctx.Param("id")})
	}
	return id, nil
}

func parsePagination(ctx echo.Context) (limit, offset uint64) {
	limit, _ = strconv.ParseUint(ctx.QueryParam("limit"), 10, 64)
	offset, _ = strconv.ParseUint(ctx.QueryParam("offset"), 10, 64)
	return limit, offset
}
