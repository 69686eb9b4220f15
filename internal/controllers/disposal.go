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

type DisposalController struct {
	disposalService services.DisposalServiceInterface
	logger          *zap.Logger
}

func NewDisposalController(disposalService services.DisposalServiceInterface, logger *zap.Logger) *DisposalController {
	return &DisposalController{
		disposalService: disposalService,
		logger:          logger,
	}
}

func (c *DisposalController) CreateDisposal(ctx echo.Context) error {
	var payload dto.CreateDisposalDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formato del cuerpo inválido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	disposal, err := c.disposalService.CreateDisposal(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, disposal, "Baja registrada", http.StatusCreated)
}

func (c *DisposalController) ResolveDisposal(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.ResolveDisposalDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formato del cuerpo inválido", err, nil),
			c.logger)
	}

	disposal, err := c.disposalService.ResolveDisposal(ctx.Request().Context(), id, payload.Approve)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, disposal, "Baja resuelta", http.StatusOK)
}

func (c *DisposalController) RestoreDisposal(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.RestoreDisposalDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formato del cuerpo inválido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.disposalService.RestoreDisposal(ctx.Request().Context(), id, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Unidad restaurada de la baja", http.StatusOK)
}

func (c *DisposalController) FindDisposal(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	disposal, err := c.disposalService.FindDisposal(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, disposal, "Baja encontrada", http.StatusOK)
}

func (c *DisposalController) GetDisposals(ctx echo.Context) error {
	limit, offset := parsePagination(ctx)
	status := ctx.QueryParam("status")

	disposals, total, err := c.disposalService.GetDisposals(ctx.Request().Context(), status, limit, offset)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, disposals, "Lista de bajas obtenida", http.StatusOK, total)
}
