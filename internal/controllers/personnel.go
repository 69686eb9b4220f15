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

type PersonnelController struct {
	personnelService services.PersonnelServiceInterface
	logger           *zap.Logger
}

func NewPersonnelController(personnelService services.PersonnelServiceInterface, logger *zap.Logger) *PersonnelController {
	return &PersonnelController{
		personnelService: personnelService,
		logger:           logger,
	}
}

func (c *PersonnelController) CreatePersonnel(ctx echo.Context) error {
	var payload dto.CreatePersonnelDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formato del cuerpo inválido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	person, err := c.personnelService.CreatePersonnel(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, person, "Personal creado", http.StatusCreated)
}

func (c *PersonnelController) FindPersonnel(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	person, err := c.personnelService.FindPersonnel(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, person, "Personal encontrado", http.StatusOK)
}

func (c *PersonnelController) GetPersonnel(ctx echo.Context) error {
	limit, offset := parsePagination(ctx)
	people, total, err := c.personnelService.GetPersonnel(ctx.Request().Context(), limit, offset)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, people, "Lista de personal obtenida", http.StatusOK, total)
}

func (c *PersonnelController) DeletePersonnel(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.personnelService.DeletePersonnel(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Personal eliminado", http.StatusOK)
}
