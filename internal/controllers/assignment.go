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

type AssignmentController struct {
	assignmentService   services.AssignmentServiceInterface
	reassignmentService services.ReassignmentServiceInterface
	devolutionService   services.DevolutionServiceInterface
	logger              *zap.Logger
}

func NewAssignmentController(
	assignmentService services.AssignmentServiceInterface,
	reassignmentService services.ReassignmentServiceInterface,
	devolutionService services.DevolutionServiceInterface,
	logger *zap.Logger,
) *AssignmentController {
	return &AssignmentController{
		assignmentService:   assignmentService,
		reassignmentService: reassignmentService,
		devolutionService:   devolutionService,
		logger:              logger,
	}
}

func (c *AssignmentController) CreateAssignment(ctx echo.Context) error {
	var payload dto.CreateAssignmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formato del cuerpo inválido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	assignment, err := c.assignmentService.CreateAssignment(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, assignment, "Asignación creada", http.StatusCreated)
}

func (c *AssignmentController) FindAssignment(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	assignment, err := c.assignmentService.FindAssignment(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, assignment, "Asignación encontrada", http.StatusOK)
}

func (c *AssignmentController) GetAssignments(ctx echo.Context) error {
	limit, offset := parsePagination(ctx)
	assignments, total, err := c.assignmentService.GetAssignments(ctx.Request().Context(), limit, offset)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, assignments, "Lista de asignaciones obtenida", http.StatusOK, total)
}

func (c *AssignmentController) CreateReassignment(ctx echo.Context) error {
	var payload dto.CreateReassignmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formato del cuerpo inválido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	id, err := c.reassignmentService.CreateReassignment(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string]uint64{"id": id}, "Reasignación registrada", http.StatusCreated)
}

func (c *AssignmentController) CreateDevolution(ctx echo.Context) error {
	var payload dto.CreateDevolutionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Formato del cuerpo inválido", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ids, err := c.devolutionService.CreateDevolution(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string][]uint64{"ids": ids}, "Devoluciones registradas", http.StatusCreated)
}
