package utils

import (
	"errors"
	"net/http"

	apperrors "asset-system/pkg/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HttpResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
	Total   *uint64     `json:"total,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	if len(total) > 0 {
		response.Total = &total[0]
	}
	return ctx.JSON(code, response)
}

// ErrorResponse traduce errores de negocio a respuestas HTTP. Si el error ya
// es un HttpError se respeta su código; si no, se clasifica por la taxonomía.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code := apperrors.StatusFromError(err)
	message := err.Error()

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = httpErr.Message
	}

	if code >= http.StatusInternalServerError {
		logger.Error("error interno",
			zap.String("uri", ctx.Request().RequestURI),
			zap.Error(err),
		)
		message = "error interno del servidor"
	}

	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Body:    struct{}{},
		Message: message,
	})
}
