package middleware

import (
	"context"
	"strings"

	"asset-system/pkg/constants"
	"asset-system/pkg/contextkeys"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/service"
	"asset-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth valida el token Bearer y deja el userID y el rol en el contexto de la
// petición.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("token inválido", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		if claims.IsRefreshToken {
			return utils.ErrorResponse(c, apperrors.ErrInvalidToken, m.logger)
		}

		role, ok := constants.ParseRole(claims.Role)
		if !ok {
			m.logger.Warn("rol desconocido en el token", zap.String("role", claims.Role))
			return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.UserRoleKey, role)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireRole corta la petición si el rol autenticado no está en la lista.
func (m *AuthMiddleware) RequireRole(roles ...constants.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, err := utils.GetUserRoleFromCtx(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
		}
	}
}
