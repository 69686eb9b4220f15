package services

import (
	"context"
	"errors"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/service"
	"asset-system/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	Register(ctx context.Context, payload dto.RegisterUserDTO) (*dto.UserDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error)
	Me(ctx context.Context) (*dto.UserDTO, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePasswords(user.PasswordHash, payload.Password); err != nil {
		s.logger.Warn("intento de inicio de sesión fallido", zap.String("email", payload.Email))
		return nil, apperrors.ErrInvalidCredentials
	}

	access, refresh, err := s.jwtService.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}

// Register crea un usuario nuevo. Solo un Administrador puede hacerlo.
func (s *AuthService) Register(ctx context.Context, payload dto.RegisterUserDTO) (*dto.UserDTO, error) {
	role, err := utils.GetUserRoleFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if role != constants.RoleAdministrator {
		return nil, apperrors.ErrForbidden
	}

	newRole, ok := constants.ParseRole(payload.Role)
	if !ok {
		return nil, apperrors.NewInvalidInputError("rol desconocido: %s", payload.Role)
	}

	if _, err := s.userRepo.FindByEmail(ctx, payload.Email); err == nil {
		return nil, apperrors.NewInvalidInputError("ya existe un usuario con el correo %s", payload.Email)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:     payload.Username,
		Email:        payload.Email,
		PasswordHash: hash,
		Role:         newRole,
	}
	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		s.logger.Error("no se pudo crear el usuario", zap.Error(err))
		return nil, err
	}
	user.ID = id

	s.logger.Info("usuario registrado", zap.Uint64("userID", id), zap.String("role", payload.Role))
	return userToDTO(user), nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrInvalidToken
	}

	// El usuario puede haber cambiado de rol desde que se emitió el token.
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	access, refresh, err := s.jwtService.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) Me(ctx context.Context) (*dto.UserDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return userToDTO(user), nil
}

func userToDTO(u *entities.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}
