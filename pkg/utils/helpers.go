package utils

import (
	"context"
	"fmt"

	"asset-system/pkg/constants"
	"asset-system/pkg/contextkeys"
	apperrors "asset-system/pkg/errors"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrUserIDNotFound
	}
	return userID, nil
}

func GetUserRoleFromCtx(ctx context.Context) (constants.Role, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(constants.Role)
	if !ok || !role.Valid() {
		return "", apperrors.ErrForbidden
	}
	return role, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("no se pudo hashear la contraseña: %w", err)
	}
	return string(bytes), nil
}

func ComparePasswords(hashedPassword string, plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
}

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
