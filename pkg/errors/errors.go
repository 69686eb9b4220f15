package errors

import (
	"errors"
	"fmt"
)

var (
	// Business rule violations. Every precondition failure ends up wrapping
	// one of these so callers can classify without string matching.
	ErrNotFound   = errors.New("registro no encontrado")
	ErrBadRequest = errors.New("solicitud inválida")
	ErrForbidden  = errors.New("acceso denegado")
	ErrConflict   = errors.New("conflicto de concurrencia, reintente la operación")

	// Auth
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInvalidToken       = errors.New("token inválido")
	ErrTokenExpired       = errors.New("el token ha expirado")
	ErrUserIDNotFound     = errors.New("userID no encontrado en el contexto")
)

// InvalidTransitionError se produce cuando la máquina de estados rechaza un
// cambio de estado físico. Es una sub-clase de ErrBadRequest.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	if e.From == e.To {
		return fmt.Sprintf("el estado %s ya es el estado actual", e.To)
	}
	return fmt.Sprintf("no es posible cambiar de %s a %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrBadRequest }

func NewInvalidTransitionError(from, to string) error {
	return &InvalidTransitionError{From: from, To: to}
}

// AssetDisposedError se produce al intentar operar sobre una unidad dada de
// baja. También es una sub-clase de ErrBadRequest.
type AssetDisposedError struct {
	UnitID uint64
}

func (e *AssetDisposedError) Error() string {
	return fmt.Sprintf("la unidad de activo %d está dada de baja", e.UnitID)
}

func (e *AssetDisposedError) Unwrap() error { return ErrBadRequest }

func NewAssetDisposedError(unitID uint64) error {
	return &AssetDisposedError{UnitID: unitID}
}

// InvalidInputError lleva un mensaje legible para el usuario final.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func (e *InvalidInputError) Unwrap() error { return ErrBadRequest }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
