package entities

import (
	"asset-system/pkg/constants"
	"asset-system/pkg/types"
)

type User struct {
	ID           uint64         `json:"id"`
	Username     string         `json:"username"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	Role         constants.Role `json:"role"`

	types.BaseEntity
}
