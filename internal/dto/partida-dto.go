package dto

import "github.com/shopspring/decimal"

type CreatePartidaDTO struct {
	Name           string          `json:"name" validate:"required"`
	UsefulLife     int             `json:"useful_life" validate:"required,gt=0"`
	RatePercentage decimal.Decimal `json:"rate_percentage" validate:"required"`
}

type PartidaDTO struct {
	ID             uint64          `json:"id"`
	Name           string          `json:"name"`
	UsefulLife     int             `json:"useful_life"`
	RatePercentage decimal.Decimal `json:"rate_percentage"`
}

type CreatePersonnelDTO struct {
	Name     string  `json:"name" validate:"required"`
	CI       string  `json:"ci" validate:"required"`
	Position string  `json:"position" validate:"required"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
}

type PersonnelDTO struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	CI       string  `json:"ci"`
	Position string  `json:"position"`
	Email    *string `json:"email,omitempty"`
	Active   bool    `json:"active"`
}
