package lifecycle

import (
	"fmt"
	"math"
	"time"

	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidMethod       = fmt.Errorf("%w: método de depreciación desconocido", apperrors.ErrBadRequest)
	ErrMissingCategoryRate = fmt.Errorf("%w: la partida del modelo no tiene porcentaje de depreciación", apperrors.ErrBadRequest)
)

// hoursPerYear usa años de 365.25 días para absorber bisiestos.
const hoursPerYear = 24 * 365.25

var (
	oneHundred = decimal.NewFromInt(100)
	twelve     = decimal.NewFromInt(12)
)

// DepreciationInput son los datos que necesita el cálculo. PeriodStart es la
// fecha de adquisición y PeriodEnd la fecha de evaluación.
type DepreciationInput struct {
	OriginalCost decimal.Decimal
	RatePercent  decimal.Decimal
	Method       entities.DepreciationMethod
	PeriodStart  time.Time
	PeriodEnd    time.Time
}

// DepreciationResult es el resultado del cálculo. NetValue no se recorta en
// cero aquí: ese piso es una decisión del orquestador.
type DepreciationResult struct {
	Value    decimal.Decimal
	NetValue decimal.Decimal
}

// Depreciate calcula la depreciación acumulada entre PeriodStart y PeriodEnd.
// Es una función pura: mismas entradas, mismo resultado.
func Depreciate(in DepreciationInput) (DepreciationResult, error) {
	if !in.Method.Valid() {
		return DepreciationResult{}, ErrInvalidMethod
	}
	if in.RatePercent.LessThanOrEqual(decimal.Zero) {
		return DepreciationResult{}, ErrMissingCategoryRate
	}

	years := in.PeriodEnd.Sub(in.PeriodStart).Hours() / hoursPerYear
	rate := in.RatePercent.Div(oneHundred)

	var value decimal.Decimal
	switch in.Method {
	case entities.MethodStraightLine:
		value = in.OriginalCost.Mul(rate).Mul(decimal.NewFromFloat(years))
	case entities.MethodDecliningBalance:
		base := decimal.NewFromInt(1).Sub(rate).InexactFloat64()
		factor := decimal.NewFromFloat(math.Pow(base, years))
		value = in.OriginalCost.Mul(decimal.NewFromInt(1).Sub(factor))
	}

	return DepreciationResult{
		Value:    value,
		NetValue: in.OriginalCost.Sub(value),
	}, nil
}

// MonthlyStep calcula el paso mensual de depreciación sobre el costo vigente.
// Para línea recta es costo*(tasa/100)/12; para saldo decreciente el nuevo
// costo es costo*(1-tasa/100)^(1/12).
func MonthlyStep(currentCost, ratePercent decimal.Decimal, method entities.DepreciationMethod) (DepreciationResult, error) {
	if !method.Valid() {
		return DepreciationResult{}, ErrInvalidMethod
	}
	if ratePercent.LessThanOrEqual(decimal.Zero) {
		return DepreciationResult{}, ErrMissingCategoryRate
	}

	rate := ratePercent.Div(oneHundred)

	var value decimal.Decimal
	switch method {
	case entities.MethodStraightLine:
		value = currentCost.Mul(rate).Div(twelve)
	case entities.MethodDecliningBalance:
		base := decimal.NewFromInt(1).Sub(rate).InexactFloat64()
		factor := decimal.NewFromFloat(math.Pow(base, 1.0/12.0))
		value = currentCost.Sub(currentCost.Mul(factor))
	}

	return DepreciationResult{
		Value:    value,
		NetValue: currentCost.Sub(value),
	}, nil
}
