package lifecycle

import (
	"errors"
	"testing"
	"time"

	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// oneYear son exactamente 365.25 días, el año contable del cálculo.
const oneYear = time.Duration(hoursPerYear) * time.Hour

func TestDepreciate_StraightLineOneYear(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	res, err := Depreciate(DepreciationInput{
		OriginalCost: decimal.NewFromInt(1500),
		RatePercent:  decimal.NewFromInt(10),
		Method:       entities.MethodStraightLine,
		PeriodStart:  start,
		PeriodEnd:    start.Add(oneYear),
	})
	require.NoError(t, err)

	assert.True(t, res.Value.Equal(decimal.NewFromInt(150)), "valor: %s", res.Value)
	assert.True(t, res.NetValue.Equal(decimal.NewFromInt(1350)), "neto: %s", res.NetValue)
}

func TestDepreciate_DecliningBalanceOneYear(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	res, err := Depreciate(DepreciationInput{
		OriginalCost: decimal.NewFromInt(1000),
		RatePercent:  decimal.NewFromInt(20),
		Method:       entities.MethodDecliningBalance,
		PeriodStart:  start,
		PeriodEnd:    start.Add(oneYear),
	})
	require.NoError(t, err)

	// 1000 * (1 - 0.8^1) = 200
	assert.InDelta(t, 200, res.Value.InexactFloat64(), 0.0001)
	assert.InDelta(t, 800, res.NetValue.InexactFloat64(), 0.0001)
}

func TestDepreciate_NetValueNotClamped(t *testing.T) {
	start := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

	// 20 años al 10% lineal deprecia el doble del costo; el neto queda
	// negativo porque el piso en cero es política del orquestador.
	res, err := Depreciate(DepreciationInput{
		OriginalCost: decimal.NewFromInt(1000),
		RatePercent:  decimal.NewFromInt(10),
		Method:       entities.MethodStraightLine,
		PeriodStart:  start,
		PeriodEnd:    start.Add(20 * oneYear),
	})
	require.NoError(t, err)
	assert.True(t, res.NetValue.IsNegative())
}

func TestMonthlyStep_StraightLine(t *testing.T) {
	res, err := MonthlyStep(decimal.NewFromInt(1500), decimal.NewFromInt(10), entities.MethodStraightLine)
	require.NoError(t, err)

	assert.True(t, res.Value.Equal(decimal.RequireFromString("12.5")), "valor: %s", res.Value)
	assert.True(t, res.NetValue.Equal(decimal.RequireFromString("1487.5")), "neto: %s", res.NetValue)
}

func TestMonthlyStep_DecliningBalance(t *testing.T) {
	res, err := MonthlyStep(decimal.NewFromInt(1000), decimal.NewFromInt(20), entities.MethodDecliningBalance)
	require.NoError(t, err)

	// 1000 * 0.8^(1/12) ≈ 981.5656
	assert.InDelta(t, 981.5656, res.NetValue.InexactFloat64(), 0.001)
	assert.InDelta(t, 18.4344, res.Value.InexactFloat64(), 0.001)
}

func TestDepreciate_Guards(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	_, err := Depreciate(DepreciationInput{
		OriginalCost: decimal.NewFromInt(100),
		RatePercent:  decimal.NewFromInt(10),
		Method:       entities.DepreciationMethod("ACELERADA"),
		PeriodStart:  start,
		PeriodEnd:    start.Add(oneYear),
	})
	assert.True(t, errors.Is(err, ErrInvalidMethod))
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))

	_, err = Depreciate(DepreciationInput{
		OriginalCost: decimal.NewFromInt(100),
		RatePercent:  decimal.Zero,
		Method:       entities.MethodStraightLine,
		PeriodStart:  start,
		PeriodEnd:    start.Add(oneYear),
	})
	assert.True(t, errors.Is(err, ErrMissingCategoryRate))
}

func TestDepreciate_Deterministic(t *testing.T) {
	start := time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC)
	in := DepreciationInput{
		OriginalCost: decimal.RequireFromString("2749.99"),
		RatePercent:  decimal.RequireFromString("12.5"),
		Method:       entities.MethodDecliningBalance,
		PeriodStart:  start,
		PeriodEnd:    start.AddDate(2, 7, 3),
	}

	first, err := Depreciate(in)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Depreciate(in)
		require.NoError(t, err)
		assert.True(t, first.Value.Equal(again.Value))
		assert.True(t, first.NetValue.Equal(again.NetValue))
	}
}
