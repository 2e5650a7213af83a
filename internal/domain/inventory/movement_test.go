package inventory_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
	"github.com/jhoicas/retail-inventario/internal/domain/inventory"
)

func TestTypeForDelta(t *testing.T) {
	typ, err := inventory.TypeForDelta(5)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementEntrada, typ)

	typ, err = inventory.TypeForDelta(-2)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementSalida, typ)

	_, err = inventory.TypeForDelta(0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_RechazaSaldoNegativo(t *testing.T) {
	next, err := inventory.Apply(10, -4)
	require.NoError(t, err)
	assert.EqualValues(t, 6, next)

	next, err = inventory.Apply(3, -3)
	require.NoError(t, err)
	assert.EqualValues(t, 0, next)

	next, err = inventory.Apply(3, -5)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.EqualValues(t, 3, next, "el saldo no cambia cuando se rechaza")
}

func TestApply_RechazaDesbordamiento(t *testing.T) {
	next, err := inventory.Apply(5, math.MaxInt64)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.EqualValues(t, 5, next)

	next, err = inventory.Apply(0, math.MaxInt64)
	require.NoError(t, err)
	assert.EqualValues(t, int64(math.MaxInt64), next)
}

func TestPercentChange(t *testing.T) {
	pct := inventory.PercentChange(decimal.NewFromInt(100), decimal.NewFromInt(125))
	require.NotNil(t, pct)
	assert.True(t, decimal.NewFromInt(25).Equal(*pct))

	pct = inventory.PercentChange(decimal.NewFromInt(30), decimal.NewFromInt(20))
	require.NotNil(t, pct)
	assert.Equal(t, "-33.33", pct.StringFixed(2))

	assert.Nil(t, inventory.PercentChange(decimal.Zero, decimal.NewFromInt(10)),
		"con precio anterior 0 la variación es indefinida")
}

func TestPriceChangeReason(t *testing.T) {
	got := inventory.PriceChangeReason(decimal.RequireFromString("19.9"), decimal.NewFromInt(25), "temporada")
	assert.Equal(t, "Cambio precio: $19.90 → $25.00. temporada", got)

	got = inventory.PriceChangeReason(decimal.Zero, decimal.NewFromInt(5), "")
	assert.Equal(t, "Cambio precio: $0.00 → $5.00.", got)
}

func TestWeightedCost(t *testing.T) {
	// 10 u a $10 + 10 u a $20 = promedio $15
	got := inventory.WeightedCost(10, decimal.NewFromInt(10), 10, decimal.NewFromInt(20))
	assert.True(t, decimal.NewFromInt(15).Equal(got), "got %s", got)

	got = inventory.WeightedCost(0, decimal.Zero, 0, decimal.NewFromInt(20))
	assert.True(t, got.IsZero())
}

func TestStockMovement_Consistent(t *testing.T) {
	m := entity.StockMovement{Type: entity.MovementTransferenciaSalida, Quantity: 4, PreviousStock: 10, NewStock: 6}
	assert.True(t, m.Consistent())
	assert.EqualValues(t, -4, m.SignedQuantity())

	adj := entity.StockMovement{Type: entity.MovementAjuste, Quantity: 0, PreviousStock: 7, NewStock: 7}
	assert.True(t, adj.Consistent())

	bad := entity.StockMovement{Type: entity.MovementEntrada, Quantity: 2, PreviousStock: 1, NewStock: 2}
	assert.False(t, bad.Consistent())
}
