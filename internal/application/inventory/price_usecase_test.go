package inventory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventario/internal/application/dto"
	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
)

func TestUpdatePrice_RegistraAjusteEmparejado(t *testing.T) {
	f := newFixture(t)
	f.seed(t, tiendaT1, 8)
	nuevo := decimal.NewFromInt(125)

	out, err := f.price.UpdatePrice(context.Background(), "admin-1", dto.PriceUpdateRequest{
		ArticleID: articuloA, StoreID: tiendaT1, NewPrice: &nuevo, Reason: "temporada",
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(out.PreviousPrice))
	assert.True(t, nuevo.Equal(out.NewPrice))
	require.NotNil(t, out.PercentChange)
	assert.Equal(t, "25.00", out.PercentChange.StringFixed(2))

	b, err := f.ledger.GetBalance(context.Background(), articuloA, tiendaT1)
	require.NoError(t, err)
	assert.True(t, nuevo.Equal(b.SalePrice))
	assert.EqualValues(t, 8, b.Quantity, "el cambio de precio no mueve stock")

	movs := f.movements(t, tiendaT1)
	require.Len(t, movs, 1)
	m := movs[0]
	assert.Equal(t, entity.MovementAjuste, m.Type)
	assert.EqualValues(t, 0, m.Quantity)
	assert.EqualValues(t, 8, m.PreviousStock)
	assert.EqualValues(t, 8, m.NewStock)
	assert.True(t, nuevo.Equal(m.UnitPrice))
	assert.Equal(t, "Cambio precio: $100.00 → $125.00. temporada", m.Reason)
	assert.True(t, strings.HasPrefix(m.ExternalRef, "PRICE-"))

	v, err := f.ledger.VerifyBalance(context.Background(), articuloA, tiendaT1)
	require.NoError(t, err)
	assert.True(t, v.Consistent)
}

func TestUpdatePrice_PrecioAnteriorCeroSinPorcentaje(t *testing.T) {
	f := newFixture(t)
	f.store.PutStock(entity.StoreStock{ArticleID: articuloA, StoreID: tiendaT1, Active: true})
	nuevo := decimal.NewFromInt(10)

	out, err := f.price.UpdatePrice(context.Background(), "admin-1", dto.PriceUpdateRequest{
		ArticleID: articuloA, StoreID: tiendaT1, NewPrice: &nuevo,
	})
	require.NoError(t, err)
	assert.Nil(t, out.PercentChange)
}

func TestUpdatePrice_RedondeaADosDecimales(t *testing.T) {
	f := newFixture(t)
	f.seed(t, tiendaT1, 8)
	nuevo := decimal.RequireFromString("10.005")

	out, err := f.price.UpdatePrice(context.Background(), "admin-1", dto.PriceUpdateRequest{
		ArticleID: articuloA, StoreID: tiendaT1, NewPrice: &nuevo,
	})
	require.NoError(t, err)
	assert.Equal(t, "10.01", out.NewPrice.String())
	require.NotNil(t, out.PercentChange)
	assert.Equal(t, "-89.99", out.PercentChange.StringFixed(2))

	b, err := f.ledger.GetBalance(context.Background(), articuloA, tiendaT1)
	require.NoError(t, err)
	assert.True(t, out.NewPrice.Equal(b.SalePrice), "la lectura coincide con la respuesta")
	assert.Equal(t, "10.01", f.movements(t, tiendaT1)[0].UnitPrice.String())
}

func TestUpdatePrice_Errores(t *testing.T) {
	f := newFixture(t)
	f.seed(t, tiendaT1, 1)
	negativo := decimal.NewFromInt(-5)
	ok := decimal.NewFromInt(5)

	_, err := f.price.UpdatePrice(context.Background(), "admin-1", dto.PriceUpdateRequest{ArticleID: articuloA, StoreID: tiendaT1, NewPrice: &negativo})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = f.price.UpdatePrice(context.Background(), "admin-1", dto.PriceUpdateRequest{ArticleID: articuloA, StoreID: tiendaT1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.price.UpdatePrice(context.Background(), "admin-1", dto.PriceUpdateRequest{ArticleID: articuloA, StoreID: tiendaT2, NewPrice: &ok})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, f.movements(t, tiendaT1))
	assert.Empty(t, f.sink.all())
}
