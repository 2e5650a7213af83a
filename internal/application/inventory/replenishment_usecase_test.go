package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventario/internal/application/inventory"
	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
)

func TestReplenishment_OrdenaPorMargenYSugiereCantidad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, tiendaT1, 1) // mínimo 2, venta 100, costo 60

	require.NoError(t, f.store.Articles().Create(ctx, &entity.Article{ID: "art-b", SKU: "CAL-ADI-42-NEG", Name: "Tenis", Active: true}))
	require.NoError(t, f.store.Articles().Create(ctx, &entity.Article{ID: "art-c", SKU: "ROP-NIK-L-AZU", Name: "Buzo", Active: true}))
	require.NoError(t, f.store.Articles().Create(ctx, &entity.Article{ID: "art-d", SKU: "ROP-NIK-S-AZU", Name: "Polo", Active: true}))
	f.store.PutStock(entity.StoreStock{ArticleID: "art-b", StoreID: tiendaT1, Quantity: 4, MinStock: 4,
		SalePrice: decimal.NewFromInt(50), CostPrice: decimal.NewFromInt(40), Active: true})
	f.store.PutStock(entity.StoreStock{ArticleID: "art-c", StoreID: tiendaT1, Quantity: 10, MinStock: 2, Active: true})
	f.store.PutStock(entity.StoreStock{ArticleID: "art-d", StoreID: tiendaT1, Quantity: 0, MinStock: 0, Active: true})

	uc := inventory.NewReplenishmentUseCase(f.store.Replenishment(), f.store.Stores())
	list, err := uc.GenerateReplenishmentList(ctx, tiendaT1)
	require.NoError(t, err)
	require.Len(t, list, 2)

	first := list[0]
	assert.Equal(t, articuloA, first.ArticleID)
	assert.Equal(t, 1, first.Priority)
	assert.EqualValues(t, 3, first.IdealStock)
	assert.EqualValues(t, 2, first.SuggestedQty)
	assert.True(t, first.EstimatedCost.Equal(decimal.NewFromInt(120)))
	assert.True(t, first.MarginPct.Equal(decimal.NewFromInt(40)))

	second := list[1]
	assert.Equal(t, "art-b", second.ArticleID)
	assert.EqualValues(t, 6, second.IdealStock)
	assert.EqualValues(t, 2, second.SuggestedQty)
	assert.True(t, second.MarginPct.Equal(decimal.NewFromInt(20)))
}

func TestReplenishment_TiendaInexistente(t *testing.T) {
	f := newFixture(t)
	uc := inventory.NewReplenishmentUseCase(f.store.Replenishment(), f.store.Stores())

	_, err := uc.GenerateReplenishmentList(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GenerateReplenishmentList(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReplenishment_SinFaltantesDevuelveListaVacia(t *testing.T) {
	f := newFixture(t)
	f.seed(t, tiendaT1, 10)
	uc := inventory.NewReplenishmentUseCase(f.store.Replenishment(), f.store.Stores())

	list, err := uc.GenerateReplenishmentList(context.Background(), tiendaT1)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}
