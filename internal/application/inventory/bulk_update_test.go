package inventory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventario/internal/application/dto"
	"github.com/jhoicas/retail-inventario/internal/application/inventory"
	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
)

func TestBulkApply_AislaErroresPorItem(t *testing.T) {
	f := newFixture(t)
	f.seed(t, tiendaT1, 10)
	require.NoError(t, f.store.Articles().Create(context.Background(), &entity.Article{ID: "art-b", SKU: "ROP-NIK-L-AZU", Active: true}))
	precio := decimal.NewFromInt(50)

	out, err := f.ledger.BulkApply(context.Background(), "user-1", dto.BulkRequest{
		StoreID: tiendaT1,
		Items: []dto.BulkItem{
			{ArticleID: articuloA, Quantity: -3},
			{ArticleID: "no-existe", Quantity: 1},
			{ArticleID: articuloA, Quantity: -100},
			{ArticleID: "art-b", Quantity: 6, Price: &precio},
		},
	})
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, 2, out.Updated)
	assert.Equal(t, 2, out.Failed)
	assert.Equal(t, []string{articuloA, "art-b"}, out.Results)
	require.Len(t, out.Errors, 2)
	assert.Equal(t, "no-existe", out.Errors[0].ArticleID)
	assert.Equal(t, domain.CodeNotFound, out.Errors[0].Code)
	assert.Equal(t, articuloA, out.Errors[1].ArticleID)
	assert.Equal(t, domain.CodeInvalidQuantity, out.Errors[1].Code)

	assert.EqualValues(t, 7, f.balance(t, tiendaT1))
	movs := f.movements(t, tiendaT1)
	require.Len(t, movs, 1)
	assert.Equal(t, inventory.ReasonBulk, movs[0].Reason)
	assert.True(t, strings.HasPrefix(movs[0].ExternalRef, "BULK-"))

	events := f.sink.all()
	require.Len(t, events, 1)
	assert.Equal(t, entity.OperationBulkUpdate, events[0].Operation)
	assert.Equal(t, 2, events[0].Affected)
}

func TestBulkApply_TodoOk(t *testing.T) {
	f := newFixture(t)
	f.seed(t, tiendaT1, 1)

	out, err := f.ledger.BulkApply(context.Background(), "user-1", dto.BulkRequest{
		StoreID: tiendaT1,
		Items:   []dto.BulkItem{{ArticleID: articuloA, Quantity: 2}, {ArticleID: articuloA, Quantity: 3}},
		Reason:  "Conteo físico",
	})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 2, out.Updated)
	assert.Empty(t, out.Errors)
	assert.EqualValues(t, 6, f.balance(t, tiendaT1))

	movs := f.movements(t, tiendaT1)
	require.Len(t, movs, 2)
	assert.NotEqual(t, movs[0].ExternalRef, movs[1].ExternalRef)
	assert.Equal(t, "Conteo físico", movs[0].Reason)
}

func TestBulkApply_SolicitudInvalida(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.BulkApply(context.Background(), "user-1", dto.BulkRequest{Items: []dto.BulkItem{{ArticleID: articuloA, Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.ledger.BulkApply(context.Background(), "user-1", dto.BulkRequest{StoreID: tiendaT1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.sink.all())
}
