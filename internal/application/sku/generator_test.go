package sku_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventario/internal/application/dto"
	"github.com/jhoicas/retail-inventario/internal/application/sku"
	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
	"github.com/jhoicas/retail-inventario/internal/infrastructure/memory"
)

func prefijos() sku.Request {
	return sku.Request{GenerateSKURequest: dto.GenerateSKURequest{
		CategoryPrefix: "ROP", BrandPrefix: "NIK", SizeCode: "M", ColorPrefix: "AZU",
	}}
}

func ocupar(t *testing.T, st *memory.Store, codes ...string) {
	t.Helper()
	for _, c := range codes {
		require.NoError(t, st.Articles().Create(context.Background(), &entity.Article{SKU: c}))
	}
}

func TestGenerate_SecuenciaDeColisiones(t *testing.T) {
	st := memory.New()
	gen := sku.NewGenerator(st.Articles(), st.Catalog())

	res, err := gen.Generate(context.Background(), prefijos())
	require.NoError(t, err)
	assert.Equal(t, "ROP-NIK-M-AZU", res.SKU)
	assert.True(t, res.IsUnique)
	assert.Equal(t, 1, res.Attempts)

	ocupar(t, st, "ROP-NIK-M-AZU")
	res, err = gen.Generate(context.Background(), prefijos())
	require.NoError(t, err)
	assert.Equal(t, "ROP-NIK-M-AZU-02", res.SKU)

	ocupar(t, st, "ROP-NIK-M-AZU-02")
	res, err = gen.Generate(context.Background(), prefijos())
	require.NoError(t, err)
	assert.Equal(t, "ROP-NIK-M-AZU-03", res.SKU)
	assert.Equal(t, 3, res.Attempts)
}

func TestGenerate_SufijoPersonalizadoEmpiezaEn01(t *testing.T) {
	st := memory.New()
	gen := sku.NewGenerator(st.Articles(), nil)
	req := prefijos()
	req.CustomSuffix = "lim"

	ocupar(t, st, "ROP-NIK-M-AZU-LIM")
	res, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ROP-NIK-M-AZU-LIM-01", res.SKU)
}

func TestGenerate_FallbackPorTiempo(t *testing.T) {
	st := memory.New()
	codes := []string{"ROP-NIK-M-AZU"}
	for n := 2; n <= 99; n++ {
		codes = append(codes, fmt.Sprintf("ROP-NIK-M-AZU-%02d", n))
	}
	ocupar(t, st, codes...)

	gen := sku.NewGenerator(st.Articles(), nil).
		WithClock(func() time.Time { return time.UnixMilli(1718000004321) })
	res, err := gen.Generate(context.Background(), prefijos())
	require.NoError(t, err)
	assert.Equal(t, "ROP-NIK-M-AZU-4321", res.SKU)
	assert.True(t, res.IsUnique)
	assert.Equal(t, 100, res.Attempts)

	ocupar(t, st, "ROP-NIK-M-AZU-4321")
	res, err = gen.Generate(context.Background(), prefijos())
	require.NoError(t, err)
	assert.Equal(t, "ROP-NIK-M-AZU-4321", res.SKU, "no sigue sondeando después del fallback")
	assert.False(t, res.IsUnique)
}

func TestGenerate_SemillaSaltaCandidatos(t *testing.T) {
	st := memory.New()
	gen := sku.NewGenerator(st.Articles(), nil)
	req := prefijos()
	req.Seed = 2

	res, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ROP-NIK-M-AZU-03", res.SKU)
	assert.Equal(t, 3, res.NextSeed)
}

func TestGenerate_DesdeCatalogo(t *testing.T) {
	st := memory.New()
	st.AddCatalogEntry("pm-1", "col-1", entity.SKUParts{
		CategoryPrefix: "CAM", BrandPrefix: "ADI", SizeCode: "XL", ColorPrefix: "ROJ",
		ProductName: "Camiseta Running", ColorName: "rojo",
	})
	gen := sku.NewGenerator(st.Articles(), st.Catalog())

	res, err := gen.Generate(context.Background(), sku.Request{GenerateSKURequest: dto.GenerateSKURequest{
		ProductMasterID: "pm-1", ColorID: "col-1",
	}})
	require.NoError(t, err)
	assert.Equal(t, "CAM-ADI-XL-ROJ", res.SKU)
	assert.Equal(t, "Camiseta Running ROJO", res.FullName)

	_, err = gen.Generate(context.Background(), sku.Request{GenerateSKURequest: dto.GenerateSKURequest{
		ProductMasterID: "pm-1", ColorID: "col-x",
	}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = gen.Generate(context.Background(), sku.Request{GenerateSKURequest: dto.GenerateSKURequest{
		ProductMasterID: "pm-1",
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerate_PrefijoFaltante(t *testing.T) {
	st := memory.New()
	gen := sku.NewGenerator(st.Articles(), nil)
	req := prefijos()
	req.ColorPrefix = ""

	_, err := gen.Generate(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClaim_DuplicadoPideReintento(t *testing.T) {
	st := memory.New()
	gen := sku.NewGenerator(st.Articles(), nil)

	// otro proceso inserta el mismo SKU entre el sondeo y el insert
	insert := func(ctx context.Context, res *sku.Result) error {
		ocupar(t, st, res.SKU)
		return st.Articles().Create(ctx, &entity.Article{SKU: res.SKU})
	}
	claim, res, err := gen.Claim(context.Background(), prefijos(), insert)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.False(t, claim.Committed)
	assert.True(t, claim.Retry)
	assert.Equal(t, "ROP-NIK-M-AZU", claim.SKU)
	assert.Equal(t, 1, claim.NextSeed)

	req := prefijos()
	req.Seed = claim.NextSeed
	claim, _, err = gen.Claim(context.Background(), req, func(ctx context.Context, res *sku.Result) error {
		return st.Articles().Create(ctx, &entity.Article{SKU: res.SKU})
	})
	require.NoError(t, err)
	assert.True(t, claim.Committed)
	assert.Equal(t, "ROP-NIK-M-AZU-02", claim.SKU)
}
