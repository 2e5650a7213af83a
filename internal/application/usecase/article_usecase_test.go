package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventario/internal/application/dto"
	"github.com/jhoicas/retail-inventario/internal/application/sku"
	"github.com/jhoicas/retail-inventario/internal/application/usecase"
	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
	"github.com/jhoicas/retail-inventario/internal/domain/repository"
	"github.com/jhoicas/retail-inventario/internal/infrastructure/memory"
	"github.com/jhoicas/retail-inventario/pkg/logger"
)

// racingRepo simula a otro proceso que inserta el mismo SKU justo antes
// de cada uno de los primeros `races` inserts.
type racingRepo struct {
	repository.ArticleRepository
	races int
}

func (r *racingRepo) Create(ctx context.Context, a *entity.Article) error {
	if r.races > 0 {
		r.races--
		if err := r.ArticleRepository.Create(ctx, &entity.Article{SKU: a.SKU}); err != nil {
			return err
		}
	}
	return r.ArticleRepository.Create(ctx, a)
}

func createRequest() dto.CreateArticleRequest {
	return dto.CreateArticleRequest{
		GenerateSKURequest: dto.GenerateSKURequest{
			CategoryPrefix: "ROP", BrandPrefix: "NIK", SizeCode: "M", ColorPrefix: "AZU",
		},
		Name: "Camiseta",
	}
}

func TestArticleCreate_ReintentaTrasCarrera(t *testing.T) {
	st := memory.New()
	repo := &racingRepo{ArticleRepository: st.Articles(), races: 2}
	uc := usecase.NewArticleUseCase(repo, sku.NewGenerator(repo, nil), nil, logger.Nop(), 5)

	out, err := uc.Create(context.Background(), "admin-1", createRequest())
	require.NoError(t, err)
	assert.Equal(t, "ROP-NIK-M-AZU-03", out.SKU)
	assert.Equal(t, 3, out.ClaimAttempts)
	assert.True(t, out.Active)

	got, err := uc.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.SKU, got.SKU)
}

func TestArticleCreate_AgotaReintentos(t *testing.T) {
	st := memory.New()
	repo := &racingRepo{ArticleRepository: st.Articles(), races: 10}
	uc := usecase.NewArticleUseCase(repo, sku.NewGenerator(repo, nil), nil, logger.Nop(), 3)

	_, err := uc.Create(context.Background(), "admin-1", createRequest())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestArticleCreate_ConcurrenteSkusDistintos(t *testing.T) {
	st := memory.New()
	uc := usecase.NewArticleUseCase(st.Articles(), sku.NewGenerator(st.Articles(), nil), nil, logger.Nop(), 20)

	const n = 10
	var wg sync.WaitGroup
	skus := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := uc.Create(context.Background(), "admin-1", createRequest())
			if assert.NoError(t, err) {
				skus <- out.SKU
			}
		}()
	}
	wg.Wait()
	close(skus)

	seen := map[string]bool{}
	for s := range skus {
		assert.False(t, seen[s], "sku repetido %s", s)
		seen[s] = true
	}
	assert.Len(t, seen, n)
}

func TestArticleGetByID_NoExiste(t *testing.T) {
	st := memory.New()
	uc := usecase.NewArticleUseCase(st.Articles(), sku.NewGenerator(st.Articles(), nil), nil, logger.Nop(), 0)

	_, err := uc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerateSKU_NoReserva(t *testing.T) {
	st := memory.New()
	uc := usecase.NewArticleUseCase(st.Articles(), sku.NewGenerator(st.Articles(), nil), nil, logger.Nop(), 0)

	a, err := uc.GenerateSKU(context.Background(), createRequest().GenerateSKURequest)
	require.NoError(t, err)
	b, err := uc.GenerateSKU(context.Background(), createRequest().GenerateSKURequest)
	require.NoError(t, err)
	assert.Equal(t, a.SKU, b.SKU)
	assert.True(t, b.IsUnique)
}
