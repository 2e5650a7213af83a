package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
	"github.com/jhoicas/retail-inventario/internal/domain/repository"
)

// ArticleRepo implementa repository.ArticleRepository.
type ArticleRepo struct {
	s *Store
}

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// Create aplica la unicidad de SKU igual que el índice UNIQUE de articulos.
func (r *ArticleRepo) Create(_ context.Context, a *entity.Article) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.skus[a.SKU]; taken {
		return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, a.SKU)
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = r.s.now()
	}
	r.s.articles[a.ID] = *a
	r.s.skus[a.SKU] = a.ID
	return nil
}

func (r *ArticleRepo) GetByID(_ context.Context, id string) (*entity.Article, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.articles[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *ArticleRepo) ExistsBySKU(_ context.Context, sku string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.skus[sku]
	return ok, nil
}
