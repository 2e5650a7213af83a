package memory

import (
	"context"

	"github.com/jhoicas/retail-inventario/internal/domain/entity"
	"github.com/jhoicas/retail-inventario/internal/domain/repository"
)

// StoreRepo implementa repository.StoreRepository.
type StoreRepo struct {
	s *Store
}

var _ repository.StoreRepository = (*StoreRepo)(nil)

func (r *StoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.stores[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

// CatalogRepo implementa repository.CatalogRepository.
type CatalogRepo struct {
	s *Store
}

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

func (r *CatalogRepo) GetSKUParts(_ context.Context, productMasterID, colorID string) (*entity.SKUParts, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.catalog[catalogKey{productMasterID, colorID}]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// ReplenishmentRepo implementa repository.ReplenishmentRepository sobre los saldos confirmados.
type ReplenishmentRepo struct {
	s *Store
}

var _ repository.ReplenishmentRepository = (*ReplenishmentRepo)(nil)

func (r *ReplenishmentRepo) ListBelowMinimum(_ context.Context, storeID string) ([]repository.ReplenishmentItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []repository.ReplenishmentItem
	for k, st := range r.s.stocks {
		if k.StoreID != storeID || !st.Active || st.MinStock <= 0 || st.Quantity > st.MinStock {
			continue
		}
		a := r.s.articles[k.ArticleID]
		out = append(out, repository.ReplenishmentItem{
			ArticleID: k.ArticleID,
			SKU:       a.SKU,
			Name:      a.Name,
			Quantity:  st.Quantity,
			MinStock:  st.MinStock,
			CostPrice: st.CostPrice,
			SalePrice: st.SalePrice,
		})
	}
	return out, nil
}
