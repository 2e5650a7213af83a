package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
	"github.com/jhoicas/retail-inventario/internal/domain/repository"
)

// StockRepo implementa repository.StoreStockRepository. Con tx != nil lee
// primero lo escrito en la unidad de trabajo y escribe solo en ella.
type StockRepo struct {
	s  *Store
	tx *unitOfWork
}

var _ repository.StoreStockRepository = (*StockRepo)(nil)

func (r *StockRepo) Get(_ context.Context, articleID, storeID string) (*entity.StoreStock, error) {
	k := stockKey{articleID, storeID}
	if r.tx != nil {
		if v, ok := r.tx.stocks[k]; ok {
			return &v, nil
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.stocks[k]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// GetForUpdate equivale a Get: TxRunner ya tiene el lock exclusivo.
func (r *StockRepo) GetForUpdate(ctx context.Context, articleID, storeID string) (*entity.StoreStock, error) {
	return r.Get(ctx, articleID, storeID)
}

func (r *StockRepo) Ensure(ctx context.Context, articleID, storeID string) error {
	cur, err := r.Get(ctx, articleID, storeID)
	if err != nil || cur != nil {
		return err
	}
	r.put(entity.StoreStock{
		ArticleID: articleID,
		StoreID:   storeID,
		SalePrice: decimal.Zero,
		CostPrice: decimal.Zero,
		Active:    true,
		UpdatedAt: r.s.now(),
	})
	return nil
}

func (r *StockRepo) Update(ctx context.Context, st *entity.StoreStock) error {
	cur, err := r.Get(ctx, st.ArticleID, st.StoreID)
	if err != nil {
		return err
	}
	if cur == nil {
		return fmt.Errorf("%w: inventario %s/%s", domain.ErrNotFound, st.ArticleID, st.StoreID)
	}
	if st.Quantity < 0 {
		return fmt.Errorf("%w: stock_actual %d", domain.ErrInvalidQuantity, st.Quantity)
	}
	r.put(*st)
	return nil
}

func (r *StockRepo) put(st entity.StoreStock) {
	k := stockKey{st.ArticleID, st.StoreID}
	if r.tx != nil {
		r.tx.stocks[k] = st
		return
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stocks[k] = st
}

// MovementRepo implementa repository.StockMovementRepository.
type MovementRepo struct {
	s  *Store
	tx *unitOfWork
}

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// Create aplica la unicidad (articulo, tienda, referencia_externa) del índice parcial.
func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	k := stockKey{m.ArticleID, m.StoreID}
	if m.ExternalRef != "" {
		rk := refKey{k, m.ExternalRef}
		r.s.mu.RLock()
		_, dup := r.s.refs[rk]
		r.s.mu.RUnlock()
		if !dup && r.tx != nil {
			_, dup = r.tx.refs[rk]
		}
		if dup {
			return fmt.Errorf("%w: referencia_externa %s ya registrada", domain.ErrConflict, m.ExternalRef)
		}
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Date.IsZero() {
		m.Date = r.s.now()
	}
	if r.tx != nil {
		r.tx.movs = append(r.tx.movs, *m)
		if m.ExternalRef != "" {
			r.tx.refs[refKey{k, m.ExternalRef}] = struct{}{}
		}
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements[k] = append(r.s.movements[k], *m)
	if m.ExternalRef != "" {
		r.s.refs[refKey{k, m.ExternalRef}] = struct{}{}
	}
	return nil
}

// all devuelve los movimientos del par en orden de inserción, incluyendo los de la tx.
func (r *MovementRepo) all(articleID, storeID string) []entity.StockMovement {
	k := stockKey{articleID, storeID}
	r.s.mu.RLock()
	out := make([]entity.StockMovement, len(r.s.movements[k]))
	copy(out, r.s.movements[k])
	r.s.mu.RUnlock()
	if r.tx != nil {
		for _, m := range r.tx.movs {
			if m.ArticleID == articleID && m.StoreID == storeID {
				out = append(out, m)
			}
		}
	}
	return out
}

func (r *MovementRepo) ListByArticleStore(_ context.Context, articleID, storeID string, limit, offset int) ([]*entity.StockMovement, error) {
	all := r.all(articleID, storeID)
	if limit <= 0 {
		limit = len(all)
	}
	if offset < 0 {
		offset = 0
	}
	result := make([]*entity.StockMovement, 0, limit)
	for i := len(all) - 1 - offset; i >= 0 && len(result) < limit; i-- {
		m := all[i]
		result = append(result, &m)
	}
	return result, nil
}

func (r *MovementRepo) Last(_ context.Context, articleID, storeID string) (*entity.StockMovement, error) {
	all := r.all(articleID, storeID)
	if len(all) == 0 {
		return nil, nil
	}
	m := all[len(all)-1]
	return &m, nil
}
