package memory

import (
	"context"

	"github.com/jhoicas/retail-inventario/internal/domain/entity"
	"github.com/jhoicas/retail-inventario/internal/domain/repository"
)

// unitOfWork acumula las escrituras de una transacción; se aplican solo en commit.
type unitOfWork struct {
	stocks map[stockKey]entity.StoreStock
	movs   []entity.StockMovement
	refs   map[refKey]struct{}
}

// TxRunner implementa inventory.TxRunner sobre el Store en memoria.
type TxRunner struct {
	s *Store
}

// Run serializa la unidad de trabajo, pasa repositorios atados a ella y aplica
// las escrituras solo si fn no devuelve error (rollback = descartar).
func (t *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StoreStockRepository,
) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	uow := &unitOfWork{
		stocks: make(map[stockKey]entity.StoreStock),
		refs:   make(map[refKey]struct{}),
	}
	if err := fn(&MovementRepo{s: t.s, tx: uow}, &StockRepo{s: t.s, tx: uow}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for k, v := range uow.stocks {
		t.s.stocks[k] = v
	}
	for _, m := range uow.movs {
		k := stockKey{m.ArticleID, m.StoreID}
		t.s.movements[k] = append(t.s.movements[k], m)
		if m.ExternalRef != "" {
			t.s.refs[refKey{k, m.ExternalRef}] = struct{}{}
		}
	}
	return nil
}
