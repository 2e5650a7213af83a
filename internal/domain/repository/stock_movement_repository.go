package repository

import (
	"context"

	"github.com/jhoicas/retail-inventario/internal/domain/entity"
)

// StockMovementRepository es el libro append-only de movimientos (movimientos_stock).
type StockMovementRepository interface {
	// Create agrega un registro. Una referencia_externa repetida para el mismo
	// artículo y tienda devuelve domain.ErrConflict.
	Create(ctx context.Context, m *entity.StockMovement) error
	// ListByArticleStore devuelve los movimientos más recientes primero.
	ListByArticleStore(ctx context.Context, articleID, storeID string, limit, offset int) ([]*entity.StockMovement, error)
	// Last devuelve el último movimiento o nil, nil si no hay ninguno.
	Last(ctx context.Context, articleID, storeID string) (*entity.StockMovement, error)
}
