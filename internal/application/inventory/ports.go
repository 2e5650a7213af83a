package inventory

import (
	"context"

	"github.com/jhoicas/retail-inventario/internal/domain/entity"
	"github.com/jhoicas/retail-inventario/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback de todo; si no, commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StoreStockRepository,
	) error) error
}

// EventSink recibe los eventos de operaciones confirmadas (auditoría/notificación).
// Un error del sink nunca revierte la operación.
type EventSink interface {
	Publish(ctx context.Context, ev entity.LedgerEvent) error
}
