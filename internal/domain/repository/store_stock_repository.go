package repository

import (
	"context"

	"github.com/jhoicas/retail-inventario/internal/domain/entity"
)

// StoreStockRepository define el puerto para consultar/actualizar el saldo por artículo+tienda.
// Las mutaciones se usan dentro de transacciones (ver inventory.TxRunner).
type StoreStockRepository interface {
	// Get devuelve nil, nil si no existe la fila.
	Get(ctx context.Context, articleID, storeID string) (*entity.StoreStock, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, articleID, storeID string) (*entity.StoreStock, error)
	// Ensure crea la fila con stock 0 si no existe; no modifica una existente.
	Ensure(ctx context.Context, articleID, storeID string) error
	// Update persiste stock_actual, precio_venta, precio_costo y updated_at.
	Update(ctx context.Context, stock *entity.StoreStock) error
}
