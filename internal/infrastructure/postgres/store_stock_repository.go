package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
	"github.com/jhoicas/retail-inventario/internal/domain/repository"
)

var _ repository.StoreStockRepository = (*StoreStockRepo)(nil)

// StoreStockRepo saldos de inventario_tienda (usable con pool o tx).
type StoreStockRepo struct {
	q Querier
}

// NewStoreStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStoreStockRepository(q Querier) *StoreStockRepo {
	return &StoreStockRepo{q: q}
}

const selectStock = `
	SELECT articulo_id, tienda_id, stock_actual, stock_minimo, precio_venta, precio_costo, activo, updated_at
	FROM inventario_tienda WHERE articulo_id = $1 AND tienda_id = $2`

// Get obtiene el saldo actual; nil, nil si no existe la fila.
func (r *StoreStockRepo) Get(ctx context.Context, articleID, storeID string) (*entity.StoreStock, error) {
	return r.scan(ctx, "get stock", selectStock, articleID, storeID)
}

// GetForUpdate obtiene el saldo y bloquea la fila hasta el fin de la tx (SELECT FOR UPDATE).
func (r *StoreStockRepo) GetForUpdate(ctx context.Context, articleID, storeID string) (*entity.StoreStock, error) {
	return r.scan(ctx, "get stock for update", selectStock+" FOR UPDATE", articleID, storeID)
}

func (r *StoreStockRepo) scan(ctx context.Context, op, query, articleID, storeID string) (*entity.StoreStock, error) {
	var s entity.StoreStock
	err := r.q.QueryRow(ctx, query, articleID, storeID).Scan(
		&s.ArticleID, &s.StoreID, &s.Quantity, &s.MinStock, &s.SalePrice, &s.CostPrice, &s.Active, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify(op, err)
	}
	return &s, nil
}

// Ensure crea la fila en 0 si no existe. Dos transacciones que crean la misma
// fila a la vez quedan serializadas por el índice de la PK.
func (r *StoreStockRepo) Ensure(ctx context.Context, articleID, storeID string) error {
	query := `
		INSERT INTO inventario_tienda (articulo_id, tienda_id)
		VALUES ($1, $2)
		ON CONFLICT (articulo_id, tienda_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, query, articleID, storeID); err != nil {
		return classify("ensure stock", err)
	}
	return nil
}

// Update persiste cantidad, precios y updated_at.
func (r *StoreStockRepo) Update(ctx context.Context, s *entity.StoreStock) error {
	query := `
		UPDATE inventario_tienda
		SET stock_actual = $3, precio_venta = $4, precio_costo = $5, updated_at = $6
		WHERE articulo_id = $1 AND tienda_id = $2`
	tag, err := r.q.Exec(ctx, query, s.ArticleID, s.StoreID, s.Quantity, s.SalePrice, s.CostPrice, s.UpdatedAt)
	if err != nil {
		return classify("update stock", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: inventario %s/%s", domain.ErrNotFound, s.ArticleID, s.StoreID)
	}
	return nil
}
