package postgres

import (
	"context"

	"github.com/jhoicas/retail-inventario/internal/domain/repository"
)

var _ repository.ReplenishmentRepository = (*ReplenishmentRepo)(nil)

// ReplenishmentRepo consultas de solo lectura para la lista de reposición.
type ReplenishmentRepo struct {
	q Querier
}

// NewReplenishmentRepository construye el adaptador de reposición.
func NewReplenishmentRepository(q Querier) *ReplenishmentRepo {
	return &ReplenishmentRepo{q: q}
}

// ListBelowMinimum saldos activos con stock_actual <= stock_minimo, mayor déficit primero.
func (r *ReplenishmentRepo) ListBelowMinimum(ctx context.Context, storeID string) ([]repository.ReplenishmentItem, error) {
	const query = `
	SELECT
	    it.articulo_id,
	    a.sku,
	    a.nombre,
	    it.stock_actual,
	    it.stock_minimo,
	    it.precio_costo,
	    it.precio_venta
	FROM inventario_tienda it
	JOIN articulos a ON a.id = it.articulo_id
	WHERE it.tienda_id = $1
	  AND it.activo
	  AND it.stock_minimo > 0
	  AND it.stock_actual <= it.stock_minimo
	ORDER BY (it.stock_minimo - it.stock_actual) DESC, a.sku`

	rows, err := r.q.Query(ctx, query, storeID)
	if err != nil {
		return nil, classify("list below minimum", err)
	}
	defer rows.Close()

	var out []repository.ReplenishmentItem
	for rows.Next() {
		var it repository.ReplenishmentItem
		if err := rows.Scan(&it.ArticleID, &it.SKU, &it.Name, &it.Quantity, &it.MinStock, &it.CostPrice, &it.SalePrice); err != nil {
			return nil, classify("scan replenishment item", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list below minimum", err)
	}
	return out, nil
}
