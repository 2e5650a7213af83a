package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-inventario/internal/domain/entity"
	"github.com/jhoicas/retail-inventario/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo resuelve prefijos de SKU desde productos_master, marcas, categorias, tallas y colores.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// GetSKUParts devuelve nil, nil si el producto master o el color no existen.
func (r *CatalogRepo) GetSKUParts(ctx context.Context, productMasterID, colorID string) (*entity.SKUParts, error) {
	query := `
		SELECT c.prefijo_sku, m.prefijo_sku, t.codigo, co.prefijo_sku, pm.nombre, co.nombre
		FROM productos_master pm
		JOIN categorias c ON c.id = pm.categoria_id
		JOIN marcas m ON m.id = pm.marca_id
		JOIN tallas t ON t.id = pm.talla_id
		CROSS JOIN colores co
		WHERE pm.id = $1 AND co.id = $2`
	var p entity.SKUParts
	err := r.q.QueryRow(ctx, query, productMasterID, colorID).Scan(
		&p.CategoryPrefix, &p.BrandPrefix, &p.SizeCode, &p.ColorPrefix, &p.ProductName, &p.ColorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get sku parts", err)
	}
	return &p, nil
}
