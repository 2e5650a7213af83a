package repository

import (
	"context"

	"github.com/jhoicas/retail-inventario/internal/domain/entity"
)

// CatalogRepository resuelve los prefijos de SKU desde productos_master y colores.
type CatalogRepository interface {
	// GetSKUParts devuelve nil, nil si el producto o el color no existen.
	GetSKUParts(ctx context.Context, productMasterID, colorID string) (*entity.SKUParts, error)
}
