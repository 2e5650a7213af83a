package repository

import (
	"context"

	"github.com/jhoicas/retail-inventario/internal/domain/entity"
)

// ArticleRepository define el puerto de persistencia para Article (DIP).
type ArticleRepository interface {
	// Create inserta el artículo. Si el SKU ya existe devuelve domain.ErrDuplicate:
	// la restricción UNIQUE de la BD es el árbitro final de unicidad.
	Create(ctx context.Context, article *entity.Article) error
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
}
