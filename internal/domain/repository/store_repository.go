package repository

import (
	"context"

	"github.com/jhoicas/retail-inventario/internal/domain/entity"
)

// StoreRepository define el puerto de lectura de tiendas.
type StoreRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Store, error)
}
