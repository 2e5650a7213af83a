package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ReplenishmentItem saldo de un artículo en o bajo su stock mínimo.
type ReplenishmentItem struct {
	ArticleID string
	SKU       string
	Name      string
	Quantity  int64
	MinStock  int64
	CostPrice decimal.Decimal
	SalePrice decimal.Decimal
}

// ReplenishmentRepository consulta los saldos que requieren reposición (solo lectura).
type ReplenishmentRepository interface {
	// ListBelowMinimum devuelve los saldos activos de la tienda con stock_minimo > 0
	// y stock_actual <= stock_minimo.
	ListBelowMinimum(ctx context.Context, storeID string) ([]ReplenishmentItem, error)
}
