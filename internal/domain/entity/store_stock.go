package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreStock es el saldo actual de un artículo en una tienda (tabla inventario_tienda).
// Solo lo modifican el motor de inventario y la actualización de precios; se deriva de movimientos_stock.
type StoreStock struct {
	ArticleID string
	StoreID   string
	Quantity  int64           // stock_actual, nunca negativo
	MinStock  int64           // stock_minimo (punto de reorden)
	SalePrice decimal.Decimal // precio_venta
	CostPrice decimal.Decimal // precio_costo (promedio ponderado)
	Active    bool
	UpdatedAt time.Time
}

// NeedsRestock indica si el saldo está en o por debajo del punto de reorden.
func (s *StoreStock) NeedsRestock() bool {
	return s.Quantity <= s.MinStock
}
