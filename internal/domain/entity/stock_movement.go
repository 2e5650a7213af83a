package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock (columna tipo_movimiento).
const (
	MovementEntrada              = "ENTRADA"
	MovementSalida               = "SALIDA"
	MovementAjuste               = "AJUSTE"
	MovementTransferenciaSalida  = "TRANSFERENCIA_SALIDA"
	MovementTransferenciaEntrada = "TRANSFERENCIA_ENTRADA"
)

// StockMovement es un registro inmutable del libro de movimientos.
// Quantity es siempre la magnitud; el signo lo determina Type.
// Invariante: NewStock = PreviousStock + SignedQuantity().
type StockMovement struct {
	ID            string
	ArticleID     string
	StoreID       string
	Type          string
	Quantity      int64
	UnitPrice     decimal.Decimal
	PreviousStock int64
	NewStock      int64
	Reason        string
	ExternalRef   string // referencia_externa: correlación / idempotencia
	UserID        string
	Date          time.Time
}

// SignedQuantity devuelve la cantidad con el signo que corresponde a su tipo.
func (m *StockMovement) SignedQuantity() int64 {
	switch m.Type {
	case MovementSalida, MovementTransferenciaSalida:
		return -m.Quantity
	default:
		return m.Quantity
	}
}

// Consistent verifica la invariante stock_nuevo = stock_anterior + signed(cantidad).
func (m *StockMovement) Consistent() bool {
	return m.NewStock == m.PreviousStock+m.SignedQuantity()
}
