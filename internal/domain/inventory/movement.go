package inventory

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
)

// TypeForDelta devuelve ENTRADA para deltas positivos y SALIDA para negativos.
// Un delta cero no es un movimiento válido.
func TypeForDelta(delta int64) (string, error) {
	switch {
	case delta > 0:
		return entity.MovementEntrada, nil
	case delta < 0:
		return entity.MovementSalida, nil
	}
	return "", fmt.Errorf("%w: la cantidad no puede ser cero", domain.ErrInvalidInput)
}

// Apply calcula el nuevo saldo para un delta con signo.
// Devuelve ErrInvalidQuantity si el saldo resultante sería negativo
// y ErrInvalidInput si excede el rango de int64.
func Apply(current, delta int64) (int64, error) {
	if delta > 0 && current > math.MaxInt64-delta {
		return current, fmt.Errorf("%w: stock actual %d más %d excede el máximo permitido", domain.ErrInvalidInput, current, delta)
	}
	next := current + delta
	if next < 0 {
		return current, fmt.Errorf("%w: stock actual %d, cantidad %d", domain.ErrInvalidQuantity, current, delta)
	}
	return next, nil
}

// Abs devuelve la magnitud de una cantidad.
func Abs(q int64) int64 {
	if q < 0 {
		return -q
	}
	return q
}

var hundred = decimal.NewFromInt(100)

// PercentChange = (nuevo - anterior) / anterior * 100, redondeado a 2 decimales.
// Devuelve nil cuando el precio anterior es cero (variación indefinida).
func PercentChange(previous, next decimal.Decimal) *decimal.Decimal {
	if previous.IsZero() {
		return nil
	}
	pct := next.Sub(previous).Div(previous).Mul(hundred).Round(2)
	return &pct
}

// PriceChangeReason arma el motivo auditable de un cambio de precio.
func PriceChangeReason(previous, next decimal.Decimal, reason string) string {
	return strings.TrimSpace(fmt.Sprintf("Cambio precio: $%s → $%s. %s",
		previous.StringFixed(2), next.StringFixed(2), strings.TrimSpace(reason)))
}
