// Package audit entrega los eventos de operaciones del libro de inventario
// a zerolog, Redis pub/sub y Kafka. Las entregas son best-effort.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jhoicas/retail-inventario/internal/application/inventory"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
	"github.com/jhoicas/retail-inventario/pkg/logger"
)

// Encode serializa el evento como JSON (mismo formato en Redis y Kafka).
func Encode(ev entity.LedgerEvent) ([]byte, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encode ledger event: %w", err)
	}
	return b, nil
}

// LogSink escribe cada evento como una línea de log estructurado.
type LogSink struct {
	log *logger.Logger
}

var _ inventory.EventSink = (*LogSink)(nil)

// NewLogSink construye el sink por defecto.
func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Publish(_ context.Context, ev entity.LedgerEvent) error {
	s.log.Info().
		Str("actor", ev.Actor).
		Str("operacion", ev.Operation).
		Int("afectados", ev.Affected).
		Str("motivo", ev.Reason).
		Str("referencia", ev.Reference).
		Str("tienda_id", ev.StoreID).
		Str("articulo_id", ev.ArticleID).
		Time("fecha", ev.At).
		Msg("evento de inventario")
	return nil
}

// MultiSink reparte el evento a todos los sinks y une sus errores.
type MultiSink []inventory.EventSink

var _ inventory.EventSink = MultiSink(nil)

func (m MultiSink) Publish(ctx context.Context, ev entity.LedgerEvent) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
