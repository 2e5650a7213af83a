package inventory

import (
	"context"

	"github.com/jhoicas/retail-inventario/internal/domain/entity"
	"github.com/jhoicas/retail-inventario/pkg/logger"
)

type emitter struct {
	sink EventSink
	log  *logger.Logger
}

// emit publica el evento después del commit; los errores solo se registran.
func (e emitter) emit(ctx context.Context, ev entity.LedgerEvent) {
	if e.sink == nil {
		return
	}
	if err := e.sink.Publish(ctx, ev); err != nil {
		e.log.Warn().Err(err).
			Str("operacion", ev.Operation).
			Str("referencia", ev.Reference).
			Msg("no se pudo publicar el evento de inventario")
	}
}
