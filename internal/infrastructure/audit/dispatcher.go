package audit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/retail-inventario/internal/application/inventory"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
	"github.com/jhoicas/retail-inventario/pkg/logger"
)

// ErrDispatcherClosed se devuelve al publicar después de Close.
var ErrDispatcherClosed = errors.New("audit: dispatcher cerrado")

// deliveryTimeout límite de cada entrega al sink de destino.
const deliveryTimeout = 5 * time.Second

// AsyncDispatcher desacopla la entrega del request: Publish encola sin bloquear
// y una goroutine entrega en orden. Con la cola llena el evento se descarta.
type AsyncDispatcher struct {
	next inventory.EventSink
	log  *logger.Logger
	ch   chan entity.LedgerEvent

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	dropped atomic.Int64
}

var _ inventory.EventSink = (*AsyncDispatcher)(nil)

// NewAsyncDispatcher arranca el worker. buffer <= 0 usa 1.
func NewAsyncDispatcher(next inventory.EventSink, buffer int, log *logger.Logger) *AsyncDispatcher {
	if buffer <= 0 {
		buffer = 1
	}
	d := &AsyncDispatcher{
		next: next,
		log:  log,
		ch:   make(chan entity.LedgerEvent, buffer),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Publish encola el evento. No usa ctx: la entrega sobrevive al request.
func (d *AsyncDispatcher) Publish(_ context.Context, ev entity.LedgerEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}
	select {
	case d.ch <- ev:
	default:
		d.dropped.Add(1)
		d.log.Warn().
			Str("operacion", ev.Operation).
			Str("referencia", ev.Reference).
			Msg("cola de eventos llena, evento descartado")
	}
	return nil
}

func (d *AsyncDispatcher) run() {
	defer d.wg.Done()
	for ev := range d.ch {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		if err := d.next.Publish(ctx, ev); err != nil {
			d.log.Warn().Err(err).
				Str("operacion", ev.Operation).
				Str("referencia", ev.Reference).
				Msg("fallo al entregar evento de inventario")
		}
		cancel()
	}
}

// Close deja de aceptar eventos y espera a que se entreguen los encolados o a que ctx venza.
func (d *AsyncDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.ch)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dropped cantidad de eventos descartados por cola llena.
func (d *AsyncDispatcher) Dropped() int64 {
	return d.dropped.Load()
}
