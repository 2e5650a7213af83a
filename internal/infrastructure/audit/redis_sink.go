package audit

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/retail-inventario/internal/application/inventory"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
)

// RedisSink publica los eventos en un canal pub/sub.
type RedisSink struct {
	client  *redis.Client
	channel string
}

var _ inventory.EventSink = (*RedisSink)(nil)

// NewRedisSink crea el cliente. No verifica la conexión: un Redis caído solo
// produce advertencias en el dispatcher.
func NewRedisSink(addr, channel string) *RedisSink {
	return &RedisSink{
		client:  redis.NewClient(&redis.Options{Addr: addr}),
		channel: channel,
	}
}

// Ping verifica la conexión al arrancar.
func (s *RedisSink) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisSink) Publish(ctx context.Context, ev entity.LedgerEvent) error {
	payload, err := Encode(ev)
	if err != nil {
		return err
	}
	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", s.channel, err)
	}
	return nil
}

// Close libera el pool de conexiones.
func (s *RedisSink) Close() error {
	return s.client.Close()
}
