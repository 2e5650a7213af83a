package audit

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/retail-inventario/internal/application/inventory"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
)

// MessageWriter es la parte de *kafka.Writer que usa el sink.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink escribe los eventos en un tópico. La clave es el artículo (o la
// tienda en operaciones masivas) para conservar el orden por partición.
type KafkaSink struct {
	writer MessageWriter
}

var _ inventory.EventSink = (*KafkaSink)(nil)

// NewKafkaSink crea un writer hacia brokers/topic.
func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return NewKafkaSinkWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	})
}

// NewKafkaSinkWithWriter permite inyectar el writer.
func NewKafkaSinkWithWriter(w MessageWriter) *KafkaSink {
	return &KafkaSink{writer: w}
}

func (s *KafkaSink) Publish(ctx context.Context, ev entity.LedgerEvent) error {
	payload, err := Encode(ev)
	if err != nil {
		return err
	}
	key := ev.ArticleID
	if key == "" {
		key = ev.StoreID
	}
	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Time:  ev.At,
		Headers: []kafka.Header{
			{Key: "operacion", Value: []byte(ev.Operation)},
		},
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

// Close vacía y cierra el writer.
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
