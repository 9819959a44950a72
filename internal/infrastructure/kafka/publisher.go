package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/licoreria-api/internal/application/stock"
	"github.com/jhoicas/licoreria-api/pkg/logger"
)

var _ stock.EventPublisher = (*Publisher)(nil)

// Publisher publica eventos de stock en Kafka como JSON. El tópico va por
// mensaje (un solo writer para todos los tópicos de stock). La clave de
// partición agrupa los eventos de una misma combinación para preservar su
// orden relativo.
type Publisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewPublisher construye el publicador contra los brokers indicados.
func NewPublisher(brokers []string, log *logger.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		BatchSize:    100,
		// La API no debe caerse si el broker no está disponible al arrancar.
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: writer, log: log}
}

// Publish serializa payload como JSON y lo escribe en el tópico. Mejor
// esfuerzo: un fallo se registra y se devuelve, pero el caller nunca revierte
// la mutación ya confirmada en BD.
func (p *Publisher) Publish(ctx context.Context, topic, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		p.log.Error().Err(err).Str("topic", topic).Msg("serializar evento")
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Warn().Err(err).Str("topic", topic).Str("key", key).Msg("publicar evento")
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// Close cierra el writer y libera conexiones.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NopPublisher descarta todos los eventos. Se usa cuando Kafka está
// deshabilitado por configuración.
type NopPublisher struct{}

var _ stock.EventPublisher = (*NopPublisher)(nil)

// Publish descarta el evento.
func (NopPublisher) Publish(ctx context.Context, topic, key string, payload any) error {
	return nil
}

// Close no hace nada.
func (NopPublisher) Close() error { return nil }
