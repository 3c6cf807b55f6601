package kafka

import (
	"FinPay/internal/core/ports"
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher emits payment events to a Kafka topic. It satisfies
// ports.EventPublisher so the service stays broker-agnostic.
type Publisher struct {
	writer *kafka.Writer
	log    zerolog.Logger
}

// NewPublisher creates a publisher writing to the given brokers.
func NewPublisher(brokers []string, baseLogger *zerolog.Logger) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
		log: baseLogger.With().Str("component", "kafka_publisher").Logger(),
	}
}

// Publish marshals the event payload and writes it to the topic.
func (p *Publisher) Publish(ctx context.Context, topic string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		p.log.Error().Err(err).Str("topic", topic).Msg("Failed to marshal event payload")
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: payload,
	})
	if err != nil {
		p.log.Error().Err(err).Str("topic", topic).Msg("Failed to write event to broker")
		return err
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
