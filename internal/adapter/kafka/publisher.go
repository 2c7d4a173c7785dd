// Package kafka publishes severe-weather route alerts to a Kafka topic
// for downstream dispatch and notification systems.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/sykeriin/aerobrief/internal/config"
	"github.com/sykeriin/aerobrief/internal/domain"
)

// Publisher produces route alerts to the configured alerts topic.
// It implements briefing.AlertPublisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the alerts topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAlertsTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishAlerts serializes and publishes the alerts in a single
// WriteMessages call. Alerts for the same station key to the same
// partition, preserving per-station ordering.
func (p *Publisher) PublishAlerts(ctx context.Context, alerts []domain.RouteAlert) error {
	if len(alerts) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(alerts))
	for i := range alerts {
		msg, err := serializeAlert(alerts[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish route alerts: %w", err)
	}
	p.logger.Info("route alerts published", "count", len(alerts), "topic", p.writer.Topic)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeAlert marshals a RouteAlert into a Kafka message.
func serializeAlert(alert domain.RouteAlert) (kafkago.Message, error) {
	data, err := json.Marshal(alert)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize route alert: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(alert.ICAO),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "severity", Value: []byte(alert.Severity)},
			{Key: "published_at", Value: []byte(alert.PublishedAt.Format(time.RFC3339))},
		},
	}, nil
}
