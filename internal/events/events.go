// Package events publishes order notifications to a message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	otelkafka "github.com/Trendyol/otel-kafka-konsumer"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/F-Fleron-G/bestbuy2/internal/config"
	"github.com/F-Fleron-G/bestbuy2/internal/store"
)

// OrderPlaced is emitted once per committed order.
type OrderPlaced struct {
	OrderID  string          `json:"order_id"`
	Lines    []OrderLine     `json:"lines"`
	Total    decimal.Decimal `json:"total"`
	PlacedAt time.Time       `json:"placed_at"`
}

// OrderLine is one charged line of an OrderPlaced event.
type OrderLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
	Promotion string          `json:"promotion,omitempty"`
}

// FromReceipt builds the event for a committed receipt.
func FromReceipt(r *store.Receipt, placedAt time.Time) OrderPlaced {
	lines := make([]OrderLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, OrderLine{
			ProductID: l.ProductID.String(),
			Name:      l.Name,
			Quantity:  l.Quantity,
			Total:     l.Total,
			Promotion: l.Promotion,
		})
	}
	return OrderPlaced{
		OrderID:  r.OrderID.String(),
		Lines:    lines,
		Total:    r.Total,
		PlacedAt: placedAt.UTC(),
	}
}

// Publisher delivers order events.
type Publisher interface {
	Publish(ctx context.Context, event OrderPlaced) error
	Close() error
}

// MessageProducer is the slice of a Kafka writer the publisher needs.
type MessageProducer interface {
	WriteMessage(ctx context.Context, msg kafka.Message) error
	Close() error
}

// KafkaPublisher writes OrderPlaced events as JSON keyed by order ID.
type KafkaPublisher struct {
	producer MessageProducer
}

// NewKafkaPublisher wraps an existing producer.
func NewKafkaPublisher(producer MessageProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

// DialKafka builds a traced Kafka writer for cfg's broker and topic. The
// writer connects lazily on first publish.
func DialKafka(cfg *config.Config, tp *sdktrace.TracerProvider) (*KafkaPublisher, error) {
	base := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBroker),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: config.BatchTimeout,
	}

	writer, err := otelkafka.NewWriter(base,
		otelkafka.WithTracerProvider(tp),
		otelkafka.WithPropagator(propagation.TraceContext{}),
		otelkafka.WithAttributes(
			[]attribute.KeyValue{
				semconv.MessagingDestinationNameKey.String(cfg.KafkaTopic),
				attribute.String("messaging.kafka.client_id", config.ServiceName),
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka writer: %w", err)
	}
	return NewKafkaPublisher(writer), nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, event OrderPlaced) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize OrderPlaced event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	}
	if err := p.producer.WriteMessage(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish OrderPlaced event %s: %w", event.OrderID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, OrderPlaced) error { return nil }
func (NopPublisher) Close() error                               { return nil }
