// Package kafka publishes order lifecycle events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/customer"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/shop"
	"orderflow/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

const publishTimeout = 5 * time.Second

// orderChangedEvent is the wire format of an order lifecycle event.
type orderChangedEvent struct {
	OrderNumber    string            `json:"orderNumber"`
	Event          string            `json:"event"`
	Status         string            `json:"status"`
	DeliveryNumber string            `json:"deliveryNumber,omitempty"`
	ShopCode       string            `json:"shopCode"`
	Params         map[string]string `json:"params,omitempty"`
	OccurredAt     time.Time         `json:"occurredAt"`
}

// OrderEventPublisher writes an order-changed event after every handled
// transition. It satisfies commands.OrderNotifier; delivery is fire and
// forget, a broker failure is logged and never reaches the command handler.
type OrderEventPublisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewWriter creates a kafka writer for the order events topic.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}

// NewOrderEventPublisher creates a publisher over the given writer.
func NewOrderEventPublisher(writer *kafka.Writer, logger *slog.Logger) (*OrderEventPublisher, error) {
	if writer == nil {
		return nil, errs.NewValueIsRequiredError("writer")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &OrderEventPublisher{
		writer: writer,
		logger: logger.With("component", "order_event_publisher"),
	}, nil
}

// NotifyOrderTransition publishes the applied transition, keyed by order
// number so events for one order stay in partition order.
func (p *OrderEventPublisher) NotifyOrderTransition(
	aggregate *order.Order,
	recipient *customer.Customer,
	storefront *shop.Shop,
	event order.TransitionEvent,
) {
	if aggregate == nil {
		return
	}

	payload := orderChangedEvent{
		OrderNumber:    aggregate.Number(),
		Event:          event.Name(),
		Status:         aggregate.Status().String(),
		DeliveryNumber: event.DeliveryNumber(),
		Params:         event.Params(),
		OccurredAt:     time.Now().UTC(),
	}
	if storefront != nil {
		payload.ShopCode = storefront.Code()
	}

	value, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("Order event serialization failed",
			"order", aggregate.Number(), "event", event.Name(), "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(aggregate.Number()),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Order event publish failed",
			"order", aggregate.Number(), "event", event.Name(), "error", err)
		return
	}

	p.logger.Info("Order event published",
		"order", aggregate.Number(), "event", event.Name(), "status", payload.Status)
}

// Close flushes and closes the underlying writer.
func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}

var _ commands.OrderNotifier = (*OrderEventPublisher)(nil)
