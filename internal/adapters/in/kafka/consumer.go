// Package kafka consumes payment gateway events and feeds them into the
// order transition engine.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// paymentEvent is the wire format produced by the payment gateway.
type paymentEvent struct {
	OrderNumber string            `json:"orderNumber"`
	Event       string            `json:"event"`
	Params      map[string]string `json:"params,omitempty"`
}

// PaymentEventConsumer reads payment events from a Kafka topic and turns them
// into transition commands. Malformed or unprocessable messages are logged
// and skipped; the consumer never stops on a single bad message.
type PaymentEventConsumer struct {
	reader  *kafka.Reader
	handler commands.TransitionOrderCommandHandler
	logger  *slog.Logger
	done    chan struct{}
}

// NewReader creates a kafka reader for the payment events topic.
func NewReader(brokers []string, groupID, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   topic,
	})
}

// NewPaymentEventConsumer creates a consumer over the given reader.
func NewPaymentEventConsumer(
	reader *kafka.Reader,
	handler commands.TransitionOrderCommandHandler,
	logger *slog.Logger,
) (*PaymentEventConsumer, error) {
	if reader == nil {
		return nil, errs.NewValueIsRequiredError("reader")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &PaymentEventConsumer{
		reader:  reader,
		handler: handler,
		logger:  logger.With("component", "payment_event_consumer"),
		done:    make(chan struct{}),
	}, nil
}

// Start launches the consume loop. The loop exits when ctx is cancelled or
// the reader is closed.
func (c *PaymentEventConsumer) Start(ctx context.Context) {
	c.logger.Info("Payment event consumer started", "topic", c.reader.Config().Topic)

	go func() {
		defer close(c.done)
		for {
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil || isShutdownErr(err) {
					c.logger.Info("Payment event consumer stopped")
					return
				}
				c.logger.Error("Payment event read failed", "error", err)
				continue
			}

			c.process(ctx, msg)
		}
	}()
}

// isShutdownErr reports whether a ReadMessage error means the reader was
// closed. A closed reader surfaces as io.EOF or io.ErrClosedPipe, not only
// kafka.ErrGroupClosed, and treating those as transient would leave the loop
// spinning while Close blocks on the done channel.
func isShutdownErr(err error) bool {
	return errors.Is(err, kafka.ErrGroupClosed) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe)
}

// Close shuts the reader down and waits for the consume loop to finish.
func (c *PaymentEventConsumer) Close() error {
	err := c.reader.Close()
	<-c.done
	return err
}

func (c *PaymentEventConsumer) process(ctx context.Context, msg kafka.Message) {
	var event paymentEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("Payment event payload is not valid JSON",
			"offset", msg.Offset, "error", err)
		return
	}

	transition, err := order.NewTransitionEvent(event.Event, event.OrderNumber, "", event.Params)
	if err != nil {
		c.logger.Error("Payment event rejected",
			"order", event.OrderNumber, "event", event.Event, "error", err)
		return
	}

	cmd, err := commands.NewTransitionOrderCommand(transition)
	if err != nil {
		c.logger.Error("Payment event rejected",
			"order", event.OrderNumber, "event", event.Event, "error", err)
		return
	}

	handled, err := c.handler.Handle(ctx, cmd)
	if err != nil {
		c.logger.Error("Payment event processing failed",
			"order", event.OrderNumber, "event", event.Event, "error", err)
		return
	}

	if !handled {
		c.logger.Info("Payment event not applicable in current order state",
			"order", event.OrderNumber, "event", event.Event)
		return
	}

	c.logger.Info("Payment event applied",
		"order", event.OrderNumber, "event", event.Event)
}
