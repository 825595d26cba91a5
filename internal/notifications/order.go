package notifications

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/model/customer"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/shop"
	"orderflow/internal/pkg/errs"
)

// Mail template names for order lifecycle events.
const (
	TemplateOrderPaymentWait      = "order-payment-wait"
	TemplateOrderPaymentConfirmed = "order-payment-confirmed"
	TemplateOrderPaymentFailed    = "order-payment-failed"
	TemplateOrderInProgress       = "order-in-progress"
	TemplateOrderCancelled        = "order-cancelled"
	TemplateOrderRefunded         = "order-refunded"
	TemplateDeliveryShipped       = "order-delivery-shipped"
	TemplateDeliveryCompleted     = "order-delivery-completed"
)

// orderTemplates maps transition event names to mail template names.
func orderTemplates() map[string]string {
	return map[string]string{
		order.EventAwaitPayment:     TemplateOrderPaymentWait,
		order.EventPaymentOk:        TemplateOrderPaymentConfirmed,
		order.EventPaymentFailed:    TemplateOrderPaymentFailed,
		order.EventProcess:          TemplateOrderInProgress,
		order.EventCancel:           TemplateOrderCancelled,
		order.EventRefund:           TemplateOrderRefunded,
		order.EventDeliveryShip:     TemplateDeliveryShipped,
		order.EventDeliveryComplete: TemplateDeliveryCompleted,
	}
}

// OrderMailNotifier turns applied transitions into customer mail. It snapshots
// the order, customer and shop into an immutable message and enqueues the
// compose-and-send work on the dispatcher. All failures are logged and
// swallowed so a notification problem never surfaces into the command handler.
type OrderMailNotifier struct {
	dispatcher *Dispatcher
	composer   MailComposer
	themes     ThemeResolver
	sender     MailSender
	logger     *slog.Logger
}

// NewOrderMailNotifier creates a notifier for order lifecycle mail.
func NewOrderMailNotifier(
	dispatcher *Dispatcher,
	composer MailComposer,
	themes ThemeResolver,
	sender MailSender,
	logger *slog.Logger,
) (*OrderMailNotifier, error) {
	if dispatcher == nil {
		return nil, errs.NewValueIsRequiredError("dispatcher")
	}
	if themes == nil {
		return nil, errs.NewValueIsRequiredError("themes")
	}
	if sender == nil {
		return nil, errs.NewValueIsRequiredError("sender")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &OrderMailNotifier{
		dispatcher: dispatcher,
		composer:   composer,
		themes:     themes,
		sender:     sender,
		logger:     logger.With("component", "order_mail_notifier"),
	}, nil
}

// NotifyOrderTransition builds and enqueues the mail for an applied
// transition.
func (n *OrderMailNotifier) NotifyOrderTransition(
	aggregate *order.Order,
	recipient *customer.Customer,
	storefront *shop.Shop,
	event order.TransitionEvent,
) {
	if aggregate == nil || recipient == nil || storefront == nil {
		n.logger.Warn("Order notification skipped, missing context",
			"event", event.Name(), "order", event.OrderNumber())
		return
	}

	template, ok := orderTemplates()[event.Name()]
	if !ok {
		n.logger.Warn("Order notification skipped, no template for event",
			"event", event.Name(), "order", aggregate.Number())
		return
	}

	mailFrom, ok := storefront.Attribute(shop.AttrAdminEmail)
	if !ok {
		n.logger.Warn("Order notification skipped, shop has no admin email",
			"shop", storefront.Code(), "order", aggregate.Number())
		return
	}

	msg, err := NewOrderStatusMessage(
		recipient.Email(),
		recipient.FirstName(),
		recipient.Locale(),
		template,
		mailFrom,
		storefront.Code(),
		storefront.Name(),
		storefront.DefaultURL(),
		n.themes.Chain(storefront.Code()),
		aggregate.Number(),
		aggregate.Status().String(),
		event.DeliveryNumber(),
		event.Params(),
	)
	if err != nil {
		n.logger.Error("Order notification skipped, message construction failed",
			"order", aggregate.Number(), "event", event.Name(), "error", err)
		return
	}

	n.dispatcher.Enqueue(func(ctx context.Context) {
		mail, err := n.composer.ComposeOrderStatus(msg)
		if err != nil {
			n.logger.Error("Order mail composition failed",
				"order", msg.OrderNumber(), "template", msg.Template(), "error", err)
			return
		}
		if err := n.sender.Send(ctx, mail); err != nil {
			n.logger.Error("Order mail delivery failed",
				"order", msg.OrderNumber(), "to", msg.To(), "error", err)
			return
		}
		n.logger.Info("Order mail sent",
			"order", msg.OrderNumber(), "template", msg.Template(), "to", msg.To())
	})
}
