package notifications

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/model/customer"
	"orderflow/internal/core/domain/model/shop"
	"orderflow/internal/pkg/errs"
)

// Mail template names for account events.
const (
	TemplateCustomerRegistered    = "customer-registered"
	TemplateCustomerPasswordReset = "customer-password-reset"
)

// RegistrationMailNotifier sends welcome and password reset mail carrying the
// generated plaintext passphrase. The passphrase never outlives the message;
// only its hash is persisted.
type RegistrationMailNotifier struct {
	dispatcher *Dispatcher
	composer   MailComposer
	themes     ThemeResolver
	sender     MailSender
	logger     *slog.Logger
}

// NewRegistrationMailNotifier creates a notifier for account mail.
func NewRegistrationMailNotifier(
	dispatcher *Dispatcher,
	composer MailComposer,
	themes ThemeResolver,
	sender MailSender,
	logger *slog.Logger,
) (*RegistrationMailNotifier, error) {
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

	return &RegistrationMailNotifier{
		dispatcher: dispatcher,
		composer:   composer,
		themes:     themes,
		sender:     sender,
		logger:     logger.With("component", "registration_mail_notifier"),
	}, nil
}

// NotifyRegistration enqueues the welcome mail for a newly registered
// customer.
func (n *RegistrationMailNotifier) NotifyRegistration(
	recipient *customer.Customer,
	storefront *shop.Shop,
	passphrase string,
) {
	n.notify(TemplateCustomerRegistered, recipient, storefront, passphrase)
}

// NotifyPasswordReset enqueues the mail carrying the replacement passphrase.
func (n *RegistrationMailNotifier) NotifyPasswordReset(
	recipient *customer.Customer,
	storefront *shop.Shop,
	passphrase string,
) {
	n.notify(TemplateCustomerPasswordReset, recipient, storefront, passphrase)
}

func (n *RegistrationMailNotifier) notify(
	template string,
	recipient *customer.Customer,
	storefront *shop.Shop,
	passphrase string,
) {
	if recipient == nil || storefront == nil {
		n.logger.Warn("Account notification skipped, missing context", "template", template)
		return
	}

	mailFrom, ok := storefront.Attribute(shop.AttrAdminEmail)
	if !ok {
		n.logger.Warn("Account notification skipped, shop has no admin email",
			"shop", storefront.Code(), "customer", recipient.Email())
		return
	}

	msg, err := NewRegistrationMessage(
		recipient.Email(),
		recipient.FirstName(),
		recipient.Locale(),
		template,
		mailFrom,
		storefront.Code(),
		storefront.Name(),
		storefront.DefaultURL(),
		n.themes.Chain(storefront.Code()),
		passphrase,
	)
	if err != nil {
		n.logger.Error("Account notification skipped, message construction failed",
			"customer", recipient.Email(), "template", template, "error", err)
		return
	}

	n.dispatcher.Enqueue(func(ctx context.Context) {
		mail, err := n.composer.ComposeRegistration(msg)
		if err != nil {
			n.logger.Error("Account mail composition failed",
				"template", msg.Template(), "to", msg.To(), "error", err)
			return
		}
		if err := n.sender.Send(ctx, mail); err != nil {
			n.logger.Error("Account mail delivery failed",
				"template", msg.Template(), "to", msg.To(), "error", err)
			return
		}
		n.logger.Info("Account mail sent", "template", msg.Template(), "to", msg.To())
	})
}
