package commands

import (
	"orderflow/internal/core/domain/model/customer"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/shop"
)

// Notifier interfaces decouple command handlers from notification delivery.
// Handlers invoke them after a successful commit; implementations are
// fire-and-forget and must never block or fail the calling command.
type (
	// OrderNotifier publishes order lifecycle notifications.
	// The customer and shop snapshots were loaded in the same transaction
	// that applied the transition.
	OrderNotifier interface {
		NotifyOrderTransition(aggregate *order.Order, recipient *customer.Customer, storefront *shop.Shop, event order.TransitionEvent)
	}

	// RegistrationNotifier publishes customer registration and password
	// reset notifications. The passphrase is the generated plaintext that
	// was hashed before persisting; it exists only for the message.
	RegistrationNotifier interface {
		NotifyRegistration(recipient *customer.Customer, storefront *shop.Shop, passphrase string)
		NotifyPasswordReset(recipient *customer.Customer, storefront *shop.Shop, passphrase string)
	}
)
