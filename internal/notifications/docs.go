// Package notifications builds and delivers customer-facing mail for order
// lifecycle changes, registrations and password resets.
//
// Producers (OrderNotifier, RegistrationNotifier) capture everything a message
// needs at call time, while the business transaction's data is still at hand,
// and hand an immutable message to the Dispatcher. The Dispatcher runs a fixed
// worker pool over a bounded queue; when the queue is full the message is
// dropped and logged rather than blocking the caller. Composition (template
// resolution along the shop's theme chain plus rendering) and SMTP delivery
// happen on the worker goroutines.
package notifications
