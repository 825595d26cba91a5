package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

// Recognized transition event names. Events outside this vocabulary are
// structurally invalid and rejected before any order state is loaded.
const (
	// EventAwaitPayment moves a created order into the payment-pending state.
	EventAwaitPayment = "payment.wait"

	// EventPaymentOk confirms payment capture.
	// Params: amount, paymentRef.
	EventPaymentOk = "payment.ok"

	// EventPaymentFailed cancels a payment-pending order after a gateway failure.
	// Params: reason.
	EventPaymentFailed = "payment.failed"

	// EventProcess hands a paid order to the warehouse.
	EventProcess = "process"

	// EventCancel abandons an order before shipment.
	// Params: reason.
	EventCancel = "cancel"

	// EventRefund reimburses a shipped or completed order.
	// Params: refundRef.
	EventRefund = "refund"

	// EventDeliveryShip ships a single delivery (delivery-scoped).
	// Params: trackingNumber, carrier.
	EventDeliveryShip = "delivery.ship"

	// EventDeliveryComplete marks a single delivery as delivered (delivery-scoped).
	EventDeliveryComplete = "delivery.complete"
)

// Well-known parameter keys. Required keys are event-specific and documented
// on the event constants; they are not enforced generically.
const (
	ParamAmount         = "amount"
	ParamPaymentRef     = "paymentRef"
	ParamReason         = "reason"
	ParamRefundRef      = "refundRef"
	ParamTrackingNumber = "trackingNumber"
	ParamCarrier        = "carrier"
)

// ErrTransitionEventIsNotConstructed is returned when a TransitionEvent was
// not created via the NewTransitionEvent constructor.
var ErrTransitionEventIsNotConstructed = errs.NewValueIsRequiredError(
	"TransitionEvent must be created via NewTransitionEvent constructor")

func getKnownEvents() map[string]struct{} {
	return map[string]struct{}{
		EventAwaitPayment:     {},
		EventPaymentOk:        {},
		EventPaymentFailed:    {},
		EventProcess:          {},
		EventCancel:           {},
		EventRefund:           {},
		EventDeliveryShip:     {},
		EventDeliveryComplete: {},
	}
}

// IsKnownEvent reports whether the name belongs to the recognized event vocabulary.
func IsKnownEvent(name string) bool {
	_, ok := getKnownEvents()[name]
	return ok
}

// IsDeliveryScopedEvent reports whether the event addresses a single delivery
// and therefore requires a delivery number.
func IsDeliveryScopedEvent(name string) bool {
	return name == EventDeliveryShip || name == EventDeliveryComplete
}

// TransitionEvent is the typed carrier for a lifecycle trigger flowing from a
// caller into the transition engine: the event name, the addressed order and
// (for delivery-scoped events) delivery, plus free-form contextual parameters.
//
// TransitionEvent is an immutable single-use value object. It holds no
// reference back to the aggregate and defensively copies its parameter map,
// so it can safely cross goroutine boundaries.
//
// Example:
//
//	evt, err := order.NewTransitionEvent(order.EventPaymentOk, "ORD-1001", "",
//	    map[string]string{order.ParamAmount: "100.00"})
//	if err != nil {
//	    // event name, order number or delivery number is structurally invalid
//	}
type TransitionEvent struct { //nolint:recvcheck //using for validation
	name           string
	orderNumber    string
	deliveryNumber string
	params         map[string]string

	guard guard.ConstructorGuard
}

// NewTransitionEvent creates a validated TransitionEvent.
//
// Validation rules:
//   - name must be non-empty and drawn from the recognized vocabulary
//   - orderNumber must be non-empty
//   - deliveryNumber is required for delivery-scoped events and must be
//     absent for order-scoped events
//
// The params map is copied; later mutation of the caller's map does not
// affect the event.
func NewTransitionEvent(
	name string,
	orderNumber string,
	deliveryNumber string,
	params map[string]string,
) (TransitionEvent, error) {
	if name == "" {
		return TransitionEvent{}, errs.NewValueIsRequiredError("event")
	}
	if !IsKnownEvent(name) {
		return TransitionEvent{}, errs.NewValueIsInvalidErrorWithCause("event",
			fmt.Errorf("%q is not a recognized transition event", name))
	}
	if orderNumber == "" {
		return TransitionEvent{}, errs.NewValueIsRequiredError("orderNumber")
	}
	if IsDeliveryScopedEvent(name) && deliveryNumber == "" {
		return TransitionEvent{}, errs.NewValueIsRequiredError("deliveryNumber")
	}
	if !IsDeliveryScopedEvent(name) && deliveryNumber != "" {
		return TransitionEvent{}, errs.NewValueIsInvalidErrorWithCause("deliveryNumber",
			fmt.Errorf("event %q is order-scoped", name))
	}

	copied := make(map[string]string, len(params))
	for k, v := range params {
		copied[k] = v
	}

	return TransitionEvent{
		name:           name,
		orderNumber:    orderNumber,
		deliveryNumber: deliveryNumber,
		params:         copied,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the event was created through the constructor.
func (e TransitionEvent) Validate() error {
	return e.guard.Validate(ErrTransitionEventIsNotConstructed)
}

// Name returns the event name.
func (e TransitionEvent) Name() string {
	return e.name
}

// OrderNumber returns the addressed order's business identifier.
func (e TransitionEvent) OrderNumber() string {
	return e.orderNumber
}

// DeliveryNumber returns the addressed delivery's business identifier.
// Empty for order-scoped events.
func (e TransitionEvent) DeliveryNumber() string {
	return e.deliveryNumber
}

// Param returns the value for the given parameter key, or the empty string
// when the key is absent.
func (e TransitionEvent) Param(key string) string {
	return e.params[key]
}

// Params returns a copy of the parameter map.
func (e TransitionEvent) Params() map[string]string {
	copied := make(map[string]string, len(e.params))
	for k, v := range e.params {
		copied[k] = v
	}
	return copied
}
