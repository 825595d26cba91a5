package services

import (
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// TransitionApplier is a domain service that applies lifecycle events to
// order aggregates. It owns the mapping from the event vocabulary to the
// aggregate operations; callers stay ignorant of which method backs which
// event name.
//
// Business rules:
//   - The order must be valid before an event is applied
//   - Events not legal from the order's current status fail with
//     order.ErrTransitionNotAllowed, leaving the aggregate untouched
//   - Delivery-scoped events address the delivery by number; an unknown
//     number fails with errs.ObjectNotFoundError
//
// Example usage:
//
//	applier := services.NewTransitionApplier()
//	event, _ := order.NewTransitionEvent(order.EventPaymentOk, "ORD-1001", "", nil)
//
//	if err := applier.Apply(aggregate, event); err != nil {
//	    if errors.Is(err, order.ErrTransitionNotAllowed) {
//	        // event not applicable in the current status
//	    }
//	    return err
//	}
type TransitionApplier struct{}

// NewTransitionApplier creates a new TransitionApplier instance.
func NewTransitionApplier() TransitionApplier {
	return TransitionApplier{}
}

// Apply executes the aggregate operation the event names.
// Cascades to deliveries happen inside the aggregate operations.
func (a TransitionApplier) Apply(aggregate *order.Order, event order.TransitionEvent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if err := event.Validate(); err != nil {
		return err
	}

	switch event.Name() {
	case order.EventAwaitPayment:
		return aggregate.AwaitPayment()
	case order.EventPaymentOk:
		return aggregate.ConfirmPayment()
	case order.EventPaymentFailed:
		return aggregate.FailPayment()
	case order.EventProcess:
		return aggregate.StartProcessing()
	case order.EventCancel:
		return aggregate.Cancel()
	case order.EventRefund:
		return aggregate.Refund()
	case order.EventDeliveryShip:
		return aggregate.ShipDelivery(
			event.DeliveryNumber(),
			event.Param(order.ParamTrackingNumber),
			event.Param(order.ParamCarrier),
		)
	case order.EventDeliveryComplete:
		return aggregate.CompleteDelivery(event.DeliveryNumber())
	default:
		return errs.NewValueIsInvalidError("event " + event.Name())
	}
}
