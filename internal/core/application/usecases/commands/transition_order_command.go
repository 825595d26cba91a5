package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand represents a request to apply a lifecycle event to
// an order. The event carries the order number, an optional delivery number
// and event parameters such as the payment reference or tracking number.
//
// Example:
//
//	event, err := order.NewTransitionEvent(order.EventPaymentOk, "ORD-1001", "",
//	    map[string]string{order.ParamPaymentRef: "pay-42"})
//	if err != nil {
//	    return fmt.Errorf("invalid event: %w", err)
//	}
//
//	cmd, err := commands.NewTransitionOrderCommand(event)
//	if err != nil {
//	    return err
//	}
//
//	handled, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("transition failed: %w", err)
//	}
//	if !handled {
//	    // event was not applicable in the order's current status
//	}
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	event order.TransitionEvent

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to apply a transition event.
// The event must itself be valid.
func NewTransitionOrderCommand(event order.TransitionEvent) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setEvent(event); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionOrderCommandIsNotConstructed if validation fails.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// Event returns the transition event to apply.
func (c TransitionOrderCommand) Event() order.TransitionEvent {
	return c.event
}

func (c *TransitionOrderCommand) setEvent(event order.TransitionEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	c.event = event
	return nil
}
