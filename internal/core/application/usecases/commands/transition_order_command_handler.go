package commands

import (
	"context"
	"errors"
	"log/slog"

	"orderflow/internal/core/domain/model/customer"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/shop"
	"orderflow/internal/core/domain/services"
)

// TransitionOrderCommandHandler applies lifecycle events to orders.
//
// The handler loads the order under a row lock so concurrent transitions
// against the same order serialize, applies the event through the aggregate,
// and persists the result. Events that are not applicable in the order's
// current status are reported as unhandled rather than as errors, which
// makes redelivered payment callbacks idempotent.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, orderNotifier, logger)
//	event, _ := order.NewTransitionEvent(order.EventPaymentOk, "ORD-1001", "", nil)
//	cmd, _ := NewTransitionOrderCommand(event)
//
//	handled, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("transition failed: %w", err)
//	}
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	applier    services.TransitionApplier
	notifier   OrderNotifier
	logger     *slog.Logger
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
// Requires a UoWFactory for transactional persistence and an OrderNotifier
// invoked after a successful commit. The notifier and logger may be nil.
func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	notifier OrderNotifier,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		applier:    services.NewTransitionApplier(),
		notifier:   notifier,
		logger:     logger.With("component", "transition_order_handler"),
	}
}

// Handle processes the transition command.
//
// Returns (true, nil) when the event was applied and committed, and
// (false, nil) when the event is not allowed from the order's current
// status; in the latter case no state changes. Unknown orders and unknown
// delivery numbers surface as errs.ObjectNotFoundError. Customer and shop
// rows are read only to build notification context, so a failure there is
// logged and never blocks the transition.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	event := cmd.Event()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByNumberForUpdate(ctx, event.OrderNumber())
	if err != nil {
		return false, err
	}

	if err = h.applier.Apply(aggregate, event); err != nil {
		if errors.Is(err, order.ErrTransitionNotAllowed) {
			return false, nil
		}
		return false, err
	}

	// Notification context is best effort. A missing customer or shop row
	// must not roll back an already-applied transition; the notifier skips
	// whatever is absent.
	var recipient *customer.Customer
	var storefront *shop.Shop
	if h.notifier != nil {
		if c, cerr := uow.CustomerRepository().Get(ctx, aggregate.CustomerID()); cerr != nil {
			h.logger.Warn("Customer lookup for notification failed",
				"order", aggregate.Number(), "event", event.Name(), "error", cerr)
		} else {
			recipient = c
		}

		if s, serr := uow.ShopRepository().Get(ctx, aggregate.ShopID()); serr != nil {
			h.logger.Warn("Shop lookup for notification failed",
				"order", aggregate.Number(), "event", event.Name(), "error", serr)
		} else {
			storefront = s
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	if h.notifier != nil {
		h.notifier.NotifyOrderTransition(aggregate, recipient, storefront, event)
	}

	return true, nil
}
