package order

import (
	"errors"
	"fmt"

	"orderflow/internal/pkg/errs"
)

// ErrTransitionNotAllowed signals that a lifecycle event is not legal from the
// current status. The transition engine treats errors wrapping this sentinel as
// a benign "not handled" outcome rather than a failure, so that duplicate or
// out-of-order external triggers (e.g. retried payment webhooks) stay harmless.
var ErrTransitionNotAllowed = errors.New("transition is not allowed from current status")

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Created ──> PaymentWaiting ──> PaymentOk ──> InProgress ──> Shipped ──> Completed
//	   │              │                │             │             │            │
//	   └──────────────┴────────────────┴─────────────┘             └─> Refunded <┘
//	                      (Cancelled)
//
// Cancelled is reachable from every pre-shipment status; Refunded from
// Shipped and Completed. Cancelled and Refunded are terminal.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first placed.
	Created

	// PaymentWaiting indicates the order awaits payment confirmation
	// from the payment gateway.
	PaymentWaiting

	// PaymentOk indicates payment was captured successfully.
	PaymentOk

	// InProgress indicates the warehouse is packing the order's deliveries.
	InProgress

	// Shipped indicates every delivery of the order has left the warehouse.
	Shipped

	// Completed indicates every delivery has reached the customer.
	// A completed order can still be refunded.
	Completed

	// Cancelled indicates the order was abandoned before shipment.
	// This is a terminal status.
	Cancelled

	// Refunded indicates the customer was reimbursed after shipment.
	// This is a terminal status.
	Refunded
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Created:        "Created",
		PaymentWaiting: "PaymentWaiting",
		PaymentOk:      "PaymentOk",
		InProgress:     "InProgress",
		Shipped:        "Shipped",
		Completed:      "Completed",
		Cancelled:      "Cancelled",
		Refunded:       "Refunded",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:        "Created",
		PaymentWaiting: "PaymentWaiting",
		PaymentOk:      "PaymentOk",
		InProgress:     "InProgress",
		Shipped:        "Shipped",
		Completed:      "Completed",
		Cancelled:      "Cancelled",
		Refunded:       "Refunded",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements the fmt.Stringer interface and is safe to call
// on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Cancelled || s == Refunded
}

// AwaitPayment transitions the status to PaymentWaiting.
//
// Valid transitions:
//   - Created -> PaymentWaiting
func (s Status) AwaitPayment() (Status, error) {
	if s != Created {
		return 0, transitionError(s, PaymentWaiting)
	}
	return PaymentWaiting, nil
}

// ConfirmPayment transitions the status to PaymentOk.
//
// Valid transitions:
//   - Created -> PaymentOk (instant capture, no pending step)
//   - PaymentWaiting -> PaymentOk
//
// A repeated confirmation for an order already in PaymentOk is not a valid
// transition; callers rely on that to detect duplicate gateway callbacks.
func (s Status) ConfirmPayment() (Status, error) {
	if s != Created && s != PaymentWaiting {
		return 0, transitionError(s, PaymentOk)
	}
	return PaymentOk, nil
}

// FailPayment transitions the status to Cancelled after a payment failure.
//
// Valid transitions:
//   - PaymentWaiting -> Cancelled
func (s Status) FailPayment() (Status, error) {
	if s != PaymentWaiting {
		return 0, transitionError(s, Cancelled)
	}
	return Cancelled, nil
}

// StartProcessing transitions the status to InProgress.
//
// Valid transitions:
//   - PaymentOk -> InProgress
func (s Status) StartProcessing() (Status, error) {
	if s != PaymentOk {
		return 0, transitionError(s, InProgress)
	}
	return InProgress, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Created, PaymentWaiting, PaymentOk, InProgress -> Cancelled
//
// Orders that already shipped cannot be cancelled; they must be refunded.
func (s Status) Cancel() (Status, error) {
	switch s {
	case Created, PaymentWaiting, PaymentOk, InProgress:
		return Cancelled, nil
	default:
		return 0, transitionError(s, Cancelled)
	}
}

// Ship transitions the status to Shipped.
//
// Valid transitions:
//   - InProgress -> Shipped
func (s Status) Ship() (Status, error) {
	if s != InProgress {
		return 0, transitionError(s, Shipped)
	}
	return Shipped, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Shipped -> Completed
func (s Status) Complete() (Status, error) {
	if s != Shipped {
		return 0, transitionError(s, Completed)
	}
	return Completed, nil
}

// Refund transitions the status to Refunded.
//
// Valid transitions:
//   - Shipped, Completed -> Refunded
func (s Status) Refund() (Status, error) {
	if s != Shipped && s != Completed {
		return 0, transitionError(s, Refunded)
	}
	return Refunded, nil
}

func transitionError(from, to Status) error {
	return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, from, to)
}
