package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// DeliveryStatus represents the lifecycle state of a single delivery within
// an order. A delivery follows its own sub-graph which may lag or lead the
// order status per business rules.
//
// State transitions:
//
//	Pending ──> Packing ──> Shipped ──> Delivered
//	   │           │           │            │
//	   └───────────┘           └────────────┘
//	    (Cancelled)             (Returned)
type DeliveryStatus int

const (
	// DeliveryUnknown represents an invalid or undefined delivery status.
	DeliveryUnknown DeliveryStatus = iota

	// DeliveryPending is the initial status of a newly created delivery.
	DeliveryPending

	// DeliveryPacking indicates the warehouse is assembling the delivery.
	DeliveryPacking

	// DeliveryShipped indicates the delivery was handed to the carrier.
	DeliveryShipped

	// DeliveryDelivered indicates the delivery reached the customer.
	DeliveryDelivered

	// DeliveryCancelled indicates the delivery was cancelled before shipment.
	// This is a terminal status.
	DeliveryCancelled

	// DeliveryReturned indicates the delivery came back after an order refund.
	// This is a terminal status.
	DeliveryReturned
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		DeliveryUnknown:   "Unknown",
		DeliveryPending:   "Pending",
		DeliveryPacking:   "Packing",
		DeliveryShipped:   "Shipped",
		DeliveryDelivered: "Delivered",
		DeliveryCancelled: "Cancelled",
		DeliveryReturned:  "Returned",
	}
}

func getValidDeliveryStatusStrings() map[DeliveryStatus]string {
	//nolint:exhaustive // DeliveryUnknown is intentionally excluded as it's invalid
	return map[DeliveryStatus]string{
		DeliveryPending:   "Pending",
		DeliveryPacking:   "Packing",
		DeliveryShipped:   "Shipped",
		DeliveryDelivered: "Delivered",
		DeliveryCancelled: "Cancelled",
		DeliveryReturned:  "Returned",
	}
}

// Validate checks if the DeliveryStatus value is valid.
func (s DeliveryStatus) Validate() error {
	if _, ok := getValidDeliveryStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery status",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the human-readable name of the delivery status.
func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryCancelled || s == DeliveryReturned
}

// CanCancel reports whether the delivery can still be cancelled.
// Used by the order-level cancel cascade, which must skip deliveries
// that already shipped or were already cancelled.
func (s DeliveryStatus) CanCancel() bool {
	return s == DeliveryPending || s == DeliveryPacking
}

// StartPacking transitions the status to Packing.
//
// Valid transitions:
//   - Pending -> Packing
func (s DeliveryStatus) StartPacking() (DeliveryStatus, error) {
	if s != DeliveryPending {
		return 0, deliveryTransitionError(s, DeliveryPacking)
	}
	return DeliveryPacking, nil
}

// Ship transitions the status to Shipped.
//
// Valid transitions:
//   - Packing -> Shipped
func (s DeliveryStatus) Ship() (DeliveryStatus, error) {
	if s != DeliveryPacking {
		return 0, deliveryTransitionError(s, DeliveryShipped)
	}
	return DeliveryShipped, nil
}

// Complete transitions the status to Delivered.
//
// Valid transitions:
//   - Shipped -> Delivered
func (s DeliveryStatus) Complete() (DeliveryStatus, error) {
	if s != DeliveryShipped {
		return 0, deliveryTransitionError(s, DeliveryDelivered)
	}
	return DeliveryDelivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending, Packing -> Cancelled
func (s DeliveryStatus) Cancel() (DeliveryStatus, error) {
	if !s.CanCancel() {
		return 0, deliveryTransitionError(s, DeliveryCancelled)
	}
	return DeliveryCancelled, nil
}

// Return transitions the status to Returned.
//
// Valid transitions:
//   - Shipped, Delivered -> Returned
func (s DeliveryStatus) Return() (DeliveryStatus, error) {
	if s != DeliveryShipped && s != DeliveryDelivered {
		return 0, deliveryTransitionError(s, DeliveryReturned)
	}
	return DeliveryReturned, nil
}

func deliveryTransitionError(from, to DeliveryStatus) error {
	return fmt.Errorf("%w: delivery %s -> %s", ErrTransitionNotAllowed, from, to)
}
