package order

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through the NewDelivery or RestoreDelivery factory methods.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

// Delivery is a shippable sub-unit of an Order with its own status
// sub-lifecycle and carrier metadata. A delivery is always owned by exactly
// one order; its number is unique within that order.
//
// Delivery uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Delivery struct {
	// id is the unique identifier for the delivery
	id kernel.UUID

	// number is the business identifier, unique within the owning order (e.g. "D-1")
	number string

	// status represents the current state in the delivery sub-lifecycle
	status DeliveryStatus

	// carrier is the shipping company handling the delivery (set on shipment)
	carrier string

	// trackingNumber is the carrier's shipment reference (set on shipment)
	trackingNumber string

	// isConstructed ensures the delivery was created via a constructor
	isConstructed bool
}

// NewDelivery creates a new Delivery in Pending status.
//
// Parameters:
//   - id: Unique identifier for the delivery (must be valid UUID)
//   - number: Business identifier, unique within the owning order
func NewDelivery(id kernel.UUID, number string) (*Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("delivery number")
	}

	return &Delivery{
		id:            id,
		number:        number,
		status:        DeliveryPending,
		isConstructed: true,
	}, nil
}

// RestoreDelivery reconstructs a Delivery from persistence.
// Unlike NewDelivery it accepts an arbitrary valid status and carrier metadata.
func RestoreDelivery(
	id kernel.UUID,
	number string,
	status DeliveryStatus,
	carrier string,
	trackingNumber string,
) (*Delivery, error) {
	delivery, err := NewDelivery(id, number)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	delivery.status = status
	delivery.carrier = carrier
	delivery.trackingNumber = trackingNumber
	return delivery, nil
}

// Validate ensures the Delivery instance was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// Number returns the delivery's business identifier.
func (d *Delivery) Number() string {
	return d.number
}

// Status returns the current status of the delivery.
func (d *Delivery) Status() DeliveryStatus {
	return d.status
}

// Carrier returns the shipping company handling the delivery.
// Empty until the delivery is shipped.
func (d *Delivery) Carrier() string {
	return d.carrier
}

// TrackingNumber returns the carrier's shipment reference.
// Empty until the delivery is shipped.
func (d *Delivery) TrackingNumber() string {
	return d.trackingNumber
}

// StartPacking moves the delivery from Pending to Packing.
func (d *Delivery) StartPacking() error {
	newStatus, err := d.status.StartPacking()
	if err != nil {
		return err
	}
	d.status = newStatus
	return nil
}

// Ship moves the delivery from Packing to Shipped and records the carrier
// metadata supplied by the shipment trigger.
func (d *Delivery) Ship(trackingNumber, carrier string) error {
	newStatus, err := d.status.Ship()
	if err != nil {
		return err
	}
	d.status = newStatus
	d.trackingNumber = trackingNumber
	d.carrier = carrier
	return nil
}

// Complete moves the delivery from Shipped to Delivered.
func (d *Delivery) Complete() error {
	newStatus, err := d.status.Complete()
	if err != nil {
		return err
	}
	d.status = newStatus
	return nil
}

// Cancel moves the delivery to Cancelled.
// Only pending and packing deliveries can be cancelled.
func (d *Delivery) Cancel() error {
	newStatus, err := d.status.Cancel()
	if err != nil {
		return err
	}
	d.status = newStatus
	return nil
}

// Return moves the delivery to Returned as part of an order refund.
func (d *Delivery) Return() error {
	newStatus, err := d.status.Return()
	if err != nil {
		return err
	}
	d.status = newStatus
	return nil
}
