package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods. This ensures all
	// orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDuplicateDeliveryNumber is returned when adding a delivery whose number
	// already exists within the order.
	ErrDuplicateDeliveryNumber = errors.New("delivery number already exists in order")
)

// Order represents a customer order. It is the aggregate root that manages the
// order lifecycle from placement through payment, fulfilment, and completion,
// together with its constituent Deliveries.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty order number
//   - The order number is immutable after creation
//   - Status transitions follow the defined state machine and happen only
//     through the aggregate's methods
//   - Delivery numbers are unique within the order
//   - Cascading delivery updates are applied together with the order-level
//     transition that caused them
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// number is the business identifier, unique across all orders (e.g. "ORD-1001")
	number string

	// customerID references the customer who placed the order
	customerID kernel.UUID

	// shopID references the shop the order was placed in
	shopID kernel.UUID

	// total is the monetary total of the order
	total kernel.Money

	// status represents the current state in the order lifecycle
	status Status

	// deliveries are the shippable sub-units owned by this order
	deliveries []*Delivery

	// createdAt is the placement timestamp
	createdAt time.Time

	// updatedAt is the last transition timestamp
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Created status with no deliveries.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - number: Business order number, immutable after creation
//   - customerID: Customer who placed the order (must be valid UUID)
//   - shopID: Shop the order belongs to (must be valid UUID)
//   - total: Monetary total of the order
func NewOrder(id kernel.UUID, number string, customerID, shopID kernel.UUID, total kernel.Money) (*Order, error) {
	order := &Order{
		status:        Created,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setNumber(number),
		order.setCustomerID(customerID),
		order.setShopID(shopID),
		order.setTotal(total),
	); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order.createdAt = now
	order.updatedAt = now
	return order, nil
}

// RestoreOrder reconstructs an Order from persistence, including its status,
// timestamps and deliveries. This is the only valid way to obtain an order in
// a non-initial status without replaying transitions.
func RestoreOrder(
	id kernel.UUID,
	number string,
	customerID, shopID kernel.UUID,
	total kernel.Money,
	status Status,
	deliveries []*Delivery,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	order, err := NewOrder(id, number, customerID, shopID, total)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(deliveries))
	for _, delivery := range deliveries {
		if err := delivery.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[delivery.Number()]; ok {
			return nil, ErrDuplicateDeliveryNumber
		}
		seen[delivery.Number()] = struct{}{}
	}

	order.status = status
	order.deliveries = deliveries
	order.createdAt = createdAt
	order.updatedAt = updatedAt
	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the order's business identifier.
func (o *Order) Number() string {
	return o.number
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// ShopID returns the identifier of the shop the order belongs to.
func (o *Order) ShopID() kernel.UUID {
	return o.shopID
}

// Total returns the order's monetary total.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the placement timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last applied transition.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Deliveries returns the deliveries owned by this order.
func (o *Order) Deliveries() []*Delivery {
	return o.deliveries
}

// Delivery returns the delivery with the given number.
// Returns an ObjectNotFoundError when the number does not belong to this
// order, which callers must surface as a lookup failure rather than a benign
// state mismatch.
func (o *Order) Delivery(number string) (*Delivery, error) {
	for _, delivery := range o.deliveries {
		if delivery.Number() == number {
			return delivery, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("deliveryNumber", number)
}

// AddDelivery attaches a new delivery to the order.
// Deliveries can only be added before the order ships, and numbers must be
// unique within the order.
func (o *Order) AddDelivery(delivery *Delivery) error {
	if err := delivery.Validate(); err != nil {
		return err
	}

	switch o.status {
	case Created, PaymentWaiting, PaymentOk, InProgress:
	default:
		return fmt.Errorf("%w: cannot add delivery in status %s", ErrTransitionNotAllowed, o.status)
	}

	for _, existing := range o.deliveries {
		if existing.Number() == delivery.Number() {
			return ErrDuplicateDeliveryNumber
		}
	}

	o.deliveries = append(o.deliveries, delivery)
	o.touch()
	return nil
}

// AwaitPayment marks the order as waiting for payment confirmation.
func (o *Order) AwaitPayment() error {
	newStatus, err := o.status.AwaitPayment()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.touch()
	return nil
}

// ConfirmPayment marks the order as paid.
func (o *Order) ConfirmPayment() error {
	newStatus, err := o.status.ConfirmPayment()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.touch()
	return nil
}

// FailPayment cancels the order after a payment failure.
// Every cancellable delivery is driven to Cancelled in the same operation.
func (o *Order) FailPayment() error {
	newStatus, err := o.status.FailPayment()
	if err != nil {
		return err
	}
	if err := o.cancelDeliveries(); err != nil {
		return err
	}
	o.status = newStatus
	o.touch()
	return nil
}

// StartProcessing moves the order to InProgress and every pending delivery
// to Packing.
func (o *Order) StartProcessing() error {
	newStatus, err := o.status.StartProcessing()
	if err != nil {
		return err
	}
	for _, delivery := range o.deliveries {
		if delivery.Status() != DeliveryPending {
			continue
		}
		if err := delivery.StartPacking(); err != nil {
			return err
		}
	}
	o.status = newStatus
	o.touch()
	return nil
}

// Cancel abandons the order before shipment.
// Every cancellable delivery is driven to Cancelled in the same operation;
// already-cancelled deliveries are skipped so the cascade never double-applies.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}
	if err := o.cancelDeliveries(); err != nil {
		return err
	}
	o.status = newStatus
	o.touch()
	return nil
}

// Refund reimburses a shipped or completed order.
// Shipped and delivered deliveries are driven to Returned in the same operation.
func (o *Order) Refund() error {
	newStatus, err := o.status.Refund()
	if err != nil {
		return err
	}
	for _, delivery := range o.deliveries {
		if delivery.Status() != DeliveryShipped && delivery.Status() != DeliveryDelivered {
			continue
		}
		if err := delivery.Return(); err != nil {
			return err
		}
	}
	o.status = newStatus
	o.touch()
	return nil
}

// ShipDelivery ships the addressed delivery and records its carrier metadata.
// When the last active delivery ships, the order itself moves to Shipped.
func (o *Order) ShipDelivery(deliveryNumber, trackingNumber, carrier string) error {
	delivery, err := o.Delivery(deliveryNumber)
	if err != nil {
		return err
	}
	if err := delivery.Ship(trackingNumber, carrier); err != nil {
		return err
	}

	if o.allDeliveriesAtLeast(DeliveryShipped) {
		newStatus, shipErr := o.status.Ship()
		if shipErr != nil {
			return shipErr
		}
		o.status = newStatus
	}
	o.touch()
	return nil
}

// CompleteDelivery marks the addressed delivery as delivered.
// When the last active delivery is delivered, the order moves to Completed.
func (o *Order) CompleteDelivery(deliveryNumber string) error {
	delivery, err := o.Delivery(deliveryNumber)
	if err != nil {
		return err
	}
	if err := delivery.Complete(); err != nil {
		return err
	}

	if o.allDeliveriesAtLeast(DeliveryDelivered) {
		newStatus, completeErr := o.status.Complete()
		if completeErr != nil {
			return completeErr
		}
		o.status = newStatus
	}
	o.touch()
	return nil
}

func (o *Order) cancelDeliveries() error {
	for _, delivery := range o.deliveries {
		if !delivery.Status().CanCancel() {
			continue
		}
		if err := delivery.Cancel(); err != nil {
			return err
		}
	}
	return nil
}

// allDeliveriesAtLeast reports whether every non-cancelled delivery has
// reached the given milestone. Cancelled deliveries no longer gate the
// order-level progression.
func (o *Order) allDeliveriesAtLeast(milestone DeliveryStatus) bool {
	active := 0
	for _, delivery := range o.deliveries {
		status := delivery.Status()
		if status == DeliveryCancelled {
			continue
		}
		active++
		switch milestone {
		case DeliveryShipped:
			if status != DeliveryShipped && status != DeliveryDelivered {
				return false
			}
		case DeliveryDelivered:
			if status != DeliveryDelivered {
				return false
			}
		default:
			return false
		}
	}
	return active > 0
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return err
	}
	o.shopID = shopID
	return nil
}

func (o *Order) setTotal(total kernel.Money) error {
	if err := total.Validate(); err != nil {
		return err
	}
	o.total = total
	return nil
}
