// Package order provides domain entities and business logic for customer order
// lifecycle management. It implements the Order aggregate root with its Delivery
// children and the state machines that govern their transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, totals, deliveries and lifecycle
//   - Delivery: A shippable sub-unit of an order with its own status sub-lifecycle
//   - Status / DeliveryStatus: State machines that enforce valid transitions
//   - TransitionEvent: The value object carrying a named lifecycle trigger into the engine
//
// Key business rules:
//   - Order status follows a defined workflow:
//     Created -> PaymentWaiting -> PaymentOk -> InProgress -> Shipped -> Completed;
//     Cancelled is reachable from any pre-shipment status and Refunded from
//     Shipped or Completed
//   - Delivery status follows Pending -> Packing -> Shipped -> Delivered, with
//     Cancelled and Returned as terminal branches
//   - Cancelling an order drives every cancellable delivery to Cancelled
//   - Shipping the last delivery ships the order; delivering the last delivery
//     completes the order
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
