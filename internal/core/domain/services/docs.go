// Package services provides domain services that orchestrate business operations
// across the order aggregate in the order management system. It implements
// workflows that don't naturally belong to a single entity.
//
// The package includes:
//   - TransitionApplier: A domain service mapping lifecycle events to aggregate operations
//
// Domain services coordinate aggregate behavior, implementing business logic
// that spans the event vocabulary following Domain-Driven Design principles.
package services
