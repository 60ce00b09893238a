// Package services provides domain services that coordinate several
// aggregates of the fulfillment workflow.
//
// The package includes:
//   - ProcurementMatcher: computes a store's stock shortfall and fills it from
//     the first supplier able to cover all of it
//   - WorkerDispatcher: picks the first free worker of a role, claims it and
//     binds the order to it
package services
