// Package kernel provides the shared primitives of the fulfillment domain.
//
// The package includes:
//   - UUID: identity of stores, suppliers, items, orders, workers and customers,
//     and the location-scoped item keys used by inventory ledgers
//   - Location: integer coordinates of stores and delivery destinations
//   - Clock: the time source every timing guard in the workflow reads
//
// These primitives are immutable values and safe for concurrent use.
package kernel
