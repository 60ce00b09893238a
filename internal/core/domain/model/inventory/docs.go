// Package inventory holds stock quantities keyed by location-scoped item keys.
//
// A Ledger never goes negative: Add only accepts non-negative deltas and
// decrements happen exclusively through TryReserve, which refuses a request
// larger than the quantity on hand instead of clamping it.
package inventory
