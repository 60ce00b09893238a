// Package worker models assemblers and couriers.
//
// A Worker is globally single-tasked: it holds at most one order and has one
// busy-until timestamp, no matter how many stores it has shifts at. Shift
// expiry is tracked per store. Availability is never stored; it is derived
// from the clock reading passed in by the caller.
//
// Workers are shared between stores by pointer, so every method locks the
// worker. TryTake is the only way to bind an order and behaves as a
// compare-and-set: it succeeds only if the worker is still Free.
package worker
