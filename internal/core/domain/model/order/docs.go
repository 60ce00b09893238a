// Package order provides the Order aggregate of the fulfillment workflow and
// the Status state machine it moves through.
//
// An order walks strictly forward:
//
//	New -> ReadyToAssemble -> Assembling -> Assembled -> Delivering -> Complete
//
// Each step has its own transition method on Status, so a caller can only
// move an order one stage at a time and never backwards. Requested items are
// fixed at creation. Once Complete the order rejects every mutation.
package order
