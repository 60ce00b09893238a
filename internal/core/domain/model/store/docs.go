// Package store provides the Store aggregate: one retail location with its
// stock ledger, suppliers, item catalog, worker roster and orders.
//
// Orders are driven by AdvanceOrder, a re-entrant, pull-based function. Each
// call resumes from the order's current status, walks forward through as many
// consecutive stages as their guards allow (each stage at most once), and
// returns an Outcome naming where and why it stopped. There is no internal
// retry timer; callers poll.
package store
