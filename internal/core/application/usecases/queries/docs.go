// Package queries contains the read side. GetOrder reads the live store;
// the other queries read the journal tables with plain SQL.
package queries
