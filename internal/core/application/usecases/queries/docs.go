// Package queries holds the read side of the service. Query handlers read
// the tables written by the postgres repositories directly with raw SQL and
// return flat response structs; they never load aggregates or open a unit of
// work.
package queries
