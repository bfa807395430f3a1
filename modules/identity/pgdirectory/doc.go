// Package pgdirectory implements identity.Directory on PostgreSQL via pgx.
//
// Single-use token consumption relies on conditional UPDATEs keyed on the
// token column itself, so concurrency control lives in the database and the
// package needs no transactions or advisory locks.
package pgdirectory
