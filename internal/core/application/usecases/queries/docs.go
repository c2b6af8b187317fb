// Package queries implements the read side of the order service.
//
// Queries bypass the domain repositories and read directly from the
// database with raw SQL, returning plain response structs shaped for
// presentation. They never mutate state and never load full aggregates;
// the write side lives in the commands package.
package queries
