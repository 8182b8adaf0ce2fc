// Package database provides the storage abstraction for the Drivers API.
//
// The Database interface exposes three query methods:
//
//   - Query: multiple results (SELECT returning lists)
//   - QueryOne: a single result or ErrNotFound (SELECT by id/field)
//   - Execute: no return value (CREATE/UPDATE mutations)
//
// The concrete implementation is SurrealDB. Repositories depend only on
// the interface, which keeps the token-lifecycle core testable without a
// running database.
//
// # Error Handling
//
// Standard sentinel errors cover the common failure cases; check them
// with errors.Is:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // missing record
//	}
//
// # Atomicity
//
// The credential store persists a rotated refresh token and its expiry in
// one UPDATE statement, which SurrealDB executes atomically. Alternative
// Database implementations must preserve that guarantee.
package database
