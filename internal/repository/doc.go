// Package repository implements the data access layer for the Drivers API.
//
// The repository package contains all database operations using SurrealDB.
// Each repository struct handles the data operations for a specific entity.
//
// # Repository Pattern
//
// All repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a database connection
//   - Methods implement specific data operations (Create, FindByEmail, Update, List)
//   - SurrealQL queries are used for all database interactions
//   - Results are parsed and mapped to model structs
//
// AccountRepository additionally owns the credential policy: passwords
// are checked against the account policy on Create and hashed with
// bcrypt, and VerifyPassword is the only way to check a password against
// a stored hash. It implements service.CredentialStore.
//
// # Query Patterns
//
// Common query patterns used:
//
//   - Parameterized queries with $variable syntax for security
//   - type::record() for safe ID handling
//   - time::now() for automatic timestamps
//   - Single-statement UPDATE for the refresh token and its expiry, so
//     the pair is always written together
//
// MemoryStore and MemoryProducts provide in-memory implementations of
// the same contracts for tests and local development.
package repository
