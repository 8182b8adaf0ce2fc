// Package service implements the credential issuance and rotation core
// of the Drivers API.
//
// AuthService orchestrates the three flows:
//
//   - Register: reject known emails, create the account through the
//     CredentialStore, issue an access token (no refresh token yet).
//   - Login: verify the password, issue an access token, mint and
//     persist a fresh refresh token (overwriting any prior one).
//   - Refresh: recover claims from the possibly-expired access token,
//     match the presented refresh token against the stored one, rotate
//     it and re-extend its expiry window.
//
// # Error Handling
//
// Sentinel errors live in errors.go. The security-sensitive paths are
// deliberately undifferentiated: login failures are always
// ErrInvalidCredentials and refresh failures are always ErrInvalidToken,
// regardless of which internal condition tripped. Store-level creation
// rejections surface as *CreateError carrying the store's messages
// verbatim.
//
// # Concurrency
//
// The service holds no mutable state between calls. Two concurrent
// refreshes for one identity race last-write-wins at the store; see the
// CredentialStore doc for the atomicity the store must provide if that
// matters.
package service
