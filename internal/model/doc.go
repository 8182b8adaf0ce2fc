// Package model defines the domain types and wire-level error envelope
// for the Drivers API.
//
// Account is the durable identity: email, password hash (store-owned) and
// the single active refresh token with its expiry. The refresh fields are
// always set and cleared together through the Account methods; nothing
// else mutates them.
//
// ProblemDetails implements the RFC 9457 error shape. Security-sensitive
// failures (invalid credentials, invalid token) each have exactly one
// constructor so their external shape cannot vary by sub-condition.
package model
