// Package handler provides HTTP request handlers for the Drivers API.
//
// Each handler struct encapsulates the dependencies needed to serve
// requests for a feature area (authentication, products).
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts its dependencies
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output
//   - Errors are mapped to RFC 9457 Problem Details responses
//
// The auth endpoints return the token pair JSON directly, matching the
// shape clients send back on refresh:
//
//	{"accessToken": "...", "refreshToken": "..."}
//
// Method dispatch is left to the router's method patterns, so handlers
// only deal with well-formed requests for their route.
package handler
