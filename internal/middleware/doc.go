// Package middleware provides HTTP middleware for the Drivers API.
//
// Middlewares are composed with Chain, which applies them in order so
// the first middleware is the outermost wrapper:
//
//	handler := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.Recovery,
//	    middleware.CORS(cfg.Server.AllowedOrigins),
//	)
//
// Auth is applied per route rather than globally, since the auth
// endpoints themselves must stay reachable without a token. It verifies
// the Bearer access token and stores the claims, account ID and email
// in the request context for handlers to read back with GetClaims,
// GetAccountID and GetAccountEmail.
package middleware
