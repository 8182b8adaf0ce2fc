package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/openfleet/drivers-api/internal/model"
	"github.com/openfleet/drivers-api/pkg/token"
)

// TokenVerifier defines the interface for access token validation.
// Implemented by token.Signer.
type TokenVerifier interface {
	Verify(compact string) (*token.Claims, error)
}

// ClaimsKey is the context key for verified token claims
const ClaimsKey contextKey = "claims"

// AccountEmailKey is the context key for the account email
const AccountEmailKey contextKey = "accountEmail"

// Auth returns a middleware that requires a valid Bearer access token.
// Verification failures are not distinguished in the response.
func Auth(verifier TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				model.NewUnauthorizedError("missing authorization header").WriteJSON(w)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				model.NewUnauthorizedError("invalid authorization header format").WriteJSON(w)
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				model.NewUnauthorizedError("invalid or expired token").WriteJSON(w)
				return
			}

			ctx := context.WithValue(r.Context(), AccountIDKey, claims.AccountID)
			ctx = context.WithValue(ctx, AccountEmailKey, claims.Email)
			ctx = context.WithValue(ctx, ClaimsKey, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAccountID extracts the account ID from context
func GetAccountID(ctx context.Context) string {
	if id, ok := ctx.Value(AccountIDKey).(string); ok {
		return id
	}
	return ""
}

// GetAccountEmail extracts the account email from context
func GetAccountEmail(ctx context.Context) string {
	if email, ok := ctx.Value(AccountEmailKey).(string); ok {
		return email
	}
	return ""
}

// GetClaims extracts the verified token claims from context
func GetClaims(ctx context.Context) *token.Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*token.Claims); ok {
		return claims
	}
	return nil
}
