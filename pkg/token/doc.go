// Package token issues and verifies the compact signed access tokens
// used by the Drivers API.
//
// Tokens are three-segment JWTs signed with HMAC-SHA-512. The package
// exposes two distinct validation paths:
//
//   - Verify: full validation (signature, algorithm, expiry, not-before,
//     issuer, audience). This is what authorization middleware calls.
//   - RecoverExpiredClaims: signature and algorithm only. This exists for
//     the refresh exchange, where the presented access token has usually
//     expired, and must not be reused elsewhere.
//
// Both paths reject tokens whose header declares any algorithm other than
// HS512, which closes the classic algorithm-substitution hole.
//
// # Key Material
//
// Signing keys are wrapped in the Key type and must be at least 32 bytes:
//
//	key, err := token.KeyFromEnv("JWT_SECRET")
//	signer, err := token.NewSigner(token.Config{
//	    Key:            key,
//	    Issuer:         "drivers-api",
//	    Audience:       "drivers-app",
//	    AccessValidity: 15 * time.Minute,
//	})
//
// # Issued Claims
//
// Issue embeds the account id, the email (also as subject) and a random
// jti so two tokens issued in the same second still differ:
//
//	compact, err := signer.Issue(account.ID, account.Email)
package token
