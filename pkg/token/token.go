package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken covers malformed tokens, signature mismatches and
	// unexpected signing algorithms. Callers must not expose which
	// sub-condition triggered it.
	ErrInvalidToken = errors.New("invalid token")

	// ErrKeyTooShort indicates key material below the HMAC-SHA-512
	// security margin.
	ErrKeyTooShort = errors.New("signing key must be at least 32 bytes")
)

// MinKeyLen is the minimum accepted signing key length in bytes.
const MinKeyLen = 32

// Key is HMAC-SHA-512 key material. It is never logged and has no
// String method on purpose.
type Key []byte

// NewKey validates raw key material.
func NewKey(raw []byte) (Key, error) {
	if len(raw) < MinKeyLen {
		return nil, ErrKeyTooShort
	}
	return Key(raw), nil
}

// KeyFromEnv reads key material from the named environment variable.
// The value may be standard base64; otherwise the raw bytes are used.
func KeyFromEnv(name string) (Key, error) {
	value := os.Getenv(name)
	if value == "" {
		return nil, fmt.Errorf("environment variable %s is not set", name)
	}
	if decoded, err := base64.StdEncoding.DecodeString(value); err == nil {
		return NewKey(decoded)
	}
	return NewKey([]byte(value))
}

// Claims carried by issued access tokens.
type Claims struct {
	AccountID string `json:"id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// Config holds signer settings. All fields are required.
type Config struct {
	Key            Key
	Issuer         string
	Audience       string
	AccessValidity time.Duration
}

// Signer issues and verifies compact HMAC-SHA-512 tokens. It is
// stateless and safe for concurrent use.
type Signer struct {
	config Config
}

// NewSigner validates the configuration and returns a Signer.
func NewSigner(cfg Config) (*Signer, error) {
	if len(cfg.Key) < MinKeyLen {
		return nil, ErrKeyTooShort
	}
	if cfg.AccessValidity <= 0 {
		return nil, errors.New("access validity must be positive")
	}
	if cfg.Issuer == "" {
		return nil, errors.New("issuer is required")
	}
	if cfg.Audience == "" {
		return nil, errors.New("audience is required")
	}
	return &Signer{config: cfg}, nil
}

// Issue creates a signed access token for the given account identity.
// The token carries {id, sub=email, email, jti} with a fresh random jti,
// nbf=now and exp=now+validity, all in UTC.
func (s *Signer) Issue(accountID, email string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		AccountID: accountID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        uuid.New().String(),
			Issuer:    s.config.Issuer,
			Audience:  jwt.ClaimStrings{s.config.Audience},
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessValidity)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(s.config.Key))
}

// Verify fully validates a token for authorization: signature, algorithm,
// expiry, not-before, issuer and audience. Use this on every authenticated
// request.
func (s *Signer) Verify(compact string) (*Claims, error) {
	return s.parse(compact,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithAudience(s.config.Audience),
		jwt.WithExpirationRequired(),
	)
}

// RecoverExpiredClaims validates only the signature and algorithm of a
// possibly-expired token and returns its claims. It exists solely for the
// refresh exchange, where the access token has typically expired; it must
// never be used for authorization decisions.
func (s *Signer) RecoverExpiredClaims(compact string) (*Claims, error) {
	return s.parse(compact,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
}

func (s *Signer) parse(compact string, options ...jwt.ParserOption) (*Claims, error) {
	parser := jwt.NewParser(options...)
	parsed, err := parser.ParseWithClaims(compact, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Guard against algorithm substitution even though the parser
		// already restricts valid methods.
		if t.Method.Alg() != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return []byte(s.config.Key), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
