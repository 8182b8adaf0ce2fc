package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openfleet/drivers-api/internal/model"
	"github.com/openfleet/drivers-api/internal/rate"
	"github.com/openfleet/drivers-api/pkg/token"
)

// refreshTokenBytes is the entropy of a generated refresh token.
const refreshTokenBytes = 64

// CredentialStore is the persistence contract the token lifecycle is
// built against. Implementations own the password verifier and the
// email uniqueness policy (comparison should be case-insensitive).
//
// Update is last-write-wins: two concurrent refreshes for the same
// identity race on the (refresh token, expiry) pair, and the losing
// write is silently overwritten. Stores that need stronger guarantees
// must make Update an atomic compare-and-swap or transactional write of
// both fields together.
type CredentialStore interface {
	// FindByEmail returns the account for the email, or (nil, nil)
	// when no such account exists.
	FindByEmail(ctx context.Context, email string) (*model.Account, error)

	// Create validates and persists a new account. Policy rejections
	// are returned as *CreateError with human-readable messages.
	Create(ctx context.Context, email, password string) (*model.Account, error)

	// VerifyPassword checks the password against the account's stored
	// verifier.
	VerifyPassword(ctx context.Context, account *model.Account, password string) bool

	// Update persists the account, including its refresh-token fields.
	Update(ctx context.Context, account *model.Account) error
}

// LoginThrottle guards the login path against brute force. Implemented
// by rate.Limiter; nil disables throttling.
type LoginThrottle interface {
	Check(ctx context.Context, key string) error
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// TokenPair is the response value of login and refresh. Registration
// returns a pair with only the access token set.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// AuthService orchestrates the register, login and refresh flows. It is
// stateless between calls; the injected signer and configuration are
// immutable after construction.
type AuthService struct {
	store           CredentialStore
	signer          *token.Signer
	refreshValidity time.Duration
	throttle        LoginThrottle
}

// AuthServiceConfig holds configuration for the auth service.
type AuthServiceConfig struct {
	Store           CredentialStore
	Signer          *token.Signer
	RefreshValidity time.Duration // lifetime of issued refresh tokens
	Throttle        LoginThrottle // optional
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	if cfg.RefreshValidity == 0 {
		cfg.RefreshValidity = 7 * 24 * time.Hour
	}
	return &AuthService{
		store:           cfg.Store,
		signer:          cfg.Signer,
		refreshValidity: cfg.RefreshValidity,
		throttle:        cfg.Throttle,
	}
}

// Register creates a new account and issues an access token. No refresh
// token is minted on registration; the first one is issued at login.
func (s *AuthService) Register(ctx context.Context, email, password string) (*TokenPair, error) {
	email = normalizeEmail(email)
	if !isValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidationFailed)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidationFailed)
	}

	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	account, err := s.store.Create(ctx, email, password)
	if err != nil {
		// *CreateError passes through verbatim.
		return nil, err
	}

	accessToken, err := s.signer.Issue(account.ID, account.Email)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken}, nil
}

// Login authenticates an account and issues a fresh token pair. The new
// refresh token overwrites any previous one: at most one refresh token
// is valid per identity at any time.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = normalizeEmail(email)

	if s.throttle != nil {
		if err := s.throttle.Check(ctx, email); err != nil {
			if errors.Is(err, rate.ErrRateLimited) {
				return nil, ErrTooManyAttempts
			}
			// Throttle backend failures never block logins.
			slog.Warn("login throttle unavailable", slog.String("error", err.Error()))
		}
	}

	account, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		s.recordLoginFailure(ctx, email)
		return nil, ErrInvalidCredentials
	}

	if !s.store.VerifyPassword(ctx, account, password) {
		s.recordLoginFailure(ctx, email)
		return nil, ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			slog.Warn("login throttle reset failed", slog.String("error", err.Error()))
		}
	}

	return s.issuePair(ctx, account)
}

// Refresh exchanges an expired access token plus its refresh token for a
// new pair. Every failure collapses to ErrInvalidToken; callers must not
// learn which condition tripped.
func (s *AuthService) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error) {
	if accessToken == "" || refreshToken == "" {
		return nil, ErrInvalidToken
	}

	claims, err := s.signer.RecoverExpiredClaims(accessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	account, err := s.store.FindByEmail(ctx, normalizeEmail(claims.Email))
	if err != nil || account == nil {
		return nil, ErrInvalidToken
	}

	if !account.HasValidRefreshToken(refreshToken, time.Now()) {
		return nil, ErrInvalidToken
	}

	pair, err := s.issuePair(ctx, account)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return pair, nil
}

// issuePair issues an access token, rotates the refresh token and
// persists the account. Rotation re-extends the refresh expiry window.
func (s *AuthService) issuePair(ctx context.Context, account *model.Account) (*TokenPair, error) {
	accessToken, err := s.signer.Issue(account.ID, account.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}

	account.SetRefreshToken(refreshToken, time.Now().Add(s.refreshValidity))
	if err := s.store.Update(ctx, account); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) recordLoginFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil && !errors.Is(err, rate.ErrRateLimited) {
		slog.Warn("login throttle record failed", slog.String("error", err.Error()))
	}
}

// generateRefreshToken draws 64 bytes from the CSPRNG and encodes them
// with standard base64.
func generateRefreshToken() (string, error) {
	raw := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// isValidEmail performs basic shape validation; the store may apply a
// stricter policy.
func isValidEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex < atIndex+2 {
		return false
	}
	return dotIndex < len(email)-1
}
