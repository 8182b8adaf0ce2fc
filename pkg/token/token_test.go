package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testSigner(t *testing.T, validity time.Duration) *Signer {
	t.Helper()
	key, err := NewKey([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("failed to build key: %v", err)
	}
	signer, err := NewSigner(Config{
		Key:            key,
		Issuer:         "drivers-api-test",
		Audience:       "drivers-app-test",
		AccessValidity: validity,
	})
	if err != nil {
		t.Fatalf("failed to build signer: %v", err)
	}
	return signer
}

// signExpired builds a token with the same claim shape as Issue but an
// expiry in the past, signed with the given method and key.
func signExpired(t *testing.T, method jwt.SigningMethod, key []byte, email string) string {
	t.Helper()
	now := time.Now().UTC()
	claims := Claims{
		AccountID: "account:expired",
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        "test-jti",
			Issuer:    "drivers-api-test",
			Audience:  jwt.ClaimStrings{"drivers-app-test"},
			NotBefore: jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	compact, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return compact
}

func TestNewKey_RejectsShortKey(t *testing.T) {
	t.Parallel()

	if _, err := NewKey([]byte("too-short")); err != ErrKeyTooShort {
		t.Errorf("expected ErrKeyTooShort, got %v", err)
	}
}

func TestNewSigner_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	key, _ := NewKey([]byte("0123456789abcdef0123456789abcdef"))

	cases := []struct {
		name string
		cfg  Config
	}{
		{"short key", Config{Key: Key("short"), Issuer: "i", Audience: "a", AccessValidity: time.Minute}},
		{"zero validity", Config{Key: key, Issuer: "i", Audience: "a"}},
		{"negative validity", Config{Key: key, Issuer: "i", Audience: "a", AccessValidity: -time.Minute}},
		{"missing issuer", Config{Key: key, Audience: "a", AccessValidity: time.Minute}},
		{"missing audience", Config{Key: key, Issuer: "i", AccessValidity: time.Minute}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSigner(tc.cfg); err == nil {
				t.Error("expected configuration error, got nil")
			}
		})
	}
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	signer := testSigner(t, time.Hour)

	compact, err := signer.Issue("account:123", "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if strings.Count(compact, ".") != 2 {
		t.Errorf("expected three-segment compact token, got %q", compact)
	}

	claims, err := signer.Verify(compact)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.AccountID != "account:123" {
		t.Errorf("expected account id 'account:123', got %q", claims.AccountID)
	}
	if claims.Subject != "user@example.com" {
		t.Errorf("expected subject 'user@example.com', got %q", claims.Subject)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("expected email claim 'user@example.com', got %q", claims.Email)
	}
	if claims.ID == "" {
		t.Error("expected non-empty jti")
	}
}

func TestIssue_UniqueJTI(t *testing.T) {
	t.Parallel()

	signer := testSigner(t, time.Hour)

	first, err := signer.Issue("account:1", "a@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	second, err := signer.Issue("account:1", "a@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if first == second {
		t.Error("two tokens for the same identity should differ via jti")
	}
}

func TestVerify_RejectsWrongKey(t *testing.T) {
	t.Parallel()

	signer := testSigner(t, time.Hour)

	foreignKey, _ := NewKey([]byte("ffffffffffffffffffffffffffffffff"))
	foreign, err := NewSigner(Config{
		Key:            foreignKey,
		Issuer:         "drivers-api-test",
		Audience:       "drivers-app-test",
		AccessValidity: time.Hour,
	})
	if err != nil {
		t.Fatalf("failed to build foreign signer: %v", err)
	}

	compact, err := foreign.Issue("account:123", "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := signer.Verify(compact); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for foreign key, got %v", err)
	}
}

func TestVerify_RejectsExpired(t *testing.T) {
	t.Parallel()

	signer := testSigner(t, time.Hour)
	expired := signExpired(t, jwt.SigningMethodHS512, []byte(signer.config.Key), "user@example.com")

	if _, err := signer.Verify(expired); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestRecoverExpiredClaims_AcceptsExpired(t *testing.T) {
	t.Parallel()

	signer := testSigner(t, time.Hour)
	expired := signExpired(t, jwt.SigningMethodHS512, []byte(signer.config.Key), "user@example.com")

	claims, err := signer.RecoverExpiredClaims(expired)
	if err != nil {
		t.Fatalf("expected expired token to be recoverable, got %v", err)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("expected email claim to survive recovery, got %q", claims.Email)
	}
}

func TestRecoverExpiredClaims_RejectsWrongAlgorithm(t *testing.T) {
	t.Parallel()

	signer := testSigner(t, time.Hour)
	// Same key, weaker algorithm tag: must be rejected in both paths.
	hs256 := signExpired(t, jwt.SigningMethodHS256, []byte(signer.config.Key), "user@example.com")

	if _, err := signer.RecoverExpiredClaims(hs256); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for HS256 token, got %v", err)
	}
	if _, err := signer.Verify(hs256); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for HS256 token, got %v", err)
	}
}

func TestRecoverExpiredClaims_RejectsWrongKey(t *testing.T) {
	t.Parallel()

	signer := testSigner(t, time.Hour)
	foreign := signExpired(t, jwt.SigningMethodHS512, []byte("ffffffffffffffffffffffffffffffff"), "user@example.com")

	if _, err := signer.RecoverExpiredClaims(foreign); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for foreign key, got %v", err)
	}
}

func TestRecoverExpiredClaims_RejectsMalformed(t *testing.T) {
	t.Parallel()

	signer := testSigner(t, time.Hour)

	for _, compact := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := signer.RecoverExpiredClaims(compact); err != ErrInvalidToken {
			t.Errorf("expected ErrInvalidToken for %q, got %v", compact, err)
		}
	}
}

func TestRecoverExpiredClaims_RejectsTampered(t *testing.T) {
	t.Parallel()

	signer := testSigner(t, time.Hour)
	compact, err := signer.Issue("account:123", "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	parts := strings.Split(compact, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	if _, err := signer.RecoverExpiredClaims(tampered); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for tampered payload, got %v", err)
	}
}
