package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openfleet/drivers-api/internal/service"
)

func TestMemoryStore_CreateAndVerify(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore()

	account, err := store.Create(ctx, "user@example.com", "P@ssw0rd1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if account.ID == "" {
		t.Error("expected a generated account ID")
	}
	if account.Hash == nil {
		t.Fatal("expected a password hash")
	}
	if *account.Hash == "P@ssw0rd1" {
		t.Error("password must not be stored in the clear")
	}

	if !store.VerifyPassword(ctx, account, "P@ssw0rd1") {
		t.Error("correct password rejected")
	}
	if store.VerifyPassword(ctx, account, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestMemoryStore_PasswordPolicy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Create(ctx, "user@example.com", "short")
	createErr, ok := service.AsCreateError(err)
	if !ok {
		t.Fatalf("expected *service.CreateError, got %v", err)
	}
	// "short": too short, no digit, no uppercase, no symbol.
	if len(createErr.Reasons) != 4 {
		t.Errorf("expected 4 policy reasons, got %d: %v", len(createErr.Reasons), createErr.Reasons)
	}
}

func TestMemoryStore_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Create(ctx, "user@example.com", "P@ssw0rd1"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := store.Create(ctx, "user@example.com", "Other@Pass1")
	if !errors.Is(err, service.ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestMemoryStore_FindByEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore()

	account, err := store.FindByEmail(ctx, "ghost@example.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if account != nil {
		t.Errorf("expected nil for unknown email, got %+v", account)
	}
}

func TestMemoryStore_UpdatePersistsRefreshPair(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore()

	created, err := store.Create(ctx, "user@example.com", "P@ssw0rd1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	expires := time.Now().Add(24 * time.Hour).UTC()
	created.SetRefreshToken("opaque-token", expires)
	if err := store.Update(ctx, created); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	found, err := store.FindByEmail(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if found.RefreshToken == nil || *found.RefreshToken != "opaque-token" {
		t.Error("refresh token not persisted")
	}
	if found.RefreshExpiresAt == nil || !found.RefreshExpiresAt.Equal(expires) {
		t.Error("refresh expiry not persisted")
	}
}

func TestMemoryStore_FindReturnsCopy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Create(ctx, "user@example.com", "P@ssw0rd1"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	first, _ := store.FindByEmail(ctx, "user@example.com")
	first.SetRefreshToken("mutated-but-not-saved", time.Now().Add(time.Hour))

	second, _ := store.FindByEmail(ctx, "user@example.com")
	if second.RefreshToken != nil {
		t.Error("mutating a returned account must not affect the store")
	}
}
