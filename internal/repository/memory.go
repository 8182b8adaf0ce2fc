package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/openfleet/drivers-api/internal/model"
	"github.com/openfleet/drivers-api/internal/service"
)

// MemoryStore is an in-memory service.CredentialStore for tests and
// local development. It enforces the same password policy and bcrypt
// verifier as AccountRepository.
type MemoryStore struct {
	mu       sync.Mutex
	accounts map[string]*model.Account // keyed by email
	seq      int
}

// NewMemoryStore creates an empty in-memory credential store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]*model.Account)}
}

// Create validates the password policy, hashes the password and stores a
// new account.
func (s *MemoryStore) Create(ctx context.Context, email, password string) (*model.Account, error) {
	if reasons := checkPasswordPolicy(password); len(reasons) > 0 {
		return nil, &service.CreateError{Reasons: reasons}
	}

	raw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	hash := string(raw)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[email]; exists {
		return nil, service.ErrEmailAlreadyExists
	}

	s.seq++
	now := time.Now().UTC()
	account := &model.Account{
		ID:        fmt.Sprintf("account:%d", s.seq),
		Email:     email,
		Hash:      &hash,
		CreatedOn: now,
		UpdatedOn: now,
	}
	s.accounts[email] = account
	return copyAccount(account), nil
}

// FindByEmail returns a copy of the stored account, or (nil, nil) when
// no such account exists.
func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[email]
	if !ok {
		return nil, nil
	}
	return copyAccount(account), nil
}

// VerifyPassword checks the password against the account's bcrypt hash
func (s *MemoryStore) VerifyPassword(ctx context.Context, account *model.Account, password string) bool {
	if account == nil || account.Hash == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*account.Hash), []byte(password)) == nil
}

// Update overwrites the stored account. Last write wins, matching the
// service.CredentialStore contract.
func (s *MemoryStore) Update(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.accounts[account.Email]
	if !ok {
		return fmt.Errorf("account not found: %s", account.Email)
	}
	updated := copyAccount(account)
	updated.CreatedOn = stored.CreatedOn
	updated.UpdatedOn = time.Now().UTC()
	s.accounts[account.Email] = updated
	return nil
}

func copyAccount(account *model.Account) *model.Account {
	clone := *account
	if account.Hash != nil {
		hash := *account.Hash
		clone.Hash = &hash
	}
	if account.RefreshToken != nil {
		token := *account.RefreshToken
		clone.RefreshToken = &token
	}
	if account.RefreshExpiresAt != nil {
		expires := *account.RefreshExpiresAt
		clone.RefreshExpiresAt = &expires
	}
	return &clone
}

// MemoryProducts is a fixed in-memory product lister for tests and
// local development.
type MemoryProducts struct {
	products []model.Product
}

// NewMemoryProducts creates a product lister over the given products
func NewMemoryProducts(products []model.Product) *MemoryProducts {
	return &MemoryProducts{products: products}
}

// List returns the configured products
func (p *MemoryProducts) List(ctx context.Context) ([]model.Product, error) {
	out := make([]model.Product, len(p.products))
	copy(out, p.products)
	return out, nil
}
