package repository

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/openfleet/drivers-api/internal/database"
	"github.com/openfleet/drivers-api/internal/model"
	"github.com/openfleet/drivers-api/internal/service"
)

// passwordMinLen is the minimum accepted password length
const passwordMinLen = 6

// AccountRepository handles account data access and owns the password
// verifier. It implements service.CredentialStore.
type AccountRepository struct {
	db database.Database
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db database.Database) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create validates the password policy, hashes the password with bcrypt
// and persists a new account. Policy rejections come back as
// *service.CreateError with one reason per failed rule.
func (r *AccountRepository) Create(ctx context.Context, email, password string) (*model.Account, error) {
	if reasons := checkPasswordPolicy(password); len(reasons) > 0 {
		return nil, &service.CreateError{Reasons: reasons}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	query := `
		CREATE account CONTENT {
			email: $email,
			hash: $hash,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"email": email,
		"hash":  string(hash),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, service.ErrEmailAlreadyExists
		}
		return nil, err
	}

	records := unwrapQueryResults(result)
	if len(records) == 0 {
		return nil, errors.New("no result returned")
	}

	account := parseAccount(records[0])
	account.Email = email
	return account, nil
}

// FindByEmail retrieves an account by email, or (nil, nil) when no such
// account exists.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `SELECT * FROM account WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	record := unwrapQueryResult(result)
	if record == nil {
		return nil, nil
	}
	return parseAccount(record), nil
}

// VerifyPassword checks the password against the account's bcrypt hash
func (r *AccountRepository) VerifyPassword(ctx context.Context, account *model.Account, password string) bool {
	if account == nil || account.Hash == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*account.Hash), []byte(password)) == nil
}

// Update persists the account's refresh-token fields. Both fields are
// written in a single UPDATE so readers never observe a token without
// its expiry.
func (r *AccountRepository) Update(ctx context.Context, account *model.Account) error {
	query := `
		UPDATE type::record($id) SET
			refresh_token = $refresh_token,
			refresh_expires_on = $refresh_expires_on,
			updated_on = time::now()
	`

	vars := map[string]interface{}{
		"id":            account.ID,
		"refresh_token": account.RefreshToken,
	}
	if account.RefreshExpiresAt != nil {
		vars["refresh_expires_on"] = account.RefreshExpiresAt.UTC().Format(time.RFC3339Nano)
	} else {
		vars["refresh_expires_on"] = nil
	}

	return r.db.Execute(ctx, query, vars)
}

// parseAccount maps a SurrealDB record to a model.Account
func parseAccount(record map[string]interface{}) *model.Account {
	account := &model.Account{
		Email:        getString(record, "email"),
		Hash:         getStringPtr(record, "hash"),
		RefreshToken: getStringPtr(record, "refresh_token"),
	}
	if id, ok := record["id"]; ok {
		account.ID = convertSurrealID(id)
	}
	account.RefreshExpiresAt = getTime(record, "refresh_expires_on")
	if t := getTime(record, "created_on"); t != nil {
		account.CreatedOn = *t
	}
	if t := getTime(record, "updated_on"); t != nil {
		account.UpdatedOn = *t
	}
	return account
}

// checkPasswordPolicy returns one reason per violated password rule
func checkPasswordPolicy(password string) []string {
	var reasons []string

	if len(password) < passwordMinLen {
		reasons = append(reasons, "passwords must be at least 6 characters")
	}

	var hasDigit, hasLower, hasUpper, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case strings.ContainsRune("!@#$%^&*()-_=+[]{};:'\",.<>/?\\|`~", r):
			hasSymbol = true
		}
	}

	if !hasDigit {
		reasons = append(reasons, "passwords must have at least one digit ('0'-'9')")
	}
	if !hasLower {
		reasons = append(reasons, "passwords must have at least one lowercase ('a'-'z')")
	}
	if !hasUpper {
		reasons = append(reasons, "passwords must have at least one uppercase ('A'-'Z')")
	}
	if !hasSymbol {
		reasons = append(reasons, "passwords must have at least one non-alphanumeric character")
	}

	return reasons
}
