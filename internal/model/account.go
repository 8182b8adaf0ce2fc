package model

import "time"

// Account is a user's durable identity. The email doubles as login
// identifier and display name. The password hash and refresh-token fields
// are owned by the credential store and never serialized.
type Account struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Hash             *string    `json:"-"`
	RefreshToken     *string    `json:"-"`
	RefreshExpiresAt *time.Time `json:"-"`
	CreatedOn        time.Time  `json:"created_on"`
	UpdatedOn        time.Time  `json:"updated_on"`
}

// SetRefreshToken installs a new refresh token with its expiry. The two
// fields always change together; this is the only mutation path.
func (a *Account) SetRefreshToken(token string, expiresAt time.Time) {
	a.RefreshToken = &token
	a.RefreshExpiresAt = &expiresAt
}

// ClearRefreshToken removes the refresh token and its expiry together.
func (a *Account) ClearRefreshToken() {
	a.RefreshToken = nil
	a.RefreshExpiresAt = nil
}

// HasValidRefreshToken reports whether the stored refresh token exactly
// matches the presented one and has not expired at the given instant.
func (a *Account) HasValidRefreshToken(presented string, now time.Time) bool {
	if a.RefreshToken == nil || a.RefreshExpiresAt == nil {
		return false
	}
	if *a.RefreshToken != presented {
		return false
	}
	return a.RefreshExpiresAt.After(now)
}
