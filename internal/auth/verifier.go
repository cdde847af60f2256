package auth

import (
	"context"
	"errors"

	"kodbank/internal/domain" // Importing domain models
	"kodbank/internal/store"  // Repository interfaces

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// Verifier checks submitted credentials against the account store.
type Verifier struct {
	accounts store.Accounts
}

// NewVerifier returns a Verifier backed by accounts.
func NewVerifier(accounts store.Accounts) *Verifier {
	return &Verifier{accounts: accounts}
}

// Verify looks up the account by username and compares the submitted
// password against the stored bcrypt hash. Every failure collapses to
// ErrInvalidCredentials so the caller cannot tell a missing username
// from a wrong password. Pure check, no side effects.
func (v *Verifier) Verify(ctx context.Context, username, password string) (*domain.Account, error) {
	account, err := v.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return account, nil
}
