package store

import (
	"context"

	"kodbank/internal/domain" // Importing domain models
)

// Accounts is the account repository. No update or delete: accounts
// are created once and their balance is read-only from then on.
type Accounts interface {
	Create(ctx context.Context, account *domain.Account) error
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindBalance(ctx context.Context, username string) (float64, error)
}

// Tokens is the session-token record repository, owned exclusively by
// the token authority. Records are inserted on login, looked up by the
// exact token string, and deleted on logout or by the expiry sweep.
type Tokens interface {
	Insert(ctx context.Context, record *domain.SessionToken) error
	Find(ctx context.Context, token string) (*domain.SessionToken, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now int64) (int64, error)
}
