package store

import (
	"context"
	"errors"

	"kodbank/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// AccountStore is the GORM-backed Accounts implementation.
type AccountStore struct {
	db *gorm.DB
}

// NewAccountStore returns an AccountStore over db. The db must be
// opened with TranslateError so unique-key violations surface as
// gorm.ErrDuplicatedKey.
func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

// Create persists a new account. The uid primary key and the username
// unique index are the enforcement point for concurrent registrations:
// the insert itself is the atomic uniqueness check.
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	if err := s.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateAccount
		}
		return err
	}
	return nil
}

// FindByUsername returns the account with the given username.
func (s *AccountStore) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var account domain.Account
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindBalance returns only the balance column for the given username.
func (s *AccountStore) FindBalance(ctx context.Context, username string) (float64, error) {
	var account domain.Account
	err := s.db.WithContext(ctx).Select("balance").Where("username = ?", username).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrAccountNotFound
		}
		return 0, err
	}
	return account.Balance, nil
}
