package store

import (
	"context"
	"errors"

	"kodbank/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// TokenStore is the GORM-backed Tokens implementation.
type TokenStore struct {
	db *gorm.DB
}

// NewTokenStore returns a TokenStore over db.
func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db}
}

// Insert persists a new session-token record.
func (s *TokenStore) Insert(ctx context.Context, record *domain.SessionToken) error {
	return s.db.WithContext(ctx).Create(record).Error
}

// Find returns the record matching the exact token string.
func (s *TokenStore) Find(ctx context.Context, token string) (*domain.SessionToken, error) {
	var record domain.SessionToken
	if err := s.db.WithContext(ctx).Where("token = ?", token).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Delete removes the record for token. Deleting a token that has no
// record is not an error.
func (s *TokenStore) Delete(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Where("token = ?", token).Delete(&domain.SessionToken{}).Error
}

// DeleteExpired removes every record whose expiry is at or before now
// and reports how many rows went away.
func (s *TokenStore) DeleteExpired(ctx context.Context, now int64) (int64, error) {
	res := s.db.WithContext(ctx).Where("expiry <= ?", now).Delete(&domain.SessionToken{})
	return res.RowsAffected, res.Error
}
