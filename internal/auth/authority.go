package auth

import (
	"context"
	"errors"
	"time"

	"kodbank/internal/domain" // Importing domain models
	"kodbank/internal/store"  // Repository interfaces
	"kodbank/internal/utils"  // JWT helpers

	"github.com/sirupsen/logrus" // Logging library
)

// DefaultTokenTTL is the lifetime of an issued session token.
const DefaultTokenTTL = time.Hour

// TokenAuthority mints, validates and revokes session tokens. It is
// the sole owner of the token record store: a token is only honored
// while both its signature verifies and its record still exists, so
// revocation takes effect ahead of the JWT's natural expiry.
type TokenAuthority struct {
	tokens store.Tokens
	secret string
	ttl    time.Duration
}

// NewTokenAuthority returns an authority signing with secret. A
// non-positive ttl falls back to DefaultTokenTTL.
func NewTokenAuthority(tokens store.Tokens, secret string, ttl time.Duration) *TokenAuthority {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenAuthority{tokens: tokens, secret: secret, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (a *TokenAuthority) TTL() time.Duration {
	return a.ttl
}

// Issue signs a token for account and inserts its record. Multiple
// live tokens per account are allowed; nothing is single-session.
func (a *TokenAuthority) Issue(ctx context.Context, account *domain.Account) (string, time.Time, error) {
	expiry := time.Now().Add(a.ttl)
	token, err := utils.GenerateJWT(account, expiry, a.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	record := &domain.SessionToken{
		Token:  token,
		UID:    account.UID,
		Expiry: expiry.Unix(),
	}
	if err := a.tokens.Insert(ctx, record); err != nil {
		return "", time.Time{}, err
	}
	return token, expiry, nil
}

// Validate checks all three legs of token validity: the signature (and
// the JWT's own exp claim), the existence of an exact-match record,
// and the record's expiry. Expired records are left in place; only
// Revoke and SweepExpired remove rows.
func (a *TokenAuthority) Validate(ctx context.Context, token string) (*utils.Claims, error) {
	claims, err := utils.ParseJWT(token, a.secret)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	record, err := a.tokens.Find(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	if time.Now().Unix() >= record.Expiry {
		return nil, domain.ErrSessionNotFound
	}
	return claims, nil
}

// Revoke deletes the record for token. Revoking a token that has no
// record is a no-op, never an error.
func (a *TokenAuthority) Revoke(ctx context.Context, token string) error {
	return a.tokens.Delete(ctx, token)
}

// SweepExpired deletes every record whose expiry has passed. The
// validation contract never depends on this housekeeping.
func (a *TokenAuthority) SweepExpired(ctx context.Context) (int64, error) {
	return a.tokens.DeleteExpired(ctx, time.Now().Unix())
}

// RunSweeper sweeps expired records every interval until ctx is done.
func (a *TokenAuthority) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := a.SweepExpired(ctx)
			if err != nil {
				logrus.WithField("error", err.Error()).Error("Token sweep failed")
				continue
			}
			if removed > 0 {
				logrus.WithField("removed", removed).Info("Swept expired session tokens")
			}
		}
	}
}
