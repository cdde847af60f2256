package utils

import (
	"time" // Time for token expiration

	"kodbank/internal/domain" // Importing domain models

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// JWT Claims
type Claims struct {
	Username             string `json:"username"` // Subject's username
	Role                 string `json:"role"`     // Subject's role label
	UID                  string `json:"uid"`      // Subject's account UID
	jwt.RegisteredClaims        // Standard JWT claims
}

// GenerateJWT creates a signed token for account, expiring at expiry.
func GenerateJWT(account *domain.Account, expiry time.Time, secret string) (string, error) {
	// Set token claims
	claims := Claims{
		Username: account.Username, // Subject's username
		Role:     account.Role,     // Subject's role
		UID:      account.UID,      // Subject's account UID
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),     // Token expiry
			IssuedAt:  jwt.NewNumericDate(time.Now()), // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a signed token string. Expiry of the
// exp claim is enforced by the library during parsing.
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	})
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}
