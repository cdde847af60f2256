package api

import (
	"errors"   // Sentinel comparison
	"net/http" // HTTP status codes

	"kodbank/internal/auth"       // Token authority
	"kodbank/internal/domain"     // Importing domain models
	"kodbank/internal/middleware" // Cookie name
	"kodbank/internal/store"      // Repository interfaces
	"kodbank/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// BalanceHandler returns the authenticated account's balance. Runs
// behind SessionAuth, so the context carries validated claims. Reads
// go through the Redis cache first; balances never change, so a cached
// value can never be stale.
func BalanceHandler(accounts store.Accounts, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get validated claims from context
		username, exists := c.Get("username")
		// Check if username exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()                              // Request context
		cacheKey := utils.BalanceCacheKey(c.GetString("uid"))   // Cache key for the balance
		var balance float64                                     // Balance to return
		found, err := utils.GetCache(ctx, rdb, cacheKey, &balance) // Try the cache first
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"balance": balance}) // Return cached balance
			return
		}
		// If not cached, read from the account store
		balance, err = accounts.FindBalance(ctx, username.(string))
		if err != nil {
			// Cannot happen without a delete operation, but handled:
			// the token outlived its account record
			if errors.Is(err, domain.ErrAccountNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch balance"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, balance, utils.BalanceCacheTTL) // Cache the balance
		c.JSON(http.StatusOK, gin.H{"balance": balance})                      // Return the balance
	}
}

// LogoutHandler revokes the cookie-carried token, if any, and clears
// the cookie unconditionally. Logout always succeeds.
func LogoutHandler(authority *auth.TokenAuthority, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()                   // Request context
		token, err := c.Cookie(middleware.CookieName) // Get the session cookie
		if err == nil && token != "" {
			// Drop the cached balance while the claims are still readable
			if claims, err := authority.Validate(ctx, token); err == nil {
				_ = utils.DeleteCache(ctx, rdb, utils.BalanceCacheKey(claims.UID))
			}
			// Revoking an unknown or already-revoked token is a no-op
			_ = authority.Revoke(ctx, token)
		}
		// Clear the cookie with the attributes it was set with
		c.SetSameSite(http.SameSiteNoneMode)
		c.SetCookie(middleware.CookieName, "", -1, "/", "", true, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"}) // Always succeeds
	}
}
